package parse

import (
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"
)

// ElementKind discriminates page element variants.
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementTable
)

// PageElement is one piece of content found on a page: either the page's
// text block or one detected table. Top is the element's distance from the
// top edge of the page and is the sole ordering key within a page.
type PageElement struct {
	Kind ElementKind
	Text string     // set when Kind == ElementText
	Rows [][]string // set when Kind == ElementTable; rows may be ragged
	Top  float64
}

// extractPageElements collects the text block and the tables of one page.
// The page text is treated as a single pre-ordered block anchored at the
// top of the page; tables carry the bounding box the detector produced,
// so content and geometry come from the same call.
func extractPageElements(r *reader.Reader, pageIndex int, detectorCfg tables.Config) ([]PageElement, error) {
	page, err := r.GetPage(pageIndex)
	if err != nil {
		return nil, err
	}

	fragments, err := r.ExtractTextFragments(page)
	if err != nil {
		return nil, err
	}

	width, _ := page.Width()
	height, _ := page.Height()

	var elements []PageElement

	pageText, _, err := tabula.FromReader(r).Pages(pageIndex + 1).Text()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(pageText) != "" {
		elements = append(elements, PageElement{
			Kind: ElementText,
			Text: pageText,
			Top:  0, // the whole-page text block starts at the page top
		})
	}

	modelPage := model.NewPage(width, height)
	modelPage.Number = pageIndex + 1
	modelPage.RawText = toModelFragments(fragments)

	detector := tables.NewGeometricDetector()
	if err := detector.Configure(detectorCfg); err != nil {
		return nil, err
	}

	detected, err := detector.Detect(modelPage)
	if err != nil {
		return nil, err
	}

	for _, t := range detected {
		rows := tableRows(t)
		if len(rows) == 0 {
			continue
		}
		elements = append(elements, PageElement{
			Kind: ElementTable,
			Rows: rows,
			// model.BBox measures Y from the page bottom; convert to
			// distance from the page top so ascending order reads downward.
			Top: height - (t.BBox.Y + t.BBox.Height),
		})
	}

	return elements, nil
}

// tableRows flattens detected table cells into row-major string content.
func tableRows(t *model.Table) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell.Text)
		}
		rows = append(rows, cells)
	}
	return rows
}

func toModelFragments(fragments []text.TextFragment) []model.TextFragment {
	result := make([]model.TextFragment, len(fragments))
	for i, f := range fragments {
		result[i] = model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		}
	}
	return result
}
