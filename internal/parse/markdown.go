package parse

import (
	"sort"
	"strings"
)

// sortElements orders a page's elements by vertical position, top of page
// first. The sort is stable: elements with equal positions keep their
// extraction order, so output is deterministic for identical input.
func sortElements(elements []PageElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Top < elements[j].Top
	})
}

// composePage renders a page's elements, already sorted, into Markdown
// fragments. Text passes through verbatim; tables become pipe tables.
// Tables with no rows produce no fragment.
func composePage(elements []PageElement) []string {
	fragments := make([]string, 0, len(elements))
	for _, el := range elements {
		switch el.Kind {
		case ElementText:
			fragments = append(fragments, el.Text)
		case ElementTable:
			if md := tableToMarkdown(el.Rows); md != "" {
				fragments = append(fragments, md)
			}
		}
	}
	return fragments
}

// tableToMarkdown renders table content as a Markdown pipe table. Every
// rendered row has exactly numCols cells, numCols being the maximum row
// length; missing cells are padded with the empty string. Row 0 is the
// header. Zero rows renders to the empty string.
func tableToMarkdown(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(rows[0], numCols))
	lines = append(lines, "|"+strings.Repeat("---|", numCols))
	for _, row := range rows[1:] {
		lines = append(lines, renderRow(row, numCols))
	}

	return strings.Join(lines, "\n")
}

func renderRow(row []string, numCols int) string {
	cells := make([]string, numCols)
	copy(cells, row)
	return "| " + strings.Join(cells, " | ") + " |"
}
