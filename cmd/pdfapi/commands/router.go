package commands

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sunyuchen88/pdfapi/cmd/pdfapi/handlers"
	"github.com/sunyuchen88/pdfapi/internal/config"
	"github.com/sunyuchen88/pdfapi/internal/observability"
	"github.com/sunyuchen88/pdfapi/internal/raster"
)

// NewRouter creates the service router with all routes configured.
func NewRouter(
	logger *observability.Logger,
	cfg *config.Config,
	parser handlers.PDFParser,
	rasterizer handlers.PageRasterizer,
	downloader handlers.Downloader,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello World!"))
	})

	intake := handlers.NewIntake(downloader, cfg.Server.MaxBodyBytes, logger)
	parseHandler := handlers.NewParseHandler(logger, parser, intake)
	rasterHandler := handlers.NewRasterHandler(logger, rasterizer, intake)

	r.Post("/pdf_parser", parseHandler.ParsePDF)
	r.Post("/zip_parser", parseHandler.ParseZIP)
	r.Post("/pdf_to_png", rasterHandler.PDFToPNG)

	// Rasterized output is served straight from the output directory.
	fileServer := http.StripPrefix(raster.PublicPathPrefix+"/", http.FileServer(http.Dir(cfg.Raster.OutputDir)))
	r.Get(raster.PublicPathPrefix+"/*", fileServer.ServeHTTP)

	return r
}
