// Package server 通过 HTTP 暴露状态、预览与导出。
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ByLCY/truescale/calibration"
	"github.com/ByLCY/truescale/renderer"
	"github.com/ByLCY/truescale/store"
)

// maxBodyBytes 限制请求体大小。
const maxBodyBytes = 1 << 20

// Server is the HTTP API server for truescale.
type Server struct {
	router      chi.Router
	store       *store.Store
	calibration *calibration.Workflow
	renderer    renderer.Renderer
	log         *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, rend renderer.Renderer, log *slog.Logger) *Server {
	s := &Server{
		store:       st,
		calibration: calibration.NewWorkflow(st),
		renderer:    rend,
		log:         log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/geometry", s.handleGeometry)

		r.Patch("/page", s.handlePatchPage)
		r.Patch("/frames/{frame}", s.handlePatchFrame)
		r.Put("/content/{frame}", s.handlePutContent)
		r.Patch("/calibration", s.handlePatchCalibration)
		r.Patch("/view", s.handlePatchView)

		r.Post("/panels/calibration", s.handleCalibrationPanel)
		r.Post("/panels/controls", s.handleControlPanel)

		r.Post("/calibration/adjust", s.handleCalibrationAdjust)
		r.Get("/calibration/references", s.handleCalibrationReferences)
	})

	r.Get("/preview.{format}", s.handlePreview)
	r.Get("/calibration.{format}", s.handleCalibrationImage)

	r.Get("/export.json", s.handleExportJSON)
	r.Get("/export.txt", s.handleExportText)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
