package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/mindgeo/pkg/buildinfo"
	"github.com/matzehuels/mindgeo/pkg/observability"
)

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))
		r.Use(limitBody(s.cfg.MaxBodyBytes))
		r.Post("/layout", s.layout)
		r.Post("/containment", s.containment)
		r.Post("/placement", s.placement)
		r.Post("/edges/recalc", s.recalc)
		r.Post("/outline", s.outline)
	})

	return r
}

// requestLogger logs each request and reports it to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			dur := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", dur,
				"request_id", chimiddleware.GetReqID(r.Context()))
		})
	}
}

func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

type healthResponse struct {
	Status   string                          `json:"status"`
	Build    buildinfo.Info                  `json:"build"`
	Counters *observability.CountersSnapshot `json:"counters,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Build: buildinfo.Get()}
	if s.counters != nil {
		snap := s.counters.Snapshot()
		resp.Counters = &snap
	}
	s.respondJSON(w, http.StatusOK, resp)
}
