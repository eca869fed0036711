package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(app.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	fileServer := http.FileServer(http.Dir(app.UploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads", fileServer))

	r.Route("/api", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/process", app.ProcessItemHandler)
			r.Post("/", app.CreateItemHandler)
			r.Get("/", app.ListItemsHandler)
			r.Patch("/{id}", app.UpdateItemHandler)
			r.Delete("/{id}", app.DeleteItemHandler)
			r.Get("/{id}/pair-targets", app.PairTargetsHandler)
			r.Get("/{id}/candidates", app.CandidatesHandler)
		})

		r.Route("/outfits", func(r chi.Router) {
			r.Post("/", app.CreateOutfitHandler)
			r.Get("/", app.ListOutfitsHandler)
			r.Delete("/{id}", app.DeleteOutfitHandler)
		})
	})

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", middleware.GetReqID(r.Context())).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
