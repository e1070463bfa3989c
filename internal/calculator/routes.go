package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/bases", Bases)
		r.Post("/add", Add)
		r.Post("/subtract", Subtract)
		r.Post("/convert", Convert)
		r.Post("/render", Render)
		r.Post("/chain", Chain)
	})
}
