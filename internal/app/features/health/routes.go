package health

import "github.com/go-chi/chi/v5"

// Routes serves GET and HEAD so uptime monitors can skip the body.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	r.Head("/", h.Serve)
	return r
}
