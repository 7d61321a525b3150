package upload

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/upload.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.Require)
	r.Post("/", h.HandleUpload)
	return r
}
