// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// Routes mounts the audit log under the path where this router is mounted
// (/api/audit from bootstrap). Admins only.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.Require, sysauth.RequireRole(role.Admin))
	r.Get("/", h.HandleList)
	r.Get("/failed-logins", h.HandleFailedLogins)
	return r
}
