package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adminusers "shiptrack/frontend/adminUsers"
	"shiptrack/frontend/console"
	"shiptrack/frontend/dashboard"
	"shiptrack/frontend/exports"
	"shiptrack/frontend/login"
	"shiptrack/infrastructure/rbac"
)

// RegisterDashboardRoutes registers the public read-only views.
func (s *Server) RegisterDashboardRoutes(r chi.Router) {
	r.Get("/", dashboard.TablePageHandler(s.Snapshot))
	r.Get("/calendar", dashboard.CalendarPageHandler(s.Snapshot))
	r.Get("/api/shipments", dashboard.ShipmentsAPIHandler(s.Snapshot))
	r.Get("/api/calendar", dashboard.CalendarAPIHandler(s.Snapshot))
}

func (s *Server) RegisterExportRoutes(r chi.Router) {
	r.Get("/exports/shipments.csv", exports.ShipmentsCSVHandler(s.DB, s.Snapshot))
	r.Get("/exports/shipments.xlsx", exports.ShipmentsXLSXHandler(s.DB, s.Snapshot))
	r.Get("/exports/shipments.pdf", exports.ShipmentsPDFHandler(s.DB, s.Snapshot))
}

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterConsoleRoutes registers authenticated routes under /console.
func (s *Server) RegisterConsoleRoutes(r chi.Router) chi.Router {
	s.Rbac.Allow("CONSOLE_HOME", http.MethodGet, "/console", rbac.RoleAdmin, rbac.RoleOperator)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, login.HomePath, http.StatusSeeOther)
	})

	s.Rbac.Allow("FEED_VIEW", http.MethodGet, "/console/feed", rbac.RoleAdmin, rbac.RoleOperator)
	r.Get("/feed", console.FeedPageQueryHandler(s.DB, s.Refresher, s.Snapshot, s.FeedURL))

	s.Rbac.Allow("FEED_REFRESH", http.MethodPost, "/console/feed/refresh", rbac.RoleAdmin)
	r.Post("/feed/refresh", console.RefreshFeedCommandHandler(s.DB, s.Refresher, s.Audit))

	s.Rbac.Allow("USERS_VIEW", http.MethodGet, "/console/users", rbac.RoleAdmin)
	r.Get("/users", adminusers.UsersPageQueryHandler(s.DB, s.UserCache))

	s.Rbac.Allow("USERS_CREATE", http.MethodPost, "/console/users", rbac.RoleAdmin)
	r.Post("/users", adminusers.CreateUserCommandHandler(s.DB, s.Audit))
	return r
}
