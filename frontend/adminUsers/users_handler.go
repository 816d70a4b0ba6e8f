package adminusers

import (
	"log/slog"
	"net/http"
	"net/url"

	"shiptrack/frontend/shared/context"
	"shiptrack/frontend/shared/html"
	"shiptrack/infrastructure/audit"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
)

// UsersPageQueryHandler renders the console account list.
func UsersPageQueryHandler(db *sqlite.DB, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		users, err := LoadUsers(r.Context(), db)
		if err != nil {
			slog.Error("admin users: failed to load data", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}
		for i := range users {
			if seen, ok := userCache.Get(users[i].Username); ok {
				users[i].LastSeen = seen.LastSeen
			}
		}

		data := PageData{
			Nav:          html.BuildTopNavData(session),
			Users:        users,
			Roles:        rbac.Roles,
			Status:       r.URL.Query().Get("status"),
			ErrorMessage: r.URL.Query().Get("error"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := UsersListPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
			return
		}
	}
}

func CreateUserCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, usersPath+"?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		_, err := CreateUser(r.Context(), db, auditSvc, session.UserID,
			r.FormValue("username"), r.FormValue("password"), r.FormValue("role"))
		if err != nil {
			// Validation and policy messages are safe to show as-is.
			http.Redirect(w, r, usersPath+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, usersPath+"?status="+url.QueryEscape("user created"), http.StatusSeeOther)
	}
}
