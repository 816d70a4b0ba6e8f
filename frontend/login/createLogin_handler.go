package login

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"shiptrack/infrastructure/cache"
	sessioncookie "shiptrack/infrastructure/session"
	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

// HomePath is where a successful login lands.
const HomePath = "/console/feed"

// CreateLoginHandler authenticates the user and issues a session cookie.
func CreateLoginHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form data")
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" || password == "" {
			redirectWithError(w, r, "username and password are required")
			return
		}

		user, err := authenticateUser(r.Context(), db, username, password)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				slog.Info("login rejected", slog.String("username", username))
				redirectWithError(w, r, "invalid username or password")
				return
			}
			slog.Error("authenticate user failed", slog.String("username", username), slog.Any("err", err))
			redirectWithError(w, r, "authentication failed")
			return
		}

		session := newSession(user)
		if err := persistSession(r.Context(), db, session); err != nil {
			slog.Error("persist session failed", slog.Int64("user_id", user.ID), slog.Any("err", err))
			redirectWithError(w, r, "failed to create session")
			return
		}

		sessionCache.AddSession(session)
		userCache.Add(user)

		http.SetCookie(w, sessioncookie.SessionCookie(session.ID, int(sessioncookie.Lifetime.Seconds())))
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
	}
}

func redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func newSession(user models.User) models.Session {
	return models.Session{
		ID:        newSessionToken(),
		UserID:    user.ID,
		User:      user,
		UserRoles: []string{user.Role},
		ExpiresAt: sessioncookie.DefaultExpiry(),
	}
}

func newSessionToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
