package http

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shiptrack/frontend/console"
	loginflow "shiptrack/frontend/login"
	sessioncontext "shiptrack/frontend/shared/context"
	"shiptrack/infrastructure/audit"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/rbac"
	sessioncookie "shiptrack/infrastructure/session"
	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 5 * time.Second

// Deps are the collaborators the routes need.
type Deps struct {
	DB           *sqlite.DB
	Snapshot     *cache.SnapshotCache
	Refresher    console.FeedRefresher
	FeedURL      string
	SessionCache *cache.UserSessionCache
	UserCache    *cache.UserCache
	RbacCache    *cache.RbacRolesCache
	Rbac         *rbac.Rbac
	Audit        *audit.Service
}

// Server bundles dependencies and route wiring.
type Server struct {
	Deps

	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new http server.
func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		Deps:   deps,
		Addr:   addr,
		router: chi.NewRouter(),
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.GetHead)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.RegisterDashboardRoutes(s.router)
	s.RegisterExportRoutes(s.router)
	s.RegisterLoginRoutes()

	s.router.Route("/console", func(r chi.Router) {
		r.Use(s.AuthenticateMiddleware)
		s.RegisterConsoleRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// AuthenticateMiddleware loads session and applies RBAC checks.
func (s *Server) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionCookie, err := r.Cookie(sessioncookie.CookieName)
		if err != nil || sessionCookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sessionToken := sessionCookie.Value
		session, ok := s.resolveSession(r.Context(), sessionToken)
		if !ok {
			slog.Warn("session not found", slog.String("method", r.Method), slog.String("path", r.URL.Path))
			http.SetCookie(w, sessioncookie.ClearCookie())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if session.Expired() {
			http.SetCookie(w, sessioncookie.ClearCookie())
			s.SessionCache.DeleteSessionBySessionToken(sessionToken)
			if err := loginflow.DeleteSessionByToken(r.Context(), s.DB, sessionToken); err != nil {
				slog.Error("cannot delete session from DB", slog.Any("err", err))
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if session.ScreenPermissions == nil {
			session.ScreenPermissions = s.Rbac.Codes(session.UserRoles)
		}

		if !s.Rbac.Permitted(session.UserRoles, r.URL.Path, r.Method) {
			slog.Warn("rbac denied",
				slog.String("user", session.User.Username),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		s.UserCache.Add(session.User)
		ctx := sessioncontext.NewContextWithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) resolveSession(ctx context.Context, token string) (models.Session, bool) {
	if cached, found := s.SessionCache.FindSessionBySessionToken(token); found {
		return cached, true
	}

	dbSession, err := loginflow.LoadSessionByToken(ctx, s.DB, token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("load session from db failed", slog.Any("err", err))
		}
		return models.Session{}, false
	}

	s.SessionCache.AddSession(dbSession)
	return dbSession, true
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("err", err))
		}
	}()
	return nil
}

// ListenAddr is the bound address once started.
func (s *Server) ListenAddr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.ln = nil
	return nil
}
