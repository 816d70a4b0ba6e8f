package context

import (
	"context"
	"slices"

	"shiptrack/models"
)

type sessionKey struct{}

func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the console session set by the auth middleware.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// HasRole reports whether the request's console user holds role. Anonymous requests hold none.
func HasRole(ctx context.Context, role string) bool {
	s, ok := GetSessionFromContext(ctx)
	return ok && slices.Contains(s.UserRoles, role)
}
