package adminusers

import (
	"errors"
	"time"

	"shiptrack/frontend/shared/html"
)

const usersPath = "/console/users"

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameExists   = errors.New("username already exists")
)

type UserView struct {
	ID        int64     `bun:"id"`
	Username  string    `bun:"username"`
	Role      string    `bun:"role"`
	CreatedAt time.Time `bun:"created_at"`
	LastSeen  time.Time `bun:"-"`
}

type PageData struct {
	Nav          html.TopNavData
	Users        []UserView
	Roles        []string
	Status       string
	ErrorMessage string
}
