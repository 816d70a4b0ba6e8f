package adminusers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/uptrace/bun"

	"shiptrack/frontend/login"
	"shiptrack/infrastructure/argon"
	"shiptrack/infrastructure/audit"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

func LoadUsers(ctx context.Context, db *sqlite.DB) ([]UserView, error) {
	users := make([]UserView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw("SELECT id, username, role, created_at FROM users ORDER BY id ASC").Scan(ctx, &users)
	})
	return users, err
}

// CreateUser adds a console account and audit-logs it as actorID in one transaction.
// Usernames are unique case-insensitively.
func CreateUser(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actorID int64, username, password, role string) (int64, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)
	switch {
	case username == "":
		return 0, ErrUsernameRequired
	case password == "":
		return 0, ErrPasswordRequired
	case !rbac.ValidRole(role):
		return 0, ErrInvalidRole
	}
	if err := login.ValidatePasswordPolicy(password); err != nil {
		return 0, err
	}
	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return 0, err
	}

	user := &models.User{Username: username, PasswordHash: hash, Role: role}
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.User)(nil)).
			Where("LOWER(username) = ?", strings.ToLower(username)).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrUsernameExists
		}
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return auditSvc.Write(ctx, tx, audit.Entry{
			UserID:     actorID,
			Action:     "user.create",
			EntityType: "user",
			EntityID:   strconv.FormatInt(user.ID, 10),
			After:      map[string]any{"username": username, "role": role},
		})
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
