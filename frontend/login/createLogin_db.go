package login

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"shiptrack/infrastructure/argon"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

func findUserByUsername(ctx context.Context, tx bun.Tx, username string) (models.User, error) {
	var user models.User
	err := tx.NewSelect().
		Model(&user).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// authenticateUser returns sql.ErrNoRows for an unknown user or a wrong password.
func authenticateUser(ctx context.Context, db *sqlite.DB, username, password string) (models.User, error) {
	var user models.User
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		user, err = findUserByUsername(ctx, tx, username)
		return err
	})
	if err != nil {
		return models.User{}, err
	}

	ok, err := argon.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, sql.ErrNoRows
	}

	if argon.NeedsRehash(user.PasswordHash, argon.DefaultParams) {
		if err := rehashPassword(ctx, db, user.ID, password); err != nil {
			slog.Warn("password rehash failed", slog.Int64("user_id", user.ID), slog.Any("err", err))
		}
	}
	return user, nil
}

func rehashPassword(ctx context.Context, db *sqlite.DB, userID int64, password string) error {
	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model((*models.User)(nil)).
			Set("password_hash = ?", hash).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", userID).
			Exec(ctx)
		return err
	})
}

func persistSession(ctx context.Context, db *sqlite.DB, session models.Session) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models.Session{
			ID:        session.ID,
			UserID:    session.UserID,
			ExpiresAt: session.ExpiresAt,
		}).Exec(ctx)
		return err
	})
}

func DeleteSessionByToken(ctx context.Context, db *sqlite.DB, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
}

// LoadSessionByToken returns sql.ErrNoRows for unknown or expired sessions.
// Expired rows are removed.
func LoadSessionByToken(ctx context.Context, db *sqlite.DB, token string) (models.Session, error) {
	var session models.Session
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&session).
			Relation("User").
			Where("s.id = ?", token).
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		return models.Session{}, err
	}
	if session.Expired() {
		if err := DeleteSessionByToken(ctx, db, token); err != nil {
			slog.Warn("delete expired session failed", slog.Any("err", err))
		}
		return models.Session{}, sql.ErrNoRows
	}
	session.UserRoles = []string{session.User.Role}
	return session, nil
}

// UpsertUserPasswordHash creates or updates a console account.
func UpsertUserPasswordHash(ctx context.Context, db *sqlite.DB, username, role, rawPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	if !rbac.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	if err := ValidatePasswordPolicy(rawPassword); err != nil {
		return err
	}
	hash, err := argon.CreateHash(rawPassword, argon.DefaultParams)
	if err != nil {
		return err
	}

	now := time.Now()
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
  password_hash = excluded.password_hash,
  role = excluded.role,
  updated_at = excluded.updated_at`, username, hash, role, now, now)
		return err
	})
}
