package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"shiptrack/frontend/login"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
)

func main() {
	db, err := sqlite.OpenDB(getenv("SQLITE_PATH", "shiptrack.db"))
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	seeded, err := seedUsers(context.Background(), db, os.Getenv)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	for _, u := range seeded {
		fmt.Printf("seeded %s user (username=%s)\n", u.role, u.username)
	}
}

type seededUser struct {
	username string
	role     string
	password string
}

// seedUsers upserts the admin and, when OPERATOR_PASSWORD is set, one operator.
func seedUsers(ctx context.Context, db *sqlite.DB, env func(string) string) ([]seededUser, error) {
	lookup := func(key, fallback string) string {
		if v := env(key); v != "" {
			return v
		}
		return fallback
	}

	users := []seededUser{{
		username: lookup("ADMIN_USERNAME", "admin"),
		role:     rbac.RoleAdmin,
		password: lookup("ADMIN_PASSWORD", "Admin2024Shiptrack"),
	}}
	if pw := env("OPERATOR_PASSWORD"); pw != "" {
		users = append(users, seededUser{
			username: lookup("OPERATOR_USERNAME", "operator"),
			role:     rbac.RoleOperator,
			password: pw,
		})
	}

	for i, u := range users {
		if err := login.UpsertUserPasswordHash(ctx, db, u.username, u.role, u.password); err != nil {
			return users[:i], fmt.Errorf("seed %s: %w", u.username, err)
		}
	}
	return users, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
