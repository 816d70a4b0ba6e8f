package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a console operator account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Session is a logged-in console session.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Shipment is one persisted row of the latest feed snapshot.
type Shipment struct {
	bun.BaseModel `bun:"table:shipments,alias:sh"`

	ID               int64  `bun:"id,pk,autoincrement"`
	RunID            string `bun:"run_id,notnull"`
	Position         int    `bun:"position,notnull"`
	Vessel           string `bun:"vessel,notnull"`
	ClearanceDate    string `bun:"clearance_date,notnull"`
	SailingTime      string `bun:"sailing_time,notnull"`
	Port             string `bun:"port,notnull"`
	ArrivalDate      string `bun:"arrival_date,notnull"`
	Quantity         string `bun:"quantity,notnull"`
	SODone           bool   `bun:"so_done,notnull"`
	QuarantineTime   string `bun:"quarantine_time,notnull"`
	DrugNo           string `bun:"drug_no,notnull"`
	QuarantineCertNo string `bun:"quarantine_cert_no,notnull"`
	StuffingDate     string `bun:"stuffing_date,notnull"`
	TelexDone        bool   `bun:"telex_done,notnull"`
}

// FeedRefreshRun records one attempt to refresh the snapshot from the feed.
type FeedRefreshRun struct {
	bun.BaseModel `bun:"table:feed_refresh_runs,alias:fr"`

	ID         string    `bun:"id,pk"`
	Trigger    string    `bun:"trigger_source,notnull"`
	Status     string    `bun:"status,notnull"`
	RowCount   int       `bun:"row_count,notnull"`
	Error      string    `bun:"error,notnull"`
	StartedAt  time.Time `bun:"started_at,notnull"`
	FinishedAt time.Time `bun:"finished_at,notnull"`
}

// ExportRun records a download of the dashboard view.
type ExportRun struct {
	bun.BaseModel `bun:"table:export_runs,alias:er"`

	ID         int64     `bun:"id,pk,autoincrement"`
	ExportType string    `bun:"export_type,notnull"`
	RowCount   int       `bun:"row_count,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for console actions.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
