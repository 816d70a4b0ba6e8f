package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"shiptrack/models"
)

// Service writes audit records inside the caller transaction.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Entry describes one audited console action.
type Entry struct {
	UserID     int64
	Action     string
	EntityType string
	EntityID   string
	Before     any
	After      any
}

func (s *Service) Write(ctx context.Context, tx bun.Tx, e Entry) error {
	beforeJSON, err := marshal(e.Before)
	if err != nil {
		return fmt.Errorf("marshal audit before: %w", err)
	}
	afterJSON, err := marshal(e.After)
	if err != nil {
		return fmt.Errorf("marshal audit after: %w", err)
	}
	_, err = tx.NewInsert().Model(&models.AuditLog{
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}).Exec(ctx)
	return err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
