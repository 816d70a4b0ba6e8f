package feed

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"shiptrack/infrastructure/shipment"
	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

// Store persists the latest snapshot and the refresh history.
type Store struct {
	db *sqlite.DB
}

func NewStore(db *sqlite.DB) *Store {
	return &Store{db: db}
}

// SaveRun records a run. A successful run with rows also replaces the persisted
// snapshot in the same transaction.
func (s *Store) SaveRun(ctx context.Context, run models.FeedRefreshRun, rows []shipment.Row) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&run).Exec(ctx); err != nil {
			return fmt.Errorf("insert refresh run: %w", err)
		}
		if run.Status != RunStatusOK {
			return nil
		}
		if _, err := tx.NewDelete().Model((*models.Shipment)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		records := make([]models.Shipment, 0, len(rows))
		for i, r := range rows {
			records = append(records, toModel(run.ID, i, r))
		}
		if _, err := tx.NewInsert().Model(&records).Exec(ctx); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		return nil
	})
}

// LoadSnapshot returns the persisted rows in feed order and the run that wrote them.
// With no rows it falls back to the latest successful run, which was an empty feed.
func (s *Store) LoadSnapshot(ctx context.Context) ([]shipment.Row, *models.FeedRefreshRun, error) {
	var records []models.Shipment
	var run *models.FeedRefreshRun
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&records).Order("position ASC").Scan(ctx); err != nil {
			return err
		}
		owner := new(models.FeedRefreshRun)
		q := tx.NewSelect().Model(owner)
		if len(records) > 0 {
			q = q.Where("id = ?", records[0].RunID)
		} else {
			q = q.Where("status = ?", RunStatusOK).Order("finished_at DESC")
		}
		err := q.Limit(1).Scan(ctx)
		if err == nil {
			run = owner
			return nil
		}
		if isNoRows(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot: %w", err)
	}

	rows := make([]shipment.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, fromModel(rec))
	}
	return rows, run, nil
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.FeedRefreshRun, error) {
	if limit <= 0 {
		limit = 50
	}
	runs := make([]models.FeedRefreshRun, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&runs).Order("started_at DESC").Limit(limit).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list refresh runs: %w", err)
	}
	return runs, nil
}

func toModel(runID string, pos int, r shipment.Row) models.Shipment {
	return models.Shipment{
		RunID:            runID,
		Position:         pos,
		Vessel:           r.Vessel,
		ClearanceDate:    r.ClearanceDate,
		SailingTime:      r.SailingTime,
		Port:             r.Port,
		ArrivalDate:      r.ArrivalDate,
		Quantity:         r.Quantity,
		SODone:           r.SOStatus == shipment.StatusDone,
		QuarantineTime:   r.QuarantineTime,
		DrugNo:           r.DrugNo,
		QuarantineCertNo: r.QuarantineCertNo,
		StuffingDate:     r.StuffingDate,
		TelexDone:        r.TelexStatus == shipment.StatusDone,
	}
}

func fromModel(m models.Shipment) shipment.Row {
	return shipment.Row{
		Vessel:           m.Vessel,
		ClearanceDate:    m.ClearanceDate,
		SailingTime:      m.SailingTime,
		Port:             m.Port,
		ArrivalDate:      m.ArrivalDate,
		Quantity:         m.Quantity,
		SOStatus:         statusOf(m.SODone),
		QuarantineTime:   m.QuarantineTime,
		DrugNo:           m.DrugNo,
		QuarantineCertNo: m.QuarantineCertNo,
		StuffingDate:     m.StuffingDate,
		TelexStatus:      statusOf(m.TelexDone),
	}
}

func statusOf(done bool) shipment.Status {
	if done {
		return shipment.StatusDone
	}
	return shipment.StatusPending
}
