package exports

import (
	"context"

	"github.com/uptrace/bun"

	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

func recordExportRun(ctx context.Context, db *sqlite.DB, exportType string, rowCount int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models.ExportRun{
			ExportType: exportType,
			RowCount:   rowCount,
		}).Exec(ctx)
		return err
	})
}

// ListRecentRuns returns the newest export runs first.
func ListRecentRuns(ctx context.Context, db *sqlite.DB, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	runs := make([]models.ExportRun, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&runs).Order("id DESC").Limit(limit).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	out := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunSummary{
			ExportType: r.ExportType,
			RowCount:   r.RowCount,
			CreatedAt:  r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}
