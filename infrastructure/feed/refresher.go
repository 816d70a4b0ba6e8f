package feed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/shipment"
	"shiptrack/models"
)

// RefreshInterval is the fixed polling period of the feed.
const RefreshInterval = 180 * time.Second

const (
	TriggerStartup = "startup"
	TriggerTimer   = "timer"
	TriggerManual  = "manual"

	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// Refresher fetches the feed on a fixed interval and swaps in each successful
// snapshot. A failed refresh keeps the previous snapshot.
type Refresher struct {
	source   Source
	store    *Store
	snapshot *cache.SnapshotCache
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	lastRun *models.FeedRefreshRun
}

func NewRefresher(source Source, store *Store, snapshot *cache.SnapshotCache) *Refresher {
	return &Refresher{
		source:   source,
		store:    store,
		snapshot: snapshot,
		interval: RefreshInterval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Restore loads the last persisted snapshot into the cache.
func (r *Refresher) Restore(ctx context.Context) error {
	rows, run, err := r.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if run == nil {
		return nil
	}
	r.snapshot.Replace(cache.Snapshot{RunID: run.ID, FetchedAt: run.FinishedAt, Rows: rows})
	r.setLastRun(*run)
	slog.Info("restored feed snapshot", slog.String("run_id", run.ID), slog.Int("rows", len(rows)))
	return nil
}

// RefreshNow runs one fetch-parse-replace cycle and returns the recorded run. The
// returned error is the fetch or persistence failure, if any.
func (r *Refresher) RefreshNow(ctx context.Context, trigger string) (models.FeedRefreshRun, error) {
	run := models.FeedRefreshRun{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: r.now(),
	}

	text, fetchErr := r.source.Fetch(ctx)
	var rows []shipment.Row
	if fetchErr == nil {
		rows = shipment.ParseCSV(text)
		run.Status = RunStatusOK
		run.RowCount = len(rows)
	} else {
		run.Status = RunStatusFailed
		run.Error = fetchErr.Error()
	}
	run.FinishedAt = r.now()

	// Record the run even when the caller's context is already cancelled.
	saveCtx := context.WithoutCancel(ctx)
	saveErr := r.store.SaveRun(saveCtx, run, rows)
	if saveErr != nil {
		slog.Error("persist feed refresh failed", slog.String("run_id", run.ID), slog.Any("err", saveErr))
	}

	if fetchErr != nil {
		slog.Warn("feed refresh failed; keeping previous snapshot",
			slog.String("run_id", run.ID), slog.String("trigger", trigger), slog.Any("err", fetchErr))
		r.setLastRun(run)
		return run, fetchErr
	}

	// A fetched feed always becomes the live snapshot, persisted or not.
	r.snapshot.Replace(cache.Snapshot{RunID: run.ID, FetchedAt: run.FinishedAt, Rows: rows})
	if saveErr != nil {
		run.Error = "persist snapshot: " + saveErr.Error()
		r.setLastRun(run)
		return run, saveErr
	}
	r.setLastRun(run)
	slog.Info("feed refreshed", slog.String("run_id", run.ID), slog.String("trigger", trigger), slog.Int("rows", len(rows)))
	return run, nil
}

// Run refreshes once immediately and then every interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	_, _ = r.RefreshNow(ctx, TriggerStartup)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = r.RefreshNow(ctx, TriggerTimer)
		}
	}
}

// LastRun is the most recent attempt, successful or not.
func (r *Refresher) LastRun() (models.FeedRefreshRun, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastRun == nil {
		return models.FeedRefreshRun{}, false
	}
	return *r.lastRun, true
}

func (r *Refresher) ListRuns(ctx context.Context, limit int) ([]models.FeedRefreshRun, error) {
	return r.store.ListRuns(ctx, limit)
}

func (r *Refresher) setLastRun(run models.FeedRefreshRun) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRun = &run
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
