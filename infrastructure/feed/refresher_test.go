package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/shipment"
	"shiptrack/infrastructure/sqlite"
	"shiptrack/models"
)

const feedHeader = "vessel,clearance,sailing,port,arrival,qty,so,quarantine,drug,cert,stuffing,telex\n"

func openFeedTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "feed-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

// feedServer serves body while status is 200 and fails otherwise.
type feedServer struct {
	body   atomic.Value
	status atomic.Int32
	hits   atomic.Int32
}

func newFeedServer(t *testing.T, body string) (*feedServer, *httptest.Server) {
	t.Helper()
	fs := &feedServer{}
	fs.body.Store(body)
	fs.status.Store(http.StatusOK)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		status := int(fs.status.Load())
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(fs.body.Load().(string)))
	}))
	t.Cleanup(ts.Close)
	return fs, ts
}

func TestRefreshNow_ReplacesSnapshotAndPersists(t *testing.T) {
	db := openFeedTestDB(t)
	_, ts := newFeedServer(t, feedHeader+"MSC1,2024-03-05,,Tokyo,,2,1,,D-1,,,0\nEVER,2024-03-06,,Osaka,,1,0,,,,,1\n")

	snap := cache.NewSnapshotCache()
	r := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), snap)

	run, err := r.RefreshNow(context.Background(), TriggerManual)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if run.Status != RunStatusOK || run.RowCount != 2 || run.Trigger != TriggerManual {
		t.Fatalf("unexpected run: %+v", run)
	}

	current := snap.Current()
	if current.RunID != run.ID || len(current.Rows) != 2 {
		t.Fatalf("unexpected cached snapshot: run=%s rows=%d", current.RunID, len(current.Rows))
	}

	persisted, latest, err := NewStore(db).LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if latest == nil || latest.ID != run.ID {
		t.Fatalf("expected latest run %s, got %+v", run.ID, latest)
	}
	if diff := cmp.Diff(current.Rows, persisted); diff != "" {
		t.Fatalf("persisted rows differ from cache (-cache +db):\n%s", diff)
	}
	if persisted[0].SOStatus != shipment.StatusDone || persisted[1].TelexStatus != shipment.StatusDone {
		t.Fatalf("status flags not persisted: %+v", persisted)
	}
}

func TestRefreshNow_FailureKeepsPreviousSnapshot(t *testing.T) {
	db := openFeedTestDB(t)
	fs, ts := newFeedServer(t, feedHeader+"MSC1,2024-03-05\n")

	snap := cache.NewSnapshotCache()
	r := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), snap)
	first, err := r.RefreshNow(context.Background(), TriggerStartup)
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fs.status.Store(http.StatusBadGateway)
	failed, err := r.RefreshNow(context.Background(), TriggerTimer)
	if err == nil {
		t.Fatalf("expected refresh error on 502")
	}
	if failed.Status != RunStatusFailed || !strings.Contains(failed.Error, "unexpected status 502") {
		t.Fatalf("unexpected failed run: %+v", failed)
	}

	if got := snap.Current(); got.RunID != first.ID || len(got.Rows) != 1 {
		t.Fatalf("expected previous snapshot to survive, got run=%s rows=%d", got.RunID, len(got.Rows))
	}
	if last, ok := r.LastRun(); !ok || last.ID != failed.ID {
		t.Fatalf("expected last run to be the failed one, got %+v", last)
	}

	runs, err := r.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(runs))
	}
	if runs[0].ID != failed.ID {
		t.Fatalf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestRefreshNow_PersistFailureStillReplacesSnapshot(t *testing.T) {
	db := openFeedTestDB(t)
	fs, ts := newFeedServer(t, feedHeader+"OLD\n")

	snap := cache.NewSnapshotCache()
	r := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), snap)
	if _, err := r.RefreshNow(context.Background(), TriggerStartup); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fs.body.Store(feedHeader + "NEW1\nNEW2\n")
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	run, err := r.RefreshNow(context.Background(), TriggerTimer)
	if err == nil {
		t.Fatalf("expected persistence error with a closed db")
	}
	if run.Status != RunStatusOK || !strings.HasPrefix(run.Error, "persist snapshot:") {
		t.Fatalf("unexpected run: %+v", run)
	}

	current := snap.Current()
	if current.RunID != run.ID {
		t.Fatalf("expected live snapshot from run %s, got %s", run.ID, current.RunID)
	}
	var names []string
	for _, row := range current.Rows {
		names = append(names, row.Vessel)
	}
	if diff := cmp.Diff([]string{"NEW1", "NEW2"}, names); diff != "" {
		t.Fatalf("live rows mismatch (-want +got):\n%s", diff)
	}
	if last, ok := r.LastRun(); !ok || last.ID != run.ID {
		t.Fatalf("expected last run %s, got %+v", run.ID, last)
	}
}

func TestLoadSnapshot_RunFollowsPersistedRows(t *testing.T) {
	db := openFeedTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	base := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	// The later-finishing run commits first; the overlapping one commits last.
	first := models.FeedRefreshRun{ID: "run-late", Trigger: TriggerManual, Status: RunStatusOK, RowCount: 1, StartedAt: base, FinishedAt: base.Add(time.Minute)}
	second := models.FeedRefreshRun{ID: "run-early", Trigger: TriggerTimer, Status: RunStatusOK, RowCount: 1, StartedAt: base.Add(-time.Minute), FinishedAt: base}
	if err := store.SaveRun(ctx, first, []shipment.Row{{Vessel: "LATE"}}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.SaveRun(ctx, second, []shipment.Row{{Vessel: "EARLY"}}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	rows, run, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(rows) != 1 || rows[0].Vessel != "EARLY" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if run == nil || run.ID != "run-early" {
		t.Fatalf("expected rows labelled with run-early, got %+v", run)
	}
}

func TestRefreshNow_EmptyFeedClearsSnapshot(t *testing.T) {
	db := openFeedTestDB(t)
	fs, ts := newFeedServer(t, feedHeader+"MSC1\nMSC2\n")

	snap := cache.NewSnapshotCache()
	r := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), snap)
	if _, err := r.RefreshNow(context.Background(), TriggerManual); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fs.body.Store(feedHeader)
	if _, err := r.RefreshNow(context.Background(), TriggerManual); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if rows := snap.Rows(); len(rows) != 0 {
		t.Fatalf("expected header-only feed to replace snapshot with no rows, got %d", len(rows))
	}
	persisted, _, err := NewStore(db).LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("expected persisted snapshot to be empty, got %d", len(persisted))
	}
}

func TestRestore_LoadsPersistedSnapshot(t *testing.T) {
	db := openFeedTestDB(t)
	_, ts := newFeedServer(t, feedHeader+"A\nB\nC\n")

	first := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), cache.NewSnapshotCache())
	run, err := first.RefreshNow(context.Background(), TriggerStartup)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := cache.NewSnapshotCache()
	restarted := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), snap)
	if err := restarted.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := snap.Current()
	if got.RunID != run.ID {
		t.Fatalf("expected restored run %s, got %s", run.ID, got.RunID)
	}
	var names []string
	for _, row := range got.Rows {
		names = append(names, row.Vessel)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, names); diff != "" {
		t.Fatalf("restored order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	db := openFeedTestDB(t)
	fs, ts := newFeedServer(t, feedHeader+"A\n")

	r := NewRefresher(NewHTTPSource(ts.URL, 5*time.Second), NewStore(db), cache.NewSnapshotCache())
	r.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for fs.hits.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
	if fs.hits.Load() < 3 {
		t.Fatalf("expected startup plus timer refreshes, got %d fetches", fs.hits.Load())
	}
}
