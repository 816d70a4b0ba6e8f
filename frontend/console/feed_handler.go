package console

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/uptrace/bun"

	"shiptrack/frontend/exports"
	sessioncontext "shiptrack/frontend/shared/context"
	"shiptrack/frontend/shared/html"
	"shiptrack/infrastructure/audit"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/feed"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
)

const feedPath = "/console/feed"

// FeedPageQueryHandler shows the current snapshot and the refresh history.
func FeedPageQueryHandler(db *sqlite.DB, refresher FeedRefresher, snapshot *cache.SnapshotCache, feedURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		runs, err := refresher.ListRuns(r.Context(), RunHistoryLimit)
		if err != nil {
			slog.Error("list refresh runs failed", slog.Any("err", err))
			http.Error(w, "failed to load refresh history", http.StatusInternalServerError)
			return
		}
		exportRuns, err := exports.ListRecentRuns(r.Context(), db, 20)
		if err != nil {
			slog.Error("list export runs failed", slog.Any("err", err))
			http.Error(w, "failed to load export history", http.StatusInternalServerError)
			return
		}

		current := snapshot.Current()
		data := FeedPageData{
			Nav:        html.BuildTopNavData(session),
			FeedURL:    feedURL,
			RunID:      current.RunID,
			FetchedAt:  current.FetchedAt,
			RowCount:   len(current.Rows),
			Runs:       runs,
			Exports:    exportRuns,
			CanRefresh: sessioncontext.HasRole(r.Context(), rbac.RoleAdmin),
			Status:     r.URL.Query().Get("status"),
			Error:      r.URL.Query().Get("error"),
		}
		if last, ok := refresher.LastRun(); ok {
			data.LastRun = &last
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := FeedPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render feed page failed", slog.Any("err", err))
			http.Error(w, "failed to render feed page", http.StatusInternalServerError)
		}
	}
}

// RefreshFeedCommandHandler runs one manual refresh and audit-logs it.
func RefreshFeedCommandHandler(db *sqlite.DB, refresher FeedRefresher, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		run, refreshErr := refresher.RefreshNow(r.Context(), feed.TriggerManual)

		err := db.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			return auditSvc.Write(ctx, tx, audit.Entry{
				UserID:     session.UserID,
				Action:     "feed.refresh",
				EntityType: "feed_refresh_run",
				EntityID:   run.ID,
				After: map[string]any{
					"status":    run.Status,
					"row_count": run.RowCount,
					"error":     run.Error,
				},
			})
		})
		if err != nil {
			slog.Error("write refresh audit failed", slog.String("run_id", run.ID), slog.Any("err", err))
		}

		if refreshErr != nil {
			http.Redirect(w, r, feedPath+"?error="+url.QueryEscape("Refresh failed: "+refreshErr.Error()), http.StatusSeeOther)
			return
		}
		msg := fmt.Sprintf("Feed refreshed: %d rows", run.RowCount)
		http.Redirect(w, r, feedPath+"?status="+url.QueryEscape(msg), http.StatusSeeOther)
	}
}
