package console

import (
	"context"
	"time"

	"shiptrack/frontend/exports"
	"shiptrack/frontend/shared/html"
	"shiptrack/models"
)

// RunHistoryLimit is how many refresh runs the feed page lists.
const RunHistoryLimit = 50

// FeedRefresher is the part of feed.Refresher the console drives.
type FeedRefresher interface {
	RefreshNow(ctx context.Context, trigger string) (models.FeedRefreshRun, error)
	LastRun() (models.FeedRefreshRun, bool)
	ListRuns(ctx context.Context, limit int) ([]models.FeedRefreshRun, error)
}

type FeedPageData struct {
	Nav        html.TopNavData
	FeedURL    string
	RunID      string
	FetchedAt  time.Time
	RowCount   int
	LastRun    *models.FeedRefreshRun
	Runs       []models.FeedRefreshRun
	Exports    []exports.RunSummary
	CanRefresh bool
	Status     string
	Error      string
}
