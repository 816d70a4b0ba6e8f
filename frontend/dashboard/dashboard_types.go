package dashboard

import (
	"net/http"
	"net/url"
	"time"

	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/shipment"
)

// RefreshSeconds matches the feed polling period so open pages pick up new snapshots.
const RefreshSeconds = 180

// StateFromRequest rebuilds the dashboard state from query parameters:
// q, so, telex, sort, order, view and date. A missing or invalid date anchors at now.
func StateFromRequest(r *http.Request, rows []shipment.Row, now time.Time) shipment.State {
	q := r.URL.Query()
	state := shipment.NewState(rows, now)
	state.Criteria = shipment.Criteria{
		Keyword:   q.Get("q"),
		SO:        shipment.ParseStatusFilter(q.Get("so")),
		Telex:     shipment.ParseStatusFilter(q.Get("telex")),
		SortKey:   shipment.ParseSortKey(q.Get("sort")),
		SortOrder: shipment.ParseSortOrder(q.Get("order")),
	}
	state.View = shipment.ParseView(q.Get("view"))
	if anchor, ok := shipment.ParseDate(q.Get("date")); ok {
		state = state.Today(anchor)
	}
	return state
}

// Values encodes s back into query parameters. Defaults are left out.
func Values(s shipment.State) url.Values {
	v := url.Values{}
	c := s.Criteria
	if c.Keyword != "" {
		v.Set("q", c.Keyword)
	}
	if c.SO != shipment.FilterAll {
		v.Set("so", c.SO.String())
	}
	if c.Telex != shipment.FilterAll {
		v.Set("telex", c.Telex.String())
	}
	if c.SortKey != shipment.SortNone {
		v.Set("sort", c.SortKey.String())
		v.Set("order", c.SortOrder.String())
	}
	if s.Mode == shipment.ModeCalendar {
		v.Set("view", s.View.String())
		v.Set("date", shipment.FormatDate(s.Anchor))
	}
	return v
}

// Href is the page URL that renders s.
func Href(s shipment.State) string {
	path := "/"
	if s.Mode == shipment.ModeCalendar {
		path = "/calendar"
	}
	if enc := Values(s).Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// PageData is what the table and calendar screens render from.
type PageData struct {
	Lang     string
	State    shipment.State
	Snapshot SnapshotInfo
}

// SnapshotInfo describes the data behind the page.
type SnapshotInfo struct {
	RunID     string    `json:"runId"`
	FetchedAt time.Time `json:"fetchedAt"`
	Total     int       `json:"total"`
}

func snapshotInfo(s cache.Snapshot) SnapshotInfo {
	return SnapshotInfo{RunID: s.RunID, FetchedAt: s.FetchedAt, Total: len(s.Rows)}
}

// ShipmentsResponse is the body of GET /api/shipments.
type ShipmentsResponse struct {
	Snapshot SnapshotInfo   `json:"snapshot"`
	Count    int            `json:"count"`
	Rows     []shipment.Row `json:"rows"`
}

// CalendarResponse is the body of GET /api/calendar.
type CalendarResponse struct {
	Snapshot SnapshotInfo    `json:"snapshot"`
	View     string          `json:"view"`
	Anchor   string          `json:"anchor"`
	Period   string          `json:"period"`
	Cells    []shipment.Cell `json:"cells"`
}
