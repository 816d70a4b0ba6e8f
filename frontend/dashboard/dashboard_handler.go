package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"shiptrack/frontend/shared/i18n"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/shipment"
)

// TablePageHandler renders the filtered, sorted shipment table.
func TablePageHandler(snapshot *cache.SnapshotCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData(w, r, snapshot, shipment.ModeTable)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := TablePage(data).Render(r.Context(), w); err != nil {
			slog.Error("render table page failed", slog.Any("err", err))
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		}
	}
}

// CalendarPageHandler renders the week or month calendar.
func CalendarPageHandler(snapshot *cache.SnapshotCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData(w, r, snapshot, shipment.ModeCalendar)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CalendarPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render calendar page failed", slog.Any("err", err))
			http.Error(w, "failed to render calendar", http.StatusInternalServerError)
		}
	}
}

// ShipmentsAPIHandler returns the table rows as JSON.
func ShipmentsAPIHandler(snapshot *cache.SnapshotCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := snapshot.Current()
		rows := StateFromRequest(r, current.Rows, time.Now()).Filtered()
		writeJSON(w, ShipmentsResponse{
			Snapshot: snapshotInfo(current),
			Count:    len(rows),
			Rows:     rows,
		})
	}
}

// CalendarAPIHandler returns the projected calendar cells as JSON.
func CalendarAPIHandler(snapshot *cache.SnapshotCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := snapshot.Current()
		state := StateFromRequest(r, current.Rows, time.Now())
		writeJSON(w, CalendarResponse{
			Snapshot: snapshotInfo(current),
			View:     state.View.String(),
			Anchor:   shipment.FormatDate(state.Anchor),
			Period:   state.PeriodLabel(),
			Cells:    state.Cells(),
		})
	}
}

func pageData(w http.ResponseWriter, r *http.Request, snapshot *cache.SnapshotCache, mode shipment.Mode) PageData {
	current := snapshot.Current()
	state := StateFromRequest(r, current.Rows, time.Now())
	state.Mode = mode
	return PageData{
		Lang:     i18n.FromRequest(w, r),
		State:    state,
		Snapshot: snapshotInfo(current),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", slog.Any("err", err))
	}
}
