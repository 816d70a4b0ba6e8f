package shipment

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// View is the calendar granularity.
type View int

const (
	ViewWeek View = iota
	ViewMonth
)

func (v View) String() string {
	if v == ViewMonth {
		return "month"
	}
	return "week"
}

// ParseView returns ViewMonth for "month" and ViewWeek otherwise.
func ParseView(s string) View {
	if strings.EqualFold(strings.TrimSpace(s), "month") {
		return ViewMonth
	}
	return ViewWeek
}

// EventKind is the date column an event came from.
type EventKind int

const (
	EventClearance EventKind = iota
	EventSailing
	EventArrival
)

func (k EventKind) String() string {
	switch k {
	case EventSailing:
		return "sailing"
	case EventArrival:
		return "arrival"
	default:
		return "clearance"
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one row date landing on a calendar day.
type Event struct {
	Kind   EventKind `json:"kind"`
	Vessel string    `json:"vessel"`
}

// Cell is one calendar day.
type Cell struct {
	Date     time.Time `json:"-"`
	Label    string    `json:"date"`
	InPeriod bool      `json:"inPeriod"`
	Events   []Event   `json:"events"`
}

// FormatDate renders t as YYYY-MM-DD, the form row dates are compared against.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD anchor in the local zone.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday on or before t. A Sunday belongs to the week that
// started six days earlier.
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		return addDays(t, -6)
	}
	return addDays(t, 1-wd)
}

func gridStart(anchor time.Time, v View) (time.Time, int) {
	if v == ViewMonth {
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return WeekStart(first), 42
	}
	return WeekStart(anchor), 7
}

// Project lays rows onto the week or month grid around anchor. Week grids have 7
// cells starting on Monday; month grids have 42 cells starting on the Monday on or
// before the 1st. Row dates are matched by exact string equality with the cell label.
func Project(rows []Row, anchor time.Time, v View) []Cell {
	start, n := gridStart(anchor, v)
	cells := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		day := addDays(start, i)
		label := FormatDate(day)
		cell := Cell{
			Date:     day,
			Label:    label,
			InPeriod: v == ViewWeek || day.Month() == anchor.Month(),
			Events:   make([]Event, 0),
		}
		for _, row := range rows {
			if row.ClearanceDate == label {
				cell.Events = append(cell.Events, Event{Kind: EventClearance, Vessel: row.Vessel})
			}
			if row.SailingTime == label {
				cell.Events = append(cell.Events, Event{Kind: EventSailing, Vessel: row.Vessel})
			}
			if row.ArrivalDate == label {
				cell.Events = append(cell.Events, Event{Kind: EventArrival, Vessel: row.Vessel})
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

// Shift moves anchor by step periods: 7 days per step in week view, or to the 1st
// of the month step months away in month view.
func Shift(anchor time.Time, v View, step int) time.Time {
	if v == ViewMonth {
		return time.Date(anchor.Year(), anchor.Month()+time.Month(step), 1, 0, 0, 0, 0, anchor.Location())
	}
	return addDays(anchor, 7*step)
}

// PeriodLabel is the heading shown above the grid.
func PeriodLabel(anchor time.Time, v View) string {
	if v == ViewMonth {
		return fmt.Sprintf("%d/%d", anchor.Year(), int(anchor.Month()))
	}
	start := WeekStart(anchor)
	return FormatDate(start) + " - " + FormatDate(addDays(start, 6))
}
