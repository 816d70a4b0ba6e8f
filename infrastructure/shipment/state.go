package shipment

import "time"

// Mode is the dashboard tab.
type Mode int

const (
	ModeTable Mode = iota
	ModeCalendar
)

// State is everything the dashboard renders from. Methods return modified copies.
type State struct {
	Rows     []Row
	Criteria Criteria
	Mode     Mode
	View     View
	Anchor   time.Time
}

// NewState starts on the table tab with the week view anchored at now.
func NewState(rows []Row, now time.Time) State {
	return State{Rows: rows, Anchor: midnight(now)}
}

// WithRows replaces the whole row set.
func (s State) WithRows(rows []Row) State {
	s.Rows = rows
	return s
}

// ToggleSort flips the order when key is already the sort key, otherwise sorts
// ascending by key.
func (s State) ToggleSort(key SortKey) State {
	if key == s.Criteria.SortKey {
		s.Criteria.SortOrder = s.Criteria.SortOrder.Toggle()
		return s
	}
	s.Criteria.SortKey = key
	s.Criteria.SortOrder = Asc
	return s
}

func (s State) Prev() State {
	s.Anchor = Shift(s.Anchor, s.View, -1)
	return s
}

func (s State) Next() State {
	s.Anchor = Shift(s.Anchor, s.View, 1)
	return s
}

func (s State) Today(now time.Time) State {
	s.Anchor = midnight(now)
	return s
}

// Filtered is the table row sequence.
func (s State) Filtered() []Row {
	return Apply(s.Rows, s.Criteria)
}

// Cells is the calendar grid for the filtered rows.
func (s State) Cells() []Cell {
	return Project(s.Filtered(), s.Anchor, s.View)
}

func (s State) PeriodLabel() string {
	return PeriodLabel(s.Anchor, s.View)
}
