package shipment

import (
	"sort"
	"strings"
)

// StatusFilter selects rows by document status.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterDone
	FilterPending
)

func (f StatusFilter) String() string {
	switch f {
	case FilterDone:
		return "done"
	case FilterPending:
		return "pending"
	default:
		return "all"
	}
}

// ParseStatusFilter maps "done"/"pending" to their filters and anything else to FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "done":
		return FilterDone
	case "pending":
		return FilterPending
	default:
		return FilterAll
	}
}

// Match reports whether a row with status s passes the filter.
func (f StatusFilter) Match(s Status) bool {
	switch f {
	case FilterDone:
		return s == StatusDone
	case FilterPending:
		return s == StatusPending
	default:
		return true
	}
}

// SortOrder is the direction of a column sort.
type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

func (o SortOrder) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

// ParseSortOrder returns Desc for "desc" and Asc otherwise.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

// Criteria is the table filter and sort input.
type Criteria struct {
	Keyword   string
	SO        StatusFilter
	Telex     StatusFilter
	SortKey   SortKey
	SortOrder SortOrder
}

// Apply returns the rows matching c, sorted when c names a sort key. The input
// slice is left untouched.
func Apply(rows []Row, c Criteria) []Row {
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if !matchKeyword(row, keyword) {
			continue
		}
		if !c.SO.Match(row.SOStatus) || !c.Telex.Match(row.TelexStatus) {
			continue
		}
		out = append(out, row)
	}

	if c.SortKey == SortNone {
		return out
	}

	key := c.SortKey
	desc := c.SortOrder == Desc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Field(key), out[j].Field(key)
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func matchKeyword(row Row, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.Vessel), keyword) ||
		strings.Contains(strings.ToLower(row.Port), keyword) ||
		strings.Contains(strings.ToLower(row.DrugNo), keyword)
}
