// Package shipment parses the shipment feed and derives the filtered table and
// calendar views from it. Everything here is a pure function over in-memory rows.
package shipment

import "fmt"

// Status is the release state of a shipping document.
type Status int

const (
	StatusPending Status = iota
	StatusDone
)

func (s Status) String() string {
	if s == StatusDone {
		return "done"
	}
	return "pending"
}

// MarshalText lets rows encode statuses as "done"/"pending".
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "done":
		*s = StatusDone
	case "pending":
		*s = StatusPending
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// StatusFromFlag maps a raw sheet flag to a Status. Only the literal "1" is done.
func StatusFromFlag(raw string) Status {
	if raw == "1" {
		return StatusDone
	}
	return StatusPending
}

// Row is one shipment record from the feed.
type Row struct {
	Vessel           string `json:"vessel"`
	ClearanceDate    string `json:"clearanceDate"`
	SailingTime      string `json:"sailingTime"`
	Port             string `json:"port"`
	ArrivalDate      string `json:"arrivalDate"`
	Quantity         string `json:"quantity"`
	SOStatus         Status `json:"soStatus"`
	QuarantineTime   string `json:"quarantineTime"`
	DrugNo           string `json:"drugNo"`
	QuarantineCertNo string `json:"quarantineCertNo"`
	StuffingDate     string `json:"stuffingDate"`
	TelexStatus      Status `json:"telexStatus"`
}

// SortKey names a sortable column.
type SortKey int

const (
	SortNone SortKey = iota
	SortVessel
	SortClearanceDate
	SortSailingTime
	SortPort
	SortArrivalDate
	SortQuantity
	SortSOStatus
	SortQuarantineTime
	SortDrugNo
	SortQuarantineCertNo
	SortStuffingDate
	SortTelexStatus
)

var sortKeyNames = map[SortKey]string{
	SortVessel:           "vessel",
	SortClearanceDate:    "clearanceDate",
	SortSailingTime:      "sailingTime",
	SortPort:             "port",
	SortArrivalDate:      "arrivalDate",
	SortQuantity:         "quantity",
	SortSOStatus:         "soStatus",
	SortQuarantineTime:   "quarantineTime",
	SortDrugNo:           "drugNo",
	SortQuarantineCertNo: "quarantineCertNo",
	SortStuffingDate:     "stuffingDate",
	SortTelexStatus:      "telexStatus",
}

// Columns lists the sortable keys in feed column order.
var Columns = []SortKey{
	SortVessel,
	SortClearanceDate,
	SortSailingTime,
	SortPort,
	SortArrivalDate,
	SortQuantity,
	SortSOStatus,
	SortQuarantineTime,
	SortDrugNo,
	SortQuarantineCertNo,
	SortStuffingDate,
	SortTelexStatus,
}

func (k SortKey) String() string {
	return sortKeyNames[k]
}

// ParseSortKey accepts the column names used in URLs. Unknown names return SortNone.
func ParseSortKey(s string) SortKey {
	for k, name := range sortKeyNames {
		if name == s {
			return k
		}
	}
	return SortNone
}

// Field returns the string value of the column named by key.
func (r Row) Field(key SortKey) string {
	switch key {
	case SortVessel:
		return r.Vessel
	case SortClearanceDate:
		return r.ClearanceDate
	case SortSailingTime:
		return r.SailingTime
	case SortPort:
		return r.Port
	case SortArrivalDate:
		return r.ArrivalDate
	case SortQuantity:
		return r.Quantity
	case SortSOStatus:
		return r.SOStatus.String()
	case SortQuarantineTime:
		return r.QuarantineTime
	case SortDrugNo:
		return r.DrugNo
	case SortQuarantineCertNo:
		return r.QuarantineCertNo
	case SortStuffingDate:
		return r.StuffingDate
	case SortTelexStatus:
		return r.TelexStatus.String()
	default:
		return ""
	}
}

// Record returns the row as 12 strings in feed column order.
func (r Row) Record() []string {
	out := make([]string, 0, len(Columns))
	for _, key := range Columns {
		out = append(out, r.Field(key))
	}
	return out
}
