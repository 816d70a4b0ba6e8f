package shipment

import (
	"fmt"
	"io"
	"strings"
)

// ParseCSV turns the sheet export into rows. The first line is the header and is
// dropped. Lines are split on every comma: quoted fields and embedded commas are not
// supported, and the columns are read positionally. Short lines leave the missing
// fields empty.
func ParseCSV(text string) []Row {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	rows := make([]Row, 0, len(lines))
	for i := 1; i < len(lines); i++ {
		cols := strings.Split(strings.TrimSuffix(lines[i], "\r"), ",")
		col := func(n int) string {
			if n < len(cols) {
				return cols[n]
			}
			return ""
		}
		rows = append(rows, Row{
			Vessel:           col(0),
			ClearanceDate:    col(1),
			SailingTime:      col(2),
			Port:             col(3),
			ArrivalDate:      col(4),
			Quantity:         col(5),
			SOStatus:         StatusFromFlag(col(6)),
			QuarantineTime:   col(7),
			DrugNo:           col(8),
			QuarantineCertNo: col(9),
			StuffingDate:     col(10),
			TelexStatus:      StatusFromFlag(col(11)),
		})
	}
	return rows
}

// ReadCSV reads the whole feed body and parses it.
func ReadCSV(r io.Reader) ([]Row, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return ParseCSV(string(body)), nil
}
