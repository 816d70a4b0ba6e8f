package exports

import (
	"encoding/csv"
	"io"

	"shiptrack/infrastructure/shipment"
)

// writeShipmentsCSV writes the localized header then one raw record per row.
func writeShipmentsCSV(w io.Writer, rows []shipment.Row, lang string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(columnHeader(lang)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(r.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
