package exports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"shiptrack/frontend/shared/i18n"
	"shiptrack/infrastructure/shipment"
)

// writeShipmentsXLSX writes a single-sheet workbook with a bold, localized header.
func writeShipmentsXLSX(w io.Writer, rows []shipment.Row, lang string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := columnHeader(lang)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(shipment.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := r.Record()
		record[shipment.SortSOStatus-1] = statusLabel(lang, r.SOStatus, "statusSOdone", "statusSOpending")
		record[shipment.SortTelexStatus-1] = statusLabel(lang, r.TelexStatus, "statusTelexDone", "statusTelexPending")
		if err := f.SetSheetRow(sheetName, cell, &record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

func statusLabel(lang string, s shipment.Status, doneKey, pendingKey string) string {
	if s == shipment.StatusDone {
		return i18n.T(lang, doneKey)
	}
	return i18n.T(lang, pendingKey)
}
