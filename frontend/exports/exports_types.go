package exports

import (
	"shiptrack/frontend/shared/i18n"
	"shiptrack/infrastructure/shipment"
)

const (
	TypeCSV  = "shipments_csv"
	TypeXLSX = "shipments_xlsx"
	TypePDF  = "shipments_pdf"
)

const sheetName = "Shipments"

// pdfHeaders label the PDF table. Core PDF fonts are Latin-1 only, so the
// dashboard's zh/ja strings are not used here.
var pdfHeaders = map[shipment.SortKey]string{
	shipment.SortVessel:           "Vessel",
	shipment.SortClearanceDate:    "Clearance",
	shipment.SortSailingTime:      "Sailing",
	shipment.SortPort:             "Port",
	shipment.SortArrivalDate:      "Arrival",
	shipment.SortQuantity:         "Qty",
	shipment.SortSOStatus:         "SO",
	shipment.SortQuarantineTime:   "Quarantine",
	shipment.SortDrugNo:           "Drug No.",
	shipment.SortQuarantineCertNo: "Cert No.",
	shipment.SortStuffingDate:     "Stuffing",
	shipment.SortTelexStatus:      "Telex",
}

// RunSummary is one line of the export history shown in the console.
type RunSummary struct {
	ExportType string
	RowCount   int
	CreatedAt  string
}

// columnHeader is the localized header row shared by the CSV and XLSX exports.
func columnHeader(lang string) []string {
	out := make([]string, 0, len(shipment.Columns))
	for _, key := range shipment.Columns {
		out = append(out, i18n.T(lang, i18n.ColumnKey(key.String())))
	}
	return out
}
