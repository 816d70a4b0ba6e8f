package exports

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"shiptrack/infrastructure/shipment"
)

const (
	pdfMargin      = 10.0
	pdfHeaderH     = 8.0
	pdfRowH        = 7.0
	pdfBarcodeRowH = 16.0
)

// pdfWidths are the column widths in mm; they add up to the A4 landscape body width.
var pdfWidths = []float64{34, 22, 24, 22, 22, 12, 16, 26, 36, 24, 22, 17}

// renderShipmentsPDF lays the rows out as a landscape table. Rows with a drug
// number carry a Code128 barcode of it.
func renderShipmentsPDF(rows []shipment.Row, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Shipments", false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageH := pdf.GetPageSize()
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, fmt.Sprintf("Shipments (%d)", len(rows)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writePDFHeader(pdf)
	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 10, "No shipments", "", 1, "C", false, 0, "")
	}

	for i, r := range rows {
		var barcodePNG []byte
		if drug := strings.TrimSpace(r.DrugNo); drug != "" {
			img, err := renderCode128PNG(drug, 600, 120)
			if err != nil {
				slog.Debug("skip drug number barcode", slog.String("drug_no", drug), slog.Any("err", err))
			} else {
				barcodePNG = img
			}
		}

		rowH := pdfRowH
		if barcodePNG != nil {
			rowH = pdfBarcodeRowH
		}
		if pdf.GetY()+rowH > pageH-pdfMargin {
			pdf.AddPage()
			writePDFHeader(pdf)
		}

		pdf.SetFont("Helvetica", "", 8)
		x, y := pdf.GetXY()
		for c, value := range r.Record() {
			align := "LM"
			if shipment.Columns[c] == shipment.SortDrugNo && barcodePNG != nil {
				align = "CB"
			}
			pdf.CellFormat(pdfWidths[c], rowH, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)

		if barcodePNG != nil {
			opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
			name := fmt.Sprintf("drug-barcode-%d", i)
			pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(barcodePNG))
			drugX := x
			for c := 0; c < int(shipment.SortDrugNo)-1; c++ {
				drugX += pdfWidths[c]
			}
			w := pdfWidths[shipment.SortDrugNo-1]
			pdf.ImageOptions(name, drugX+1.5, y+1, w-3, rowH-6, false, opt, 0, "")
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writePDFHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 236, 245)
	for c, key := range shipment.Columns {
		pdf.CellFormat(pdfWidths[c], pdfHeaderH, pdfHeaders[key], "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(scaled.Bounds())
	draw.Draw(dst, dst.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
