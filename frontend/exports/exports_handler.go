package exports

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"shiptrack/frontend/dashboard"
	"shiptrack/frontend/shared/i18n"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/shipment"
	"shiptrack/infrastructure/sqlite"
)

// ShipmentsCSVHandler downloads the current dashboard view as CSV.
func ShipmentsCSVHandler(db *sqlite.DB, snapshot *cache.SnapshotCache) http.HandlerFunc {
	return exportHandler(db, snapshot, TypeCSV, "text/csv; charset=utf-8", "csv",
		func(w io.Writer, rows []shipment.Row, r *http.Request) error {
			return writeShipmentsCSV(w, rows, i18n.Resolve(r))
		})
}

// ShipmentsXLSXHandler downloads the current dashboard view as an Excel workbook.
func ShipmentsXLSXHandler(db *sqlite.DB, snapshot *cache.SnapshotCache) http.HandlerFunc {
	return exportHandler(db, snapshot, TypeXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx",
		func(w io.Writer, rows []shipment.Row, r *http.Request) error {
			return writeShipmentsXLSX(w, rows, i18n.Resolve(r))
		})
}

// ShipmentsPDFHandler downloads the current dashboard view as a PDF table.
func ShipmentsPDFHandler(db *sqlite.DB, snapshot *cache.SnapshotCache) http.HandlerFunc {
	return exportHandler(db, snapshot, TypePDF, "application/pdf", "pdf",
		func(w io.Writer, rows []shipment.Row, _ *http.Request) error {
			out, err := renderShipmentsPDF(rows, time.Now())
			if err != nil {
				return err
			}
			_, err = w.Write(out)
			return err
		})
}

type renderFunc func(w io.Writer, rows []shipment.Row, r *http.Request) error

func exportHandler(db *sqlite.DB, snapshot *cache.SnapshotCache, exportType, contentType, ext string, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		rows := dashboard.StateFromRequest(r, snapshot.Rows(), now).Filtered()

		var buf bytes.Buffer
		if err := render(&buf, rows, r); err != nil {
			slog.Error("render export failed", slog.String("type", exportType), slog.Any("err", err))
			http.Error(w, "failed to export "+ext, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", "attachment; filename=shipments-"+now.Format("20060102-1504")+"."+ext)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Warn("write export response failed", slog.String("type", exportType), slog.Any("err", err))
			return
		}
		if err := recordExportRun(r.Context(), db, exportType, len(rows)); err != nil {
			slog.Error("record export run failed", slog.String("type", exportType), slog.Any("err", err))
		}
	}
}
