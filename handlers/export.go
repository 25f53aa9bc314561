package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fomezero/export"
)

// ExportHandler downloads the table of the selected countries. format is one
// of export.Names and defaults to csv.
func ExportHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("format")
		if name == "" {
			name = "csv"
		}
		format, ok := export.Lookup(name)
		if !ok {
			fail(w, d.Logger, &paramError{param: "format", msg: "must be one of " + strings.Join(export.Names(), ", ")})
			return
		}

		_, table, _, err := d.load(r.Context(), r.URL.Query())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}

		// Buffered: a failed export is still answered with a JSON error.
		var buf bytes.Buffer
		if err := format.Write(r.Context(), &buf, table); err != nil {
			d.Logger.Error("Export failed", zap.String("format", format.Name), zap.Error(err))
			ErrorResponse(w, http.StatusInternalServerError, "export failed: "+err.Error())
			return
		}

		w.Header().Set("Content-Type", format.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="restaurants`+format.Extension+`"`)
		w.Write(buf.Bytes())
	}
}
