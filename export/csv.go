package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"fomezero/models"
)

// WriteCSV writes t with a header row of its columns. Missing values are
// empty cells.
func WriteCSV(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for i := range t.Rows {
		for j, col := range t.Columns {
			rec[j] = t.Rows[i].Value(col)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
