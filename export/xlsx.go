package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fomezero/models"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "restaurants"

// WriteXLSX writes t as a single-sheet workbook with a bold header row.
// Numeric columns are stored as numbers.
func WriteXLSX(w io.Writer, t models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := make([]any, len(t.Columns))
	for i := range t.Rows {
		for j, col := range t.Columns {
			v := typedValue(&t.Rows[i], col)
			if v == nil {
				v = ""
			}
			row[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
