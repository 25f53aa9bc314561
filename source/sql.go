package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"fomezero/models"
)

// SQL reads every row of one table through database/sql. Any driver that
// accepts double-quoted identifiers works; the server registers postgres and
// sqlite.
type SQL struct {
	DB    *sql.DB
	Table string
}

func (s SQL) Describe() string { return "table " + s.Table }

func (s SQL) Read(ctx context.Context) (models.RawTable, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT * FROM "+pq.QuoteIdentifier(s.Table))
	if err != nil {
		return models.RawTable{}, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("failed to read columns of %s: %w", s.Table, err)
	}

	raw := models.RawTable{Columns: cols}
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return models.RawTable{}, fmt.Errorf("failed to scan row %d of %s: %w", len(raw.Rows)+1, s.Table, err)
		}
		rec := make([]string, len(cols))
		for i, v := range values {
			rec[i] = cell(v)
		}
		raw.Rows = append(raw.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return models.RawTable{}, fmt.Errorf("failed to read %s: %w", s.Table, err)
	}
	return raw, nil
}

// cell renders a scanned driver value; NULL becomes the empty cell.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
