package export

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"fomezero/models"
)

// TableName is the table WriteSQLite creates.
const TableName = "restaurants"

var columnTypes = map[string]string{
	models.ColRestaurantID:      "INTEGER PRIMARY KEY",
	models.ColCountryCode:       "INTEGER",
	models.ColVotes:             "INTEGER",
	models.ColLongitude:         "REAL",
	models.ColLatitude:          "REAL",
	models.ColAverageCostForTwo: "REAL",
	models.ColAggregateRating:   "REAL",
}

var indexedColumns = []string{models.ColCountryName, models.ColCity, models.ColUniqueCuisine}

// WriteSQLite writes t into a new SQLite database at path, replacing any file
// already there. Numeric columns are typed; missing measures are NULL.
func WriteSQLite(ctx context.Context, path string, t models.Table) error {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	defs := make([]string, 0, len(t.Columns))
	quoted := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		typ := columnTypes[c]
		if typ == "" {
			typ = "TEXT"
		}
		defs = append(defs, pq.QuoteIdentifier(c)+" "+typ)
		quoted = append(quoted, pq.QuoteIdentifier(c))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", pq.QuoteIdentifier(TableName), strings.Join(defs, ","))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", pq.QuoteIdentifier(TableName), strings.Join(quoted, ","), ph))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for i := range t.Rows {
		for j, c := range t.Columns {
			args[j] = typedValue(&t.Rows[i], c)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	for _, c := range indexedColumns {
		if !slices.Contains(t.Columns, c) {
			continue
		}
		idx := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)",
			pq.QuoteIdentifier("idx_"+TableName+"_"+c), pq.QuoteIdentifier(TableName), pq.QuoteIdentifier(c))
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index on %s: %w", c, err)
		}
	}
	return tx.Commit()
}

// streamSQLite builds the database in a temporary file and copies it to w.
func streamSQLite(ctx context.Context, w io.Writer, t models.Table) error {
	dir, err := os.MkdirTemp("", "fomezero-export-")
	if err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, TableName+".sqlite")
	if err := WriteSQLite(ctx, path, t); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sqlite export: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy sqlite export: %w", err)
	}
	return nil
}
