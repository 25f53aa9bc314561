// Package source reads raw restaurant tables from CSV files and SQL tables.
package source

import (
	"context"

	"fomezero/models"
)

// Source produces a raw table. Every call reads the underlying data afresh.
type Source interface {
	Read(ctx context.Context) (models.RawTable, error)
	// Describe names the source for logs and error messages.
	Describe() string
}
