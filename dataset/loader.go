// Package dataset builds the canonical table a request works on.
package dataset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fomezero/cleansing"
	"fomezero/models"
	"fomezero/source"
)

// Loader reads and cleanses a fresh canonical table on every Load. Nothing is
// cached between calls, so no two requests ever share a table.
type Loader struct {
	Source   source.Source
	Pipeline *cleansing.Pipeline
	Logger   *zap.Logger
}

// Load reads the source and runs the cleansing pipeline over it. Cleansing
// failures are returned unchanged so callers can match them with errors.As.
func (l *Loader) Load(ctx context.Context) (models.Table, cleansing.Report, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	raw, err := l.Source.Read(ctx)
	if err != nil {
		return models.Table{}, cleansing.Report{}, fmt.Errorf("failed to read %s: %w", l.Source.Describe(), err)
	}

	table, report, err := l.Pipeline.Cleanse(raw)
	if err != nil {
		logger.Error("Cleansing failed", zap.String("source", l.Source.Describe()), zap.Error(err))
		return models.Table{}, report, err
	}

	logger.Debug("Dataset loaded",
		zap.String("source", l.Source.Describe()),
		zap.Int("rows", table.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return table, report, nil
}
