package handlers

import (
	"context"

	"go.uber.org/zap"

	"fomezero/cleansing"
	"fomezero/config"
	"fomezero/models"
	"fomezero/query"
)

// TableLoader yields a fresh canonical table per call.
type TableLoader interface {
	Load(ctx context.Context) (models.Table, cleansing.Report, error)
}

// Deps is shared by every view controller. None of it is modified after
// startup.
type Deps struct {
	Loader  TableLoader
	Service *query.Service
	Views   config.ViewsConfig
	Logger  *zap.Logger
}
