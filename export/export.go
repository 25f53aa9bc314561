// Package export serializes a canonical table for download.
package export

import (
	"context"
	"io"
	"strings"

	"fomezero/models"
)

// Format is one supported download format.
type Format struct {
	Name        string
	ContentType string
	Extension   string
	write       func(ctx context.Context, w io.Writer, t models.Table) error
}

// Write serializes t to w.
func (f Format) Write(ctx context.Context, w io.Writer, t models.Table) error {
	return f.write(ctx, w, t)
}

// Formats lists the supported formats, CSV first.
var Formats = []Format{
	{
		Name:        "csv",
		ContentType: "text/csv; charset=utf-8",
		Extension:   ".csv",
		write:       func(_ context.Context, w io.Writer, t models.Table) error { return WriteCSV(w, t) },
	},
	{
		Name:        "xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Extension:   ".xlsx",
		write:       func(_ context.Context, w io.Writer, t models.Table) error { return WriteXLSX(w, t) },
	},
	{
		Name:        "parquet",
		ContentType: "application/vnd.apache.parquet",
		Extension:   ".parquet",
		write:       func(_ context.Context, w io.Writer, t models.Table) error { return WriteParquet(w, t) },
	},
	{
		Name:        "sqlite",
		ContentType: "application/vnd.sqlite3",
		Extension:   ".sqlite",
		write:       streamSQLite,
	},
}

// Lookup finds a format by name, ignoring case.
func Lookup(name string) (Format, bool) {
	for _, f := range Formats {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Format{}, false
}

// Names returns the names of Formats in order.
func Names() []string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, f.Name)
	}
	return names
}

// typedValue returns the cell of column as a number where the column is
// numeric, nil for a missing measure, and text otherwise.
func typedValue(r *models.Restaurant, column string) any {
	switch column {
	case models.ColRestaurantID:
		return r.RestaurantID
	case models.ColCountryCode:
		return int64(r.CountryCode)
	case models.ColVotes:
		if r.Votes == nil {
			return nil
		}
		return *r.Votes
	case models.ColLongitude:
		return floatValue(r.Longitude)
	case models.ColLatitude:
		return floatValue(r.Latitude)
	case models.ColAverageCostForTwo:
		return floatValue(r.AverageCostForTwo)
	case models.ColAggregateRating:
		return floatValue(r.AggregateRating)
	}
	return r.Value(column)
}

func floatValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
