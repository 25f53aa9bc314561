package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"fomezero/models"
)

// Row is the Parquet schema of a canonical record. Columns outside the
// canonical set are not written.
type Row struct {
	RestaurantID      int64    `parquet:"restaurant_id"`
	RestaurantName    string   `parquet:"restaurant_name"`
	CountryCode       int32    `parquet:"country_code"`
	CountryName       string   `parquet:"country_name"`
	City              string   `parquet:"city"`
	Address           string   `parquet:"address"`
	Locality          string   `parquet:"locality"`
	LocalityVerbose   string   `parquet:"locality_verbose"`
	Longitude         *float64 `parquet:"longitude,optional"`
	Latitude          *float64 `parquet:"latitude,optional"`
	Cuisines          string   `parquet:"cuisines"`
	UniqueCuisine     string   `parquet:"unique_cuisine"`
	AverageCostForTwo *float64 `parquet:"average_cost_for_two,optional"`
	Currency          string   `parquet:"currency"`
	HasTableBooking   string   `parquet:"has_table_booking"`
	HasOnlineDelivery string   `parquet:"has_online_delivery"`
	IsDeliveringNow   string   `parquet:"is_delivering_now"`
	PriceRange        string   `parquet:"price_range"`
	AggregateRating   *float64 `parquet:"aggregate_rating,optional"`
	RatingColor       string   `parquet:"rating_color"`
	RatingText        string   `parquet:"rating_text"`
	Votes             *int64   `parquet:"votes,optional"`
}

func toRow(r *models.Restaurant) Row {
	c := r.Clone()
	return Row{
		RestaurantID:      c.RestaurantID,
		RestaurantName:    c.RestaurantName,
		CountryCode:       int32(c.CountryCode),
		CountryName:       c.CountryName,
		City:              c.City,
		Address:           c.Address,
		Locality:          c.Locality,
		LocalityVerbose:   c.LocalityVerbose,
		Longitude:         c.Longitude,
		Latitude:          c.Latitude,
		Cuisines:          c.Cuisines,
		UniqueCuisine:     c.UniqueCuisine,
		AverageCostForTwo: c.AverageCostForTwo,
		Currency:          c.Currency,
		HasTableBooking:   c.HasTableBooking,
		HasOnlineDelivery: c.HasOnlineDelivery,
		IsDeliveringNow:   c.IsDeliveringNow,
		PriceRange:        c.PriceRange,
		AggregateRating:   c.AggregateRating,
		RatingColor:       c.RatingColor,
		RatingText:        c.RatingText,
		Votes:             c.Votes,
	}
}

// WriteParquet writes t as a snappy-compressed Parquet file with the Row
// schema.
func WriteParquet(w io.Writer, t models.Table) error {
	writer := parquet.NewGenericWriter[Row](w,
		parquet.Compression(&parquet.Snappy),
		parquet.CreatedBy("fomezero", "1.0", ""),
	)

	rows := make([]Row, 0, len(t.Rows))
	for i := range t.Rows {
		rows = append(rows, toRow(&t.Rows[i]))
	}
	if _, err := writer.Write(rows); err != nil {
		writer.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
