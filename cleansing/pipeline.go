package cleansing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"fomezero/apperrors"
	"fomezero/directory"
	"fomezero/models"
)

// RequiredColumns must be present, after normalization, in every source.
var RequiredColumns = []string{
	models.ColRestaurantID,
	models.ColRestaurantName,
	models.ColCountryCode,
	models.ColCity,
	models.ColLocality,
	models.ColLocalityVerbose,
	models.ColCuisines,
}

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Report summarizes what a cleansing run changed or noticed.
type Report struct {
	RowsRead            int   `json:"rows_read"`
	RowsKept            int   `json:"rows_kept"`
	DuplicatesRemoved   int   `json:"duplicates_removed"`
	UnknownCountryCodes []int `json:"unknown_country_codes,omitempty"`
	OutOfRangeRatings   int   `json:"out_of_range_ratings"`
}

// Pipeline turns raw tables into canonical tables.
type Pipeline struct {
	dir    *directory.Directory
	logger *zap.Logger
}

// NewPipeline builds a pipeline resolving countries through dir. A nil logger
// disables logging.
func NewPipeline(dir *directory.Directory, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{dir: dir, logger: logger}
}

// Cleanse normalizes the column names of raw, derives country_name, drops
// duplicate restaurant ids (first row wins) and the switch_to_order_menu
// column, trims the name and location fields and derives unique_cuisine.
// raw itself is left untouched.
func (p *Pipeline) Cleanse(raw models.RawTable) (models.Table, Report, error) {
	var report Report

	columns, err := normalizeColumns(raw.Columns)
	if err != nil {
		return models.Table{}, report, err
	}

	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			return models.Table{}, report, apperrors.MissingColumn(c)
		}
	}

	seen := make(map[int64]struct{}, len(raw.Rows))
	unknown := make(map[int]struct{})
	rows := make([]models.Restaurant, 0, len(raw.Rows))

	for i, cells := range raw.Rows {
		report.RowsRead++
		rec := record{columns: columns, cells: cells, row: i + 1}

		r, err := p.buildRestaurant(rec)
		if err != nil {
			return models.Table{}, report, err
		}

		if _, dup := seen[r.RestaurantID]; dup {
			report.DuplicatesRemoved++
			continue
		}
		seen[r.RestaurantID] = struct{}{}

		if r.CountryName == directory.UnknownCountry {
			unknown[r.CountryCode] = struct{}{}
		}
		if r.AggregateRating != nil && (*r.AggregateRating < MinRating || *r.AggregateRating > MaxRating) {
			report.OutOfRangeRatings++
		}
		rows = append(rows, r)
	}

	report.RowsKept = len(rows)
	for code := range unknown {
		report.UnknownCountryCodes = append(report.UnknownCountryCodes, code)
	}
	sort.Ints(report.UnknownCountryCodes)

	p.logger.Debug("Dataset cleansed",
		zap.Int("rows_read", report.RowsRead),
		zap.Int("rows_kept", report.RowsKept),
		zap.Int("duplicates_removed", report.DuplicatesRemoved))
	if len(report.UnknownCountryCodes) > 0 {
		p.logger.Warn("Unknown country codes", zap.Ints("codes", report.UnknownCountryCodes))
	}
	if report.OutOfRangeRatings > 0 {
		p.logger.Warn("Ratings outside the expected range",
			zap.Int("count", report.OutOfRangeRatings),
			zap.Float64("min", MinRating),
			zap.Float64("max", MaxRating))
	}

	return models.Table{Columns: outputColumns(columns), Rows: rows}, report, nil
}

func normalizeColumns(raw []string) ([]string, error) {
	columns := make([]string, len(raw))
	origin := make(map[string]string, len(raw))
	for i, name := range raw {
		c := NormalizeColumn(name)
		if prev, ok := origin[c]; ok {
			return nil, &apperrors.DataError{
				Column: c,
				Reason: fmt.Sprintf("source columns %q and %q normalize to the same name", prev, name),
			}
		}
		origin[c] = name
		columns[i] = c
	}
	return columns, nil
}

// outputColumns drops switch_to_order_menu and appends the derived columns,
// unless the source already carried them.
func outputColumns(columns []string) []string {
	out := make([]string, 0, len(columns)+2)
	var hasCountry, hasCuisine bool
	for _, c := range columns {
		switch c {
		case models.ColSwitchToOrderMenu:
			continue
		case models.ColCountryName:
			hasCountry = true
		case models.ColUniqueCuisine:
			hasCuisine = true
		}
		out = append(out, c)
	}
	if !hasCountry {
		out = append(out, models.ColCountryName)
	}
	if !hasCuisine {
		out = append(out, models.ColUniqueCuisine)
	}
	return out
}

// record is one raw row addressed by normalized column name.
type record struct {
	columns []string
	cells   []string
	row     int
}

func (p *Pipeline) buildRestaurant(rec record) (models.Restaurant, error) {
	var r models.Restaurant
	var err error

	for i, column := range rec.columns {
		var cell string
		if i < len(rec.cells) {
			cell = rec.cells[i]
		}

		switch column {
		case models.ColRestaurantID:
			r.RestaurantID, err = parseID(column, cell, rec.row)
		case models.ColRestaurantName:
			r.RestaurantName = strings.TrimSpace(cell)
		case models.ColCountryCode:
			r.CountryCode, err = parseCountryCode(column, cell, rec.row)
		case models.ColCity:
			r.City = strings.TrimSpace(cell)
		case models.ColAddress:
			r.Address = cell
		case models.ColLocality:
			r.Locality = strings.TrimSpace(cell)
		case models.ColLocalityVerbose:
			r.LocalityVerbose = strings.TrimSpace(cell)
		case models.ColLongitude:
			r.Longitude, err = parseOptionalFloat(column, cell, rec.row)
		case models.ColLatitude:
			r.Latitude, err = parseOptionalFloat(column, cell, rec.row)
		case models.ColCuisines:
			r.Cuisines = cell
		case models.ColAverageCostForTwo:
			r.AverageCostForTwo, err = parseOptionalFloat(column, cell, rec.row)
		case models.ColCurrency:
			r.Currency = cell
		case models.ColHasTableBooking:
			r.HasTableBooking = cell
		case models.ColHasOnlineDelivery:
			r.HasOnlineDelivery = cell
		case models.ColIsDeliveringNow:
			r.IsDeliveringNow = cell
		case models.ColPriceRange:
			r.PriceRange = cell
		case models.ColAggregateRating:
			r.AggregateRating, err = parseOptionalFloat(column, cell, rec.row)
		case models.ColRatingColor:
			r.RatingColor = cell
		case models.ColRatingText:
			r.RatingText = cell
		case models.ColVotes:
			r.Votes, err = parseOptionalCount(column, cell, rec.row)
		case models.ColSwitchToOrderMenu, models.ColCountryName, models.ColUniqueCuisine:
			// dropped or rederived below
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[column] = cell
		}

		if err != nil {
			return models.Restaurant{}, err
		}
	}

	r.CountryName = p.dir.CountryName(r.CountryCode)
	r.UniqueCuisine = PrimaryCuisine(r.Cuisines)
	return r, nil
}

// PrimaryCuisine returns the first entry of a comma-separated cuisine list, or
// "" for a missing list.
func PrimaryCuisine(cuisines string) string {
	if cuisines == "" {
		return ""
	}
	first, _, _ := strings.Cut(cuisines, ",")
	return first
}

// naTokens are the cell values read as missing in typed columns, beside the
// empty cell.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// typedCell trims cell and reports whether it holds a value.
func typedCell(cell string) (string, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return "", false
	}
	if _, ok := naTokens[s]; ok {
		return "", false
	}
	return s, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func parseID(column, cell string, row int) (int64, error) {
	s, ok := typedCell(cell)
	if !ok {
		return 0, &apperrors.DataError{Column: column, Row: row, Value: cell, Reason: "missing restaurant identifier"}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &apperrors.DataError{Column: column, Row: row, Value: cell, Reason: "not an integer"}
	}
	return id, nil
}

// parseCountryCode maps an empty cell to code 0, which no directory registers.
func parseCountryCode(column, cell string, row int) (int, error) {
	s, ok := typedCell(cell)
	if !ok {
		return 0, nil
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, &apperrors.DataError{Column: column, Row: row, Value: cell, Reason: "not an integer"}
	}
	return code, nil
}

func parseOptionalFloat(column, cell string, row int) (*float64, error) {
	s, ok := typedCell(cell)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &apperrors.DataError{Column: column, Row: row, Value: cell, Reason: "not a number"}
	}
	if !finite(v) {
		return nil, nil
	}
	return &v, nil
}

// parseOptionalCount also accepts integral floats such as "12.0".
func parseOptionalCount(column, cell string, row int) (*int64, error) {
	s, ok := typedCell(cell)
	if !ok {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && !finite(f) {
		return nil, nil
	}
	if err != nil || f != float64(int64(f)) {
		return nil, &apperrors.DataError{Column: column, Row: row, Value: cell, Reason: "not an integer"}
	}
	n := int64(f)
	return &n, nil
}
