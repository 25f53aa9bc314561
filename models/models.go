package models

// Restaurant is one canonical row of the dataset: a cleaned source record plus
// the derived country name and primary cuisine. Optional measures are nil when
// the source cell was empty.
type Restaurant struct {
	RestaurantID      int64    `json:"restaurant_id"`
	RestaurantName    string   `json:"restaurant_name"`
	CountryCode       int      `json:"country_code"`
	City              string   `json:"city"`
	Address           string   `json:"address,omitempty"`
	Locality          string   `json:"locality"`
	LocalityVerbose   string   `json:"locality_verbose"`
	Longitude         *float64 `json:"longitude"`
	Latitude          *float64 `json:"latitude"`
	Cuisines          string   `json:"cuisines"`
	AverageCostForTwo *float64 `json:"average_cost_for_two"`
	Currency          string   `json:"currency,omitempty"`
	HasTableBooking   string   `json:"has_table_booking,omitempty"`
	HasOnlineDelivery string   `json:"has_online_delivery,omitempty"`
	IsDeliveringNow   string   `json:"is_delivering_now,omitempty"`
	PriceRange        string   `json:"price_range,omitempty"`
	AggregateRating   *float64 `json:"aggregate_rating"`
	RatingColor       string   `json:"rating_color"`
	RatingText        string   `json:"rating_text,omitempty"`
	Votes             *int64   `json:"votes"`

	// Derived
	CountryName   string `json:"country_name"`
	UniqueCuisine string `json:"unique_cuisine"`

	// Extra holds source columns the model has no field for, keyed by
	// normalized column name.
	Extra map[string]string `json:"-"`
}

// Table is the canonical dataset. Columns lists the column names in output
// order; every name is either a canonical column or a key of Restaurant.Extra.
type Table struct {
	Columns []string
	Rows    []Restaurant
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// WithRows returns a table sharing t's column layout with the given rows.
func (t Table) WithRows(rows []Restaurant) Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	return Table{Columns: cols, Rows: rows}
}

// RawTable is a dataset as read from a source, before any cleansing.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// CountryCount is the number of restaurants registered in a country.
type CountryCount struct {
	Country     string `json:"country"`
	Restaurants int    `json:"restaurants"`
}

// CountryCities is the number of distinct cities registered in a country.
type CountryCities struct {
	Country string `json:"country"`
	Cities  int    `json:"cities"`
}

// CountryMean is a rounded mean measure for a country.
type CountryMean struct {
	Country string  `json:"country"`
	Mean    float64 `json:"mean"`
}

// CountryCost is the rounded mean cost for two in a country, in local currency.
type CountryCost struct {
	CountryCode int     `json:"country_code"`
	Country     string  `json:"country"`
	Mean        float64 `json:"mean"`
}

// CityCount is a per-city count: restaurants, rated restaurants or cuisines,
// depending on the report.
type CityCount struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Count   int    `json:"count"`
}

// CuisineMean is the rounded mean rating of a cuisine.
type CuisineMean struct {
	Cuisine string  `json:"cuisine"`
	Mean    float64 `json:"mean"`
}

// RestaurantRating is the projection used by the best-restaurant rankings.
type RestaurantRating struct {
	RestaurantID    int64    `json:"restaurant_id"`
	RestaurantName  string   `json:"restaurant_name"`
	CountryName     string   `json:"country_name"`
	City            string   `json:"city"`
	UniqueCuisine   string   `json:"unique_cuisine"`
	AggregateRating *float64 `json:"aggregate_rating"`
}

// MarkerPoint is one map pin: a (city, rating, color) group with its median
// coordinates.
type MarkerPoint struct {
	City          string   `json:"city"`
	Rating        float64  `json:"rating"`
	RatingColor   string   `json:"rating_color"`
	ColorCategory string   `json:"color_category"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// Overview holds the headline figures of the overview page.
type Overview struct {
	Countries   int   `json:"countries"`
	Cities      int   `json:"cities"`
	Restaurants int   `json:"restaurants"`
	Votes       int64 `json:"votes"`
	Cuisines    int   `json:"cuisines"`
}

// Clone returns a deep copy of r.
func (r *Restaurant) Clone() Restaurant {
	c := *r
	c.Longitude = cloneFloat(r.Longitude)
	c.Latitude = cloneFloat(r.Latitude)
	c.AverageCostForTwo = cloneFloat(r.AverageCostForTwo)
	c.AggregateRating = cloneFloat(r.AggregateRating)
	if r.Votes != nil {
		v := *r.Votes
		c.Votes = &v
	}
	if r.Extra != nil {
		c.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
