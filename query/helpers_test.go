package query

import (
	"fomezero/directory"
	"fomezero/models"
)

func f(v float64) *float64 { return &v }

func n(v int64) *int64 { return &v }

type row struct {
	id      int64
	name    string
	code    int
	city    string
	cuisine string
	rating  *float64
	votes   *int64
	cost    *float64
	color   string
	lat     *float64
	lon     *float64
}

func buildTable(rows ...row) models.Table {
	dir := directory.Default()
	t := models.Table{Columns: []string{models.ColRestaurantID, models.ColCountryName, models.ColUniqueCuisine}}
	for _, r := range rows {
		t.Rows = append(t.Rows, models.Restaurant{
			RestaurantID:      r.id,
			RestaurantName:    r.name,
			CountryCode:       r.code,
			CountryName:       dir.CountryName(r.code),
			City:              r.city,
			Cuisines:          r.cuisine,
			UniqueCuisine:     r.cuisine,
			AggregateRating:   r.rating,
			Votes:             r.votes,
			AverageCostForTwo: r.cost,
			RatingColor:       r.color,
			Latitude:          r.lat,
			Longitude:         r.lon,
		})
	}
	return t
}

func newService() *Service { return New(directory.Default(), MatchExact) }

// sampleTable: India 3 restaurants (2 cities), Brazil 1, Australia 2.
func sampleTable() models.Table {
	return buildTable(
		row{id: 4, name: "Spice", code: 1, city: "New Delhi", cuisine: "North Indian", rating: f(4.2), votes: n(100), cost: f(700)},
		row{id: 2, name: "Curry", code: 1, city: "New Delhi", cuisine: "North Indian", rating: f(3.2), votes: n(51), cost: f(400)},
		row{id: 9, name: "Dosa", code: 1, city: "Chennai", cuisine: "South Indian", rating: f(4.6), votes: n(400), cost: f(300)},
		row{id: 1, name: "Feijao", code: 30, city: "Rio de Janeiro", cuisine: "Brazilian", rating: f(4.9), votes: n(20), cost: f(150)},
		row{id: 7, name: "Bondi", code: 14, city: "Sydney", cuisine: "Cafe", rating: f(3.9), votes: n(15), cost: f(60)},
		row{id: 8, name: "Flat White", code: 14, city: "Sydney", cuisine: "Cafe", rating: nil, votes: nil, cost: nil},
	)
}
