package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"fomezero/apperrors"
	"fomezero/models"
	"fomezero/query"
)

type cuisineCard struct {
	Cuisine    string                  `json:"cuisine"`
	Restaurant models.RestaurantRating `json:"restaurant"`
	Tied       int                     `json:"tied"`
}

type cuisinesResponse struct {
	Countries     []string                  `json:"countries"`
	Cuisines      []string                  `json:"cuisines"`
	BestByCuisine []cuisineCard             `json:"best_by_cuisine"`
	BestRated     []models.RestaurantRating `json:"best_restaurants"`
	BestCuisines  []models.CuisineMean      `json:"best_cuisines"`
	WorstCuisines []models.CuisineMean      `json:"worst_cuisines"`
}

// CuisinesHandler serves the cuisine view: the best restaurant of each of the
// leading cuisines, the best rated restaurants and the best and worst
// cuisines by mean rating. Cuisine defaults are taken from the whole
// dataset, the reports from the country and cuisine selection.
func CuisinesHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full, table, p, err := d.load(r.Context(), r.URL.Query())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		selected := d.cuisines(full, p)
		table = d.Service.FilterByCuisines(table, selected)

		cards := make([]cuisineCard, 0, d.Views.BestCuisines)
		for _, c := range d.Service.TopCuisines(table, d.Views.BestCuisines) {
			best, err := d.Service.BestRestaurantsForCuisine(table, c)
			if errors.Is(err, apperrors.ErrEmptyResult) {
				d.Logger.Debug("No rated restaurant for cuisine", zap.String("cuisine", c))
				continue
			}
			if err != nil {
				fail(w, d.Logger, err)
				return
			}
			cards = append(cards, cuisineCard{Cuisine: c, Restaurant: best[0], Tied: len(best)})
		}

		respond(w, d.Logger, cuisinesResponse{
			Countries:     d.countries(full, p),
			Cuisines:      selected,
			BestByCuisine: cards,
			BestRated:     query.Head(d.Service.BestRestaurants(table), p.Limit),
			BestCuisines:  query.Head(d.Service.MeanRatingPerCuisine(table, false), p.Limit),
			WorstCuisines: query.Head(d.Service.MeanRatingPerCuisine(table, true), p.Limit),
		})
	}
}
