package handlers

import (
	"net/http"

	"fomezero/models"
)

type citiesResponse struct {
	Countries      []string           `json:"countries"`
	TopCities      []models.CityCount `json:"top_cities"`
	RatedAbove     []models.CityCount `json:"rated_above"`
	RatedBelow     []models.CityCount `json:"rated_below"`
	CuisineVariety []models.CityCount `json:"cuisine_variety"`
	Thresholds     struct {
		Above float64 `json:"above"`
		Below float64 `json:"below"`
	} `json:"thresholds"`
}

// CitiesHandler serves the city rankings of the selected countries.
func CitiesHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full, table, p, err := d.load(r.Context(), r.URL.Query())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}

		n := d.Views.TopCities
		resp := citiesResponse{
			Countries:      d.countries(full, p),
			TopCities:      d.Service.TopCities(table, n),
			RatedAbove:     d.Service.CitiesRatedAbove(table, d.Views.RatedAbove, n),
			RatedBelow:     d.Service.CitiesRatedBelow(table, d.Views.RatedBelow, n),
			CuisineVariety: d.Service.CitiesByCuisineVariety(table, n),
		}
		resp.Thresholds.Above = d.Views.RatedAbove
		resp.Thresholds.Below = d.Views.RatedBelow
		respond(w, d.Logger, resp)
	}
}
