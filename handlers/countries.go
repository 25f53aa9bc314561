package handlers

import (
	"net/http"

	"fomezero/models"
)

type countriesResponse struct {
	Countries   []string               `json:"countries"`
	Restaurants []models.CountryCount  `json:"restaurants"`
	Cities      []models.CountryCities `json:"cities"`
	MeanVotes   []models.CountryMean   `json:"mean_votes"`
	MeanCost    []models.CountryCost   `json:"mean_cost_for_two"`
}

// CountriesHandler serves the per-country reports of the selected countries.
func CountriesHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full, table, p, err := d.load(r.Context(), r.URL.Query())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}

		respond(w, d.Logger, countriesResponse{
			Countries:   d.countries(full, p),
			Restaurants: d.Service.RestaurantsPerCountry(table),
			Cities:      d.Service.CitiesPerCountry(table),
			MeanVotes:   d.Service.MeanVotesPerCountry(table),
			MeanCost:    d.Service.MeanCostForTwoPerCountry(table),
		})
	}
}
