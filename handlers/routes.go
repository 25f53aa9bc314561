package handlers

import "net/http"

// RegisterRoutes mounts every view on mux.
func RegisterRoutes(mux *http.ServeMux, d *Deps) {
	mux.HandleFunc("GET /api/filters", FiltersHandler(d))
	mux.HandleFunc("GET /api/overview", OverviewHandler(d))
	mux.HandleFunc("GET /api/countries", CountriesHandler(d))
	mux.HandleFunc("GET /api/cities", CitiesHandler(d))
	mux.HandleFunc("GET /api/cuisines", CuisinesHandler(d))
	mux.HandleFunc("GET /api/export", ExportHandler(d))
	mux.HandleFunc("GET /health", HealthHandler())
}
