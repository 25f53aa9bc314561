package handlers

import (
	"net/http"
	"strconv"

	"fomezero/export"
)

type filtersResponse struct {
	Countries        []string          `json:"countries"`
	DefaultCountries []string          `json:"default_countries"`
	Cuisines         []string          `json:"cuisines"`
	DefaultCuisines  []string          `json:"default_cuisines"`
	Directory        map[string]string `json:"directory"`
	DefaultLimit     int               `json:"default_limit"`
	MaxLimit         int               `json:"max_limit"`
	ExportFormats    []string          `json:"export_formats"`
}

// FiltersHandler returns the options and defaults that populate the sidebar
// filters.
func FiltersHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, _, err := d.Loader.Load(r.Context())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}

		dir := d.Service.Directory()
		names := make(map[string]string)
		for _, code := range dir.Countries() {
			names[strconv.Itoa(code)] = dir.CountryName(code)
		}

		respond(w, d.Logger, filtersResponse{
			Countries:        d.Service.AllCountries(table),
			DefaultCountries: d.Service.TopCountries(table, d.Views.DefaultCountries),
			Cuisines:         d.Service.AllCuisines(table),
			DefaultCuisines:  d.Service.TopCuisines(table, d.Views.DefaultCuisines),
			Directory:        names,
			DefaultLimit:     d.Views.DefaultLimit,
			MaxLimit:         d.Views.MaxLimit,
			ExportFormats:    export.Names(),
		})
	}
}
