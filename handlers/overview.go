package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"fomezero/models"
)

type overviewResponse struct {
	Countries []string             `json:"countries"`
	Overview  models.Overview      `json:"overview"`
	Display   overviewDisplay      `json:"display"`
	Markers   []models.MarkerPoint `json:"markers"`
}

// overviewDisplay holds the KPI figures as shown on the dashboard cards.
type overviewDisplay struct {
	Countries   string `json:"countries"`
	Cities      string `json:"cities"`
	Restaurants string `json:"restaurants"`
	Votes       string `json:"votes"`
	Cuisines    string `json:"cuisines"`
}

// OverviewHandler serves the headline figures and map markers of the
// selected countries.
func OverviewHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full, table, p, err := d.load(r.Context(), r.URL.Query())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}

		ov := d.Service.Overview(table)
		respond(w, d.Logger, overviewResponse{
			Countries: d.countries(full, p),
			Overview:  ov,
			Display: overviewDisplay{
				Countries:   humanize.Comma(int64(ov.Countries)),
				Cities:      humanize.Comma(int64(ov.Cities)),
				Restaurants: Compact(float64(ov.Restaurants)),
				Votes:       Compact(float64(ov.Votes)),
				Cuisines:    humanize.Comma(int64(ov.Cuisines)),
			},
			Markers: d.Service.MarkerPoints(table),
		})
	}
}

// Compact renders large figures the way the dashboard cards do: plain with
// thousands separators below 10,000, then "mil", "mi" and "bi".
func Compact(v float64) string {
	switch {
	case v < 10000:
		return humanize.FormatFloat("#,###.", v)
	case v < 999999:
		return humanize.FormatFloat("#,###.#", v/1e3) + " mil"
	case v < 999999999:
		return humanize.FormatFloat("#,###.##", v/1e6) + " mi"
	default:
		return humanize.FormatFloat("#,###.##", v/1e9) + " bi"
	}
}
