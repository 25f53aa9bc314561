package query

import (
	"cmp"
	"strings"

	"fomezero/models"
)

type markerKey struct {
	city   string
	rating float64
	color  string
}

func compareMarkerKey(a, b markerKey) int {
	if c := strings.Compare(a.city, b.city); c != 0 {
		return c
	}
	if c := cmp.Compare(a.rating, b.rating); c != 0 {
		return c
	}
	return strings.Compare(a.color, b.color)
}

// MarkerPoints projects t to map pins: one per distinct (city, rating,
// rating color), placed at the median coordinates of its restaurants. Rows
// without city, rating or color are not placed.
func (s *Service) MarkerPoints(t models.Table) []models.MarkerPoint {
	groups := groupBy(t.Rows, func(r *models.Restaurant) (markerKey, bool) {
		v, ok := rating(r)
		if !ok || r.City == "" || r.RatingColor == "" {
			return markerKey{}, false
		}
		return markerKey{city: r.City, rating: v, color: r.RatingColor}, true
	}, compareMarkerKey)

	out := make([]models.MarkerPoint, 0, len(groups))
	for _, g := range groups {
		lats := make([]*float64, 0, len(g.rows))
		lons := make([]*float64, 0, len(g.rows))
		for _, r := range g.rows {
			lats = append(lats, r.Latitude)
			lons = append(lons, r.Longitude)
		}
		out = append(out, models.MarkerPoint{
			City:          g.key.city,
			Rating:        g.key.rating,
			RatingColor:   g.key.color,
			ColorCategory: s.dir.ColorCategory(g.key.color),
			Latitude:      median(lats),
			Longitude:     median(lons),
		})
	}
	return out
}
