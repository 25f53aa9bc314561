package query

import (
	"cmp"
	"slices"

	"fomezero/apperrors"
	"fomezero/models"
)

// BestRestaurantsForCuisine returns every restaurant of the given primary
// cuisine that shares the highest rating, ordered by restaurant id. It fails
// with an EmptyResultError when no rated restaurant has that cuisine.
func (s *Service) BestRestaurantsForCuisine(t models.Table, cuisine string) ([]models.RestaurantRating, error) {
	notFound := &apperrors.EmptyResultError{Query: "best restaurants for cuisine", Key: cuisine}
	if cuisine == "" {
		return nil, notFound
	}

	var best []models.RestaurantRating
	var top float64
	for i := range t.Rows {
		r := &t.Rows[i]
		v, ok := rating(r)
		if !ok || r.UniqueCuisine != cuisine {
			continue
		}
		switch {
		case best == nil || v > top:
			top = v
			best = append(best[:0], project(r))
		case v == top:
			best = append(best, project(r))
		}
	}
	if len(best) == 0 {
		return nil, notFound
	}
	slices.SortFunc(best, func(a, b models.RestaurantRating) int { return cmp.Compare(a.RestaurantID, b.RestaurantID) })
	return best, nil
}

// BestRestaurants ranks every restaurant of t by rating, highest first, with
// ties going to the lower restaurant id. Unrated restaurants come last.
func (s *Service) BestRestaurants(t models.Table) []models.RestaurantRating {
	out := make([]models.RestaurantRating, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, project(&t.Rows[i]))
	}
	slices.SortFunc(out, func(a, b models.RestaurantRating) int {
		switch {
		case a.AggregateRating == nil && b.AggregateRating == nil:
		case a.AggregateRating == nil:
			return 1
		case b.AggregateRating == nil:
			return -1
		default:
			if c := cmp.Compare(*b.AggregateRating, *a.AggregateRating); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.RestaurantID, b.RestaurantID)
	})
	return out
}

func project(r *models.Restaurant) models.RestaurantRating {
	p := models.RestaurantRating{
		RestaurantID:   r.RestaurantID,
		RestaurantName: r.RestaurantName,
		CountryName:    r.CountryName,
		City:           r.City,
		UniqueCuisine:  r.UniqueCuisine,
	}
	if r.AggregateRating != nil {
		v := *r.AggregateRating
		p.AggregateRating = &v
	}
	return p
}
