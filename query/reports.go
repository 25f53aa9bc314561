package query

import (
	"cmp"
	"strings"

	"fomezero/models"
)

type countryKey struct {
	code int
	name string
}

func compareCountryKey(a, b countryKey) int {
	if c := cmp.Compare(a.code, b.code); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

type cityKey struct {
	country string
	city    string
}

func compareCityKey(a, b cityKey) int {
	if c := strings.Compare(a.country, b.country); c != 0 {
		return c
	}
	return strings.Compare(a.city, b.city)
}

func city(r *models.Restaurant) (cityKey, bool) {
	return cityKey{country: r.CountryName, city: r.City}, r.City != ""
}

// RestaurantsPerCountry counts restaurants per country, largest first.
func (s *Service) RestaurantsPerCountry(t models.Table) []models.CountryCount {
	ranks := countGroups(groupBy(t.Rows, country, strings.Compare))
	out := make([]models.CountryCount, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, models.CountryCount{Country: r.key, Restaurants: int(r.value)})
	}
	return out
}

// CitiesPerCountry counts distinct cities per country, largest first.
func (s *Service) CitiesPerCountry(t models.Table) []models.CountryCities {
	ranks := distinctGroups(groupBy(t.Rows, country, strings.Compare),
		func(r *models.Restaurant) string { return r.City })
	out := make([]models.CountryCities, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, models.CountryCities{Country: r.key, Cities: int(r.value)})
	}
	return out
}

// MeanVotesPerCountry returns the mean number of votes per restaurant in each
// country, rounded to a whole number, highest first.
func (s *Service) MeanVotesPerCountry(t models.Table) []models.CountryMean {
	ranks := meanGroups(groupBy(t.Rows, country, strings.Compare), func(r *models.Restaurant) (float64, bool) {
		if r.Votes == nil {
			return 0, false
		}
		return float64(*r.Votes), true
	}, false)
	out := make([]models.CountryMean, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, models.CountryMean{Country: r.key, Mean: round(r.value, 0)})
	}
	return out
}

// MeanCostForTwoPerCountry returns the mean cost for two per country, rounded
// to one decimal, highest first. Costs are in each country's own currency.
func (s *Service) MeanCostForTwoPerCountry(t models.Table) []models.CountryCost {
	groups := groupBy(t.Rows, func(r *models.Restaurant) (countryKey, bool) {
		return countryKey{code: r.CountryCode, name: r.CountryName}, true
	}, compareCountryKey)
	ranks := meanGroups(groups, func(r *models.Restaurant) (float64, bool) {
		if r.AverageCostForTwo == nil {
			return 0, false
		}
		return *r.AverageCostForTwo, true
	}, false)
	out := make([]models.CountryCost, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, models.CountryCost{CountryCode: r.key.code, Country: r.key.name, Mean: round(r.value, 1)})
	}
	return out
}

// MeanRatingPerCuisine returns the mean aggregate rating of every primary
// cuisine, rounded to one decimal. Best first unless ascending is set.
func (s *Service) MeanRatingPerCuisine(t models.Table, ascending bool) []models.CuisineMean {
	ranks := meanGroups(groupBy(t.Rows, cuisine, strings.Compare), rating, ascending)
	out := make([]models.CuisineMean, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, models.CuisineMean{Cuisine: r.key, Mean: round(r.value, 1)})
	}
	return out
}

// TopCities returns up to n cities ranked by restaurant count.
func (s *Service) TopCities(t models.Table, n int) []models.CityCount {
	return cityCounts(Head(countGroups(groupBy(t.Rows, city, compareCityKey)), n))
}

// CitiesRatedAbove ranks cities by how many of their restaurants are rated
// strictly above threshold. At most n cities are returned.
func (s *Service) CitiesRatedAbove(t models.Table, threshold float64, n int) []models.CityCount {
	return citiesRated(t, n, func(v float64) bool { return v > threshold })
}

// CitiesRatedBelow ranks cities by how many of their restaurants are rated
// strictly below threshold. At most n cities are returned.
func (s *Service) CitiesRatedBelow(t models.Table, threshold float64, n int) []models.CityCount {
	return citiesRated(t, n, func(v float64) bool { return v < threshold })
}

func citiesRated(t models.Table, n int, keep func(float64) bool) []models.CityCount {
	groups := groupBy(t.Rows, func(r *models.Restaurant) (cityKey, bool) {
		v, ok := rating(r)
		if !ok || !keep(v) {
			return cityKey{}, false
		}
		return city(r)
	}, compareCityKey)
	return cityCounts(Head(countGroups(groups), n))
}

// CitiesByCuisineVariety ranks cities by their number of distinct primary
// cuisines. At most n cities are returned.
func (s *Service) CitiesByCuisineVariety(t models.Table, n int) []models.CityCount {
	ranks := distinctGroups(groupBy(t.Rows, city, compareCityKey),
		func(r *models.Restaurant) string { return r.UniqueCuisine })
	return cityCounts(Head(ranks, n))
}

func cityCounts(ranks []ranked[cityKey]) []models.CityCount {
	out := make([]models.CityCount, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, models.CityCount{Country: r.key.country, City: r.key.city, Count: int(r.value)})
	}
	return out
}

// Overview computes the headline figures of t.
func (s *Service) Overview(t models.Table) models.Overview {
	ov := models.Overview{
		Countries:   len(s.AllCountries(t)),
		Cities:      len(distinct(t.Rows, func(r *models.Restaurant) string { return r.City })),
		Restaurants: len(distinct(t.Rows, func(r *models.Restaurant) string { return r.RestaurantName })),
		Cuisines:    len(s.AllCuisines(t)),
	}
	for i := range t.Rows {
		if v := t.Rows[i].Votes; v != nil {
			ov.Votes += *v
		}
	}
	return ov
}
