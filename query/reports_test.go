package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomezero/models"
)

func TestRestaurantsPerCountry(t *testing.T) {
	got := newService().RestaurantsPerCountry(sampleTable())
	assert.Equal(t, []models.CountryCount{
		{Country: "India", Restaurants: 3},
		{Country: "Australia", Restaurants: 2},
		{Country: "Brazil", Restaurants: 1},
	}, got)

	assert.Empty(t, newService().RestaurantsPerCountry(models.Table{}))
}

func TestCitiesPerCountry(t *testing.T) {
	got := newService().CitiesPerCountry(sampleTable())
	assert.Equal(t, []models.CountryCities{
		{Country: "India", Cities: 2},
		{Country: "Australia", Cities: 1},
		{Country: "Brazil", Cities: 1},
	}, got)
}

func TestMeanVotesPerCountryIgnoresMissing(t *testing.T) {
	got := newService().MeanVotesPerCountry(sampleTable())
	assert.Equal(t, []models.CountryMean{
		{Country: "India", Mean: 184},
		{Country: "Brazil", Mean: 20},
		{Country: "Australia", Mean: 15},
	}, got)
}

func TestMeanVotesPerCountryOmitsGroupsWithoutValues(t *testing.T) {
	table := buildTable(
		row{id: 1, code: 1, city: "Agra", votes: n(10)},
		row{id: 2, code: 30, city: "Rio"},
	)
	got := newService().MeanVotesPerCountry(table)
	assert.Equal(t, []models.CountryMean{{Country: "India", Mean: 10}}, got)
}

func TestMeanCostForTwoPerCountry(t *testing.T) {
	got := newService().MeanCostForTwoPerCountry(sampleTable())
	assert.Equal(t, []models.CountryCost{
		{CountryCode: 1, Country: "India", Mean: 466.7},
		{CountryCode: 30, Country: "Brazil", Mean: 150},
		{CountryCode: 14, Country: "Australia", Mean: 60},
	}, got)
}

func TestMeanCostForTwoRoundingAndOrder(t *testing.T) {
	table := buildTable(
		row{id: 1, code: 1, city: "A", cost: f(10)},
		row{id: 2, code: 1, city: "A", cost: f(10.25)},
		row{id: 3, code: 30, city: "B", cost: f(33.33)},
		row{id: 4, code: 14, city: "C", cost: f(1.04)},
		row{id: 5, code: 37, city: "D", cost: f(33.31)},
	)

	got := newService().MeanCostForTwoPerCountry(table)
	require.Len(t, got, 4)
	for i, c := range got {
		assert.Equal(t, c.Mean, round(c.Mean, 1), "%s not rounded to one decimal", c.Country)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Mean, c.Mean)
		}
	}
	assert.Equal(t, "Brazil", got[0].Country)
	assert.Equal(t, 33.3, got[0].Mean)
	assert.Equal(t, "Canada", got[1].Country)
	assert.Equal(t, 10.1, got[2].Mean)
	assert.Equal(t, 1.0, got[3].Mean)
}

func TestMeanRatingPerCuisine(t *testing.T) {
	svc := newService()
	table := sampleTable()

	desc := svc.MeanRatingPerCuisine(table, false)
	require.Len(t, desc, 4)
	assert.Equal(t, []string{"Brazilian", "South Indian", "Cafe", "North Indian"}, cuisineNames(desc))
	assert.Equal(t, 4.9, desc[0].Mean)
	assert.Equal(t, 3.9, desc[2].Mean, "unrated restaurants do not drag the mean down")
	assert.InDelta(t, 3.7, desc[3].Mean, 1e-9)

	asc := svc.MeanRatingPerCuisine(table, true)
	assert.Equal(t, []string{"North Indian", "Cafe", "South Indian", "Brazilian"}, cuisineNames(asc))
}

func TestMeansRoundTheDecimalValue(t *testing.T) {
	svc := newService()
	table := buildTable(
		row{id: 1, code: 1, city: "Agra", cuisine: "Pizza", rating: f(3.4), cost: f(1.0)},
		row{id: 2, code: 1, city: "Agra", cuisine: "Pizza", rating: f(3.5), cost: f(1.1)},
	)

	assert.Equal(t, []models.CuisineMean{{Cuisine: "Pizza", Mean: 3.5}}, svc.MeanRatingPerCuisine(table, false))
	assert.Equal(t, []models.CountryCost{{CountryCode: 1, Country: "India", Mean: 1.1}}, svc.MeanCostForTwoPerCountry(table))
}

func cuisineNames(ms []models.CuisineMean) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Cuisine)
	}
	return out
}

func TestTopCities(t *testing.T) {
	got := newService().TopCities(sampleTable(), 10)
	assert.Equal(t, []models.CityCount{
		{Country: "Australia", City: "Sydney", Count: 2},
		{Country: "India", City: "New Delhi", Count: 2},
		{Country: "Brazil", City: "Rio de Janeiro", Count: 1},
		{Country: "India", City: "Chennai", Count: 1},
	}, got)

	assert.Len(t, newService().TopCities(sampleTable(), 1), 1)
}

func TestCitiesRatedAboveAndBelow(t *testing.T) {
	svc := newService()
	table := sampleTable()

	above := svc.CitiesRatedAbove(table, 4.0, 10)
	assert.Equal(t, []models.CityCount{
		{Country: "Brazil", City: "Rio de Janeiro", Count: 1},
		{Country: "India", City: "Chennai", Count: 1},
		{Country: "India", City: "New Delhi", Count: 1},
	}, above)

	assert.Empty(t, svc.CitiesRatedBelow(table, 2.5, 10))

	below := svc.CitiesRatedBelow(table, 4.0, 10)
	assert.Equal(t, []models.CityCount{
		{Country: "Australia", City: "Sydney", Count: 1},
		{Country: "India", City: "New Delhi", Count: 1},
	}, below)
}

func TestCitiesByCuisineVariety(t *testing.T) {
	table := buildTable(
		row{id: 1, code: 1, city: "Agra", cuisine: "Mughlai"},
		row{id: 2, code: 1, city: "Agra", cuisine: "Cafe"},
		row{id: 3, code: 1, city: "Agra", cuisine: "Cafe"},
		row{id: 4, code: 1, city: "Agra", cuisine: ""},
		row{id: 5, code: 30, city: "Rio", cuisine: "Brazilian"},
	)

	got := newService().CitiesByCuisineVariety(table, 10)
	assert.Equal(t, []models.CityCount{
		{Country: "India", City: "Agra", Count: 2},
		{Country: "Brazil", City: "Rio", Count: 1},
	}, got)
}

func TestOverview(t *testing.T) {
	got := newService().Overview(sampleTable())
	assert.Equal(t, models.Overview{
		Countries:   3,
		Cities:      4,
		Restaurants: 6,
		Votes:       586,
		Cuisines:    4,
	}, got)

	assert.Equal(t, models.Overview{}, newService().Overview(models.Table{}))
}

func TestOverviewSkipsMissingCuisine(t *testing.T) {
	table := buildTable(
		row{id: 1, name: "A", code: 1, city: "Agra", cuisine: "Mughlai"},
		row{id: 2, name: "B", code: 1, city: "Agra", cuisine: ""},
	)

	got := newService().Overview(table)
	assert.Equal(t, 1, got.Cuisines)
	assert.Equal(t, 2, got.Restaurants)
}
