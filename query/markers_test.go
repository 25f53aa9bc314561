package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomezero/models"
)

func TestMarkerPoints(t *testing.T) {
	table := buildTable(
		row{id: 1, code: 94, city: "Berlin", rating: f(4.2), color: "3F7E00", lat: f(1), lon: f(10)},
		row{id: 2, code: 94, city: "Berlin", rating: f(4.2), color: "3F7E00", lat: f(3)},
		row{id: 3, code: 94, city: "Berlin", rating: f(4.2), color: "3F7E00", lat: f(2), lon: f(20)},
		row{id: 4, code: 94, city: "Berlin", rating: f(4.2), color: "FFBA00", lat: f(7), lon: f(8)},
		row{id: 5, code: 94, city: "Aachen", rating: f(3.0), color: "123456"},
		row{id: 6, code: 94, city: "Aachen", color: "3F7E00", lat: f(1), lon: f(1)},
		row{id: 7, code: 94, rating: f(3.0), color: "3F7E00"},
		row{id: 8, code: 94, city: "Aachen", rating: f(3.0)},
	)

	got := newService().MarkerPoints(table)
	require.Len(t, got, 3)

	assert.Equal(t, models.MarkerPoint{City: "Aachen", Rating: 3.0, RatingColor: "123456", ColorCategory: "gray"}, got[0])

	berlin := got[1]
	assert.Equal(t, "Berlin", berlin.City)
	assert.Equal(t, "3F7E00", berlin.RatingColor)
	assert.Equal(t, "darkgreen", berlin.ColorCategory)
	require.NotNil(t, berlin.Latitude)
	require.NotNil(t, berlin.Longitude)
	assert.Equal(t, 2.0, *berlin.Latitude)
	assert.Equal(t, 15.0, *berlin.Longitude, "missing coordinates are ignored")

	assert.Equal(t, "FFBA00", got[2].RatingColor)
	assert.Equal(t, "red", got[2].ColorCategory)
	assert.Equal(t, 7.0, *got[2].Latitude)
}

func TestMarkerPointsEmpty(t *testing.T) {
	got := newService().MarkerPoints(sampleTable())
	assert.Empty(t, got, "rows without a rating color are not placed")
	assert.NotNil(t, got)
}
