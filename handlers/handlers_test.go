package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fomezero/cleansing"
	"fomezero/config"
	"fomezero/dataset"
	"fomezero/directory"
	"fomezero/export"
	"fomezero/models"
	"fomezero/query"
	"fomezero/source"
)

const zomatoCSV = `Restaurant ID,Restaurant Name,Country Code,City,Address,Locality,Locality Verbose,Longitude,Latitude,Cuisines,Average Cost for two,Currency,Has Table booking,Has Online delivery,Is delivering now,Switch to order menu,Price range,Aggregate rating,Rating color,Rating text,Votes
1,Spice,1,New Delhi,CP,Connaught Place,"Connaught Place, New Delhi",77.2,28.6,"North Indian, Mughlai",700,Indian Rupees(Rs.),1,1,0,0,3,4.2,3F7E00,Very Good,100
2,Curry,1,New Delhi,CP,Connaught Place,"Connaught Place, New Delhi",77.3,28.7,North Indian,400,Indian Rupees(Rs.),0,1,0,0,2,3.2,CDD614,Average,51
3,Dosa,1,Chennai,TN,T Nagar,"T Nagar, Chennai",80.2,13.0,South Indian,300,Indian Rupees(Rs.),0,0,0,0,1,4.6,3F7E00,Excellent,400
4,Feijao,30,Rio de Janeiro,Centro,Centro,"Centro, Rio de Janeiro",-43.2,-22.9,Brazilian,150,Brazilian Real(R$),0,0,0,0,3,4.9,3F7E00,Excellent,20
5,Bondi,14,Sydney,Bondi,Bondi,"Bondi, Sydney",151.2,-33.8,Cafe,60,Dollar($),0,0,0,0,2,2.1,FF7800,Poor,15
6,Flat White,14,Sydney,Manly,Manly,"Manly, Sydney",151.3,-33.9,Cafe,45,Dollar($),0,0,0,0,1,,,,
7,Taco,1,Pune,FC,FC Road,"FC Road, Pune",73.8,18.5,Mexican,500,Indian Rupees(Rs.),0,0,0,0,2,,,Not rated,
1,Spice copy,1,New Delhi,CP,Connaught Place,"Connaught Place, New Delhi",77.2,28.6,North Indian,700,Indian Rupees(Rs.),1,1,0,0,3,1.0,FF7800,Poor,3
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zomato.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newDeps(t *testing.T, path string) *Deps {
	t.Helper()
	dir := directory.Default()
	return &Deps{
		Loader: &dataset.Loader{
			Source:   source.CSV{Path: path},
			Pipeline: cleansing.NewPipeline(dir, zap.NewNop()),
			Logger:   zap.NewNop(),
		},
		Service: query.New(dir, query.MatchExact),
		Views: config.ViewsConfig{
			DefaultCountries: 6,
			DefaultCuisines:  12,
			DefaultLimit:     10,
			MaxLimit:         20,
			TopCities:        10,
			BestCuisines:     5,
			RatedAbove:       4.0,
			RatedBelow:       2.5,
		},
		Logger: zap.NewNop(),
	}
}

func serve(t *testing.T, d *Deps, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestFiltersHandler(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/filters")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[filtersResponse](t, rec)
	assert.Equal(t, []string{"Australia", "Brazil", "India"}, got.Countries)
	assert.Equal(t, []string{"India", "Australia", "Brazil"}, got.DefaultCountries)
	assert.Equal(t, []string{"Brazilian", "Cafe", "Mexican", "North Indian", "South Indian"}, got.Cuisines)
	assert.Equal(t, "India", got.Directory["1"])
	assert.Len(t, got.Directory, 15)
	assert.Equal(t, export.Names(), got.ExportFormats)
}

func TestOverviewHandler(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[overviewResponse](t, rec)
	assert.Equal(t, models.Overview{Countries: 3, Cities: 5, Restaurants: 7, Votes: 586, Cuisines: 5}, got.Overview)
	assert.Equal(t, "586", got.Display.Votes)
	assert.Equal(t, "7", got.Display.Restaurants)
	assert.Len(t, got.Markers, 5)
	for _, m := range got.Markers {
		assert.NotEmpty(t, m.ColorCategory)
		assert.NotNil(t, m.Latitude)
	}
}

func TestOverviewHandlerCountrySelection(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/overview?countries=Brazil,Australia")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[overviewResponse](t, rec)
	assert.Equal(t, []string{"Brazil", "Australia"}, got.Countries)
	assert.Equal(t, 3, got.Overview.Restaurants)
	assert.Equal(t, int64(35), got.Overview.Votes)

	rec = serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/overview?countries=")
	got = decode[overviewResponse](t, rec)
	assert.Equal(t, models.Overview{}, got.Overview)
	assert.Empty(t, got.Markers)
}

func TestCountriesHandler(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/countries?mode=all")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[countriesResponse](t, rec)
	assert.Equal(t, []models.CountryCount{
		{Country: "India", Restaurants: 4},
		{Country: "Australia", Restaurants: 2},
		{Country: "Brazil", Restaurants: 1},
	}, got.Restaurants)
	assert.Equal(t, models.CountryCities{Country: "India", Cities: 3}, got.Cities[0])
	assert.Equal(t, models.CountryMean{Country: "India", Mean: 184}, got.MeanVotes[0])
	assert.Equal(t, models.CountryCost{CountryCode: 1, Country: "India", Mean: 475}, got.MeanCost[0])
}

func TestCitiesHandler(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/cities")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[citiesResponse](t, rec)
	assert.Equal(t, models.CityCount{Country: "Australia", City: "Sydney", Count: 2}, got.TopCities[0])
	assert.Len(t, got.TopCities, 5)
	assert.Len(t, got.RatedAbove, 3)
	assert.Equal(t, []models.CityCount{{Country: "Australia", City: "Sydney", Count: 1}}, got.RatedBelow)
	assert.Equal(t, 4.0, got.Thresholds.Above)
	assert.Equal(t, 2.5, got.Thresholds.Below)
}

func TestCuisinesHandler(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/cuisines?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[cuisinesResponse](t, rec)

	var cuisines []string
	for _, c := range got.BestByCuisine {
		cuisines = append(cuisines, c.Cuisine)
	}
	assert.Equal(t, []string{"Cafe", "North Indian", "Brazilian", "South Indian"}, cuisines, "Mexican has no rated restaurant")
	assert.Equal(t, "Bondi", got.BestByCuisine[0].Restaurant.RestaurantName)

	require.Len(t, got.BestRated, 2)
	assert.Equal(t, "Feijao", got.BestRated[0].RestaurantName)
	assert.Equal(t, "Dosa", got.BestRated[1].RestaurantName)

	assert.Equal(t, []models.CuisineMean{{Cuisine: "Brazilian", Mean: 4.9}, {Cuisine: "South Indian", Mean: 4.6}}, got.BestCuisines)
	assert.Equal(t, models.CuisineMean{Cuisine: "Cafe", Mean: 2.1}, got.WorstCuisines[0])
}

func TestCuisinesHandlerSelection(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/cuisines?cuisines=Cafe,Mexican")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[cuisinesResponse](t, rec)
	require.Len(t, got.BestByCuisine, 1)
	assert.Equal(t, "Cafe", got.BestByCuisine[0].Cuisine)
	assert.Len(t, got.BestRated, 3)
}

func TestBadParameters(t *testing.T) {
	d := newDeps(t, writeCSV(t, zomatoCSV))
	for _, target := range []string{
		"/api/overview?mode=some",
		"/api/countries?limit=0",
		"/api/cities?limit=21",
		"/api/cuisines?limit=ten",
		"/api/cuisines?cuisine_mode=every",
		"/api/export?format=json",
	} {
		t.Run(target, func(t *testing.T) {
			rec := serve(t, d, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestDataErrors(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, "Restaurant ID,City\n1,Pune\n")), "/api/overview")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "restaurant_name")

	missing := filepath.Join(t.TempDir(), "gone.csv")
	rec = serve(t, newDeps(t, missing), "/api/countries")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], missing)

	bad := strings.Replace(zomatoCSV, "4,Feijao,30", "4,Feijao,thirty", 1)
	rec = serve(t, newDeps(t, writeCSV(t, bad)), "/api/cities")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "country_code")
}

func TestExportHandlerCSV(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/export?countries=Brazil")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "restaurants.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "restaurant_id,restaurant_name,country_code,city"))
	assert.True(t, strings.HasSuffix(lines[0], "votes,country_name,unique_cuisine"))
	assert.NotContains(t, lines[0], "switch_to_order_menu")
	assert.Contains(t, lines[1], "Feijao")
}

func TestExportHandlerXLSX(t *testing.T) {
	rec := serve(t, newDeps(t, writeCSV(t, zomatoCSV)), "/api/export?format=xlsx&mode=all")
	require.Equal(t, http.StatusOK, rec.Code)

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}

func TestHealthHandler(t *testing.T) {
	rec := serve(t, newDeps(t, "unused.csv"), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestCompact(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{586, "586"},
		{9999, "9,999"},
		{12345, "12.3 mil"},
		{1234567, "1.23 mi"},
		{2500000000, "2.50 bi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compact(tt.v), "%v", tt.v)
	}
}

func TestRespondUnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	respond(rec, zap.NewNop(), map[string]float64{"mean": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to encode response", body["error"])
}

func TestRespondWritesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respond(rec, zap.NewNop(), map[string]int{"restaurants": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"restaurants":3}`, rec.Body.String())
}
