package handlers

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"fomezero/models"
)

// Selection modes of the country and cuisine pickers.
const (
	ModeMain = "main"
	ModeAll  = "all"
)

// ViewParams is the sidebar state of a view, carried in the query string.
type ViewParams struct {
	// Countries is nil unless the countries parameter was given.
	Countries   []string
	Mode        string
	Cuisines    []string
	CuisineMode string
	Limit       int
}

// ParseViewParams reads countries, mode, cuisines, cuisine_mode and limit.
// limit defaults to defaultLimit and must lie in 1..maxLimit.
func ParseViewParams(q url.Values, defaultLimit, maxLimit int) (ViewParams, error) {
	p := ViewParams{Limit: defaultLimit}

	if q.Has("countries") {
		p.Countries = splitNames(q.Get("countries"))
	}
	if q.Has("cuisines") {
		p.Cuisines = splitNames(q.Get("cuisines"))
	}

	var err error
	if p.Mode, err = parseMode(q, "mode"); err != nil {
		return p, err
	}
	if p.CuisineMode, err = parseMode(q, "cuisine_mode"); err != nil {
		return p, err
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, &paramError{param: "limit", msg: "not an integer"}
		}
		if n < 1 || n > maxLimit {
			return p, &paramError{param: "limit", msg: "must be between 1 and " + strconv.Itoa(maxLimit)}
		}
		p.Limit = n
	}
	return p, nil
}

func parseMode(q url.Values, key string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(q.Get(key))); m {
	case "":
		return ModeMain, nil
	case ModeMain, ModeAll:
		return m, nil
	default:
		return "", &paramError{param: key, msg: "must be main or all"}
	}
}

func splitNames(s string) []string {
	names := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// countries resolves the country selection against t: the explicit list,
// every country, or the default top countries.
func (d *Deps) countries(t models.Table, p ViewParams) []string {
	switch {
	case p.Countries != nil:
		return p.Countries
	case p.Mode == ModeAll:
		return d.Service.AllCountries(t)
	default:
		return d.Service.TopCountries(t, d.Views.DefaultCountries)
	}
}

// cuisines resolves the cuisine selection against t the same way.
func (d *Deps) cuisines(t models.Table, p ViewParams) []string {
	switch {
	case p.Cuisines != nil:
		return p.Cuisines
	case p.CuisineMode == ModeAll:
		return d.Service.AllCuisines(t)
	default:
		return d.Service.TopCuisines(t, d.Views.DefaultCuisines)
	}
}

// load parses the view parameters, loads a fresh table and applies the
// country selection. It returns the full table alongside the filtered one.
func (d *Deps) load(ctx context.Context, q url.Values) (full, filtered models.Table, p ViewParams, err error) {
	p, err = ParseViewParams(q, d.Views.DefaultLimit, d.Views.MaxLimit)
	if err != nil {
		return
	}
	full, _, err = d.Loader.Load(ctx)
	if err != nil {
		return
	}
	filtered = d.Service.FilterByCountries(full, d.countries(full, p))
	return
}
