package query

import (
	"fmt"
	"strings"

	"fomezero/directory"
	"fomezero/models"
)

// MatchPolicy decides how a selected country or cuisine name matches a row.
type MatchPolicy int

const (
	// MatchExact keeps a row when its value equals a selected name.
	MatchExact MatchPolicy = iota
	// MatchSubstring keeps a row when a selected name occurs anywhere in its
	// value, so "India" also selects "British India".
	MatchSubstring
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(p))
	}
}

// ParseMatchPolicy accepts "exact" and "substring". The empty string selects
// MatchExact.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return MatchExact, nil
	case "substring":
		return MatchSubstring, nil
	default:
		return MatchExact, fmt.Errorf("unknown match policy %q", s)
	}
}

// Service answers every view's questions about a canonical table. It holds no
// table itself: callers pass the table they own, and nothing the Service
// returns aliases that table's rows.
type Service struct {
	dir   *directory.Directory
	match MatchPolicy
}

// New returns a Service resolving color categories through dir and filtering
// with the given policy.
func New(dir *directory.Directory, match MatchPolicy) *Service {
	return &Service{dir: dir, match: match}
}

// Match reports the active filter policy.
func (s *Service) Match() MatchPolicy { return s.match }

// Directory returns the directory the service resolves names with.
func (s *Service) Directory() *directory.Directory { return s.dir }

// AllCountries returns the distinct country names of t in alphabetical order.
func (s *Service) AllCountries(t models.Table) []string {
	return distinct(t.Rows, func(r *models.Restaurant) string { return r.CountryName })
}

// TopCountries returns up to n country names ranked by restaurant count.
func (s *Service) TopCountries(t models.Table, n int) []string {
	names := make([]string, 0)
	for _, c := range Head(countGroups(groupBy(t.Rows, country, strings.Compare)), n) {
		names = append(names, c.key)
	}
	return names
}

// AllCuisines returns the distinct non-empty primary cuisines of t in
// alphabetical order.
func (s *Service) AllCuisines(t models.Table) []string {
	return distinct(t.Rows, func(r *models.Restaurant) string { return r.UniqueCuisine })
}

// TopCuisines returns up to n primary cuisines ranked by restaurant count.
func (s *Service) TopCuisines(t models.Table, n int) []string {
	names := make([]string, 0)
	for _, c := range Head(countGroups(groupBy(t.Rows, cuisine, strings.Compare)), n) {
		names = append(names, c.key)
	}
	return names
}

// FilterByCountries returns a copy of t holding the rows whose country matches
// one of names.
func (s *Service) FilterByCountries(t models.Table, names []string) models.Table {
	return s.filter(t, names, func(r *models.Restaurant) string { return r.CountryName })
}

// FilterByCuisines returns a copy of t holding the rows whose primary cuisine
// matches one of names. Rows without a cuisine never match.
func (s *Service) FilterByCuisines(t models.Table, names []string) models.Table {
	return s.filter(t, names, func(r *models.Restaurant) string { return r.UniqueCuisine })
}

func (s *Service) filter(t models.Table, names []string, field func(*models.Restaurant) string) models.Table {
	rows := make([]models.Restaurant, 0)
	for i := range t.Rows {
		v := field(&t.Rows[i])
		if v != "" && s.matches(v, names) {
			rows = append(rows, t.Rows[i].Clone())
		}
	}
	return t.WithRows(rows)
}

func (s *Service) matches(value string, names []string) bool {
	for _, name := range names {
		if s.match == MatchSubstring {
			if strings.Contains(value, name) {
				return true
			}
		} else if value == name {
			return true
		}
	}
	return false
}
