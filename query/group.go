package query

import (
	"cmp"
	"slices"
	"strconv"

	"fomezero/models"
)

// group collects the rows sharing one key.
type group[K comparable] struct {
	key  K
	rows []*models.Restaurant
}

// groupBy buckets rows by key, skipping rows for which key reports false.
// Groups come back ordered by compare, which plays the part of a sorted
// group-by index: later stable sorts keep this order among ties.
func groupBy[K comparable](rows []models.Restaurant, key func(*models.Restaurant) (K, bool), compare func(a, b K) int) []group[K] {
	pos := make(map[K]int)
	var groups []group[K]
	for i := range rows {
		r := &rows[i]
		k, ok := key(r)
		if !ok {
			continue
		}
		j, seen := pos[k]
		if !seen {
			j = len(groups)
			pos[k] = j
			groups = append(groups, group[K]{key: k})
		}
		groups[j].rows = append(groups[j].rows, r)
	}
	slices.SortFunc(groups, func(a, b group[K]) int { return compare(a.key, b.key) })
	return groups
}

// ranked pairs a group key with the measure it is ranked by.
type ranked[K comparable] struct {
	key   K
	value float64
}

// rank sorts by value, descending unless ascending is set. Ties keep their
// incoming order.
func rank[K comparable](items []ranked[K], ascending bool) {
	slices.SortStableFunc(items, func(a, b ranked[K]) int {
		if ascending {
			return cmp.Compare(a.value, b.value)
		}
		return cmp.Compare(b.value, a.value)
	})
}

// countGroups ranks groups by row count, largest first.
func countGroups[K comparable](groups []group[K]) []ranked[K] {
	out := make([]ranked[K], 0, len(groups))
	for _, g := range groups {
		out = append(out, ranked[K]{key: g.key, value: float64(len(g.rows))})
	}
	rank(out, false)
	return out
}

// distinctGroups ranks groups by the number of distinct non-empty values of
// field, largest first. Groups without any value rank with zero.
func distinctGroups[K comparable](groups []group[K], field func(*models.Restaurant) string) []ranked[K] {
	out := make([]ranked[K], 0, len(groups))
	for _, g := range groups {
		seen := make(map[string]struct{})
		for _, r := range g.rows {
			if v := field(r); v != "" {
				seen[v] = struct{}{}
			}
		}
		out = append(out, ranked[K]{key: g.key, value: float64(len(seen))})
	}
	rank(out, false)
	return out
}

// meanGroups ranks groups by the mean of the non-missing measure values.
// Missing values count neither as zero nor towards the denominator; groups
// with no values at all are left out.
func meanGroups[K comparable](groups []group[K], measure func(*models.Restaurant) (float64, bool), ascending bool) []ranked[K] {
	out := make([]ranked[K], 0, len(groups))
	for _, g := range groups {
		var sum float64
		var n int
		for _, r := range g.rows {
			if v, ok := measure(r); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, ranked[K]{key: g.key, value: sum / float64(n)})
	}
	rank(out, ascending)
	return out
}

// Head returns at most n items; n < 1 yields none.
func Head[T any](items []T, n int) []T {
	if n < 1 {
		return items[:0]
	}
	if n < len(items) {
		return items[:n]
	}
	return items
}

// round rounds the exact binary value of v to the given number of decimals.
// Only exact ties go to even: 3.4500000000000002 rounds to 3.5.
func round(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// median of the non-nil values, nil when there are none.
func median(values []*float64) *float64 {
	var xs []float64
	for _, v := range values {
		if v != nil {
			xs = append(xs, *v)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	slices.Sort(xs)
	mid := len(xs) / 2
	m := xs[mid]
	if len(xs)%2 == 0 {
		m = (xs[mid-1] + xs[mid]) / 2
	}
	return &m
}

func distinct(rows []models.Restaurant, field func(*models.Restaurant) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range rows {
		v := field(&rows[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func country(r *models.Restaurant) (string, bool) { return r.CountryName, r.CountryName != "" }

func cuisine(r *models.Restaurant) (string, bool) { return r.UniqueCuisine, r.UniqueCuisine != "" }

func rating(r *models.Restaurant) (float64, bool) {
	if r.AggregateRating == nil {
		return 0, false
	}
	return *r.AggregateRating, true
}
