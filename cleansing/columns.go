package cleansing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelBoundary   = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// NormalizeColumn converts a source header to the canonical snake case form:
// "Restaurant ID" → "restaurant_id", "Average Cost for two" →
// "average_cost_for_two", "ratingColor" → "rating_color". Already normalized
// names are returned unchanged.
func NormalizeColumn(name string) string {
	// Humanize and titleize first so that every word, acronyms included, starts
	// a new camel hump once the spaces are gone.
	s := strings.ReplaceAll(underscore(strings.TrimSpace(name)), "_", " ")
	s = cases.Title(language.Und).String(s)
	s = strings.Join(strings.Fields(s), "")
	return underscore(s)
}

func underscore(s string) string {
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	return cases.Lower(language.Und).String(s)
}
