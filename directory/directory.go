package directory

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// UnknownCountry is the name given to codes the directory does not know.
	UnknownCountry = "Unknown"
	// DefaultFallbackColor is the category for rating colors outside the table.
	DefaultFallbackColor = "gray"
)

var defaultCountries = map[int]string{
	1:   "India",
	14:  "Australia",
	30:  "Brazil",
	37:  "Canada",
	94:  "Indonesia",
	148: "New Zealand",
	162: "Philippines",
	166: "Qatar",
	184: "Singapore",
	189: "South Africa",
	191: "Sri Lanka",
	208: "Turkey",
	214: "United Arab Emirates",
	215: "England",
	216: "United States of America",
}

var defaultColors = map[string]string{
	"3F7E00": "darkgreen",
	"5BA829": "green",
	"9ACD32": "lightgreen",
	"CBCBC8": "darkred",
	"CDD614": "orange",
	"FFBA00": "red",
	"FF7800": "darkred",
}

// Directory resolves country codes to names and rating colors to marker color
// categories. A Directory is never modified after construction and is safe to
// share.
type Directory struct {
	countries     map[int]string
	colors        map[string]string
	fallbackColor string
}

// New copies the given tables into a Directory. An empty fallback selects
// DefaultFallbackColor.
func New(countries map[int]string, colors map[string]string, fallbackColor string) *Directory {
	d := &Directory{
		countries:     make(map[int]string, len(countries)),
		colors:        make(map[string]string, len(colors)),
		fallbackColor: fallbackColor,
	}
	for code, name := range countries {
		d.countries[code] = name
	}
	for hex, category := range colors {
		d.colors[normalizeHex(hex)] = category
	}
	if d.fallbackColor == "" {
		d.fallbackColor = DefaultFallbackColor
	}
	return d
}

// Default returns the built-in directory of 15 countries and 7 rating colors.
func Default() *Directory {
	return New(defaultCountries, defaultColors, DefaultFallbackColor)
}

// fileFormat is the YAML layout accepted by Load.
type fileFormat struct {
	Countries     map[int]string    `yaml:"countries"`
	Colors        map[string]string `yaml:"colors"`
	FallbackColor string            `yaml:"fallback_color"`
}

// Load reads a YAML directory file and merges it over the defaults: entries in
// the file add to or replace the built-in ones.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory file %s: %w", path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse directory file %s: %w", path, err)
	}

	countries := make(map[int]string, len(defaultCountries)+len(f.Countries))
	for code, name := range defaultCountries {
		countries[code] = name
	}
	for code, name := range f.Countries {
		countries[code] = name
	}

	colors := make(map[string]string, len(defaultColors)+len(f.Colors))
	for hex, category := range defaultColors {
		colors[hex] = category
	}
	for hex, category := range f.Colors {
		colors[normalizeHex(hex)] = category
	}

	return New(countries, colors, f.FallbackColor), nil
}

// CountryName returns the name registered for code, or UnknownCountry.
func (d *Directory) CountryName(code int) string {
	if name, ok := d.countries[code]; ok {
		return name
	}
	return UnknownCountry
}

// ColorCategory maps a hex rating color ("3F7E00", "#3f7e00") to its category.
// Unregistered codes get the fallback category.
func (d *Directory) ColorCategory(hex string) string {
	if category, ok := d.colors[normalizeHex(hex)]; ok {
		return category
	}
	return d.fallbackColor
}

// FallbackColor returns the category used for unregistered rating colors.
func (d *Directory) FallbackColor() string { return d.fallbackColor }

// Countries returns the registered country codes in ascending order.
func (d *Directory) Countries() []int {
	codes := make([]int, 0, len(d.countries))
	for code := range d.countries {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

func normalizeHex(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}
