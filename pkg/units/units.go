// Package units converts quantities between kitchen units and a small
// set of canonical base units (tablespoons for volume, ounces for
// weight, pieces for count) so stock levels and prices expressed in
// different units can be compared.
package units

import "strings"

// conversion maps a unit-name fragment to a base unit and multiplier.
type conversion struct {
	fragment string
	base     string
	factor   float64
}

// Base unit names.
const (
	BaseVolume = "tbsp"
	BaseWeight = "oz"
	BaseCount  = "piece"
)

// conversions is matched in order, first fragment wins. Entries whose
// fragments could appear inside other unit names ("oz" inside "dozen")
// come after the more specific ones.
var conversions = []conversion{
	{"gallon", BaseVolume, 256},
	{"quart", BaseVolume, 64},
	{"pint", BaseVolume, 32},
	{"cup", BaseVolume, 16},
	{"tablespoon", BaseVolume, 1},
	{"tbsp", BaseVolume, 1},
	{"teaspoon", BaseVolume, 1.0 / 3},
	{"tsp", BaseVolume, 1.0 / 3},
	{"pound", BaseWeight, 16},
	{"lb", BaseWeight, 16},
	{"dozen", BaseCount, 12},
	{"piece", BaseCount, 1},
	{"ounce", BaseWeight, 1},
	{"oz", BaseWeight, 1},
}

// lookup finds the first conversion whose fragment occurs in the unit.
func lookup(unit string) (conversion, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	for _, c := range conversions {
		if strings.Contains(u, c.fragment) {
			return c, true
		}
	}
	return conversion{}, false
}

// ToBase converts a quantity in the given unit to its base unit.
// Unrecognized units pass through unchanged, so quantities in the
// same unknown unit stay comparable. Volume and weight/count bases
// are never interconverted; a cross-family comparison degrades to
// this identity rule.
func ToBase(quantity float64, unit string) float64 {
	c, ok := lookup(unit)
	if !ok {
		return quantity
	}
	return quantity * c.factor
}

// Base returns the base unit name for a unit, or the unit itself
// (lower-cased, trimmed) when it is not recognized.
func Base(unit string) string {
	c, ok := lookup(unit)
	if !ok {
		return strings.ToLower(strings.TrimSpace(unit))
	}
	return c.base
}
