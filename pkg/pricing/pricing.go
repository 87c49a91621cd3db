// Package pricing estimates the monetary cost of recipe ingredients.
// Owned stock is priced by interpolating the matched lot's purchase
// price per base unit; everything else falls back to a static table
// of typical grocery prices.
package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/units"
)

// EstimateIngredientCost computes the cost of one recipe ingredient
// given its matched pantry lot (nil when nothing matched). Expired or
// priceless lots are treated the same as no match. When the lot
// covers only part of the required quantity the cost is split: the
// owned portion is interpolated from the lot's price, the shortfall
// is priced from the fallback table.
func EstimateIngredientCost(match *models.PantryItem, ing models.RecipeIngredient, now time.Time) models.IngredientCost {
	cost := models.IngredientCost{Name: ing.Name}

	usable := match != nil && !match.Expired(now) && match.HasPrice() && match.Quantity > 0
	if !usable {
		cost.FallbackCost = fallbackCost(ing.Name, ing.Quantity, ing.Unit)
		cost.Estimated = true
		return cost
	}

	// Price per base unit, assuming price scales linearly with
	// quantity. This is a deliberate simplification.
	perBase := match.Price / units.ToBase(match.Quantity, match.Unit)
	available := math.Min(match.Quantity, ing.Quantity)
	cost.OwnedCost = perBase * units.ToBase(available, ing.Unit)

	if shortfall := ing.Quantity - available; shortfall > 0 {
		cost.FallbackCost = fallbackCost(ing.Name, shortfall, ing.Unit)
		cost.Estimated = true
	}
	return cost
}

// Totals aggregates per-ingredient costs into a recipe-level summary.
// Returns ErrZeroServings instead of a NaN per-serving cost.
func Totals(costs []models.IngredientCost, servings int) (models.RecipeCost, error) {
	var rc models.RecipeCost
	for _, c := range costs {
		rc.AvailableCost += c.OwnedCost
		rc.MissingCost += c.FallbackCost
	}
	rc.TotalCost = rc.AvailableCost + rc.MissingCost
	if servings <= 0 {
		return rc, models.ErrZeroServings
	}
	rc.CostPerServing = rc.TotalCost / float64(servings)
	return rc, nil
}

// Lookup returns the fallback table entry for an ingredient name, if
// there is one. Exposed so callers can surface the table as reference
// data and price shopping suggestions.
func Lookup(name string) (price float64, unit string, ok bool) {
	entry, ok := fallbackPrices[normalize(name)]
	if !ok {
		return 0, "", false
	}
	return entry.Price, entry.Unit, true
}

// fallbackCost prices a quantity of an ingredient from the static
// table. Unknown names cost the flat default per piece.
func fallbackCost(name string, quantity float64, unit string) float64 {
	key := normalize(name)

	if c, ok := naturalUnitCost(key, quantity, unit); ok {
		return c
	}

	entry, ok := fallbackPrices[key]
	if !ok {
		return defaultPrice * units.ToBase(quantity, unit)
	}
	perBase := entry.Price / units.ToBase(1, entry.Unit)
	return perBase * units.ToBase(quantity, unit)
}

// naturalUnitCost handles the few staples whose store price does not
// survive the generic tablespoon/ounce/piece conversion: eggs are
// bought by the dozen, milk by the gallon, butter by the pound.
func naturalUnitCost(key string, quantity float64, unit string) (float64, bool) {
	switch key {
	case "egg", "eggs":
		// Count units convert to pieces; unknown units are assumed
		// to already be pieces.
		pieces := quantity
		if units.Base(unit) == units.BaseCount {
			pieces = units.ToBase(quantity, unit)
		}
		return fallbackPrices["eggs"].Price * pieces / 12, true
	case "milk":
		switch units.Base(unit) {
		case units.BaseVolume:
			tbsp := units.ToBase(quantity, unit)
			return fallbackPrices["milk"].Price * tbsp / 256, true
		case units.BaseWeight, units.BaseCount:
			// Odd but recognized units take the generic table path.
			return 0, false
		}
		// Assume gallons only for units nothing else recognizes.
		return fallbackPrices["milk"].Price * quantity, true
	case "butter":
		switch units.Base(unit) {
		case units.BaseWeight:
			oz := units.ToBase(quantity, unit)
			return fallbackPrices["butter"].Price * oz / 16, true
		case units.BaseVolume:
			// 32 tablespoons to the pound.
			tbsp := units.ToBase(quantity, unit)
			return fallbackPrices["butter"].Price * tbsp / 32, true
		}
		return fallbackPrices["butter"].Price * quantity, true
	}
	return 0, false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
