// Package kitchen decides whether a recipe can be cooked from a
// pantry snapshot. It classifies each ingredient against the pantry,
// prices the result and produces the deduction plan to apply once a
// cook is confirmed. All functions are pure over the snapshot they
// are given; persisting the outcome is the caller's job.
package kitchen

import (
	"strings"
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
)

// normalizeName normalizes an ingredient name for comparison
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// matchLot finds the pantry lot an ingredient draws from: among the
// non-expired, non-empty lots with the same normalized name, the one
// expiring first. Preferring older stock is a deliberate tie-break
// when several lots share a name. Expired and spent lots never match,
// so an empty lot cannot shadow a later full one, and an ingredient
// whose only lots are expired comes back absent.
func matchLot(pantry []models.PantryItem, name string, now time.Time) *models.PantryItem {
	norm := normalizeName(name)
	var best *models.PantryItem
	for i := range pantry {
		lot := &pantry[i]
		if normalizeName(lot.Name) != norm || lot.Expired(now) || lot.Quantity <= 0 {
			continue
		}
		if best == nil || lot.ExpirationDate.Before(best.ExpirationDate) {
			best = lot
		}
	}
	return best
}

// Classify reports how one recipe ingredient fares against the
// pantry snapshot. Available is the matched lot's full quantity, zero
// when nothing usable matched. ExpiringSoon is only set when the lot
// would otherwise fully cover the ingredient; an insufficient lot is
// reported as insufficient, not as expiring.
func Classify(pantry []models.PantryItem, ing models.RecipeIngredient, now time.Time) models.IngredientStatus {
	status, _ := classify(pantry, ing, now)
	return status
}

func classify(pantry []models.PantryItem, ing models.RecipeIngredient, now time.Time) (models.IngredientStatus, *models.PantryItem) {
	status := models.IngredientStatus{
		Name:     ing.Name,
		Unit:     ing.Unit,
		Required: ing.Quantity,
		Optional: ing.Optional,
	}

	lot := matchLot(pantry, ing.Name, now)
	if lot == nil {
		return status, nil
	}

	status.PantryItemID = lot.ID
	status.Available = lot.Quantity
	status.ExpiringSoon = lot.ExpiringSoon(now) && lot.Quantity >= ing.Quantity
	return status, lot
}
