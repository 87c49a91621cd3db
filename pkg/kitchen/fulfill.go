package kitchen

import (
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/pricing"
)

// CheckRecipe evaluates a recipe against a pantry snapshot and
// returns the verdict, per-ingredient classifications and costs, the
// deduction plan and shopping suggestions for any shortfalls.
//
// The verdict only considers non-optional ingredients: any absent or
// insufficient one blocks the cook; otherwise ingredients drawn from
// expiring-soon lots demand confirmation unless allowExpiring is set.
// While confirmation is pending the plan is restricted to the
// non-expiring ingredients.
//
// The returned plan is valid only for the snapshot it was computed
// from; pantry.ApplyDeductions re-validates it before mutating.
func CheckRecipe(pantry []models.PantryItem, recipe models.Recipe, now time.Time, allowExpiring bool) (models.RecipeCheck, error) {
	check := models.RecipeCheck{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
	}

	type evaluated struct {
		ing    models.RecipeIngredient
		status models.IngredientStatus
		lot    *models.PantryItem
	}
	evals := make([]evaluated, 0, len(recipe.Ingredients))

	for _, ing := range recipe.Ingredients {
		status, lot := classify(pantry, ing, now)
		cost := pricing.EstimateIngredientCost(lot, ing, now)

		check.Statuses = append(check.Statuses, status)
		check.Costs = append(check.Costs, cost)
		evals = append(evals, evaluated{ing: ing, status: status, lot: lot})
	}

	total, err := pricing.Totals(check.Costs, recipe.Servings)
	if err != nil {
		return check, err
	}
	check.Cost = total

	var blocked, expiring bool
	for _, e := range evals {
		if e.status.Optional {
			continue
		}
		if !e.status.Sufficient() {
			blocked = true
		} else if e.status.ExpiringSoon {
			expiring = true
		}
	}

	switch {
	case blocked:
		check.State = models.StateBlocked
	case expiring && !allowExpiring:
		check.State = models.StateNeedsConfirmation
	default:
		check.State = models.StateCanCook
	}

	for _, e := range evals {
		if e.status.Sufficient() {
			if check.State == models.StateBlocked {
				continue
			}
			if check.State == models.StateNeedsConfirmation && e.status.ExpiringSoon {
				// Held back until the user opts in.
				continue
			}
			check.Plan = append(check.Plan, models.Deduction{
				PantryItemID:     e.lot.ID,
				Quantity:         e.ing.Quantity,
				ExpectedQuantity: e.lot.Quantity,
			})
			continue
		}

		// Shortfall: suggest buying the missing part.
		suggestion := models.ShoppingSuggestion{
			Name:     e.ing.Name,
			Quantity: e.ing.Quantity - e.status.Available,
			Unit:     e.ing.Unit,
			Category: "Other",
		}
		if e.lot != nil {
			suggestion.Category = e.lot.Category
			suggestion.Price = e.lot.Price
		} else if price, _, ok := pricing.Lookup(e.ing.Name); ok {
			suggestion.Price = price
		}
		check.Suggestions = append(check.Suggestions, suggestion)
	}

	return check, nil
}
