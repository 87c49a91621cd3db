package models

// FulfillmentState is the overall verdict for one cook attempt
type FulfillmentState string

const (
	// StateCanCook means every non-optional ingredient is covered by
	// non-expired stock and the deduction plan can be applied as is.
	StateCanCook FulfillmentState = "can_cook"
	// StateNeedsConfirmation means the recipe is coverable but some
	// ingredients come from lots that expire within the confirmation
	// window; the user has to opt in before they are deducted.
	StateNeedsConfirmation FulfillmentState = "needs_confirmation"
	// StateBlocked means at least one non-optional ingredient is
	// absent or insufficient.
	StateBlocked FulfillmentState = "blocked"
)

// IngredientStatus is the classification of one recipe ingredient
// against a pantry snapshot. Available is the matched lot's full
// quantity, zero when no non-expired lot matched.
type IngredientStatus struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	ExpiringSoon bool    `json:"expiring_soon"`
	Optional     bool    `json:"optional,omitempty"`
	PantryItemID string  `json:"pantry_item_id,omitempty"`
}

// Absent reports whether no usable (non-expired) lot matched.
func (s IngredientStatus) Absent() bool {
	return s.PantryItemID == ""
}

// Sufficient reports whether the matched lot covers the full
// required quantity.
func (s IngredientStatus) Sufficient() bool {
	return !s.Absent() && s.Available >= s.Required
}

// IngredientCost is the estimated cost of one ingredient, split into
// the portion covered by owned stock and the portion priced from the
// fallback table. Keeping the split in one value makes
// owned+fallback == total hold by construction.
type IngredientCost struct {
	Name         string  `json:"name"`
	OwnedCost    float64 `json:"owned_cost"`
	FallbackCost float64 `json:"fallback_cost"`
	Estimated    bool    `json:"estimated"`
}

// Total returns the combined cost of both portions.
func (c IngredientCost) Total() float64 {
	return c.OwnedCost + c.FallbackCost
}

// RecipeCost aggregates per-ingredient costs for a whole recipe
type RecipeCost struct {
	AvailableCost  float64 `json:"available_cost"`
	MissingCost    float64 `json:"missing_cost"`
	TotalCost      float64 `json:"total_cost"`
	CostPerServing float64 `json:"cost_per_serving"`
}

// Deduction is one planned pantry decrement. ExpectedQuantity is the
// lot's quantity at snapshot time, used to detect stale plans before
// anything is mutated.
type Deduction struct {
	PantryItemID     string  `json:"pantry_item_id"`
	Quantity         float64 `json:"quantity"`
	ExpectedQuantity float64 `json:"expected_quantity"`
}

// ShoppingSuggestion is a shortfall the kitchen recommends buying
type ShoppingSuggestion struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Price    float64 `json:"price,omitempty"`
}

// RecipeCheck is the full result of evaluating a recipe against a
// pantry snapshot: per-ingredient classifications, the cost estimate,
// the verdict, the deduction plan and shopping suggestions for any
// shortfalls. The plan is only valid for the snapshot it was computed
// from.
type RecipeCheck struct {
	RecipeID    string               `json:"recipe_id"`
	RecipeName  string               `json:"recipe_name"`
	State       FulfillmentState     `json:"state"`
	Statuses    []IngredientStatus   `json:"statuses"`
	Costs       []IngredientCost     `json:"costs"`
	Cost        RecipeCost           `json:"cost"`
	Plan        []Deduction          `json:"plan,omitempty"`
	Suggestions []ShoppingSuggestion `json:"suggestions,omitempty"`
}
