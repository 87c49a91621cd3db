package models

import (
	"time"
)

// ExpiringSoonWindow is how close to its expiration date a pantry item
// has to be before cooking with it requires an explicit confirmation.
const ExpiringSoonWindow = 3 * 24 * time.Hour

// DietaryType classifies a recipe by its animal-product content
type DietaryType string

const (
	DietaryVegetarian    DietaryType = "vegetarian"
	DietaryVegan         DietaryType = "vegan"
	DietaryNonVegetarian DietaryType = "non-vegetarian"
)

// NutritionInfo holds optional nutrition facts for a pantry item
type NutritionInfo struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ServingSize string  `json:"serving_size"`
}

// PantryItem represents a single stored lot of a named item.
// Several lots may share a name; identity is the ID.
type PantryItem struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Quantity       float64        `json:"quantity"`
	Unit           string         `json:"unit"`
	Category       string         `json:"category"`
	ExpirationDate time.Time      `json:"expiration_date"`
	Location       string         `json:"location,omitempty"`
	Price          float64        `json:"price,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	Nutrition      *NutritionInfo `json:"nutrition,omitempty"`
	AddedAt        time.Time      `json:"added_at"`
}

// HasPrice reports whether the lot carries a known purchase price.
func (p PantryItem) HasPrice() bool {
	return p.Price > 0
}

// Expired reports whether the lot is past its expiration date.
// An expiration exactly at now counts as expired.
func (p PantryItem) Expired(now time.Time) bool {
	return !p.ExpirationDate.After(now)
}

// ExpiringSoon reports whether the lot expires within the confirmation
// window but is not yet expired.
func (p PantryItem) ExpiringSoon(now time.Time) bool {
	return !p.Expired(now) && !p.ExpirationDate.After(now.Add(ExpiringSoonWindow))
}

// RecipeIngredient is one line of a recipe's ingredient list.
// Matching against the pantry is by case-insensitive name only.
type RecipeIngredient struct {
	ItemID   string  `json:"item_id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Optional bool    `json:"optional,omitempty"`
}

// Recipe represents a stored recipe
type Recipe struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Ingredients         []RecipeIngredient `json:"ingredients"`
	Instructions        []string           `json:"instructions"`
	Servings            int                `json:"servings"`
	PrepTime            int                `json:"prep_time"` // minutes
	CookTime            int                `json:"cook_time"` // minutes
	DietaryType         DietaryType        `json:"dietary_type"`
	DietaryRestrictions []string           `json:"dietary_restrictions,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// ShoppingItem represents one entry on the shopping list
type ShoppingItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Category string    `json:"category"`
	Price    float64   `json:"price,omitempty"`
	Checked  bool      `json:"checked"`
	AddedAt  time.Time `json:"added_at"`
}

// PantryStats summarizes a chat's pantry for the overview message
type PantryStats struct {
	TotalItems    int `json:"total_items"`
	ExpiringItems int `json:"expiring_items"`
	Categories    int `json:"categories"`
}

// ChatInfo registers a chat the bot has talked to, so scheduled
// jobs know where to deliver digests
type ChatInfo struct {
	ChatID       int64     `json:"chat_id"`
	Title        string    `json:"title,omitempty"`
	LastActivity time.Time `json:"last_activity"`
}

// CookRecord is the stored trace of one confirmed cook
type CookRecord struct {
	ID            string    `json:"id"`
	ChatID        int64     `json:"chat_id"`
	RecipeID      string    `json:"recipe_id"`
	RecipeName    string    `json:"recipe_name"`
	AvailableCost float64   `json:"available_cost"`
	MissingCost   float64   `json:"missing_cost"`
	TotalCost     float64   `json:"total_cost"`
	CookedAt      time.Time `json:"cooked_at"`
}

// shelfLifeDays is the default shelf life per category, used when an
// item enters the pantry without an explicit expiration date.
var shelfLifeDays = map[string]int{
	"Fresh Produce":  7,
	"Dairy":          14,
	"Meat & Seafood": 5,
	"Frozen Foods":   180,
	"Canned Goods":   730,
	"Dry Goods":      365,
	"Spices":         730,
	"Beverages":      365,
	"Snacks":         90,
	"Other":          90,
}

// DefaultShelfLifeDays returns the default shelf life for a category.
func DefaultShelfLifeDays(category string) int {
	if days, ok := shelfLifeDays[category]; ok {
		return days
	}
	return 90
}

// ParsedIngredient is a structured item extracted from free text
type ParsedIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category,omitempty"`
}
