package models

import "fmt"

// Boundary validation for records coming in from chat input or
// imports. The kitchen and pricing packages assume validated input.

// Validate checks a pantry item before it is stored.
func (p PantryItem) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if p.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if p.Category == "" {
		return fmt.Errorf("category is required")
	}
	if p.ExpirationDate.IsZero() {
		return fmt.Errorf("expiration date is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// Validate checks a recipe ingredient line.
func (i RecipeIngredient) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("ingredient %q: quantity must be positive", i.Name)
	}
	if i.Unit == "" {
		return fmt.Errorf("ingredient %q: unit is required", i.Name)
	}
	return nil
}

// Validate checks a recipe before it is stored.
func (r Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe needs at least one ingredient")
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	if r.Servings <= 0 {
		return fmt.Errorf("servings must be positive")
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return fmt.Errorf("prep and cook times cannot be negative")
	}
	switch r.DietaryType {
	case DietaryVegetarian, DietaryVegan, DietaryNonVegetarian:
	default:
		return fmt.Errorf("unknown dietary type %q", r.DietaryType)
	}
	return nil
}

// Validate checks a shopping list entry.
func (s ShoppingItem) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if s.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if s.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	return nil
}
