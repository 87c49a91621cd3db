package recipes

import (
	"errors"
	"testing"
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/pantry"
	"github.com/korjavin/pantrybot/pkg/storage"
)

const chatID = int64(42)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newServices(t *testing.T) (*Service, *pantry.Service) {
	t.Helper()
	store := storage.NewMemoryStore()
	pantryService := pantry.New(store)
	return New(store, pantryService), pantryService
}

func testRecipe(id, name string, ings ...models.RecipeIngredient) models.Recipe {
	return models.Recipe{
		ID:          id,
		Name:        name,
		Ingredients: ings,
		Servings:    2,
		DietaryType: models.DietaryVegetarian,
	}
}

func TestAddAndGetRecipe(t *testing.T) {
	s, _ := newServices(t)

	r := testRecipe("r1", "Pancakes", models.RecipeIngredient{Name: "flour", Quantity: 2, Unit: "cup"})
	if _, err := s.AddRecipe(chatID, r); err != nil {
		t.Fatalf("AddRecipe failed: %v", err)
	}

	got, err := s.GetRecipe(chatID, "r1")
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if got.Name != "Pancakes" || len(got.Ingredients) != 1 {
		t.Fatalf("GetRecipe = %+v", got)
	}
}

func TestAddRecipeValidation(t *testing.T) {
	s, _ := newServices(t)

	tests := []struct {
		name   string
		recipe models.Recipe
	}{
		{"no ingredients", models.Recipe{Name: "empty", Servings: 2, DietaryType: models.DietaryVegan}},
		{"zero servings", models.Recipe{
			Name:        "free lunch",
			Ingredients: []models.RecipeIngredient{{Name: "air", Quantity: 1, Unit: "cup"}},
			Servings:    0,
			DietaryType: models.DietaryVegan,
		}},
		{"bad dietary type", models.Recipe{
			Name:        "mystery",
			Ingredients: []models.RecipeIngredient{{Name: "stuff", Quantity: 1, Unit: "cup"}},
			Servings:    2,
			DietaryType: "carnivore",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddRecipe(chatID, tt.recipe); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestGetByName(t *testing.T) {
	s, _ := newServices(t)

	r := testRecipe("r1", "Shakshuka", models.RecipeIngredient{Name: "eggs", Quantity: 4, Unit: "pieces"})
	if _, err := s.AddRecipe(chatID, r); err != nil {
		t.Fatalf("AddRecipe failed: %v", err)
	}

	got, err := s.GetByName(chatID, "  shakshuka ")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got.ID != "r1" {
		t.Fatalf("GetByName = %+v", got)
	}

	if _, err := s.GetByName(chatID, "ratatouille"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRecipeMissing(t *testing.T) {
	s, _ := newServices(t)

	r := testRecipe("ghost", "Ghost Stew", models.RecipeIngredient{Name: "water", Quantity: 1, Unit: "cup"})
	if err := s.UpdateRecipe(chatID, r); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSuggestCookableOrdering(t *testing.T) {
	s, pantryService := newServices(t)
	day := 24 * time.Hour

	if _, err := pantryService.AddItem(chatID, models.PantryItem{
		ID:             "p1",
		Name:           "pasta",
		Quantity:       500,
		Unit:           "g",
		Category:       "Dry Goods",
		Price:          2.50,
		ExpirationDate: now.Add(300 * day),
	}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cookable := testRecipe("r1", "plain pasta", models.RecipeIngredient{Name: "pasta", Quantity: 400, Unit: "g"})
	blocked := testRecipe("r2", "beef wellington", models.RecipeIngredient{Name: "beef tenderloin", Quantity: 2, Unit: "lb"})
	for _, r := range []models.Recipe{blocked, cookable} {
		if _, err := s.AddRecipe(chatID, r); err != nil {
			t.Fatalf("AddRecipe failed: %v", err)
		}
	}

	suggestions, err := s.SuggestCookable(chatID, now, 10)
	if err != nil {
		t.Fatalf("SuggestCookable failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].Recipe.ID != "r1" || suggestions[0].Check.State != models.StateCanCook {
		t.Fatalf("first suggestion = %+v, want the cookable recipe", suggestions[0].Check)
	}
	if suggestions[1].Check.State != models.StateBlocked {
		t.Fatalf("second suggestion state = %s, want blocked", suggestions[1].Check.State)
	}
}

func TestSuggestCookableLimit(t *testing.T) {
	s, _ := newServices(t)

	for _, r := range []models.Recipe{
		testRecipe("r1", "a", models.RecipeIngredient{Name: "x", Quantity: 1, Unit: "cup"}),
		testRecipe("r2", "b", models.RecipeIngredient{Name: "y", Quantity: 1, Unit: "cup"}),
		testRecipe("r3", "c", models.RecipeIngredient{Name: "z", Quantity: 1, Unit: "cup"}),
	} {
		if _, err := s.AddRecipe(chatID, r); err != nil {
			t.Fatalf("AddRecipe failed: %v", err)
		}
	}

	suggestions, err := s.SuggestCookable(chatID, now, 2)
	if err != nil {
		t.Fatalf("SuggestCookable failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want limit of 2", len(suggestions))
	}
}
