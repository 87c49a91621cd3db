// Package recipes manages stored recipes and ranks them by how
// cookable they are from the current pantry.
package recipes

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/pantrybot/pkg/kitchen"
	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/pantry"
	"github.com/korjavin/pantrybot/pkg/storage"
)

// Service provides recipe management functionality
type Service struct {
	store         storage.Store
	pantryService *pantry.Service
	logger        *logger.Logger
}

// New creates a new recipe service
func New(store storage.Store, pantryService *pantry.Service) *Service {
	return &Service{
		store:         store,
		pantryService: pantryService,
		logger:        logger.New("recipes"),
	}
}

func recipeKey(chatID int64, id string) string {
	return fmt.Sprintf("recipe:%d:%s", chatID, id)
}

func chatPrefix(chatID int64) string {
	return fmt.Sprintf("recipe:%d:", chatID)
}

// AddRecipe validates and stores a new recipe
func (s *Service) AddRecipe(chatID int64, recipe models.Recipe) (*models.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}

	if recipe.ID == "" {
		recipe.ID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}

	if err := s.store.Set(recipeKey(chatID, recipe.ID), recipe); err != nil {
		return nil, fmt.Errorf("failed to store recipe: %w", err)
	}

	s.logger.Info("Added recipe %s (%s) for chat %d", recipe.Name, recipe.ID, chatID)
	return &recipe, nil
}

// GetRecipe retrieves one recipe by ID
func (s *Service) GetRecipe(chatID int64, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.store.Get(recipeKey(chatID, id), &recipe)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetByName finds a recipe by case-insensitive name
func (s *Service) GetByName(chatID int64, name string) (*models.Recipe, error) {
	all, err := s.ListRecipes(chatID)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for _, recipe := range all {
		if strings.ToLower(recipe.Name) == want {
			r := recipe
			return &r, nil
		}
	}
	return nil, models.ErrNotFound
}

// UpdateRecipe overwrites an existing recipe
func (s *Service) UpdateRecipe(chatID int64, recipe models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return fmt.Errorf("invalid recipe: %w", err)
	}
	if _, err := s.GetRecipe(chatID, recipe.ID); err != nil {
		return err
	}
	return s.store.Set(recipeKey(chatID, recipe.ID), recipe)
}

// DeleteRecipe removes a recipe
func (s *Service) DeleteRecipe(chatID int64, id string) error {
	return s.store.Delete(recipeKey(chatID, id))
}

// ListRecipes returns all recipes for a chat, sorted by name
func (s *Service) ListRecipes(chatID int64) ([]models.Recipe, error) {
	keys, err := s.store.List(chatPrefix(chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(keys))
	for _, key := range keys {
		var recipe models.Recipe
		if err := s.store.Get(key, &recipe); err != nil {
			s.logger.Error("Failed to get recipe %s: %v", key, err)
			continue
		}
		recipes = append(recipes, recipe)
	}

	sort.Slice(recipes, func(i, j int) bool {
		return strings.ToLower(recipes[i].Name) < strings.ToLower(recipes[j].Name)
	})
	return recipes, nil
}

// Suggestion pairs a recipe with its evaluation against the pantry
type Suggestion struct {
	Recipe models.Recipe
	Check  models.RecipeCheck
}

// stateRank orders fulfillment states from most to least cookable
func stateRank(state models.FulfillmentState) int {
	switch state {
	case models.StateCanCook:
		return 0
	case models.StateNeedsConfirmation:
		return 1
	default:
		return 2
	}
}

// SuggestCookable evaluates every stored recipe against the current
// pantry and returns the top candidates: cookable ones first, then
// those needing confirmation, then blocked ones with the smallest
// missing cost.
func (s *Service) SuggestCookable(chatID int64, now time.Time, limit int) ([]Suggestion, error) {
	recipes, err := s.ListRecipes(chatID)
	if err != nil {
		return nil, err
	}

	items, err := s.pantryService.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(recipes))
	for _, recipe := range recipes {
		check, err := kitchen.CheckRecipe(items, recipe, now, false)
		if err != nil {
			s.logger.Error("Failed to evaluate recipe %s: %v", recipe.Name, err)
			continue
		}
		suggestions = append(suggestions, Suggestion{Recipe: recipe, Check: check})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		ri, rj := stateRank(suggestions[i].Check.State), stateRank(suggestions[j].Check.State)
		if ri != rj {
			return ri < rj
		}
		if suggestions[i].Check.Cost.MissingCost != suggestions[j].Check.Cost.MissingCost {
			return suggestions[i].Check.Cost.MissingCost < suggestions[j].Check.Cost.MissingCost
		}
		return suggestions[i].Check.Cost.TotalCost < suggestions[j].Check.Cost.TotalCost
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
