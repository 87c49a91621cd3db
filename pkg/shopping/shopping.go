// Package shopping manages the shopping list and the purchase flow:
// marking an item bought moves it into the pantry, either topping up
// a matching lot or creating a new one with a category-based default
// shelf life.
package shopping

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/pantry"
	"github.com/korjavin/pantrybot/pkg/storage"
)

// Service provides shopping list functionality
type Service struct {
	store         storage.Store
	pantryService *pantry.Service
	logger        *logger.Logger
}

// New creates a new shopping list service
func New(store storage.Store, pantryService *pantry.Service) *Service {
	return &Service{
		store:         store,
		pantryService: pantryService,
		logger:        logger.New("shopping"),
	}
}

func itemKey(chatID int64, id string) string {
	return fmt.Sprintf("shopping:%d:%s", chatID, id)
}

func chatPrefix(chatID int64) string {
	return fmt.Sprintf("shopping:%d:", chatID)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AddItem validates and stores a new shopping list entry
func (s *Service) AddItem(chatID int64, item models.ShoppingItem) (*models.ShoppingItem, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shopping item: %w", err)
	}

	if item.ID == "" {
		item.ID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	if item.Category == "" {
		item.Category = "Other"
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	if err := s.store.Set(itemKey(chatID, item.ID), item); err != nil {
		return nil, fmt.Errorf("failed to store shopping item: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes a shopping list entry
func (s *Service) RemoveItem(chatID int64, id string) error {
	return s.store.Delete(itemKey(chatID, id))
}

// ListItems returns the shopping list, unchecked entries first
func (s *Service) ListItems(chatID int64) ([]models.ShoppingItem, error) {
	keys, err := s.store.List(chatPrefix(chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}

	items := make([]models.ShoppingItem, 0, len(keys))
	for _, key := range keys {
		var item models.ShoppingItem
		if err := s.store.Get(key, &item); err != nil {
			s.logger.Error("Failed to get shopping item %s: %v", key, err)
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Checked != items[j].Checked {
			return !items[i].Checked
		}
		return normalize(items[i].Name) < normalize(items[j].Name)
	})
	return items, nil
}

// AddSuggestions merges the kitchen's shortfall suggestions into the
// list. A suggestion matching an unchecked entry by name and unit
// tops up its quantity instead of duplicating the line.
func (s *Service) AddSuggestions(chatID int64, suggestions []models.ShoppingSuggestion) error {
	existing, err := s.ListItems(chatID)
	if err != nil {
		return err
	}

	for _, sug := range suggestions {
		merged := false
		for _, item := range existing {
			if item.Checked || normalize(item.Name) != normalize(sug.Name) || normalize(item.Unit) != normalize(sug.Unit) {
				continue
			}
			if sug.Quantity > item.Quantity {
				item.Quantity = sug.Quantity
				if err := s.store.Set(itemKey(chatID, item.ID), item); err != nil {
					return fmt.Errorf("failed to update shopping item: %w", err)
				}
			}
			merged = true
			break
		}
		if merged {
			continue
		}

		item := models.ShoppingItem{
			Name:     sug.Name,
			Quantity: sug.Quantity,
			Unit:     sug.Unit,
			Category: sug.Category,
			Price:    sug.Price,
		}
		if _, err := s.AddItem(chatID, item); err != nil {
			return err
		}
	}

	s.logger.Info("Merged %d suggestions into shopping list for chat %d", len(suggestions), chatID)
	return nil
}

// MarkPurchasedByName checks off the first unchecked entry matching
// the name and moves the purchased quantity into the pantry: a
// non-expired lot with the same name and unit is topped up, otherwise
// a new lot is created with a category-based shelf life.
func (s *Service) MarkPurchasedByName(chatID int64, name string, now time.Time) (*models.ShoppingItem, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	want := normalize(name)
	for _, item := range items {
		if item.Checked || normalize(item.Name) != want {
			continue
		}

		item.Checked = true
		if err := s.store.Set(itemKey(chatID, item.ID), item); err != nil {
			return nil, fmt.Errorf("failed to update shopping item: %w", err)
		}

		if err := s.stockPantry(chatID, item, now); err != nil {
			return nil, err
		}
		return &item, nil
	}
	return nil, models.ErrNotFound
}

// ClearChecked removes all checked entries from the list
func (s *Service) ClearChecked(chatID int64) (int, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, item := range items {
		if !item.Checked {
			continue
		}
		if err := s.RemoveItem(chatID, item.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// stockPantry adds a purchased item's quantity to the pantry
func (s *Service) stockPantry(chatID int64, item models.ShoppingItem, now time.Time) error {
	lots, err := s.pantryService.ListItems(chatID)
	if err != nil {
		return err
	}

	for _, lot := range lots {
		if lot.Expired(now) || normalize(lot.Name) != normalize(item.Name) || normalize(lot.Unit) != normalize(item.Unit) {
			continue
		}
		lot.Quantity += item.Quantity
		return s.pantryService.UpdateItem(chatID, lot)
	}

	days := models.DefaultShelfLifeDays(item.Category)

	_, err = s.pantryService.AddItem(chatID, models.PantryItem{
		Name:           item.Name,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Category:       item.Category,
		Price:          item.Price,
		ExpirationDate: now.AddDate(0, 0, days),
		AddedAt:        now,
	})
	return err
}
