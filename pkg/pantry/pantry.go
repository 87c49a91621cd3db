// Package pantry manages a chat's pantry inventory: one record per
// lot, keyed by chat and lot ID. It also applies the kitchen's
// deduction plans, re-validating them against stored state first.
package pantry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/storage"
)

// lowStockThreshold marks items worth restocking after a cook.
const lowStockThreshold = 2.0

// ExpirationAlertWindow is how far ahead the overview and the daily
// digest look for expiring items. Wider than the kitchen's 3-day
// confirmation window on purpose: warnings should come earlier than
// blocks.
const ExpirationAlertWindow = 7 * 24 * time.Hour

// Service provides pantry management functionality
type Service struct {
	store  storage.Store
	logger *logger.Logger
}

// New creates a new pantry service
func New(store storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("pantry"),
	}
}

func itemKey(chatID int64, id string) string {
	return fmt.Sprintf("pantry:%d:%s", chatID, id)
}

func chatPrefix(chatID int64) string {
	return fmt.Sprintf("pantry:%d:", chatID)
}

// AddItem validates and stores a new pantry lot. A missing ID is
// assigned; AddedAt is stamped.
func (s *Service) AddItem(chatID int64, item models.PantryItem) (*models.PantryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pantry item: %w", err)
	}

	if item.ID == "" {
		item.ID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	if err := s.store.Set(itemKey(chatID, item.ID), item); err != nil {
		return nil, fmt.Errorf("failed to store pantry item: %w", err)
	}

	s.logger.Info("Added pantry item %s (%s) for chat %d", item.Name, item.ID, chatID)
	return &item, nil
}

// GetItem retrieves one lot by ID
func (s *Service) GetItem(chatID int64, id string) (*models.PantryItem, error) {
	var item models.PantryItem
	err := s.store.Get(itemKey(chatID, id), &item)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem overwrites an existing lot
func (s *Service) UpdateItem(chatID int64, item models.PantryItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid pantry item: %w", err)
	}
	if _, err := s.GetItem(chatID, item.ID); err != nil {
		return err
	}
	return s.store.Set(itemKey(chatID, item.ID), item)
}

// DeleteItem removes a lot
func (s *Service) DeleteItem(chatID int64, id string) error {
	return s.store.Delete(itemKey(chatID, id))
}

// ListItems returns all lots for a chat, sorted by name
func (s *Service) ListItems(chatID int64) ([]models.PantryItem, error) {
	keys, err := s.store.List(chatPrefix(chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}

	items := make([]models.PantryItem, 0, len(keys))
	for _, key := range keys {
		var item models.PantryItem
		if err := s.store.Get(key, &item); err != nil {
			s.logger.Error("Failed to get pantry item %s: %v", key, err)
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// Search returns lots whose name or category contains the query,
// case-insensitively
func (s *Service) Search(chatID int64, query string) ([]models.PantryItem, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var matched []models.PantryItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Category), q) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Stats summarizes the pantry for the overview message
func (s *Service) Stats(chatID int64, now time.Time) (models.PantryStats, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return models.PantryStats{}, err
	}

	categories := make(map[string]bool)
	stats := models.PantryStats{TotalItems: len(items)}
	for _, item := range items {
		categories[item.Category] = true
		if !item.Expired(now) && !item.ExpirationDate.After(now.Add(ExpirationAlertWindow)) {
			stats.ExpiringItems++
		}
	}
	stats.Categories = len(categories)
	return stats, nil
}

// Expiring returns non-expired lots that expire within the alert
// window, soonest first
func (s *Service) Expiring(chatID int64, now time.Time) ([]models.PantryItem, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	var expiring []models.PantryItem
	for _, item := range items {
		if !item.Expired(now) && !item.ExpirationDate.After(now.Add(ExpirationAlertWindow)) {
			expiring = append(expiring, item)
		}
	}
	sort.Slice(expiring, func(i, j int) bool {
		return expiring[i].ExpirationDate.Before(expiring[j].ExpirationDate)
	})
	return expiring, nil
}

// LowStock returns lots at or below the restock threshold
func (s *Service) LowStock(chatID int64) ([]models.PantryItem, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	var low []models.PantryItem
	for _, item := range items {
		if item.Quantity <= lowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}

// ApplyDeductions applies a cook's deduction plan as a batch. Every
// referenced lot is re-validated against stored state first: a lot
// that was deleted, or whose quantity no longer matches the snapshot
// the plan was computed from, makes the whole plan stale and nothing
// is mutated. The write itself is a single atomic batch, so a backend
// failure also leaves every lot untouched. Quantities floor at zero;
// emptied lots stay on record until explicitly deleted.
func (s *Service) ApplyDeductions(chatID int64, plan []models.Deduction) error {
	updated := make([]models.PantryItem, 0, len(plan))
	for _, d := range plan {
		item, err := s.GetItem(chatID, d.PantryItemID)
		if err != nil {
			if err == models.ErrNotFound {
				return fmt.Errorf("%w: lot %s no longer exists", models.ErrStaleDeduction, d.PantryItemID)
			}
			return err
		}
		if item.Quantity != d.ExpectedQuantity {
			return fmt.Errorf("%w: lot %s has quantity %g, plan expected %g",
				models.ErrStaleDeduction, d.PantryItemID, item.Quantity, d.ExpectedQuantity)
		}

		item.Quantity -= d.Quantity
		if item.Quantity < 0 {
			item.Quantity = 0
		}
		updated = append(updated, *item)
	}

	// Validation passed for the whole plan; write it as one batch.
	entries := make([]storage.Entry, 0, len(updated))
	for _, item := range updated {
		entries = append(entries, storage.Entry{Key: itemKey(chatID, item.ID), Value: item})
	}
	if err := s.store.SetBatch(entries); err != nil {
		return fmt.Errorf("failed to apply deductions: %w", err)
	}

	s.logger.Info("Applied %d deductions for chat %d", len(plan), chatID)
	return nil
}
