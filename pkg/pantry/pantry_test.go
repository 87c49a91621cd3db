package pantry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/storage"
)

const chatID = int64(42)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(storage.NewMemoryStore())
}

func item(id, name string, quantity float64, unit, category string, expiresIn time.Duration) models.PantryItem {
	return models.PantryItem{
		ID:             id,
		Name:           name,
		Quantity:       quantity,
		Unit:           unit,
		Category:       category,
		ExpirationDate: now.Add(expiresIn),
		AddedAt:        now,
	}
}

func TestAddAndGetItem(t *testing.T) {
	s := newService(t)

	added, err := s.AddItem(chatID, item("p1", "pasta", 500, "g", "Dry Goods", 30*24*time.Hour))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	got, err := s.GetItem(chatID, added.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != "pasta" || got.Quantity != 500 {
		t.Fatalf("GetItem = %+v", got)
	}
}

func TestAddItemValidation(t *testing.T) {
	s := newService(t)

	bad := item("x", "", 1, "cup", "Other", time.Hour)
	if _, err := s.AddItem(chatID, bad); err == nil {
		t.Fatal("expected a validation error for a nameless item")
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := newService(t)

	if _, err := s.GetItem(chatID, "nope"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListItemsSorted(t *testing.T) {
	s := newService(t)
	day := 24 * time.Hour

	for _, it := range []models.PantryItem{
		item("1", "Zucchini", 2, "pieces", "Fresh Produce", 5*day),
		item("2", "apples", 4, "pieces", "Fresh Produce", 10*day),
		item("3", "Milk", 1, "gallon", "Dairy", 7*day),
	} {
		if _, err := s.AddItem(chatID, it); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	items, err := s.ListItems(chatID)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"apples", "Milk", "Zucchini"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ListItems order = %v, want %v", names, want)
		}
	}
}

func TestListItemsIsolatedByChat(t *testing.T) {
	s := newService(t)

	if _, err := s.AddItem(chatID, item("1", "pasta", 1, "lb", "Dry Goods", time.Hour)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	other, err := s.ListItems(chatID + 1)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("chat %d should see no items, got %d", chatID+1, len(other))
	}
}

func TestSearch(t *testing.T) {
	s := newService(t)
	day := 24 * time.Hour

	if _, err := s.AddItem(chatID, item("1", "Cheddar Cheese", 1, "lb", "Dairy", 14*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(chatID, item("2", "pasta", 1, "lb", "Dry Goods", 300*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	byName, err := s.Search(chatID, "cheese")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Cheddar Cheese" {
		t.Fatalf("Search by name = %+v", byName)
	}

	byCategory, err := s.Search(chatID, "dairy")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byCategory) != 1 {
		t.Fatalf("Search by category = %+v", byCategory)
	}
}

func TestStatsAndExpiring(t *testing.T) {
	s := newService(t)
	day := 24 * time.Hour

	for _, it := range []models.PantryItem{
		item("1", "milk", 1, "gallon", "Dairy", 2*day),
		item("2", "yogurt", 4, "cup", "Dairy", 6*day),
		item("3", "rice", 5, "lb", "Dry Goods", 200*day),
		item("4", "old bread", 1, "piece", "Dry Goods", -1*day),
	} {
		if _, err := s.AddItem(chatID, it); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	stats, err := s.Stats(chatID, now)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalItems != 4 || stats.ExpiringItems != 2 || stats.Categories != 2 {
		t.Fatalf("Stats = %+v", stats)
	}

	expiring, err := s.Expiring(chatID, now)
	if err != nil {
		t.Fatalf("Expiring failed: %v", err)
	}
	// Expired stock is not "expiring", and results come soonest first.
	if len(expiring) != 2 || expiring[0].Name != "milk" || expiring[1].Name != "yogurt" {
		t.Fatalf("Expiring = %+v", expiring)
	}
}

func TestLowStock(t *testing.T) {
	s := newService(t)
	day := 24 * time.Hour

	if _, err := s.AddItem(chatID, item("1", "eggs", 2, "pieces", "Dairy", 10*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(chatID, item("2", "rice", 5, "lb", "Dry Goods", 200*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	low, err := s.LowStock(chatID)
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}
	if len(low) != 1 || low[0].Name != "eggs" {
		t.Fatalf("LowStock = %+v", low)
	}
}

func TestApplyDeductions(t *testing.T) {
	s := newService(t)
	day := 24 * time.Hour

	if _, err := s.AddItem(chatID, item("p1", "pasta", 500, "g", "Dry Goods", 30*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(chatID, item("e1", "eggs", 12, "pieces", "Dairy", 10*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	plan := []models.Deduction{
		{PantryItemID: "p1", Quantity: 300, ExpectedQuantity: 500},
		{PantryItemID: "e1", Quantity: 6, ExpectedQuantity: 12},
	}
	if err := s.ApplyDeductions(chatID, plan); err != nil {
		t.Fatalf("ApplyDeductions failed: %v", err)
	}

	pasta, _ := s.GetItem(chatID, "p1")
	eggs, _ := s.GetItem(chatID, "e1")
	if pasta.Quantity != 200 || eggs.Quantity != 6 {
		t.Fatalf("after deduction: pasta=%g eggs=%g", pasta.Quantity, eggs.Quantity)
	}
}

func TestApplyDeductionsStaleQuantity(t *testing.T) {
	s := newService(t)
	day := 24 * time.Hour

	if _, err := s.AddItem(chatID, item("p1", "pasta", 500, "g", "Dry Goods", 30*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(chatID, item("e1", "eggs", 10, "pieces", "Dairy", 10*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// The plan was computed when the eggs lot still held 12.
	plan := []models.Deduction{
		{PantryItemID: "p1", Quantity: 300, ExpectedQuantity: 500},
		{PantryItemID: "e1", Quantity: 6, ExpectedQuantity: 12},
	}
	err := s.ApplyDeductions(chatID, plan)
	if !errors.Is(err, models.ErrStaleDeduction) {
		t.Fatalf("expected ErrStaleDeduction, got %v", err)
	}

	// A stale plan must not touch anything, including entries that
	// validated fine on their own.
	pasta, _ := s.GetItem(chatID, "p1")
	if pasta.Quantity != 500 {
		t.Fatalf("pasta quantity = %g after failed batch, want 500", pasta.Quantity)
	}
}

// brokenBatchStore simulates a backend whose batch write fails.
type brokenBatchStore struct {
	*storage.MemoryStore
}

func (s *brokenBatchStore) SetBatch(entries []storage.Entry) error {
	return fmt.Errorf("disk full")
}

func TestApplyDeductionsWriteFailureMutatesNothing(t *testing.T) {
	store := &brokenBatchStore{MemoryStore: storage.NewMemoryStore()}
	s := New(store)
	day := 24 * time.Hour

	if _, err := s.AddItem(chatID, item("p1", "pasta", 500, "g", "Dry Goods", 30*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(chatID, item("e1", "eggs", 12, "pieces", "Dairy", 10*day)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	plan := []models.Deduction{
		{PantryItemID: "p1", Quantity: 100, ExpectedQuantity: 500},
		{PantryItemID: "e1", Quantity: 6, ExpectedQuantity: 12},
	}
	if err := s.ApplyDeductions(chatID, plan); err == nil {
		t.Fatal("expected an error from the failing backend")
	}

	// A failed write leaves every lot at its prior quantity.
	pasta, _ := s.GetItem(chatID, "p1")
	eggs, _ := s.GetItem(chatID, "e1")
	if pasta.Quantity != 500 || eggs.Quantity != 12 {
		t.Fatalf("after failed write: pasta=%g eggs=%g, want 500 and 12", pasta.Quantity, eggs.Quantity)
	}
}

func TestApplyDeductionsMissingLot(t *testing.T) {
	s := newService(t)

	plan := []models.Deduction{{PantryItemID: "ghost", Quantity: 1, ExpectedQuantity: 1}}
	if err := s.ApplyDeductions(chatID, plan); !errors.Is(err, models.ErrStaleDeduction) {
		t.Fatalf("expected ErrStaleDeduction for a deleted lot, got %v", err)
	}
}

func TestApplyDeductionsFloorsAtZero(t *testing.T) {
	s := newService(t)

	if _, err := s.AddItem(chatID, item("p1", "pasta", 3, "oz", "Dry Goods", 24*time.Hour)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	plan := []models.Deduction{{PantryItemID: "p1", Quantity: 5, ExpectedQuantity: 3}}
	if err := s.ApplyDeductions(chatID, plan); err != nil {
		t.Fatalf("ApplyDeductions failed: %v", err)
	}

	pasta, err := s.GetItem(chatID, "p1")
	if err != nil {
		t.Fatalf("emptied lot should remain on record: %v", err)
	}
	if pasta.Quantity != 0 {
		t.Fatalf("quantity = %g, want 0", pasta.Quantity)
	}
}
