package messages

import (
	"strings"
	"testing"
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestFormatPantryItems(t *testing.T) {
	items := []models.PantryItem{
		{Name: "milk", Quantity: 1, Unit: "gallon", ExpirationDate: now.Add(48 * time.Hour)},
		{Name: "bread", Quantity: 1, Unit: "piece", ExpirationDate: now.Add(-24 * time.Hour)},
		{Name: "rice", Quantity: 5, Unit: "lb", ExpirationDate: now.Add(200 * 24 * time.Hour)},
	}

	out := FormatPantryItems(items, now)
	if !strings.Contains(out, "milk — 1 gallon") || !strings.Contains(out, "⏰ expires") {
		t.Fatalf("expiring item not flagged:\n%s", out)
	}
	if !strings.Contains(out, "bread — 1 piece ⚠️ expired") {
		t.Fatalf("expired item not flagged:\n%s", out)
	}
	if strings.Contains(out, "rice — 5 lb ⚠️") || strings.Contains(out, "rice — 5 lb ⏰") {
		t.Fatalf("fresh item wrongly flagged:\n%s", out)
	}
}

func TestFormatCookReport(t *testing.T) {
	check := models.RecipeCheck{
		RecipeName: "pancakes",
		State:      models.StateBlocked,
		Statuses: []models.IngredientStatus{
			{Name: "flour", Unit: "oz", Required: 16, Available: 32, PantryItemID: "f1"},
			{Name: "eggs", Unit: "pieces", Required: 6, Available: 2, PantryItemID: "e1"},
			{Name: "syrup", Unit: "tbsp", Required: 2, Optional: true},
		},
		Cost: models.RecipeCost{AvailableCost: 1.25, MissingCost: 1.33, TotalCost: 2.58, CostPerServing: 1.29},
		Suggestions: []models.ShoppingSuggestion{
			{Name: "eggs", Quantity: 4, Unit: "pieces"},
		},
	}

	out := FormatCookReport(check)
	if !strings.Contains(out, "missing ingredients") {
		t.Fatalf("blocked verdict missing:\n%s", out)
	}
	if !strings.Contains(out, "flour — in stock") {
		t.Fatalf("covered ingredient not reported:\n%s", out)
	}
	if !strings.Contains(out, "eggs — only 2 of 6 pieces") {
		t.Fatalf("shortfall not reported:\n%s", out)
	}
	if !strings.Contains(out, "syrup — missing (optional)") {
		t.Fatalf("optional ingredient not reported:\n%s", out)
	}
	if !strings.Contains(out, "Owned: $1.25, to buy: $1.33, total: $2.58") {
		t.Fatalf("cost split not reported:\n%s", out)
	}
	if !strings.Contains(out, "shopping list") {
		t.Fatalf("suggestion note missing:\n%s", out)
	}
}

func TestFormatShoppingList(t *testing.T) {
	if out := FormatShoppingList(nil); !strings.Contains(out, "empty") {
		t.Fatalf("empty list message = %q", out)
	}

	items := []models.ShoppingItem{
		{Name: "rice", Quantity: 5, Unit: "lb", Price: 10},
		{Name: "milk", Quantity: 1, Unit: "gallon", Checked: true},
	}
	out := FormatShoppingList(items)
	if !strings.Contains(out, "◻️ rice — 5 lb (~$10.00)") {
		t.Fatalf("unchecked entry wrong:\n%s", out)
	}
	if !strings.Contains(out, "✅ milk — 1 gallon") {
		t.Fatalf("checked entry wrong:\n%s", out)
	}
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(models.PantryStats{TotalItems: 12, Categories: 4, ExpiringItems: 2})
	if out != "12 items, 4 categories, 2 expiring within a week" {
		t.Fatalf("FormatStats = %q", out)
	}
}

func TestGenerateExpiringDigestEmpty(t *testing.T) {
	s := New(nil)
	out := s.GenerateExpiringDigest(nil, now)
	if !strings.Contains(out, "Nothing in your pantry expires") {
		t.Fatalf("empty digest = %q", out)
	}
}
