package stats

import (
	"math"
	"testing"
	"time"

	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/storage"
)

const chatID = int64(42)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func check(recipeID, recipeName string, available, missing float64) models.RecipeCheck {
	return models.RecipeCheck{
		RecipeID:   recipeID,
		RecipeName: recipeName,
		State:      models.StateCanCook,
		Cost: models.RecipeCost{
			AvailableCost: available,
			MissingCost:   missing,
			TotalCost:     available + missing,
		},
	}
}

func TestRecordCookAndHistory(t *testing.T) {
	s := New(storage.NewMemoryStore())

	if _, err := s.RecordCook(chatID, check("r1", "pancakes", 3.50, 0), now); err != nil {
		t.Fatalf("RecordCook failed: %v", err)
	}
	if _, err := s.RecordCook(chatID, check("r2", "shakshuka", 2.00, 1.50), now.Add(time.Hour)); err != nil {
		t.Fatalf("RecordCook failed: %v", err)
	}

	history, err := s.History(chatID, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d records, want 2", len(history))
	}
	// Most recent first.
	if history[0].RecipeName != "shakshuka" || history[1].RecipeName != "pancakes" {
		t.Fatalf("history order = [%s %s]", history[0].RecipeName, history[1].RecipeName)
	}
	if history[0].TotalCost != 3.50 {
		t.Fatalf("shakshuka total = %g, want 3.50", history[0].TotalCost)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := New(storage.NewMemoryStore())

	for i := 0; i < 5; i++ {
		if _, err := s.RecordCook(chatID, check("r1", "pancakes", 3, 0), now.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("RecordCook failed: %v", err)
		}
	}

	history, err := s.History(chatID, 3)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d records, want 3", len(history))
	}
}

func TestSummarize(t *testing.T) {
	s := New(storage.NewMemoryStore())

	cooks := []struct {
		check  models.RecipeCheck
		cooked time.Time
	}{
		{check("r1", "pancakes", 3.50, 0), now},
		{check("r1", "pancakes", 3.50, 0), now.Add(1 * time.Hour)},
		{check("r2", "shakshuka", 2.00, 1.50), now.Add(2 * time.Hour)},
	}
	for _, c := range cooks {
		if _, err := s.RecordCook(chatID, c.check, c.cooked); err != nil {
			t.Fatalf("RecordCook failed: %v", err)
		}
	}

	summary, err := s.Summarize(chatID, 5)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.TotalCooks != 3 {
		t.Fatalf("TotalCooks = %d, want 3", summary.TotalCooks)
	}
	if math.Abs(summary.TotalSpend-10.50) > 1e-6 {
		t.Fatalf("TotalSpend = %g, want 10.50", summary.TotalSpend)
	}
	if len(summary.MostCooked) != 2 || summary.MostCooked[0].RecipeName != "pancakes" || summary.MostCooked[0].Count != 2 {
		t.Fatalf("MostCooked = %+v", summary.MostCooked)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := New(storage.NewMemoryStore())

	summary, err := s.Summarize(chatID, 5)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.TotalCooks != 0 || summary.TotalSpend != 0 || len(summary.MostCooked) != 0 {
		t.Fatalf("empty summary = %+v", summary)
	}
}
