// Package messages produces the bot's chat copy. Flavor text goes
// through the LLM with static fallbacks; anything carrying numbers
// (quantities, costs) is formatted deterministically.
package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/openai"
)

// Service provides message generation functionality
type Service struct {
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new message service
func New(openaiClient *openai.Client) *Service {
	return &Service{
		openaiClient: openaiClient,
		logger:       logger.New("messages"),
	}
}

// GenerateWelcomeMessage generates a welcome message
func (s *Service) GenerateWelcomeMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("welcome", map[string]interface{}{
		"purpose": "Track the household pantry, plan recipes and keep the shopping list",
	})
	if err != nil {
		s.logger.Error("Failed to generate welcome message: %v", err)
		return "👋 Welcome to PantryBot! I track your pantry, check what you can cook and keep your shopping list. Try /pantry, /recipes or /add."
	}
	return msg
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(context string) string {
	msg, err := s.openaiClient.GenerateChatMessage("error", map[string]interface{}{
		"context": context,
	})
	if err != nil {
		s.logger.Error("Failed to generate error message: %v", err)
		return "😢 Sorry, something went wrong. Please try again later."
	}
	return msg
}

// GenerateEmptyPantryMessage generates a message for an empty pantry
func (s *Service) GenerateEmptyPantryMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("empty_pantry", map[string]interface{}{})
	if err != nil {
		s.logger.Error("Failed to generate empty pantry message: %v", err)
		return "Your pantry is empty! Add items with /add — just tell me what you bought."
	}
	return msg
}

// GenerateExpiringDigest generates the daily expiring-items digest
func (s *Service) GenerateExpiringDigest(items []models.PantryItem, now time.Time) string {
	if len(items) == 0 {
		return "✅ Nothing in your pantry expires in the next week."
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s (%s)", item.Name, item.ExpirationDate.Format("Jan 2"))
	}

	msg, err := s.openaiClient.GenerateChatMessage("expiring_digest", map[string]interface{}{
		"items": lines,
	})
	if err != nil {
		s.logger.Error("Failed to generate expiring digest: %v", err)
		return "⏰ These pantry items expire soon:\n• " + strings.Join(lines, "\n• ") +
			"\nConsider cooking with them — try /suggest."
	}
	return msg
}

// FormatPantryItems renders the pantry listing
func FormatPantryItems(items []models.PantryItem, now time.Time) string {
	var b strings.Builder
	b.WriteString("🧺 Your pantry:\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("• %s — %g %s", item.Name, item.Quantity, item.Unit))
		switch {
		case item.Expired(now):
			b.WriteString(" ⚠️ expired")
		case item.ExpiringSoon(now):
			b.WriteString(fmt.Sprintf(" ⏰ expires %s", item.ExpirationDate.Format("Jan 2")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatStats renders the pantry overview line
func FormatStats(stats models.PantryStats) string {
	return fmt.Sprintf("%d items, %d categories, %d expiring within a week",
		stats.TotalItems, stats.Categories, stats.ExpiringItems)
}

// FormatShoppingList renders the shopping list
func FormatShoppingList(items []models.ShoppingItem) string {
	if len(items) == 0 {
		return "🛒 Your shopping list is empty."
	}

	var b strings.Builder
	b.WriteString("🛒 Shopping list:\n")
	for _, item := range items {
		mark := "◻️"
		if item.Checked {
			mark = "✅"
		}
		b.WriteString(fmt.Sprintf("%s %s — %g %s", mark, item.Name, item.Quantity, item.Unit))
		if item.Price > 0 {
			b.WriteString(fmt.Sprintf(" (~$%.2f)", item.Price))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nMark purchases with /bought <name>.")
	return b.String()
}

// FormatCookReport renders the full verdict for a cook attempt:
// per-ingredient availability and the cost split.
func FormatCookReport(check models.RecipeCheck) string {
	var b strings.Builder

	switch check.State {
	case models.StateCanCook:
		b.WriteString(fmt.Sprintf("🍳 %s is ready to cook!\n", check.RecipeName))
	case models.StateNeedsConfirmation:
		b.WriteString(fmt.Sprintf("⏰ %s uses ingredients that expire soon.\n", check.RecipeName))
	case models.StateBlocked:
		b.WriteString(fmt.Sprintf("🚫 %s is missing ingredients.\n", check.RecipeName))
	}

	for _, status := range check.Statuses {
		var note string
		switch {
		case status.Absent():
			note = "missing"
		case !status.Sufficient():
			note = fmt.Sprintf("only %g of %g %s", status.Available, status.Required, status.Unit)
		case status.ExpiringSoon:
			note = "expiring soon"
		default:
			note = "in stock"
		}
		if status.Optional {
			note += " (optional)"
		}
		b.WriteString(fmt.Sprintf("• %s — %s\n", status.Name, note))
	}

	b.WriteString(fmt.Sprintf("\n💰 Owned: $%.2f, to buy: $%.2f, total: $%.2f ($%.2f per serving)",
		check.Cost.AvailableCost, check.Cost.MissingCost, check.Cost.TotalCost, check.Cost.CostPerServing))

	if len(check.Suggestions) > 0 {
		b.WriteString("\n\nAdded the missing items to your shopping list.")
	}
	return b.String()
}

// FormatRecipeList renders stored recipe names
func FormatRecipeList(recipes []models.Recipe) string {
	if len(recipes) == 0 {
		return "📖 No recipes yet. Import one with /import <dish name>."
	}

	var b strings.Builder
	b.WriteString("📖 Your recipes:\n")
	for _, recipe := range recipes {
		b.WriteString(fmt.Sprintf("• %s (%d servings, %d min)\n",
			recipe.Name, recipe.Servings, recipe.PrepTime+recipe.CookTime))
	}
	b.WriteString("\nCook one with /cook <name>.")
	return b.String()
}
