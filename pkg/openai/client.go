// Package openai wraps the OpenAI chat API for the two places the
// bot leans on an LLM: turning free-text grocery messages into
// structured pantry items, and importing a recipe by dish name.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/models"
)

// Client represents an OpenAI API client
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new OpenAI client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client: client,
		model:  model,
		logger: logger.New("openai"),
	}
}

// ParseIngredients extracts structured pantry items from a free-text
// message like "2 lb chicken breast, a gallon of milk and some salt".
func (c *Client) ParseIngredients(text string) ([]models.ParsedIngredient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a grocery assistant. Extract every food item from the message below.
Return only a JSON array, no other text. Each element must look like:
{"name": "item name", "quantity": 2, "unit": "pieces", "category": "Dairy"}
Use plain generic names ("2%% milk" -> "milk", "large eggs" -> "eggs").
Pick quantity 1 and unit "pieces" when the message doesn't say.
Category must be one of: Fresh Produce, Dairy, Meat & Seafood, Frozen Foods,
Canned Goods, Dry Goods, Spices, Beverages, Snacks, Other.

Message:
%s
`, text)

	c.logger.Info("Parsing ingredients from text (%d chars)", len(text))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You extract structured grocery data from chat messages.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed []models.ParsedIngredient
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, truncateString(content, 200))
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	c.logger.Info("Parsed %d ingredients", len(parsed))
	return parsed, nil
}

// recipeInfo is the wire shape GetRecipeInfo asks the model for
type recipeInfo struct {
	Name         string `json:"name"`
	Ingredients  []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Optional bool    `json:"optional"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     int      `json:"servings"`
	PrepTime     int      `json:"prep_time"`
	CookTime     int      `json:"cook_time"`
	DietaryType  string   `json:"dietary_type"`
}

// GetRecipeInfo asks the model for a complete recipe for a dish name.
// The result still goes through models.Recipe.Validate at the service
// boundary before it is stored.
func (c *Client) GetRecipeInfo(dishName string) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Provide a complete home-kitchen recipe for "%s".
Return the information in the following JSON format:
{
  "name": "Full dish name",
  "ingredients": [{"name": "pasta", "quantity": 500, "unit": "g", "optional": false}, ...],
  "instructions": ["step1", "step2", ...],
  "servings": 4,
  "prep_time": 10,
  "cook_time": 25,
  "dietary_type": "vegetarian" | "vegan" | "non-vegetarian"
}
Only return the JSON, no other text.
`, dishName)

	c.logger.Info("Requesting recipe info for %s", dishName)
	c.logger.Debug("OpenAI prompt (first 100 chars): %s", truncateString(prompt, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a cooking expert who provides accurate recipes.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var info recipeInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, truncateString(content, 200))
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	recipe := &models.Recipe{
		Name:         info.Name,
		Instructions: info.Instructions,
		Servings:     info.Servings,
		PrepTime:     info.PrepTime,
		CookTime:     info.CookTime,
		DietaryType:  models.DietaryType(info.DietaryType),
	}
	for _, ing := range info.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Optional: ing.Optional,
		})
	}

	c.logger.Info("Successfully got recipe for: %s", dishName)
	return recipe, nil
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly household pantry assistant bot. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for fun and readability. Never invent numbers that are not in the context.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// cleanJSONResponse strips markdown code fences the model sometimes
// wraps around JSON
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// truncateString shortens a string for logging
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
