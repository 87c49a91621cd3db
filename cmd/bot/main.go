package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/korjavin/pantrybot/pkg/config"
	"github.com/korjavin/pantrybot/pkg/kitchen"
	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/messages"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/openai"
	"github.com/korjavin/pantrybot/pkg/pantry"
	"github.com/korjavin/pantrybot/pkg/recipes"
	"github.com/korjavin/pantrybot/pkg/reminder"
	"github.com/korjavin/pantrybot/pkg/shopping"
	"github.com/korjavin/pantrybot/pkg/state"
	"github.com/korjavin/pantrybot/pkg/stats"
	"github.com/korjavin/pantrybot/pkg/storage"
	"github.com/korjavin/pantrybot/pkg/telegram"
)

func main() {
	log := logger.Global
	log.Info("Starting PantryBot...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := openStore(cfg)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize OpenAI client
	openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)

	// Initialize services
	pantryService := pantry.New(store)
	recipeService := recipes.New(store, pantryService)
	shoppingService := shopping.New(store, pantryService)
	statsService := stats.New(store)
	messageService := messages.New(openaiClient)
	stateManager := state.New()

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	// Start the daily expiration digest
	reminderService := reminder.New(store, bot, pantryService, messageService)
	reminderService.Start()
	defer reminderService.Stop()

	// registerChat records a chat so scheduled jobs can reach it
	registerChat := func(message *tgbotapi.Message) {
		info := models.ChatInfo{
			ChatID:       message.Chat.ID,
			Title:        message.Chat.Title,
			LastActivity: time.Now(),
		}
		if err := store.Set(fmt.Sprintf("chat:%d", info.ChatID), info); err != nil {
			log.Error("Failed to register chat %d: %v", info.ChatID, err)
		}
	}

	// finishCook applies a plan, records the cook and restocks the
	// shopping list for anything the cook ran low
	finishCook := func(chatID int64, check models.RecipeCheck, now time.Time) string {
		if err := pantryService.ApplyDeductions(chatID, check.Plan); err != nil {
			log.Error("Failed to apply deductions for chat %d: %v", chatID, err)
			if errors.Is(err, models.ErrStaleDeduction) {
				return "⚠️ Your pantry changed while I was checking — please run /cook again."
			}
			return messageService.GenerateErrorMessage("apply the cook to your pantry")
		}

		if _, err := statsService.RecordCook(chatID, check, now); err != nil {
			log.Error("Failed to record cook: %v", err)
		}

		// Suggest restocking lots the cook emptied out.
		if low, err := pantryService.LowStock(chatID); err == nil {
			var suggestions []models.ShoppingSuggestion
			for _, d := range check.Plan {
				for _, item := range low {
					if item.ID == d.PantryItemID {
						suggestions = append(suggestions, models.ShoppingSuggestion{
							Name:     item.Name,
							Quantity: d.Quantity,
							Unit:     item.Unit,
							Category: item.Category,
							Price:    item.Price,
						})
					}
				}
			}
			if len(suggestions) > 0 {
				if err := shoppingService.AddSuggestions(chatID, suggestions); err != nil {
					log.Error("Failed to add restock suggestions: %v", err)
				}
			}
		}

		return fmt.Sprintf("🍽️ Cooked %s! Pantry updated ($%.2f of owned stock used).",
			check.RecipeName, check.Cost.AvailableCost)
	}

	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			registerChat(message)
			bot.SendMessage(message.Chat.ID, messageService.GenerateWelcomeMessage())
		},
		"pantry": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list pantry items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("retrieve your pantry"))
				return
			}
			if len(items) == 0 {
				bot.SendMessage(chatID, messageService.GenerateEmptyPantryMessage())
				return
			}

			now := time.Now()
			text := messages.FormatPantryItems(items, now)
			if pantryStats, err := pantryService.Stats(chatID, now); err == nil {
				text += "\n" + messages.FormatStats(pantryStats)
			}
			bot.SendMessage(chatID, text)
		},
		"add": func(message *tgbotapi.Message) {
			registerChat(message)
			stateManager.SetState(message.Chat.ID, state.StateAddingItems)
			bot.SendMessage(message.Chat.ID, "📝 Tell me what you've got — e.g. \"2 lb chicken breast and a gallon of milk\". Send /done when finished.")
		},
		"done": func(message *tgbotapi.Message) {
			stateManager.ClearState(message.Chat.ID)
			bot.SendMessage(message.Chat.ID, "✅ Pantry update complete! Use /pantry to review or /suggest for dinner ideas.")
		},
		"recipes": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			list, err := recipeService.ListRecipes(chatID)
			if err != nil {
				log.Error("Failed to list recipes: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("retrieve your recipes"))
				return
			}
			bot.SendMessage(chatID, messages.FormatRecipeList(list))
		},
		"import": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			dishName := strings.TrimSpace(message.CommandArguments())
			if dishName == "" {
				bot.SendMessage(chatID, "Usage: /import <dish name>")
				return
			}

			recipe, err := openaiClient.GetRecipeInfo(dishName)
			if err != nil {
				log.Error("Failed to import recipe %s: %v", dishName, err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("import that recipe"))
				return
			}

			stored, err := recipeService.AddRecipe(chatID, *recipe)
			if err != nil {
				log.Error("Failed to store imported recipe: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("store that recipe"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("📖 Imported %s (%d ingredients, %d servings). Cook it with /cook %s.",
				stored.Name, len(stored.Ingredients), stored.Servings, stored.Name))
		},
		"cook": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID
			now := time.Now()

			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /cook <recipe name>")
				return
			}

			recipe, err := recipeService.GetByName(chatID, name)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("I don't know %q — see /recipes.", name))
				return
			}

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to snapshot pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check your pantry"))
				return
			}

			check, err := kitchen.CheckRecipe(items, *recipe, now, false)
			if err != nil {
				log.Error("Failed to evaluate recipe: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("evaluate that recipe"))
				return
			}

			report := messages.FormatCookReport(check)

			switch check.State {
			case models.StateBlocked:
				if len(check.Suggestions) > 0 {
					if err := shoppingService.AddSuggestions(chatID, check.Suggestions); err != nil {
						log.Error("Failed to add suggestions: %v", err)
					}
				}
				bot.SendMessage(chatID, report)
			case models.StateNeedsConfirmation:
				if err := store.Set(fmt.Sprintf("pendingcook:%d", chatID), recipe.ID); err != nil {
					log.Error("Failed to store pending cook: %v", err)
				}
				keyboard := tgbotapi.NewInlineKeyboardMarkup(
					tgbotapi.NewInlineKeyboardRow(
						tgbotapi.NewInlineKeyboardButtonData("Cook anyway", "cook_confirm"),
						tgbotapi.NewInlineKeyboardButtonData("Cancel", "cook_cancel"),
					),
				)
				bot.SendMessageWithKeyboard(chatID, report+"\n\nUse the expiring items anyway?", keyboard)
			case models.StateCanCook:
				bot.SendMessage(chatID, report+"\n\n"+finishCook(chatID, check, now))
			}
		},
		"suggest": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			suggestions, err := recipeService.SuggestCookable(chatID, time.Now(), 3)
			if err != nil {
				log.Error("Failed to suggest recipes: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("suggest recipes"))
				return
			}
			if len(suggestions) == 0 {
				bot.SendMessage(chatID, "📖 No recipes yet. Import one with /import <dish name>.")
				return
			}

			var b strings.Builder
			b.WriteString("🍽️ Tonight's candidates:\n")
			for _, s := range suggestions {
				switch s.Check.State {
				case models.StateCanCook:
					b.WriteString(fmt.Sprintf("✅ %s — ready to cook (~$%.2f)\n", s.Recipe.Name, s.Check.Cost.TotalCost))
				case models.StateNeedsConfirmation:
					b.WriteString(fmt.Sprintf("⏰ %s — uses expiring items\n", s.Recipe.Name))
				default:
					b.WriteString(fmt.Sprintf("🛒 %s — missing ~$%.2f of ingredients\n", s.Recipe.Name, s.Check.Cost.MissingCost))
				}
			}
			bot.SendMessage(chatID, b.String())
		},
		"shopping": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			items, err := shoppingService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list shopping items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("retrieve your shopping list"))
				return
			}
			bot.SendMessage(chatID, messages.FormatShoppingList(items))
		},
		"buy": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /buy <item name>")
				return
			}

			item := models.ShoppingItem{Name: name, Quantity: 1, Unit: "pieces"}
			if _, err := shoppingService.AddItem(chatID, item); err != nil {
				log.Error("Failed to add shopping item: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("add that to the list"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("🛒 Added %s to the shopping list.", name))
		},
		"bought": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID
			now := time.Now()

			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /bought <item name>")
				return
			}

			item, err := shoppingService.MarkPurchasedByName(chatID, name, now)
			if err != nil {
				if err == models.ErrNotFound {
					bot.SendMessage(chatID, fmt.Sprintf("%q isn't on the open shopping list.", name))
					return
				}
				log.Error("Failed to mark purchase: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("record that purchase"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("✅ Got it — %g %s of %s moved to the pantry.",
				item.Quantity, item.Unit, item.Name))
		},
		"clearbought": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			removed, err := shoppingService.ClearChecked(chatID)
			if err != nil {
				log.Error("Failed to clear checked items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("tidy the shopping list"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("🧹 Removed %d purchased items from the list.", removed))
		},
		"stats": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID

			summary, err := statsService.Summarize(chatID, 5)
			if err != nil {
				log.Error("Failed to summarize stats: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("compute your stats"))
				return
			}
			if summary.TotalCooks == 0 {
				bot.SendMessage(chatID, "No cooks recorded yet — try /cook <recipe name>.")
				return
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("👨‍🍳 %d cooks, ~$%.2f of ingredients used.\n", summary.TotalCooks, summary.TotalSpend))
			for _, rc := range summary.MostCooked {
				b.WriteString(fmt.Sprintf("• %s — %d times\n", rc.RecipeName, rc.Count))
			}
			bot.SendMessage(chatID, b.String())
		},
		"expiring": func(message *tgbotapi.Message) {
			registerChat(message)
			chatID := message.Chat.ID
			now := time.Now()

			expiring, err := pantryService.Expiring(chatID, now)
			if err != nil {
				log.Error("Failed to list expiring items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check expirations"))
				return
			}
			bot.SendMessage(chatID, messageService.GenerateExpiringDigest(expiring, now))
		},
	}

	callbackHandlers := map[string]telegram.CallbackHandler{
		"cook_confirm": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			now := time.Now()

			pendingKey := fmt.Sprintf("pendingcook:%d", chatID)
			var recipeID string
			if err := store.Get(pendingKey, &recipeID); err != nil {
				bot.AnswerCallbackQuery(callback.ID, "That cook is no longer pending.")
				return
			}
			store.Delete(pendingKey)

			recipe, err := recipeService.GetRecipe(chatID, recipeID)
			if err != nil {
				bot.AnswerCallbackQuery(callback.ID, "That recipe is gone.")
				return
			}

			// Re-evaluate against a fresh snapshot with the
			// expiring items allowed in.
			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to snapshot pantry: %v", err)
				bot.AnswerCallbackQuery(callback.ID, "Something went wrong.")
				return
			}
			check, err := kitchen.CheckRecipe(items, *recipe, now, true)
			if err != nil {
				log.Error("Failed to evaluate recipe: %v", err)
				bot.AnswerCallbackQuery(callback.ID, "Something went wrong.")
				return
			}
			if check.State != models.StateCanCook {
				bot.AnswerCallbackQuery(callback.ID, "Your pantry changed — run /cook again.")
				bot.EditMessage(chatID, callback.Message.MessageID, messages.FormatCookReport(check))
				return
			}

			bot.AnswerCallbackQuery(callback.ID, "Cooking!")
			bot.EditMessage(chatID, callback.Message.MessageID, finishCook(chatID, check, now))
		},
		"cook_cancel": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			store.Delete(fmt.Sprintf("pendingcook:%d", chatID))
			bot.AnswerCallbackQuery(callback.ID, "Cancelled.")
			bot.EditMessage(chatID, callback.Message.MessageID, "👍 Not cooking that one. The pantry is untouched.")
		},
	}

	defaultHandler := func(update tgbotapi.Update) {
		if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
			return
		}
		chatID := update.Message.Chat.ID
		if stateManager.GetState(chatID) != state.StateAddingItems {
			return
		}

		parsed, err := openaiClient.ParseIngredients(update.Message.Text)
		if err != nil {
			log.Error("Failed to parse ingredients: %v", err)
			bot.SendMessage(chatID, "😢 I couldn't read that list — could you rephrase it?")
			return
		}
		if len(parsed) == 0 {
			bot.SendMessage(chatID, "I couldn't find any food items in that message. Try again?")
			return
		}

		now := time.Now()
		var added []string
		for _, ing := range parsed {
			category := ing.Category
			if category == "" {
				category = "Other"
			}
			item := models.PantryItem{
				Name:           ing.Name,
				Quantity:       ing.Quantity,
				Unit:           ing.Unit,
				Category:       category,
				ExpirationDate: now.AddDate(0, 0, models.DefaultShelfLifeDays(category)),
			}
			if _, err := pantryService.AddItem(chatID, item); err != nil {
				log.Error("Failed to add pantry item %s: %v", ing.Name, err)
				continue
			}
			added = append(added, ing.Name)
		}

		bot.SendMessage(chatID, fmt.Sprintf("✅ Added %d items to your pantry: %s\nSend more, or /done to finish.",
			len(added), strings.Join(added, ", ")))
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		reminderService.Stop()
		store.Close()
		os.Exit(0)
	}()

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}

// openStore picks the storage backend from configuration
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "postgres":
		return storage.NewPostgresStore(cfg.PostgresDSN)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		store, err := storage.NewBadgerStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store.StartGCRoutine(10 * time.Minute)
		return store, nil
	}
}
