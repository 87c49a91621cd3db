// Package stats records confirmed cooks and aggregates them into a
// per-chat cooking history.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/storage"
)

// Service provides cooking statistics functionality
type Service struct {
	store  storage.Store
	logger *logger.Logger
}

// New creates a new statistics service
func New(store storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("stats"),
	}
}

func chatPrefix(chatID int64) string {
	return fmt.Sprintf("cook:%d:", chatID)
}

// RecordCook stores the trace of one confirmed cook
func (s *Service) RecordCook(chatID int64, check models.RecipeCheck, now time.Time) (*models.CookRecord, error) {
	record := models.CookRecord{
		ID:            fmt.Sprintf("%d", now.UnixNano()),
		ChatID:        chatID,
		RecipeID:      check.RecipeID,
		RecipeName:    check.RecipeName,
		AvailableCost: check.Cost.AvailableCost,
		MissingCost:   check.Cost.MissingCost,
		TotalCost:     check.Cost.TotalCost,
		CookedAt:      now,
	}

	key := fmt.Sprintf("cook:%d:%s", chatID, record.ID)
	if err := s.store.Set(key, record); err != nil {
		return nil, fmt.Errorf("failed to store cook record: %w", err)
	}

	s.logger.Info("Recorded cook of %s for chat %d", record.RecipeName, chatID)
	return &record, nil
}

// History returns the chat's cook records, most recent first
func (s *Service) History(chatID int64, limit int) ([]models.CookRecord, error) {
	keys, err := s.store.List(chatPrefix(chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to list cook records: %w", err)
	}

	records := make([]models.CookRecord, 0, len(keys))
	for _, key := range keys {
		var record models.CookRecord
		if err := s.store.Get(key, &record); err != nil {
			s.logger.Error("Failed to get cook record %s: %v", key, err)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CookedAt.After(records[j].CookedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// RecipeCount is how often one recipe was cooked
type RecipeCount struct {
	RecipeName string
	Count      int
}

// Summary aggregates a chat's cooking history
type Summary struct {
	TotalCooks int
	TotalSpend float64
	MostCooked []RecipeCount
}

// Summarize aggregates all cook records for a chat
func (s *Service) Summarize(chatID int64, topN int) (Summary, error) {
	records, err := s.History(chatID, 0)
	if err != nil {
		return Summary{}, err
	}

	counts := make(map[string]int)
	summary := Summary{TotalCooks: len(records)}
	for _, record := range records {
		summary.TotalSpend += record.TotalCost
		counts[record.RecipeName]++
	}

	for name, count := range counts {
		summary.MostCooked = append(summary.MostCooked, RecipeCount{RecipeName: name, Count: count})
	}
	sort.Slice(summary.MostCooked, func(i, j int) bool {
		if summary.MostCooked[i].Count != summary.MostCooked[j].Count {
			return summary.MostCooked[i].Count > summary.MostCooked[j].Count
		}
		return summary.MostCooked[i].RecipeName < summary.MostCooked[j].RecipeName
	})

	if topN > 0 && len(summary.MostCooked) > topN {
		summary.MostCooked = summary.MostCooked[:topN]
	}
	return summary, nil
}
