// Package reminder sends each chat a daily digest of pantry items
// that are about to expire.
package reminder

import (
	"fmt"
	"time"

	"github.com/korjavin/pantrybot/pkg/logger"
	"github.com/korjavin/pantrybot/pkg/messages"
	"github.com/korjavin/pantrybot/pkg/models"
	"github.com/korjavin/pantrybot/pkg/pantry"
	"github.com/korjavin/pantrybot/pkg/storage"
	"github.com/korjavin/pantrybot/pkg/telegram"
)

// digestHour is the local hour the daily digest goes out
const digestHour = 9

// Service provides the daily expiration digest
type Service struct {
	store          storage.Store
	bot            *telegram.Bot
	pantryService  *pantry.Service
	messageService *messages.Service
	logger         *logger.Logger
	stopChan       chan struct{}
}

// New creates a new reminder service
func New(store storage.Store, bot *telegram.Bot, pantryService *pantry.Service, messageService *messages.Service) *Service {
	return &Service{
		store:          store,
		bot:            bot,
		pantryService:  pantryService,
		messageService: messageService,
		logger:         logger.New("reminder"),
		stopChan:       make(chan struct{}),
	}
}

// Start starts the digest loop
func (s *Service) Start() {
	s.logger.Info("Starting expiration reminder")
	go s.run()
}

// Stop stops the digest loop
func (s *Service) Stop() {
	s.logger.Info("Stopping expiration reminder")
	close(s.stopChan)
}

func (s *Service) run() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			if now.Hour() == digestHour && now.Minute() < 5 {
				s.sendDigests(now)
			}
		case <-s.stopChan:
			return
		}
	}
}

// sendDigests sends the expiring-items digest to every known chat
// that hasn't received one today
func (s *Service) sendDigests(now time.Time) {
	chatKeys, err := s.store.List("chat:")
	if err != nil {
		s.logger.Error("Failed to list chats: %v", err)
		return
	}

	for _, chatKey := range chatKeys {
		var info models.ChatInfo
		if err := s.store.Get(chatKey, &info); err != nil {
			s.logger.Error("Failed to get chat info %s: %v", chatKey, err)
			continue
		}

		markerKey := fmt.Sprintf("digest:%d:%s", info.ChatID, now.Format("2006-01-02"))
		var sent bool
		if err := s.store.Get(markerKey, &sent); err == nil && sent {
			continue
		}

		expiring, err := s.pantryService.Expiring(info.ChatID, now)
		if err != nil {
			s.logger.Error("Failed to list expiring items for chat %d: %v", info.ChatID, err)
			continue
		}
		if len(expiring) == 0 {
			// No digest on quiet days, but still mark it handled.
			if err := s.store.Set(markerKey, true); err != nil {
				s.logger.Error("Failed to mark digest for chat %d: %v", info.ChatID, err)
			}
			continue
		}

		digest := s.messageService.GenerateExpiringDigest(expiring, now)
		if _, err := s.bot.SendMessage(info.ChatID, digest); err != nil {
			s.logger.Error("Failed to send digest to chat %d: %v", info.ChatID, err)
			continue
		}

		if err := s.store.Set(markerKey, true); err != nil {
			s.logger.Error("Failed to mark digest for chat %d: %v", info.ChatID, err)
		}
	}
}
