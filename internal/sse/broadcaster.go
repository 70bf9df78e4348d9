package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/game"
)

// Broadcaster pushes committed game events to everyone watching the game
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

var _ game.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify publishes the event to the game's hub. Games nobody watches are skipped.
func (b *Broadcaster) Notify(_ context.Context, event model.Event) error {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return nil
	}
	if err := hub.Publish(event); err != nil {
		return err
	}
	if event.Type == model.EventGameFinished {
		b.logger.Info("sse game finished broadcast", slog.String("game_id", string(event.GameID)))
	}
	return nil
}
