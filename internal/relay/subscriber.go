package relay

import (
	"log/slog"

	"github.com/zhubert/hashdeck/internal/logger"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// LogSubscriber is a stand-in stream subscriber that records filter opens
// and closes to the log. Used until a real wire client is plugged in.
type LogSubscriber struct {
	log *slog.Logger
}

// NewLogSubscriber returns a subscriber that only logs.
func NewLogSubscriber() *LogSubscriber {
	return &LogSubscriber{log: logger.ComponentLogger("LogSubscriber")}
}

func (s *LogSubscriber) Subscribe(f timeline.Filter) error {
	s.log.Info("Open subscription", "filter", f.Key())
	return nil
}

func (s *LogSubscriber) Unsubscribe(f timeline.Filter) error {
	s.log.Info("Close subscription", "filter", f.Key())
	return nil
}
