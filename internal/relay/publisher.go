package relay

import (
	"context"
	"log/slog"

	"github.com/zhubert/hashdeck/internal/logger"
)

// Publisher sends outbound events to the configured relays. The wire
// protocol lives behind this interface; callers fire publishes without
// waiting and reconcile the result asynchronously.
type Publisher interface {
	// PublishReaction publishes a reaction to the given note.
	PublishReaction(ctx context.Context, noteID string) error
}

// LogPublisher is a stand-in publisher that records publishes to the log
// and reports success. Used until a real wire client is plugged in.
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher returns a publisher that only logs.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{log: logger.ComponentLogger("LogPublisher")}
}

func (p *LogPublisher) PublishReaction(ctx context.Context, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.log.Info("Publish reaction", "noteID", noteID)
	return nil
}
