package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mylo/internal/domain"
)

const defaultConcurrency = 5

// QueryEvent is one handled query, recorded for usage stats.
type QueryEvent struct {
	ID      string
	Channel string
	Sender  string
	Intent  string
	Blocks  int
	At      time.Time
}

// Recorder persists query events. Implementations must be safe for
// concurrent use. A nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, ev QueryEvent) error
}

// Loop consumes inbound messages from the bus and runs one pipeline pass
// per message with bounded concurrency.
type Loop struct {
	assistant   *Assistant
	bus         domain.MessageBus
	stats       Recorder
	concurrency int
	logger      *slog.Logger
}

type LoopConfig struct {
	Assistant   *Assistant
	Bus         domain.MessageBus
	Stats       Recorder // optional
	Concurrency int      // max parallel messages (default 5)
	Logger      *slog.Logger
}

func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Loop{
		assistant:   cfg.Assistant,
		bus:         cfg.Bus,
		stats:       cfg.Stats,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}
}

// Run blocks until ctx is cancelled or the bus closes.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("assistant loop started", "concurrency", l.concurrency)

	sem := make(chan struct{}, l.concurrency)
	inbound := l.bus.Subscribe()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("assistant loop stopping")
			return
		case msg, ok := <-inbound:
			if !ok {
				l.logger.Info("inbound channel closed, assistant loop stopping")
				return
			}
			sem <- struct{}{}
			go func(m domain.InboundMessage) {
				defer func() { <-sem }()
				l.processMessage(ctx, m)
			}(msg)
		}
	}
}

func (l *Loop) processMessage(ctx context.Context, msg domain.InboundMessage) {
	blocks := l.assistant.HandleTriggeredMessage(ctx, msg.Content, msg.SenderHandle)
	if blocks == nil {
		// Not addressed to the assistant — stay quiet.
		return
	}

	for _, block := range blocks {
		l.bus.SendOutbound(domain.OutboundMessage{
			Channel: msg.Channel,
			ChatID:  msg.ChatID,
			Content: block,
		})
	}

	l.record(ctx, msg, len(blocks))
}

func (l *Loop) record(ctx context.Context, msg domain.InboundMessage, blocks int) {
	if l.stats == nil {
		return
	}
	it, _ := l.assistant.Intent(msg.Content)
	ev := QueryEvent{
		ID:      uuid.NewString(),
		Channel: msg.Channel,
		Sender:  msg.SenderHandle,
		Intent:  it.Kind.String(),
		Blocks:  blocks,
		At:      time.Now(),
	}
	if err := l.stats.Record(ctx, ev); err != nil {
		l.logger.Warn("cannot record query event", "err", err)
	}
}
