package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"familyinvitations/internal/domain"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

type changeFeed struct {
	dsn    string
	logger *slog.Logger
}

// NewChangeFeed returns a domain.ChangeFeed backed by Postgres
// LISTEN/NOTIFY. Each subscription holds its own listener connection so a
// dropped admin stream cannot stall the others.
func NewChangeFeed(dsn string, logger *slog.Logger) domain.ChangeFeed {
	return &changeFeed{dsn: dsn, logger: logger}
}

func (f *changeFeed) Subscribe(ctx context.Context, channel string) (<-chan struct{}, error) {
	listener := pq.NewListener(f.dsn, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			f.logger.Warn("listener event", "channel", channel, "event", int(ev), "err", err)
		}
	})
	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("listen %s: %w", channel, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer listener.Close()
		ticker := time.NewTicker(listenerPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-listener.Notify:
				// A nil notification follows a reconnect; it still counts as
				// a change so the subscriber refreshes anything missed.
				select {
				case out <- struct{}{}:
				default:
				}
			case <-ticker.C:
				if err := listener.Ping(); err != nil {
					f.logger.Warn("listener ping failed", "channel", channel, "err", err)
				}
			}
		}
	}()
	return out, nil
}
