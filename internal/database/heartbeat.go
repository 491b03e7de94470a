package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// HeartbeatInterval is how often the keep-alive ping runs. Some managed
// Postgres plans drop connections idle for more than a few minutes.
const HeartbeatInterval = 4 * time.Minute

// Heartbeat pings the database on a fixed interval until ctx is cancelled.
// Run it in its own goroutine; it returns when the context is done.
func Heartbeat(ctx context.Context, db *sql.DB) {
	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := db.PingContext(ctx); err != nil {
				slog.Warn("database heartbeat failed", "error", err)
				continue
			}
			slog.Debug("database heartbeat ok")
		}
	}
}
