// File: internal/infra/ledger/watcher.go
package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Watcher periodically flushes a FileLedger back to disk when it changed.
type Watcher struct {
	ledger   *FileLedger
	interval time.Duration
	log      *zerolog.Logger
}

func NewWatcher(l *FileLedger, interval time.Duration, log *zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Watcher{ledger: l, interval: interval, log: log}
}

// Start runs the flush loop until ctx is cancelled. A final flush happens on
// the way out so nothing marked during the last tick is lost.
// This should be run in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Ledger flush watcher started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flushIfDirty()
			w.log.Info().Msg("Ledger flush watcher stopping")
			return
		case <-ticker.C:
			w.flushIfDirty()
		}
	}
}

func (w *Watcher) flushIfDirty() {
	if !w.ledger.Dirty() {
		return
	}
	if err := w.ledger.Flush(); err != nil {
		w.log.Error().Err(err).Msg("Failed to flush ledger to disk")
	}
}
