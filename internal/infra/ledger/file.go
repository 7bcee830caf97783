// File: internal/infra/ledger/file.go
package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"sort"
	"sync"

	"sms-campaign/internal/domain"
	"sms-campaign/internal/domain/ports/repository"
)

var _ repository.RecipientLedger = (*FileLedger)(nil)

// FileLedger holds the phone-number -> sent mapping in memory, backed by a
// flat JSON file. The runner mutates it from one goroutine; the flush watcher
// reads it from another, hence the mutex.
type FileLedger struct {
	mu    sync.Mutex
	state map[string]bool
	path  string
	dirty bool
}

func NewFileLedger() *FileLedger {
	return &FileLedger{state: make(map[string]bool)}
}

// Load replaces the in-memory mapping with the one read from r. The source
// must be a single flat JSON object with boolean values; anything else is
// domain.ErrMalformedLedger and the previous state is kept untouched.
func (l *FileLedger) Load(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	var parsed map[string]bool
	if err := json.Unmarshal(b, &parsed); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedLedger, err)
	}
	if parsed == nil {
		return fmt.Errorf("%w: source is not a JSON object", domain.ErrMalformedLedger)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = parsed
	l.dirty = false
	return nil
}

// LoadFile loads the mapping from path and remembers it as the flush target.
// With backup set, a one-time copy of the file is kept next to it as
// path+".bak" so a botched campaign can be replayed from scratch.
func (l *FileLedger) LoadFile(path string, backup bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	if err := l.Load(f); err != nil {
		return err
	}

	l.mu.Lock()
	l.path = path
	l.mu.Unlock()

	if backup {
		if err := backupOnce(path); err != nil {
			return fmt.Errorf("backup ledger: %w", err)
		}
	}
	return nil
}

func backupOnce(path string) error {
	bakPath := path + ".bak"
	if _, err := os.Stat(bakPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(bakPath, b, 0o644)
}

// Unsent yields the numbers still flagged unsent, in sorted order so runs are
// deterministic. The sequence is restartable; each call snapshots the current
// state.
func (l *FileLedger) Unsent() iter.Seq[string] {
	return func(yield func(string) bool) {
		l.mu.Lock()
		pending := make([]string, 0, len(l.state))
		for number, sent := range l.state {
			if !sent {
				pending = append(pending, number)
			}
		}
		l.mu.Unlock()
		sort.Strings(pending)

		for _, number := range pending {
			if !yield(number) {
				return
			}
		}
	}
}

// MarkSent flips a number to sent. Already-sent numbers stay sent; untracked
// numbers are a caller bug and return domain.ErrUnknownRecipient.
func (l *FileLedger) MarkSent(phoneNumber string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	sent, ok := l.state[phoneNumber]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownRecipient, phoneNumber)
	}
	if sent {
		return nil
	}
	l.state[phoneNumber] = true
	l.dirty = true
	return nil
}

func (l *FileLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state)
}

func (l *FileLedger) UnsentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, sent := range l.state {
		if !sent {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the current mapping.
func (l *FileLedger) Snapshot() map[string]bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]bool, len(l.state))
	for number, sent := range l.state {
		out[number] = sent
	}
	return out
}

// Dirty reports whether the mapping changed since the last flush.
func (l *FileLedger) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// Flush writes the mapping back to the file it was loaded from. The write is
// atomic: a temp file in the same directory, then rename. The dirty flag is
// cleared in the same critical section that snapshots the state, so a mark
// landing while the write is in flight re-dirties the ledger instead of being
// masked by the flush.
func (l *FileLedger) Flush() error {
	l.mu.Lock()
	path := l.path
	if path == "" {
		l.mu.Unlock()
		return domain.ErrNoLedgerPath
	}
	b, err := json.MarshalIndent(l.state, "", "    ")
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("marshal ledger: %w", err)
	}
	b = append(b, '\n')
	wasDirty := l.dirty
	l.dirty = false
	l.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		l.redirty(wasDirty)
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		l.redirty(wasDirty)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// redirty restores the dirty flag after a failed write so the unflushed
// snapshot is not silently dropped.
func (l *FileLedger) redirty(wasDirty bool) {
	if !wasDirty {
		return
	}
	l.mu.Lock()
	l.dirty = true
	l.mu.Unlock()
}
