//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"iter"
	"sync"

	"sms-campaign/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// ---- Mock SMSProviderAdapter ----

type MockSMSProvider struct {
	mu          sync.Mutex
	Sent        []adapter.SendParams // capture all send parameters, in order
	SendSMSFunc func(ctx context.Context, params adapter.SendParams) (adapter.SendResult, error)
}

func (m *MockSMSProvider) Name() string { return "mock" }

func (m *MockSMSProvider) SendSMS(ctx context.Context, params adapter.SendParams) (adapter.SendResult, error) {
	m.mu.Lock()
	m.Sent = append(m.Sent, params)
	m.mu.Unlock()
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(ctx, params)
	}
	return adapter.SendResult{SID: "mock-sid"}, nil
}

func (m *MockSMSProvider) SentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Sent))
	for i, p := range m.Sent {
		out[i] = p.To
	}
	return out
}

// ---- Mock RecipientLedger ----

// MockLedger lets a test hand the runner an arbitrary unsent sequence and
// override MarkSent, e.g. to simulate a contract violation.
type MockLedger struct {
	UnsentNumbers []string
	MarkSentFunc  func(phoneNumber string) error
	Marked        []string
}

func (m *MockLedger) Unsent() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range m.UnsentNumbers {
			if !yield(n) {
				return
			}
		}
	}
}

func (m *MockLedger) MarkSent(phoneNumber string) error {
	if m.MarkSentFunc != nil {
		if err := m.MarkSentFunc(phoneNumber); err != nil {
			return err
		}
	}
	m.Marked = append(m.Marked, phoneNumber)
	return nil
}

func (m *MockLedger) Len() int                  { return len(m.UnsentNumbers) }
func (m *MockLedger) UnsentCount() int          { return len(m.UnsentNumbers) - len(m.Marked) }
func (m *MockLedger) Snapshot() map[string]bool { return nil }
