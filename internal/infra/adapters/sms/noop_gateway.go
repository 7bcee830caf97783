package sms

import (
	"context"
	"sync"

	"sms-campaign/internal/domain"
	"sms-campaign/internal/domain/ports/adapter"

	"github.com/google/uuid"
)

var _ adapter.SMSProviderAdapter = (*NoopGateway)(nil)

// NoopGateway is a simple in-memory provider for dev mode and tests. It
// records every send and hands back generated SIDs without touching the
// network. Individual numbers can be told to fail.
type NoopGateway struct {
	mu   sync.Mutex
	Sent []adapter.SendParams
	fail map[string]string // number -> failure reason
}

func NewNoopGateway() *NoopGateway {
	return &NoopGateway{fail: make(map[string]string)}
}

func (g *NoopGateway) Name() string { return "noop" }

// FailFor makes every send to number come back as a SendFailure.
func (g *NoopGateway) FailFor(number, reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[number] = reason
}

func (g *NoopGateway) SendSMS(ctx context.Context, params adapter.SendParams) (adapter.SendResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if reason, ok := g.fail[params.To]; ok {
		return adapter.SendResult{}, &domain.SendFailure{To: params.To, Reason: reason}
	}
	g.Sent = append(g.Sent, params)
	return adapter.SendResult{SID: "noop-" + uuid.NewString()}, nil
}
