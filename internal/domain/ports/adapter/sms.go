// File: internal/domain/ports/adapter/sms.go
package adapter

import "context"

type SendParams struct {
	To   string
	From string
	Body string
}

// SendResult is the success case of a send attempt.
type SendResult struct {
	SID string // message identifier assigned by the provider
}

// SMSProviderAdapter abstracts the external messaging gateway. A failed
// delivery comes back as *domain.SendFailure; any other error is a transport
// problem reaching the provider.
type SMSProviderAdapter interface {
	// Name identifies the gateway in logs ("twilio", "noop", ...).
	Name() string
	SendSMS(ctx context.Context, params SendParams) (SendResult, error)
}
