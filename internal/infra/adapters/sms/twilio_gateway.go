// File: internal/infra/adapters/sms/twilio_gateway.go
package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sms-campaign/internal/domain"
	"sms-campaign/internal/domain/ports/adapter"
)

var _ adapter.SMSProviderAdapter = (*TwilioGateway)(nil)

// TwilioGateway implements adapter.SMSProviderAdapter against the Twilio
// Messages REST endpoint. Credentials are fixed at construction; the gateway
// holds no per-campaign state.
type TwilioGateway struct {
	accountSID string
	authToken  string
	baseURL    string
	client     *http.Client
}

// NewTwilioGateway validates the credential pair. baseURL is normally empty
// and only overridden in tests.
func NewTwilioGateway(accountSID, authToken, baseURL string) (*TwilioGateway, error) {
	if accountSID == "" {
		return nil, errors.New("twilio account sid empty")
	}
	if authToken == "" {
		return nil, errors.New("twilio auth token empty")
	}
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	return &TwilioGateway{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (g *TwilioGateway) Name() string { return "twilio" }

func (g *TwilioGateway) endpoint() string {
	return fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", g.baseURL, g.accountSID)
}

func (g *TwilioGateway) SendSMS(ctx context.Context, params adapter.SendParams) (adapter.SendResult, error) {
	form := url.Values{}
	form.Set("To", params.To)
	form.Set("From", params.From)
	form.Set("Body", params.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return adapter.SendResult{}, err
	}
	req.SetBasicAuth(g.accountSID, g.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return adapter.SendResult{}, fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		SID     string `json:"sid"`
		Status  string `json:"status"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return adapter.SendResult{}, fmt.Errorf("twilio response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := out.Message
		if reason == "" {
			reason = fmt.Sprintf("http status %d", resp.StatusCode)
		}
		return adapter.SendResult{}, &domain.SendFailure{To: params.To, Code: out.Code, Reason: reason}
	}
	if out.SID == "" {
		return adapter.SendResult{}, &domain.SendFailure{To: params.To, Reason: "no message sid in response"}
	}
	return adapter.SendResult{SID: out.SID}, nil
}
