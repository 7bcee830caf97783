//go:build !integration

package sms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sms-campaign/internal/domain"
	"sms-campaign/internal/domain/ports/adapter"
)

func TestNewTwilioGateway(t *testing.T) {
	if _, err := NewTwilioGateway("", "token", ""); err == nil {
		t.Error("empty account sid should be rejected")
	}
	if _, err := NewTwilioGateway("AC123", "", ""); err == nil {
		t.Error("empty auth token should be rejected")
	}
}

func TestGatewayNames(t *testing.T) {
	g, err := NewTwilioGateway("AC123", "secret", "")
	if err != nil {
		t.Fatalf("NewTwilioGateway: %v", err)
	}
	if g.Name() != "twilio" {
		t.Errorf("twilio gateway Name = %q, want twilio", g.Name())
	}
	if n := NewNoopGateway().Name(); n != "noop" {
		t.Errorf("noop gateway Name = %q, want noop", n)
	}
}

func TestTwilioGatewaySendSMS(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the message and returns the sid", func(t *testing.T) {
		var gotPath, gotTo, gotFrom, gotBody string
		var gotUser, gotPass string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, gotPass, _ = r.BasicAuth()
			if err := r.ParseForm(); err != nil {
				t.Errorf("ParseForm: %v", err)
			}
			gotTo = r.PostFormValue("To")
			gotFrom = r.PostFormValue("From")
			gotBody = r.PostFormValue("Body")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"sid": "SM123", "status": "queued"})
		}))
		defer srv.Close()

		g, err := NewTwilioGateway("AC123", "secret", srv.URL)
		if err != nil {
			t.Fatalf("NewTwilioGateway: %v", err)
		}
		res, err := g.SendSMS(ctx, adapter.SendParams{To: "111", From: "ACME", Body: "hello"})
		if err != nil {
			t.Fatalf("SendSMS returned an error: %v", err)
		}

		if res.SID != "SM123" {
			t.Errorf("SID = %q, want SM123", res.SID)
		}
		if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
			t.Errorf("path = %q", gotPath)
		}
		if gotUser != "AC123" || gotPass != "secret" {
			t.Errorf("basic auth = %q/%q, want AC123/secret", gotUser, gotPass)
		}
		if gotTo != "111" || gotFrom != "ACME" || gotBody != "hello" {
			t.Errorf("form = to %q from %q body %q", gotTo, gotFrom, gotBody)
		}
	})

	t.Run("maps a provider error payload to SendFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code":    21211,
				"message": "The 'To' number is not a valid phone number.",
				"status":  400,
			})
		}))
		defer srv.Close()

		g, err := NewTwilioGateway("AC123", "secret", srv.URL)
		if err != nil {
			t.Fatalf("NewTwilioGateway: %v", err)
		}
		_, err = g.SendSMS(ctx, adapter.SendParams{To: "bogus", From: "ACME", Body: "hello"})

		var failure *domain.SendFailure
		if !errors.As(err, &failure) {
			t.Fatalf("error = %v, want *domain.SendFailure", err)
		}
		if failure.Code != 21211 || failure.To != "bogus" {
			t.Errorf("failure = %+v", failure)
		}
	})

	t.Run("a success status without a sid is a SendFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "queued"})
		}))
		defer srv.Close()

		g, err := NewTwilioGateway("AC123", "secret", srv.URL)
		if err != nil {
			t.Fatalf("NewTwilioGateway: %v", err)
		}
		_, err = g.SendSMS(ctx, adapter.SendParams{To: "111", From: "ACME", Body: "hello"})

		var failure *domain.SendFailure
		if !errors.As(err, &failure) {
			t.Fatalf("error = %v, want *domain.SendFailure", err)
		}
	})

	t.Run("unreachable provider is a transport error, not a SendFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		g, err := NewTwilioGateway("AC123", "secret", srv.URL)
		if err != nil {
			t.Fatalf("NewTwilioGateway: %v", err)
		}
		_, err = g.SendSMS(ctx, adapter.SendParams{To: "111", From: "ACME", Body: "hello"})
		if err == nil {
			t.Fatal("expected an error")
		}
		var failure *domain.SendFailure
		if errors.As(err, &failure) {
			t.Errorf("transport error should not be a SendFailure: %v", err)
		}
	})
}
