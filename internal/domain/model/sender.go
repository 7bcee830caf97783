package model

import (
	"fmt"

	"sms-campaign/internal/domain"
)

// SenderIdentity is the from-address presented to the messaging provider:
// either a provider-registered mobile number or an alphanumeric sender ID,
// never both.
type SenderIdentity struct {
	mobileNumber   string
	alphanumericID string
}

func NewSenderIdentity(mobileNumber, alphanumericID string) (SenderIdentity, error) {
	if mobileNumber == "" && alphanumericID == "" {
		return SenderIdentity{}, fmt.Errorf("%w: a mobile number or an alphanumeric sender id is required", domain.ErrInvalidArgument)
	}
	if mobileNumber != "" && alphanumericID != "" {
		return SenderIdentity{}, fmt.Errorf("%w: mobile number and alphanumeric sender id are mutually exclusive", domain.ErrInvalidArgument)
	}
	return SenderIdentity{mobileNumber: mobileNumber, alphanumericID: alphanumericID}, nil
}

// From returns the value to put in the provider's From field.
func (s SenderIdentity) From() string {
	if s.mobileNumber != "" {
		return s.mobileNumber
	}
	return s.alphanumericID
}

func (s SenderIdentity) IsZero() bool { return s.mobileNumber == "" && s.alphanumericID == "" }
