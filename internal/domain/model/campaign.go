package model

import (
	"fmt"

	"sms-campaign/internal/domain"

	"github.com/google/uuid"
)

// Campaign is an ephemeral value object describing one run: a fixed message
// body sent from a fixed identity to every currently-unsent recipient. It is
// built once and never mutated; it is not persisted.
type Campaign struct {
	RunID  string
	Name   string
	Body   string
	Sender SenderIdentity
}

func NewCampaign(name, body string, sender SenderIdentity) (Campaign, error) {
	if name == "" {
		return Campaign{}, fmt.Errorf("%w: campaign name empty", domain.ErrInvalidArgument)
	}
	if body == "" {
		return Campaign{}, fmt.Errorf("%w: message body empty", domain.ErrInvalidArgument)
	}
	if sender.IsZero() {
		return Campaign{}, fmt.Errorf("%w: sender identity not set", domain.ErrInvalidArgument)
	}
	return Campaign{
		RunID:  uuid.NewString(),
		Name:   name,
		Body:   body,
		Sender: sender,
	}, nil
}

// RunSummary reports what one campaign run did.
type RunSummary struct {
	Attempted int
	Succeeded int
	Failed    int
}
