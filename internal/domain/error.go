package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrMalformedLedger  = errors.New("ledger source is not a phone-number to boolean mapping")
	ErrUnknownRecipient = errors.New("recipient not tracked by ledger")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoLedgerPath     = errors.New("ledger has no backing file path")
)

// SendFailure is the failure case of a send attempt: the provider refused or
// could not deliver the message. It is an ordinary value the runner branches
// on, so "skip this recipient and continue" stays visible in the control flow.
type SendFailure struct {
	To     string
	Code   int
	Reason string
}

func (f *SendFailure) Error() string {
	if f.Code != 0 {
		return fmt.Sprintf("send to %s failed: %s (code %d)", f.To, f.Reason, f.Code)
	}
	return fmt.Sprintf("send to %s failed: %s", f.To, f.Reason)
}
