// File: internal/domain/ports/repository/ledger.go
package repository

import "iter"

// RecipientLedger tracks which phone numbers have already been sent to.
// The ledger never invents or deletes numbers during a run; the only
// mutation is flipping a recipient to sent.
type RecipientLedger interface {
	// Unsent yields the phone numbers still flagged unsent. The sequence is
	// restartable: each call starts from the current ledger state.
	Unsent() iter.Seq[string]

	// MarkSent flips a number to sent. Marking an already-sent number is a
	// no-op; an untracked number returns domain.ErrUnknownRecipient.
	MarkSent(phoneNumber string) error

	Len() int
	UnsentCount() int
	Snapshot() map[string]bool
}
