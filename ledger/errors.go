package ledger

import (
	"errors"
	"fmt"
)

// Rejection is a decline from the ledger service: insufficient funds,
// unknown recipient, invalid account. The Detail is the server's own
// message and is shown to the user verbatim.
type Rejection struct {
	Status int
	Detail string
}

func (e *Rejection) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request rejected (status %d)", e.Status)
}

// TransientError wraps a network or timeout failure. These are
// surfaced generically; the user retries by re-triggering the action.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsRejection reports whether err is a server-side decline, and if so
// returns it.
func IsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
