package payment

import "errors"

// Kind distinguishes the two keypad actions.
type Kind int

const (
	KindSend Kind = iota
	KindRequest
)

func (k Kind) String() string {
	if k == KindRequest {
		return "request"
	}
	return "send"
}

// ErrBusy means a submission is already in flight. The caller shows
// nothing; the first submission's outcome will arrive on its own.
var ErrBusy = errors.New("payment: submission already in flight")

// ValidationError is a local pre-flight failure. The remote service is
// never contacted when one of these fires.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
