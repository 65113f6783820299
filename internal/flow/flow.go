// Package flow implements the interactive authentication flows as explicit
// state machines: credential login, the two-factor step-up, and the
// two-step password reset. Flows own screen-local concerns (validation,
// in-flight gating, user-facing messages) and delegate session creation to
// the session Manager.
package flow

import (
	"errors"
	"fmt"

	"github.com/elito/maintdesk/pkg/maintapi"
)

// ErrInFlight reports a submit attempted while a previous attempt on the
// same flow is still running. The duplicate attempt performs no network
// call.
var ErrInFlight = errors.New("flow: request already in flight")

// connectionErrText is what the user sees for any transport-level failure.
// Raw errors never reach the screen.
const connectionErrText = "Connection error. Please try again."

// NoticeKind tags a user-facing message so display code never has to
// sniff message text to pick a severity.
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a screen-local user-facing message. Each flow holds at most
// one; a new attempt replaces it.
type Notice struct {
	Kind NoticeKind
	Text string
}

// ValidationError is a local, pre-network failure: a missing field, a
// password mismatch, an incomplete code. It is always resolved before any
// request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// failureNotice maps a request error to the message shown to the user:
// the server's own message when it supplied one, the flow's fallback when
// it did not, and the generic connection text for transport failures.
func failureNotice(err error, fallback string) Notice {
	var apiErr *maintapi.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return Notice{Kind: NoticeError, Text: msg}
	}
	return Notice{Kind: NoticeError, Text: connectionErrText}
}
