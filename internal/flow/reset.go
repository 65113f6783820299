package flow

import (
	"context"
	"sync"
	"time"

	"github.com/elito/maintdesk/pkg/maintapi"
)

// ResetStep is the password-reset wizard's position.
type ResetStep int

const (
	// StepRequestCode collects the account email and requests a code.
	StepRequestCode ResetStep = iota + 1

	// StepSubmitReset collects the emailed code and the new password.
	StepSubmitReset
)

// LoginRedirectDelay is the grace period between a successful reset and
// returning to the login screen, long enough to read the confirmation.
const LoginRedirectDelay = 2 * time.Second

// minPasswordLength matches the server-side policy so obviously short
// passwords are rejected without a round trip.
const minPasswordLength = 6

// ResetFlow runs the pre-authentication password-reset wizard. It never
// touches the session Manager: the reset-scoped token it holds authorizes
// one reset completion and nothing else.
type ResetFlow struct {
	client *maintapi.Client

	mu         sync.Mutex
	step       ResetStep
	email      string
	challenge  *maintapi.ResetChallenge
	submitting bool
	done       bool
	notice     *Notice
}

func NewResetFlow(client *maintapi.Client) *ResetFlow {
	return &ResetFlow{client: client, step: StepRequestCode}
}

func (f *ResetFlow) Step() ResetStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Done reports whether the reset completed; the caller should show the
// confirmation and return to login after LoginRedirectDelay.
func (f *ResetFlow) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Email returns the address entered at step one. Kept across TryAgain so
// re-requesting a code does not mean retyping it.
func (f *ResetFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Notice returns the current screen message, nil when there is none.
func (f *ResetFlow) Notice() *Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// RequestCode asks the server to email a reset code and advances to step
// two, holding the returned challenge in memory only.
func (f *ResetFlow) RequestCode(ctx context.Context, email string) error {
	if email == "" {
		verr := &ValidationError{Field: "email", Message: "Please enter your email address"}
		f.mu.Lock()
		f.notice = &Notice{Kind: NoticeError, Text: verr.Message}
		f.mu.Unlock()
		return verr
	}

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.submitting = true
	f.notice = nil
	f.mu.Unlock()

	ch, err := f.client.SendResetOTP(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		n := failureNotice(err, "Failed to send reset email")
		f.notice = &n
		return err
	}

	f.email = email
	f.challenge = ch
	f.step = StepSubmitReset
	f.notice = &Notice{Kind: NoticeSuccess, Text: "Reset code sent to your email!"}
	return nil
}

// ResetPassword redeems the challenge with the emailed code and the new
// password. Local validation runs in fixed order (all fields present, then
// passwords match, then length) and the first failing rule blocks submission.
func (f *ResetFlow) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error {
	if verr := validateReset(code, newPassword, confirmPassword); verr != nil {
		f.mu.Lock()
		f.notice = &Notice{Kind: NoticeError, Text: verr.Message}
		f.mu.Unlock()
		return verr
	}

	f.mu.Lock()
	if f.step != StepSubmitReset || f.challenge == nil {
		f.mu.Unlock()
		return ErrNoChallenge
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.submitting = true
	f.notice = nil
	challenge := *f.challenge
	f.mu.Unlock()

	err := f.client.CompleteReset(ctx, challenge, code, newPassword)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		n := failureNotice(err, "Invalid OTP or failed to reset password")
		f.notice = &n
		return err
	}

	f.done = true
	f.notice = &Notice{
		Kind: NoticeSuccess,
		Text: "Password reset successfully! You can now login with your new password.",
	}
	return nil
}

// TryAgain returns to step one so the user can re-request a code. The
// entered email survives; the spent challenge does not.
func (f *ResetFlow) TryAgain() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepRequestCode
	f.challenge = nil
	f.done = false
	f.notice = nil
}

func validateReset(code, newPassword, confirmPassword string) *ValidationError {
	switch {
	case code == "" || newPassword == "" || confirmPassword == "":
		return &ValidationError{Field: "fields", Message: "Please fill in all fields"}
	case newPassword != confirmPassword:
		return &ValidationError{Field: "password", Message: "Passwords do not match"}
	case len(newPassword) < minPasswordLength:
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}
