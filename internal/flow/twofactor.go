package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/session"
	"github.com/elito/maintdesk/pkg/maintapi"
)

// ErrNoChallenge reports an attempt to enter the step-up flow without a
// sign-in challenge. The flow has no standalone entry point; callers
// redirect to login instead of surfacing an error.
var ErrNoChallenge = errors.New("flow: no step-up challenge")

// resendInterval throttles how often a fresh code can be requested. The
// server enforces its own policy; this only keeps an impatient finger
// from dispatching duplicates.
const resendInterval = 30 * time.Second

// StepUpFlow runs the two-factor verification screen for one challenge.
// Its only terminal success state delegates to Manager.Login, and there
// is no automatic retry; every failed attempt waits for explicit user
// action.
type StepUpFlow struct {
	client    *maintapi.Client
	mgr       *session.Manager
	challenge Challenge
	limiter   *rate.Limiter

	mu        sync.Mutex
	input     *OTPInput
	verifying bool
	resending bool
	notice    *Notice
}

// NewStepUpFlow builds the flow from a sign-in handoff. A missing
// challenge is rejected with ErrNoChallenge before any input is shown.
func NewStepUpFlow(client *maintapi.Client, mgr *session.Manager, ch Challenge) (*StepUpFlow, error) {
	if ch.SessionID == "" || ch.Email == "" {
		return nil, ErrNoChallenge
	}
	return &StepUpFlow{
		client:    client,
		mgr:       mgr,
		challenge: ch,
		limiter:   rate.NewLimiter(rate.Every(resendInterval), 1),
		input:     NewOTPInput(),
	}, nil
}

// Input exposes the six-cell entry model for the interactive prompt.
func (f *StepUpFlow) Input() *OTPInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Notice returns the current screen message, nil when there is none.
func (f *StepUpFlow) Notice() *Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Verify redeems the challenge with the assembled code. On success it
// calls Manager.Login with the challenge identity marked two-factor
// enabled; the role comes from the verification response when the server
// provides one, else from the original challenge. On failure the entered
// code is left as-is for the user to correct.
func (f *StepUpFlow) Verify(ctx context.Context, code string) error {
	if len(code) != codeLength {
		verr := &ValidationError{Field: "otp", Message: "Please enter all 6 digits"}
		f.mu.Lock()
		f.notice = &Notice{Kind: NoticeError, Text: verr.Message}
		f.mu.Unlock()
		return verr
	}

	f.mu.Lock()
	if f.verifying {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.verifying = true
	f.notice = nil
	f.mu.Unlock()

	result, err := f.client.VerifyTwoFactor(ctx, code, f.challenge.SessionID)
	if err != nil {
		n := failureNotice(err, "Invalid OTP code")
		if errors.Is(err, maintapi.ErrMissingToken) {
			n = Notice{Kind: NoticeError, Text: "Verification failed. Please try again."}
		}
		f.mu.Lock()
		f.verifying = false
		f.notice = &n
		f.mu.Unlock()
		return err
	}

	role := domain.Role(result.Role)
	if role == "" {
		role = f.challenge.Role
	}

	f.mgr.Login(ctx, domain.Identity{
		Email:            f.challenge.Email,
		Role:             role,
		TwoFactorEnabled: true,
	}, result.Token)

	// The gate stays held until the session transition lands so a
	// concurrent attempt cannot redeem an already-consumed challenge.
	f.mu.Lock()
	f.verifying = false
	f.mu.Unlock()
	return nil
}

// Resend asks the server for a fresh code on the same challenge. On
// success the entry cells are cleared and focus returns to the first;
// on failure the outstanding challenge stays usable. Duplicate dispatch
// is prevented both by the in-flight gate and by a cooldown between
// requests.
func (f *StepUpFlow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.resending {
		f.mu.Unlock()
		return ErrInFlight
	}
	if !f.limiter.Allow() {
		f.notice = &Notice{Kind: NoticeError, Text: "Please wait before requesting another code"}
		f.mu.Unlock()
		return ErrInFlight
	}
	f.resending = true
	f.notice = nil
	f.mu.Unlock()

	err := f.client.ResendTwoFactor(ctx, f.challenge.SessionID)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.resending = false
	if err != nil {
		n := failureNotice(err, "Failed to resend OTP")
		f.notice = &n
		return err
	}

	f.input.Reset()
	f.notice = &Notice{Kind: NoticeSuccess, Text: "New verification code sent to your email!"}
	return nil
}
