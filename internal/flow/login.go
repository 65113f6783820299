package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/session"
	"github.com/elito/maintdesk/pkg/maintapi"
)

// LoginState is the credential flow's position in
// Idle -> Submitting -> {Succeeded | StepUpRequired | Failed}.
// Failed is retryable; StepUpRequired is terminal for this flow, and the
// attempt continues in a StepUpFlow built from the handed-off challenge.
type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginSucceeded
	LoginStepUpRequired
	LoginFailed
)

// Challenge is the step-up handoff from sign-in to OTP verification.
// It lives only in memory and is consumed by exactly one successful
// verification; dropping it means starting over from credentials.
type Challenge struct {
	SessionID string
	Email     string
	Role      domain.Role
}

// LoginFlow runs one credential sign-in screen.
type LoginFlow struct {
	client *maintapi.Client
	mgr    *session.Manager

	mu     sync.Mutex
	state  LoginState
	notice *Notice
}

func NewLoginFlow(client *maintapi.Client, mgr *session.Manager) *LoginFlow {
	return &LoginFlow{client: client, mgr: mgr}
}

// State returns the flow's current position.
func (f *LoginFlow) State() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Notice returns the current screen message, nil when there is none.
func (f *LoginFlow) Notice() *Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Submit runs one sign-in attempt.
//
// On direct success it calls Manager.Login (which persists and navigates)
// and returns (nil, nil). When the account requires a second factor it
// returns the challenge to hand to NewStepUpFlow. On failure it records a
// screen notice and returns the underlying error; the flow stays
// retryable. A Submit while one is already in flight returns ErrInFlight
// without touching the network.
//
// The password is never logged, and a failed attempt is not expected to
// clear it from the caller's form.
func (f *LoginFlow) Submit(ctx context.Context, username, password string) (*Challenge, error) {
	if username == "" || password == "" {
		verr := &ValidationError{Field: "credentials", Message: "Please fill in all fields"}
		f.mu.Lock()
		f.notice = &Notice{Kind: NoticeError, Text: verr.Message}
		f.mu.Unlock()
		return nil, verr
	}

	f.mu.Lock()
	if f.state == LoginSubmitting {
		f.mu.Unlock()
		return nil, ErrInFlight
	}
	f.state = LoginSubmitting
	f.notice = nil
	f.mu.Unlock()

	success, err := f.client.SignIn(ctx, username, password)
	if err != nil {
		var stepUp *maintapi.StepUpRequiredError
		if errors.As(err, &stepUp) {
			f.mu.Lock()
			f.state = LoginStepUpRequired
			f.mu.Unlock()
			return &Challenge{
				SessionID: stepUp.SessionID,
				Email:     stepUp.Email,
				Role:      domain.Role(stepUp.Role),
			}, nil
		}

		n := failureNotice(err, "Invalid credentials")
		f.mu.Lock()
		f.state = LoginFailed
		f.notice = &n
		f.mu.Unlock()
		return nil, err
	}

	f.mgr.Login(ctx, domain.Identity{
		Email: username,
		Role:  domain.Role(success.Role),
	}, success.Token)

	f.mu.Lock()
	f.state = LoginSucceeded
	f.mu.Unlock()
	return nil, nil
}
