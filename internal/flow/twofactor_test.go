package flow

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elito/maintdesk/internal/domain"
)

func testChallenge() Challenge {
	return Challenge{SessionID: "S123", Email: "a@b.com", Role: domain.RoleUser}
}

func TestStepUpFlowRequiresChallenge(t *testing.T) {
	t.Parallel()
	env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name string
		ch   Challenge
	}{
		{"empty challenge", Challenge{}},
		{"missing session id", Challenge{Email: "a@b.com"}},
		{"missing email", Challenge{SessionID: "S123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStepUpFlow(env.client, env.mgr, tt.ch)
			require.ErrorIs(t, err, ErrNoChallenge)
		})
	}
}

func TestStepUpVerify(t *testing.T) {
	t.Parallel()

	t.Run("incomplete code is rejected locally", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {})
		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)

		err = f.Verify(context.Background(), "4829")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "Please enter all 6 digits", f.Notice().Text)
		require.EqualValues(t, 0, env.requests.Load())
	})

	t.Run("success logs in with two-factor identity", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/two-factor/otp/482913", r.URL.Path)
			require.Equal(t, "S123", r.URL.Query().Get("id"))
			_ = json.NewEncoder(w).Encode(map[string]string{"jwt": "T2"})
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)
		require.NoError(t, f.Verify(context.Background(), "482913"))

		st := env.mgr.Current()
		require.True(t, st.Authenticated)
		require.Equal(t, domain.Identity{
			Email:            "a@b.com",
			Role:             domain.RoleUser, // from the challenge, response carried none
			TwoFactorEnabled: true,
		}, *st.User)
		require.Equal(t, "T2", env.mgr.Token())
		require.Equal(t, []domain.Route{domain.RouteUserHome}, env.recorder.routes)
	})

	t.Run("response role overrides challenge role", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"jwt": "T2", "role": "TECHNICIAN"})
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)
		require.NoError(t, f.Verify(context.Background(), "482913"))

		require.Equal(t, domain.RoleTechnician, env.mgr.Current().User.Role)
		require.Equal(t, []domain.Route{domain.RouteTechnicianHome}, env.recorder.routes)
	})

	t.Run("2xx without token fails without a session", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{})
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)

		err = f.Verify(context.Background(), "482913")
		require.Error(t, err)
		require.Equal(t, "Verification failed. Please try again.", f.Notice().Text)
		require.False(t, env.mgr.Current().Authenticated)
	})

	t.Run("rejection surfaces server message", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Code expired"})
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)

		err = f.Verify(context.Background(), "482913")
		require.Error(t, err)
		require.Equal(t, &Notice{Kind: NoticeError, Text: "Code expired"}, f.Notice())
	})
}

func TestStepUpVerifyNoDuplicateSubmission(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		_ = json.NewEncoder(w).Encode(map[string]string{"jwt": "T2"})
	})

	f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, f.Verify(context.Background(), "482913"))
	}()

	<-started
	require.ErrorIs(t, f.Verify(context.Background(), "482913"), ErrInFlight)

	close(release)
	wg.Wait()

	// The challenge was redeemed exactly once.
	require.EqualValues(t, 1, env.requests.Load())
	require.True(t, env.mgr.Current().Authenticated)
}

func TestStepUpResend(t *testing.T) {
	t.Parallel()

	t.Run("success clears the input", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/two-factor/resend-otp", r.URL.Path)
			require.Equal(t, "S123", r.URL.Query().Get("sessionId"))
			w.WriteHeader(http.StatusOK)
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)

		for _, ch := range []byte("482") {
			f.Input().Type(ch)
		}

		require.NoError(t, f.Resend(context.Background()))
		require.Equal(t, "", f.Input().Code())
		require.Equal(t, 0, f.Input().Focus())
		require.Equal(t, &Notice{Kind: NoticeSuccess, Text: "New verification code sent to your email!"}, f.Notice())
	})

	t.Run("cooldown blocks immediate re-dispatch", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)

		require.NoError(t, f.Resend(context.Background()))
		require.ErrorIs(t, f.Resend(context.Background()), ErrInFlight)
		require.EqualValues(t, 1, env.requests.Load())
	})

	t.Run("failure keeps the challenge usable", func(t *testing.T) {
		env := newFlowEnv(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/two-factor/resend-otp" {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Mail down"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"jwt": "T2"})
		})

		f, err := NewStepUpFlow(env.client, env.mgr, testChallenge())
		require.NoError(t, err)

		require.Error(t, f.Resend(context.Background()))
		require.Equal(t, "Mail down", f.Notice().Text)

		// The original code still verifies.
		require.NoError(t, f.Verify(context.Background(), "482913"))
		require.True(t, env.mgr.Current().Authenticated)
	})
}
