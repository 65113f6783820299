package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/flow"
)

// cmdLogin runs the credential flow and, when the account demands it,
// continues straight into the two-factor step-up.
func (c *CLI) cmdLogin(ctx context.Context) error {
	// Already-authenticated guard: don't render the form at all.
	st := c.app.Manager().Current()
	if st.Authenticated && st.User != nil {
		fmt.Fprintf(c.out, "already signed in as %s\n", st.User.Email)
		return nil
	}

	username, err := c.prompt("Email")
	if err != nil {
		return err
	}
	password, err := c.promptSecret("Password")
	if err != nil {
		return err
	}

	login := flow.NewLoginFlow(c.app.Client(), c.app.Manager())
	challenge, err := login.Submit(ctx, username, password)
	if err != nil {
		c.notice(login.Notice())
		return err
	}
	if challenge == nil {
		fmt.Fprintln(c.out, "signed in")
		return nil
	}

	return c.stepUp(ctx, *challenge)
}

// stepUp drives the OTP verification screen for a sign-in challenge.
// Leaving it without verifying abandons the challenge; the next attempt
// starts over from credentials.
func (c *CLI) stepUp(ctx context.Context, challenge flow.Challenge) error {
	stepUp, err := flow.NewStepUpFlow(c.app.Client(), c.app.Manager(), challenge)
	if err != nil {
		// No challenge to redeem: back to the login screen.
		c.PrintRoute(domain.RouteLogin)
		return err
	}

	fmt.Fprintf(c.out, "a verification code was sent to %s\n", challenge.Email)
	for {
		code, err := c.prompt("Code (6 digits, or 'resend')")
		if err != nil {
			return err
		}
		if code == "resend" {
			if err := stepUp.Resend(ctx); err != nil && !errors.Is(err, flow.ErrInFlight) {
				c.app.Logger().Debug("resend failed", "error", err)
			}
			c.notice(stepUp.Notice())
			continue
		}

		input := stepUp.Input()
		input.Reset()
		for i := 0; i < len(code); i++ {
			input.Type(code[i])
		}
		if !input.Complete() {
			fmt.Fprintln(c.out, "error: Please enter all 6 digits")
			continue
		}

		if err := stepUp.Verify(ctx, input.Code()); err != nil {
			c.notice(stepUp.Notice())
			continue
		}
		fmt.Fprintln(c.out, "signed in")
		return nil
	}
}
