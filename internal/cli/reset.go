package cli

import (
	"context"
	"errors"
	"time"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/flow"
)

// cmdResetPassword runs the two-step reset wizard: request a code, then
// submit it with the new password. "try again" returns to step one
// without losing the entered email.
func (c *CLI) cmdResetPassword(ctx context.Context) error {
	reset := flow.NewResetFlow(c.app.Client())

	for {
		if reset.Step() == flow.StepRequestCode {
			label := "Email"
			if reset.Email() != "" {
				label = "Email [" + reset.Email() + "]"
			}
			email, err := c.prompt(label)
			if err != nil {
				return err
			}
			if email == "" {
				email = reset.Email()
			}

			if err := reset.RequestCode(ctx, email); err != nil {
				c.notice(reset.Notice())
				var verr *flow.ValidationError
				if errors.As(err, &verr) {
					continue
				}
				return err
			}
			c.notice(reset.Notice())
		}

		code, err := c.prompt("Code (or 'try again')")
		if err != nil {
			return err
		}
		if code == "try again" {
			reset.TryAgain()
			continue
		}
		newPassword, err := c.prompt("New password")
		if err != nil {
			return err
		}
		confirm, err := c.prompt("Confirm password")
		if err != nil {
			return err
		}

		if err := reset.ResetPassword(ctx, code, newPassword, confirm); err != nil {
			c.notice(reset.Notice())
			continue
		}

		c.notice(reset.Notice())
		time.Sleep(flow.LoginRedirectDelay)
		c.PrintRoute(domain.RouteLogin)
		return nil
	}
}
