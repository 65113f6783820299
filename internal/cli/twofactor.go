package cli

import (
	"context"
	"fmt"
)

// cmdTwoFactor enables or disables two-factor authentication on the
// authenticated account: the server emails a code, the user confirms it.
func (c *CLI) cmdTwoFactor(ctx context.Context, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return fmt.Errorf("usage: maintctl twofactor on|off")
	}

	decision, err := c.app.Guard().Check(ctx, "")
	if err != nil {
		return err
	}
	if !decision.Allow {
		c.PrintRoute(decision.Redirect)
		return nil
	}

	token := c.app.Manager().Token()
	if err := c.app.Client().SendVerificationOTP(ctx, token); err != nil {
		fmt.Fprintln(c.out, "error: Failed to send verification code")
		return err
	}
	fmt.Fprintln(c.out, "a verification code was sent to your email")

	code, err := c.prompt("Code")
	if err != nil {
		return err
	}

	if args[0] == "on" {
		err = c.app.Client().EnableTwoFactor(ctx, token, code)
	} else {
		err = c.app.Client().DisableTwoFactor(ctx, token, code)
	}
	if err != nil {
		fmt.Fprintln(c.out, "error: Verification failed")
		return err
	}

	fmt.Fprintf(c.out, "two-factor authentication turned %s\n", args[0])
	return nil
}
