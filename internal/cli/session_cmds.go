package cli

import (
	"context"
	"fmt"

	"github.com/elito/maintdesk/internal/domain"
)

func (c *CLI) cmdLogout(ctx context.Context) error {
	c.app.Manager().Logout(ctx)
	fmt.Fprintln(c.out, "signed out")
	return nil
}

func (c *CLI) cmdWhoami(ctx context.Context) error {
	decision, err := c.app.Guard().Check(ctx, "")
	if err != nil {
		return err
	}
	if !decision.Allow {
		c.PrintRoute(decision.Redirect)
		return nil
	}

	st := c.app.Manager().Current()
	fmt.Fprintf(c.out, "email: %s\nrole: %s\n", st.User.Email, st.User.Role)

	// Best effort: enrich from the server profile when reachable.
	profile, err := c.app.Client().Profile(ctx, c.app.Manager().Token())
	if err != nil {
		c.app.Logger().Debug("profile fetch failed", "error", err)
		return nil
	}
	if profile.FullName != "" {
		fmt.Fprintf(c.out, "name: %s\n", profile.FullName)
	}
	fmt.Fprintf(c.out, "two-factor: %v\n", profile.TwoFactorEnabled)
	return nil
}

// cmdHome is the root redirector: it prints where a visit to the
// application root would land.
func (c *CLI) cmdHome(ctx context.Context) error {
	route, err := c.app.Guard().Redirect(ctx)
	if err != nil {
		return err
	}
	c.PrintRoute(route)
	return nil
}

// openAreas maps a CLI area name to the role that owns it and its route.
var openAreas = map[string]domain.Role{
	"admin":      domain.RoleAdmin,
	"technician": domain.RoleTechnician,
	"user":       domain.RoleUser,
}

// cmdOpen gates an area behind the route guard: unauthenticated users are
// sent to login, users of another role to their own home.
func (c *CLI) cmdOpen(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: maintctl open <admin|technician|user>")
	}
	required, ok := openAreas[args[0]]
	if !ok {
		return fmt.Errorf("unknown area %q", args[0])
	}

	decision, err := c.app.Guard().Check(ctx, required)
	if err != nil {
		return err
	}
	if !decision.Allow {
		c.PrintRoute(decision.Redirect)
		return nil
	}
	c.PrintRoute(domain.RoleHome(required))
	return nil
}
