// Package cli implements the maintctl commands. Commands are thin: they
// prompt, drive the flow state machines and print flow notices; all
// authentication behavior lives in internal/flow and internal/session.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/elito/maintdesk/internal/app"
	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/flow"
)

// CLI bundles the application with its terminal streams so commands are
// testable against buffers.
type CLI struct {
	app *app.Application
	src io.Reader
	in  *bufio.Reader
	out io.Writer
}

func New(application *app.Application, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		app: application,
		src: in,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// PrintRoute is the CLI's Navigator: instead of swapping screens it
// prints the route the web frontend would land on.
func (c *CLI) PrintRoute(r domain.Route) {
	fmt.Fprintf(c.out, "-> %s\n", r)
}

// Run restores the persisted session and dispatches one command.
func (c *CLI) Run(ctx context.Context, args []string) error {
	c.app.Manager().Restore(ctx)

	if len(args) == 0 {
		c.usage()
		return nil
	}

	switch args[0] {
	case "login":
		return c.cmdLogin(ctx)
	case "logout":
		return c.cmdLogout(ctx)
	case "whoami":
		return c.cmdWhoami(ctx)
	case "home":
		return c.cmdHome(ctx)
	case "open":
		return c.cmdOpen(ctx, args[1:])
	case "reset-password":
		return c.cmdResetPassword(ctx)
	case "twofactor":
		return c.cmdTwoFactor(ctx, args[1:])
	default:
		c.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *CLI) usage() {
	fmt.Fprint(c.out, `maintctl - OCP intervention management client

Usage:
  maintctl login             Sign in (completes a 2FA step-up when required)
  maintctl logout            Sign out and clear the stored session
  maintctl whoami            Show the authenticated user
  maintctl home              Show the route the app root would land on
  maintctl open <area>       Open an area (admin, technician, user)
  maintctl reset-password    Reset a forgotten password
  maintctl twofactor on|off  Enable or disable two-factor authentication
`)
}

// notice prints a flow message with its severity tag.
func (c *CLI) notice(n *flow.Notice) {
	if n == nil {
		return
	}
	switch n.Kind {
	case flow.NoticeSuccess:
		fmt.Fprintf(c.out, "ok: %s\n", n.Text)
	default:
		fmt.Fprintf(c.out, "error: %s\n", n.Text)
	}
}

func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a value without echoing it when stdin is a terminal.
// Non-terminal input (pipes, test buffers) falls back to a plain line read.
func (c *CLI) promptSecret(label string) (string, error) {
	f, ok := c.src.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.prompt(label)
	}

	fmt.Fprintf(c.out, "%s: ", label)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}
