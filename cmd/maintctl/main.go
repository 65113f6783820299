package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/elito/maintdesk/internal/app"
	"github.com/elito/maintdesk/internal/cli"
	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/session"
)

func main() {
	cfg := app.LoadConfig()

	nav := session.NavigatorFunc(func(r domain.Route) {
		fmt.Printf("-> %s\n", r)
	})

	application, err := app.New(cfg, nav)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(application, os.Stdin, os.Stdout)
	if err := c.Run(ctx, os.Args[1:]); err != nil {
		application.Logger().Error("command failed", "error", err)
		os.Exit(1)
	}
}
