package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "vapor",
		Usage: "game store order, user and frontend services",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen address, overrides APP_PORT",
			},
		},
		Commands: []*cli.Command{
			orderCommand(),
			userCommand(),
			frontendCommand(),
			migrateCommand(),
			grantRoleCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("vapor: %v", err)
	}
}
