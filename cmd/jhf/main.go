// Command jhf serves the Jesobantapur Hilful Fuzul API. Configuration comes
// from JHF_* environment variables, config files and flags.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/waffle/app"
	"github.com/mejbaurrahman/JHF/internal/app/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, bootstrap.Hooks); err != nil {
		log.Fatalf("jhf: %v", err)
	}
}
