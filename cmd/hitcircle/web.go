package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hitcircle/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server for browser clients",
	Long: `Serve rounds to browser renderers over WebSocket.

Routes:
  /play?map=<id>&difficulty=<name>  - One round per connection. Send
                                       {"left","right","boost","expand","restart","pause"}
                                       booleans; receive {"snapshot","events"} every tick.
  /maps                              - Map catalog as JSON
  /history?map=<id>                  - Recorded clears as JSON

Examples:
  hitcircle web
  hitcircle web --addr :9000 --fps 120`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg, catalog := loadConfigs()
	logger := newLogger("hitcircle-web")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(web.Options{
		Catalog:  catalog,
		Game:     cfg,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Store:    store,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting hitcircle web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx, flagWebAddr); err != nil {
		fail("server: %v", err)
	}
}
