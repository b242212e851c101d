package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/httpapi"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagHTTPAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the JSON HTTP API",
	Long: `Start an HTTP server that plays 2048 over a JSON API.

Games live in memory and are lost on restart. Finished games are recorded
in the scores database, shared with the terminal and SSH front ends.

Endpoints:
  POST   /games             Start a game, body {"seed":42,"mode":"endless"} optional
  GET    /games/{id}        Current state
  POST   /games/{id}/moves  Apply a move, body {"direction":"left"}
  POST   /games/{id}/reset  Start over
  DELETE /games/{id}        End the session
  GET    /runs/{id}         A recorded game, by the runId of a finished session
  GET    /health

Examples:
  t2048 http
  t2048 http --addr :9000 --difficulty hard
  curl -X POST localhost:8048/games`,
	Run: runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8048", "HTTP listen address (host:port)")
}

func runHTTP(_ *cobra.Command, _ []string) {
	rules := loadRules()

	cfg := httpapi.Config{
		Address: flagHTTPAddr,
		Rules:   rules,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		cfg.Scores = store
	}

	server := httpapi.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting t2048 HTTP API on %s\n", cfg.Address)
	fmt.Printf("Try: curl -X POST localhost:%s/games\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a listen address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
