// Package loop runs a single-player game in the local terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/roots/internal/difficulty"
	"github.com/tomz197/roots/internal/loop/client"
	"github.com/tomz197/roots/internal/loop/server"
	"github.com/tomz197/roots/internal/records"
)

// Options configures a local game.
type Options struct {
	Username string
	Table    *difficulty.Table // Nil uses the built-in table
	Store    *records.Store    // Nil keeps runs in memory
	Logger   *log.Logger       // Nil discards logs
}

// Run starts a private hub and plays one client on it until the player quits.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	gs := server.NewServer(opts.Store, logger)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		gs.Run(ctx)
	}()

	c := client.NewClient(gs, r, w, client.ClientOptions{
		Username: opts.Username,
		Table:    opts.Table,
		Profile:  termenv.NewOutput(os.Stdout).EnvColorProfile(),
		Logger:   logger,
	})
	err := c.Run()

	// The hub stores queued runs before it stops
	cancel()
	<-stopped
	return err
}
