package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/tomz197/roots/internal/config"
	"github.com/tomz197/roots/internal/difficulty"
	"github.com/tomz197/roots/internal/loop"
	loopconfig "github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/records"
	"golang.org/x/term"
)

func main() {
	// stdout is the game screen, so logs only go to a file
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("ROOTS_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	table := difficulty.Default()
	if path := config.GetEnv("ROOTS_DIFFICULTY_FILE", ""); path != "" {
		t, err := difficulty.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load difficulty table: %v\n", err)
			os.Exit(1)
		}
		table = t
	}

	store, err := records.Open(config.GetEnv("ROOTS_DATA_APP", "backtotheroots"))
	if err != nil {
		logger.Warn("records are not persisted", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	opts := loop.Options{
		Username: localUsername(),
		Table:    table,
		Store:    store,
		Logger:   logger,
	}
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// localUsername names the local player after the OS account.
func localUsername() string {
	name := "player"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	if len(name) > loopconfig.MaxUsernameLength {
		name = name[:loopconfig.MaxUsernameLength]
	}
	return name
}
