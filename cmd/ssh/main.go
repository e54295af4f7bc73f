package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/roots/internal/config"
	"github.com/tomz197/roots/internal/difficulty"
	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/loop/client"
	loopconfig "github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/loop/server"
	"github.com/tomz197/roots/internal/records"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// Global game server - shared by all SSH clients
var (
	gameServer   *server.Server
	cancelServer context.CancelFunc
	serverOnce   sync.Once
	table        *difficulty.Table
	logger       *log.Logger
)

func main() {
	logger = config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	shutdownTimeout := config.GetEnvDuration("SSH_SHUTDOWN_TIMEOUT", 15*time.Second)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	table = difficulty.Default()
	if path := config.GetEnv("ROOTS_DIFFICULTY_FILE", ""); path != "" {
		t, err := difficulty.Load(path)
		if err != nil {
			logger.Fatal("failed to load difficulty table", "path", path, "err", err)
		}
		table = t
	}

	store, err := records.Open(config.GetEnv("ROOTS_DATA_APP", "backtotheroots"))
	if err != nil {
		logger.Warn("records are not persisted", "err", err)
	}

	// Initialize and start the shared game server
	serverOnce.Do(func() {
		var ctx context.Context
		ctx, cancelServer = context.WithCancel(context.Background())
		gameServer = server.NewServer(store, logger)
		go gameServer.Run(ctx)
		logger.Info("game server started", "records", store.Len(), "persistent", store.Persistent())
	})

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Gracefully shut down the game server: notify players and wait for them to disconnect
	if gameServer != nil {
		logger.Info("notifying connected players about shutdown")
		gameServer.Shutdown(shutdownTimeout)
		cancelServer()
		logger.Info("game server stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		username := sanitizeUsername(sess.User())
		logger.Info("new game session", "user", username, "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     username,
			Table:        table,
			Profile:      colorProfile(sess, pty.Term),
			Logger:       logger,
		}

		// Create a new client connected to the shared game server
		c := client.NewClient(gameServer, reader, sess, clientOpts)
		if err := c.Run(); err != nil {
			logger.Error("game error", "user", username, "err", err)
		}

		logger.Info("session ended", "user", username)
		next(sess)
	}
}

// sanitizeUsername strips control characters and clamps the name length.
func sanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "" {
		name = "anonymous"
	}
	if r := []rune(name); len(r) > loopconfig.MaxUsernameLength {
		name = string(r[:loopconfig.MaxUsernameLength])
	}
	return name
}

// sessionEnviron exposes the SSH session environment to termenv.
type sessionEnviron struct {
	env []string
}

func (e sessionEnviron) Environ() []string { return e.env }

func (e sessionEnviron) Getenv(key string) string {
	for _, kv := range e.env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// colorProfile detects the color support of the remote terminal from the
// session environment and the PTY's TERM.
func colorProfile(sess ssh.Session, term string) termenv.Profile {
	env := append([]string{"TERM=" + term}, sess.Environ()...)
	out := termenv.NewOutput(sess,
		termenv.WithEnvironment(sessionEnviron{env: env}),
		termenv.WithTTY(true),
		termenv.WithUnsafe(),
	)
	return out.EnvColorProfile()
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
