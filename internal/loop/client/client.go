package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/roots/internal/difficulty"
	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/input"
	"github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/loop/server"
	"github.com/tomz197/roots/internal/object"
	"github.com/tomz197/roots/internal/records"
	"github.com/tomz197/roots/internal/session"
	"github.com/tomz197/roots/internal/state"
	"github.com/tomz197/roots/internal/world"
)

// Client handles one playthrough's input, simulation and rendering for a
// single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	session      *session.Session
	world        *world.World
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	styles       styles
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Table        *difficulty.Table // Nil uses the built-in table
	Profile      termenv.Profile   // Color profile of the remote terminal
	Logger       *log.Logger
	Rand         heredity.Rand // Nil seeds from the clock
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := gs.RegisterClient(opts.Username)
	cs := NewClientState()
	cs.termSizeFunc = termSizeFunc

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("user", opts.Username)
	}
	sess := session.New(session.Options{
		Table:  opts.Table,
		Rand:   opts.Rand,
		Logger: logger,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetProfile(opts.Profile)
	object.RegisterInks(canvas, sess.Stats().Color)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        cs,
		session:      sess,
		world:        world.New(),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		styles:       newStyles(w, opts.Profile),
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       sess.Logger(),
	}
	c.registerHooks()
	return c
}

// registerHooks ties the world and the leaderboard to state transitions.
func (c *Client) registerHooks() {
	m := c.session.Machine()

	m.OnEnter(state.InGame, func(from, _ state.AppState) {
		input.ResetKeyInput(c.inputStream)
		if from == state.Paused {
			return
		}
		stats := c.session.Stats()
		c.world.Reset(stats)
		c.world.Theme = c.session.Clock().Theme()
		object.RegisterInks(c.canvas, stats.Color)
		c.state.runSubmitted = false
	})
	m.OnExit(state.InGame, func(_, to state.AppState) {
		if to != state.Paused {
			c.world.Clear()
		}
	})
	m.OnEnter(state.RetryMenu, func(_, _ state.AppState) {
		c.submitRun()
	})
}

// submitRun sends the current run to the leaderboard once.
func (c *Client) submitRun() {
	if c.state.runSubmitted {
		return
	}
	c.state.runSubmitted = true
	c.server.SubmitRun(records.RunRecord{
		Username:   c.username,
		SessionID:  c.session.ID.String(),
		Level:      c.session.Level(),
		Year:       c.session.Clock().Target,
		FinishedAt: time.Now().UTC(),
	})
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	// Unregister from server
	defer c.server.UnregisterClient(c.handle.ID)

	c.logger.Info("session started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		if c.state.shutdown {
			c.updateShutdownState()
		} else if err := c.update(); err != nil {
			c.logger.Error("game update failed", "err", err)
			return err
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// A run abandoned mid-game still counts once a wave was cleared
	if c.session.State() != state.MainMenu && c.session.State() != state.PreStartMenu && c.session.Level() > 0 {
		c.submitRun()
	}

	c.logger.Info("session ended", "level", c.session.Level())

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.shutdown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventNewRecord:
				c.state.notice = newRecordNotice(event.Run)
				c.state.noticeTimer = 5
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update maps this frame's input to session commands and steps the game.
func (c *Client) update() error {
	in := c.state.Input
	dt := c.state.delta.Seconds()

	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= dt
	}

	switch c.session.State() {
	case state.MainMenu:
		if in.Confirm {
			c.session.Start()
		}
	case state.PreStartMenu:
		if in.Confirm {
			c.session.Play()
		}
	case state.InGame:
		if in.Pause {
			c.session.TogglePause()
			return nil
		}
		res, err := c.world.Step(c.state.delta, in)
		if err != nil {
			return err
		}
		tick := c.session.Tick(float32(dt), res.Kills, res.PlayerDied)
		if c.session.State() == state.InGame {
			c.world.RequestMobs(tick.Spawn)
		}
		return nil
	case state.Paused:
		if in.Pause || in.Confirm {
			c.session.TogglePause()
		}
	case state.LevelMenu:
		if in.Number == 1 || in.Number == 2 {
			c.session.ChooseParent(in.Number - 1)
		}
	case state.RetryMenu:
		if in.Confirm {
			c.session.Retry()
		}
	}

	// Menus only animate the score clock. A command that resumed the game
	// leaves the wave untouched until the next frame steps the world.
	if c.session.State() != state.InGame {
		c.session.Tick(float32(dt), 0, false)
	}
	return nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
