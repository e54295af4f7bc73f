package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/loop/server"
	"github.com/tomz197/roots/internal/records"
	"github.com/tomz197/roots/internal/state"
)

// parentPanelWidth is the inner width of one parent card in the level menu.
const parentPanelWidth = 44

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On state, inactivity or shutdown transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	current := c.session.State()
	if current != c.state.prevAppState ||
		c.state.isInactive != c.state.wasInactive ||
		c.state.shutdown != c.state.wasShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevAppState = current
		c.state.wasInactive = c.state.isInactive
		c.state.wasShutdown = c.state.shutdown
	}

	c.canvas.Clear()
	if current == state.InGame || current == state.Paused {
		c.world.Draw(c.canvas)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(c.server.GetSnapshot())

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay of the current screen.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.session.State() {
	case state.MainMenu:
		c.drawStartScreen(centerX, centerY, snapshot)
	case state.PreStartMenu:
		c.drawPreStartScreen(centerX, centerY)
	case state.InGame:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
	case state.Paused:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
		c.drawPausedScreen(centerX, centerY)
	case state.LevelMenu:
		c.drawLevelMenu(centerX, centerY)
	case state.RetryMenu:
		c.drawRetryScreen(centerX, centerY, snapshot)
	}

	c.drawNotice(centerX, termHeight)
}

// writeCentered writes a multi-line block centered horizontally on centerX
// with its first line at row. Returns the row below the block.
func (c *Client) writeCentered(centerX, row int, block string) int {
	return row + c.chunkWriter.WriteBlock(centerX-lipgloss.Width(block)/2, row, block)
}

// blinkOn toggles every 600ms for blinking prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	block := lipgloss.JoinVertical(lipgloss.Center,
		c.styles.warn.Render("INACTIVITY WARNING"),
		"",
		c.styles.text.Render(msg),
		"",
		c.styles.dim.Render("Press any key to continue"),
	)
	c.writeCentered(centerX, centerY-2, block)
}

// titleArt is the title banner (figlet "small" font).
var titleArt = strings.Join([]string{
	` ___   _   ___ _  __  _____ ___    _____ _  _ ___   ___  ___   ___ _____ ___ `,
	`| _ ) /_\ / __| |/ / |_   _/ _ \  |_   _| || | __| | _ \/ _ \ / _ \_   _/ __|`,
	`| _ \/ _ \ (__| ' <    | || (_) |   | | | __ | _|  |   / (_) | (_) || | \__ \`,
	`|___/_/ \_\___|_|\_\   |_| \___/    |_| |_||_|___| |_|_\\___/ \___/ |_| |___/`,
}, "\n")

// drawStartScreen draws the title screen with the controls and the leaderboard.
func (c *Client) drawStartScreen(centerX, centerY int, snapshot *server.Snapshot) {
	s := c.styles
	controls := s.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.accent.Render("Controls"),
		"",
		s.text.Render("W A S D  . . . . . .  Move"),
		s.text.Render("Arrows / I J K L  . .  Aim"),
		s.text.Render("SPACE  . . . . . . .  Fire"),
		s.text.Render("P / ESC  . . . . . . Pause"),
		s.text.Render("Q  . . . . . . . . .  Quit"),
	))
	board := s.panel.Render(c.leaderboard(snapshot, 5))

	row := centerY - 10
	if lipgloss.Width(titleArt) < c.canvas.TerminalWidth() {
		row = c.writeCentered(centerX, row, s.title.Render(titleArt))
	} else {
		row = c.writeCentered(centerX, row, s.title.Render("BACK TO THE ROOTS"))
	}
	row = c.writeCentered(centerX, row+1, s.dim.Render("~ Survive the robots sent from the future ~"))

	row = c.writeCentered(centerX, row+1, lipgloss.JoinHorizontal(lipgloss.Top, controls, "  ", board))

	if blinkOn() {
		c.writeCentered(centerX, row+1, s.accent.Render(">>  Press SPACE to Start  <<"))
	}
}

// drawPreStartScreen draws the story shown before the first wave.
func (c *Client) drawPreStartScreen(centerX, centerY int) {
	s := c.styles
	lore := s.panel.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.accent.Render(fmt.Sprintf("Year %d", c.session.Clock().Year())),
		"",
		s.text.Render("Robots from the future have come to erase you."),
		s.text.Render("Every wave you survive, they travel further back"),
		s.text.Render("in time and strike at your ancestors instead."),
		"",
		s.text.Render("Whatever your parents pass on to you, you keep."),
	))
	row := c.writeCentered(centerX, centerY-6, lore)
	if blinkOn() {
		c.writeCentered(centerX, row+1, s.accent.Render(">>  Press SPACE to Play  <<"))
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *server.Snapshot) {
	cw := c.chunkWriter
	hud := c.styles.hud

	// Year and level (top left)
	yearText := fmt.Sprintf("Year: %-6d Level: %-4d", c.session.Clock().Year(), c.session.Level())
	cw.WriteAt(2, 1, hud.Render(yearText))

	// Wave progress (top right)
	b := c.session.Budget()
	fraction := 0.0
	if b.Quota() > 0 {
		fraction = float64(b.Killed()) / float64(b.Quota())
	}
	waveText := fmt.Sprintf("Kills %4d/%-4d %s", b.Killed(), b.Quota(), draw.ProgressBar(fraction, 12))
	cw.WriteAt(termWidth-lipgloss.Width(waveText)-1, 1, hud.Render(waveText))

	// Live players (bottom right)
	playersText := fmt.Sprintf("Players: %-4d", snapshot.Players)
	cw.WriteAt(termWidth-len(playersText)-1, termHeight, hud.Render(playersText))

	// Health (bottom left)
	if p := c.world.Player; p != nil && p.Stats.Health > 0 {
		healthText := fmt.Sprintf("Health %s", draw.ProgressBar(p.Health/p.Stats.Health, 10))
		cw.WriteAt(2, termHeight, hud.Render(healthText))
	}
}

// drawPausedScreen draws the pause panel over the frozen world.
func (c *Client) drawPausedScreen(centerX, centerY int) {
	s := c.styles
	panel := s.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.accent.Render("PAUSED"),
		"",
		s.dim.Render("Press P or SPACE to resume"),
		s.dim.Render("Press Q to quit"),
	))
	c.writeCentered(centerX, centerY-3, panel)
}

// drawLevelMenu draws the two parents offered after a cleared wave.
func (c *Client) drawLevelMenu(centerX, centerY int) {
	s := c.styles
	offer := c.session.Offer()

	row := centerY - 10
	row = c.writeCentered(centerX, row, s.warn.Render("The robots of the future failed to kill you !!"))
	row = c.writeCentered(centerX, row, s.text.Render(
		"They decided to kill one of your parents before your procreation to erase you from reality."))
	row = c.writeCentered(centerX, row+1, s.accent.Render(
		fmt.Sprintf("The robots send you back to year %d", c.session.Clock().Year())))
	row = c.writeCentered(centerX, row+1, s.text.Render("Save one parent. You inherit their flaws."))

	cards := make([]string, 0, 3)
	for i, name := range []string{"Dad", "Mom"} {
		triple, color := offer.Parent(i)
		cards = append(cards, c.parentCard(i+1, name, triple, color))
		if i == 0 {
			cards = append(cards, "  ")
		}
	}
	row = c.writeCentered(centerX, row+1, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	if blinkOn() {
		c.writeCentered(centerX, row+1, s.accent.Render(">>  Press 1 or 2  <<"))
	}
}

// parentCard renders one parent with the penalties they would pass on.
func (c *Client) parentCard(key int, name string, t heredity.Triple, color heredity.Color) string {
	s := c.styles
	hex := color.Hex()
	header := s.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).
		Render(fmt.Sprintf("[%d] Save %s", key, name))
	return s.parentPanel(hex, parentPanelWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		s.text.Render(heredity.DescribeTriple(t)),
	))
}

// gameOverArt is the retry screen banner (figlet "small" font).
var gameOverArt = strings.Join([]string{
	`  ___   _   __  __ ___    _____   _____ ___ `,
	` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \`,
	`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   /`,
	` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\`,
}, "\n")

// drawRetryScreen draws the game over screen.
func (c *Client) drawRetryScreen(centerX, centerY int, snapshot *server.Snapshot) {
	s := c.styles
	row := c.writeCentered(centerX, centerY-10, s.warn.Render(gameOverArt))

	summary := fmt.Sprintf("You were erased in year %d after %d waves.",
		c.session.Clock().Target, c.session.Level())
	row = c.writeCentered(centerX, row+1, s.text.Render(summary))
	row = c.writeCentered(centerX, row+1, s.panel.Render(c.leaderboard(snapshot, config.LeaderboardSize)))

	if blinkOn() {
		c.writeCentered(centerX, row+1, s.accent.Render(">>  Press SPACE to Retry  <<"))
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	s := c.styles
	remaining := int(c.state.shutdownTimer) + 1
	block := lipgloss.JoinVertical(lipgloss.Center,
		s.warn.Render("SERVER SHUTTING DOWN"),
		"",
		s.text.Render("The server is restarting for maintenance."),
		s.text.Render("Please reconnect in a moment."),
		"",
		s.text.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)),
		"",
		s.dim.Render("Press Q to disconnect now"),
	)
	c.writeCentered(centerX, centerY-3, block)
}

// drawNotice draws the banner line above the bottom HUD row.
func (c *Client) drawNotice(centerX, termHeight int) {
	if c.state.noticeTimer <= 0 || c.state.notice == "" {
		return
	}
	c.writeCentered(centerX, termHeight-1, c.styles.accent.Render(c.state.notice))
	c.canvas.MarkTextDirty(1, termHeight-1, c.canvas.TerminalWidth())
}

// leaderboard renders the best n runs known to the hub.
func (c *Client) leaderboard(snapshot *server.Snapshot, n int) string {
	s := c.styles
	lines := []string{s.accent.Render("Deepest in time"), ""}
	if snapshot == nil || len(snapshot.Leaderboard) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.dim.Render("No runs yet"))...)
	}

	for i, run := range snapshot.Leaderboard {
		if i >= n {
			break
		}
		line := fmt.Sprintf("%2d. %-*s %4d  lvl %d", i+1, config.MaxUsernameLength, run.Username, run.Year, run.Level)
		if run.Username == c.username {
			lines = append(lines, s.accent.Render(line))
		} else {
			lines = append(lines, s.text.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// newRecordNotice formats the banner announcing a leaderboard entry.
func newRecordNotice(run records.RunRecord) string {
	return fmt.Sprintf("%s reached year %d (level %d)", run.Username, run.Year, run.Level)
}
