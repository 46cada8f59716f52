package client

import (
	"fmt"
	"time"

	"github.com/tomz197/circle-shooter/internal/draw"
	"github.com/tomz197/circle-shooter/internal/loop"
	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/loop/server"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	snapshot := c.session.Snapshot()

	if c.state.GameState == GameStatePlaying {
		c.canvas.Fade(draw.Background, draw.TrailAlpha)
	} else {
		c.canvas.Clear(draw.Background)
	}
	draw.DrawShapes(c.canvas, snapshot.Shapes)

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *loop.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2
	lobby := c.server.GetSnapshot()

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth, termHeight, snapshot, lobby)

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateEnded:
		c.drawEndPanel(centerX, centerY, snapshot)
	}
}

// drawHUD draws score, high score, difficulty and lobby info.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we don't clear every frame).
func (c *Client) drawHUD(termWidth, termHeight int, snapshot *loop.Snapshot, lobby *server.LobbySnapshot) {
	cw := c.chunkWriter
	high := max(snapshot.HighScore, lobby.HighScore)

	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", snapshot.Score))
	highText := fmt.Sprintf("High: %-8d", high)
	cw.WriteAt(termWidth-len(highText)-1, 1, highText)

	cw.WriteAt(2, termHeight, fmt.Sprintf("Level: %-3d", snapshot.Difficulty))
	playersText := fmt.Sprintf("Players: %-4d", lobby.Players)
	cw.WriteAt(termWidth-len(playersText)-1, termHeight, playersText)

	if c.state.announcement != "" {
		cw.WriteCentered(termWidth/2, termHeight-1, c.state.announcement)
	}

	if c.state.GameState != GameStatePlaying {
		c.drawLeaderboard(termWidth, lobby)
	}
}

// drawLeaderboard lists the best scores of connected players below the high score.
func (c *Client) drawLeaderboard(termWidth int, lobby *server.LobbySnapshot) {
	if len(lobby.TopScores) == 0 {
		return
	}
	cw := c.chunkWriter
	const width = 22
	col := termWidth - width - 1
	if col < 1 {
		return
	}
	cw.WriteAt(col, 3, fmt.Sprintf("%-*s", width, "Online best"))
	for i, e := range lobby.TopScores {
		name := e.Username
		if len(name) > 12 {
			name = name[:12]
		}
		cw.WriteAt(col, 4+i, fmt.Sprintf("%d. %-12s %6d", i+1, name, e.Score))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		`  ___ ___ ___  ___ _    ___   ___ _  _  ___   ___ _____ ___ ___  `,
		` / __|_ _| _ \/ __| |  | __| / __| || |/ _ \ / _ \_   _| __| _ \ `,
		`| (__ | ||   / (__| |__| _|  \__ \ __ | (_) | (_) || | | _||   / `,
		` \___|___|_|_\\___|____|___| |___/_||_|\___/ \___/ |_| |___|_|_\ `,
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteCentered(centerX, titleStartY+i, line)
	}

	controlsY := titleStartY + len(titleArt) + 2
	controlLines := []string{
		"Enemies drift in from the edges.",
		"Click to shoot from the center.",
		"A hit shrinks an enemy (+250) or pops it (+100).",
		"Q quits.",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+i, line)
	}

	// Blinking start prompt
	prompt := ">>  Press SPACE or click to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = fmt.Sprintf("%*s", len(prompt), "")
	}
	cw.WriteCentered(centerX, controlsY+len(controlLines)+2, prompt)
}

// drawEndPanel draws the end-of-game panel with the final score.
func (c *Client) drawEndPanel(centerX, centerY int, snapshot *loop.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	cw := c.chunkWriter
	titleStartY := centerY - 5
	for i, line := range titleArt {
		cw.WriteCentered(centerX, titleStartY+i, line)
	}

	y := titleStartY + len(titleArt) + 1
	cw.WriteCentered(centerX, y, fmt.Sprintf("Final score: %d", c.state.FinalScore))
	if c.state.FinalScore > 0 && c.state.FinalScore >= snapshot.HighScore {
		cw.WriteString(draw.ColorBrightCyan)
		cw.WriteCentered(centerX, y+1, "New high score!")
		cw.WriteString(draw.ColorReset)
	} else {
		cw.WriteCentered(centerX, y+1, fmt.Sprintf("High score: %d", snapshot.HighScore))
	}

	prompt := ">>  Press SPACE or click to Restart  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = fmt.Sprintf("%*s", len(prompt), "")
	}
	cw.WriteCentered(centerX, y+3, prompt)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}
