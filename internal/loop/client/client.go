package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/circle-shooter/internal/draw"
	"github.com/tomz197/circle-shooter/internal/input"
	"github.com/tomz197/circle-shooter/internal/loop"
	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/loop/server"
	"github.com/tomz197/circle-shooter/internal/physics"
)

// announceSeconds is how long a new-high-score announcement stays on screen.
const announceSeconds = 4.0

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *loop.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	tuning       config.Tuning
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       *config.Tuning // Default: config.Default()
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}

	state := NewClientState()

	c := &Client{
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		state:        state,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		tuning:       tuning,
	}

	c.session = loop.NewSession(loop.Options{
		Tuning:   &tuning,
		Board:    gs.Board(),
		Listener: c,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitPlayfield(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight, tuning.Width, tuning.Height)
	c.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, tuning.Width, tuning.Height)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)

	return c
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart, GameStateEnded:
			if c.state.Input.Activated() {
				c.startGame()
			}
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}
		c.updateAnnouncement()

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	// A disconnect mid-game still records the score
	c.session.End()
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 || len(c.state.Input.Clicks) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventHighScore:
				c.state.announcement = fmt.Sprintf("New high score by %s: %d", event.Username, event.Score)
				c.state.announceTimer = announceSeconds
			case server.EventServerShutdown:
				c.session.End()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
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
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitPlayfield(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight, c.tuning.Width, c.tuning.Height)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updatePlayingState fires at every click inside the playfield and advances
// the session by one tick.
func (c *Client) updatePlayingState() {
	for _, click := range c.state.Input.Clicks {
		x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row)
		if !ok {
			continue
		}
		c.session.Fire(physics.Vec(x, y))
	}
	c.session.Tick()
}

// startGame starts or restarts the game.
func (c *Client) startGame() {
	c.session.Start()
	c.state.GameState = GameStatePlaying
	log.Info("Game started", "user", c.username, "session", c.session.ID())
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

func (c *Client) updateAnnouncement() {
	if c.state.announceTimer <= 0 {
		return
	}
	c.state.announceTimer -= c.state.delta.Seconds()
	if c.state.announceTimer <= 0 {
		// Let the canvas paint over the text again
		c.canvas.MarkTextDirty(1, c.canvas.TerminalHeight()-1, c.canvas.TerminalWidth())
		c.state.announcement = ""
	}
}

// ScoreChanged implements loop.Listener.
func (c *Client) ScoreChanged(score int) {
	c.server.ReportScore(c.handle.ID, score)
}

// HighScoreChanged implements loop.Listener.
func (c *Client) HighScoreChanged(int) {}

// EnemyHit implements loop.Listener.
func (c *Client) EnemyHit(bool) {}

// GameOver implements loop.Listener.
func (c *Client) GameOver(final, high int) {
	c.state.FinalScore = final
	if c.state.GameState == GameStatePlaying {
		c.state.GameState = GameStateEnded
	}
	c.server.ReportGameOver(c.handle.ID, final, high)
}

var _ loop.Listener = (*Client)(nil)
