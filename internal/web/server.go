// Package web serves the game to browsers: one session per websocket
// connection, simulated on the server and streamed as JSON frames to a canvas
// page.
package web

import (
	_ "embed"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/circle-shooter/internal/loop"
	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/physics"
	"github.com/tomz197/circle-shooter/internal/score"
)

//go:embed index.html
var htmlPage string

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 25 * time.Second
	maxFrameSize = 1 << 16
)

// Server hands each websocket connection its own session.
type Server struct {
	tuning   config.Tuning
	board    *score.Board
	page     string
	upgrader websocket.Upgrader
}

// Options configures a Server.
type Options struct {
	Tuning  *config.Tuning // Default: config.Default()
	Board   *score.Board   // Shared by every connection. Default: in-memory board
	SSHHost string         // Shown on the page as the terminal alternative
}

// NewServer creates a web server.
func NewServer(opts Options) *Server {
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	board := opts.Board
	if board == nil {
		board = score.NewBoard(nil)
	}
	return &Server{
		tuning: tuning,
		board:  board,
		page:   strings.ReplaceAll(htmlPage, "{{.SSHHost}}", opts.SSHHost),
		upgrader: websocket.Upgrader{
			// Any origin may connect
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler routes the page and the socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.HandleFunc("/ws", s.serveSocket)
	return mux
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.page))
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer ws.Close()

	log.Info("Web player connected", "remote", r.RemoteAddr)
	c := newConnection(ws, s.tuning, s.board)
	if err := c.run(); err != nil {
		log.Debug("Web connection closed", "remote", r.RemoteAddr, "err", err)
	}
	log.Info("Web player disconnected", "remote", r.RemoteAddr)
}

// connection runs one player's session. Everything except readLoop runs on
// the goroutine that called run, so the session needs no locking.
type connection struct {
	ws      *websocket.Conn
	session *loop.Session
	tuning  config.Tuning

	dirty   bool     // A state frame is due even though the session is idle
	newHigh bool     // The last End raised the high score
	pending [][]byte // Frames queued by listener callbacks
}

func newConnection(ws *websocket.Conn, tuning config.Tuning, board *score.Board) *connection {
	c := &connection{ws: ws, tuning: tuning}
	c.session = loop.NewSession(loop.Options{
		Tuning:   &tuning,
		Board:    board,
		Listener: c,
	})
	return c
}

func (c *connection) run() error {
	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	if err := c.send(MsgWelcome, Welcome{
		Width:  c.tuning.Width,
		Height: c.tuning.Height,
		TickHz: config.TargetFPS,
		High:   c.session.HighScore(),
	}); err != nil {
		return err
	}

	cmds := make(chan Envelope, 64)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go c.readLoop(cmds, readErr, done)

	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// A dropped connection mid-game still records the score
	defer c.session.End()

	for {
		select {
		case env, ok := <-cmds:
			if !ok {
				return <-readErr
			}
			c.handle(env)

		case <-ticker.C:
			if c.session.Running() {
				c.session.Tick()
				c.dirty = true
			}
			if err := c.flush(); err != nil {
				return err
			}

		case <-ping.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return err
			}
		}
	}
}

// readLoop forwards decoded client frames until the socket fails.
func (c *connection) readLoop(cmds chan<- Envelope, readErr chan<- error, done <-chan struct{}) {
	defer close(cmds)
	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}
		env, err := DecodeEnvelope(msg)
		if err != nil {
			log.Debug("Dropping malformed frame", "err", err)
			continue
		}
		select {
		case cmds <- env:
		case <-done:
			return
		}
	}
}

func (c *connection) handle(env Envelope) {
	switch env.T {
	case MsgStart:
		if c.session.Running() {
			return
		}
		c.newHigh = false
		c.session.Start()
		c.dirty = true

	case MsgFire:
		fire, err := DecodePayload[Fire](env)
		if err != nil {
			log.Debug("Dropping fire frame", "err", err)
			return
		}
		target := physics.Vec(fire.X, fire.Y)
		if c.session.Screen().Outside(target, 0) {
			return
		}
		c.session.Fire(target)

	default:
		log.Debug("Unknown message type", "type", env.T)
	}
}

// flush writes the state frame if one is due, then any queued frames.
func (c *connection) flush() error {
	if c.dirty {
		c.dirty = false
		if err := c.send(MsgState, stateFrame(c.session.Snapshot())); err != nil {
			return err
		}
	}
	for len(c.pending) > 0 {
		frame := c.pending[0]
		c.pending = c.pending[1:]
		if err := c.write(frame); err != nil {
			return err
		}
	}
	return nil
}

func (c *connection) send(t string, payload any) error {
	frame, err := Encode(t, payload)
	if err != nil {
		return err
	}
	return c.write(frame)
}

func (c *connection) write(frame []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, frame)
}

func (c *connection) queue(t string, payload any) {
	frame, err := Encode(t, payload)
	if err != nil {
		log.Error("Failed to encode frame", "type", t, "err", err)
		return
	}
	c.pending = append(c.pending, frame)
}

func stateFrame(snap *loop.Snapshot) State {
	shapes := make([]ShapeFrame, 0, len(snap.Shapes))
	for _, s := range snap.Shapes {
		shapes = append(shapes, ShapeFrame{
			X:     s.Center.X,
			Y:     s.Center.Y,
			R:     s.Radius,
			Color: s.Color.Clamped().Hex(),
			Alpha: s.Alpha,
		})
	}
	return State{
		Shapes:     shapes,
		Score:      snap.Score,
		High:       snap.HighScore,
		Difficulty: snap.Difficulty,
		Running:    snap.Running,
	}
}

// ScoreChanged implements loop.Listener.
func (c *connection) ScoreChanged(int) {}

// HighScoreChanged implements loop.Listener.
func (c *connection) HighScoreChanged(int) {
	if !c.session.Running() {
		c.newHigh = true
	}
}

// EnemyHit implements loop.Listener.
func (c *connection) EnemyHit(bool) {}

// GameOver implements loop.Listener.
func (c *connection) GameOver(final, high int) {
	c.dirty = true
	c.queue(MsgGameOver, GameOver{Final: final, High: high, NewHigh: c.newHigh})
}

var _ loop.Listener = (*connection)(nil)
