// Package tui runs the game in the local terminal with tcell.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circle-shooter/internal/audio"
	"github.com/tomz197/circle-shooter/internal/draw"
	"github.com/tomz197/circle-shooter/internal/loop"
	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/physics"
	"github.com/tomz197/circle-shooter/internal/score"
)

type phase int

const (
	phaseStart phase = iota
	phasePlaying
	phaseEnded
)

// Game owns the tcell screen and one session.
type Game struct {
	screen  tcell.Screen
	session *loop.Session
	canvas  *draw.Canvas
	sound   audio.Effects
	tuning  config.Tuning

	phase      phase
	finalScore int
	newHigh    bool

	// button1Down is the left button state from the last mouse event, so a
	// press fires once however far it drags
	button1Down bool
}

// Options configures a Game.
type Options struct {
	Tuning *config.Tuning // Default: config.Default()
	Board  *score.Board   // Default: in-memory board
	Sound  audio.Effects  // Default: audio.Silent
}

// NewGame wraps an initialised screen.
func NewGame(screen tcell.Screen, opts Options) *Game {
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.Silent{}
	}

	g := &Game{
		screen: screen,
		sound:  sound,
		tuning: tuning,
	}
	g.session = loop.NewSession(loop.Options{
		Tuning:   &tuning,
		Board:    opts.Board,
		Listener: g,
	})
	g.canvas = draw.NewScaledCanvas(1, 1, tuning.Width, tuning.Height)
	g.handleResize()
	return g
}

// Run drives the game until the player quits.
func (g *Game) Run() {
	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleEvent(ev) {
				g.session.End()
				return
			}

		case <-ticker.C:
			g.session.Tick()
			g.draw()
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			g.activate()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				g.activate()
			}
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		wasDown := g.button1Down
		g.button1Down = pressed
		if !pressed || wasDown {
			return true
		}
		if g.phase != phasePlaying {
			g.activate()
			return true
		}
		col, row := ev.Position()
		x, y, ok := g.canvas.TerminalToLogical(col+1, row+1)
		if ok {
			g.session.Fire(physics.Vec(x, y))
			g.sound.PlayShot()
		}

	case *tcell.EventResize:
		g.handleResize()
		g.screen.Sync()
	}
	return true
}

// activate starts a play-through from the title screen or the end panel.
func (g *Game) activate() {
	if g.phase == phasePlaying {
		return
	}
	g.session.Start()
	g.phase = phasePlaying
	g.newHigh = false
}

func (g *Game) handleResize() {
	w, h := g.screen.Size()
	renderW, renderH, offCol, offRow := draw.FitPlayfield(w, h-1, config.MaxTermWidth, config.MaxTermHeight, g.tuning.Width, g.tuning.Height)
	g.canvas.Resize(renderW, renderH)
	g.canvas.SetOffset(offCol, offRow+1) // Row 0 is the status line
	g.screen.Clear()
}

// draw renders the playfield and the overlays.
func (g *Game) draw() {
	snap := g.session.Snapshot()

	if g.phase == phasePlaying {
		g.canvas.Fade(draw.Background, draw.TrailAlpha)
	} else {
		g.canvas.Clear(draw.Background)
	}
	draw.DrawShapes(g.canvas, snap.Shapes)
	g.blit()

	g.drawStatus(snap)
	switch g.phase {
	case phaseStart:
		g.drawPanel([]string{
			"CIRCLE SHOOTER",
			"",
			"Click to shoot at the circles drifting in.",
			"A hit shrinks an enemy (+250) or pops it (+100).",
			"Do not let them reach you.",
			"",
			"SPACE or click to start, Q to quit",
		})
	case phaseEnded:
		second := fmt.Sprintf("High score: %d", snap.HighScore)
		if g.newHigh {
			second = "New high score!"
		}
		g.drawPanel([]string{
			"GAME OVER",
			"",
			fmt.Sprintf("Final score: %d", g.finalScore),
			second,
			"",
			"SPACE or click to restart",
		})
	}

	g.screen.Show()
}

// blit copies the canvas to the screen as upper half-blocks.
func (g *Game) blit() {
	offCol, offRow := g.canvas.OffsetCol(), g.canvas.OffsetRow()
	for row := 0; row < g.canvas.TerminalHeight(); row++ {
		for col := 0; col < g.canvas.TerminalWidth(); col++ {
			top := g.canvas.Pixel(col, row*2)
			bottom := g.canvas.Pixel(col, row*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			g.screen.SetContent(offCol+col, offRow+row, draw.BlockUpperHalf, nil, style)
		}
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, gr, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(gr), int32(b))
}

func (g *Game) drawStatus(snap *loop.Snapshot) {
	w, _ := g.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < w; x++ {
		g.screen.SetContent(x, 0, ' ', nil, style)
	}
	g.putString(1, 0, fmt.Sprintf("Score: %d", snap.Score), style)
	center := fmt.Sprintf("Level %d", snap.Difficulty)
	g.putString((w-len(center))/2, 0, center, style)
	high := fmt.Sprintf("High: %d", snap.HighScore)
	g.putString(w-len(high)-1, 0, high, style)
}

// drawPanel draws a bordered box of centered lines over the playfield.
func (g *Game) drawPanel(lines []string) {
	w, h := g.screen.Size()
	inner := 0
	for _, l := range lines {
		inner = max(inner, len(l))
	}
	inner += 4
	left := (w - inner - 2) / 2
	top := (h - len(lines) - 2) / 2

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(20, 20, 30))
	for y := 0; y < len(lines)+2; y++ {
		for x := 0; x < inner+2; x++ {
			ch := ' '
			switch {
			case (y == 0 || y == len(lines)+1) && (x == 0 || x == inner+1):
				ch = '+'
			case y == 0 || y == len(lines)+1:
				ch = '-'
			case x == 0 || x == inner+1:
				ch = '|'
			}
			g.screen.SetContent(left+x, top+y, ch, nil, style)
		}
	}
	for i, l := range lines {
		g.putString(left+1+(inner-len(l))/2, top+1+i, l, style)
	}
}

func (g *Game) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

// ScoreChanged implements loop.Listener.
func (g *Game) ScoreChanged(int) {}

// HighScoreChanged implements loop.Listener.
func (g *Game) HighScoreChanged(int) {
	if g.phase == phasePlaying && !g.session.Running() {
		g.newHigh = true
	}
}

// EnemyHit implements loop.Listener.
func (g *Game) EnemyHit(destroyed bool) {
	g.sound.PlayHit(destroyed)
}

// GameOver implements loop.Listener.
func (g *Game) GameOver(final, _ int) {
	g.finalScore = final
	g.phase = phaseEnded
	g.sound.PlayGameOver()
}

var _ loop.Listener = (*Game)(nil)
