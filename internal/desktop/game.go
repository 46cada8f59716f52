// Package desktop runs the game in a window with Ebitengine.
package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/circle-shooter/internal/audio"
	"github.com/tomz197/circle-shooter/internal/draw"
	"github.com/tomz197/circle-shooter/internal/loop"
	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/physics"
	"github.com/tomz197/circle-shooter/internal/score"
)

const lineHeight = 16

var panelColor = color.RGBA{0x14, 0x14, 0x1e, 0xe0}

type phase int

const (
	phaseStart phase = iota
	phasePlaying
	phaseEnded
)

// frameInput is the input gathered for one Update.
type frameInput struct {
	quit     bool
	activate bool
	clicks   []physics.Vector2
}

// Game implements ebiten.Game around one session.
type Game struct {
	session *loop.Session
	sound   audio.Effects
	tuning  config.Tuning

	// field keeps the previous frames so moving circles leave a trail
	field *ebiten.Image

	phase      phase
	finalScore int
	newHigh    bool
}

// Options configures a Game.
type Options struct {
	Tuning *config.Tuning // Default: config.Default()
	Board  *score.Board   // Default: in-memory board
	Sound  audio.Effects  // Default: audio.Silent
}

// NewGame creates a game on the title screen.
func NewGame(opts Options) *Game {
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.Silent{}
	}

	g := &Game{sound: sound, tuning: tuning}
	g.session = loop.NewSession(loop.Options{
		Tuning:   &tuning,
		Board:    opts.Board,
		Listener: g,
	})
	return g
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(int(g.tuning.Width), int(g.tuning.Height))
	ebiten.SetWindowTitle("Circle Shooter")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	err := ebiten.RunGame(g)
	g.session.End()
	return err
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.update(g.readInput())
}

func (g *Game) readInput() frameInput {
	var in frameInput
	in.quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.activate = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		// Layout makes screen coordinates equal playfield coordinates
		x, y := ebiten.CursorPosition()
		in.clicks = append(in.clicks, physics.Vec(float64(x), float64(y)))
	}
	return in
}

func (g *Game) update(in frameInput) error {
	if in.quit {
		return ebiten.Termination
	}

	if g.phase != phasePlaying {
		if in.activate || len(in.clicks) > 0 {
			g.session.Start()
			g.phase = phasePlaying
			g.newHigh = false
		}
		return nil
	}

	screen := g.session.Screen()
	for _, c := range in.clicks {
		if screen.Outside(c, 0) {
			continue
		}
		g.session.Fire(c)
		g.sound.PlayShot()
	}
	g.session.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.field == nil {
		g.field = ebiten.NewImage(int(g.tuning.Width), int(g.tuning.Height))
	}
	snap := g.session.Snapshot()

	alpha := uint8(255)
	if g.phase == phasePlaying {
		trail := float64(draw.TrailAlpha * 255)
		alpha = uint8(trail)
	}
	vector.DrawFilledRect(g.field, 0, 0, float32(g.tuning.Width), float32(g.tuning.Height), color.RGBA{A: alpha}, false)
	for _, s := range snap.Shapes {
		vector.DrawFilledCircle(g.field, float32(s.Center.X), float32(s.Center.Y), float32(s.Radius), toRGBA(s.Color, s.Alpha), true)
	}
	screen.DrawImage(g.field, nil)

	drawText(screen, fmt.Sprintf("Score: %d", snap.Score), 8, lineHeight, color.White)
	drawText(screen, fmt.Sprintf("Level %d", snap.Difficulty), int(g.tuning.Width)/2-28, lineHeight, color.White)
	high := fmt.Sprintf("High: %d", snap.HighScore)
	drawText(screen, high, int(g.tuning.Width)-8-len(high)*7, lineHeight, color.White)

	if lines := g.panelLines(snap); lines != nil {
		g.drawPanel(screen, lines)
	}
}

// Layout implements ebiten.Game. The logical screen is the playfield.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.tuning.Width), int(g.tuning.Height)
}

func (g *Game) panelLines(snap *loop.Snapshot) []string {
	switch g.phase {
	case phaseStart:
		return []string{
			"CIRCLE SHOOTER",
			"",
			"Click to shoot at the circles drifting in.",
			"A hit shrinks an enemy (+250) or pops it (+100).",
			"Do not let them reach you.",
			"",
			"SPACE or click to start, ESC to quit",
		}
	case phaseEnded:
		second := fmt.Sprintf("High score: %d", snap.HighScore)
		if g.newHigh {
			second = "New high score!"
		}
		return []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Final score: %d", g.finalScore),
			second,
			"",
			"SPACE or click to restart",
		}
	}
	return nil
}

func (g *Game) drawPanel(screen *ebiten.Image, lines []string) {
	widest := 0
	for _, l := range lines {
		widest = max(widest, len(l))
	}
	w := float32(widest*7 + 40)
	h := float32(len(lines)*lineHeight + 24)
	x := (float32(g.tuning.Width) - w) / 2
	y := (float32(g.tuning.Height) - h) / 2

	vector.DrawFilledRect(screen, x, y, w, h, panelColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.White, false)
	for i, l := range lines {
		lx := int(x) + (int(w)-len(l)*7)/2
		drawText(screen, l, lx, int(y)+16+(i+1)*lineHeight-4, color.White)
	}
}

func toRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(min(max(alpha, 0), 1) * 255)}
}

// drawText is a small wrapper that uses the classic text.Draw signature
func drawText(img *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(img, s, basicfont.Face7x13, x, y, col)
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

var (
	_ ebiten.Game   = (*Game)(nil)
	_ loop.Listener = (*Game)(nil)
)
