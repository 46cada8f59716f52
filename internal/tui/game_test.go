package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/circle-shooter/internal/draw"
)

type recordingSound struct {
	shots    int
	hits     []bool
	gameOver int
}

func (r *recordingSound) PlayShot()              { r.shots++ }
func (r *recordingSound) PlayHit(destroyed bool) { r.hits = append(r.hits, destroyed) }
func (r *recordingSound) PlayGameOver()          { r.gameOver++ }

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen, *recordingSound) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	sound := &recordingSound{}
	return NewGame(screen, Options{Sound: sound}), screen, sound
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSpaceStartsSession(t *testing.T) {
	g, _, _ := newTestGame(t)
	if g.phase != phaseStart {
		t.Fatalf("phase = %v, want start", g.phase)
	}
	if !g.handleEvent(key(' ')) {
		t.Fatal("space should not quit")
	}
	if g.phase != phasePlaying || !g.session.Running() {
		t.Fatalf("phase = %v running = %v, want playing session", g.phase, g.session.Running())
	}
}

func TestQuitKeys(t *testing.T) {
	g, _, _ := newTestGame(t)
	for _, ev := range []tcell.Event{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		if g.handleEvent(ev) {
			t.Fatalf("%T did not quit", ev)
		}
	}
}

func TestClickStartsThenFires(t *testing.T) {
	g, _, sound := newTestGame(t)

	// 80x24 below the status line fits a 77x24 playfield at column 1, row 1
	click := tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone)
	g.handleEvent(click)
	if g.phase != phasePlaying {
		t.Fatal("first click should start the game")
	}
	if sound.shots != 0 {
		t.Fatalf("shots = %d, want 0 for the starting click", sound.shots)
	}

	g.handleEvent(release)
	g.handleEvent(click)
	if sound.shots != 1 {
		t.Fatalf("shots = %d, want 1", sound.shots)
	}
	snap := g.session.Tick()
	// player plus one projectile
	if got := len(snap.Shapes); got != 2 {
		t.Fatalf("shapes = %d, want 2", got)
	}
}

func TestDragFiresOnce(t *testing.T) {
	g, _, sound := newTestGame(t)
	g.handleEvent(key(' '))

	for _, ev := range []*tcell.EventMouse{
		tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(41, 12, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(42, 12, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(43, 12, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(43, 12, tcell.ButtonNone, tcell.ModNone),
	} {
		g.handleEvent(ev)
	}
	if sound.shots != 1 {
		t.Fatalf("shots = %d, want 1 for one press", sound.shots)
	}
	snap := g.session.Tick()
	if got := len(snap.Shapes); got != 2 {
		t.Fatalf("shapes = %d, want 2", got)
	}

	// The next press fires again
	g.handleEvent(tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone))
	if sound.shots != 2 {
		t.Fatalf("shots = %d, want 2", sound.shots)
	}
}

func TestClickOutsidePlayfieldDoesNotFire(t *testing.T) {
	g, _, sound := newTestGame(t)
	g.handleEvent(key(' '))

	// Row 0 is the status line
	g.handleEvent(tcell.NewEventMouse(40, 0, tcell.Button1, tcell.ModNone))
	if sound.shots != 0 {
		t.Fatalf("shots = %d, want 0", sound.shots)
	}
}

func TestDrawStatusAndPlayfield(t *testing.T) {
	g, screen, _ := newTestGame(t)
	g.handleEvent(key(' '))
	g.session.Tick()
	g.draw()

	want := "Score: 0"
	for i, r := range want {
		got, _, _, _ := screen.GetContent(1+i, 0)
		if got != r {
			t.Fatalf("status[%d] = %q, want %q", i, got, r)
		}
	}
	if got, _, _, _ := screen.GetContent(1, 1); got != draw.BlockUpperHalf {
		t.Fatalf("playfield cell = %q, want half block", got)
	}
}

func TestGameOverShowsEndPanel(t *testing.T) {
	g, _, sound := newTestGame(t)
	g.handleEvent(key(' '))
	g.session.End()

	if g.phase != phaseEnded {
		t.Fatalf("phase = %v, want ended", g.phase)
	}
	if sound.gameOver != 1 {
		t.Fatalf("game over sounds = %d, want 1", sound.gameOver)
	}

	// The end panel accepts a restart
	g.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if g.phase != phasePlaying {
		t.Fatal("enter should restart")
	}
}

func TestHighScoreFlagOnlyAfterEnd(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.handleEvent(key(' '))

	g.HighScoreChanged(100)
	if g.newHigh {
		t.Fatal("high score during play flagged as new")
	}
	g.session.End()
	g.phase = phasePlaying
	g.HighScoreChanged(100)
	if !g.newHigh {
		t.Fatal("high score after end not flagged")
	}
}
