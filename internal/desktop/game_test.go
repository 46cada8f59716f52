package desktop

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circle-shooter/internal/physics"
)

type countingSound struct {
	shots, gameOver int
}

func (c *countingSound) PlayShot()     { c.shots++ }
func (c *countingSound) PlayHit(bool)  {}
func (c *countingSound) PlayGameOver() { c.gameOver++ }

func TestQuitTerminates(t *testing.T) {
	g := NewGame(Options{})
	if err := g.update(frameInput{quit: true}); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("update = %v, want ebiten.Termination", err)
	}
}

func TestClickStartsThenFires(t *testing.T) {
	sound := &countingSound{}
	g := NewGame(Options{Sound: sound})
	click := frameInput{clicks: []physics.Vector2{physics.Vec(100, 100)}}

	if err := g.update(click); err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.phase != phasePlaying || sound.shots != 0 {
		t.Fatalf("phase = %v shots = %d, want playing with no shot", g.phase, sound.shots)
	}

	if err := g.update(click); err != nil {
		t.Fatalf("update: %v", err)
	}
	if sound.shots != 1 {
		t.Fatalf("shots = %d, want 1", sound.shots)
	}
	// player plus the new projectile
	if got := len(g.session.Snapshot().Shapes); got != 2 {
		t.Fatalf("shapes = %d, want 2", got)
	}
}

func TestClickOutsidePlayfieldIgnored(t *testing.T) {
	sound := &countingSound{}
	g := NewGame(Options{Sound: sound})
	g.update(frameInput{activate: true})

	g.update(frameInput{clicks: []physics.Vector2{physics.Vec(-5, 10)}})
	if sound.shots != 0 {
		t.Fatalf("shots = %d, want 0", sound.shots)
	}
}

func TestPanelFollowsPhase(t *testing.T) {
	sound := &countingSound{}
	g := NewGame(Options{Sound: sound})
	if lines := g.panelLines(g.session.Snapshot()); lines[0] != "CIRCLE SHOOTER" {
		t.Fatalf("start panel = %q", lines[0])
	}

	g.update(frameInput{activate: true})
	if lines := g.panelLines(g.session.Snapshot()); lines != nil {
		t.Fatalf("panel while playing = %q, want none", lines)
	}

	g.session.End()
	lines := g.panelLines(g.session.Snapshot())
	if lines == nil || lines[0] != "GAME OVER" {
		t.Fatalf("end panel = %q", lines)
	}
	if lines[2] != "Final score: 0" {
		t.Fatalf("final line = %q", lines[2])
	}
	if sound.gameOver != 1 {
		t.Fatalf("game over sounds = %d, want 1", sound.gameOver)
	}
}

func TestToRGBAClampsAlpha(t *testing.T) {
	c := toRGBA(colorful.Color{R: 1}, 1.5)
	if c.A != 255 || c.R != 255 {
		t.Fatalf("color = %+v", c)
	}
	if got := toRGBA(colorful.Color{R: 1}, -0.2).A; got != 0 {
		t.Fatalf("alpha = %d, want 0", got)
	}
}
