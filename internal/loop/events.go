package loop

import (
	"github.com/tomz197/circle-shooter/internal/object"
)

// Listener receives the side effects a UI shell renders as text, panels or sound.
// Calls happen on the goroutine that drives the session.
type Listener interface {
	ScoreChanged(score int)
	HighScoreChanged(high int)
	EnemyHit(destroyed bool)
	GameOver(final, high int)
}

// NopListener ignores every event. Embed it to implement only some methods.
type NopListener struct{}

func (NopListener) ScoreChanged(int)     {}
func (NopListener) HighScoreChanged(int) {}
func (NopListener) EnemyHit(bool)        {}
func (NopListener) GameOver(int, int)    {}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Shapes     []object.Shape
	Screen     object.Screen
	Score      int
	HighScore  int
	Difficulty int
	Running    bool
	Ended      bool // The last play-through ended; show the end-of-game panel
}
