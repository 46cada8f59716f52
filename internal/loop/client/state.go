package client

import (
	"time"

	"github.com/tomz197/circle-shooter/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateEnded                     // Enemy reached the player, show final score
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state. The game itself lives in the
// client's loop.Session.
type ClientState struct {
	Input         input.Input
	GameState     GameState     // This client's game phase
	FinalScore    int           // Score of the last finished play-through
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	// Transition tracking for full-screen clears
	prevGameState GameState
	wasInactive   bool

	// Announcement of another player's high score
	announcement  string
	announceTimer float64
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
