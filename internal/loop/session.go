package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/object"
	"github.com/tomz197/circle-shooter/internal/physics"
	"github.com/tomz197/circle-shooter/internal/score"
	"github.com/tomz197/circle-shooter/internal/spawn"
)

// Options configures a Session. Zero values pick the defaults.
type Options struct {
	Tuning   *config.Tuning   // Default: config.Default()
	Board    *score.Board     // Default: in-memory board
	Listener Listener         // Default: NopListener
	Rand     object.Rand      // Default: time-seeded *rand.Rand
	Clock    func() time.Time // Default: time.Now; only the fixed spawn policy reads it
	Policy   spawn.Policy     // Default: built from Tuning.SpawnPolicy
}

// Session holds the world of one player and exposes the commands consumed by
// the UI shell. It is not safe for concurrent use: the shell must serialise
// Start, End, Fire and Tick onto one goroutine.
type Session struct {
	id         string
	tuning     config.Tuning
	world      WorldState
	spawner    *spawn.Controller
	collisions *CollisionSystem
	board      *score.Board
	listener   Listener
	clock      func() time.Time

	fires     []physics.Vector2 // Queued fire targets, applied at the next tick
	running   bool
	ended     bool
	highScore int
	ticks     int
	lastTick  time.Time
	started   time.Time
	snapshot  *Snapshot
}

// NewSession creates an idle session: the player stands at the center and
// nothing moves until Start.
func NewSession(opts Options) *Session {
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	board := opts.Board
	if board == nil {
		board = score.NewBoard(nil)
	}
	listener := opts.Listener
	if listener == nil {
		listener = NopListener{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	policy := opts.Policy
	if policy == nil {
		policy = newPolicy(tuning)
	}

	screen := object.Screen{Width: tuning.Width, Height: tuning.Height}
	placement := spawn.Placement{
		MinRadius: tuning.EnemyMinRadius,
		MaxRadius: tuning.EnemyMaxRadius,
		Speed:     tuning.EnemySpeed,
	}

	s := &Session{
		tuning:     tuning,
		world:      WorldState{Screen: screen},
		spawner:    spawn.NewController(policy, placement, screen, rng),
		collisions: NewCollisionSystem(tuning, rng),
		board:      board,
		listener:   listener,
		clock:      clock,
	}
	s.world.Reset(tuning.PlayerRadius)
	s.highScore = board.High()
	s.snapshot = s.buildSnapshot()
	return s
}

func newPolicy(t config.Tuning) spawn.Policy {
	if t.SpawnPolicy == config.PolicyFixed {
		return spawn.NewFixedInterval(t.FixedInterval)
	}
	return spawn.NewEscalating(t.BaseInterval, t.MaxDifficulty)
}

// Start begins a new play-through: score and difficulty return to 0, all
// entities are cleared and a fresh player is placed at the center.
func (s *Session) Start() {
	s.id = uuid.NewString()
	s.world.Reset(s.tuning.PlayerRadius)
	s.spawner.Reset()
	s.fires = s.fires[:0]
	s.ticks = 0
	s.running = true
	s.ended = false
	s.started = s.clock()
	s.lastTick = s.started
	s.highScore = s.board.High()

	log.Info("Session started", "session", s.id, "high", s.highScore)

	s.listener.ScoreChanged(0)
	s.listener.HighScoreChanged(s.highScore)
	s.snapshot = s.buildSnapshot()
}

// End stops the play-through and records the final score against the high
// score. Calling End on a session that is not running does nothing.
func (s *Session) End() {
	if !s.running {
		return
	}
	s.running = false
	s.ended = true
	s.fires = s.fires[:0]

	final := s.world.Score
	high, updated := s.board.Submit(final)
	s.highScore = high

	log.Info("Session ended",
		"session", s.id,
		"score", final,
		"high", high,
		"difficulty", s.spawner.DifficultyLevel(),
		"ticks", s.ticks,
		"duration", s.clock().Sub(s.started).Round(time.Millisecond),
	)

	if updated {
		s.listener.HighScoreChanged(high)
	}
	s.listener.GameOver(final, high)
	s.snapshot = s.buildSnapshot()
}

// Fire queues a shot from the playfield center toward target. The projectile
// appears at the start of the next tick. Ignored while not running.
func (s *Session) Fire(target physics.Vector2) {
	if !s.running {
		return
	}
	s.fires = append(s.fires, target)
}

// ID returns the identifier of the current play-through, empty before Start.
func (s *Session) ID() string { return s.id }

// Running reports whether ticks currently advance the world.
func (s *Session) Running() bool { return s.running }

// Ended reports whether a play-through has finished and not been restarted.
func (s *Session) Ended() bool { return s.ended }

// Score returns the score of the current or last play-through.
func (s *Session) Score() int { return s.world.Score }

// HighScore returns the high score as last read from or written to the board.
func (s *Session) HighScore() int { return s.highScore }

// DifficultyLevel returns the spawn difficulty of the current play-through.
func (s *Session) DifficultyLevel() int { return s.spawner.DifficultyLevel() }

// Screen returns the playfield dimensions.
func (s *Session) Screen() object.Screen { return s.world.Screen }

// Snapshot returns the most recent render snapshot.
func (s *Session) Snapshot() *Snapshot { return s.snapshot }

func (s *Session) buildSnapshot() *Snapshot {
	return &Snapshot{
		Shapes:     s.world.shapes(),
		Screen:     s.world.Screen,
		Score:      s.world.Score,
		HighScore:  s.highScore,
		Difficulty: s.spawner.DifficultyLevel(),
		Running:    s.running,
		Ended:      s.ended,
	}
}
