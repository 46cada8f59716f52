// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Frame rate shared by every frontend that drives its own cadence.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal render limits.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// SSH lobby timing and limits.
const (
	ServerTickTime           = 100 * time.Millisecond
	InactivityWarnUser       = 60.0  // Seconds without input before the warning screen
	InactivityDisconnectUser = 120.0 // Seconds without input before disconnect
	ShutdownDisplaySeconds   = 5.0
	TopScoresCount           = 5
)

// Spawn policy names accepted in Tuning.SpawnPolicy.
const (
	PolicyEscalating = "escalating"
	PolicyFixed      = "fixed"
)

// Tuning holds every gameplay constant. Zero-valued fields in a loaded file
// keep their defaults.
type Tuning struct {
	// Playfield, in logical units
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Player and projectiles
	PlayerRadius     float64 `yaml:"playerRadius"`
	ProjectileRadius float64 `yaml:"projectileRadius"`
	ProjectileSpeed  float64 `yaml:"projectileSpeed"`

	// Enemies
	EnemyMinRadius float64 `yaml:"enemyMinRadius"`
	EnemyMaxRadius float64 `yaml:"enemyMaxRadius"`
	EnemySpeed     float64 `yaml:"enemySpeed"`

	// Spawning
	SpawnPolicy   string        `yaml:"spawnPolicy"`   // "escalating" or "fixed"
	BaseInterval  int           `yaml:"baseInterval"`  // Ticks between spawns at difficulty 0
	MaxDifficulty int           `yaml:"maxDifficulty"` // Difficulty cap
	FixedInterval time.Duration `yaml:"fixedInterval"` // Wall-clock interval for the fixed policy

	// Collisions and scoring
	HitTolerance float64 `yaml:"hitTolerance"` // Gap below which two circles touch
	Damage       float64 `yaml:"damage"`       // Radius removed per hit
	ShrinkFloor  float64 `yaml:"shrinkFloor"`  // An enemy survives a hit only if its new radius exceeds this
	ShrinkScore  int     `yaml:"shrinkScore"`
	DestroyScore int     `yaml:"destroyScore"`

	// Particles
	ParticleMaxRadius float64 `yaml:"particleMaxRadius"`
	ParticleMaxSpeed  float64 `yaml:"particleMaxSpeed"`
	ParticleFade      float64 `yaml:"particleFade"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Width:  960,
		Height: 600,

		PlayerRadius:     15,
		ProjectileRadius: 5,
		ProjectileSpeed:  5,

		EnemyMinRadius: 6,
		EnemyMaxRadius: 30,
		EnemySpeed:     1,

		SpawnPolicy:   PolicyEscalating,
		BaseInterval:  60,
		MaxDifficulty: 30,
		FixedInterval: time.Second,

		HitTolerance: 1,
		Damage:       10,
		ShrinkFloor:  10,
		ShrinkScore:  250,
		DestroyScore: 100,

		ParticleMaxRadius: 2,
		ParticleMaxSpeed:  5,
		ParticleFade:      0.01,
	}
}

// Load reads a YAML tuning file on top of the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Default(), fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate reports the first inconsistent setting.
func (t Tuning) Validate() error {
	switch {
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("playfield %vx%v must be positive", t.Width, t.Height)
	case t.PlayerRadius <= 0 || t.ProjectileRadius <= 0:
		return errors.New("player and projectile radius must be positive")
	case t.EnemyMinRadius <= 0 || t.EnemyMaxRadius < t.EnemyMinRadius:
		return fmt.Errorf("enemy radius range [%v,%v] is invalid", t.EnemyMinRadius, t.EnemyMaxRadius)
	case t.SpawnPolicy != PolicyEscalating && t.SpawnPolicy != PolicyFixed:
		return fmt.Errorf("unknown spawn policy %q", t.SpawnPolicy)
	case t.BaseInterval <= 0 || t.MaxDifficulty < 0:
		return errors.New("spawn interval must be positive and difficulty cap non-negative")
	case t.BaseInterval-t.MaxDifficulty < 1:
		return fmt.Errorf("baseInterval %d - maxDifficulty %d leaves no interval", t.BaseInterval, t.MaxDifficulty)
	case t.SpawnPolicy == PolicyFixed && t.FixedInterval <= 0:
		return errors.New("fixedInterval must be positive")
	case t.Damage <= 0 || t.ShrinkFloor < 0:
		return errors.New("damage must be positive and shrink floor non-negative")
	case t.ParticleFade <= 0:
		return errors.New("particleFade must be positive")
	}
	return nil
}
