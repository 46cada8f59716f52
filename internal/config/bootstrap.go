package config

import (
	"github.com/charmbracelet/log"

	loopconfig "github.com/tomz197/circle-shooter/internal/loop/config"
	"github.com/tomz197/circle-shooter/internal/score"
)

// Environment variables read by Bootstrap.
const (
	EnvTuningFile = "SHOOTER_CONFIG"      // YAML tuning file; empty keeps the defaults
	EnvScoreStore = "SHOOTER_SCORE_STORE" // "disk" (default) or "memory"
	EnvAppName    = "SHOOTER_APP_NAME"    // gdata application name for the disk store
	EnvLogLevel   = "SHOOTER_LOG_LEVEL"   // charmbracelet/log level name

	DefaultAppName = "circle-shooter"
)

// Bootstrap prepares what every frontend needs: .env variables, the log
// level, gameplay tuning and the high-score board. Failures are logged and
// replaced by defaults, so a frontend can always start.
func Bootstrap() (loopconfig.Tuning, *score.Board) {
	if err := LoadDotEnv(); err != nil {
		log.Warn("Ignoring .env", "err", err)
	}

	if lvl := GetEnv(EnvLogLevel, ""); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			log.Warn("Unknown log level", "level", lvl)
		} else {
			log.SetLevel(level)
		}
	}

	tuning, err := loopconfig.Load(GetEnv(EnvTuningFile, ""))
	if err != nil {
		log.Warn("Using default tuning", "err", err)
	}

	return tuning, OpenBoard()
}

// OpenBoard opens the high-score board selected by SHOOTER_SCORE_STORE.
// If disk storage cannot be opened, scores are kept in memory.
func OpenBoard() *score.Board {
	if GetEnv(EnvScoreStore, "disk") == "memory" {
		return score.NewBoard(nil)
	}
	appName := GetEnv(EnvAppName, DefaultAppName)
	store, err := score.OpenDataStore(appName)
	if err != nil {
		log.Warn("High scores will not persist", "err", err)
		return score.NewBoard(nil)
	}
	return score.NewBoard(store)
}
