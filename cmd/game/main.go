package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/circle-shooter/internal/audio"
	"github.com/tomz197/circle-shooter/internal/config"
	"github.com/tomz197/circle-shooter/internal/tui"
)

func main() {
	tuning, board := config.Bootstrap()

	// The screen owns the terminal, so logs go to a file when one is named
	if path := config.GetEnv("SHOOTER_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("Failed to open log file", "path", path, "err", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("Failed to create screen", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("Failed to initialize screen", "err", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Warn("Sound disabled", "err", err)
	}
	defer sound.Cleanup()

	tui.NewGame(screen, tui.Options{
		Tuning: &tuning,
		Board:  board,
		Sound:  sound,
	}).Run()
}
