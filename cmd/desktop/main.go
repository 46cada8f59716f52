package main

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/circle-shooter/internal/audio"
	"github.com/tomz197/circle-shooter/internal/config"
	"github.com/tomz197/circle-shooter/internal/desktop"
)

func main() {
	tuning, board := config.Bootstrap()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Warn("Sound disabled", "err", err)
	}
	defer sound.Cleanup()

	game := desktop.NewGame(desktop.Options{
		Tuning: &tuning,
		Board:  board,
		Sound:  sound,
	})
	if err := game.Run(); err != nil {
		log.Error("Game stopped", "err", err)
	}
}
