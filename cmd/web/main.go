package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/circle-shooter/internal/config"
	"github.com/tomz197/circle-shooter/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = 8080
)

func main() {
	tuning, board := config.Bootstrap()

	addr := config.ListenAddr("WEB_HOST", defaultHost, "WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	srv := &http.Server{
		Addr: addr,
		Handler: web.NewServer(web.Options{
			Tuning:  &tuning,
			Board:   board,
			SSHHost: sshHost,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting web server", "addr", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", "err", err)
		}
	}()

	<-done
	log.Info("Shutting down web server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", "err", err)
	}
}
