package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/circle-shooter/internal/loop/server"
	"github.com/tomz197/circle-shooter/internal/score"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// runClient runs c in the background; the channel receives Run's result.
func runClient(t *testing.T, c *Client) chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- c.Run() }()
	return done
}

func waitDone(t *testing.T, done chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop")
	}
}

func TestClientStartAndQuit(t *testing.T) {
	gs := server.NewServer(score.NewBoard(score.NewMemoryStore()))
	pr, pw := io.Pipe()
	var out bytes.Buffer

	c := NewClient(gs, bufio.NewReader(pr), &out, ClientOptions{
		TermSizeFunc: fixedSize(80, 25),
		Username:     "ann",
	})
	done := runClient(t, c)

	pw.Write([]byte(" "))
	time.Sleep(100 * time.Millisecond)
	pw.Write([]byte("q"))
	waitDone(t, done)

	if c.session.ID() == "" {
		t.Fatal("space did not start a session")
	}
	if c.session.Running() {
		t.Fatal("session should be ended after quitting")
	}
	text := out.String()
	for _, want := range []string{"Score:", "High:", "\033[?1000h", "\033[?1000l"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestClientStopsOnEOF(t *testing.T) {
	gs := server.NewServer(nil)
	pr, pw := io.Pipe()
	c := NewClient(gs, bufio.NewReader(pr), io.Discard, ClientOptions{TermSizeFunc: fixedSize(80, 25)})
	done := runClient(t, c)

	pw.Close()
	waitDone(t, done)
}

func TestGameOverMovesToEndPanel(t *testing.T) {
	gs := server.NewServer(score.NewBoard(score.NewMemoryStore()))
	pr, _ := io.Pipe()
	c := NewClient(gs, bufio.NewReader(pr), io.Discard, ClientOptions{TermSizeFunc: fixedSize(80, 25)})

	c.startGame()
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("state = %v, want playing", c.state.GameState)
	}
	c.session.End()
	if c.state.GameState != GameStateEnded {
		t.Fatalf("state = %v, want ended", c.state.GameState)
	}
	if c.state.FinalScore != 0 {
		t.Fatalf("final = %d, want 0", c.state.FinalScore)
	}
}

func TestShutdownEventEndsSession(t *testing.T) {
	gs := server.NewServer(nil)
	pr, _ := io.Pipe()
	c := NewClient(gs, bufio.NewReader(pr), io.Discard, ClientOptions{TermSizeFunc: fixedSize(80, 25)})
	c.startGame()

	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	if c.state.GameState != GameStateShutdown {
		t.Fatalf("state = %v, want shutdown", c.state.GameState)
	}
	if c.session.Running() {
		t.Fatal("session should end on shutdown")
	}
}
