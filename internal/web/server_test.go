package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/circle-shooter/internal/loop/config"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	return ws
}

func readEnvelope(t *testing.T, ws *websocket.Conn) Envelope {
	t.Helper()
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, err := DecodeEnvelope(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func sendEnvelope(t *testing.T, ws *websocket.Conn, typ string, payload any) {
	t.Helper()
	frame, err := Encode(typ, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readUntil reads frames until one of type typ satisfies ok.
func readUntil[T any](t *testing.T, ws *websocket.Conn, typ string, ok func(T) bool) T {
	t.Helper()
	for i := 0; i < 1000; i++ {
		env := readEnvelope(t, ws)
		if env.T != typ {
			continue
		}
		p, err := DecodePayload[T](env)
		if err != nil {
			t.Fatalf("payload: %v", err)
		}
		if ok(p) {
			return p
		}
	}
	t.Fatalf("no matching %s frame", typ)
	panic("unreachable")
}

func TestServesPage(t *testing.T) {
	srv := httptest.NewServer(NewServer(Options{SSHHost: "play.example.net"}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "<canvas") {
		t.Fatal("page has no canvas")
	}
	if !strings.Contains(string(body), "ssh play.example.net") {
		t.Fatal("ssh host not substituted")
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStartAndFire(t *testing.T) {
	srv := httptest.NewServer(NewServer(Options{}).Handler())
	defer srv.Close()
	ws := dial(t, srv)

	env := readEnvelope(t, ws)
	if env.T != MsgWelcome {
		t.Fatalf("first frame = %q, want welcome", env.T)
	}
	welcome, err := DecodePayload[Welcome](env)
	if err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if welcome.Width != 960 || welcome.Height != 600 || welcome.TickHz != config.TargetFPS {
		t.Fatalf("welcome = %+v", welcome)
	}

	sendEnvelope(t, ws, MsgStart, nil)
	readUntil(t, ws, MsgState, func(s State) bool { return s.Running })

	sendEnvelope(t, ws, MsgFire, Fire{X: 100, Y: 100})
	st := readUntil(t, ws, MsgState, func(s State) bool { return len(s.Shapes) >= 2 })
	for _, s := range st.Shapes {
		if !strings.HasPrefix(s.Color, "#") || len(s.Color) != 7 {
			t.Fatalf("color = %q, want #rrggbb", s.Color)
		}
	}
}

func TestGameOverFrame(t *testing.T) {
	// A small field with fast enemies ends within a few ticks
	tuning := config.Default()
	tuning.Width, tuning.Height = 200, 200
	tuning.BaseInterval, tuning.MaxDifficulty = 2, 1
	tuning.EnemySpeed = 30

	srv := httptest.NewServer(NewServer(Options{Tuning: &tuning}).Handler())
	defer srv.Close()
	ws := dial(t, srv)
	readEnvelope(t, ws)

	sendEnvelope(t, ws, MsgStart, nil)
	over := readUntil(t, ws, MsgGameOver, func(GameOver) bool { return true })
	if over.Final != 0 || over.High != 0 || over.NewHigh {
		t.Fatalf("game over = %+v, want zero score", over)
	}

	// The connection accepts a restart
	sendEnvelope(t, ws, MsgStart, nil)
	readUntil(t, ws, MsgState, func(s State) bool { return s.Running })
}

func TestDecodePayloadRejectsEmpty(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"t":"fire"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := DecodePayload[Fire](env); err == nil {
		t.Fatal("empty fire payload decoded")
	}
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatal("empty frame decoded")
	}
	if _, err := Encode("", nil); err == nil {
		t.Fatal("untyped frame encoded")
	}
}
