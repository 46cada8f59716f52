package web

import (
	"encoding/json"
	"fmt"
)

// Message types. Clients send start and fire; the server sends the rest.
const (
	MsgStart    = "start"
	MsgFire     = "fire"
	MsgWelcome  = "welcome"
	MsgState    = "state"
	MsgGameOver = "over"
)

// Envelope wraps every frame on the socket.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// Fire asks for a projectile aimed at a playfield point.
type Fire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Welcome is the first frame on a new connection.
type Welcome struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	TickHz int     `json:"tickHz"`
	High   int     `json:"high"`
}

// State is one rendered frame.
type State struct {
	Shapes     []ShapeFrame `json:"shapes"`
	Score      int          `json:"score"`
	High       int          `json:"high"`
	Difficulty int          `json:"difficulty"`
	Running    bool         `json:"running"`
}

// ShapeFrame is a circle to paint.
type ShapeFrame struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"c"`
	Alpha float64 `json:"a"`
}

// GameOver reports the end of a play-through.
type GameOver struct {
	Final   int  `json:"final"`
	High    int  `json:"high"`
	NewHigh bool `json:"newHigh"`
}

// Encode wraps payload in an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty message type")
	}
	var raw json.RawMessage
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t, err)
		}
		raw = pb
	}
	return json.Marshal(Envelope{T: t, P: raw})
}

// DecodeEnvelope parses the outer frame.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty frame")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode: %w", err)
	}
	return e, nil
}

// DecodePayload parses the payload of env into a T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", env.T, err)
	}
	return out, nil
}
