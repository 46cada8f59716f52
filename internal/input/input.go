// Package input turns a raw terminal byte stream into per-frame key presses
// and mouse clicks.
package input

import (
	"bufio"
	"strconv"
)

// Click is a left mouse button press at a 1-based terminal position.
type Click struct {
	Col int
	Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Space   bool
	Enter   bool
	Escape  bool
	Clicks  []Click
	Pressed []byte
}

// Activated reports whether the player asked to start or restart.
func (in Input) Activated() bool {
	return in.Space || in.Enter || len(in.Clicks) > 0
}

// Stream delivers input bytes via a channel. Escape sequences split across
// reads are kept until the rest arrives.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. A trailing ESC waits one call for the rest of its sequence;
// if nothing follows it is the Escape key.
func ReadInput(s *Stream) Input {
	buf := s.pending
	held := len(buf)
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) == 1 && rest[0] == '\x1b' && (len(buf) == held || s.closed) {
		in.Escape = true
		rest = nil
	}
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	return in
}

// Parse decodes keys and SGR mouse reports from buf. An incomplete trailing
// escape sequence, including a lone ESC, is returned as rest.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ ...
			if i+2 >= len(buf) {
				return in, buf[i:]
			}
			if buf[i+2] == '<' {
				n, click, complete := parseSGRMouse(buf[i:])
				if !complete {
					return in, buf[i:]
				}
				if click != nil {
					in.Clicks = append(in.Clicks, *click)
				}
				i += n - 1
				continue
			}
			// Arrow keys and friends carry no meaning here; skip ESC [ x
			i += 2
			continue
		}
		if b == '\x1b' && i+1 == len(buf) {
			// Could be the start of a sequence split across reads
			return in, buf[i:]
		}

		in.Pressed = append(in.Pressed, b)
		applyByte(&in, b)
	}
	return in, nil
}

// parseSGRMouse decodes ESC [ < button ; col ; row (M|m). It returns the
// sequence length and a click for left-button presses.
func parseSGRMouse(seq []byte) (n int, click *Click, complete bool) {
	var fields [3]int
	field := 0
	start := 3
	for j := 3; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field > 2 {
				return j + 1, nil, true
			}
			v, err := strconv.Atoi(string(seq[start:j]))
			if err != nil {
				return j + 1, nil, true
			}
			fields[field] = v
			field++
			start = j + 1
			if c == ';' {
				continue
			}
			// Left button press without modifiers or motion
			if c == 'M' && field == 3 && fields[0] == 0 {
				return j + 1, &Click{Col: fields[1], Row: fields[2]}, true
			}
			return j + 1, nil, true
		default:
			// Malformed; drop what was read
			return j + 1, nil, true
		}
	}
	return 0, nil, false
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C in raw mode
		in.Quit = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case '\x1b':
		in.Escape = true
	}
}
