package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circle-shooter/internal/object"
	"github.com/tomz197/circle-shooter/internal/physics"
)

var red = colorful.Color{R: 1}

func TestFillCircle(t *testing.T) {
	// 1 logical unit per pixel on both axes
	c := NewScaledCanvas(40, 20, 40, 40)
	c.Clear(Background)
	c.FillCircle(20, 20, 5, red)

	if got := c.Pixel(20, 20); got != red {
		t.Fatalf("center pixel = %v, want red", got)
	}
	if got := c.Pixel(20, 10); got != Background {
		t.Fatalf("pixel outside radius = %v, want background", got)
	}
	if got := c.Pixel(23, 22); got != red {
		t.Fatalf("pixel inside radius = %v, want red", got)
	}
}

func TestFillCircleTiny(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Clear(Background)
	c.FillCircle(55, 55, 1, red)

	if got := c.Pixel(5, 5); got != red {
		t.Fatalf("sub-pixel circle did not light its pixel")
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.Clear(Background)

	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockUpperHalf)); got != 50 {
		t.Fatalf("first render cells = %d, want 50", got)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %d bytes", out.Len())
	}

	c.FillCircle(2.5, 2.5, 0.4, red)
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockUpperHalf)); got != 1 {
		t.Fatalf("changed cells = %d, want 1", got)
	}
	if !strings.Contains(out.String(), "\033[38;2;255;0;0m") {
		t.Fatalf("missing truecolor foreground in %q", out.String())
	}

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockUpperHalf)); got != 50 {
		t.Fatalf("forced redraw cells = %d, want 50", got)
	}

	c.MarkTextDirty(3, 2, 4)
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockUpperHalf)); got != 4 {
		t.Fatalf("dirty text cells = %d, want 4", got)
	}
}

func TestFade(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.Clear(colorful.Color{R: 1, G: 1, B: 1})
	c.Fade(Background, 0.5)

	got := c.Pixel(0, 0)
	if got.R < 0.49 || got.R > 0.51 {
		t.Fatalf("faded red = %v, want 0.5", got.R)
	}
	c.Fade(Background, 1)
	if c.Pixel(1, 1) != Background {
		t.Fatal("full fade should clear")
	}
}

func TestTrailFadesSlowly(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.Clear(colorful.Color{R: 1, G: 1, B: 1})

	c.Fade(Background, TrailAlpha)
	if got := c.Pixel(0, 0).R; got < 0.89 || got > 0.91 {
		t.Fatalf("after one frame red = %v, want 0.9", got)
	}
	for i := 0; i < 9; i++ {
		c.Fade(Background, TrailAlpha)
	}
	// 0.9^10 of the colour is still visible after ten frames
	if got := c.Pixel(0, 0).R; got < 0.34 || got > 0.36 {
		t.Fatalf("after ten frames red = %v, want 0.35", got)
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(5, 2)

	x, y, ok := c.TerminalToLogical(6, 3)
	if !ok {
		t.Fatal("top-left cell reported outside")
	}
	if x != 5 || y != 10 {
		t.Fatalf("logical = (%v, %v), want (5, 10)", x, y)
	}

	if _, _, ok := c.TerminalToLogical(5, 3); ok {
		t.Fatal("column inside the offset should be outside the canvas")
	}
	if _, _, ok := c.TerminalToLogical(86, 32); ok {
		t.Fatal("column past the canvas should be outside")
	}

	col, row := c.LogicalToTerminal(x, y)
	if col != 1 || row != 1 {
		t.Fatalf("round trip = (%d, %d), want (1, 1)", col, row)
	}
}

func TestDrawShapesBlendsAlpha(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.Clear(Background)
	DrawShapes(c, []object.Shape{
		{Center: physics.Vec(5, 5), Radius: 2, Color: red, Alpha: 0.5},
	})

	got := c.Pixel(5, 5)
	if got.R < 0.49 || got.R > 0.51 {
		t.Fatalf("half-faded red = %v, want 0.5", got.R)
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("write before flush reached the underlying writer")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got, want := out.String(), "\033[2;3Hhi"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset after flush")
	}
}

func TestFitPlayfield(t *testing.T) {
	tests := []struct {
		name         string
		termW, termH int
		want         [4]int // width, height, offset col, offset row
	}{
		// 960x600 is 1.6:1; 80 cols hold 2*25 = 50 sub-rows at that ratio
		{"wide terminal", 120, 25, [4]int{80, 25, 20, 0}},
		{"tall terminal", 80, 40, [4]int{80, 25, 0, 7}},
		{"huge terminal", 400, 100, [4]int{192, 60, 104, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, col, row := FitPlayfield(tt.termW, tt.termH, 200, 60, 960, 600)
			if got := [4]int{w, h, col, row}; got != tt.want {
				t.Fatalf("fit = %v, want %v", got, tt.want)
			}
		})
	}
}
