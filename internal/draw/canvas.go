package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// cell is one terminal character: two vertically stacked sub-pixels.
type cell struct {
	top    colorful.Color
	bottom colorful.Color
}

// Canvas is a colour drawing buffer with 2x vertical resolution using the
// upper half-block character (foreground = top pixel, background = bottom).
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Last rendered frame, used to only emit changed cells
	prev  []cell
	valid []bool

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.valid = make([]bool, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear paints every pixel with bg.
func (c *Canvas) Clear(bg colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = bg
	}
}

// Fade blends every pixel toward bg by alpha, leaving a fading trail of the
// previous frame. Fade(bg, 1) is equivalent to Clear(bg).
func (c *Canvas) Fade(bg colorful.Color, alpha float64) {
	if alpha >= 1 {
		c.Clear(bg)
		return
	}
	for i, p := range c.pixels {
		c.pixels[i] = p.BlendRgb(bg, alpha).Clamped()
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the colour of a sub-pixel, black when out of range.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return colorful.Color{}
}

// FillCircle fills a circle given in logical coordinates. The circle becomes
// an ellipse in pixel space when the axes scale differently. Circles smaller
// than a pixel still light the pixel under their center.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color) {
	px := cx * c.scaleX
	py := cy * c.scaleY
	rx := r * c.scaleX
	ry := r * c.scaleY

	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Floor(px)), int(math.Floor(py)), col)
		return
	}

	yStart := int(math.Floor(py - ry))
	yEnd := int(math.Ceil(py + ry))
	xStart := int(math.Floor(px - rx))
	xEnd := int(math.Ceil(px + rx))

	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - py) / ry
		for x := xStart; x <= xEnd; x++ {
			dx := (float64(x) + 0.5 - px) / rx
			if dx*dx+dy*dy <= 1 {
				c.setPixel(x, y, col)
			}
		}
	}
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.valid)
}

// MarkTextDirty marks n cells starting at the 1-based canvas position
// (col, row) as overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.valid[y*c.termWidth+x] = false
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var lastFg, lastBg colorful.Color
	haveColor := false
	lastIdx := -2

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			if c.valid[idx] && c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur
			c.valid[idx] = true

			if idx != lastIdx+1 || col == 0 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			lastIdx = idx

			if !haveColor || cur.top != lastFg {
				c.writeColor(38, cur.top)
				lastFg = cur.top
			}
			if !haveColor || cur.bottom != lastBg {
				c.writeColor(48, cur.bottom)
				lastBg = cur.bottom
			}
			haveColor = true
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	if haveColor {
		c.renderBuf.WriteString(ColorReset)
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends a 24-bit SGR colour; layer is 38 (foreground) or 48 (background).
func (c *Canvas) writeColor(layer int, col colorful.Color) {
	r, g, b := col.Clamped().RGB255()
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(b), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + bar + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + bar + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + bar)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal position (as reported by a
// mouse event) to the logical coordinates at the center of that cell. The
// canvas offset is removed first. ok is false outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	col -= c.offsetCol
	row -= c.offsetRow
	if col < 1 || col > c.termWidth || row < 1 || row > c.termHeight {
		return 0, 0, false
	}
	x = (float64(col-1) + 0.5) / c.scaleX
	y = (float64(row-1)*2 + 1) / c.scaleY
	return x, y, true
}
