package draw

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circle-shooter/internal/object"
)

// Background is the playfield colour.
var Background = colorful.Color{}

// TrailAlpha is how much of the background is blended over the previous frame
// before drawing; lower values leave longer trails.
const TrailAlpha = 0.1

// DrawShapes fills every shape in order, pre-blending translucent shapes
// against the background since terminals have no alpha channel.
func DrawShapes(c *Canvas, shapes []object.Shape) {
	for _, s := range shapes {
		c.FillCircle(s.Center.X, s.Center.Y, s.Radius, s.Faded(Background))
	}
}
