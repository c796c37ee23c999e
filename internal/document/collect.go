package document

import (
	"seehuhn.de/go/pdf"

	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/colorutil"
	"pdf-blocks/pkg/geometry"
)

// gstate is the subset of the PDF graphics state the collector cares
// about. Colors are always set (the PDF default is black); whether a
// drawing ends up with a stroke or fill color is decided by the painting
// operator, not by the state.
type gstate struct {
	ctm         geometry.AffineTransform
	lineWidth   float64
	strokeColor drawing.RGB
	fillColor   drawing.RGB
}

// collector builds drawing primitives from a stream of content-stream
// operators. Path construction operators accumulate segments with the CTM
// applied; painting operators emit one Drawing per painted path.
type collector struct {
	drawings []drawing.Drawing

	state gstate
	stack []gstate

	segments []drawing.Segment
	current  geometry.Point2D
	subStart geometry.Point2D
}

// newCollector creates a collector whose base transform maps PDF user
// space onto page space (top-left origin, y growing downwards).
func newCollector(base geometry.AffineTransform) *collector {
	return &collector{
		state: gstate{
			ctm:       base,
			lineWidth: 1,
		},
	}
}

// num extracts a float64 from a PDF object, accepting the numeric types
// that appear in content streams.
func num(obj pdf.Object) (float64, bool) {
	switch x := obj.(type) {
	case pdf.Integer:
		return float64(x), true
	case pdf.Real:
		return float64(x), true
	case pdf.Number:
		return float64(x), true
	default:
		return 0, false
	}
}

// nums extracts n numeric arguments. Returns false if any is missing or
// non-numeric; malformed operators are skipped, never fatal.
func nums(args []pdf.Object, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := num(args[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// pt maps a user-space coordinate pair into page space.
func (c *collector) pt(x, y float64) geometry.Point2D {
	return c.state.ctm.Apply(geometry.Point2D{X: x, Y: y})
}

// HandleOp processes a single content-stream operator.
func (c *collector) HandleOp(op string, args []pdf.Object) {
	switch op {

	// graphics state
	case "q":
		c.stack = append(c.stack, c.state)
	case "Q":
		if n := len(c.stack); n > 0 {
			c.state = c.stack[n-1]
			c.stack = c.stack[:n-1]
		}
	case "cm":
		if v, ok := nums(args, 6); ok {
			m := geometry.AffineTransform{
				A: v[0], B: v[2], TX: v[4],
				C: v[1], D: v[3], TY: v[5],
			}
			c.state.ctm = c.state.ctm.Compose(m)
		}
	case "w":
		if v, ok := nums(args, 1); ok && v[0] >= 0 {
			c.state.lineWidth = v[0]
		}

	// colors; spaces beyond DeviceGray/RGB/CMYK keep the previous color
	case "G":
		if v, ok := nums(args, 1); ok {
			c.state.strokeColor = drawing.RGB{R: v[0], G: v[0], B: v[0]}
		}
	case "g":
		if v, ok := nums(args, 1); ok {
			c.state.fillColor = drawing.RGB{R: v[0], G: v[0], B: v[0]}
		}
	case "RG":
		if v, ok := nums(args, 3); ok {
			c.state.strokeColor = drawing.RGB{R: v[0], G: v[1], B: v[2]}
		}
	case "rg":
		if v, ok := nums(args, 3); ok {
			c.state.fillColor = drawing.RGB{R: v[0], G: v[1], B: v[2]}
		}
	case "K":
		if v, ok := nums(args, 4); ok {
			r, g, b := colorutil.CMYKToRGB(v[0], v[1], v[2], v[3])
			c.state.strokeColor = drawing.RGB{R: r, G: g, B: b}
		}
	case "k":
		if v, ok := nums(args, 4); ok {
			r, g, b := colorutil.CMYKToRGB(v[0], v[1], v[2], v[3])
			c.state.fillColor = drawing.RGB{R: r, G: g, B: b}
		}

	// path construction
	case "m":
		if v, ok := nums(args, 2); ok {
			p := c.pt(v[0], v[1])
			c.segments = append(c.segments, drawing.Segment{Op: "M", Points: []geometry.Point2D{p}})
			c.current = p
			c.subStart = p
		}
	case "l":
		if v, ok := nums(args, 2); ok {
			p := c.pt(v[0], v[1])
			c.segments = append(c.segments, drawing.Segment{Op: "L", Points: []geometry.Point2D{p}})
			c.current = p
		}
	case "c":
		if v, ok := nums(args, 6); ok {
			pts := []geometry.Point2D{c.pt(v[0], v[1]), c.pt(v[2], v[3]), c.pt(v[4], v[5])}
			c.segments = append(c.segments, drawing.Segment{Op: "C", Points: pts})
			c.current = pts[2]
		}
	case "v": // first control point coincides with the current point
		if v, ok := nums(args, 4); ok {
			pts := []geometry.Point2D{c.current, c.pt(v[0], v[1]), c.pt(v[2], v[3])}
			c.segments = append(c.segments, drawing.Segment{Op: "C", Points: pts})
			c.current = pts[2]
		}
	case "y": // second control point coincides with the end point
		if v, ok := nums(args, 4); ok {
			end := c.pt(v[2], v[3])
			pts := []geometry.Point2D{c.pt(v[0], v[1]), end, end}
			c.segments = append(c.segments, drawing.Segment{Op: "C", Points: pts})
			c.current = end
		}
	case "h":
		c.segments = append(c.segments, drawing.Segment{Op: "Z"})
		c.current = c.subStart
	case "re":
		if v, ok := nums(args, 4); ok {
			x, y, w, h := v[0], v[1], v[2], v[3]
			p0 := c.pt(x, y)
			p1 := c.pt(x+w, y)
			p2 := c.pt(x+w, y+h)
			p3 := c.pt(x, y+h)
			c.segments = append(c.segments,
				drawing.Segment{Op: "M", Points: []geometry.Point2D{p0}},
				drawing.Segment{Op: "L", Points: []geometry.Point2D{p1}},
				drawing.Segment{Op: "L", Points: []geometry.Point2D{p2}},
				drawing.Segment{Op: "L", Points: []geometry.Point2D{p3}},
				drawing.Segment{Op: "Z"})
			c.current = p0
			c.subStart = p0
		}

	// path painting
	case "S":
		c.emit(true, false)
	case "s":
		c.segments = append(c.segments, drawing.Segment{Op: "Z"})
		c.emit(true, false)
	case "f", "F", "f*":
		c.emit(false, true)
	case "B", "B*":
		c.emit(true, true)
	case "b", "b*":
		c.segments = append(c.segments, drawing.Segment{Op: "Z"})
		c.emit(true, true)
	case "n":
		c.reset()
	}
}

// emit turns the accumulated path into a Drawing. The explicit rectangle
// is the bounding box of all path points, mirroring how PDF viewers
// report per-drawing bounds.
func (c *collector) emit(stroked, filled bool) {
	defer c.reset()
	if len(c.segments) == 0 {
		return
	}

	d := drawing.Drawing{
		Segments: c.segments,
	}
	if bbox, ok := geometry.BoundingBox(d.Points()); ok {
		r := bbox
		d.Rect = &r
	}
	if stroked {
		sc := c.state.strokeColor
		d.Stroke = &sc
		d.LineWidth = c.state.lineWidth
	}
	if filled {
		fc := c.state.fillColor
		d.Fill = &fc
	}
	c.drawings = append(c.drawings, d)
}

func (c *collector) reset() {
	c.segments = nil
}
