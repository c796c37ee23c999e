// Package canvas provides overlay drawing for the page canvas.
package canvas

import (
	"image"
	"image/color"
	"strconv"

	"pdf-blocks/pkg/colorutil"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// drawBlockOverlays outlines every candidate block, using green for
// selected blocks and red for the rest, with the 1-based block number
// in the top-left corner.
func (pc *PageCanvas) drawBlockOverlays(output *image.RGBA) {
	zoom := pc.vp.Zoom
	for _, b := range pc.blocks {
		col := colorutil.Red
		if pc.selection != nil && pc.selection.Has(b.Index) {
			col = colorutil.Green
		}

		x1 := int(b.BBox.X0 * zoom)
		y1 := int(b.BBox.Y0 * zoom)
		x2 := int(b.BBox.X1 * zoom)
		y2 := int(b.BBox.Y1 * zoom)

		drawRectOutline(output, x1, y1, x2, y2, col)
		drawLabel(output, strconv.Itoa(b.Index+1), x1+3, y1+3, col, labelScale(zoom))
	}
}

func labelScale(zoom float64) int {
	scale := int(zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 4 {
		scale = 4
	}
	return scale
}

// drawRectOutline draws a 2px rectangle outline, clipped to the image.
func drawRectOutline(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	for t := 0; t < 2; t++ {
		drawHLine(img, x1, x2, y1+t, col)
		drawHLine(img, x1, x2, y2-t, col)
		drawVLine(img, x1+t, y1, y2, col)
		drawVLine(img, x2-t, y1, y2, col)
	}
}

func drawHLine(img *image.RGBA, x1, x2, y int, col color.RGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := max(x1, b.Min.X); x <= min(x2, b.Max.X-1); x++ {
		img.SetRGBA(x, y, col)
	}
}

func drawVLine(img *image.RGBA, x, y1, y2 int, col color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := max(y1, b.Min.Y); y <= min(y2, b.Max.Y-1); y++ {
		img.SetRGBA(x, y, col)
	}
}

// drawLabel renders a decimal label with the 3x5 pixel font at the
// given scale.
func drawLabel(img *image.RGBA, text string, x, y int, col color.RGBA, scale int) {
	cx := x
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			cx += 4 * scale
			continue
		}
		pattern := digitPatterns[ch-'0']
		for row := 0; row < 5; row++ {
			for bit := 0; bit < 3; bit++ {
				if pattern[row]&(1<<(2-bit)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := cx + bit*scale + dx
						py := y + row*scale + dy
						if image.Pt(px, py).In(img.Bounds()) {
							img.SetRGBA(px, py, col)
						}
					}
				}
			}
		}
		cx += 4 * scale
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
