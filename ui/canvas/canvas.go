// Package canvas provides a page display with pan, zoom, and block selection.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pdf-blocks/internal/block"
	"pdf-blocks/internal/drawing"
	"pdf-blocks/internal/render"
	"pdf-blocks/internal/viewport"
	"pdf-blocks/pkg/geometry"
)

// PageCanvas displays a rendered page with candidate block overlays.
// Wheel zooms around the cursor, clicks toggle block selection.
type PageCanvas struct {
	widget.BaseWidget

	drawings  []drawing.Drawing
	blocks    []block.Block
	selection *block.Selection

	vp     *viewport.Viewport
	raster *fynecanvas.Raster

	// Cached page render; invalidated on page or zoom change.
	pageImage *image.RGBA

	scroll  *zoomScroll
	content *clickableContent
	imgSize fyne.Size

	onLeftClick  func(p geometry.Point2D)
	onZoomChange func(zoom float64)
}

// NewPageCanvas creates an empty page canvas.
func NewPageCanvas() *PageCanvas {
	pc := &PageCanvas{
		vp:      viewport.New(),
		imgSize: fyne.NewSize(400, 300),
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.raster.SetMinSize(pc.imgSize)

	pc.content = newClickableContent(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.content, pc)

	pc.ExtendBaseWidget(pc)
	return pc
}

// Container returns the canvas container for embedding in layouts.
func (pc *PageCanvas) Container() fyne.CanvasObject {
	return pc.scroll
}

// SetPage replaces the displayed drawings and page size. Blocks and
// selection are cleared by the caller via SetBlocks/SetSelection.
func (pc *PageCanvas) SetPage(drawings []drawing.Drawing, pageW, pageH float64) {
	pc.drawings = drawings
	pc.vp.PageW = pageW
	pc.vp.PageH = pageH
	pc.pageImage = nil
	pc.updateContentSize()
}

// SetBlocks sets the candidate blocks to overlay.
func (pc *PageCanvas) SetBlocks(blocks []block.Block) {
	pc.blocks = blocks
	pc.Refresh()
}

// SetSelection sets the selection used to color the overlays.
func (pc *PageCanvas) SetSelection(sel *block.Selection) {
	pc.selection = sel
	pc.Refresh()
}

// Zoom returns the current zoom level.
func (pc *PageCanvas) Zoom() float64 {
	return pc.vp.Zoom
}

// SetZoom sets the zoom level, clamped to the viewport bounds.
func (pc *PageCanvas) SetZoom(zoom float64) {
	if !pc.vp.SetZoom(zoom) {
		return
	}
	pc.pageImage = nil
	pc.updateContentSize()
	if pc.onZoomChange != nil {
		pc.onZoomChange(pc.vp.Zoom)
	}
}

// ZoomAt performs an anchored zoom step around the given view position.
func (pc *PageCanvas) ZoomAt(viewX, viewY float32, in bool) {
	pc.syncViewport()
	if !pc.vp.ZoomAt(float64(viewX), float64(viewY), in) {
		return
	}
	pc.pageImage = nil
	pc.updateContentSize()
	pc.scroll.SetOffset(fyne.NewPos(float32(pc.vp.OffsetX), float32(pc.vp.OffsetY)))
	if pc.onZoomChange != nil {
		pc.onZoomChange(pc.vp.Zoom)
	}
}

// OnLeftClick sets a callback for left clicks. Coordinates are in page
// space.
func (pc *PageCanvas) OnLeftClick(callback func(p geometry.Point2D)) {
	pc.onLeftClick = callback
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PageCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// Refresh refreshes the canvas display.
func (pc *PageCanvas) Refresh() {
	pc.raster.Refresh()
}

// pageAt translates a view position into page coordinates, accounting
// for the live scroll offset and zoom. Clicks and wheel zoom both go
// through this so they agree on what lies under the cursor.
func (pc *PageCanvas) pageAt(pos fyne.Position) geometry.Point2D {
	pc.syncViewport()
	return pc.vp.ToPage(geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)})
}

// syncViewport copies the scroll container's geometry into the
// viewport so coordinate conversions see the live scroll position.
func (pc *PageCanvas) syncViewport() {
	off := pc.scroll.Offset()
	pc.vp.OffsetX = float64(off.X)
	pc.vp.OffsetY = float64(off.Y)
	size := pc.scroll.Size()
	pc.vp.ViewW = float64(size.Width)
	pc.vp.ViewH = float64(size.Height)
}

func (pc *PageCanvas) updateContentSize() {
	cw, ch := pc.vp.ContentSize()
	if cw < 1 || ch < 1 {
		pc.imgSize = fyne.NewSize(400, 300)
	} else {
		pc.imgSize = fyne.NewSize(float32(cw), float32(ch))
	}

	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.content != nil {
		pc.content.Resize(pc.imgSize)
		pc.content.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (pc *PageCanvas) draw(w, h int) image.Image {
	if pc.pageImage == nil {
		pc.pageImage = render.Page(pc.drawings, pc.vp.PageW, pc.vp.PageH, pc.vp.Zoom)
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	copyImage(output, pc.pageImage)
	pc.drawBlockOverlays(output)
	return output
}

func copyImage(dst *image.RGBA, src *image.RGBA) {
	b := dst.Bounds().Intersect(src.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		so := src.PixOffset(b.Min.X, y)
		do := dst.PixOffset(b.Min.X, y)
		copy(dst.Pix[do:do+b.Dx()*4], src.Pix[so:so+b.Dx()*4])
	}
}

// CreateRenderer implements fyne.Widget.
func (pc *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &pageCanvasRenderer{canvas: pc}
}

type pageCanvasRenderer struct {
	canvas *PageCanvas
}

func (r *pageCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
}

func (r *pageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *pageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *pageCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *pageCanvasRenderer) Destroy() {}

// zoomScroll wraps a scroll container but intercepts the wheel for
// anchored zooming.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomAt(ev.Position.X, ev.Position.Y, true)
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomAt(ev.Position.X, ev.Position.Y, false)
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// SetOffset moves the scroll position.
func (zs *zoomScroll) SetOffset(pos fyne.Position) {
	zs.scroll.Offset = pos
	zs.scroll.Refresh()
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// clickableContent wraps the raster to handle mouse events.
type clickableContent struct {
	widget.BaseWidget
	canvas *PageCanvas
	raster *fynecanvas.Raster
}

func newClickableContent(pc *PageCanvas, raster *fynecanvas.Raster) *clickableContent {
	cc := &clickableContent{canvas: pc, raster: raster}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cc.raster)
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.raster.MinSize()
}

// Tapped handles left-click events.
func (cc *clickableContent) Tapped(ev *fyne.PointEvent) {
	if cc.canvas.onLeftClick == nil {
		return
	}

	// Reject clicks outside widget bounds; Fyne can deliver taps from
	// the surrounding scroll area.
	size := cc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	cc.canvas.onLeftClick(cc.canvas.pageAt(ev.Position))
}

func (cc *clickableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		cc.canvas.ZoomAt(ev.Position.X, ev.Position.Y, true)
	} else if ev.Scrolled.DY < 0 {
		cc.canvas.ZoomAt(ev.Position.X, ev.Position.Y, false)
	}
}
