// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pdf-blocks/internal/app"
	"pdf-blocks/internal/block"
	"pdf-blocks/internal/document"
	"pdf-blocks/internal/svg"
	"pdf-blocks/internal/version"
	"pdf-blocks/ui/canvas"
	"pdf-blocks/ui/prefs"
	"pdf-blocks/pkg/geometry"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.PageCanvas

	pageLabel *widget.Label
	zoomLabel *widget.Label
	statusBar *widget.Label

	currentPage int
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("PDF Blocks")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPageCanvas()
	mw.canvas.OnLeftClick(func(p geometry.Point2D) {
		mw.state.ToggleAt(p)
	})
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	mw.pageLabel = widget.NewLabel("Page -/-")
	mw.zoomLabel = widget.NewLabel("100%")
	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		mw.createToolbar(),                // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas.Container(),             // center
	)
	mw.SetContent(content)

	w := mw.prefs.Float(prefs.KeyWindowWidth, 1100)
	h := mw.prefs.Float(prefs.KeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// createToolbar creates the toolbar with document and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	openBtn := widget.NewButton("Open PDF...", mw.onOpenDocument)
	prevBtn := widget.NewButton("<", func() { mw.gotoPage(mw.currentPage - 1) })
	nextBtn := widget.NewButton(">", func() { mw.gotoPage(mw.currentPage + 1) })
	detectBtn := widget.NewButton("Detect Blocks", mw.onDetectBlocks)
	exportBtn := widget.NewButton("Export Selected", mw.onExportSelected)
	zoomOutBtn := widget.NewButton("-", func() { mw.canvas.SetZoom(mw.canvas.Zoom() * 0.9) })
	zoomInBtn := widget.NewButton("+", func() { mw.canvas.SetZoom(mw.canvas.Zoom() * 1.1) })
	actualBtn := widget.NewButton("1:1", func() { mw.canvas.SetZoom(1.0) })

	return container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		prevBtn,
		mw.pageLabel,
		nextBtn,
		widget.NewSeparator(),
		detectBtn,
		exportBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		mw.zoomLabel,
		zoomInBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open PDF...", mw.onOpenDocument),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Selected Blocks...", mw.onExportSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.canvas.SetZoom(mw.canvas.Zoom() * 1.1) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.canvas.SetZoom(mw.canvas.Zoom() * 0.9) }),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next Page", func() { mw.gotoPage(mw.currentPage + 1) }),
		fyne.NewMenuItem("Previous Page", func() { mw.gotoPage(mw.currentPage - 1) }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Detect Blocks", mw.onDetectBlocks),
		fyne.NewMenuItem("Clear Selection", mw.onClearSelection),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDocumentLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("PDF Blocks - " + filepath.Base(path))
			mw.updateStatus("Loaded " + path)
		}
	})

	mw.state.On(app.EventPageChanged, func(data interface{}) {
		page, ok := data.(*document.Page)
		if !ok {
			return
		}
		mw.currentPage = page.Number
		mw.canvas.SetPage(page.Drawings, page.Width, page.Height)
		mw.canvas.SetBlocks(nil)
		mw.canvas.SetSelection(mw.state.Selection)
		mw.updatePageLabel()
		mw.updateStatus(fmt.Sprintf("Page %d: %d drawings", page.Number+1, len(page.Drawings)))
	})

	mw.state.On(app.EventBlocksDetected, func(data interface{}) {
		blocks, _ := data.([]block.Block)
		mw.canvas.SetBlocks(blocks)
		mw.updateStatus(fmt.Sprintf("Detected %d candidate blocks", len(blocks)))
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		mw.canvas.Refresh()
		mw.updateStatus(fmt.Sprintf("%d blocks selected", mw.state.Selection.Len()))
	})

	mw.state.On(app.EventExportFinished, func(data interface{}) {
		results, _ := data.([]svg.Result)
		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			mw.updateStatus(fmt.Sprintf("Exported %d blocks, %d failed", len(results)-failed, failed))
		} else {
			mw.updateStatus(fmt.Sprintf("Exported %d blocks", len(results)))
		}
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) updatePageLabel() {
	total := 0
	if mw.state.Document != nil {
		total = mw.state.Document.NumPages()
	}
	mw.pageLabel.SetText(fmt.Sprintf("Page %d/%d", mw.currentPage+1, total))
}

func (mw *MainWindow) gotoPage(number int) {
	if mw.state.Document == nil {
		return
	}
	if number < 0 || number >= mw.state.Document.NumPages() {
		return
	}
	if err := mw.state.SetPage(number); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir(key string) fyne.ListableURI {
	path := mw.prefs.String(key)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// OpenDocument loads the given PDF and remembers it in preferences.
func (mw *MainWindow) OpenDocument(path string) {
	if err := mw.state.LoadDocument(path); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.SetString(prefs.KeyLastFile, path)
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(path))
	_ = mw.prefs.Save()
}

func (mw *MainWindow) onOpenDocument() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.OpenDocument(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	if loc := mw.getLastDir(prefs.KeyLastDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onDetectBlocks() {
	if _, err := mw.state.DetectBlocks(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onClearSelection() {
	mw.state.Selection.Clear()
	mw.canvas.Refresh()
	mw.updateStatus("Selection cleared")
}

func (mw *MainWindow) onExportSelected() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		dir := uri.Path()
		results, err := mw.state.ExportSelected(dir)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyExportDir, dir)
		_ = mw.prefs.Save()

		for _, res := range results {
			if res.Err != nil {
				dialog.ShowError(fmt.Errorf("block %d: %w", res.Index+1, res.Err), mw.Window)
			}
		}
	}, mw.Window)
	if loc := mw.getLastDir(prefs.KeyExportDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About PDF Blocks",
		fmt.Sprintf("PDF Blocks v%s\n\n"+
			"Extracts rectangular vector blocks from PDF drawings\n"+
			"and exports them as standalone SVG files.\n\n"+
			"Commit: %s",
			version.Version, version.GitCommit),
		mw.Window)
}

// SavePrefs persists window geometry before exit.
func (mw *MainWindow) SavePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	_ = mw.prefs.Save()
}
