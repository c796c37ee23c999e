// Package main provides the entry point for the PDF Blocks application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"pdf-blocks/internal/app"
	"pdf-blocks/internal/version"
	"pdf-blocks/ui/mainwindow"
	"pdf-blocks/ui/prefs"
)

const appTitle = "PDF Blocks"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("pdf-blocks")
	fyneApp.Settings().SetTheme(&app.BlocksTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	if len(os.Args) > 1 {
		win.OpenDocument(os.Args[1])
	} else if last := appPrefs.String(prefs.KeyLastFile); last != "" {
		if _, err := os.Stat(last); err == nil {
			win.OpenDocument(last)
		}
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePrefs()
		if err := appState.Close(); err != nil {
			log.Printf("Closing document: %v", err)
		}
	})

	win.ShowAndRun()
}

// setupHotReload configures restart detection for development builds.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		dialog.ShowConfirm("Restart", "A newer binary was built. Restart now?",
			func(ok bool) {
				if !ok {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				win.SavePrefs()
				if err := reloader.Restart(); err != nil {
					log.Printf("Restart failed: %v", err)
				}
			}, win.Window)
	})
	reloader.Start()
}
