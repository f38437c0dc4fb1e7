// Package main provides the entry point for the Driftboard application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"driftboard/internal/app"
	"driftboard/internal/board"
	"driftboard/internal/version"
	"driftboard/ui/mainwindow"
	"driftboard/ui/prefs"
)

const appTitle = "Driftboard"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.driftboard.app")
	fyneApp.Settings().SetTheme(&app.BoardTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	// A board path argument overrides the default location.
	boardPath := board.DefaultPath()
	if len(os.Args) > 1 {
		boardPath = os.Args[1]
	}
	if err := appState.LoadBoardIfPresent(boardPath); err != nil {
		log.Printf("Failed to load board %s: %v", boardPath, err)
	}

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePreferences()
	})
	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: saving preferences before restart...")
				win.SavePreferences()
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
