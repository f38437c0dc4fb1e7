// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"driftboard/internal/app"
	"driftboard/internal/export"
	"driftboard/internal/version"
	"driftboard/ui/board"
	"driftboard/ui/prefs"
)

const (
	prefKeyLastDir      = "lastDirectory"
	prefKeyWindowWidth  = "windowWidth"
	prefKeyWindowHeight = "windowHeight"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	board      *board.Canvas
	scaleLabel *widget.Label
	statusBar  *widget.Label
	helpPopup  *widget.PopUp
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Driftboard")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()
	mw.restoreWindowSize()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.board = board.New(mw.state)

	mw.scaleLabel = widget.NewLabel("100%")
	mw.board.OnScaleChange(func(scale float64) {
		mw.scaleLabel.SetText(fmt.Sprintf("%.0f%%", scale*100))
	})

	mw.statusBar = widget.NewLabel(fmt.Sprintf("%d items", mw.state.Items.Len()))

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.board,                          // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom and board controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.board.Dispatcher().ZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.board.Dispatcher().ZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.board.Dispatcher().FitToContent()
	})
	exportBtn := widget.NewButton("Export", mw.onExportSnapshot)
	helpBtn := widget.NewButton("?", mw.state.ToggleHelp)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		mw.scaleLabel,
		zoomInBtn,
		fitBtn,
		widget.NewSeparator(),
		exportBtn,
		helpBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Board...", mw.onOpenBoard),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Board", mw.onSaveBoard),
		fyne.NewMenuItem("Save Board As...", mw.onSaveBoardAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Snapshot...", mw.onExportSnapshot),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.board.Dispatcher().ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.board.Dispatcher().ZoomOut),
		fyne.NewMenuItem("Fit to Content", mw.board.Dispatcher().FitToContent),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", mw.state.ToggleHelp),
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupShortcuts registers keyboard handling: Alt+1 for fit-to-content,
// Escape to dismiss the help overlay, and ctrl tracking for wheel-zoom
// classification.
func (mw *MainWindow) setupShortcuts() {
	fit := &desktop.CustomShortcut{KeyName: fyne.Key1, Modifier: fyne.KeyModifierAlt}
	mw.Canvas().AddShortcut(fit, func(fyne.Shortcut) {
		mw.board.Dispatcher().FitToContent()
	})

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.state.SetHelpVisible(false)
		}
	})

	if deskCanvas, ok := mw.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isCtrl(ev.Name) {
				mw.board.SetCtrlDown(true)
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isCtrl(ev.Name) {
				mw.board.SetCtrlDown(false)
			}
		})
	}
}

func isCtrl(name fyne.KeyName) bool {
	return name == desktop.KeyControlLeft || name == desktop.KeyControlRight
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventBoardLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Driftboard - " + filepath.Base(path))
			mw.updateStatus(fmt.Sprintf("Loaded %s (%d items)", path, mw.state.Items.Len()))
		}
	})

	mw.state.On(app.EventBoardSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventItemMoved, func(interface{}) {
		mw.updateStatus(fmt.Sprintf("%d items", mw.state.Items.Len()))
	})

	mw.state.On(app.EventHelpToggled, func(data interface{}) {
		if visible, ok := data.(bool); ok {
			mw.setHelpVisible(visible)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// setHelpVisible shows or hides the help overlay.
func (mw *MainWindow) setHelpVisible(visible bool) {
	if !visible {
		if mw.helpPopup != nil {
			mw.helpPopup.Hide()
			mw.helpPopup = nil
		}
		return
	}
	if mw.helpPopup != nil {
		return
	}

	rows := [][2]string{
		{"Drag", "Pan the board (release to throw)"},
		{"Drag an item", "Move the item"},
		{"Wheel", "Scroll the board"},
		{"Ctrl+Wheel / Pinch", "Zoom toward the cursor"},
		{"+/- buttons", "Zoom in steps"},
		{"Alt+1", "Fit all items"},
		{"Escape", "Close this overlay"},
	}
	grid := container.NewVBox(widget.NewLabelWithStyle("Keyboard & Mouse",
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	for _, row := range rows {
		grid.Add(container.NewHBox(
			widget.NewLabelWithStyle(row[0], fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(row[1]),
		))
	}
	grid.Add(widget.NewButton("Close", func() {
		mw.state.SetHelpVisible(false)
	}))

	mw.helpPopup = widget.NewModalPopUp(container.NewPadded(grid), mw.Canvas())
	mw.helpPopup.Show()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpenBoard() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadBoard(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveBoard() {
	if mw.state.BoardPath == "" {
		mw.onSaveBoardAs()
		return
	}
	if err := mw.state.SaveBoard(mw.state.BoardPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveBoardAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
			path += ".yaml"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveBoard(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("board.yaml")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportSnapshot() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := export.PNG(path, mw.state.Items); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("board.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Driftboard",
		fmt.Sprintf("Driftboard v%s\n\n"+
			"An infinite pan/zoom whiteboard.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// restoreWindowSize applies the persisted window dimensions.
func (mw *MainWindow) restoreWindowSize() {
	w := mw.prefs.Float(prefKeyWindowWidth, 1100)
	h := mw.prefs.Float(prefKeyWindowHeight, 750)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// SavePreferences persists window geometry and the last directory.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefKeyWindowWidth, float64(size.Width))
		mw.prefs.SetFloat(prefKeyWindowHeight, float64(size.Height))
	}
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Failed to save preferences: " + err.Error())
	}
}

// SavePreferencesIfChanged persists preferences only when dirty.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if mw.prefs.Dirty() {
		mw.SavePreferences()
	}
}
