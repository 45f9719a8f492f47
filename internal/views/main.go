package views

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync/atomic"
	"time"

	"hsv-masker/internal/controllers"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"
	"hsv-masker/internal/services"
	"hsv-masker/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
)

const (
	ioTimeout       = 30 * time.Second
	defaultSaveName = "masked.png"
)

// Controller is the part of the masking controller the window drives.
type Controller interface {
	HandlePointer(ev controllers.PointerEvent) bool
	HandleWheel(ev controllers.WheelEvent) bool
	SetRangeComponent(c models.Component, value int) error
	LoadImageFrom(ctx context.Context, name string, r io.Reader) error
	SaveResultTo(ctx context.Context, w io.Writer, format string) error
	SetRenderer(renderer controllers.Renderer)
	Snapshot() controllers.State
}

// MainView is the application window: toolbar, image, range sliders and
// status bar.
type MainView struct {
	window     fyne.Window
	controller Controller
	logger     logger.Logger

	toolbar    *components.Toolbar
	image      *components.InteractiveImage
	rangePanel *components.RangePanel
	statusBar  *components.StatusBar

	ctrlHeld atomic.Bool
}

func NewMainView(window fyne.Window, controller Controller, log logger.Logger) *MainView {
	if log == nil {
		log = logger.Nop()
	}

	view := &MainView{
		window:     window,
		controller: controller,
		logger:     log,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()
	view.trackModifier()

	controller.SetRenderer(view)
	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.image = components.NewInteractiveImage()
	mv.rangePanel = components.NewRangePanel(mv.controller.Snapshot().Range)
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	content := container.NewBorder(
		mv.toolbar.GetContainer(),
		container.NewVBox(mv.rangePanel.GetContainer(), mv.statusBar.GetContainer()),
		nil,
		nil,
		mv.image.GetContainer(),
	)
	mv.window.SetContent(content)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetOpenHandler(mv.showOpenDialog)
	mv.toolbar.SetSaveHandler(mv.showSaveDialog)

	mv.image.SetOnPrimary(func(x, y float64) {
		mv.controller.HandlePointer(controllers.PointerEvent{Button: controllers.ButtonPrimary, X: x, Y: y})
	})
	mv.image.SetOnSecondary(func(x, y float64) {
		mv.controller.HandlePointer(controllers.PointerEvent{Button: controllers.ButtonSecondary, X: x, Y: y})
	})
	mv.image.SetOnZoom(func(direction int) {
		mv.controller.HandleWheel(controllers.WheelEvent{Direction: direction, Modifier: true})
	})
	mv.image.SetModifierSource(mv.ctrlHeld.Load)

	mv.rangePanel.SetChangeHandler(func(c models.Component, value int) {
		if err := mv.controller.SetRangeComponent(c, value); err != nil {
			mv.logger.Error("MainView", err, map[string]interface{}{"component": c.String()})
		}
	})
}

// trackModifier follows the Ctrl keys; fyne scroll events carry no modifier
// state.
func (mv *MainView) trackModifier() {
	deskCanvas, ok := mv.window.Canvas().(desktop.Canvas)
	if !ok {
		return
	}

	isCtrl := func(name fyne.KeyName) bool {
		return name == desktop.KeyControlLeft || name == desktop.KeyControlRight
	}
	deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		if isCtrl(ev.Name) {
			mv.ctrlHeld.Store(true)
		}
	})
	deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		if isCtrl(ev.Name) {
			mv.ctrlHeld.Store(false)
		}
	})
}

// Render implements controllers.Renderer. It may be called from any
// goroutine.
func (mv *MainView) Render(frame controllers.Frame) {
	var img image.Image
	if frame.Display != nil {
		img = frame.Display.ToRGBA()
	}
	state := frame.State

	fyne.Do(func() {
		mv.image.SetPixelScale(mv.window.Canvas().Scale())
		mv.image.SetImage(img)
		mv.rangePanel.SetRange(state.Range)
		mv.toolbar.SetZoom(state.Scale)
		mv.toolbar.SetSaveEnabled(state.Loaded)
		if state.Loaded {
			mv.statusBar.SetImageInfo(state.ImageWidth, state.ImageHeight, state.DisplayWidth, state.DisplayHeight)
			mv.statusBar.SetMaskInfo(state.SelectedPixels, state.ErasedPixels, state.ImageWidth*state.ImageHeight)
		}
	})
}

func (mv *MainView) showOpenDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		go mv.loadFrom(reader)
	}, mv.window)
	open.SetFilter(storage.NewExtensionFileFilter(services.SupportedExtensions()))
	open.Show()
}

func (mv *MainView) loadFrom(reader fyne.URIReadCloser) {
	defer reader.Close()

	name := reader.URI().Path()
	mv.UpdateStatus("Loading " + reader.URI().Name() + "...")

	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	if err := mv.controller.LoadImageFrom(ctx, name, reader); err != nil {
		mv.UpdateStatus("Load failed")
		mv.ShowError(err)
		return
	}

	mv.UpdateStatus("Loaded " + reader.URI().Name())
	fyne.Do(func() {
		mv.window.SetTitle(fmt.Sprintf("HSV Masker - %s", reader.URI().Name()))
	})
}

func (mv *MainView) showSaveDialog() {
	if !mv.controller.Snapshot().Loaded {
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError(err)
			return
		}
		if writer == nil {
			return
		}
		go mv.saveTo(writer)
	}, mv.window)
	save.SetFileName(defaultSaveName)
	save.Show()
}

func (mv *MainView) saveTo(writer fyne.URIWriteCloser) {
	uri := writer.URI()
	format, known := services.FormatFromPath(uri.Path())
	if !known {
		mv.logger.Warning("MainView", "unknown extension, saving as PNG", map[string]interface{}{
			"path": uri.Path(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	err := mv.controller.SaveResultTo(ctx, writer, format)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		mv.UpdateStatus("Save failed")
		mv.ShowError(err)
		return
	}

	mv.logger.Info("MainView", "result saved", map[string]interface{}{"path": uri.Path(), "format": format})
	mv.UpdateStatus("Saved " + uri.Name())
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}
