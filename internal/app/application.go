package app

import (
	"runtime"

	"hsv-masker/internal/config"
	"hsv-masker/internal/controllers"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/shutdown"
	"hsv-masker/internal/views"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const (
	AppName    = "HSV Masker"
	AppID      = "com.imageprocessing.hsv-masker"
	AppVersion = "1.0.0"
)

const (
	minWindowWidth  = 800
	minWindowHeight = 600
)

// Application owns the fyne app, its single window and the shutdown
// sequence.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MaskingController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func NewApplication(cfg *config.Config, controller *controllers.MaskingController, shutdownMgr *shutdown.Manager, log logger.Logger) *Application {
	if log == nil {
		log = logger.Nop()
	}

	fyneapp.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := fyneapp.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	windowSize := WindowSize(cfg)
	window.Resize(windowSize)
	window.CenterOnScreen()

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		controller: controller,
		shutdown:   shutdownMgr,
	}
	application.view = views.NewMainView(window, controller, log)
	application.setupWindowEvents()

	log.Info("Application", "initialized", map[string]interface{}{
		"version":     AppVersion,
		"window_size": windowSize,
		"backend":     cfg.Backend,
		"async":       cfg.AsyncRecompute,
		"go_version":  runtime.Version(),
	})

	return application
}

// Run shows the window and blocks until the fyne event loop exits.
func (a *Application) Run() {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.UpdateStatus("Open an image to start")
	a.logger.Info("Application", "GUI displayed", nil)
	a.window.ShowAndRun()

	a.shutdown.Shutdown()
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		go func() {
			a.shutdown.Shutdown()
			fyne.Do(a.window.Close)
		}()
	})
}

// WindowSize returns the configured window size, never smaller than
// 800x600.
func WindowSize(cfg *config.Config) fyne.Size {
	width, height := cfg.WindowWidth, cfg.WindowHeight
	if width < minWindowWidth {
		width = minWindowWidth
	}
	if height < minWindowHeight {
		height = minWindowHeight
	}
	return fyne.NewSize(float32(width), float32(height))
}
