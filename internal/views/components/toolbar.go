package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar carries the file actions, the zoom readout and a mouse hint.
type Toolbar struct {
	container  *fyne.Container
	openButton *widget.Button
	saveButton *widget.Button
	zoomLabel  *widget.Label

	openHandler func()
	saveHandler func()
}

const mouseHint = "Left click: pick colour | Right click: erase | Ctrl+wheel: zoom"

func NewToolbar() *Toolbar {
	t := &Toolbar{zoomLabel: widget.NewLabel(zoomText(1))}

	t.openButton = widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), func() { call(t.openHandler) })
	t.openButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save Masked Image", theme.DocumentSaveIcon(), func() { call(t.saveHandler) })
	t.saveButton.Importance = widget.HighImportance
	t.saveButton.Disable()

	t.container = container.NewHBox(
		t.openButton,
		widget.NewSeparator(),
		t.saveButton,
		widget.NewSeparator(),
		t.zoomLabel,
		widget.NewLabel(mouseHint),
	)
	return t
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

// SetSaveEnabled enables saving once an image is loaded. Must be called on
// the UI goroutine.
func (t *Toolbar) SetSaveEnabled(enabled bool) {
	if enabled {
		t.saveButton.Enable()
	} else {
		t.saveButton.Disable()
	}
}

// SetZoom shows the current scale as a percentage.
func (t *Toolbar) SetZoom(scale float64) {
	t.zoomLabel.SetText(zoomText(scale))
}

func zoomText(scale float64) string {
	return fmt.Sprintf("Zoom: %.0f%%", scale*100)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
