package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	readyText   = "Ready"
	noImageText = "No image loaded"
	noMaskText  = "Selected: --"
)

// StatusBar shows the last action, the image and display sizes, and how
// much of the image the mask keeps. Setters must run on the UI goroutine.
type StatusBar struct {
	container *fyne.Container
	message   *widget.Label
	image     *widget.Label
	mask      *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		message: widget.NewLabel(readyText),
		image:   widget.NewLabel(noImageText),
		mask:    widget.NewLabel(noMaskText),
	}
	sb.container = container.NewHBox(
		sb.message,
		widget.NewSeparator(),
		sb.image,
		widget.NewSeparator(),
		sb.mask,
	)
	return sb
}

func (sb *StatusBar) SetStatus(status string) {
	sb.message.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.message.Text
}

func (sb *StatusBar) SetImageInfo(width, height, displayWidth, displayHeight int) {
	sb.image.SetText(imageInfoText(width, height, displayWidth, displayHeight))
}

func (sb *StatusBar) SetMaskInfo(selected, erased, total int) {
	sb.mask.SetText(maskInfoText(selected, erased, total))
}

func (sb *StatusBar) Reset() {
	sb.message.SetText(readyText)
	sb.image.SetText(noImageText)
	sb.mask.SetText(noMaskText)
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func imageInfoText(width, height, displayWidth, displayHeight int) string {
	if width == displayWidth && height == displayHeight {
		return fmt.Sprintf("Image: %dx%d", width, height)
	}
	return fmt.Sprintf("Image: %dx%d, shown at %dx%d", width, height, displayWidth, displayHeight)
}

func maskInfoText(selected, erased, total int) string {
	if total <= 0 {
		return noMaskText
	}
	return fmt.Sprintf("Selected: %d (%.1f%%), erased: %d",
		selected, 100*float64(selected)/float64(total), erased)
}
