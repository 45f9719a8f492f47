package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	PlaceholderWidth  = 600
	PlaceholderHeight = 450
)

// InteractiveImage shows the composited result at its rendered size and
// reports clicks and modified wheel ticks in display pixels.
type InteractiveImage struct {
	widget.BaseWidget

	image  *canvas.Image
	scroll *container.Scroll

	// pixelScale converts fyne units to device pixels.
	pixelScale float32
	hasImage   bool

	onPrimary    func(x, y float64)
	onSecondary  func(x, y float64)
	onZoom       func(direction int)
	modifierHeld func() bool
}

func NewInteractiveImage() *InteractiveImage {
	ii := &InteractiveImage{pixelScale: 1}
	ii.image = canvas.NewImageFromImage(placeholder())
	ii.image.FillMode = canvas.ImageFillStretch
	ii.image.ScaleMode = canvas.ImageScalePixels
	ii.image.SetMinSize(fyne.NewSize(PlaceholderWidth, PlaceholderHeight))
	ii.ExtendBaseWidget(ii)

	ii.scroll = container.NewScroll(ii)
	ii.scroll.Direction = container.ScrollBoth
	return ii
}

func placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	bg := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < PlaceholderHeight; y++ {
		for x := 0; x < PlaceholderWidth; x++ {
			if x == 0 || y == 0 || x == PlaceholderWidth-1 || y == PlaceholderHeight-1 {
				img.SetRGBA(x, y, border)
			} else {
				img.SetRGBA(x, y, bg)
			}
		}
	}
	return img
}

func (ii *InteractiveImage) CreateRenderer() fyne.WidgetRenderer {
	return &interactiveImageRenderer{ii: ii}
}

// interactiveImageRenderer draws the raster at its own size anchored at the
// top-left corner. The scroll container may make the widget larger than the
// raster; the extra area stays empty.
type interactiveImageRenderer struct {
	ii *InteractiveImage
}

func (r *interactiveImageRenderer) Layout(fyne.Size) {
	r.ii.image.Move(fyne.NewPos(0, 0))
	r.ii.image.Resize(r.ii.image.MinSize())
}

func (r *interactiveImageRenderer) MinSize() fyne.Size {
	return r.ii.image.MinSize()
}

func (r *interactiveImageRenderer) Refresh() {
	r.Layout(r.ii.Size())
	canvas.Refresh(r.ii.image)
}

func (r *interactiveImageRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.ii.image}
}

func (r *interactiveImageRenderer) Destroy() {}

func (ii *InteractiveImage) MinSize() fyne.Size {
	return ii.image.MinSize()
}

// SetPixelScale sets the canvas scale so one image pixel maps to one device
// pixel.
func (ii *InteractiveImage) SetPixelScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	ii.pixelScale = scale
}

// SetImage replaces the displayed raster. Must be called on the UI goroutine.
func (ii *InteractiveImage) SetImage(img image.Image) {
	if img == nil {
		ii.image.Image = placeholder()
		ii.image.SetMinSize(fyne.NewSize(PlaceholderWidth, PlaceholderHeight))
		ii.hasImage = false
	} else {
		b := img.Bounds()
		ii.image.Image = img
		ii.image.SetMinSize(fyne.NewSize(float32(b.Dx())/ii.pixelScale, float32(b.Dy())/ii.pixelScale))
		ii.hasImage = true
	}
	ii.image.Refresh()
	ii.Refresh()
	ii.scroll.Refresh()
}

func (ii *InteractiveImage) SetOnPrimary(handler func(x, y float64)) {
	ii.onPrimary = handler
}

func (ii *InteractiveImage) SetOnSecondary(handler func(x, y float64)) {
	ii.onSecondary = handler
}

func (ii *InteractiveImage) SetOnZoom(handler func(direction int)) {
	ii.onZoom = handler
}

// SetModifierSource tells the widget how to check whether the zoom modifier
// is held.
func (ii *InteractiveImage) SetModifierSource(held func() bool) {
	ii.modifierHeld = held
}

func (ii *InteractiveImage) toDisplay(pos fyne.Position) (float64, float64, bool) {
	if !ii.hasImage {
		return 0, 0, false
	}
	return tapToDisplay(pos, ii.image.MinSize(), ii.pixelScale)
}

// tapToDisplay converts a widget position in fyne units to display buffer
// pixels. drawn is the raster's size in fyne units; taps outside it are
// rejected.
func tapToDisplay(pos fyne.Position, drawn fyne.Size, pixelScale float32) (float64, float64, bool) {
	if pos.X < 0 || pos.Y < 0 || pos.X >= drawn.Width || pos.Y >= drawn.Height {
		return 0, 0, false
	}
	return float64(pos.X * pixelScale), float64(pos.Y * pixelScale), true
}

// Tapped handles left-click events.
func (ii *InteractiveImage) Tapped(ev *fyne.PointEvent) {
	if ii.onPrimary == nil {
		return
	}
	if x, y, ok := ii.toDisplay(ev.Position); ok {
		ii.onPrimary(x, y)
	}
}

// TappedSecondary handles right-click events.
func (ii *InteractiveImage) TappedSecondary(ev *fyne.PointEvent) {
	if ii.onSecondary == nil {
		return
	}
	if x, y, ok := ii.toDisplay(ev.Position); ok {
		ii.onSecondary(x, y)
	}
}

// Scrolled zooms while the modifier is held and scrolls otherwise.
func (ii *InteractiveImage) Scrolled(ev *fyne.ScrollEvent) {
	if ii.modifierHeld != nil && ii.modifierHeld() && ii.onZoom != nil {
		switch {
		case ev.Scrolled.DY > 0:
			ii.onZoom(1)
		case ev.Scrolled.DY < 0:
			ii.onZoom(-1)
		}
		return
	}
	ii.scroll.Scrolled(ev)
}

// GetContainer returns the scroll container holding the image.
func (ii *InteractiveImage) GetContainer() fyne.CanvasObject {
	return ii.scroll
}
