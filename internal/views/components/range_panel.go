package components

import (
	"fmt"

	"hsv-masker/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type rangeSlider struct {
	slider *widget.Slider
	value  *widget.Label
}

// RangePanel holds one slider per range bound.
type RangePanel struct {
	container *fyne.Container
	sliders   map[models.Component]*rangeSlider

	// updating suppresses change callbacks while the panel is being synced
	// from the controller.
	updating bool
	onChange func(c models.Component, value int)
}

func NewRangePanel(initial models.HSVRange) *RangePanel {
	rp := &RangePanel{sliders: make(map[models.Component]*rangeSlider)}
	rp.createComponents(initial)
	return rp
}

func (rp *RangePanel) createComponents(initial models.HSVRange) {
	form := container.New(newRangeFormLayout())

	for _, c := range models.Components() {
		c := c
		s := &rangeSlider{
			slider: widget.NewSlider(0, float64(c.Limit())),
			value:  widget.NewLabel(fmt.Sprintf("%3d", initial.Get(c))),
		}
		s.slider.Step = 1
		s.slider.SetValue(float64(initial.Get(c)))
		s.slider.OnChanged = func(v float64) {
			s.value.SetText(fmt.Sprintf("%3d", int(v)))
			if rp.updating || rp.onChange == nil {
				return
			}
			rp.onChange(c, int(v))
		}
		rp.sliders[c] = s

		form.Add(widget.NewLabel(c.String()))
		form.Add(s.slider)
		form.Add(s.value)
	}

	rp.container = container.NewVBox(
		widget.NewRichTextFromMarkdown("**HSV Range**"),
		form,
	)
}

// SetChangeHandler sets the callback fired when the user moves a slider.
func (rp *RangePanel) SetChangeHandler(handler func(c models.Component, value int)) {
	rp.onChange = handler
}

// SetRange moves the sliders to r without firing the change handler. Must be
// called on the UI goroutine.
func (rp *RangePanel) SetRange(r models.HSVRange) {
	rp.updating = true
	defer func() { rp.updating = false }()

	for c, s := range rp.sliders {
		if int(s.slider.Value) != r.Get(c) {
			s.slider.SetValue(float64(r.Get(c)))
		}
	}
}

// GetContainer returns the panel container
func (rp *RangePanel) GetContainer() *fyne.Container {
	return rp.container
}
