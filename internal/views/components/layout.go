package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// rangeFormLayout lays out rows of label, slider and value with the slider
// column taking the remaining width.
type rangeFormLayout struct{}

func newRangeFormLayout() fyne.Layout {
	return &rangeFormLayout{}
}

func (l *rangeFormLayout) columns(objects []fyne.CanvasObject) (float32, float32, float32) {
	var label, value, row float32
	for i := 0; i+2 < len(objects); i += 3 {
		label = max(label, objects[i].MinSize().Width)
		value = max(value, objects[i+2].MinSize().Width)
		row = max(row, objects[i].MinSize().Height, objects[i+1].MinSize().Height, objects[i+2].MinSize().Height)
	}
	return label, value, row
}

func (l *rangeFormLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	label, value, row := l.columns(objects)
	pad := theme.Padding()
	slider := max(size.Width-label-value-2*pad, 0)

	y := float32(0)
	for i := 0; i+2 < len(objects); i += 3 {
		objects[i].Move(fyne.NewPos(0, y))
		objects[i].Resize(fyne.NewSize(label, row))
		objects[i+1].Move(fyne.NewPos(label+pad, y))
		objects[i+1].Resize(fyne.NewSize(slider, row))
		objects[i+2].Move(fyne.NewPos(label+slider+2*pad, y))
		objects[i+2].Resize(fyne.NewSize(value, row))
		y += row + pad
	}
}

func (l *rangeFormLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	label, value, row := l.columns(objects)
	rows := float32(len(objects) / 3)
	pad := theme.Padding()
	return fyne.NewSize(label+value+200+2*pad, rows*row+max(rows-1, 0)*pad)
}
