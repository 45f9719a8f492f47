package components

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapToDisplay(t *testing.T) {
	tests := []struct {
		name   string
		pos    fyne.Position
		drawn  fyne.Size
		scale  float32
		wantX  float64
		wantY  float64
		wantOK bool
	}{
		{"inside", fyne.NewPos(50, 50), fyne.NewSize(100, 100), 1, 50, 50, true},
		{"origin", fyne.NewPos(0, 0), fyne.NewSize(100, 100), 1, 0, 0, true},
		{"past raster in larger widget", fyne.NewPos(400, 300), fyne.NewSize(100, 100), 1, 0, 0, false},
		{"right edge", fyne.NewPos(100, 10), fyne.NewSize(100, 100), 1, 0, 0, false},
		{"negative", fyne.NewPos(-1, 10), fyne.NewSize(100, 100), 1, 0, 0, false},
		{"hidpi", fyne.NewPos(25, 10), fyne.NewSize(50, 50), 2, 50, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := tapToDisplay(tt.pos, tt.drawn, tt.scale)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantX, x)
				assert.Equal(t, tt.wantY, y)
			}
		})
	}
}

func TestInteractiveImageKeepsRasterSizeInLargerViewport(t *testing.T) {
	test.NewTempApp(t)

	ii := NewInteractiveImage()
	var taps [][2]float64
	ii.SetOnPrimary(func(x, y float64) { taps = append(taps, [2]float64{x, y}) })

	ii.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	ii.Resize(fyne.NewSize(800, 600))

	assert.Equal(t, fyne.NewSize(100, 100), ii.image.Size())
	assert.Equal(t, fyne.NewPos(0, 0), ii.image.Position())

	ii.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 50)})
	ii.Tapped(&fyne.PointEvent{Position: fyne.NewPos(400, 300)})

	require.Len(t, taps, 1)
	assert.Equal(t, [2]float64{50, 50}, taps[0])
}

func TestInteractiveImageIgnoresTapsOnPlaceholder(t *testing.T) {
	test.NewTempApp(t)

	ii := NewInteractiveImage()
	called := false
	ii.SetOnPrimary(func(float64, float64) { called = true })

	ii.Tapped(&fyne.PointEvent{Position: fyne.NewPos(10, 10)})
	assert.False(t, called)
}
