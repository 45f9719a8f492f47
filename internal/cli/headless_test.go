package cli

import (
	"context"
	"path/filepath"
	"testing"

	"hsv-masker/internal/controllers"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"
	"hsv-masker/internal/processing"
	"hsv-masker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type headlessFixture struct {
	store *services.ImageService
	mc    *controllers.MaskingController
	in    string
	out   string
}

func newHeadlessFixture(t *testing.T) *headlessFixture {
	t.Helper()
	dir := t.TempDir()
	store := services.NewImageService(logger.Nop(), nil, services.DefaultJPEGQuality)

	img, err := models.NewImage(20, 20)
	require.NoError(t, err)
	img.Fill(0, 0, 255)
	for x := 10; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.SetBGR(x, y, 255, 0, 0)
		}
	}

	in := filepath.Join(dir, "in.png")
	require.NoError(t, store.Save(context.Background(), in, img))

	return &headlessFixture{
		store: store,
		mc:    controllers.NewMaskingController(processing.NewNative(), store, logger.Nop(), nil),
		in:    in,
		out:   filepath.Join(dir, "out.png"),
	}
}

func (f *headlessFixture) result(t *testing.T) *models.Image {
	t.Helper()
	img, err := f.store.Load(context.Background(), f.out)
	require.NoError(t, err)
	return img
}

func white(t *testing.T, img *models.Image, x, y int) bool {
	t.Helper()
	b, g, r := img.BGRAt(x, y)
	return b == 255 && g == 255 && r == 255
}

func TestRunHeadlessPickAndErase(t *testing.T) {
	f := newHeadlessFixture(t)
	opts := &Options{
		In:    f.in,
		Out:   f.out,
		Pick:  &Point{X: 2, Y: 2},
		Erase: []Point{{X: 0, Y: 0}, {X: 50, Y: 50}},
	}

	require.NoError(t, RunHeadless(context.Background(), f.mc, opts, logger.Nop()))

	out := f.result(t)
	assert.Equal(t, 20, out.Width)
	assert.Equal(t, 20, out.Height)

	// Red half survives except the erased corner; blue half is outside the
	// picked range.
	assert.True(t, white(t, out, 0, 0))
	b, g, r := out.BGRAt(9, 19)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{b, g, r})
	assert.True(t, white(t, out, 15, 10))

	state := f.mc.Snapshot()
	assert.Equal(t, 26, state.ErasedPixels)
	assert.Equal(t, 200-26, state.SelectedPixels)
}

func TestRunHeadlessUsesCurrentRange(t *testing.T) {
	f := newHeadlessFixture(t)
	require.NoError(t, f.mc.SetRange(models.HSVRange{HMin: 100, HMax: 140, SMin: 0, SMax: 255, VMin: 0, VMax: 255}))

	require.NoError(t, RunHeadless(context.Background(), f.mc, &Options{In: f.in, Out: f.out}, nil))

	out := f.result(t)
	assert.True(t, white(t, out, 0, 0))
	b, g, r := out.BGRAt(15, 10)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{b, g, r})
}

func TestRunHeadlessPickOutsideImage(t *testing.T) {
	f := newHeadlessFixture(t)
	opts := &Options{In: f.in, Out: f.out, Pick: &Point{X: 20, Y: 0}}

	err := RunHeadless(context.Background(), f.mc, opts, nil)
	assert.Error(t, err)
	assert.NoFileExists(t, f.out)
}

func TestRunHeadlessMissingInput(t *testing.T) {
	f := newHeadlessFixture(t)
	opts := &Options{In: filepath.Join(t.TempDir(), "missing.png"), Out: f.out}

	err := RunHeadless(context.Background(), f.mc, opts, nil)

	var loadErr *services.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.False(t, f.mc.Snapshot().Loaded)
}

func TestRunHeadlessNeedsInput(t *testing.T) {
	f := newHeadlessFixture(t)
	assert.Error(t, RunHeadless(context.Background(), f.mc, &Options{}, nil))
}
