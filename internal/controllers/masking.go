package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"hsv-masker/internal/debug/timing"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"
	"hsv-masker/internal/pipeline"
	"hsv-masker/internal/processing"
	"hsv-masker/internal/processing/composite"
	"hsv-masker/internal/processing/mask"
	"hsv-masker/internal/processing/threshold"
	"hsv-masker/internal/services"
)

// EraseRadius is the brush radius in image pixels, independent of zoom.
const EraseRadius = 5

var ErrNoImage = errors.New("no image loaded")

// ImageStore reads and writes images on behalf of the controller.
type ImageStore interface {
	Load(ctx context.Context, path string) (*models.Image, error)
	Decode(ctx context.Context, name string, r io.Reader) (*models.Image, error)
	Save(ctx context.Context, path string, img *models.Image) error
	Encode(ctx context.Context, w io.Writer, format string, img *models.Image) error
}

// Renderer receives a frame after every change that affects the display.
// Render is called without the controller lock held.
type Renderer interface {
	Render(frame Frame)
}

type RendererFunc func(frame Frame)

func (f RendererFunc) Render(frame Frame) {
	f(frame)
}

// Frame is the display raster with the state it was produced from.
// Display is nil until an image is loaded and must not be modified.
type Frame struct {
	Display *models.Image
	State   State
}

// State is a read-only summary for status displays. SelectedPixels reflects
// the last completed recompute.
type State struct {
	Loaded         bool
	ImageWidth     int
	ImageHeight    int
	DisplayWidth   int
	DisplayHeight  int
	Scale          float64
	Range          models.HSVRange
	ErasedPixels   int
	SelectedPixels int
}

// MaskingController owns the loaded image and its masks and applies user
// interactions to them.
type MaskingController struct {
	mu      sync.Mutex
	backend processing.Backend
	store   ImageStore
	logger  logger.Logger
	timing  *timing.Tracker

	scheduler *pipeline.Scheduler
	renderer  Renderer

	rng     models.HSVRange
	margins models.PickMargins
	session *session
}

func NewMaskingController(backend processing.Backend, store ImageStore, log logger.Logger, tracker *timing.Tracker) *MaskingController {
	if backend == nil {
		backend = processing.NewNative()
	}
	if log == nil {
		log = logger.Nop()
	}
	if tracker == nil {
		tracker = timing.NewTracker(0)
	}

	return &MaskingController{
		backend: backend,
		store:   store,
		logger:  log,
		timing:  tracker,
		rng:     models.FullRange(),
		margins: models.DefaultPickMargins,
	}
}

// SetRenderer attaches the sink for display frames.
func (mc *MaskingController) SetRenderer(renderer Renderer) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.renderer = renderer
}

// SetScheduler moves recomputation onto the scheduler's worker. Passing nil
// restores synchronous recomputation.
func (mc *MaskingController) SetScheduler(scheduler *pipeline.Scheduler) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.scheduler = scheduler
}

// LoadImage reads path through the store and replaces the current image.
// On failure the previous session is left untouched.
func (mc *MaskingController) LoadImage(ctx context.Context, path string) error {
	if mc.store == nil {
		return fmt.Errorf("load %s: no image store configured", path)
	}

	img, err := mc.store.Load(ctx, path)
	if err != nil {
		mc.logger.Error("MaskingController", err, map[string]interface{}{"path": path})
		return err
	}

	if err := mc.SetImage(img); err != nil {
		mc.logger.Error("MaskingController", err, map[string]interface{}{"path": path})
		return &services.LoadError{Path: path, Err: err}
	}

	mc.logger.Info("MaskingController", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  img.Width,
		"height": img.Height,
	})
	return nil
}

// LoadImageFrom decodes r and replaces the current image.
func (mc *MaskingController) LoadImageFrom(ctx context.Context, name string, r io.Reader) error {
	if mc.store == nil {
		return fmt.Errorf("load %s: no image store configured", name)
	}

	img, err := mc.store.Decode(ctx, name, r)
	if err != nil {
		mc.logger.Error("MaskingController", err, map[string]interface{}{"path": name})
		return err
	}

	if err := mc.SetImage(img); err != nil {
		mc.logger.Error("MaskingController", err, map[string]interface{}{"path": name})
		return &services.LoadError{Path: name, Err: err}
	}

	mc.logger.Info("MaskingController", "image loaded", map[string]interface{}{
		"path":   name,
		"width":  img.Width,
		"height": img.Height,
	})
	return nil
}

// SetImage installs img as the working image: the HSV buffer is recomputed,
// the erase mask cleared and the zoom reset. The current range is kept.
func (mc *MaskingController) SetImage(img *models.Image) error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}
	if err := models.ValidateDimensions(img.Width, img.Height); err != nil {
		return err
	}

	tctx := mc.timing.StartTiming("hsv_conversion")
	hsv, err := mc.backend.ToHSV(img)
	elapsed := mc.timing.EndTiming(tctx)
	if err != nil {
		return fmt.Errorf("hsv conversion: %w", err)
	}

	erase, err := mask.NewErase(img.Width, img.Height)
	if err != nil {
		return err
	}

	mc.logger.Debug("MaskingController", "hsv buffer computed", map[string]interface{}{
		"backend":  mc.backend.Name(),
		"duration": elapsed.String(),
	})

	mc.mu.Lock()
	mc.session = newSession(img, hsv, erase)
	mc.mu.Unlock()

	mc.refresh()
	return nil
}

// HandlePointer dispatches a click: primary picks a colour, secondary erases.
func (mc *MaskingController) HandlePointer(ev PointerEvent) bool {
	switch ev.Button {
	case ButtonPrimary:
		return mc.PickColor(ev.X, ev.Y)
	case ButtonSecondary:
		return mc.Erase(ev.X, ev.Y)
	default:
		return false
	}
}

// HandleWheel zooms when the modifier is held. Unmodified wheel events are
// not consumed.
func (mc *MaskingController) HandleWheel(ev WheelEvent) bool {
	if !ev.Modifier || ev.Direction == 0 {
		return false
	}
	return mc.Zoom(ev.Direction > 0)
}

// PickColor centres the range on the HSV value under the display position.
func (mc *MaskingController) PickColor(x, y float64) bool {
	mc.mu.Lock()
	s := mc.session
	if s == nil {
		mc.mu.Unlock()
		return false
	}

	ix, iy, ok := s.imageCoords(x, y)
	if !ok {
		mc.mu.Unlock()
		return false
	}

	picked := s.hsv.At(ix, iy)
	mc.rng = models.RangeAround(picked, mc.margins)
	s.invalidateThreshold()
	rng := mc.rng
	mc.mu.Unlock()

	mc.logger.Info("MaskingController", "colour picked", map[string]interface{}{
		"x": ix, "y": iy,
		"h": picked.H, "s": picked.S, "v": picked.V,
		"range": rng.String(),
	})

	mc.refresh()
	return true
}

// Erase paints the brush at the display position into the erase mask.
func (mc *MaskingController) Erase(x, y float64) bool {
	mc.mu.Lock()
	s := mc.session
	if s == nil {
		mc.mu.Unlock()
		return false
	}

	ix, iy, ok := s.imageCoords(x, y)
	if !ok {
		mc.mu.Unlock()
		return false
	}

	painted := s.erase.PaintCircle(ix, iy, EraseRadius)
	if painted > 0 {
		s.invalidateResult()
	}
	mc.mu.Unlock()

	mc.logger.Debug("MaskingController", "erased", map[string]interface{}{
		"x": ix, "y": iy, "new_pixels": painted,
	})

	if painted > 0 {
		mc.refresh()
	}
	return true
}

// Zoom steps the scale in or out. Masks are not recomputed.
func (mc *MaskingController) Zoom(in bool) bool {
	mc.mu.Lock()
	s := mc.session
	if s == nil {
		mc.mu.Unlock()
		return false
	}

	var changed bool
	if in {
		changed = s.view.ZoomIn(s.image.Width, s.image.Height)
	} else {
		changed = s.view.ZoomOut(s.image.Width, s.image.Height)
	}
	if changed {
		s.displayDirty = true
	}
	scale := s.view.Scale
	mc.mu.Unlock()

	if !changed {
		return false
	}

	mc.logger.Debug("MaskingController", "zoom changed", map[string]interface{}{"scale": scale})
	mc.refresh()
	return true
}

// SetRangeComponent updates one bound. Out-of-domain values are rejected
// and leave the range unchanged.
func (mc *MaskingController) SetRangeComponent(c models.Component, value int) error {
	mc.mu.Lock()
	next, err := mc.rng.With(c, value)
	if err != nil {
		mc.mu.Unlock()
		return err
	}
	changed := mc.applyRangeLocked(next)
	mc.mu.Unlock()

	if changed {
		mc.logRange(next)
		mc.refresh()
	}
	return nil
}

// SetRange replaces all six bounds at once.
func (mc *MaskingController) SetRange(r models.HSVRange) error {
	if err := r.Validate(); err != nil {
		return err
	}

	mc.mu.Lock()
	changed := mc.applyRangeLocked(r)
	mc.mu.Unlock()

	if changed {
		mc.logRange(r)
		mc.refresh()
	}
	return nil
}

func (mc *MaskingController) applyRangeLocked(r models.HSVRange) bool {
	if r == mc.rng {
		return false
	}
	mc.rng = r
	if mc.session != nil {
		mc.session.invalidateThreshold()
	}
	return true
}

func (mc *MaskingController) logRange(r models.HSVRange) {
	mc.logger.Info("MaskingController", "range updated", r.Fields())
}

// Range returns the current bounds.
func (mc *MaskingController) Range() models.HSVRange {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.rng
}

// DisplayBuffer returns the composite at the current zoom, or nil before
// the first load. The returned image must not be modified.
func (mc *MaskingController) DisplayBuffer() (*models.Image, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.session == nil {
		return nil, nil
	}
	if err := mc.recomputeLocked(); err != nil {
		return nil, err
	}
	return mc.session.display, nil
}

// FullResolutionResult returns a copy of the composite at image size.
func (mc *MaskingController) FullResolutionResult() (*models.Image, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return mc.resultLocked()
}

func (mc *MaskingController) resultLocked() (*models.Image, error) {
	if mc.session == nil {
		return nil, ErrNoImage
	}
	if err := mc.recomputeLocked(); err != nil {
		return nil, err
	}
	return mc.session.result.Clone(), nil
}

// SaveResult writes the full resolution composite to path.
func (mc *MaskingController) SaveResult(ctx context.Context, path string) error {
	result, err := mc.FullResolutionResult()
	if err != nil {
		return err
	}
	if mc.store == nil {
		return fmt.Errorf("save %s: no image store configured", path)
	}
	return mc.store.Save(ctx, path, result)
}

// SaveResultTo encodes the full resolution composite to w.
func (mc *MaskingController) SaveResultTo(ctx context.Context, w io.Writer, format string) error {
	result, err := mc.FullResolutionResult()
	if err != nil {
		return err
	}
	if mc.store == nil {
		return fmt.Errorf("save: no image store configured")
	}
	return mc.store.Encode(ctx, w, format, result)
}

// Snapshot returns the current state without recomputing anything.
func (mc *MaskingController) Snapshot() State {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.stateLocked()
}

func (mc *MaskingController) stateLocked() State {
	state := State{Range: mc.rng, Scale: 1.0}
	s := mc.session
	if s == nil {
		return state
	}

	state.Loaded = true
	state.ImageWidth = s.image.Width
	state.ImageHeight = s.image.Height
	state.Scale = s.view.Scale
	state.DisplayWidth, state.DisplayHeight, _ = s.view.DisplaySize(s.image.Width, s.image.Height)
	state.ErasedPixels = s.erase.Count()
	state.SelectedPixels = s.selected
	return state
}

// Shutdown stops the recompute worker, if any, after its queued job.
func (mc *MaskingController) Shutdown() {
	mc.mu.Lock()
	scheduler := mc.scheduler
	mc.scheduler = nil
	mc.mu.Unlock()

	if scheduler != nil {
		scheduler.Close()
	}
}

func (mc *MaskingController) refresh() {
	mc.mu.Lock()
	scheduler := mc.scheduler
	mc.mu.Unlock()

	if scheduler != nil && scheduler.Submit("recompute", mc.render) {
		return
	}
	mc.render()
}

func (mc *MaskingController) render() {
	mc.mu.Lock()
	err := mc.recomputeLocked()
	frame := Frame{State: mc.stateLocked()}
	if mc.session != nil {
		frame.Display = mc.session.display
	}
	renderer := mc.renderer
	mc.mu.Unlock()

	if err != nil {
		mc.logger.Error("MaskingController", err, map[string]interface{}{"stage": "recompute"})
		return
	}
	if renderer != nil {
		renderer.Render(frame)
	}
}

// recomputeLocked brings every dirty derived value up to date.
func (mc *MaskingController) recomputeLocked() error {
	s := mc.session
	if s == nil {
		return nil
	}

	if s.thresholdDirty {
		tctx := mc.timing.StartTiming("threshold")
		th, err := threshold.Build(s.hsv, mc.rng)
		mc.timing.EndTiming(tctx)
		if err != nil {
			return fmt.Errorf("threshold: %w", err)
		}
		s.threshold = th
		s.thresholdDirty = false
		s.resultDirty = true
	}

	if s.resultDirty {
		tctx := mc.timing.StartTiming("composite")
		final, err := mask.Combine(s.threshold, s.erase)
		if err != nil {
			mc.timing.EndTiming(tctx)
			return fmt.Errorf("combine masks: %w", err)
		}
		result, err := composite.Apply(s.image, final)
		mc.timing.EndTiming(tctx)
		if err != nil {
			return fmt.Errorf("composite: %w", err)
		}
		s.result = result
		s.selected = final.Count()
		s.resultDirty = false
		s.displayDirty = true
	}

	if s.displayDirty {
		w, h, err := s.view.DisplaySize(s.image.Width, s.image.Height)
		if err != nil {
			return err
		}
		tctx := mc.timing.StartTiming("resize")
		display, err := mc.backend.Resize(s.result, w, h)
		elapsed := mc.timing.EndTiming(tctx)
		if err != nil {
			return fmt.Errorf("resize: %w", err)
		}
		s.display = display
		s.displayDirty = false

		mc.logger.Debug("MaskingController", "display rendered", map[string]interface{}{
			"width":    w,
			"height":   h,
			"duration": elapsed.String(),
		})
	}

	return nil
}
