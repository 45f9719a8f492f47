package cli

import (
	"context"
	"fmt"

	"hsv-masker/internal/controllers"
	"hsv-masker/internal/logger"
)

// Masker is the part of the masking controller a headless run drives.
type Masker interface {
	LoadImage(ctx context.Context, path string) error
	PickColor(x, y float64) bool
	Erase(x, y float64) bool
	SaveResult(ctx context.Context, path string) error
	Snapshot() controllers.State
}

// RunHeadless loads opts.In, applies the pick and erase points in order and
// writes the full resolution result to opts.Out. The range itself is applied
// by the caller before the run.
func RunHeadless(ctx context.Context, m Masker, opts *Options, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	if !opts.Headless() {
		return fmt.Errorf("no input image")
	}

	if err := m.LoadImage(ctx, opts.In); err != nil {
		return err
	}

	if opts.Pick != nil {
		if !m.PickColor(opts.Pick.X, opts.Pick.Y) {
			return fmt.Errorf("pick %s is outside the image", opts.Pick)
		}
	}

	for _, p := range opts.Erase {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !m.Erase(p.X, p.Y) {
			log.Warning("Headless", "erase point outside the image", map[string]interface{}{
				"point": p.String(),
			})
		}
	}

	if err := m.SaveResult(ctx, opts.Out); err != nil {
		return err
	}

	state := m.Snapshot()
	log.Info("Headless", "masked image written", map[string]interface{}{
		"in":       opts.In,
		"out":      opts.Out,
		"range":    state.Range.String(),
		"selected": state.SelectedPixels,
		"erased":   state.ErasedPixels,
	})
	return nil
}
