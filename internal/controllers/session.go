package controllers

import (
	"hsv-masker/internal/models"
	"hsv-masker/internal/processing/mask"
	"hsv-masker/internal/viewport"
)

// session is everything tied to one loaded image. It is replaced as a whole
// on load.
type session struct {
	image *models.Image
	hsv   *models.HSVBuffer
	erase *mask.Erase
	view  *viewport.View

	threshold *mask.Mask
	result    *models.Image
	display   *models.Image
	selected  int

	thresholdDirty bool
	resultDirty    bool
	displayDirty   bool
}

func newSession(img *models.Image, hsv *models.HSVBuffer, erase *mask.Erase) *session {
	return &session{
		image:          img,
		hsv:            hsv,
		erase:          erase,
		view:           viewport.NewView(),
		thresholdDirty: true,
		resultDirty:    true,
		displayDirty:   true,
	}
}

func (s *session) invalidateThreshold() {
	s.thresholdDirty = true
	s.resultDirty = true
	s.displayDirty = true
}

func (s *session) invalidateResult() {
	s.resultDirty = true
	s.displayDirty = true
}

func (s *session) imageCoords(x, y float64) (int, int, bool) {
	ix, iy := s.view.ImageCoords(x, y)
	return ix, iy, viewport.InBounds(ix, iy, s.image.Width, s.image.Height)
}
