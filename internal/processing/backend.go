// Package processing selects the kernels that turn a loaded image into its
// HSV representation and the per-zoom display raster.
package processing

import (
	"fmt"

	"hsv-masker/internal/models"
	"hsv-masker/internal/processing/colorspace"
	"hsv-masker/internal/processing/resample"
)

// Backend provides the two image kernels whose implementation can vary.
type Backend interface {
	Name() string
	ToHSV(img *models.Image) (*models.HSVBuffer, error)
	Resize(img *models.Image, width, height int) (*models.Image, error)
}

const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

// Native runs entirely in Go.
type Native struct{}

func NewNative() *Native {
	return &Native{}
}

func (n *Native) Name() string {
	return BackendNative
}

func (n *Native) ToHSV(img *models.Image) (*models.HSVBuffer, error) {
	return colorspace.ToHSV(img)
}

func (n *Native) Resize(img *models.Image, width, height int) (*models.Image, error) {
	return resample.Resize(img, width, height)
}

// ValidateName reports whether name is a known backend.
func ValidateName(name string) error {
	switch name {
	case BackendNative, BackendOpenCV:
		return nil
	default:
		return fmt.Errorf("unknown backend %q, want %q or %q", name, BackendNative, BackendOpenCV)
	}
}
