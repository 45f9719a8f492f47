// Package opencv runs the colour conversion and display resampling through
// OpenCV.
package opencv

import (
	"fmt"

	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"
	"hsv-masker/internal/opencv/conversion"
	"hsv-masker/internal/opencv/memory"
)

// Backend implements processing.Backend with gocv. Destination Mats are
// recycled through a memory.Manager.
type Backend struct {
	memory *memory.Manager
}

func NewBackend(log logger.Logger) *Backend {
	return &Backend{
		memory: memory.NewManager(log, memory.DefaultMaxBytes, memory.DefaultPoolSize),
	}
}

func (b *Backend) Name() string {
	return "opencv"
}

func (b *Backend) ToHSV(img *models.Image) (*models.HSVBuffer, error) {
	mat, err := conversion.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("hsv conversion: %w", err)
	}
	defer mat.Close()

	return conversion.ConvertBGRToHSV(mat, b.memory)
}

func (b *Backend) Resize(img *models.Image, width, height int) (*models.Image, error) {
	if img != nil && img.Width == width && img.Height == height {
		return img.Clone(), nil
	}

	mat, err := conversion.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	defer mat.Close()

	resized, err := conversion.ResizeArea(mat, width, height, b.memory)
	if err != nil {
		return nil, err
	}
	defer b.memory.ReleaseMat(resized)

	return conversion.MatToImage(resized)
}

func (b *Backend) MemoryStats() memory.Stats {
	return b.memory.GetStats()
}

// Shutdown closes every pooled Mat.
func (b *Backend) Shutdown() {
	b.memory.Cleanup()
}
