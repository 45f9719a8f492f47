// Package composite renders the cutout: selected pixels keep their colour,
// everything else becomes white.
package composite

import (
	"fmt"

	"hsv-masker/internal/models"
	"hsv-masker/internal/processing/mask"
)

var ErrDimensionMismatch = mask.ErrDimensionMismatch

const background = 255

// Composite combines both masks and renders the result.
func Composite(img *models.Image, threshold *mask.Mask, erased *mask.Erase) (*models.Image, error) {
	final, err := mask.Combine(threshold, erased)
	if err != nil {
		return nil, err
	}
	return Apply(img, final)
}

// Apply keeps the source pixel where final is true and writes white elsewhere.
// The source image is not modified.
func Apply(img *models.Image, final *mask.Mask) (*models.Image, error) {
	if img == nil || final == nil {
		return nil, fmt.Errorf("image and mask are required")
	}
	if img.Width != final.Width || img.Height != final.Height {
		return nil, fmt.Errorf("%w: image %dx%d, mask %dx%d", ErrDimensionMismatch,
			img.Width, img.Height, final.Width, final.Height)
	}

	out := img.Clone()
	for i, keep := range final.Bits {
		if keep {
			continue
		}
		out.Pix[i*3] = background
		out.Pix[i*3+1] = background
		out.Pix[i*3+2] = background
	}
	return out, nil
}
