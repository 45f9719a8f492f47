// Package resample scales BGR images for display.
package resample

import (
	"fmt"
	"image"

	"hsv-masker/internal/models"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resize returns img scaled to width x height. Shrinking along either axis
// averages source pixels with a box filter, the closest match to OpenCV's
// area interpolation; pure enlargement is bilinear.
func Resize(img *models.Image, width, height int) (*models.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if err := models.ValidateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	if width == img.Width && height == img.Height {
		return img.Clone(), nil
	}

	src := img.ToRGBA()
	if width < img.Width || height < img.Height {
		return models.FromImage(imaging.Resize(src, width, height, imaging.Box))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return models.FromImage(dst)
}
