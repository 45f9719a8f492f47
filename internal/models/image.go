package models

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// MaxDimension bounds either side of a loaded image.
const MaxDimension = 32768

var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Image is an 8-bit, three channel raster stored in B,G,R byte order.
// It is treated as immutable once handed to the controller.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewImage allocates a black image.
func NewImage(width, height int) (*Image, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}, nil
}

// NewImageFromBGR wraps an existing BGR buffer without copying it.
func NewImageFromBGR(width, height int, pix []uint8) (*Image, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d", len(pix), width*height*3, width, height)
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any decoded Go image into BGR. Alpha is discarded.
func FromImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := src.Bounds()
	img, err := NewImage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	switch typed := src.(type) {
	case *image.RGBA:
		img.copyFromRGBA(typed)
	case *image.NRGBA:
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				c := typed.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
				img.SetBGR(x, y, c.B, c.G, c.R)
			}
		}
	default:
		rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
		img.copyFromRGBA(rgba)
	}

	return img, nil
}

func (im *Image) copyFromRGBA(src *image.RGBA) {
	bounds := src.Bounds()
	for y := 0; y < im.Height; y++ {
		start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		row := src.Pix[start : start+im.Width*4]
		offset := y * im.Width * 3
		for x := 0; x < im.Width; x++ {
			im.Pix[offset+x*3] = row[x*4+2]
			im.Pix[offset+x*3+1] = row[x*4+1]
			im.Pix[offset+x*3+2] = row[x*4]
		}
	}
}

// ValidateDimensions rejects empty or oversized rasters.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, MaxDimension)
	}
	return nil
}

// PixelCount returns Width*Height.
func (im *Image) PixelCount() int {
	return im.Width * im.Height
}

func (im *Image) offset(x, y int) int {
	return (y*im.Width + x) * 3
}

// BGRAt returns the pixel at (x, y). Coordinates must be in bounds.
func (im *Image) BGRAt(x, y int) (b, g, r uint8) {
	i := im.offset(x, y)
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2]
}

// SetBGR writes the pixel at (x, y). Coordinates must be in bounds.
func (im *Image) SetBGR(x, y int, b, g, r uint8) {
	i := im.offset(x, y)
	im.Pix[i] = b
	im.Pix[i+1] = g
	im.Pix[i+2] = r
}

// Fill sets every pixel to the same colour.
func (im *Image) Fill(b, g, r uint8) {
	for i := 0; i < len(im.Pix); i += 3 {
		im.Pix[i] = b
		im.Pix[i+1] = g
		im.Pix[i+2] = r
	}
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	pix := make([]uint8, len(im.Pix))
	copy(pix, im.Pix)
	return &Image{Width: im.Width, Height: im.Height, Pix: pix}
}

// Equal reports whether both images have the same size and pixels.
func (im *Image) Equal(other *Image) bool {
	if im == nil || other == nil {
		return im == other
	}
	if im.Width != other.Width || im.Height != other.Height || len(im.Pix) != len(other.Pix) {
		return false
	}
	for i := range im.Pix {
		if im.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ToRGBA converts to an opaque *image.RGBA for renderers and encoders.
func (im *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+im.Width*4]
		offset := y * im.Width * 3
		for x := 0; x < im.Width; x++ {
			row[x*4] = im.Pix[offset+x*3+2]
			row[x*4+1] = im.Pix[offset+x*3+1]
			row[x*4+2] = im.Pix[offset+x*3]
			row[x*4+3] = 255
		}
	}
	return dst
}

func (im *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.Width, im.Height)
}

func (im *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= im.Width || y >= im.Height {
		return color.RGBA{}
	}
	b, g, r := im.BGRAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
