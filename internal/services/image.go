package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hsv-masker/internal/debug/timing"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"

	DefaultJPEGQuality = 95
)

// DecodeFunc decodes an encoded buffer straight into BGR. It is tried before
// the Go decoders when set.
type DecodeFunc func(data []byte) (*models.Image, error)

// ImageService reads and writes images for the controller.
type ImageService struct {
	logger      logger.Logger
	timing      *timing.Tracker
	jpegQuality int
	decoder     DecodeFunc
}

func NewImageService(log logger.Logger, tracker *timing.Tracker, jpegQuality int) *ImageService {
	if log == nil {
		log = logger.Nop()
	}
	if tracker == nil {
		tracker = timing.NewTracker(0)
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &ImageService{
		logger:      log,
		timing:      tracker,
		jpegQuality: jpegQuality,
	}
}

// SetDecoder installs a native decoder, e.g. OpenCV's imdecode.
func (is *ImageService) SetDecoder(decoder DecodeFunc) {
	is.decoder = decoder
}

// Load reads and decodes the file at path.
func (is *ImageService) Load(ctx context.Context, path string) (*models.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	return is.Decode(ctx, path, file)
}

// Decode reads r to the end and decodes it. name is only used for errors
// and logging.
func (is *ImageService) Decode(ctx context.Context, name string, r io.Reader) (*models.Image, error) {
	tctx := is.timing.StartTiming("decode")
	defer is.timing.EndTiming(tctx)

	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("failed to read image data: %w", err)}
	}
	if len(data) == 0 {
		return nil, &LoadError{Path: name, Err: errors.New("file is empty")}
	}

	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if err := models.ValidateDimensions(cfg.Width, cfg.Height); err != nil {
			is.logger.Warning("ImageService", "rejected image before decoding", map[string]interface{}{
				"path":   name,
				"format": format,
				"width":  cfg.Width,
				"height": cfg.Height,
			})
			return nil, &LoadError{Path: name, Err: err}
		}
	}

	if is.decoder != nil {
		img, err := is.decoder(data)
		if err == nil {
			is.logger.Debug("ImageService", "decoded with native decoder", map[string]interface{}{
				"path":   name,
				"width":  img.Width,
				"height": img.Height,
			})
			return img, nil
		}
		is.logger.Debug("ImageService", "native decoder failed, trying Go decoders", map[string]interface{}{
			"path":  name,
			"error": err.Error(),
		})
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	img, err := models.FromImage(decoded)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	is.logger.Debug("ImageService", "image decoded", map[string]interface{}{
		"path":       name,
		"format":     format,
		"size_bytes": len(data),
		"width":      img.Width,
		"height":     img.Height,
	})

	return img, nil
}

// Save encodes img in the format implied by the extension of path. A failed
// write does not leave a partial file behind.
func (is *ImageService) Save(ctx context.Context, path string, img *models.Image) error {
	format, known := FormatFromPath(path)
	if !known {
		is.logger.Warning("ImageService", "unknown extension, saving as PNG", map[string]interface{}{
			"path": path,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	if err := is.Encode(ctx, file, format, img); err != nil {
		file.Close()
		os.Remove(path)
		var saveErr *SaveError
		if errors.As(err, &saveErr) {
			saveErr.Path = path
			return saveErr
		}
		return &SaveError{Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return &SaveError{Path: path, Err: err}
	}

	is.logger.Info("ImageService", "image saved", map[string]interface{}{
		"path":   path,
		"format": format,
		"width":  img.Width,
		"height": img.Height,
	})
	return nil
}

// Encode writes img to w. Unknown formats are written as PNG.
func (is *ImageService) Encode(ctx context.Context, w io.Writer, format string, img *models.Image) error {
	tctx := is.timing.StartTiming("encode")
	defer is.timing.EndTiming(tctx)

	if img == nil {
		return &SaveError{Err: errors.New("no image data to save")}
	}
	if err := ctx.Err(); err != nil {
		return &SaveError{Err: err}
	}

	rgba := img.ToRGBA()

	var err error
	switch NormalizeFormat(format) {
	case FormatJPEG:
		err = jpeg.Encode(w, rgba, &jpeg.Options{Quality: is.jpegQuality})
	case FormatBMP:
		err = bmp.Encode(w, rgba)
	case FormatTIFF:
		err = tiff.Encode(w, rgba, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(w, rgba)
	}

	if err != nil {
		is.logger.Error("ImageService", err, map[string]interface{}{
			"format": format,
		})
		return &SaveError{Err: err}
	}
	return nil
}

// NormalizeFormat maps a format or extension name onto one of the Format
// constants, defaulting to PNG.
func NormalizeFormat(format string) string {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "jpg", "jpeg":
		return FormatJPEG
	case "bmp":
		return FormatBMP
	case "tif", "tiff":
		return FormatTIFF
	default:
		return FormatPNG
	}
}

// FormatFromPath returns the output format for path and whether the
// extension was recognised.
func FormatFromPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return NormalizeFormat(ext), true
	default:
		return FormatPNG, false
	}
}

// SupportedExtensions lists the extensions the open dialog accepts.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}
}
