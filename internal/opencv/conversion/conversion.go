// Package conversion moves rasters between the engine's BGR buffers and
// OpenCV matrices and runs the OpenCV colour and resize kernels.
package conversion

import (
	"fmt"
	"image"

	"hsv-masker/internal/models"
	"hsv-masker/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Allocator supplies destination Mats for the kernels and takes them back.
type Allocator interface {
	GetMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error)
	ReleaseMat(mat *safe.Mat)
}

// Direct allocates a fresh Mat per call and closes it on release.
type Direct struct{}

func (Direct) GetMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	return safe.NewMat(rows, cols, matType, tag)
}

func (Direct) ReleaseMat(mat *safe.Mat) {
	if mat != nil {
		mat.Close()
	}
}

func allocatorOrDirect(alloc Allocator) Allocator {
	if alloc == nil {
		return Direct{}
	}
	return alloc
}

// ImageToMat copies a BGR image into a CV_8UC3 Mat.
func ImageToMat(img *models.Image) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	return safe.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC3, img.Pix, "image")
}

// MatToImage copies a CV_8UC3 Mat back into a BGR image.
func MatToImage(src *safe.Mat) (*models.Image, error) {
	if err := safe.ValidateBGR(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}
	return models.NewImageFromBGR(src.Cols(), src.Rows(), data)
}

// ConvertBGRToHSV runs cv::cvtColor with COLOR_BGR2HSV. The destination is
// taken from alloc and handed back before returning; nil means Direct.
func ConvertBGRToHSV(src *safe.Mat, alloc Allocator) (*models.HSVBuffer, error) {
	if err := safe.ValidateBGR(src, "BGR to HSV conversion"); err != nil {
		return nil, err
	}

	alloc = allocatorOrDirect(alloc)
	dst, err := alloc.GetMat(src.Rows(), src.Cols(), gocv.MatTypeCV8UC3, "hsv")
	if err != nil {
		return nil, err
	}
	defer alloc.ReleaseMat(dst)

	srcMat := src.GetMat()
	dstMat := dst.GetMat()
	gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRToHSV)

	data, err := dst.Bytes()
	if err != nil {
		return nil, err
	}
	return models.NewHSVBufferFrom(src.Cols(), src.Rows(), data)
}

// ResizeArea scales src to width x height with area interpolation. The
// returned Mat comes from alloc and must be released to it.
func ResizeArea(src *safe.Mat, width, height int, alloc Allocator) (*safe.Mat, error) {
	if err := safe.ValidateBGR(src, "resize"); err != nil {
		return nil, err
	}
	if err := safe.ValidateDimensions(width, height, "resize"); err != nil {
		return nil, err
	}

	dst, err := allocatorOrDirect(alloc).GetMat(height, width, gocv.MatTypeCV8UC3, "resized")
	if err != nil {
		return nil, err
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()
	gocv.Resize(srcMat, &dstMat, image.Pt(width, height), 0, 0, gocv.InterpolationArea)

	return dst, nil
}

// Decode reads an encoded image buffer as 8-bit BGR.
func Decode(data []byte) (*models.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image buffer")
	}

	decoded, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("imdecode: %w", err)
	}
	mat, err := safe.Adopt(decoded, "decoded")
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	return MatToImage(mat)
}
