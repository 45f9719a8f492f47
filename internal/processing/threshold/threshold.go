// Package threshold builds the colour selection mask from an HSV range.
package threshold

import (
	"fmt"

	"hsv-masker/internal/models"
	"hsv-masker/internal/processing/mask"
)

// Build marks every pixel whose H, S and V all fall inside the closed
// intervals of r. A channel with min > max selects nothing.
func Build(hsv *models.HSVBuffer, r models.HSVRange) (*mask.Mask, error) {
	if hsv == nil {
		return nil, fmt.Errorf("hsv buffer is nil")
	}

	m, err := mask.New(hsv.Width, hsv.Height)
	if err != nil {
		return nil, err
	}
	if r.IsEmpty() {
		return m, nil
	}

	hMin, hMax := r.HMin, r.HMax
	sMin, sMax := r.SMin, r.SMax
	vMin, vMax := r.VMin, r.VMax

	pix := hsv.Pix
	for i := range m.Bits {
		h, s, v := int(pix[i*3]), int(pix[i*3+1]), int(pix[i*3+2])
		m.Bits[i] = hMin <= h && h <= hMax &&
			sMin <= s && s <= sMax &&
			vMin <= v && v <= vMax
	}
	return m, nil
}
