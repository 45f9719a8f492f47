package safe

import (
	"fmt"

	"hsv-masker/internal/models"
)

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if !mat.IsValid() {
		return fmt.Errorf("Mat is invalid for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	return ValidateDimensions(mat.Cols(), mat.Rows(), operation)
}

// ValidateBGR requires an 8-bit, three channel Mat.
func ValidateBGR(mat *Mat, operation string) error {
	if err := ValidateMatForOperation(mat, operation); err != nil {
		return err
	}
	if channels := mat.Channels(); channels != 3 {
		return fmt.Errorf("%s requires 3 channels, got %d", operation, channels)
	}
	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if err := models.ValidateDimensions(width, height); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}
