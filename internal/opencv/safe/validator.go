package safe

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const maxDimension = 32768

func ValidateMatForOperation(mat gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	return ValidateDimensions(mat.Cols(), mat.Rows(), operation)
}

// ValidateBGR checks for an 8-bit three-channel frame as decoded by OpenCV.
func ValidateBGR(mat gocv.Mat, operation string) error {
	if err := ValidateMatForOperation(mat, operation); err != nil {
		return err
	}

	if mat.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("%s requires an 8-bit BGR Mat, got type %d with %d channels",
			operation, int(mat.Type()), mat.Channels())
	}

	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}

	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	return nil
}

// ValidateRegion checks that r is non-empty and lies inside mat.
func ValidateRegion(mat gocv.Mat, r image.Rectangle, operation string) error {
	bounds := image.Rect(0, 0, mat.Cols(), mat.Rows())
	if r.Empty() {
		return fmt.Errorf("empty region %v for operation: %s", r, operation)
	}
	if !r.In(bounds) {
		return fmt.Errorf("region %v outside %v for operation: %s", r, bounds, operation)
	}
	return nil
}
