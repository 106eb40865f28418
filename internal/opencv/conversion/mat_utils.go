package conversion

import (
	"fmt"
	"image"

	"foresight/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ResizeToHeight scales src to height, keeping its width. The caller owns the result.
func ResizeToHeight(src gocv.Mat, height int) (gocv.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "resize"); err != nil {
		return gocv.NewMat(), err
	}
	if err := safe.ValidateDimensions(src.Cols(), height, "resize"); err != nil {
		return gocv.NewMat(), err
	}

	dst := gocv.NewMat()
	if err := gocv.Resize(src, &dst, image.Pt(src.Cols(), height), 0, 0, gocv.InterpolationLinear); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("resize: %w", err)
	}
	return dst, nil
}

// SideBySide stacks left and right horizontally. right is resized to the
// height of left when they differ. The caller owns the result.
func SideBySide(left, right gocv.Mat) (gocv.Mat, error) {
	if err := safe.ValidateMatForOperation(left, "side by side"); err != nil {
		return gocv.NewMat(), err
	}
	if err := safe.ValidateMatForOperation(right, "side by side"); err != nil {
		return gocv.NewMat(), err
	}

	rhs := right
	if right.Rows() != left.Rows() {
		resized, err := ResizeToHeight(right, left.Rows())
		if err != nil {
			return gocv.NewMat(), err
		}
		defer resized.Close()
		rhs = resized
	}

	dst := gocv.NewMat()
	if err := gocv.Hconcat(left, rhs, &dst); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("hconcat: %w", err)
	}
	return dst, nil
}
