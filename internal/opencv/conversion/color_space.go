package conversion

import (
	"fmt"

	"foresight/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// HSVMean is the per-channel mean of a region in OpenCV HSV units:
// hue 0-180, saturation and value 0-255.
type HSVMean struct {
	Hue        float64
	Saturation float64
	Value      float64
}

// ConvertBGRToHSV converts a BGR image to HSV color space. The caller owns the result.
func ConvertBGRToHSV(src gocv.Mat) (gocv.Mat, error) {
	if err := safe.ValidateBGR(src, "BGR to HSV"); err != nil {
		return gocv.NewMat(), err
	}

	dst := gocv.NewMat()
	if err := gocv.CvtColor(src, &dst, gocv.ColorBGRToHSV); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("BGR to HSV: %w", err)
	}
	return dst, nil
}

// MeanHSV averages each HSV channel over src.
func MeanHSV(src gocv.Mat) (HSVMean, error) {
	hsv, err := ConvertBGRToHSV(src)
	if err != nil {
		return HSVMean{}, err
	}
	defer hsv.Close()

	mean := hsv.Mean()
	return HSVMean{Hue: mean.Val1, Saturation: mean.Val2, Value: mean.Val3}, nil
}
