package render

import (
	"image"

	"gocv.io/x/gocv"

	"foresight/internal/models"
	"foresight/internal/opencv/conversion"
)

// FrameMeasurer reads liquid metrics from an unannotated frame.
type FrameMeasurer struct {
	frame gocv.Mat
}

func NewFrameMeasurer(frame gocv.Mat) *FrameMeasurer {
	return &FrameMeasurer{frame: frame}
}

// Measure returns mean HSV value as turbidity, mean hue as color and the box
// height over the frame height as volume. An empty crop yields false.
func (m *FrameMeasurer) Measure(box image.Rectangle) (models.LiquidMetrics, bool) {
	bounds := image.Rect(0, 0, m.frame.Cols(), m.frame.Rows())
	box = models.ClipBox(box, bounds)
	if box.Empty() {
		return models.LiquidMetrics{}, false
	}

	crop := m.frame.Region(box)
	defer crop.Close()

	hsv, err := conversion.MeanHSV(crop)
	if err != nil {
		return models.LiquidMetrics{}, false
	}

	return models.LiquidMetrics{
		Turbidity: hsv.Value,
		Hue:       hsv.Hue,
		Volume:    VolumeFraction(box, bounds.Dy()),
	}, true
}

func VolumeFraction(box image.Rectangle, frameHeight int) float64 {
	if frameHeight <= 0 {
		return 0
	}
	return float64(box.Dy()) / float64(frameHeight)
}
