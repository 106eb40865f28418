package render

import (
	"fmt"

	"gocv.io/x/gocv"

	"foresight/internal/annotate"
	"foresight/internal/models"
	"foresight/internal/opencv/conversion"
	"foresight/internal/opencv/safe"
)

// Frame draws one frame according to the planner's settings. The source is
// left untouched and the caller owns the returned Mat.
func Frame(src gocv.Mat, detections []models.Detection, planner *annotate.Planner) (gocv.Mat, error) {
	if err := safe.ValidateBGR(src, "annotate frame"); err != nil {
		return gocv.NewMat(), err
	}
	settings := planner.Settings()

	annotated := src.Clone()
	annotations := planner.Plan(detections, NewFrameMeasurer(src))
	if err := Draw(&annotated, annotations, settings.FontScale); err != nil {
		annotated.Close()
		return gocv.NewMat(), err
	}

	out := annotated
	if settings.SideBySide {
		combined, err := conversion.SideBySide(src, annotated)
		annotated.Close()
		if err != nil {
			return gocv.NewMat(), fmt.Errorf("side by side: %w", err)
		}
		out = combined
	}

	if settings.TopLeftList {
		if err := DrawList(&out, annotate.Lines(annotations), settings.FontScale); err != nil {
			out.Close()
			return gocv.NewMat(), err
		}
	}
	return out, nil
}
