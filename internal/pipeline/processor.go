package pipeline

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"foresight/internal/annotate"
	"foresight/internal/detection"
	"foresight/internal/render"
)

type frameProcessor struct {
	detector      detection.Detector
	planner       *annotate.Planner
	confidence    float64
	timingTracker TimingTracker
}

// Process detects and annotates one frame. The caller owns the returned Mat.
func (p *frameProcessor) Process(ctx context.Context, frame gocv.Mat) (gocv.Mat, error) {
	detectCtx := p.timingTracker.StartTiming(ctx, "detect")
	detections, err := p.detector.Detect(frame, p.confidence)
	p.timingTracker.EndTiming(detectCtx)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("detect: %w", err)
	}

	renderCtx := p.timingTracker.StartTiming(ctx, "render")
	defer p.timingTracker.EndTiming(renderCtx)
	return render.Frame(frame, detections, p.planner)
}
