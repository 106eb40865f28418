package pipeline

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"foresight/internal/media"
	"foresight/internal/opencv/safe"
)

type videoInfo struct {
	FPS    float64
	Frames int
	Width  int
	Height int
}

const fallbackFPS = 25.0

type frameLoader struct {
	logger        Logger
	timingTracker TimingTracker
}

func (l *frameLoader) LoadImage(ctx context.Context, path string) (gocv.Mat, error) {
	timingCtx := l.timingTracker.StartTiming(ctx, "load")
	defer l.timingTracker.EndTiming(timingCtx)

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if err := safe.ValidateMatForOperation(mat, "load image"); err != nil {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%q: %w", path, media.ErrUnreadableInput)
	}

	l.logger.Debug("FrameLoader", "image loaded", map[string]interface{}{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	})
	return mat, nil
}

// OpenVideo opens path for reading. The caller closes the capture.
func (l *frameLoader) OpenVideo(ctx context.Context, path string) (*gocv.VideoCapture, videoInfo, error) {
	timingCtx := l.timingTracker.StartTiming(ctx, "open_video")
	defer l.timingTracker.EndTiming(timingCtx)

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, videoInfo{}, fmt.Errorf("%q: %w: %v", path, media.ErrUnreadableInput, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, videoInfo{}, fmt.Errorf("%q: %w", path, media.ErrUnreadableInput)
	}

	info := videoInfo{
		FPS:    capture.Get(gocv.VideoCaptureFPS),
		Frames: int(capture.Get(gocv.VideoCaptureFrameCount)),
		Width:  int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}
	if info.FPS <= 0 {
		info.FPS = fallbackFPS
	}

	l.logger.Debug("FrameLoader", "video opened", map[string]interface{}{
		"path":   path,
		"fps":    info.FPS,
		"frames": info.Frames,
		"width":  info.Width,
		"height": info.Height,
	})
	return capture, info, nil
}
