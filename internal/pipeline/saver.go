package pipeline

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"
)

const videoCodec = "mp4v"

type frameSaver struct {
	logger        Logger
	timingTracker TimingTracker
}

func (s *frameSaver) SaveImage(ctx context.Context, path string, mat gocv.Mat) error {
	timingCtx := s.timingTracker.StartTiming(ctx, "save")
	defer s.timingTracker.EndTiming(timingCtx)

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write image %q", path)
	}
	s.logger.Debug("FrameSaver", "image written", map[string]interface{}{"path": path})
	return nil
}

// videoSink opens its writer on the first frame so the output size always
// matches the composed frames.
type videoSink struct {
	path   string
	fps    float64
	writer *gocv.VideoWriter
	logger Logger
}

func (v *videoSink) Write(frame gocv.Mat) error {
	if v.writer == nil {
		w, err := gocv.VideoWriterFile(v.path, videoCodec, v.fps, frame.Cols(), frame.Rows(), true)
		if err != nil {
			return fmt.Errorf("open video writer %q: %w", v.path, err)
		}
		if !w.IsOpened() {
			w.Close()
			return fmt.Errorf("open video writer %q: codec %s unavailable", v.path, videoCodec)
		}
		v.writer = w
		v.logger.Debug("FrameSaver", "video writer opened", map[string]interface{}{
			"path":   v.path,
			"codec":  videoCodec,
			"fps":    v.fps,
			"width":  frame.Cols(),
			"height": frame.Rows(),
		})
	}
	return v.writer.Write(frame)
}

func (v *videoSink) Close() error {
	if v.writer == nil {
		return nil
	}
	err := v.writer.Close()
	v.writer = nil
	return err
}
