package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"foresight/internal/annotate"
	"foresight/internal/debug/timing"
	"foresight/internal/media"
	"foresight/internal/models"
)

// Runner performs one detection and overlay run at a time.
type Runner struct {
	mu       sync.Mutex
	models   DetectorSource
	logger   Logger
	progress io.Writer
}

func NewRunner(source DetectorSource, log Logger, progress io.Writer) *Runner {
	return &Runner{models: source, logger: log, progress: progress}
}

// Shutdown waits for an in-flight run to return. Cancel the run's context
// first so a video run stops at the next frame and finalizes its output.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
}

// Plan validates the preconditions of a run and names its output.
func Plan(settings models.Settings, source DetectorSource) (media.Kind, string, bool, error) {
	if _, err := source.Detector(); err != nil {
		return media.KindUnknown, "", false, err
	}
	if settings.InputFile == "" {
		return media.KindUnknown, "", false, ErrNoInput
	}
	kind, err := media.CheckInput(settings.InputFile)
	if err != nil {
		return kind, "", false, err
	}

	dir, fellBack := media.OutputDir(settings.OutputDir, settings.InputFile)
	out, err := media.OutputPath(settings.InputFile, dir)
	if err != nil {
		return kind, "", fellBack, err
	}
	return kind, out, fellBack, nil
}

// Run annotates settings.InputFile and writes the result next to it or into
// settings.OutputDir. Debounce state lives for this run only.
func (r *Runner) Run(ctx context.Context, settings models.Settings) (*models.RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind, outPath, _, err := Plan(settings, r.models)
	if err != nil {
		return nil, err
	}
	detector, err := r.models.Detector()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := r.logger.With("run_id", runID)
	tracker := timing.NewTracker()
	proc := &frameProcessor{
		detector:      detector,
		planner:       annotate.NewPlanner(settings),
		confidence:    settings.Confidence(),
		timingTracker: tracker,
	}

	log.Info("Runner", "run started", map[string]interface{}{
		"input":      settings.InputFile,
		"output":     outPath,
		"kind":       kind.String(),
		"confidence": proc.confidence,
		"debounce":   settings.Debounce,
	})

	start := time.Now()
	res := &models.RunResult{RunID: runID, OutputPath: outPath}
	switch kind {
	case media.KindImage:
		err = r.runImage(ctx, log, settings.InputFile, outPath, proc, tracker)
		if err == nil {
			res.Frames = 1
		}
	case media.KindVideo:
		res.Frames, err = r.runVideo(ctx, log, settings.InputFile, outPath, proc, tracker)
	default:
		err = media.ErrUnsupportedExtension
	}
	res.Elapsed = time.Since(start)

	fields := map[string]interface{}{
		"frames":     res.Frames,
		"elapsed_ms": res.Elapsed.Milliseconds(),
	}
	for _, s := range tracker.Summary() {
		fields[s.Operation+"_avg_ms"] = float64(s.Average.Microseconds()) / 1000
		fields[s.Operation+"_max_ms"] = float64(s.Max.Microseconds()) / 1000
	}
	if err != nil {
		log.Error("Runner", err, fields)
		return nil, err
	}
	log.Info("Runner", "run completed", fields)
	return res, nil
}

func (r *Runner) runImage(ctx context.Context, log Logger, in, out string, proc *frameProcessor, tracker TimingTracker) error {
	loader := &frameLoader{logger: log, timingTracker: tracker}
	saver := &frameSaver{logger: log, timingTracker: tracker}

	frame, err := loader.LoadImage(ctx, in)
	if err != nil {
		return err
	}
	defer frame.Close()

	annotated, err := proc.Process(ctx, frame)
	if err != nil {
		return err
	}
	defer annotated.Close()

	return saver.SaveImage(ctx, out, annotated)
}

func (r *Runner) runVideo(ctx context.Context, log Logger, in, out string, proc *frameProcessor, tracker TimingTracker) (int, error) {
	loader := &frameLoader{logger: log, timingTracker: tracker}

	capture, info, err := loader.OpenVideo(ctx, in)
	if err != nil {
		return 0, err
	}
	defer capture.Close()

	sink := &videoSink{path: out, fps: info.FPS, logger: log}
	bar := NewProgressPrinter(r.progress, "Processing video frames")

	frame := gocv.NewMat()
	defer frame.Close()

	written := 0
	for {
		if err := ctx.Err(); err != nil {
			return written, errors.Join(fmt.Errorf("video run interrupted: %w", err), sink.Close())
		}
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			break
		}

		annotated, err := proc.Process(ctx, frame)
		if err != nil {
			return written, errors.Join(fmt.Errorf("frame %d: %w", written, err), sink.Close())
		}
		err = sink.Write(annotated)
		annotated.Close()
		if err != nil {
			return written, errors.Join(fmt.Errorf("frame %d: %w", written, err), sink.Close())
		}

		written++
		bar.Update(written, info.Frames)
	}

	if written == 0 {
		return 0, fmt.Errorf("%q: no frames decoded: %w", in, media.ErrUnreadableInput)
	}
	if info.Frames > 0 {
		bar.Finish()
	}
	return written, sink.Close()
}
