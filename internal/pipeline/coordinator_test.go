package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"foresight/internal/detection"
	"foresight/internal/logger"
	"foresight/internal/media"
	"foresight/internal/models"
)

type stubDetector struct{ calls int }

func (d *stubDetector) Detect(gocv.Mat, float64) ([]models.Detection, error) {
	d.calls++
	return nil, nil
}

func (d *stubDetector) Close() error { return nil }

type stubSource struct{ det detection.Detector }

func (s stubSource) Detector() (detection.Detector, error) {
	if s.det == nil {
		return nil, detection.ErrModelsNotLoaded
	}
	return s.det, nil
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlanPreconditions(t *testing.T) {
	dir := t.TempDir()
	image := touch(t, dir, "flask.jpg")
	text := touch(t, dir, "notes.txt")
	loaded := stubSource{det: &stubDetector{}}

	tests := []struct {
		name   string
		source stubSource
		input  string
		want   error
	}{
		{"models missing", stubSource{}, image, detection.ErrModelsNotLoaded},
		{"no input", loaded, "", ErrNoInput},
		{"missing file", loaded, filepath.Join(dir, "gone.png"), media.ErrUnreadableInput},
		{"unsupported extension", loaded, text, media.ErrUnsupportedExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.NewSettings()
			s.InputFile = tt.input
			_, _, _, err := Plan(s.Snapshot(), tt.source)
			if !errors.Is(err, tt.want) {
				t.Errorf("Plan error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlanOutputPath(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	video := touch(t, inDir, "run1.MOV")
	source := stubSource{det: &stubDetector{}}

	s := models.NewSettings()
	s.InputFile = video
	s.OutputDir = outDir

	kind, out, fellBack, err := Plan(s.Snapshot(), source)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if kind != media.KindVideo || fellBack {
		t.Errorf("kind=%v fellBack=%v", kind, fellBack)
	}
	if want := filepath.Join(outDir, "run1_annotated.mp4"); out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	s.OutputDir = filepath.Join(outDir, "missing")
	_, out, fellBack, err = Plan(s.Snapshot(), source)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !fellBack || out != filepath.Join(inDir, "run1_annotated.mp4") {
		t.Errorf("fallback output = %q (fellBack=%v)", out, fellBack)
	}
}

func TestRunWithoutModelsNeverDetects(t *testing.T) {
	dir := t.TempDir()
	s := models.NewSettings()
	s.InputFile = touch(t, dir, "flask.png")

	r := NewRunner(stubSource{}, logger.NewNop(), nil)
	if _, err := r.Run(context.Background(), s.Snapshot()); !errors.Is(err, detection.ErrModelsNotLoaded) {
		t.Errorf("Run error = %v, want ErrModelsNotLoaded", err)
	}
}

func TestRunImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "flask.png")
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 120, 200, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	if !gocv.IMWrite(in, frame) {
		t.Skip("OpenCV cannot write png here")
	}

	det := &stubDetector{}
	s := models.NewSettings()
	s.InputFile = in
	s.SideBySide = true

	var logs bytes.Buffer
	r := NewRunner(stubSource{det: det}, logger.NewZerolog(&logs, zerolog.DebugLevel), nil)
	res, err := r.Run(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if det.calls != 1 || res.Frames != 1 {
		t.Errorf("calls=%d frames=%d, want 1 and 1", det.calls, res.Frames)
	}
	if res.RunID == "" {
		t.Error("missing run id")
	}
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		if !strings.Contains(line, `"run_id":"`+res.RunID+`"`) {
			t.Errorf("log line missing run id: %s", line)
		}
	}

	out := gocv.IMRead(res.OutputPath, gocv.IMReadColor)
	defer out.Close()
	if out.Cols() != 128 || out.Rows() != 48 {
		t.Errorf("output size = %dx%d, want 128x48", out.Cols(), out.Rows())
	}
}

// writeVideo writes n solid frames to path, or skips when no codec is available.
func writeVideo(t *testing.T, path, codec string, n int) {
	t.Helper()
	w, err := gocv.VideoWriterFile(path, codec, 10, 64, 48, true)
	if err != nil || !w.IsOpened() {
		if err == nil {
			w.Close()
		}
		t.Skipf("OpenCV cannot write %s video here", codec)
	}
	defer w.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 120, 200, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < n; i++ {
		if err := w.Write(frame); err != nil {
			t.Fatalf("write frame %d: %v", i, err)
		}
	}
}

func TestRunVideo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "flask.avi")
	writeVideo(t, in, "MJPG", 3)
	writeVideo(t, filepath.Join(dir, "codec_check.mp4"), videoCodec, 1)

	det := &stubDetector{}
	s := models.NewSettings()
	s.InputFile = in
	s.SideBySide = true

	var progress bytes.Buffer
	r := NewRunner(stubSource{det: det}, logger.NewNop(), &progress)
	res, err := r.Run(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 3 || det.calls != 3 {
		t.Errorf("frames=%d calls=%d, want 3 and 3", res.Frames, det.calls)
	}
	if want := filepath.Join(dir, "flask_annotated.mp4"); res.OutputPath != want {
		t.Errorf("output = %q, want %q", res.OutputPath, want)
	}
	if progress.Len() > 0 && !strings.Contains(progress.String(), "3/3") {
		t.Errorf("progress did not reach 3/3: %q", progress.String())
	}

	capture, err := gocv.VideoCaptureFile(res.OutputPath)
	if err != nil {
		t.Fatalf("reopen output: %v", err)
	}
	defer capture.Close()

	frame := gocv.NewMat()
	defer frame.Close()
	if !capture.Read(&frame) || frame.Empty() {
		t.Fatal("output video has no readable frame")
	}
	if frame.Cols() != 128 || frame.Rows() != 48 {
		t.Errorf("output frame size = %dx%d, want 128x48", frame.Cols(), frame.Rows())
	}
}

func TestRunVideoWithoutFrames(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.avi")
	if err := os.WriteFile(in, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	det := &stubDetector{}
	s := models.NewSettings()
	s.InputFile = in

	r := NewRunner(stubSource{det: det}, logger.NewNop(), nil)
	if _, err := r.Run(context.Background(), s.Snapshot()); !errors.Is(err, media.ErrUnreadableInput) {
		t.Errorf("Run error = %v, want ErrUnreadableInput", err)
	}
	if det.calls != 0 {
		t.Errorf("detector called %d times", det.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty_annotated.mp4")); !os.IsNotExist(err) {
		t.Errorf("no output should be written, stat err = %v", err)
	}
}

// blockingDetector holds Detect until release is closed.
type blockingDetector struct {
	started chan struct{}
	release chan struct{}
}

func (d *blockingDetector) Detect(gocv.Mat, float64) ([]models.Detection, error) {
	close(d.started)
	<-d.release
	return nil, nil
}

func (d *blockingDetector) Close() error { return nil }

func TestShutdownWaitsForRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "flask.png")
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 120, 200, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	if !gocv.IMWrite(in, frame) {
		t.Skip("OpenCV cannot write png here")
	}

	det := &blockingDetector{started: make(chan struct{}), release: make(chan struct{})}
	s := models.NewSettings()
	s.InputFile = in

	r := NewRunner(stubSource{det: det}, logger.NewNop(), nil)
	runErr := make(chan error, 1)
	go func() {
		_, err := r.Run(context.Background(), s.Snapshot())
		runErr <- err
	}()
	<-det.started

	stopped := make(chan struct{})
	go func() {
		r.Shutdown()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Shutdown returned while a run was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(det.release)
	if err := <-runErr; err != nil {
		t.Fatalf("Run: %v", err)
	}
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not return after the run finished")
	}
}
