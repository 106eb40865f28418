package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"run1/vial.PNG", KindImage},
		{"vial.jpeg", KindImage},
		{"scan.tiff", KindImage},
		{"clip.mp4", KindVideo},
		{"clip.MOV", KindVideo},
		{"notes.txt", KindUnknown},
		{"noext", KindUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, dir, want string
	}{
		{"/data/exp1/vial.jpg", "/out", filepath.Join("/out", "vial_annotated.png")},
		{"/data/exp1/run.2.avi", "/out", filepath.Join("/out", "run.2_annotated.mp4")},
	}
	for _, tt := range tests {
		got, err := OutputPath(tt.input, tt.dir)
		if err != nil {
			t.Fatalf("OutputPath(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := OutputPath("/data/readme.md", "/out"); !errors.Is(err, ErrUnsupportedExtension) {
		t.Errorf("expected ErrUnsupportedExtension, got %v", err)
	}
}

func TestOutputDirFallback(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in", "vial.png")

	got, fellBack := OutputDir(dir, input)
	if got != dir || fellBack {
		t.Errorf("existing dir: got %q fallback=%v", got, fellBack)
	}

	got, fellBack = OutputDir(filepath.Join(dir, "missing"), input)
	if got != filepath.Join(dir, "in") || !fellBack {
		t.Errorf("missing dir: got %q fallback=%v", got, fellBack)
	}

	got, fellBack = OutputDir("", input)
	if got != filepath.Join(dir, "in") || !fellBack {
		t.Errorf("empty dir: got %q fallback=%v", got, fellBack)
	}
}

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "vial.png")
	txt := filepath.Join(dir, "notes.txt")
	for _, p := range []string{img, txt} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if kind, err := CheckInput(img); err != nil || kind != KindImage {
		t.Errorf("image: kind=%v err=%v", kind, err)
	}
	if _, err := CheckInput(txt); !errors.Is(err, ErrUnsupportedExtension) {
		t.Errorf("txt: expected ErrUnsupportedExtension, got %v", err)
	}
	if _, err := CheckInput(filepath.Join(dir, "gone.mp4")); !errors.Is(err, ErrUnreadableInput) {
		t.Errorf("missing: expected ErrUnreadableInput, got %v", err)
	}
	if _, err := CheckInput(dir); !errors.Is(err, ErrUnreadableInput) {
		t.Errorf("directory: expected ErrUnreadableInput, got %v", err)
	}
	if _, err := CheckInput(""); !errors.Is(err, ErrUnreadableInput) {
		t.Errorf("empty: expected ErrUnreadableInput, got %v", err)
	}
}
