// Package media classifies input files and names annotated outputs.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	}
	return "unknown"
}

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrUnreadableInput      = errors.New("input file missing or unreadable")
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tif": true, ".tiff": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true,
}

// Extensions lists every accepted input extension, images first.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".mp4", ".avi", ".mkv", ".mov"}
}

func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	}
	return KindUnknown
}

// OutputPath names the annotated output for input inside dir:
// <base>_annotated.png for images and <base>_annotated.mp4 for videos.
func OutputPath(input, dir string) (string, error) {
	kind := Classify(input)
	var ext string
	switch kind {
	case KindImage:
		ext = ".png"
	case KindVideo:
		ext = ".mp4"
	default:
		return "", fmt.Errorf("%s: %w", filepath.Ext(input), ErrUnsupportedExtension)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"_annotated"+ext), nil
}

// OutputDir returns dir when it is an existing directory, otherwise the
// directory holding input. The second result reports whether it fell back.
func OutputDir(dir, input string) (string, bool) {
	if IsDir(dir) {
		return dir, false
	}
	return filepath.Dir(input), true
}

// CheckInput verifies that path names a readable regular file of a supported kind.
func CheckInput(path string) (Kind, error) {
	if path == "" || !IsFile(path) {
		return KindUnknown, fmt.Errorf("%q: %w", path, ErrUnreadableInput)
	}
	kind := Classify(path)
	if kind == KindUnknown {
		return kind, fmt.Errorf("%q: %w", path, ErrUnsupportedExtension)
	}
	f, err := os.Open(path)
	if err != nil {
		return kind, fmt.Errorf("%q: %w", path, ErrUnreadableInput)
	}
	f.Close()
	return kind, nil
}

func IsFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func IsDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
