package models

import (
	"errors"
	"time"
)

var (
	ErrModelsNotLoaded = errors.New("detection models not loaded")
	ErrNoInput         = errors.New("no input file selected")
)

// RunResult describes a finished detection and overlay run.
type RunResult struct {
	RunID      string
	OutputPath string
	Frames     int
	Elapsed    time.Duration
}
