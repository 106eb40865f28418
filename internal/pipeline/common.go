package pipeline

import (
	"context"
	"time"

	"foresight/internal/detection"
	"foresight/internal/logger"
	"foresight/internal/models"
)

var ErrNoInput = models.ErrNoInput

// Common interfaces used across pipeline components
type Logger = logger.Logger

type TimingTracker interface {
	StartTiming(ctx context.Context, operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
}

// DetectorSource hands out the loaded detector, or detection.ErrModelsNotLoaded.
type DetectorSource interface {
	Detector() (detection.Detector, error)
}
