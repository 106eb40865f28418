// Package detection runs the two-stage vessel/contents detector.
package detection

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"foresight/internal/logger"
	"foresight/internal/models"
	"foresight/internal/opencv/safe"
)

var ErrModelsNotLoaded = models.ErrModelsNotLoaded

// Detector finds vessels and their contents in a BGR frame.
type Detector interface {
	Detect(frame gocv.Mat, confidence float64) ([]models.Detection, error)
	Close() error
}

// predictor is one detection stage; *Model is the production implementation.
type predictor interface {
	Predict(img gocv.Mat, confidence float64) ([]Prediction, error)
	Close() error
}

// HeinSight first locates vessels, then classifies phases inside each vessel crop.
type HeinSight struct {
	vessel   predictor
	contents predictor
	logger   logger.Logger
}

func NewHeinSight(vessel, contents predictor, log logger.Logger) *HeinSight {
	return &HeinSight{vessel: vessel, contents: contents, logger: log}
}

// Detect returns vessel detections followed, per vessel, by its contents.
// Every box is clipped to the frame; contents boxes are in frame coordinates.
func (h *HeinSight) Detect(frame gocv.Mat, confidence float64) ([]models.Detection, error) {
	if err := safe.ValidateBGR(frame, "detect"); err != nil {
		return nil, err
	}
	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())

	vessels, err := h.vessel.Predict(frame, confidence)
	if err != nil {
		return nil, fmt.Errorf("vessel model: %w", err)
	}

	var detections []models.Detection
	for _, v := range vessels {
		vbox := models.ClipBox(v.Box, bounds)
		if vbox.Empty() {
			continue
		}
		detections = append(detections, models.Detection{
			Label:      v.Label,
			Confidence: v.Confidence,
			Box:        vbox,
			Stage:      models.StageVessel,
			Parent:     -1,
		})
		parent := len(detections) - 1

		if err := safe.ValidateRegion(frame, vbox, "vessel crop"); err != nil {
			return nil, err
		}
		crop := frame.Region(vbox)
		contents, err := h.contents.Predict(crop, confidence)
		crop.Close()
		if err != nil {
			return nil, fmt.Errorf("contents model: %w", err)
		}

		for _, c := range contents {
			cbox := models.ClipBox(c.Box.Add(vbox.Min), bounds)
			if cbox.Empty() {
				continue
			}
			detections = append(detections, models.Detection{
				Label:      c.Label,
				Confidence: c.Confidence,
				Box:        cbox,
				Stage:      models.StageContents,
				Parent:     parent,
			})
		}
	}

	h.logger.Debug("HeinSight", "frame detected", map[string]interface{}{
		"vessels":    len(vessels),
		"detections": len(detections),
	})
	return detections, nil
}

func (h *HeinSight) Close() error {
	return errors.Join(h.vessel.Close(), h.contents.Close())
}
