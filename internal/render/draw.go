package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"foresight/internal/annotate"
)

const (
	boxThickness  = 2
	textThickness = 2
	listThickness = 3
	patchSize     = 20
	listX         = 10
	listY         = 30
)

var font = gocv.FontHersheySimplex

// LabelOrigin is the baseline of a box label: just above the box, never
// closer than 15px to the top edge.
func LabelOrigin(box image.Rectangle) image.Point {
	return image.Pt(box.Min.X, max(box.Min.Y-5, 15))
}

// PatchRect is the hue swatch anchored at the box's top-right corner.
func PatchRect(box image.Rectangle) image.Rectangle {
	return image.Rect(box.Max.X, box.Min.Y, box.Max.X+patchSize, box.Min.Y+patchSize)
}

// ListOrigins lays out n lines from (10, 30) with a step scaled to the font.
func ListOrigins(n int, scale float64) []image.Point {
	step := int(30*scale + 10)
	points := make([]image.Point, n)
	for i := range points {
		points[i] = image.Pt(listX, listY+i*step)
	}
	return points
}

// Draw paints every annotation onto dst in place.
func Draw(dst *gocv.Mat, annotations []annotate.Annotation, fontScale float64) error {
	for _, a := range annotations {
		if err := gocv.Rectangle(dst, a.Box, a.Color, boxThickness); err != nil {
			return fmt.Errorf("draw box: %w", err)
		}
		if err := gocv.PutText(dst, a.Text, LabelOrigin(a.Box), font, fontScale, a.Color, textThickness); err != nil {
			return fmt.Errorf("draw label: %w", err)
		}
		if a.Patch {
			if err := gocv.Rectangle(dst, PatchRect(a.Box), annotate.HueColor(a.PatchHue), -1); err != nil {
				return fmt.Errorf("draw color patch: %w", err)
			}
		}
	}
	return nil
}

// DrawList writes lines in the top-left corner at twice the label font scale.
func DrawList(dst *gocv.Mat, lines []string, fontScale float64) error {
	scale := 2 * fontScale
	for i, p := range ListOrigins(len(lines), scale) {
		if err := gocv.PutTextWithParams(dst, lines[i], p, font, scale, annotate.ListColor, listThickness, gocv.LineAA, false); err != nil {
			return fmt.Errorf("draw list: %w", err)
		}
	}
	return nil
}
