package detection

import "image"

type candidate struct {
	classID int
	score   float64
	box     image.Rectangle
}

// tensorLayout describes a YOLOv8 head output of shape [1, rows, cols].
// The usual export is [1, 4+classes, anchors]; a transposed
// [1, anchors, 4+classes] export is recognised by rows > cols.
type tensorLayout struct {
	rows, cols int
}

func (l tensorLayout) transposed() bool {
	return l.rows > l.cols
}

func (l tensorLayout) anchors() int {
	if l.transposed() {
		return l.rows
	}
	return l.cols
}

func (l tensorLayout) attributes() int {
	if l.transposed() {
		return l.cols
	}
	return l.rows
}

func (l tensorLayout) at(data []float32, attr, anchor int) float32 {
	if l.transposed() {
		return data[anchor*l.cols+attr]
	}
	return data[attr*l.cols+anchor]
}

// decode turns raw head output into scored boxes. Box centres and sizes are
// in network input pixels and are multiplied by scale to map back.
func decode(data []float32, layout tensorLayout, scale, confidence float64) []candidate {
	attrs := layout.attributes()
	if attrs <= 4 || len(data) < layout.rows*layout.cols {
		return nil
	}

	var out []candidate
	for a := 0; a < layout.anchors(); a++ {
		best, bestScore := -1, float32(0)
		for c := 4; c < attrs; c++ {
			if s := layout.at(data, c, a); s > bestScore {
				best, bestScore = c-4, s
			}
		}
		if best < 0 || float64(bestScore) < confidence {
			continue
		}

		cx := float64(layout.at(data, 0, a))
		cy := float64(layout.at(data, 1, a))
		w := float64(layout.at(data, 2, a))
		h := float64(layout.at(data, 3, a))

		out = append(out, candidate{
			classID: best,
			score:   float64(bestScore),
			box: image.Rect(
				int((cx-w/2)*scale),
				int((cy-h/2)*scale),
				int((cx+w/2)*scale),
				int((cy+h/2)*scale),
			),
		})
	}
	return out
}
