package detection

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// Prediction is a single post-NMS box in the coordinates of the image passed to Predict.
type Prediction struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
}

// Model wraps a YOLOv8 ONNX export loaded through the OpenCV DNN module.
type Model struct {
	net       gocv.Net
	names     []string
	inputSize int
	nms       float64
}

func LoadModel(path string, names []string, inputSize int, nms float64) (*Model, error) {
	net := gocv.ReadNetFromONNX(path)
	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("failed to load network from %s", path)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target for %s", path)
	}

	return &Model{net: net, names: names, inputSize: inputSize, nms: nms}, nil
}

// Predict runs the network on img and returns boxes scoring at least confidence.
func (m *Model) Predict(img gocv.Mat, confidence float64) ([]Prediction, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty input")
	}

	height, width := img.Rows(), img.Cols()
	maxDim := max(height, width)

	// Pad to a square at the top-left so one scale factor maps back.
	square := gocv.NewMatWithSize(maxDim, maxDim, gocv.MatTypeCV8UC3)
	defer square.Close()
	roi := square.Region(image.Rect(0, 0, width, height))
	img.CopyTo(&roi)
	roi.Close()

	blob := gocv.BlobFromImage(square, 1.0/255.0, image.Pt(m.inputSize, m.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")
	output := m.net.Forward("")
	defer output.Close()

	dims := output.Size()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output rank %d", len(dims))
	}
	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	layout := tensorLayout{rows: dims[1], cols: dims[2]}
	scale := float64(maxDim) / float64(m.inputSize)
	candidates := decode(data, layout, scale, confidence)

	kept := m.suppress(candidates, float32(confidence))
	predictions := make([]Prediction, len(kept))
	for i, c := range kept {
		predictions[i] = Prediction{
			Label:      m.label(c.classID),
			Confidence: c.score,
			Box:        c.box,
		}
	}
	return predictions, nil
}

func (m *Model) label(classID int) string {
	if classID >= 0 && classID < len(m.names) {
		return m.names[classID]
	}
	return fmt.Sprintf("class_%d", classID)
}

// suppress applies non-maximum suppression per class and orders the survivors by score.
func (m *Model) suppress(candidates []candidate, confidence float32) []candidate {
	byClass := make(map[int][]candidate)
	for _, c := range candidates {
		byClass[c.classID] = append(byClass[c.classID], c)
	}

	var kept []candidate
	for _, group := range byClass {
		boxes := make([]image.Rectangle, len(group))
		scores := make([]float32, len(group))
		for i, c := range group {
			boxes[i] = c.box
			scores[i] = float32(c.score)
		}
		for _, idx := range gocv.NMSBoxes(boxes, scores, confidence, float32(m.nms)) {
			if idx >= 0 && idx < len(group) {
				kept = append(kept, group[idx])
			}
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
	return kept
}

func (m *Model) Close() error {
	return m.net.Close()
}
