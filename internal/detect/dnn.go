package detect

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/monitor"
)

const (
	// ConfidenceThreshold is the minimum detector confidence kept.
	ConfidenceThreshold = 0.5

	// personClassID is the COCO class of interest for MobileNet SSD.
	personClassID = 1
)

// DNNDetector runs a MobileNet SSD network on each frame, keeps the
// person detections above the confidence threshold and assigns them
// persistent track IDs.
type DNNDetector struct {
	net      gocv.Net
	assigner *assigner
	logger   *logger.Logger
}

// NewDNNDetector loads the network from the given model and config files.
func NewDNNDetector(modelPath, configPath string, logger *logger.Logger) (*DNNDetector, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network")
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	logger.Info("Detection network initialized successfully")

	return &DNNDetector{
		net:      net,
		assigner: newAssigner(),
		logger:   logger,
	}, nil
}

// DetectAndTrack runs the network on one frame and returns the tracked
// person detections.
func (d *DNNDetector) DetectAndTrack(frame gocv.Mat) ([]monitor.Detection, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	blob := gocv.BlobFromImage(frame, 1.0/127.5, image.Pt(300, 300), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	cols := float32(frame.Cols())
	rows := float32(frame.Rows())

	var boxes []image.Rectangle

	outputReshaped := output.Reshape(1, output.Total()/7)
	defer outputReshaped.Close()
	for i := 0; i < outputReshaped.Rows(); i++ {
		confidence := outputReshaped.GetFloatAt(i, 2)
		if confidence <= ConfidenceThreshold {
			continue
		}
		if int(outputReshaped.GetFloatAt(i, 1)) != personClassID {
			continue
		}

		left := int(outputReshaped.GetFloatAt(i, 3) * cols)
		top := int(outputReshaped.GetFloatAt(i, 4) * rows)
		right := int(outputReshaped.GetFloatAt(i, 5) * cols)
		bottom := int(outputReshaped.GetFloatAt(i, 6) * rows)

		boxes = append(boxes, image.Rect(left, top, right, bottom))
	}

	return d.assigner.assign(boxes), nil
}

// Close releases the network.
func (d *DNNDetector) Close() error {
	return d.net.Close()
}
