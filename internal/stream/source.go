package stream

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Source yields frames for one stream. Read returns false when the
// stream is exhausted or the device fails; there is no separate error
// channel, matching the capture API underneath.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

type captureSource struct {
	capture *gocv.VideoCapture
}

func (s *captureSource) Read(m *gocv.Mat) bool {
	return s.capture.Read(m)
}

func (s *captureSource) Close() error {
	return s.capture.Close()
}

// OpenCamera opens the capture device with the given ID.
func OpenCamera(device int) (Source, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %v", device, err)
	}
	return &captureSource{capture: capture}, nil
}

// OpenFile opens a video file as a frame source.
func OpenFile(path string) (Source, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %v", path, err)
	}
	return &captureSource{capture: capture}, nil
}
