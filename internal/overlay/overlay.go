package overlay

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"hallwaymonitor/internal/monitor"
)

var (
	zoneColor   = color.RGBA{R: 0, G: 200, B: 0, A: 0}
	alertColor  = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	boxColor    = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	anchorColor = color.RGBA{R: 255, G: 0, B: 255, A: 0}
	panelColor  = color.RGBA{R: 20, G: 20, B: 20, A: 0}
	textColor   = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

const panelHeight = 46

// Render draws the monitoring overlay onto the frame: zone rectangle
// with its exit count, detection boxes with track IDs and anchor dots,
// the status panel and the overcrowding banner. The frame is modified in
// place.
func Render(img *gocv.Mat, zone monitor.Zone, dets []monitor.Detection, snap monitor.Snapshot, stats monitor.StatsSnapshot, now time.Time) error {
	zc := zoneColor
	if snap.Alert {
		zc = alertColor
	}

	if err := gocv.Rectangle(img, zone.Rect(), zc, 2); err != nil {
		return fmt.Errorf("failed to draw zone: %v", err)
	}
	outLabel := fmt.Sprintf("OUT: %d", snap.Exits)
	if err := gocv.PutText(img, outLabel, image.Pt(zone.MinX, zone.MinY-8), gocv.FontHersheySimplex, 0.6, zc, 2); err != nil {
		return fmt.Errorf("failed to draw zone label: %v", err)
	}

	for _, d := range dets {
		if err := gocv.Rectangle(img, d.Box, boxColor, 2); err != nil {
			return fmt.Errorf("failed to draw detection: %v", err)
		}
		label := fmt.Sprintf("ID %d", d.TrackID)
		if err := gocv.PutText(img, label, image.Pt(d.Box.Min.X, d.Box.Min.Y-5), gocv.FontHersheySimplex, 0.5, boxColor, 1); err != nil {
			return fmt.Errorf("failed to draw detection label: %v", err)
		}

		// Anchor dot marks the point the zone test uses.
		a := d.Anchor()
		dot := image.Rect(a.X-3, a.Y-3, a.X+3, a.Y+3)
		if err := gocv.Rectangle(img, dot, anchorColor, -1); err != nil {
			return fmt.Errorf("failed to draw anchor: %v", err)
		}
	}

	header := fmt.Sprintf("FPS: %.1f  %s", stats.FPS, now.Format("15:04:05"))
	if err := gocv.PutText(img, header, image.Pt(10, 24), gocv.FontHersheySimplex, 0.6, textColor, 2); err != nil {
		return fmt.Errorf("failed to draw header: %v", err)
	}

	// Status panel along the bottom edge.
	h := img.Rows()
	w := img.Cols()
	panel := image.Rect(0, h-panelHeight, w, h)
	if err := gocv.Rectangle(img, panel, panelColor, -1); err != nil {
		return fmt.Errorf("failed to draw panel: %v", err)
	}
	status := fmt.Sprintf("OUT: %d   NOW: %d", snap.Exits, snap.Occupancy)
	if err := gocv.PutText(img, status, image.Pt(10, h-16), gocv.FontHersheySimplex, 0.7, textColor, 2); err != nil {
		return fmt.Errorf("failed to draw status: %v", err)
	}

	if snap.Alert {
		banner := fmt.Sprintf("OVERCROWDED: %d in zone", snap.Occupancy)
		if err := gocv.PutText(img, banner, image.Pt(10, 56), gocv.FontHersheySimplex, 0.8, alertColor, 2); err != nil {
			return fmt.Errorf("failed to draw alert banner: %v", err)
		}
	}

	return nil
}
