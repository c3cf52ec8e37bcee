package detect

import (
	"image"
	"math"
	"sort"

	"hallwaymonitor/internal/monitor"
)

const (
	// maxMatchDistance is the centroid distance gate in pixels; a box
	// further than this from every live track starts a new track.
	maxMatchDistance = 80.0

	// maxMisses is how many consecutive frames a track may go unmatched
	// before it is dropped. Dropped IDs are never handed out again.
	maxMisses = 15
)

type track struct {
	centroid image.Point
	misses   int
}

// assigner turns per-frame detection boxes into persistently identified
// tracks by greedy nearest-centroid matching. It is deliberately simple:
// hallway scenes hold a handful of people, so a distance gate plus a miss
// TTL covers the short detector dropouts that would otherwise fragment
// identities.
type assigner struct {
	nextID int
	tracks map[int]*track
}

func newAssigner() *assigner {
	return &assigner{
		nextID: 1,
		tracks: make(map[int]*track),
	}
}

func centroid(box image.Rectangle) image.Point {
	return image.Pt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
}

func distance(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Hypot(dx, dy)
}

type candidate struct {
	trackID int
	boxIdx  int
	dist    float64
}

// assign matches the frame's boxes against live tracks and returns them
// with track IDs attached. Unmatched boxes open new tracks; tracks that
// miss too many frames in a row are forgotten.
func (a *assigner) assign(boxes []image.Rectangle) []monitor.Detection {
	centroids := make([]image.Point, len(boxes))
	for i, box := range boxes {
		centroids[i] = centroid(box)
	}

	// All candidate pairs within the gate, closest first. Greedy pick is
	// fine at this scale; no need for an optimal assignment.
	var candidates []candidate
	for id, tr := range a.tracks {
		for i, c := range centroids {
			if d := distance(tr.centroid, c); d <= maxMatchDistance {
				candidates = append(candidates, candidate{trackID: id, boxIdx: i, dist: d})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		// Deterministic tie-break keeps results stable across runs.
		if candidates[i].trackID != candidates[j].trackID {
			return candidates[i].trackID < candidates[j].trackID
		}
		return candidates[i].boxIdx < candidates[j].boxIdx
	})

	updated := make(map[int]bool)
	matchedBox := make(map[int]bool)
	boxToTrack := make(map[int]int)
	for _, c := range candidates {
		if updated[c.trackID] || matchedBox[c.boxIdx] {
			continue
		}
		updated[c.trackID] = true
		matchedBox[c.boxIdx] = true
		boxToTrack[c.boxIdx] = c.trackID
	}

	dets := make([]monitor.Detection, 0, len(boxes))
	for i, box := range boxes {
		id, ok := boxToTrack[i]
		if !ok {
			id = a.nextID
			a.nextID++
			a.tracks[id] = &track{}
			updated[id] = true
		}

		tr := a.tracks[id]
		tr.centroid = centroids[i]
		tr.misses = 0

		dets = append(dets, monitor.Detection{TrackID: id, Box: box})
	}

	for id, tr := range a.tracks {
		if updated[id] {
			continue
		}
		tr.misses++
		if tr.misses > maxMisses {
			delete(a.tracks, id)
		}
	}

	return dets
}
