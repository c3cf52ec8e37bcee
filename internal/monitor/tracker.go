package monitor

import (
	"image"
	"sort"
)

// Detection is a single detector/tracker result for the current frame.
// TrackID is stable across consecutive frames for as long as the detector
// keeps tracking the same physical object; detections themselves are
// transient and never retained past the frame they arrived in.
type Detection struct {
	TrackID int
	Box     image.Rectangle
}

// Anchor returns the bottom-centre of the bounding box. The feet position
// approximates where the object touches the floor, which counts zones far
// more reliably than the box centroid in an angled camera view.
func (d Detection) Anchor() image.Point {
	return image.Pt((d.Box.Min.X+d.Box.Max.X)/2, d.Box.Max.Y)
}

// Snapshot is the occupancy state derived for one frame. It is a plain
// value: safe to hand to renderers and websocket viewers after the
// tracker has moved on to the next frame.
type Snapshot struct {
	OccupantIDs []int `json:"occupantIds"`
	Occupancy   int   `json:"occupancy"`
	Entries     int   `json:"entries"`
	Exits       int   `json:"exits"`
	AlertFrames int   `json:"alertFrames"`
	Frames      int   `json:"frames"`
	Alert       bool  `json:"alert"`
}

// Tracker converts a per-frame stream of tracked detections into zone
// entry/exit events and cumulative counters. Counting is driven strictly
// by membership transitions of persistent track IDs, never by raw
// detection appearance, so single-frame detector dropout does not produce
// spurious counts.
//
// One Tracker serves exactly one stream and its calls are strictly
// sequential: each ProcessFrame must complete before the next begins,
// because transitions depend on the previous frame's membership. Streams
// must not share a Tracker; every source gets a fresh instance so
// counters never leak between sessions.
type Tracker struct {
	zone        Zone
	inside      map[int]bool
	entries     int
	exits       int
	alertFrames int
	frames      int
}

// NewTracker creates a Tracker counting occupancy of the given zone.
func NewTracker(zone Zone) *Tracker {
	return &Tracker{
		zone:   zone,
		inside: make(map[int]bool),
	}
}

// ProcessFrame updates membership state from one frame's detections and
// returns the resulting snapshot.
//
// A track ID seen for the first time only records its containment state;
// crossing events are counted from its second observation on. The alert
// tally is per-frame: every frame whose occupancy meets the threshold
// adds one, so a threshold <= 0 marks every frame as an alert frame.
//
// A nil or empty detection slice is a normal "nobody visible" frame: the
// frame counter still advances and occupancy resolves to zero.
func (t *Tracker) ProcessFrame(dets []Detection, alertThreshold int) Snapshot {
	occupants := make(map[int]struct{})

	for _, d := range dets {
		in := t.zone.Contains(d.Anchor())
		if in {
			occupants[d.TrackID] = struct{}{}
		}

		was, seen := t.inside[d.TrackID]
		switch {
		case !seen:
			// First observation is not a crossing.
		case !was && in:
			t.entries++
		case was && !in:
			t.exits++
		}
		t.inside[d.TrackID] = in
	}

	t.frames++

	alert := len(occupants) >= alertThreshold
	if alert {
		t.alertFrames++
	}

	ids := make([]int, 0, len(occupants))
	for id := range occupants {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return Snapshot{
		OccupantIDs: ids,
		Occupancy:   len(ids),
		Entries:     t.entries,
		Exits:       t.exits,
		AlertFrames: t.alertFrames,
		Frames:      t.frames,
		Alert:       alert,
	}
}

// Reset clears all counters and forgets every track membership. Called
// when a stream starts over on a fresh source so statistics never leak
// across unrelated videos.
func (t *Tracker) Reset() {
	t.inside = make(map[int]bool)
	t.entries = 0
	t.exits = 0
	t.alertFrames = 0
	t.frames = 0
}

// SetZone replaces the zone rectangle. Membership and counters are kept;
// callers that need a clean slate must also call Reset. Streams set the
// zone once, before their first frame.
func (t *Tracker) SetZone(zone Zone) {
	t.zone = zone
}

// Zone returns the currently configured zone.
func (t *Tracker) Zone() Zone {
	return t.zone
}
