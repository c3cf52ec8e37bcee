package settings

import "sync"

// Values are the runtime-adjustable monitoring parameters. ZoneFraction
// sizes the centred detection zone relative to the frame; AlertThreshold
// is the occupancy at which a frame counts as overcrowded.
type Values struct {
	ZoneFraction   float64 `json:"zoneFraction"`
	AlertThreshold int     `json:"alertThreshold"`
}

// Store holds the shared settings behind a lock. Stream sessions read it
// once per frame, so an update from the dashboard takes effect on the
// next processed frame without restarting the stream.
type Store struct {
	mu     sync.RWMutex
	values Values
}

// NewStore creates a Store seeded with the given values.
func NewStore(initial Values) *Store {
	return &Store{values: clamp(initial)}
}

// Get returns a copy of the current values.
func (s *Store) Get() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Update replaces the settings, clamping the zone fraction to its usable
// range, and returns what was stored.
func (s *Store) Update(v Values) Values {
	v = clamp(v)
	s.mu.Lock()
	s.values = v
	s.mu.Unlock()
	return v
}

func clamp(v Values) Values {
	if v.ZoneFraction < 0.1 {
		v.ZoneFraction = 0.1
	}
	if v.ZoneFraction > 1.0 {
		v.ZoneFraction = 1.0
	}
	return v
}
