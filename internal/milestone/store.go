package milestone

// Snapshot is an immutable view of the store at one version.
// The Milestones slice is never written to after it has been published.
type Snapshot struct {
	Version    uint64      `json:"version"`
	Progress   float64     `json:"progress"`
	Milestones []Milestone `json:"milestones"`
}

// Store owns the milestone list and the progress scalar.
// Every write publishes a new Snapshot; nothing is mutated in place.
type Store struct {
	snap Snapshot
}

// NewStore creates an empty store at progress 0.
func NewStore() *Store {
	return &Store{}
}

// SetMilestones replaces the whole milestone set. The input is copied,
// positions are clamped to [0,1] and the result is stable-sorted by position.
// Seeded Completed flags are kept until the next SetProgress.
func (s *Store) SetMilestones(list []Milestone) Snapshot {
	s.snap = Snapshot{
		Version:    s.snap.Version + 1,
		Progress:   s.snap.Progress,
		Milestones: normalize(list),
	}
	return s.snap
}

// SetProgress clamps v to [0,1] and stores it. Each milestone's Completed flag
// is re-derived as progress > position, overwriting any seeded value.
func (s *Store) SetProgress(v float64) Snapshot {
	p := Clamp01(v)

	var next []Milestone
	if len(s.snap.Milestones) > 0 {
		next = make([]Milestone, len(s.snap.Milestones))
		for i, m := range s.snap.Milestones {
			m.Completed = p > m.Position
			next[i] = m
		}
	}

	s.snap = Snapshot{
		Version:    s.snap.Version + 1,
		Progress:   p,
		Milestones: next,
	}
	return s.snap
}

// Progress returns the current progress value.
func (s *Store) Progress() float64 {
	return s.snap.Progress
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	return s.snap
}
