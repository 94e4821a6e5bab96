// Package view wraps a milestone store and its animation driver behind a
// mutex so hosts that serve several goroutines can share one progress view.
package view

import (
	"sync"
	"time"

	"github.com/clive/milestones/internal/milestone"
)

// View is one progress view. All methods are safe for concurrent use; the
// running animation is advanced to the clock's current time before every
// read, so readers never see a stale frame.
type View struct {
	ID      string
	Created time.Time

	mu     sync.Mutex
	clock  milestone.Clock
	driver *milestone.Driver
}

// Status is the JSON-facing state of a view.
type Status struct {
	ID        string             `json:"id"`
	Snapshot  milestone.Snapshot `json:"snapshot"`
	Animating bool               `json:"animating"`
	Target    *float64           `json:"target,omitempty"`
	Created   time.Time          `json:"created_at"`
}

// New creates an empty view. A nil clock uses the wall clock.
func New(id string, clock milestone.Clock) *View {
	if clock == nil {
		clock = milestone.SystemClock{}
	}
	return &View{
		ID:      id,
		Created: clock.Now(),
		clock:   clock,
		driver:  milestone.NewDriver(milestone.NewStore(), clock),
	}
}

// SetMilestones replaces the milestone list.
func (v *View) SetMilestones(list []milestone.Milestone) milestone.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	return v.driver.SetMilestones(list)
}

// SetProgress cancels any animation and sets progress directly.
func (v *View) SetProgress(p float64) milestone.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.driver.SetProgress(p)
}

// Animate starts animating from the current progress to target.
func (v *View) Animate(target float64, d time.Duration) milestone.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	return v.driver.Start(target, d)
}

// Tick advances the animation identified by session to the current time.
// Ticks for superseded sessions are ignored. It reports whether the
// session is still running afterwards.
func (v *View) Tick(session uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.driver.TickSession(session, v.clock.Now())
	cur, ok := v.driver.Current()
	return ok && cur.ID == session
}

// Snapshot returns the current state.
func (v *View) Snapshot() milestone.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	return v.driver.Snapshot()
}

// Status returns the current state with animation details.
func (v *View) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	st := Status{
		ID:       v.ID,
		Snapshot: v.driver.Snapshot(),
		Created:  v.Created,
	}
	if s, ok := v.driver.Current(); ok {
		st.Animating = true
		target := s.Target
		st.Target = &target
	}
	return st
}

// Frame computes the render frame for vp at the current time.
func (v *View) Frame(vp milestone.Viewport, m milestone.LabelMeasurer) milestone.Frame {
	return milestone.ComputeFrame(v.Snapshot(), vp, m)
}

// advance moves a running animation to now. Callers hold mu.
func (v *View) advance() {
	v.driver.Tick(v.clock.Now())
}
