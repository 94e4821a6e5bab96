package milestone

import "time"

// Session describes one interpolation from Start to Target.
// ID is unique per driver and increases with every Start or Cancel, so a
// host can tag scheduled ticks with it and have stale ones dropped.
type Session struct {
	ID        uint64
	Start     float64
	Target    float64
	StartedAt time.Time
	Duration  time.Duration
}

// fraction returns how far the session has run at now, in [0,1].
func (s Session) fraction(now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	return Clamp01(float64(now.Sub(s.StartedAt)) / float64(s.Duration))
}

// Driver advances a store's progress along a linear animation.
//
// A driver runs at most one session. Starting a new one supersedes the old
// one, and so does any explicit SetProgress through the driver. Ticks carry
// no hidden state beyond the current session record.
type Driver struct {
	store   *Store
	clock   Clock
	lastID  uint64
	current *Session
	reached float64 // fraction applied by the latest tick of current
}

// NewDriver creates a driver writing to store. A nil clock uses the wall clock.
func NewDriver(store *Store, clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{store: store, clock: clock}
}

// Start begins animating from the current progress to target over duration.
// Target is clamped to [0,1] and a negative duration is treated as zero.
// A zero duration jumps straight to target and leaves no session running.
func (d *Driver) Start(target float64, duration time.Duration) Session {
	if duration < 0 {
		duration = 0
	}
	d.lastID++
	s := Session{
		ID:        d.lastID,
		Start:     d.store.Progress(),
		Target:    Clamp01(target),
		StartedAt: d.clock.Now(),
		Duration:  duration,
	}
	d.current = &s
	d.reached = 0

	if duration == 0 {
		d.apply(s.StartedAt)
	}
	return s
}

// Tick advances the running session to now and writes the interpolated
// progress. It reports false when no session is running. The session ends
// once it reaches its target.
func (d *Driver) Tick(now time.Time) (float64, bool) {
	if d.current == nil {
		return 0, false
	}
	return d.apply(now), true
}

// TickSession is Tick guarded by a session ID. A tick scheduled for a session
// that has since been superseded, cancelled or finished is a no-op.
func (d *Driver) TickSession(id uint64, now time.Time) (float64, bool) {
	if d.current == nil || d.current.ID != id {
		return 0, false
	}
	return d.apply(now), true
}

func (d *Driver) apply(now time.Time) float64 {
	s := *d.current
	// A tick stamped earlier than the previous one must not move backwards.
	f := max(s.fraction(now), d.reached)
	d.reached = f
	p := s.Start + (s.Target-s.Start)*f
	if f >= 1 {
		p = s.Target
		d.current = nil
	}
	return d.store.SetProgress(p).Progress
}

// Cancel stops the running session, if any. Progress stays where it is.
func (d *Driver) Cancel() {
	if d.current != nil {
		d.lastID++
		d.current = nil
	}
}

// Active reports whether a session is running.
func (d *Driver) Active() bool {
	return d.current != nil
}

// Current returns the running session.
func (d *Driver) Current() (Session, bool) {
	if d.current == nil {
		return Session{}, false
	}
	return *d.current, true
}

// SetProgress cancels any running session and writes v. Explicit writes
// always win over interpolated ones.
func (d *Driver) SetProgress(v float64) Snapshot {
	d.Cancel()
	return d.store.SetProgress(v)
}

// SetMilestones replaces the milestone list. A running session keeps going
// since it only drives progress.
func (d *Driver) SetMilestones(list []Milestone) Snapshot {
	return d.store.SetMilestones(list)
}

// Snapshot returns the store's current state.
func (d *Driver) Snapshot() Snapshot {
	return d.store.Snapshot()
}
