package milestone

import "testing"

func TestComputeFrameStartMidEnd(t *testing.T) {
	s := NewStore()
	s.SetMilestones([]Milestone{
		{Position: 0.0, Label: "Start"},
		{Position: 0.5, Label: "Mid"},
		{Position: 1.0, Label: "End"},
	})
	snap := s.SetProgress(0.5)

	vp := baseViewport()
	vp.SmallMarkerRadius = 4
	f := ComputeFrame(snap, vp, runeWidth(5))

	want := []State{Done, Active, Pending}
	for i, st := range want {
		if f.Items[i].State != st {
			t.Errorf("%s state = %v, want %v", f.Items[i].Label, f.Items[i].State, st)
		}
	}

	wantFill := f.Layout.TrackLeft + 0.5*(f.Layout.TrackRight-f.Layout.TrackLeft)
	if f.FilledRight != wantFill {
		t.Errorf("FilledRight = %v, want %v", f.FilledRight, wantFill)
	}

	if f.Items[0].Radius != 12 || f.Items[1].Radius != 12 || f.Items[2].Radius != 4 {
		t.Errorf("radii = %v %v %v, want 12 12 4", f.Items[0].Radius, f.Items[1].Radius, f.Items[2].Radius)
	}
	if !f.Items[1].Emphasized || f.Items[2].Emphasized {
		t.Errorf("emphasis = %v %v, want true false", f.Items[1].Emphasized, f.Items[2].Emphasized)
	}
	if f.Version != snap.Version || f.Progress != 0.5 {
		t.Errorf("frame header = (%d, %v), want (%d, 0.5)", f.Version, f.Progress, snap.Version)
	}
}

func TestComputeFrameEmpty(t *testing.T) {
	s := NewStore()
	f := ComputeFrame(s.SetProgress(0.7), baseViewport(), nil)
	if !f.Empty() {
		t.Fatalf("expected empty frame, got %+v", f)
	}
	if !f.Layout.Empty() || f.FilledRight != 0 {
		t.Errorf("empty frame has geometry: %+v", f)
	}
}

func TestComputeFrameZeroWidthViewport(t *testing.T) {
	s := NewStore()
	s.SetMilestones([]Milestone{{Position: 0, Label: "a"}, {Position: 1, Label: "b"}})
	f := ComputeFrame(s.SetProgress(0.5), Viewport{}, runeWidth(10))
	if len(f.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(f.Items))
	}
	if f.Layout.TrackWidth() != 0 || f.FilledRight != f.Layout.TrackLeft {
		t.Errorf("zero-width viewport should give a zero-length track, got %+v", f.Layout)
	}
}

func TestComputeFrameSeededOverride(t *testing.T) {
	s := NewStore()
	snap := s.SetMilestones([]Milestone{
		{Position: 0.0, Label: "Plan", Completed: true},
		{Position: 0.4, Label: "Build", Completed: true},
		{Position: 0.6, Label: "Test"},
	})

	f := ComputeFrame(snap, baseViewport(), nil)
	if f.Items[1].State != Done {
		t.Errorf("seeded override should render Done before any progress write, got %v", f.Items[1].State)
	}

	f = ComputeFrame(s.SetProgress(0.2), baseViewport(), nil)
	if f.Items[1].State != Pending {
		t.Errorf("override should be re-derived after SetProgress, got %v", f.Items[1].State)
	}
}
