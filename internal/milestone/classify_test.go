package milestone

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		m        Milestone
		want     State
	}{
		{"passed", 0.6, Milestone{Position: 0.5}, Done},
		{"arriving", 0.5, Milestone{Position: 0.5}, Active},
		{"just inside band", 0.495, Milestone{Position: 0.5}, Active},
		{"outside band", 0.48, Milestone{Position: 0.5}, Pending},
		{"override", 0.1, Milestone{Position: 0.5, Completed: true}, Done},
		{"start at zero progress", 0, Milestone{Position: 0}, Active},
		{"start at zero progress with override", 0, Milestone{Position: 0, Completed: true}, Done},
		{"start once moving", 0.001, Milestone{Position: 0}, Done},
		{"terminal reached", 1.0, Milestone{Position: 1.0}, Done},
		{"terminal approaching", 0.99, Milestone{Position: 1.0}, Pending},
		{"terminal far", 0.5, Milestone{Position: 1.0}, Pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.progress, tt.m); got != tt.want {
				t.Errorf("Classify(%v, %+v) = %v, want %v", tt.progress, tt.m, got, tt.want)
			}
		})
	}
}

func TestLabelEmphasizedLeadsMarker(t *testing.T) {
	m := Milestone{Position: 0.5}

	// 0.49 is one epsilon short: the label lights up, the marker is still pending.
	if !LabelEmphasized(0.49, m) {
		t.Error("label should be emphasized one epsilon before the milestone")
	}
	if got := Classify(0.49, m); got != Pending {
		t.Errorf("Classify(0.49) = %v, want pending", got)
	}
	if LabelEmphasized(0.48, m) {
		t.Error("label should not be emphasized outside the lead-in band")
	}

	terminal := Milestone{Position: 1.0}
	if !LabelEmphasized(0.99, terminal) {
		t.Error("terminal label should be emphasized at 0.99")
	}
}

func TestFilledRightMonotonic(t *testing.T) {
	l := Layout{TrackLeft: 20, TrackRight: 380, Centers: []float64{20, 200, 380}}

	prev := FilledRight(l, 0)
	if prev != 20 {
		t.Fatalf("FilledRight(0) = %v, want 20", prev)
	}
	for i := 1; i <= 1000; i++ {
		p := float64(i) / 1000
		got := FilledRight(l, p)
		if got < prev {
			t.Fatalf("FilledRight(%v) = %v < previous %v", p, got, prev)
		}
		if got > l.TrackRight {
			t.Fatalf("FilledRight(%v) = %v beyond track right %v", p, got, l.TrackRight)
		}
		prev = got
	}
	if prev != 380 {
		t.Errorf("FilledRight(1) = %v, want 380", prev)
	}
}

func TestFilledRightEmptyLayout(t *testing.T) {
	if got := FilledRight(Layout{}, 0.5); got != 0 {
		t.Errorf("FilledRight(empty) = %v, want 0", got)
	}
}

func TestStateJSON(t *testing.T) {
	data, err := json.Marshal([]State{Pending, Active, Done})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["pending","active","done"]` {
		t.Errorf("got %s", data)
	}

	var back []State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 3 || back[2] != Done {
		t.Errorf("round trip = %v", back)
	}

	var s State
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown state name")
	}
}
