package tracker

import (
	"testing"
)

func TestMergeOverlappingStationaryTracks(t *testing.T) {

	tk := NewTracker(0, 0).WithMerge(1)

	// two heavily overlapping detections of the same stationary particle
	tracks, err := tk.Step([]Detection{
		det(0, 0, 20, 20),
		det(2, 2, 22, 22),
	})

	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(tracks) != 1 {
		t.Fatalf("expected overlapping tracks to merge, got %d tracks", len(tracks))
	}

	// the lower ID survives a merge
	if tracks[0].GetID() != 1 {
		t.Errorf("expected surviving track ID 1, got %d", tracks[0].GetID())
	}

	// merged bbox is the union of both boxes
	rect := tracks[0].GetRect()

	if !almostEqual(rect.TLX(), 0, 1e-3) || !almostEqual(rect.TLY(), 0, 1e-3) ||
		!almostEqual(rect.BRX(), 22, 1e-3) || !almostEqual(rect.BRY(), 22, 1e-3) {
		t.Errorf("expected merged bbox [0 0 22 22], got [%f %f %f %f]",
			rect.TLX(), rect.TLY(), rect.BRX(), rect.BRY())
	}

	// both births remain in the audit log
	if len(tk.GetAllTracks()) != 2 {
		t.Errorf("expected both tracks in the all tracks log, got %d",
			len(tk.GetAllTracks()))
	}
}

func TestNoMergeWhenDisabled(t *testing.T) {

	tk := NewTracker(0, 0)

	tracks, err := tk.Step([]Detection{
		det(0, 0, 20, 20),
		det(2, 2, 22, 22),
	})

	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(tracks) != 2 {
		t.Errorf("expected no merge by default, got %d tracks", len(tracks))
	}
}

func TestNoMergeOfDistantTracks(t *testing.T) {

	tk := NewTracker(0, 0).WithMerge(1)

	tracks, err := tk.Step([]Detection{
		det(0, 0, 20, 20),
		det(500, 500, 520, 520),
	})

	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(tracks) != 2 {
		t.Errorf("expected distant tracks to stay separate, got %d", len(tracks))
	}
}

func TestShouldMerge(t *testing.T) {

	near := testTrack(1, NewRect(0, 0, 20, 20))
	overlapping := testTrack(2, NewRect(2, 2, 20, 20))
	far := testTrack(3, NewRect(500, 500, 20, 20))

	if !shouldMerge(near, overlapping) {
		t.Errorf("expected overlapping stationary tracks to merge")
	}

	if shouldMerge(near, far) {
		t.Errorf("expected distant tracks not to merge")
	}
}

func TestMergeFrames(t *testing.T) {

	cases := []struct {
		a, b, want []int
	}{
		{[]int{1, 2, 3}, []int{2, 3, 4}, []int{1, 2, 3, 4}},
		{[]int{1, 2}, nil, []int{1, 2}},
		{nil, []int{5}, []int{5}},
		{nil, nil, []int{}},
	}

	for _, tc := range cases {

		got := mergeFrames(tc.a, tc.b)

		if len(got) != len(tc.want) {
			t.Errorf("mergeFrames(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			continue
		}

		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("mergeFrames(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
				break
			}
		}
	}
}
