package tracker

import (
	"fmt"
	"sort"
)

const (
	// DefaultFixedCost is the default cost of the "no match" padding
	// entries in the assignment cost matrix
	DefaultFixedCost = 100.0
	// DefaultUndetectedThreshold is the default number of consecutive
	// undetected frames a track survives before removal
	DefaultUndetectedThreshold = 2
	// DefaultProcessNoise is the default process noise variance of the
	// motion model
	DefaultProcessNoise = 4.0
	// DefaultMeasurementNoise is the default measurement noise variance
	// of the motion model
	DefaultMeasurementNoise = 4.0
)

// Tracker tracks an unknown, time varying number of particles across a
// sequence of frames.  Each call to Step processes one frame of detections
// to completion, the Tracker is not safe for concurrent use
type Tracker struct {
	// Cost of the padding entries in the assignment matrix
	fixedCost float64
	// Number of consecutive undetected frames a track survives
	undetectedThreshold int
	// Motion model noise variances applied to new tracks
	processNoise     float32
	measurementNoise float32
	// Display color generator for new tracks
	colorPicker ColorPicker
	// Optional merge pass settings
	mergeEnabled    bool
	mergeIterations int
	// Current frame ID
	frameID int
	// Counter of all tracks ever created, source of new track IDs
	totalTracks int
	// List of currently live tracks
	tracks []*Track
	// List of all tracks ever created, including removed ones
	allTracks []*Track
}

// NewTracker initializes and returns a new Tracker.  Passing zero for
// fixedCost or undetectedThreshold selects the default value
func NewTracker(fixedCost float64, undetectedThreshold int) *Tracker {

	if fixedCost <= 0 {
		fixedCost = DefaultFixedCost
	}

	if undetectedThreshold <= 0 {
		undetectedThreshold = DefaultUndetectedThreshold
	}

	return &Tracker{
		fixedCost:           fixedCost,
		undetectedThreshold: undetectedThreshold,
		processNoise:        DefaultProcessNoise,
		measurementNoise:    DefaultMeasurementNoise,
		colorPicker:         defaultColorPicker,
	}
}

// WithColorPicker sets the display color generator used for new tracks.
// Call before the first Step
func (t *Tracker) WithColorPicker(picker ColorPicker) *Tracker {
	t.colorPicker = picker
	return t
}

// WithNoise sets the motion model noise variances used for new tracks.
// Call before the first Step
func (t *Tracker) WithNoise(processNoise, measurementNoise float32) *Tracker {
	t.processNoise = processNoise
	t.measurementNoise = measurementNoise
	return t
}

// WithMerge enables the merge pass which combines spatially and
// kinematically similar tracks after each Step, running the given number
// of scan iterations.  The lower of the two track IDs survives a merge.
// Call before the first Step
func (t *Tracker) WithMerge(iterations int) *Tracker {

	if iterations <= 0 {
		iterations = defaultMergeIterations
	}

	t.mergeEnabled = true
	t.mergeIterations = iterations
	return t
}

// GetFrameID returns the current frame ID.  Frame IDs start at 1 on the
// first Step
func (t *Tracker) GetFrameID() int {
	return t.frameID
}

// GetTracks returns a snapshot of the currently live tracks
func (t *Tracker) GetTracks() []*Track {
	out := make([]*Track, len(t.tracks))
	copy(out, t.tracks)
	return out
}

// GetAllTracks returns all tracks ever created, including removed ones
func (t *Tracker) GetAllTracks() []*Track {
	out := make([]*Track, len(t.allTracks))
	copy(out, t.allTracks)
	return out
}

// GetTotalTracks returns the number of tracks ever created
func (t *Tracker) GetTotalTracks() int {
	return t.totalTracks
}

// Reset clears the tracked data and resets everything
func (t *Tracker) Reset() {
	t.frameID = 0
	t.totalTracks = 0
	t.tracks = nil
	t.allTracks = nil
}

// Step processes one frame of detections.  It predicts every live track,
// solves the detection to track assignment, corrects matched tracks,
// creates tracks for unmatched detections, ages unmatched tracks and
// removes those undetected beyond the threshold.  It returns the live
// track snapshot for the frame.
//
// A frame with malformed detections (non-positive box dimensions) is
// rejected before any state is mutated
func (t *Tracker) Step(dets []Detection) ([]*Track, error) {

	for i := range dets {
		if dets[i].Rect.Width() <= 0 || dets[i].Rect.Height() <= 0 {
			return nil, fmt.Errorf("detection %d has non-positive size %gx%g",
				i, dets[i].Rect.Width(), dets[i].Rect.Height())
		}
	}

	t.frameID++

	// predict every live track, including those currently undetected.
	// Their position keeps being extrapolated until removal
	for _, track := range t.tracks {
		track.Predict(t.frameID)
	}

	nDet := len(dets)
	nTrk := len(t.tracks)

	var rowSol []int

	if nDet+nTrk > 0 {
		var err error
		rowSol, _, err = solveAssignment(buildCostMatrix(dets, t.tracks, t.fixedCost))

		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", t.frameID, err)
		}
	}

	// correct matched tracks, spawn new tracks for detections assigned to
	// a padding column
	var born []*Track

	for i := 0; i < nDet; i++ {

		if j := rowSol[i]; j < nTrk {
			err := t.tracks[j].Correct(Measurement(dets[i].Rect.GetCcwh()), dets[i].Mask)

			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", t.frameID, err)
			}

		} else {
			id := t.totalTracks + len(born) + 1
			track := newTrack(id, dets[i].Rect, dets[i].Mask, t.colorPicker(id),
				t.processNoise, t.measurementNoise)
			track.frames = append(track.frames, t.frameID)
			born = append(born, track)
		}
	}

	// a padding row assigned to a track column means that track went
	// undetected this frame
	var missed []int

	for i := nDet; i < nDet+nTrk; i++ {
		if j := rowSol[i]; j < nTrk {
			missed = append(missed, j)
		}
	}

	// age the missed tracks and drop those beyond the tolerance window,
	// removing in descending index order so pending indices stay valid
	sort.Sort(sort.Reverse(sort.IntSlice(missed)))

	for _, idx := range missed {
		t.tracks[idx].miss()

		if t.tracks[idx].undetected > t.undetectedThreshold {
			t.tracks = append(t.tracks[:idx], t.tracks[idx+1:]...)
		}
	}

	t.tracks = append(t.tracks, born...)
	t.allTracks = append(t.allTracks, born...)
	t.totalTracks += len(born)

	if t.mergeEnabled {
		t.mergeTracks()
	}

	return t.GetTracks(), nil
}
