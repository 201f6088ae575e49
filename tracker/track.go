package tracker

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// Track represents a persistent identity and kinematic state estimate for
// one particle across frames
type Track struct {
	// Unique ID for the track, assigned once and never reused
	id int
	// Kalman filter used for tracking
	kalmanFilter *KalmanFilter
	// Mean state vector
	mean StateMean
	// Covariance matrix
	covariance StateCov
	// Bounding box derived from the state mean
	rect Rect
	// History of shape masks, one appended per observed frame
	masks []Mask
	// Number of consecutive frames the track has gone undetected
	undetected int
	// Frame IDs the track has existed through, including frames where it
	// was only predicted
	frames []int
	// Display color assigned at creation
	color color.RGBA
}

// newTrack creates a new Track from an initial detection.  The box must
// have positive width and height, this is the callers responsibility
func newTrack(id int, rect Rect, mask Mask, clr color.RGBA,
	processNoise, measurementNoise float32) *Track {

	t := &Track{
		id:           id,
		kalmanFilter: NewKalmanFilter(processNoise, measurementNoise),
		mean:         make(StateMean, 8),
		covariance:   StateCov{mat.NewDense(8, 8, nil)},
		// copy so the track never aliases the callers detection box
		rect:  NewRect(rect.X(), rect.Y(), rect.Width(), rect.Height()),
		masks: []Mask{mask},
		color: clr,
	}

	t.kalmanFilter.Initiate(t.mean, &t.covariance, Measurement(rect.GetCcwh()))
	t.updateRect()

	return t
}

// GetID returns the unique ID of the track
func (t *Track) GetID() int {
	return t.id
}

// GetRect returns the bounding box of the tracked particle
func (t *Track) GetRect() *Rect {
	return &t.rect
}

// GetMasks returns the history of shape masks of the tracked particle
func (t *Track) GetMasks() []Mask {
	return t.masks
}

// GetLastMask returns the most recently observed shape mask
func (t *Track) GetLastMask() Mask {
	return t.masks[len(t.masks)-1]
}

// GetColor returns the display color of the track
func (t *Track) GetColor() color.RGBA {
	return t.color
}

// GetUndetectedCount returns the number of consecutive frames the track
// has gone undetected
func (t *Track) GetUndetectedCount() int {
	return t.undetected
}

// GetFrames returns the frame IDs the track has existed through
func (t *Track) GetFrames() []int {
	return t.frames
}

// GetState returns a copy of the current state mean (center x, center y,
// width, height and the velocity of each)
func (t *Track) GetState() StateMean {
	state := make(StateMean, len(t.mean))
	copy(state, t.mean)
	return state
}

// Predict advances the track state one frame using the motion model alone
// and records the frame in the track history.  The bounding box is
// rederived from the predicted state
func (t *Track) Predict(frameID int) {
	t.kalmanFilter.Predict(t.mean, &t.covariance)
	t.updateRect()
	t.frames = append(t.frames, frameID)
}

// Correct fuses a new center form measurement into the predicted state and
// appends the observed mask.  Must only be called after a Predict for the
// same frame.  The undetected counter resets to zero
func (t *Track) Correct(measurement Measurement, mask Mask) error {

	err := t.kalmanFilter.Update(t.mean, &t.covariance, measurement)

	if err != nil {
		return fmt.Errorf("error correcting track %d: %w", t.id, err)
	}

	t.updateRect()
	t.masks = append(t.masks, mask)
	t.undetected = 0

	return nil
}

// miss increments the undetected counter after a frame with no matching
// detection
func (t *Track) miss() {
	t.undetected++
}

// updateRect rederives the bounding box from the state mean
func (t *Track) updateRect() {
	t.rect.SetWidth(t.mean[2])
	t.rect.SetHeight(t.mean[3])
	t.rect.SetX(t.mean[0] - t.mean[2]/2)
	t.rect.SetY(t.mean[1] - t.mean[3]/2)
}
