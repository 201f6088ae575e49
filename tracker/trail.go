package tracker

import "sync"

// Point represents the x,y coordinates of the center of a tracked
// particle's bounding box
type Point struct {
	X, Y int
}

// Trail keeps a bounded history of track center points keyed by track ID,
// used for drawing motion trails
type Trail struct {
	// size is the maximum number of most recent points to keep per track
	size int
	// history of tracked center points keyed by track ID
	history map[int][]Point
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size specifies the
// maximum trail length maintained per track
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int][]Point),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int][]Point)
}

// Add appends the track's current center point to its trail history
func (t *Trail) Add(track *Track) {
	t.Lock()
	defer t.Unlock()

	id := track.GetID()

	points := append(t.history[id], Point{
		X: int(track.GetRect().CenterX()),
		Y: int(track.GetRect().CenterY()),
	})

	// drop the oldest point once the trail length is exceeded
	if len(points) > t.size {
		points = points[1:]
	}

	t.history[id] = points
}

// GetPoints gets the point history for a specific track ID
func (t *Trail) GetPoints(id int) []Point {
	t.Lock()
	defer t.Unlock()

	return t.history[id]
}
