package tracker

import "math"

// buildCostMatrix returns the square cost matrix of order
// len(dets)+len(tracks) used by the assignment solve.  Entry [i][j] for
// i < len(dets) and j < len(tracks) is the geometric dissimilarity between
// detection i and track j's predicted bounding box.  All remaining entries
// are padding set to fixedCost, which makes "no match" available and
// comparably priced on both sides: a detection assigned to a padding
// column is a birth, a padding row assigned to a track column is a miss.
//
// With zero detections or zero tracks the matrix degenerates to pure
// padding and still yields a valid trivial assignment.
func buildCostMatrix(dets []Detection, tracks []*Track, fixedCost float64) [][]float64 {

	n := len(dets) + len(tracks)

	cost := make([][]float64, n)

	for i := range cost {
		cost[i] = make([]float64, n)

		for j := range cost[i] {
			cost[i][j] = fixedCost
		}
	}

	for i := range dets {
		for j, track := range tracks {
			cost[i][j] = boxDistance(&dets[i].Rect, track.GetRect())
		}
	}

	return cost
}

// boxDistance computes the geometric dissimilarity between two boxes as
// the distance between their centers plus the euclidean norm of their size
// difference.  Symmetric in scale and non-negative
func boxDistance(a, b *Rect) float64 {

	dx := float64(a.CenterX() - b.CenterX())
	dy := float64(a.CenterY() - b.CenterY())
	dw := float64(a.Width() - b.Width())
	dh := float64(a.Height() - b.Height())

	return math.Hypot(dx, dy) + math.Hypot(dw, dh)
}
