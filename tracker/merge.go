package tracker

import "math"

const (
	// defaultMergeIterations is the number of pairwise scan passes run
	// per frame when the merge pass is enabled
	defaultMergeIterations = 2
	// mergeDistMetricMax bounds the size normalized squared center
	// distance of merge candidates
	mergeDistMetricMax = 1.0
	// mergeIoMMin is the minimum bounding box overlap of moving merge
	// candidates
	mergeIoMMin = 0.05
	// mergeVelocityMax bounds the velocity difference of merge candidates
	mergeVelocityMax = 2.0
	// mergeStationaryIoMMin is the minimum bounding box overlap required
	// when both candidates are stationary
	mergeStationaryIoMMin = 0.1
)

// mergeTracks combines pairs of live tracks that cover the same particle,
// judged by center distance, bounding box overlap and velocity agreement.
// The track with the lower ID survives and absorbs the other.  The live
// list is rebuilt from a retain predicate after each pass, nothing is
// removed mid scan
func (t *Tracker) mergeTracks() {

	for it := 0; it < t.mergeIterations; it++ {

		merged := false
		removed := make([]bool, len(t.tracks))

		for i := 0; i < len(t.tracks); i++ {

			if removed[i] {
				continue
			}

			for j := i + 1; j < len(t.tracks); j++ {

				if removed[j] {
					continue
				}

				if !shouldMerge(t.tracks[i], t.tracks[j]) {
					continue
				}

				survivor, absorbed := i, j

				if t.tracks[j].id < t.tracks[i].id {
					survivor, absorbed = j, i
				}

				t.tracks[survivor].absorb(t.tracks[absorbed])
				removed[absorbed] = true
				merged = true

				if absorbed == i {
					break
				}
			}
		}

		if !merged {
			break
		}

		retained := t.tracks[:0]

		for i, track := range t.tracks {
			if !removed[i] {
				retained = append(retained, track)
			}
		}

		t.tracks = retained
	}
}

// shouldMerge reports whether two tracks cover the same particle
func shouldMerge(a, b *Track) bool {

	cx1, cy1, w1, h1 := a.mean[0], a.mean[1], a.mean[2], a.mean[3]
	cx2, cy2, w2, h2 := b.mean[0], b.mean[1], b.mean[2], b.mean[3]
	vx1, vy1 := a.mean[4], a.mean[5]
	vx2, vy2 := b.mean[4], b.mean[5]

	distSq := float64(cx1-cx2)*float64(cx1-cx2) + float64(cy1-cy2)*float64(cy1-cy2)

	// squared center distance normalized by both box areas
	dMetric := distSq/float64(h1*w1) + distSq/float64(h2*w2)

	// velocity difference
	vMetric := math.Hypot(float64(vx1-vx2), float64(vy1-vy2))

	// bounding box overlap
	iMetric := float64(a.rect.CalcIoM(b.rect))

	// stationary tracks have no velocity signal, decide on overlap alone
	if vx1 == 0 && vx2 == 0 && vy1 == 0 && vy2 == 0 {
		return iMetric > mergeStationaryIoMMin
	}

	return (dMetric < mergeDistMetricMax || iMetric > mergeIoMMin) &&
		vMetric < mergeVelocityMax
}

// absorb merges another track into this one.  The bounding box becomes the
// union of both boxes, velocities are averaged, the latest masks are
// unioned and the frame histories combined.  The absorbed track keeps its
// own state for the audit log but is dropped from the live set by the
// caller
func (t *Track) absorb(other *Track) {

	union := t.rect.Union(other.rect)
	cc := union.GetCcwh()

	t.mean[0] = cc[0]
	t.mean[1] = cc[1]
	t.mean[2] = cc[2]
	t.mean[3] = cc[3]

	for k := 4; k < 8; k++ {
		t.mean[k] = (t.mean[k] + other.mean[k]) / 2
	}

	t.updateRect()

	t.masks = append(t.masks, t.GetLastMask().Union(other.GetLastMask()))
	t.frames = mergeFrames(t.frames, other.frames)

	if other.undetected < t.undetected {
		t.undetected = other.undetected
	}
}

// mergeFrames merges two sorted frame histories, dropping duplicates
func mergeFrames(a, b []int) []int {

	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0

	for i < len(a) || j < len(b) {

		var next int

		switch {
		case j >= len(b):
			next = a[i]
			i++
		case i >= len(a):
			next = b[j]
			j++
		case a[i] < b[j]:
			next = a[i]
			i++
		case a[i] > b[j]:
			next = b[j]
			j++
		default:
			next = a[i]
			i++
			j++
		}

		if len(out) == 0 || out[len(out)-1] != next {
			out = append(out, next)
		}
	}

	return out
}
