package tracker

import "fmt"

// Detection represents one frame's raw observation of a particle produced
// by an external detector.  Detections carry no identity, identity is
// assigned entirely by the tracker
type Detection struct {
	// Rect is the bounding box of the detected particle
	Rect Rect
	// Mask is the shape contour of the detected particle
	Mask Mask
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(rect Rect, mask Mask) Detection {
	return Detection{
		Rect: rect,
		Mask: mask,
	}
}

// DetectionsFromTlbr converts parallel slices of corner format boxes and
// masks into detections.  It returns an error when the slice lengths do
// not match
func DetectionsFromTlbr(boxes []Tlbr, masks []Mask) ([]Detection, error) {

	if len(boxes) != len(masks) {
		return nil, fmt.Errorf("got %d boxes but %d masks", len(boxes), len(masks))
	}

	dets := make([]Detection, 0, len(boxes))

	for i, box := range boxes {
		dets = append(dets, Detection{
			Rect: GenerateRectByTlbr(box),
			Mask: masks[i],
		})
	}

	return dets, nil
}
