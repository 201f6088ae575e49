package render

import (
	"image"

	"github.com/partvision/go-mot/tracker"
	"gocv.io/x/gocv"
)

// MaskOutlines draws the most recent shape contour of each tracked particle
// in the track's own display color
func MaskOutlines(img *gocv.Mat, tracks []*tracker.Track, lineThickness int) {

	for _, track := range tracks {

		mask := track.GetLastMask()

		if len(mask) < 2 {
			continue
		}

		contour := make([]image.Point, len(mask))
		copy(contour, mask)

		pts := gocv.NewPointsVectorFromPoints([][]image.Point{contour})
		gocv.Polylines(img, pts, true, track.GetColor(), lineThickness)
		pts.Close()
	}
}
