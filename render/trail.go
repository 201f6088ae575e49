package render

import (
	"image"
	"image/color"

	"github.com/partvision/go-mot/tracker"
	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the midpoint circle should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      false,
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trail draws the particle trail lines on the source image
func Trail(img *gocv.Mat, tracks []*tracker.Track, trail *tracker.Trail,
	style TrailStyle) {

	for _, track := range tracks {

		points := trail.GetPoints(track.GetID())

		lineClr := style.LineColor

		if style.LineSame {
			lineClr = track.GetColor()
		}

		// draw trail lines between the historical center points
		for i := 1; i < len(points); i++ {
			gocv.Line(img,
				image.Pt(points[i-1].X, points[i-1].Y),
				image.Pt(points[i].X, points[i].Y),
				lineClr, style.LineThickness)
		}

		if len(points) == 0 {
			continue
		}

		circleClr := style.CircleColor

		if style.CircleSame {
			circleClr = track.GetColor()
		}

		// mark the current center point
		last := points[len(points)-1]
		gocv.Circle(img, image.Pt(last.X, last.Y), style.CircleRadius, circleClr, -1)
	}
}
