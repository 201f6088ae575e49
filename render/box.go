package render

import (
	"fmt"
	"image"

	"github.com/partvision/go-mot/tracker"
	"gocv.io/x/gocv"
)

// TrackBoxes renders the bounding boxes of the tracked particles, each in
// the track's own display color with its ID as label
func TrackBoxes(img *gocv.Mat, tracks []*tracker.Track, font Font,
	lineThickness int) {

	for _, track := range tracks {

		useClr := track.GetColor()

		rect := image.Rect(
			int(track.GetRect().TLX()), int(track.GetRect().TLY()),
			int(track.GetRect().BRX()), int(track.GetRect().BRY()),
		)

		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%d", track.GetID())
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// Calculate the alignment of the text label
		var leftX int

		switch font.Alignment {
		case Center:
			leftX = (rect.Min.X+rect.Max.X)/2 - textSize.X/2
		case Right:
			leftX = rect.Max.X - textSize.X - font.RightPad
		default:
			leftX = rect.Min.X
		}

		// background rectangle behind the label text
		bgRect := image.Rect(
			leftX,
			rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			leftX+textSize.X+font.LeftPad+font.RightPad,
			rect.Min.Y,
		)

		gocv.Rectangle(img, bgRect, useClr, -1)

		gocv.PutTextWithParams(img, text,
			image.Pt(leftX+font.LeftPad, rect.Min.Y-font.BottomPad),
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
