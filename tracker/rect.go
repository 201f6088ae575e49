package tracker

import (
	"math"
)

// Tlwh (top left x, top left y, width, height) represents a 1x4 matrix
type Tlwh []float32

// Tlbr (x1, y1, x2, y2) represents a 1x4 matrix of the upper left and lower
// right corner coordinates
type Tlbr []float32

// Ccwh (center x, center y, width, height) represents a 1x4 matrix, the
// center form used by the motion model
type Ccwh []float32

// Rect represents a rectangle with Tlwh (top left, width, height) format
type Rect struct {
	Tlwh Tlwh
}

// NewRect creates a new Rect with given coordinates
func NewRect(x, y, width, height float32) Rect {
	return Rect{
		Tlwh: Tlwh{x, y, width, height},
	}
}

// X returns the x coordinate of the rectangle
func (r *Rect) X() float32 {
	return r.Tlwh[0]
}

// Y returns the y coordinate of the rectangle
func (r *Rect) Y() float32 {
	return r.Tlwh[1]
}

// Width returns the width of the rectangle
func (r *Rect) Width() float32 {
	return r.Tlwh[2]
}

// Height returns the height of the rectangle
func (r *Rect) Height() float32 {
	return r.Tlwh[3]
}

// SetX sets the x coordinate of the rectangle
func (r *Rect) SetX(x float32) {
	r.Tlwh[0] = x
}

// SetY sets the y coordinate of the rectangle
func (r *Rect) SetY(y float32) {
	r.Tlwh[1] = y
}

// SetWidth sets the width of the rectangle
func (r *Rect) SetWidth(width float32) {
	r.Tlwh[2] = width
}

// SetHeight sets the height of the rectangle
func (r *Rect) SetHeight(height float32) {
	r.Tlwh[3] = height
}

// TLX returns the top-left x coordinate of the rectangle
func (r *Rect) TLX() float32 {
	return r.Tlwh[0]
}

// TLY returns the top-left y coordinate of the rectangle
func (r *Rect) TLY() float32 {
	return r.Tlwh[1]
}

// BRX returns the bottom-right x coordinate of the rectangle
func (r *Rect) BRX() float32 {
	return r.Tlwh[0] + r.Tlwh[2]
}

// BRY returns the bottom-right y coordinate of the rectangle
func (r *Rect) BRY() float32 {
	return r.Tlwh[1] + r.Tlwh[3]
}

// CenterX returns the x coordinate of the rectangle center
func (r *Rect) CenterX() float32 {
	return r.Tlwh[0] + r.Tlwh[2]/2
}

// CenterY returns the y coordinate of the rectangle center
func (r *Rect) CenterY() float32 {
	return r.Tlwh[1] + r.Tlwh[3]/2
}

// GetTlbr converts the rectangle to Tlbr (x1, y1, x2, y2) corner format
func (r *Rect) GetTlbr() Tlbr {
	return Tlbr{
		r.Tlwh[0],
		r.Tlwh[1],
		r.Tlwh[0] + r.Tlwh[2],
		r.Tlwh[1] + r.Tlwh[3],
	}
}

// GetCcwh converts the rectangle to Ccwh (center x, center y, width, height)
// format
func (r *Rect) GetCcwh() Ccwh {
	return Ccwh{
		r.Tlwh[0] + r.Tlwh[2]/2,
		r.Tlwh[1] + r.Tlwh[3]/2,
		r.Tlwh[2],
		r.Tlwh[3],
	}
}

// CalcIoU calculates the Intersection over Union (IoU) with another rectangle
func (r *Rect) CalcIoU(other Rect) float32 {

	boxArea := (other.Tlwh[2] + 1) * (other.Tlwh[3] + 1)
	iw := float32(math.Min(float64(r.Tlwh[0]+r.Tlwh[2]), float64(other.Tlwh[0]+other.Tlwh[2])) - math.Max(float64(r.Tlwh[0]), float64(other.Tlwh[0])) + 1)
	iou := float32(0)

	if iw > 0 {
		ih := float32(math.Min(float64(r.Tlwh[1]+r.Tlwh[3]), float64(other.Tlwh[1]+other.Tlwh[3])) - math.Max(float64(r.Tlwh[1]), float64(other.Tlwh[1])) + 1)

		if ih > 0 {
			ua := (r.Tlwh[2]+1)*(r.Tlwh[3]+1) + boxArea - iw*ih
			iou = iw * ih / ua
		}
	}

	return iou
}

// CalcIoM calculates the intersection over the minimum of the two rectangle
// areas.  Unlike IoU this saturates at 1 when the smaller rectangle is fully
// contained by the larger one, making it the better overlap signal for
// deciding whether two tracks cover the same particle
func (r *Rect) CalcIoM(other Rect) float32 {

	iw := float32(math.Min(float64(r.BRX()), float64(other.BRX())) -
		math.Max(float64(r.TLX()), float64(other.TLX())))

	if iw <= 0 {
		return 0
	}

	ih := float32(math.Min(float64(r.BRY()), float64(other.BRY())) -
		math.Max(float64(r.TLY()), float64(other.TLY())))

	if ih <= 0 {
		return 0
	}

	minArea := float32(math.Min(float64(r.Width()*r.Height()),
		float64(other.Width()*other.Height())))

	if minArea <= 0 {
		return 0
	}

	return iw * ih / minArea
}

// Union returns the smallest rectangle enclosing both rectangles
func (r *Rect) Union(other Rect) Rect {

	x1 := float32(math.Min(float64(r.TLX()), float64(other.TLX())))
	y1 := float32(math.Min(float64(r.TLY()), float64(other.TLY())))
	x2 := float32(math.Max(float64(r.BRX()), float64(other.BRX())))
	y2 := float32(math.Max(float64(r.BRY()), float64(other.BRY())))

	return NewRect(x1, y1, x2-x1, y2-y1)
}

// GenerateRectByTlbr creates a Rect from Tlbr (x1, y1, x2, y2) corner format
func GenerateRectByTlbr(tlbr Tlbr) Rect {
	return NewRect(tlbr[0], tlbr[1], tlbr[2]-tlbr[0], tlbr[3]-tlbr[1])
}

// GenerateRectByCcwh creates a Rect from Ccwh (center x, center y, width,
// height) format
func GenerateRectByCcwh(ccwh Ccwh) Rect {
	return NewRect(ccwh[0]-ccwh[2]/2, ccwh[1]-ccwh[3]/2, ccwh[2], ccwh[3])
}
