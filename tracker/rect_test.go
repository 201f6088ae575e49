package tracker

import (
	"testing"
)

func TestRectConversions(t *testing.T) {

	r := GenerateRectByTlbr(Tlbr{10, 20, 30, 60})

	if r.Width() != 20 || r.Height() != 40 {
		t.Errorf("expected size 20x40, got %fx%f", r.Width(), r.Height())
	}

	cc := r.GetCcwh()

	if cc[0] != 20 || cc[1] != 40 || cc[2] != 20 || cc[3] != 40 {
		t.Errorf("expected ccwh [20 40 20 40], got %v", cc)
	}

	// round trip through center form
	back := GenerateRectByCcwh(cc)

	if back.TLX() != 10 || back.TLY() != 20 || back.BRX() != 30 || back.BRY() != 60 {
		t.Errorf("round trip failed, got [%f %f %f %f]",
			back.TLX(), back.TLY(), back.BRX(), back.BRY())
	}
}

func TestRectIoM(t *testing.T) {

	a := NewRect(0, 0, 20, 20)
	contained := NewRect(5, 5, 10, 10)
	disjoint := NewRect(100, 100, 20, 20)

	// fully contained smaller box saturates at 1
	if iom := a.CalcIoM(contained); !almostEqual(iom, 1, 1e-5) {
		t.Errorf("expected IoM 1 for contained box, got %f", iom)
	}

	if iom := a.CalcIoM(disjoint); iom != 0 {
		t.Errorf("expected IoM 0 for disjoint boxes, got %f", iom)
	}

	// symmetric
	if a.CalcIoM(contained) != contained.CalcIoM(a) {
		t.Errorf("expected IoM to be symmetric")
	}
}

func TestRectUnion(t *testing.T) {

	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	u := a.Union(b)

	if u.TLX() != 0 || u.TLY() != 0 || u.BRX() != 15 || u.BRY() != 15 {
		t.Errorf("expected union [0 0 15 15], got [%f %f %f %f]",
			u.TLX(), u.TLY(), u.BRX(), u.BRY())
	}
}
