package main

import (
	"flag"
	"log"

	"github.com/partvision/go-mot/render"
	"github.com/partvision/go-mot/tracker"
	"gocv.io/x/gocv"
)

// synthetic particles moving across the frame at constant velocity
type particle struct {
	x, y, size float32
	vx, vy     float32
	// frame range the particle is visible in
	firstFrame, lastFrame int
}

// detect produces the particle's detection for the given frame, or false
// when the particle is not visible
func (p *particle) detect(frame int) (tracker.Detection, bool) {

	if frame < p.firstFrame || frame > p.lastFrame {
		return tracker.Detection{}, false
	}

	step := float32(frame - p.firstFrame)
	x := p.x + p.vx*step
	y := p.y + p.vy*step

	mask := tracker.Mask{
		{X: int(x), Y: int(y)},
		{X: int(x + p.size), Y: int(y)},
		{X: int(x + p.size), Y: int(y + p.size)},
		{X: int(x), Y: int(y + p.size)},
	}

	return tracker.NewDetection(tracker.NewRect(x, y, p.size, p.size), mask), true
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	saveFile := flag.String("o", "particletrack-out.jpg", "The output JPG file with tracking markers")
	frames := flag.Int("n", 30, "Number of synthetic frames to process")

	flag.Parse()

	particles := []particle{
		{x: 40, y: 60, size: 24, vx: 8, vy: 2, firstFrame: 1, lastFrame: 30},
		{x: 560, y: 400, size: 18, vx: -10, vy: -4, firstFrame: 1, lastFrame: 30},
		// appears later and goes undetected before the end
		{x: 300, y: 40, size: 20, vx: 0, vy: 9, firstFrame: 8, lastFrame: 22},
	}

	mot := tracker.NewTracker(tracker.DefaultFixedCost,
		tracker.DefaultUndetectedThreshold)

	trail := tracker.NewTrail(40)

	var tracks []*tracker.Track

	for frame := 1; frame <= *frames; frame++ {

		var dets []tracker.Detection

		for i := range particles {
			if det, ok := particles[i].detect(frame); ok {
				dets = append(dets, det)
			}
		}

		var err error
		tracks, err = mot.Step(dets)

		if err != nil {
			log.Fatalf("tracking failed at frame %d: %v", frame, err)
		}

		for _, track := range tracks {
			trail.Add(track)
		}

		log.Printf("frame %d: %d detections, %d live tracks", frame,
			len(dets), len(tracks))
	}

	for _, track := range mot.GetAllTracks() {
		log.Printf("track %d: lived %d frames, undetected count %d",
			track.GetID(), len(track.GetFrames()), track.GetUndetectedCount())
	}

	// render the final frame state
	img := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer img.Close()

	img.SetTo(gocv.NewScalar(30, 30, 30, 0))

	render.TrackBoxes(&img, tracks, render.DefaultFont(), 2)
	render.MaskOutlines(&img, tracks, 1)
	render.Trail(&img, tracks, trail, render.DefaultTrailStyle())

	if ok := gocv.IMWrite(*saveFile, img); !ok {
		log.Fatalf("failed to write %s", *saveFile)
	}

	log.Printf("saved tracking output to %s", *saveFile)
}
