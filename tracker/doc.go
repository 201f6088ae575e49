/*
Package tracker implements multi-object tracking of particles across video
frames.  It receives per frame detections (bounding boxes plus shape masks)
from an external detector, assigns stable identities to particles, predicts
their motion between frames with a constant velocity Kalman filter and
manages track birth, temporary occlusion and death.

Frame to frame correspondence is solved as a minimum cost assignment
problem over a square cost matrix padded with a fixed "no match" cost,
which lets a single solve express matches, births and deaths at once.

The tracker never touches pixels.  Detections for a frame arrive as a
single batch through Step and the returned snapshot exposes each live
track's identity, bounding box, mask history and miss count.
*/
package tracker
