// Package fractal implements the per-pixel escape-time kernels for each
// supported fractal family, plus the tagged descriptor that selects one.
package fractal

// Point is a physical-plane coordinate.
type Point struct {
	X, Y float64
}

// Range is a rectangular region of the image plane. Min.X < Max.X and
// Min.Y < Max.Y always hold for a well-formed Range.
type Range struct {
	Min, Max Point
}

// Resolution is the pixel dimensions of a fragment.
type Resolution struct {
	NX, NY uint16
}

// Count returns NX*NY, the number of pixels a fragment of this resolution
// holds.
func (r Resolution) Count() int {
	return int(r.NX) * int(r.NY)
}

// PixelIntensity is the per-pixel numeric output of a kernel: zn is a
// post-iteration magnitude measure, count is the normalised iteration
// fraction in [0,1].
type PixelIntensity struct {
	Zn    float32
	Count float32
}

// Task is everything a kernel needs to compute one fragment: the plane
// region, the output resolution, and the iteration budget. The task-id
// and descriptor travel alongside a Task but are not part of it — the
// descriptor selects which kernel runs, and the id is wire-protocol
// bookkeeping the kernel never touches.
type Task struct {
	Range        Range
	Resolution   Resolution
	MaxIteration uint32
}

// steps returns the per-pixel plane deltas (dx, dy) for this task.
func (t Task) steps() (dx, dy float64) {
	dx = (t.Range.Max.X - t.Range.Min.X) / float64(t.Resolution.NX)
	dy = (t.Range.Max.Y - t.Range.Min.Y) / float64(t.Resolution.NY)
	return dx, dy
}

// physicalPoint returns the plane coordinate of pixel (ix, iy).
func (t Task) physicalPoint(ix, iy int, dx, dy float64) Point {
	return Point{
		X: t.Range.Min.X + float64(ix)*dx,
		Y: t.Range.Min.Y + float64(iy)*dy,
	}
}
