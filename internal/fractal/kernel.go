package fractal

import (
	"fmt"
	"math"

	"frakt-worker/internal/complexnum"
)

// Dispatch selects the kernel matching descriptor's concrete type and
// runs it over task, returning task.Resolution.Count() pixels in
// row-major order (y outer, x inner). It is the single-level tagged-union
// dispatch called for by the fractal kernel design: no per-family
// interface hierarchy, just a type switch.
func Dispatch(descriptor Descriptor, task Task) ([]PixelIntensity, error) {
	switch d := descriptor.(type) {
	case Julia:
		return generateJulia(task, d), nil
	case Mandelbrot:
		return generateMandelbrot(task), nil
	case IteratedSinZ:
		return generateIteratedSinZ(task, d), nil
	case NewtonRaphsonZ3:
		return generateNewton(task, newtonZ3Polynomial, newtonZ3Derivative), nil
	case NewtonRaphsonZ4:
		return generateNewton(task, newtonZ4Polynomial, newtonZ4Derivative), nil
	case NovaNewtonZ3:
		return generateNovaNewton(task, newtonZ3Polynomial, newtonZ3Derivative), nil
	case NovaNewtonZ4:
		return generateNovaNewton(task, newtonZ4Polynomial, newtonZ4Derivative), nil
	default:
		return nil, fmt.Errorf("fractal: no kernel registered for descriptor type %T", descriptor)
	}
}

// generate runs compute over every pixel of task in row-major order,
// pre-allocating the output slice to avoid growth (spec: "no sparse
// representation").
func generate(task Task, compute func(p complexnum.Complex) PixelIntensity) []PixelIntensity {
	dx, dy := task.steps()
	out := make([]PixelIntensity, 0, task.Resolution.Count())
	for iy := 0; iy < int(task.Resolution.NY); iy++ {
		for ix := 0; ix < int(task.Resolution.NX); ix++ {
			p := task.physicalPoint(ix, iy, dx, dy)
			out = append(out, clampFinite(compute(complexnum.New(p.X, p.Y))))
		}
	}
	return out
}

// clampFinite enforces the universal invariant that every emitted
// PixelIntensity is finite; a kernel that hit a degenerate numeric state
// (e.g. a zero Newton derivative) is expected to have already clamped
// itself, this is the last line of defense.
func clampFinite(p PixelIntensity) PixelIntensity {
	if !isFinite32(p.Zn) || !isFinite32(p.Count) {
		return PixelIntensity{Zn: 0, Count: 1}
	}
	return p
}

func isFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
