package fractal

import "frakt-worker/internal/complexnum"

const sinZThreshold = 50.0

// generateIteratedSinZ implements the IteratedSinZ family: z ← sin(z)·c,
// z₀ set to the pixel's own physical coordinate, diverging once |z|²
// crosses sinZThreshold. Uses the same escape-skip counting convention as
// generateMandelbrot.
func generateIteratedSinZ(task Task, d IteratedSinZ) []PixelIntensity {
	maxIteration := task.MaxIteration

	return generate(task, func(p complexnum.Complex) PixelIntensity {
		z := p
		var i uint32
		for i < maxIteration {
			next := z.Sine().Mul(d.C)
			if next.SquareNorm() > sinZThreshold {
				z = next
				break
			}
			z = next
			i++
		}

		zn := float32(z.SquareNorm() / sinZThreshold)
		count := float32(i) / float32(maxIteration)
		return PixelIntensity{Zn: zn, Count: count}
	})
}
