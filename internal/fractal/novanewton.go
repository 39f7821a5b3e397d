package fractal

import "frakt-worker/internal/complexnum"

const novaNewtonConvergenceEpsilon = 1e-6

// generateNovaNewton implements the Nova-Newton variant shared by
// NovaNewtonZ3 and NovaNewtonZ4: z is seeded at the fixed point (1,0) for
// every pixel, and each step adds the pixel's own physical coordinate as a
// perturbation: z ← z - poly(z)/deriv(z) + c. Iteration stops the moment a
// step's displacement |z_next-z|² drops below novaNewtonConvergenceEpsilon;
// that final step is applied but does not increment the counter, so a
// pixel that converges on its first step reports count=0.
//
// The family carries no root-identity signal (unlike NewtonRaphson), so
// zn is always 0 — only count distinguishes pixels.
func generateNovaNewton(task Task, poly, deriv func(complexnum.Complex) complexnum.Complex) []PixelIntensity {
	maxIteration := task.MaxIteration

	return generate(task, func(c complexnum.Complex) PixelIntensity {
		z := complexnum.New(1, 0)
		var i uint32
		for i < maxIteration {
			step, ok := poly(z).Div(deriv(z))
			if !ok {
				return PixelIntensity{Zn: 0, Count: 1}
			}
			next := z.Sub(step).Add(c)
			displacement := next.Sub(z).SquareNorm()
			if displacement < novaNewtonConvergenceEpsilon {
				z = next
				break
			}
			z = next
			i++
		}

		count := float32(i) / float32(maxIteration)
		return PixelIntensity{Zn: 0, Count: count}
	})
}
