package fractal

import "frakt-worker/internal/complexnum"

// generateJulia implements the Julia family: z ← z²+c, diverging once
// |z|² reaches d.DivergenceThresholdSquare.
//
// zn uses the literal expression re²+im²/T rather than the parenthesised
// |z|²/T — see DESIGN.md for why the apparent source bug is preserved.
func generateJulia(task Task, d Julia) []PixelIntensity {
	threshold := d.DivergenceThresholdSquare
	maxIteration := task.MaxIteration

	return generate(task, func(p complexnum.Complex) PixelIntensity {
		z := p
		remaining := maxIteration
		for remaining > 0 && z.SquareNorm() < threshold {
			z = z.Square().Add(d.C)
			remaining--
		}

		zn := float32(z.Re*z.Re + z.Im*z.Im/threshold)
		count := float32(remaining) / float32(maxIteration)
		return PixelIntensity{Zn: zn, Count: count}
	})
}
