package fractal

import "frakt-worker/internal/complexnum"

const mandelbrotThreshold = 4.0

// generateMandelbrot implements the Mandelbrot family: z ← z²+c with
// c set to the pixel's own physical coordinate and z₀=0.
//
// i counts completed non-escaping iterations: the iterate that first
// crosses the threshold is used for zn but does not increment i, so a
// pixel that diverges on its very first update reports i=0. This matches
// the worked example in the source spec (a pixel with |c|²>4 emits
// count=0, not count=1/max_iteration).
func generateMandelbrot(task Task) []PixelIntensity {
	maxIteration := task.MaxIteration

	return generate(task, func(c complexnum.Complex) PixelIntensity {
		z := complexnum.New(0, 0)
		var i uint32
		for i < maxIteration {
			next := z.Square().Add(c)
			if next.SquareNorm() > mandelbrotThreshold {
				z = next
				break
			}
			z = next
			i++
		}

		zn := float32(z.SquareNorm() / mandelbrotThreshold)
		count := float32(i) / float32(maxIteration)
		return PixelIntensity{Zn: zn, Count: count}
	})
}
