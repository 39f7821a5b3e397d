package fractal

import (
	"math"

	"frakt-worker/internal/complexnum"
)

// newtonZ3Polynomial and newtonZ3Derivative are z³-1 and its derivative 3z².
func newtonZ3Polynomial(z complexnum.Complex) complexnum.Complex {
	z2 := z.Square()
	return z2.Mul(z).Sub(complexnum.New(1, 0))
}

func newtonZ3Derivative(z complexnum.Complex) complexnum.Complex {
	return complexnum.New(3, 0).Mul(z.Square())
}

// newtonZ4Polynomial and newtonZ4Derivative are z⁴-1 and its derivative 4z³.
func newtonZ4Polynomial(z complexnum.Complex) complexnum.Complex {
	z2 := z.Square()
	return z2.Mul(z2).Sub(complexnum.New(1, 0))
}

func newtonZ4Derivative(z complexnum.Complex) complexnum.Complex {
	return complexnum.New(4, 0).Mul(z.Square()).Mul(z)
}

const newtonEpsilon = 1e-6

// generateNewton implements the Newton-Raphson family shared by
// NewtonRaphsonZ3 and NewtonRaphsonZ4: z ← z - P(z)/P'(z), z₀ set to the
// pixel's own physical coordinate, iterating while i<max_iteration and
// |P(z)|² stays above newtonEpsilon. zn encodes the root's angular
// position (fractional part of 0.5+arg(z)/2π); count is a smoothed
// convergence measure that saturates at 1 once the iteration budget is
// exhausted without convergence.
func generateNewton(task Task, poly, deriv func(complexnum.Complex) complexnum.Complex) []PixelIntensity {
	maxIteration := task.MaxIteration

	return generate(task, func(p complexnum.Complex) PixelIntensity {
		z := p
		var i uint32
		pz := poly(z)
		for i < maxIteration && pz.SquareNorm() > newtonEpsilon {
			step, ok := pz.Div(deriv(z))
			if !ok {
				return PixelIntensity{Zn: 0, Count: 1}
			}
			z = z.Sub(step)
			i++
			pz = poly(z)
		}

		zn := float32(fractionalPart(0.5 + z.Argument()/(2*math.Pi)))
		count := float32(newtonConvergence(pz.SquareNorm(), i, maxIteration))
		return PixelIntensity{Zn: zn, Count: count}
	})
}

func fractionalPart(v float64) float64 {
	_, frac := math.Modf(v)
	if frac < 0 {
		frac += 1
	}
	return frac
}

// newtonConvergence is the smoothed count signal: 1.0 once the iteration
// budget is spent, otherwise a cosine ramp driven by how many decades
// |P(z)|² still sits above newtonEpsilon.
func newtonConvergence(pzSquareNorm float64, i, maxIteration uint32) float64 {
	if i >= maxIteration {
		return 1.0
	}
	logPz := math.Log10(pzSquareNorm)
	logEps := math.Log10(newtonEpsilon)
	return 0.5 - 0.5*math.Cos(0.1*(float64(i)-logPz/logEps))
}
