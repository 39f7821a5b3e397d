package fractal

import (
	"encoding/json"
	"fmt"

	"frakt-worker/internal/complexnum"
)

// Descriptor is the tagged selector identifying which fractal family a
// FragmentTask asks for, and that family's parameters (if any). The set
// of concrete types is closed to the seven families below; Dispatch
// switches on the concrete type rather than relying on polymorphism.
type Descriptor interface {
	// familyName is the wire tag used for this descriptor, e.g. "Julia".
	// It also names the debug-render output file.
	familyName() string
}

// Julia selects the family z ← z²+c, diverging once |z|² reaches
// DivergenceThresholdSquare.
type Julia struct {
	C                         complexnum.Complex
	DivergenceThresholdSquare float64
}

func (Julia) familyName() string { return "Julia" }

// Mandelbrot selects the family z ← z²+c with c set to the pixel's own
// physical coordinate and z₀=0.
type Mandelbrot struct{}

func (Mandelbrot) familyName() string { return "Mandelbrot" }

// IteratedSinZ selects the family z ← sin(z)·c.
type IteratedSinZ struct {
	C complexnum.Complex
}

func (IteratedSinZ) familyName() string { return "IteratedSinZ" }

// NewtonRaphsonZ3 selects Newton-Raphson iteration on z³-1.
type NewtonRaphsonZ3 struct{}

func (NewtonRaphsonZ3) familyName() string { return "NewtonRaphsonZ3" }

// NewtonRaphsonZ4 selects Newton-Raphson iteration on z⁴-1.
type NewtonRaphsonZ4 struct{}

func (NewtonRaphsonZ4) familyName() string { return "NewtonRaphsonZ4" }

// NovaNewtonZ3 selects Nova-Newton iteration (z³-1, additive pixel
// perturbation).
type NovaNewtonZ3 struct{}

func (NovaNewtonZ3) familyName() string { return "NovaNewtonZ3" }

// NovaNewtonZ4 selects Nova-Newton iteration (z⁴-1, additive pixel
// perturbation).
type NovaNewtonZ4 struct{}

func (NovaNewtonZ4) familyName() string { return "NovaNewtonZ4" }

// FamilyName returns the wire tag for d, e.g. "NovaNewtonZ4".
func FamilyName(d Descriptor) string {
	return d.familyName()
}

// complexWire is the {re,im} JSON shape used for Complex fields on the
// wire.
type complexWire struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

func toComplexWire(c complexnum.Complex) complexWire {
	return complexWire{Re: c.Re, Im: c.Im}
}

func (w complexWire) toComplex() complexnum.Complex {
	return complexnum.New(w.Re, w.Im)
}

type juliaWire struct {
	C                         complexWire `json:"c"`
	DivergenceThresholdSquare float64     `json:"divergence_threshold_square"`
}

type iteratedSinZWire struct {
	C complexWire `json:"c"`
}

// MarshalDescriptor encodes d using the wire convention
// {"<VariantName>":{...variant fields...}}.
func MarshalDescriptor(d Descriptor) ([]byte, error) {
	switch v := d.(type) {
	case Julia:
		return json.Marshal(map[string]juliaWire{
			"Julia": {C: toComplexWire(v.C), DivergenceThresholdSquare: v.DivergenceThresholdSquare},
		})
	case Mandelbrot:
		return json.Marshal(map[string]struct{}{"Mandelbrot": {}})
	case IteratedSinZ:
		return json.Marshal(map[string]iteratedSinZWire{
			"IteratedSinZ": {C: toComplexWire(v.C)},
		})
	case NewtonRaphsonZ3:
		return json.Marshal(map[string]struct{}{"NewtonRaphsonZ3": {}})
	case NewtonRaphsonZ4:
		return json.Marshal(map[string]struct{}{"NewtonRaphsonZ4": {}})
	case NovaNewtonZ3:
		return json.Marshal(map[string]struct{}{"NovaNewtonZ3": {}})
	case NovaNewtonZ4:
		return json.Marshal(map[string]struct{}{"NovaNewtonZ4": {}})
	default:
		return nil, fmt.Errorf("fractal: unknown descriptor type %T", d)
	}
}

// UnmarshalDescriptor decodes a single-key {"<VariantName>":{...}} object
// into its concrete Descriptor type. It returns an error if the tag names
// none of the seven known families.
func UnmarshalDescriptor(data []byte) (Descriptor, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, fmt.Errorf("fractal: descriptor is not a JSON object: %w", err)
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("fractal: descriptor must have exactly one variant key, got %d", len(tagged))
	}

	for tag, raw := range tagged {
		switch tag {
		case "Julia":
			var w juliaWire
			if err := json.Unmarshal(raw, &w); err != nil {
				return nil, fmt.Errorf("fractal: decoding Julia descriptor: %w", err)
			}
			if w.DivergenceThresholdSquare <= 0 {
				return nil, fmt.Errorf("fractal: Julia.divergence_threshold_square must be > 0, got %v", w.DivergenceThresholdSquare)
			}
			return Julia{C: w.C.toComplex(), DivergenceThresholdSquare: w.DivergenceThresholdSquare}, nil
		case "Mandelbrot":
			return Mandelbrot{}, nil
		case "IteratedSinZ":
			var w iteratedSinZWire
			if err := json.Unmarshal(raw, &w); err != nil {
				return nil, fmt.Errorf("fractal: decoding IteratedSinZ descriptor: %w", err)
			}
			return IteratedSinZ{C: w.C.toComplex()}, nil
		case "NewtonRaphsonZ3":
			return NewtonRaphsonZ3{}, nil
		case "NewtonRaphsonZ4":
			return NewtonRaphsonZ4{}, nil
		case "NovaNewtonZ3":
			return NovaNewtonZ3{}, nil
		case "NovaNewtonZ4":
			return NovaNewtonZ4{}, nil
		default:
			return nil, fmt.Errorf("fractal: unknown descriptor variant %q", tag)
		}
	}
	panic("unreachable")
}
