package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"frakt-worker/internal/complexnum"
	"frakt-worker/internal/fractal"
	"frakt-worker/internal/render"
)

var (
	renderOutputDir    string
	renderResolution   int
	renderMaxIter      uint32
	renderRangeMinX    float64
	renderRangeMinY    float64
	renderRangeMaxX    float64
	renderRangeMaxY    float64
	renderJuliaCRe     float64
	renderJuliaCIm     float64
	renderDivergSquare float64
)

// defaultRangeFor returns the built-in plane region for a fractal family,
// taken from the family-specific ranges used to preview each fractal
// locally: Mandelbrot and the Nova Newton variants converge in a tighter
// region than the rest, so each gets its own default instead of sharing one.
func defaultRangeFor(name string) fractal.Range {
	switch name {
	case "Mandelbrot":
		return fractal.Range{Min: fractal.Point{X: -2, Y: -1.25}, Max: fractal.Point{X: 1, Y: 1.25}}
	case "NovaNewtonZ3":
		return fractal.Range{Min: fractal.Point{X: -2, Y: -1.5}, Max: fractal.Point{X: 2, Y: 1.5}}
	case "NovaNewtonZ4":
		return fractal.Range{Min: fractal.Point{X: -2.5, Y: -1.5}, Max: fractal.Point{X: 2, Y: 1.5}}
	default: // Julia, IteratedSinZ, NewtonRaphsonZ3, NewtonRaphsonZ4
		return fractal.Range{Min: fractal.Point{X: -4, Y: -3}, Max: fractal.Point{X: 4, Y: 3}}
	}
}

// defaultJuliaC returns the built-in c used to preview a family that takes
// one: Julia and IteratedSinZ each have their own characteristic c.
func defaultJuliaC(name string) complexnum.Complex {
	if name == "IteratedSinZ" {
		return complexnum.New(0.2, 1.0)
	}
	return complexnum.New(-0.9, 0.27015)
}

// renderCmd implements the optional debug subcommand: compute one family
// locally and write a PNG, entirely disconnected from the wire protocol.
var renderCmd = &cobra.Command{
	Use:   "render FRACTAL",
	Short: "Compute one fractal family locally and write a debug PNG",
	Long: `render computes a fractal family over a default or given plane region
and writes the result as a PNG under generated/images/. This bypasses the
dispatcher entirely and exists only for local inspection.

Supported FRACTAL values: Julia, Mandelbrot, IteratedSinZ, NewtonRaphsonZ3,
NewtonRaphsonZ4, NovaNewtonZ3, NovaNewtonZ4.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		descriptor, err := descriptorByName(name)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("julia-c-re") || cmd.Flags().Changed("julia-c-im") {
			c := complexnum.New(renderJuliaCRe, renderJuliaCIm)
			switch d := descriptor.(type) {
			case fractal.Julia:
				d.C = c
				descriptor = d
			case fractal.IteratedSinZ:
				d.C = c
				descriptor = d
			}
		}

		rng := defaultRangeFor(name)
		if cmd.Flags().Changed("min-x") {
			rng.Min.X = renderRangeMinX
		}
		if cmd.Flags().Changed("min-y") {
			rng.Min.Y = renderRangeMinY
		}
		if cmd.Flags().Changed("max-x") {
			rng.Max.X = renderRangeMaxX
		}
		if cmd.Flags().Changed("max-y") {
			rng.Max.Y = renderRangeMaxY
		}

		task := fractal.Task{
			Range:        rng,
			Resolution:   fractal.Resolution{NX: uint16(renderResolution), NY: uint16(renderResolution)},
			MaxIteration: renderMaxIter,
		}

		pixels, err := fractal.Dispatch(descriptor, task)
		if err != nil {
			return err
		}

		path, err := render.WritePNG(renderOutputDir, descriptor, task.Resolution, pixels)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOutputDir, "out", "generated/images", "output directory for the PNG")
	renderCmd.Flags().IntVar(&renderResolution, "resolution", 400, "square image side length in pixels")
	renderCmd.Flags().Uint32Var(&renderMaxIter, "max-iteration", 100, "iteration budget")
	renderCmd.Flags().Float64Var(&renderRangeMinX, "min-x", 0, "plane region min x (default: family's built-in range)")
	renderCmd.Flags().Float64Var(&renderRangeMinY, "min-y", 0, "plane region min y (default: family's built-in range)")
	renderCmd.Flags().Float64Var(&renderRangeMaxX, "max-x", 0, "plane region max x (default: family's built-in range)")
	renderCmd.Flags().Float64Var(&renderRangeMaxY, "max-y", 0, "plane region max y (default: family's built-in range)")
	renderCmd.Flags().Float64Var(&renderJuliaCRe, "julia-c-re", 0, "Julia/IteratedSinZ c.re (default: family's built-in c)")
	renderCmd.Flags().Float64Var(&renderJuliaCIm, "julia-c-im", 0, "Julia/IteratedSinZ c.im (default: family's built-in c)")
	renderCmd.Flags().Float64Var(&renderDivergSquare, "divergence-threshold-square", 4, "Julia divergence_threshold_square")
}

func descriptorByName(name string) (fractal.Descriptor, error) {
	c := defaultJuliaC(name)
	switch name {
	case "Julia":
		return fractal.Julia{C: c, DivergenceThresholdSquare: renderDivergSquare}, nil
	case "Mandelbrot":
		return fractal.Mandelbrot{}, nil
	case "IteratedSinZ":
		return fractal.IteratedSinZ{C: c}, nil
	case "NewtonRaphsonZ3":
		return fractal.NewtonRaphsonZ3{}, nil
	case "NewtonRaphsonZ4":
		return fractal.NewtonRaphsonZ4{}, nil
	case "NovaNewtonZ3":
		return fractal.NovaNewtonZ3{}, nil
	case "NovaNewtonZ4":
		return fractal.NovaNewtonZ4{}, nil
	default:
		return nil, fmt.Errorf("render: unknown fractal family %q", name)
	}
}
