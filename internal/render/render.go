// Package render maps a kernel's []PixelIntensity output to an RGB image
// and writes it as a PNG, for local debug inspection. It is not part of
// the networked wire protocol: nothing in internal/wire or internal/worker
// imports this package.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"frakt-worker/internal/fractal"
)

// ColorMap assigns an RGB color to one pixel's intensity pair.
type ColorMap func(px fractal.PixelIntensity) color.RGBA

// ColorMapFor returns the palette grounded on the family's original debug
// renderer. Julia, Mandelbrot and IteratedSinZ each have their own map;
// NewtonRaphsonZ3/Z4 share one, and NovaNewtonZ3/Z4 share another.
func ColorMapFor(d fractal.Descriptor) ColorMap {
	switch d.(type) {
	case fractal.Julia:
		return juliaColor
	case fractal.Mandelbrot:
		return mandelbrotColor
	case fractal.IteratedSinZ:
		return sinZColor
	case fractal.NewtonRaphsonZ3, fractal.NewtonRaphsonZ4:
		return newtonColor
	case fractal.NovaNewtonZ3, fractal.NovaNewtonZ4:
		return novaNewtonColor
	default:
		return mandelbrotColor
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func juliaColor(px fractal.PixelIntensity) color.RGBA {
	scaledCount := float64(int32(px.Count * 255))
	znEffect := math.Abs(math.Sin(float64(px.Zn)*10)) * 5

	r := clampByte(float64(uint8(int32(scaledCount)<<3)) + znEffect)
	g := clampByte(float64(uint8(int32(scaledCount)<<4)) + znEffect)
	b := clampByte(float64(uint8(int32(scaledCount)<<5)) + znEffect)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func mandelbrotColor(px fractal.PixelIntensity) color.RGBA {
	zn, count := float64(px.Zn), float64(px.Count)
	hue := 0.7 + 0.3*math.Cos(zn)
	saturation := 0.6 * math.Cos(count)
	value := 0.9 * count

	return color.RGBA{
		R: clampByte(255 * hue * saturation),
		G: clampByte(255 * hue * value),
		B: clampByte(255 * value),
		A: 255,
	}
}

func sinZColor(px fractal.PixelIntensity) color.RGBA {
	zn, count := float64(px.Zn), float64(px.Count)
	hue := 0.5 + 0.5*math.Cos(zn*2*math.Pi)
	saturation := 0.6 + 0.4*math.Cos(count*2*math.Pi)
	value := 0.7 + 0.3*math.Sin(count*2*math.Pi)

	return color.RGBA{
		R: clampByte(240 * hue),
		G: clampByte(240 * saturation),
		B: clampByte(240 * value),
		A: 255,
	}
}

func newtonColor(px fractal.PixelIntensity) color.RGBA {
	count := float64(px.Count)
	znEffect := math.Abs(math.Sin(float64(px.Zn)*10)) * 0.05

	r := (255*(1-count) + 0*count) * (1 - znEffect)
	g := 0.0
	b := (0*(1-count) + 255*count) * (1 - znEffect)
	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
}

// novaNewtonColor is a six-band hue sweep (black→red→yellow→green→cyan→
// blue→magenta) driven by count, with a small zn-derived jitter.
func novaNewtonColor(px fractal.PixelIntensity) color.RGBA {
	count := float64(px.Count)
	jitter := math.Abs(math.Sin(float64(px.Zn)*5)) * 0.1
	band := count * 6

	switch int(band) {
	case 0:
		return color.RGBA{R: clampByte(255 * band), G: clampByte(255 * jitter), B: 0, A: 255}
	case 1:
		return color.RGBA{R: 255, G: clampByte(255 * (band - 1)), B: clampByte(255 * jitter), A: 255}
	case 2:
		return color.RGBA{R: clampByte(255 * (1 - (band - 2))), G: 255, B: clampByte(255 * jitter), A: 255}
	case 3:
		return color.RGBA{R: clampByte(255 * jitter), G: 255, B: clampByte(255 * (band - 3)), A: 255}
	case 4:
		return color.RGBA{R: clampByte(255 * jitter), G: clampByte(255 * (1 - (band - 4))), B: 255, A: 255}
	default:
		return color.RGBA{R: clampByte(255 * (band - 5)), G: clampByte(255 * jitter), B: 255, A: 255}
	}
}

// WritePNG renders pixels (a dense, row-major resolution.nx*resolution.ny
// buffer, as produced by fractal.Dispatch) using the colour map for
// descriptor's family, and writes it to dir/<familyName>.png.
func WritePNG(dir string, descriptor fractal.Descriptor, resolution fractal.Resolution, pixels []fractal.PixelIntensity) (string, error) {
	if len(pixels) != resolution.Count() {
		return "", fmt.Errorf("render: got %d pixels, resolution implies %d", len(pixels), resolution.Count())
	}

	img := image.NewRGBA(image.Rect(0, 0, int(resolution.NX), int(resolution.NY)))
	colorMap := ColorMapFor(descriptor)
	for iy := 0; iy < int(resolution.NY); iy++ {
		for ix := 0; ix < int(resolution.NX); ix++ {
			img.Set(ix, iy, colorMap(pixels[iy*int(resolution.NX)+ix]))
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("render: creating output directory: %w", err)
	}
	path := filepath.Join(dir, fractal.FamilyName(descriptor)+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("render: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("render: encoding %s: %w", path, err)
	}
	return path, nil
}
