package fractal

import (
	"testing"

	"frakt-worker/internal/complexnum"
)

func TestDescriptorRoundTrip(t *testing.T) {
	descriptors := []Descriptor{
		Julia{C: complexnum.New(-0.4, 0.6), DivergenceThresholdSquare: 4},
		Mandelbrot{},
		IteratedSinZ{C: complexnum.New(1, 0.1)},
		NewtonRaphsonZ3{},
		NewtonRaphsonZ4{},
		NovaNewtonZ3{},
		NovaNewtonZ4{},
	}
	for _, d := range descriptors {
		data, err := MarshalDescriptor(d)
		if err != nil {
			t.Fatalf("%s: marshal: %v", FamilyName(d), err)
		}
		got, err := UnmarshalDescriptor(data)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", FamilyName(d), err)
		}
		if got != d {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
		}
	}
}

func TestUnmarshalDescriptorRejectsUnknownVariant(t *testing.T) {
	_, err := UnmarshalDescriptor([]byte(`{"NotAFamily":{}}`))
	if err == nil {
		t.Fatal("expected an error for an unknown descriptor variant")
	}
}

func TestUnmarshalDescriptorRejectsMultipleKeys(t *testing.T) {
	_, err := UnmarshalDescriptor([]byte(`{"Mandelbrot":{},"Julia":{}}`))
	if err == nil {
		t.Fatal("expected an error for a multi-key descriptor")
	}
}

func TestUnmarshalJuliaRejectsNonPositiveThreshold(t *testing.T) {
	_, err := UnmarshalDescriptor([]byte(`{"Julia":{"c":{"re":0,"im":0},"divergence_threshold_square":0}}`))
	if err == nil {
		t.Fatal("expected an error for a non-positive divergence threshold")
	}
}

func TestMarshalDescriptorTagging(t *testing.T) {
	data, err := MarshalDescriptor(Mandelbrot{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Mandelbrot":{}}` {
		t.Fatalf("got %s, want {\"Mandelbrot\":{}}", data)
	}
}
