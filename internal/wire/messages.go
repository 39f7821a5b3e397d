package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"frakt-worker/internal/fractal"
)

// u8DataWire is the {offset,count} view-into-a-byte-buffer JSON shape.
type u8DataWire struct {
	Offset uint32 `json:"offset"`
	Count  uint32 `json:"count"`
}

type pointWire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type rangeWire struct {
	Min pointWire `json:"min"`
	Max pointWire `json:"max"`
}

type resolutionWire struct {
	NX uint16 `json:"nx"`
	NY uint16 `json:"ny"`
}

func toRangeWire(r fractal.Range) rangeWire {
	return rangeWire{
		Min: pointWire{X: r.Min.X, Y: r.Min.Y},
		Max: pointWire{X: r.Max.X, Y: r.Max.Y},
	}
}

func (w rangeWire) toRange() fractal.Range {
	return fractal.Range{
		Min: fractal.Point{X: w.Min.X, Y: w.Min.Y},
		Max: fractal.Point{X: w.Max.X, Y: w.Max.Y},
	}
}

func toResolutionWire(r fractal.Resolution) resolutionWire {
	return resolutionWire{NX: r.NX, NY: r.NY}
}

func (w resolutionWire) toResolution() fractal.Resolution {
	return fractal.Resolution{NX: w.NX, NY: w.NY}
}

// WorkerRequest is the worker's opening bid: its name and how many
// fragments it is willing to work through.
type WorkerRequest struct {
	WorkerName      string
	MaximalWorkLoad uint32
}

type workerRequestWire struct {
	WorkerName      string `json:"worker_name"`
	MaximalWorkLoad uint32 `json:"maximal_work_load"`
}

// EncodeWorkerRequest frames req and writes it to w. binary_body is empty,
// so total_size equals json_size.
func EncodeWorkerRequest(w io.Writer, req WorkerRequest) error {
	if req.WorkerName == "" {
		return fmt.Errorf("wire: worker_name must be non-empty")
	}
	if req.MaximalWorkLoad == 0 {
		return fmt.Errorf("wire: maximal_work_load must be > 0")
	}
	body, err := json.Marshal(map[string]workerRequestWire{
		"FragmentRequest": {WorkerName: req.WorkerName, MaximalWorkLoad: req.MaximalWorkLoad},
	})
	if err != nil {
		return fmt.Errorf("wire: marshaling WorkerRequest: %w", err)
	}
	return WriteMessage(w, body, nil)
}

// DecodeWorkerRequest reads one envelope from r and parses it as a
// WorkerRequest. This is the dispatcher side's counterpart to
// EncodeWorkerRequest; the worker side never calls it.
func DecodeWorkerRequest(r io.Reader) (WorkerRequest, error) {
	jsonBody, _, err := ReadMessage(r)
	if err != nil {
		return WorkerRequest{}, err
	}
	if len(jsonBody) == 0 {
		return WorkerRequest{}, fmt.Errorf("wire: WorkerRequest json body is empty")
	}

	var tagged map[string]workerRequestWire
	if err := json.Unmarshal(jsonBody, &tagged); err != nil {
		return WorkerRequest{}, fmt.Errorf("wire: parsing WorkerRequest json: %w", err)
	}
	w, ok := tagged["FragmentRequest"]
	if !ok {
		return WorkerRequest{}, fmt.Errorf("wire: expected a FragmentRequest message")
	}
	if w.WorkerName == "" {
		return WorkerRequest{}, fmt.Errorf("wire: worker_name must be non-empty")
	}
	if w.MaximalWorkLoad == 0 {
		return WorkerRequest{}, fmt.Errorf("wire: maximal_work_load must be > 0")
	}

	return WorkerRequest{
		WorkerName:      w.WorkerName,
		MaximalWorkLoad: w.MaximalWorkLoad,
	}, nil
}

// FragmentTask is a fragment assignment: an echo-able id, the fractal to
// compute, the iteration budget, and the region/resolution to compute it
// over.
type FragmentTask struct {
	ID           []byte
	Fractal      fractal.Descriptor
	MaxIteration uint32
	Resolution   fractal.Resolution
	Range        fractal.Range
}

type fragmentTaskWire struct {
	ID           u8DataWire      `json:"id"`
	Fractal      json.RawMessage `json:"fractal"`
	MaxIteration uint32          `json:"max_iteration"`
	Resolution   resolutionWire  `json:"resolution"`
	Range        rangeWire       `json:"range"`
}

// DecodeFragmentTask reads one envelope from r and parses it as a
// FragmentTask, echoing back the task-id bytes carried in the binary
// section. id.offset must be 0 on this message, per the wire contract.
func DecodeFragmentTask(r io.Reader) (FragmentTask, error) {
	jsonBody, binaryBody, err := ReadMessage(r)
	if err != nil {
		return FragmentTask{}, err
	}
	if len(jsonBody) == 0 {
		return FragmentTask{}, fmt.Errorf("wire: FragmentTask json body is empty")
	}

	var tagged map[string]fragmentTaskWire
	if err := json.Unmarshal(jsonBody, &tagged); err != nil {
		return FragmentTask{}, fmt.Errorf("wire: parsing FragmentTask json: %w", err)
	}
	w, ok := tagged["FragmentTask"]
	if !ok {
		return FragmentTask{}, fmt.Errorf("wire: expected a FragmentTask message")
	}
	if w.MaxIteration < 1 {
		return FragmentTask{}, fmt.Errorf("wire: max_iteration must be >= 1, got %d", w.MaxIteration)
	}
	if w.ID.Offset != 0 {
		return FragmentTask{}, fmt.Errorf("wire: FragmentTask id.offset must be 0, got %d", w.ID.Offset)
	}
	if int(w.ID.Count) != len(binaryBody) {
		return FragmentTask{}, fmt.Errorf("wire: FragmentTask id.count %d does not match binary section length %d", w.ID.Count, len(binaryBody))
	}

	descriptor, err := fractal.UnmarshalDescriptor(w.Fractal)
	if err != nil {
		return FragmentTask{}, err
	}

	return FragmentTask{
		ID:           binaryBody,
		Fractal:      descriptor,
		MaxIteration: w.MaxIteration,
		Resolution:   w.Resolution.toResolution(),
		Range:        w.Range.toRange(),
	}, nil
}

// FragmentResult is a computed fragment: the echoed task id, the region
// and resolution it covers, and the dense pixel payload.
type FragmentResult struct {
	ID         []byte
	Resolution fractal.Resolution
	Range      fractal.Range
	Pixels     []fractal.PixelIntensity
}

type fragmentResultWire struct {
	ID         u8DataWire     `json:"id"`
	Resolution resolutionWire `json:"resolution"`
	Range      rangeWire      `json:"range"`
	Pixels     u8DataWire     `json:"pixels"`
}

// EncodeFragmentResult frames res and writes it to w. The binary section is
// the echoed task-id bytes followed by each pixel's (zn, count) as
// big-endian f32 pairs; pixels.offset equals len(res.ID) and pixels.count
// equals resolution.nx*resolution.ny.
func EncodeFragmentResult(w io.Writer, res FragmentResult) error {
	wantPixels := res.Resolution.Count()
	if len(res.Pixels) != wantPixels {
		return fmt.Errorf("wire: FragmentResult has %d pixels, resolution implies %d", len(res.Pixels), wantPixels)
	}

	body, err := json.Marshal(map[string]fragmentResultWire{
		"FragmentResult": {
			ID:         u8DataWire{Offset: 0, Count: uint32(len(res.ID))},
			Resolution: toResolutionWire(res.Resolution),
			Range:      toRangeWire(res.Range),
			Pixels:     u8DataWire{Offset: uint32(len(res.ID)), Count: uint32(wantPixels)},
		},
	})
	if err != nil {
		return fmt.Errorf("wire: marshaling FragmentResult: %w", err)
	}

	binaryBody := make([]byte, len(res.ID)+wantPixels*8)
	copy(binaryBody, res.ID)
	offset := len(res.ID)
	for _, px := range res.Pixels {
		binary.BigEndian.PutUint32(binaryBody[offset:offset+4], math.Float32bits(px.Zn))
		binary.BigEndian.PutUint32(binaryBody[offset+4:offset+8], math.Float32bits(px.Count))
		offset += 8
	}

	return WriteMessage(w, body, binaryBody)
}
