// Package worker implements the run loop that owns a worker's connection
// lifecycle: request, task, compute, result, reconnect.
package worker

import (
	"context"
	"fmt"
	"net"
	"time"

	"frakt-worker/internal/config"
	"frakt-worker/internal/fractal"
	"frakt-worker/internal/log"
	"frakt-worker/internal/wire"
)

// State is one node of the worker's connection-lifecycle state machine.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateRequestSent
	StateTaskReceived
	StateComputing
	StateResultConnecting
	StateResultSent
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateRequestSent:
		return "REQUEST_SENT"
	case StateTaskReceived:
		return "TASK_RECEIVED"
	case StateComputing:
		return "COMPUTING"
	case StateResultConnecting:
		return "RESULT_CONNECTING"
	case StateResultSent:
		return "RESULT_SENT"
	default:
		return "UNKNOWN"
	}
}

// ioDeadline bounds all reads and writes on one connection, counted from
// when it is opened, whenever ctx carries no deadline of its own; the
// protocol defines no timeout, but the run loop must still treat a stuck
// peer as session-fatal.
const ioDeadline = 30 * time.Second

// Runner drives exactly one worker's request/task/compute/result cycle,
// opening a fresh connection per round as the dispatcher contract requires.
type Runner struct {
	cfg    config.WorkerConfig
	logger log.Logger
	dial   func(ctx context.Context, network, address string) (net.Conn, error)

	state State
}

// NewRunner builds a Runner that dials cfg.ServerHost:cfg.ServerPort for
// each connection it opens.
func NewRunner(cfg config.WorkerConfig, logger log.Logger) *Runner {
	var d net.Dialer
	return &Runner{
		cfg:    cfg,
		logger: logger,
		dial:   d.DialContext,
		state:  StateDisconnected,
	}
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() State { return r.state }

func (r *Runner) addr() string {
	return fmt.Sprintf("%s:%d", r.cfg.ServerHost, r.cfg.ServerPort)
}

func (r *Runner) connect(ctx context.Context) (net.Conn, error) {
	conn, err := r.dial(ctx, "tcp", r.addr())
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(ioDeadline))
	}
	return conn, nil
}

// RunOnce executes exactly one round: open a connection, send a request,
// read the assigned task, compute it, open a fresh connection, and send
// the result. It returns the terminal error, if any, and never retries.
func (r *Runner) RunOnce(ctx context.Context) error {
	r.state = StateDisconnected

	requestConn, err := r.connect(ctx)
	if err != nil {
		return err
	}
	r.state = StateConnected
	r.logger.WithField("addr", r.addr()).Debug("connected for request/task round")

	if err := wire.EncodeWorkerRequest(requestConn, wire.WorkerRequest{
		WorkerName:      r.cfg.WorkerName,
		MaximalWorkLoad: r.cfg.MaxWorkload,
	}); err != nil {
		requestConn.Close()
		return &ProtocolError{Err: err}
	}
	r.state = StateRequestSent

	task, err := wire.DecodeFragmentTask(requestConn)
	requestConn.Close()
	if err != nil {
		return &ProtocolError{Err: err}
	}
	r.state = StateTaskReceived
	r.logger.WithFields(map[string]interface{}{
		"fractal":    fractal.FamilyName(task.Fractal),
		"resolution": task.Resolution,
	}).Debug("task received")

	r.state = StateComputing
	pixels, err := fractal.Dispatch(task.Fractal, fractal.Task{
		Range:        task.Range,
		Resolution:   task.Resolution,
		MaxIteration: task.MaxIteration,
	})
	if err != nil {
		return &ProtocolError{Err: err}
	}

	r.state = StateResultConnecting
	resultConn, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer resultConn.Close()

	if err := wire.EncodeFragmentResult(resultConn, wire.FragmentResult{
		ID:         task.ID,
		Resolution: task.Resolution,
		Range:      task.Range,
		Pixels:     pixels,
	}); err != nil {
		return &ProtocolError{Err: err}
	}
	r.state = StateResultSent

	r.state = StateDisconnected
	return nil
}

// Run loops RunOnce until cfg.Rounds rounds complete (0 means unbounded),
// a round returns a fatal error, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for round := 0; r.cfg.Rounds == 0 || round < r.cfg.Rounds; round++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := r.RunOnce(ctx); err != nil {
			r.logger.WithFields(map[string]interface{}{
				"round": round,
				"state": r.state.String(),
			}).WithError(err).Error("round failed, terminating run loop")
			return err
		}
		r.logger.WithField("round", round).Info("round complete")
	}
	return nil
}
