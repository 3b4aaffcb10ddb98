package anim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/tracing"
)

// Step is one entry of a sequence.
type Step struct {
	Target Target `yaml:"target"`
	// DelayAfter pauses after the target resolves, before the next step.
	DelayAfter time.Duration `yaml:"delay_after"`
}

// Status is a sequencer state.
type Status int

const (
	Idle Status = iota
	Running
	Done
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of one Play.
type Result struct {
	RunID  string
	Status Status
	// Completed counts steps whose target resolved.
	Completed int
	// Err is set only for Failed.
	Err error
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithTracer traces runs with tracer instead of the global provider.
func WithTracer(tracer trace.Tracer) SequencerOption {
	return func(s *Sequencer) {
		s.tracer = tracer
	}
}

// Sequencer plays steps strictly in order. A new Play abandons the run in
// flight: the abandoned run reports Cancelled and never starts another step.
type Sequencer struct {
	controls Controls
	tracer   trace.Tracer

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	status Status
	step   int
	runID  string
}

// NewSequencer creates a sequencer driving controls.
func NewSequencer(controls Controls, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{controls: controls}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("github.com/zjrosen/tint/internal/anim")
	}
	return s
}

// Status returns the state and, while Running, the index of the current
// step.
func (s *Sequencer) Status() (Status, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.step
}

// Play starts steps and returns a channel that receives exactly one Result.
func (s *Sequencer) Play(ctx context.Context, steps []Step) <-chan Result {
	return s.PlayNamed(ctx, "", steps)
}

// PlayNamed is Play with a sequence name recorded in traces and logs.
func (s *Sequencer) PlayNamed(ctx context.Context, name string, steps []Step) <-chan Result {
	out := make(chan Result, 1)
	runID := uuid.NewString()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.status = Running
	s.step = 0
	s.runID = runID
	s.mu.Unlock()

	go func() {
		defer cancel()
		res := s.run(runCtx, gen, runID, name, steps)
		s.finish(gen, res)
		out <- res
	}()
	return out
}

// Cancel abandons the run in flight, if any.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	if s.status == Running {
		s.status = Cancelled
	}
}

// begin marks step i as started if gen is still current.
func (s *Sequencer) begin(gen uint64, i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.step = i
	return true
}

func (s *Sequencer) finish(gen uint64, res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.status = res.Status
	}
}

func (s *Sequencer) run(ctx context.Context, gen uint64, runID, name string, steps []Step) Result {
	ctx, span := s.tracer.Start(ctx, tracing.SpanSequencePlay, trace.WithAttributes(
		attribute.String(tracing.AttrRunID, runID),
		attribute.String(tracing.AttrSequenceName, name),
		attribute.Int(tracing.AttrStepCount, len(steps)),
	))
	defer span.End()

	res := Result{RunID: runID}
	cancelled := func() Result {
		res.Status = Cancelled
		span.AddEvent(tracing.EventRunCancelled)
		span.SetAttributes(attribute.String(tracing.AttrStatus, res.Status.String()))
		log.Debug(log.CatAnim, "sequence cancelled", "run", runID, "name", name, "completed", res.Completed)
		return res
	}

	for i, step := range steps {
		if ctx.Err() != nil || !s.begin(gen, i) {
			return cancelled()
		}

		span.AddEvent(tracing.EventStepStarted, trace.WithAttributes(attribute.Int(tracing.AttrStepIndex, i)))
		if err := s.controls.Start(ctx, step.Target); err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrSuperseded) {
				return cancelled()
			}
			res.Status = Failed
			res.Err = fmt.Errorf("step %d: %w", i, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.AddEvent(tracing.EventRunFailed, trace.WithAttributes(attribute.String(tracing.AttrErrorMessage, err.Error())))
			log.WarnErr(log.CatAnim, "sequence step failed", err, "run", runID, "step", i)
			return res
		}
		res.Completed++
		span.AddEvent(tracing.EventStepResolved, trace.WithAttributes(
			attribute.Int(tracing.AttrStepIndex, i),
			attribute.Int64(tracing.AttrStepDelayMs, step.DelayAfter.Milliseconds()),
		))

		if step.DelayAfter > 0 {
			timer := time.NewTimer(step.DelayAfter)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return cancelled()
			}
		}
	}

	res.Status = Done
	span.SetAttributes(attribute.String(tracing.AttrStatus, res.Status.String()))
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatAnim, "sequence done", "run", runID, "name", name, "steps", len(steps))
	return res
}
