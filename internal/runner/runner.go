package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/idursun/text3d/internal/canvas"
)

type ProcessNext int

const (
	Continue ProcessNext = iota
	End
)

func (n ProcessNext) String() string {
	if n == End {
		return "end"
	}
	return "continue"
}

// Behaviour produces one frame. It owns buf for the duration of the call and
// receives the time elapsed since the previous frame.
type Behaviour interface {
	Process(buf *canvas.Buffer, delta time.Duration) (ProcessNext, error)
}

type BehaviourFunc func(buf *canvas.Buffer, delta time.Duration) (ProcessNext, error)

func (f BehaviourFunc) Process(buf *canvas.Buffer, delta time.Duration) (ProcessNext, error) {
	return f(buf, delta)
}

// Clock abstracts the wall clock so the pacing can be tested.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Runner calls a Behaviour at a fixed target rate and hands every finished
// frame to a Sink.
type Runner struct {
	behaviour Behaviour
	buf       *canvas.Buffer
	sink      Sink
	period    time.Duration
	clock     Clock
	frames    uint64
	last      time.Time
	stats     Stats
}

// Stats summarizes the frames produced by Run.
type Stats struct {
	Frames uint64
	// Busy is the time spent inside the behaviour and the sink.
	Busy    time.Duration
	Slowest time.Duration
	// Overruns counts frames that took longer than the target period.
	Overruns int
}

// Average is the mean busy time per frame.
func (s Stats) Average() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Busy / time.Duration(s.Frames)
}

func New(b Behaviour, opts Options) (*Runner, error) {
	if b == nil {
		return nil, &OptionError{Field: "behaviour", Reason: "is required"}
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	buf, err := canvas.NewBuffer(opts.Size, opts.Fill, *opts.Color)
	if err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}
	return &Runner{
		behaviour: b,
		buf:       buf,
		sink:      opts.Sink,
		period:    time.Duration(float64(time.Second) / opts.FPS),
		clock:     systemClock{},
	}, nil
}

// WithClock replaces the clock used for pacing.
func (r *Runner) WithClock(c Clock) *Runner {
	r.clock = c
	return r
}

func (r *Runner) Buffer() *canvas.Buffer { return r.buf }
func (r *Runner) Period() time.Duration  { return r.period }
func (r *Runner) Frames() uint64         { return r.frames }
func (r *Runner) Stats() Stats           { return r.stats }

// Step runs the behaviour once with the given delta and presents the frame
// unless the behaviour ended. Any error comes with End. Frames are numbered
// from 0 in error messages.
func (r *Runner) Step(delta time.Duration) (ProcessNext, error) {
	next, err := r.behaviour.Process(r.buf, delta)
	if err != nil {
		return End, fmt.Errorf("frame %d: %w", r.frames, err)
	}
	if next == End {
		return End, nil
	}
	if r.sink != nil {
		if err := r.sink.Present(r.buf); err != nil {
			return End, fmt.Errorf("presenting frame %d: %w", r.frames, err)
		}
	}
	r.frames++
	return Continue, nil
}

// Run paces Step at the target period until the behaviour ends, fails, or
// ctx is done. ctx is only checked between frames; a slow behaviour is never
// interrupted.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		delta := r.wait()
		started := r.clock.Now()
		next, err := r.Step(delta)
		if err != nil {
			return err
		}
		if next == End {
			return nil
		}
		r.record(r.clock.Now().Sub(started))
	}
}

func (r *Runner) record(took time.Duration) {
	r.stats.Frames++
	r.stats.Busy += took
	r.stats.Slowest = max(r.stats.Slowest, took)
	if took > r.period {
		r.stats.Overruns++
		log.Printf("frame %d took %s, target period is %s", r.frames, took, r.period)
	}
}

// wait sleeps until a full period passed since the previous frame and
// returns the elapsed time. The first frame gets the period.
func (r *Runner) wait() time.Duration {
	if r.last.IsZero() {
		r.last = r.clock.Now()
		return r.period
	}
	elapsed := r.clock.Now().Sub(r.last)
	if elapsed < r.period {
		r.clock.Sleep(r.period - elapsed)
		elapsed = r.clock.Now().Sub(r.last)
	}
	r.last = r.last.Add(elapsed)
	return elapsed
}
