package runner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/idursun/text3d/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// script is a behaviour that records deltas, optionally spends time on the
// clock and ends after a number of frames.
type script struct {
	clock  *fakeClock
	work   time.Duration
	frames int
	deltas []time.Duration
	err    error
}

func (s *script) Process(buf *canvas.Buffer, delta time.Duration) (ProcessNext, error) {
	s.deltas = append(s.deltas, delta)
	s.clock.now = s.clock.now.Add(s.work)
	if s.err != nil && len(s.deltas) == s.frames {
		return Continue, s.err
	}
	if len(s.deltas) > s.frames {
		return End, nil
	}
	buf.Fill(rune('0'+len(s.deltas)), canvas.White)
	return Continue, nil
}

type countingSink struct {
	frames []string
	err    error
}

func (s *countingSink) Present(v canvas.View) error {
	s.frames = append(s.frames, canvas.Text(v))
	return s.err
}

func newRunner(t *testing.T, b Behaviour, clock *fakeClock, sink Sink) *Runner {
	t.Helper()
	r, err := New(b, Options{Size: canvas.Size{Width: 2, Height: 1}, Sink: sink})
	require.NoError(t, err)
	return r.WithClock(clock)
}

func TestRun_PacesFrames(t *testing.T) {
	clock := newFakeClock()
	s := &script{clock: clock, frames: 3}
	sink := &countingSink{}
	r := newRunner(t, s, clock, sink)

	require.NoError(t, r.Run(context.Background()))

	period := 100 * time.Millisecond
	assert.Equal(t, period, r.Period())
	assert.Equal(t, []time.Duration{period, period, period, period}, s.deltas)
	assert.Equal(t, []time.Duration{period, period, period}, clock.sleeps)
	assert.Equal(t, []string{"11\n", "22\n", "33\n"}, sink.frames)
	assert.Equal(t, uint64(3), r.Frames())
}

func TestRun_SlowFramesDoNotSleep(t *testing.T) {
	clock := newFakeClock()
	s := &script{clock: clock, frames: 2, work: 250 * time.Millisecond}
	r := newRunner(t, s, clock, nil)

	require.NoError(t, r.Run(context.Background()))

	assert.Empty(t, clock.sleeps)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond}, s.deltas)

	stats := r.Stats()
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, 2, stats.Overruns)
	assert.Equal(t, 250*time.Millisecond, stats.Slowest)
	assert.Equal(t, 250*time.Millisecond, stats.Average())
}

func TestRun_PartialWorkSleepsTheRemainder(t *testing.T) {
	clock := newFakeClock()
	s := &script{clock: clock, frames: 2, work: 30 * time.Millisecond}
	r := newRunner(t, s, clock, nil)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []time.Duration{70 * time.Millisecond, 70 * time.Millisecond}, clock.sleeps)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}, s.deltas)
}

func TestRun_BehaviourErrorStopsTheLoop(t *testing.T) {
	clock := newFakeClock()
	boom := errors.New("boom")
	s := &script{clock: clock, frames: 2, err: boom}
	sink := &countingSink{}
	r := newRunner(t, s, clock, sink)

	err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "frame 1")
	assert.Len(t, s.deltas, 2)
	assert.Len(t, sink.frames, 1)
}

func TestRun_SinkErrorStopsTheLoop(t *testing.T) {
	clock := newFakeClock()
	broken := errors.New("broken pipe")
	s := &script{clock: clock, frames: 5}
	r := newRunner(t, s, clock, &countingSink{err: broken})

	err := r.Run(context.Background())
	require.ErrorIs(t, err, broken)
	assert.EqualError(t, err, "presenting frame 0: broken pipe")
	assert.Len(t, s.deltas, 1)
	assert.Zero(t, r.Frames())
}

func TestStep_ErrorsNumberTheSameFrame(t *testing.T) {
	boom := errors.New("boom")
	fail := BehaviourFunc(func(*canvas.Buffer, time.Duration) (ProcessNext, error) {
		return End, boom
	})
	r := newRunner(t, fail, newFakeClock(), nil)
	_, err := r.Step(time.Millisecond)
	assert.EqualError(t, err, "frame 0: boom")

	ok := BehaviourFunc(func(*canvas.Buffer, time.Duration) (ProcessNext, error) {
		return Continue, nil
	})
	r = newRunner(t, ok, newFakeClock(), &countingSink{err: boom})
	_, err = r.Step(time.Millisecond)
	assert.EqualError(t, err, "presenting frame 0: boom")
}

func TestRun_ContextCheckedBetweenFrames(t *testing.T) {
	clock := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	b := BehaviourFunc(func(buf *canvas.Buffer, delta time.Duration) (ProcessNext, error) {
		calls++
		cancel()
		return Continue, nil
	})
	sink := &countingSink{}
	r := newRunner(t, b, clock, sink)

	err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Len(t, sink.frames, 1)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	b := BehaviourFunc(func(*canvas.Buffer, time.Duration) (ProcessNext, error) {
		called = true
		return Continue, nil
	})
	r := newRunner(t, b, newFakeClock(), nil)
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
	assert.False(t, called)
}

func TestStep(t *testing.T) {
	var got time.Duration
	b := BehaviourFunc(func(buf *canvas.Buffer, delta time.Duration) (ProcessNext, error) {
		got = delta
		return End, nil
	})
	sink := &countingSink{}
	r := newRunner(t, b, newFakeClock(), sink)

	next, err := r.Step(42 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, End, next)
	assert.Equal(t, 42*time.Millisecond, got)
	assert.Empty(t, sink.frames)
}

func TestNew_Defaults(t *testing.T) {
	b := BehaviourFunc(func(*canvas.Buffer, time.Duration) (ProcessNext, error) { return End, nil })
	r, err := New(b, Options{Size: canvas.Size{Width: 3, Height: 2}})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, r.Period())
	assert.Equal(t, "   \n   \n", r.Buffer().String())
	cell, _ := r.Buffer().Cell(image.Pt(2, 1))
	assert.Equal(t, canvas.White, cell.Color)
}

func TestNew_Invalid(t *testing.T) {
	b := BehaviourFunc(func(*canvas.Buffer, time.Duration) (ProcessNext, error) { return End, nil })
	size := canvas.Size{Width: 3, Height: 2}
	tests := []struct {
		name  string
		b     Behaviour
		opts  Options
		field string
	}{
		{"nil behaviour", nil, Options{Size: size}, "behaviour"},
		{"empty size", b, Options{Size: canvas.Size{Width: 3}}, "size"},
		{"negative fps", b, Options{Size: size, FPS: -1}, "fps"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.b, tc.opts)
			var optErr *OptionError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, tc.field, optErr.Field)
		})
	}

	_, err := New(b, Options{Size: canvas.Size{Width: 1 << 20, Height: 1 << 20}})
	var sizeErr *canvas.SizeConversionError
	assert.ErrorAs(t, err, &sizeErr)
}

func TestWriterSink(t *testing.T) {
	buf, err := canvas.NewBuffer(canvas.Size{Width: 2, Height: 2}, '#', canvas.White)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, WriterSink{W: &out}.Present(buf))
	assert.Equal(t, "##\n##\n", out.String())
}
