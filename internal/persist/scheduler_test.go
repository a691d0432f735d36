package persist

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	value  string
	stored []string
	err    error
}

func (r *recorder) set(v string) {
	r.mu.Lock()
	r.value = v
	r.mu.Unlock()
}

func (r *recorder) write(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.stored = append(r.stored, r.value)
	return nil
}

func (r *recorder) writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stored...)
}

func manualTicker(tick chan time.Time) func(time.Duration) (<-chan time.Time, func()) {
	return func(time.Duration) (<-chan time.Time, func()) {
		return tick, func() {}
	}
}

func TestTouch_CoalescesRapidEdits(t *testing.T) {
	r := &recorder{}
	s := New(r.write, nil)
	s.Debounce = 40 * time.Millisecond

	for _, v := range []string{"8", "80", "8"} {
		r.set(v)
		s.Touch()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(r.writes()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"8"}, r.writes())
}

func TestTouch_WritesValueAtFireTime(t *testing.T) {
	r := &recorder{}
	s := New(r.write, nil)
	s.Debounce = 30 * time.Millisecond

	r.set("before")
	s.Touch()
	r.set("after")

	require.Eventually(t, func() bool { return len(r.writes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"after"}, r.writes())
}

func TestHeartbeat_WritesOnEveryTick(t *testing.T) {
	r := &recorder{}
	tick := make(chan time.Time)
	s := New(r.write, nil)
	s.NewTicker = manualTicker(tick)
	s.Start()
	defer s.Stop()

	r.set("a")
	tick <- time.Now()
	require.Eventually(t, func() bool { return len(r.writes()) == 1 }, time.Second, 5*time.Millisecond)
	r.set("b")
	tick <- time.Now()

	require.Eventually(t, func() bool { return len(r.writes()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, r.writes())
}

func TestHeartbeat_FailureIsRetriedByNextTick(t *testing.T) {
	r := &recorder{err: errors.New("disk full")}
	tick := make(chan time.Time)
	s := New(r.write, nil)
	s.NewTicker = manualTicker(tick)
	s.Start()
	defer s.Stop()

	r.set("x")
	tick <- time.Now()
	r.mu.Lock()
	r.err = nil
	r.mu.Unlock()
	tick <- time.Now()

	require.Eventually(t, func() bool { return len(r.writes()) >= 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "x", r.writes()[0])
}

func TestFlush_IsIdempotentAndCancelsDebounce(t *testing.T) {
	r := &recorder{}
	s := New(r.write, nil)
	s.Debounce = 20 * time.Millisecond

	r.set("snap")
	s.Touch()
	require.NoError(t, s.Flush(context.Background()))
	require.NoError(t, s.Flush(context.Background()))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"snap", "snap"}, r.writes())
}

func TestFlush_ReturnsWriteError(t *testing.T) {
	r := &recorder{err: errors.New("boom")}
	s := New(r.write, nil)
	assert.EqualError(t, s.Flush(context.Background()), "boom")
}

func TestStop_DropsPendingDebounce(t *testing.T) {
	r := &recorder{}
	s := New(r.write, nil)
	s.Debounce = 20 * time.Millisecond
	s.Start()

	s.Touch()
	s.Stop()
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, r.writes())
}

func TestStart_Twice(t *testing.T) {
	var starts atomic.Int32
	s := New(func(context.Context) error { return nil }, nil)
	s.NewTicker = func(time.Duration) (<-chan time.Time, func()) {
		starts.Add(1)
		return make(chan time.Time), func() {}
	}
	s.Start()
	s.Start()
	s.Stop()
	assert.Equal(t, int32(1), starts.Load())
}

func TestFlushOn_Signal(t *testing.T) {
	r := &recorder{}
	r.set("last")
	s := New(r.write, nil)

	ch := make(chan os.Signal, 1)
	got := make(chan os.Signal, 1)
	stop := flushOn(s, ch, func(sig os.Signal) { got <- sig })
	defer stop()

	ch <- os.Interrupt
	select {
	case sig := <-got:
		assert.Equal(t, os.Interrupt, sig)
	case <-time.After(time.Second):
		t.Fatal("exit hook did not run")
	}
	assert.Equal(t, []string{"last"}, r.writes())
}

func TestFlushOn_StopUninstalls(t *testing.T) {
	r := &recorder{}
	s := New(r.write, nil)
	ch := make(chan os.Signal, 1)
	stop := flushOn(s, ch, nil)
	stop()
	stop()

	ch <- os.Interrupt
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, r.writes())
}

func TestFlushOn_StopWaitsForRunningHook(t *testing.T) {
	r := &recorder{}
	r.set("last")
	s := New(r.write, nil)

	ch := make(chan os.Signal, 1)
	ch <- os.Interrupt
	entered := make(chan struct{})
	release := make(chan struct{})
	stop := flushOn(s, ch, func(os.Signal) {
		close(entered)
		<-release
	})
	<-entered

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("stop returned while the exit hook was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after the exit hook finished")
	}
	assert.Equal(t, []string{"last"}, r.writes())
}

func TestFlushOn_BufferedSignalAfterStopIsIgnored(t *testing.T) {
	for range 50 {
		r := &recorder{}
		s := New(r.write, nil)
		ch := make(chan os.Signal, 1)
		called := false
		stop := flushOn(s, ch, func(os.Signal) { called = true })
		stop()
		ch <- os.Interrupt
		stop()
		assert.False(t, called)
		assert.Empty(t, r.writes())
	}
}
