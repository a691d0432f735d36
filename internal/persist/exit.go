package persist

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitFlushTimeout bounds the final write attempt during teardown.
const ExitFlushTimeout = 2 * time.Second

// FlushOnSignal installs a best-effort teardown hook: when SIGINT or SIGTERM
// arrives, s is flushed once and then after is called with the signal. A
// failed flush is logged and accepted as lost data for that edit window.
// The returned func uninstalls the hook.
func FlushOnSignal(s *Scheduler, after func(os.Signal)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	quit := flushOn(s, ch, after)
	return func() {
		signal.Stop(ch)
		quit()
	}
}

func flushOn(s *Scheduler, ch <-chan os.Signal, after func(os.Signal)) (stop func()) {
	quit := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case sig := <-ch:
			select {
			case <-quit:
				return
			default:
			}
			ctx, cancel := context.WithTimeout(context.Background(), ExitFlushTimeout)
			if err := s.Flush(ctx); err != nil {
				s.logger().Warn("flush on exit failed", "signal", sig.String(), "error", err)
			}
			cancel()
			if after != nil {
				after(sig)
			}
		case <-quit:
		}
	}()
	var once sync.Once
	// Once stop returns the hook has either finished or will never run.
	return func() {
		once.Do(func() {
			close(quit)
			<-exited
		})
	}
}
