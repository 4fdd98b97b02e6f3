package safe

import (
	"runtime/debug"

	"github.com/crowdkit/crowdkit/pkg/log"
)

// Go starts a new goroutine to run the given function f safely.
func Go(f func()) {
	go Do(f)
}

// Do runs the given function f and recovers from any panic, logging the stack trace.
func Do(f func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic: %v\n%s", r, debug.Stack())
		}
	}()
	f()
}

// GoWith starts a goroutine running f with the given argument, recovering from panics.
func GoWith[T any](f func(T), arg T) {
	go Do(func() { f(arg) })
}
