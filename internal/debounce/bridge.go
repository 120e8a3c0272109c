// Package debounce decouples a fast-changing local value from a rate-limited
// upstream change handler.
//
// The first change of a burst reaches the handler immediately. Further
// changes inside the window are coalesced, and once the window passes
// without another change exactly one trailing call delivers the latest value
// to the latest handler.
package debounce

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Window is the quiet period that closes a burst of changes.
const Window = 500 * time.Millisecond

// scheduleFunc runs fn after d and returns a function that cancels it.
type scheduleFunc func(d time.Duration, fn func()) (cancel func() bool)

func afterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Bridge holds the local value of one controlled input.
type Bridge[T any] struct {
	mu       sync.Mutex
	local    T
	incoming T
	handler  func(T)

	open bool
	// pending holds the latest value of the burst; the trailing call reads
	// it, together with the current handler, when the window closes.
	pending  *T
	cancel   func() bool
	gen      uint64
	schedule scheduleFunc
}

// New creates a bridge showing incoming and reporting to onChange.
func New[T any](incoming T, onChange func(T)) *Bridge[T] {
	return &Bridge[T]{
		local:    incoming,
		incoming: incoming,
		handler:  onChange,
		schedule: afterFunc,
	}
}

// Sync is called whenever the owner re-renders the input with its current
// value and handler. A changed incoming value that differs from the local
// one replaces it at once. It returns the value to display and the change
// callback to wire into the input.
func (b *Bridge[T]) Sync(incoming T, onChange func(T)) (T, func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handler = onChange
	if !equal(incoming, b.incoming) {
		b.incoming = incoming
		if !equal(b.local, incoming) {
			b.local = incoming
		}
	}
	return b.local, b.Change
}

// Value returns the value currently shown to the user.
func (b *Bridge[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.local
}

// Open reports whether a burst is in progress, that is, whether the next
// Change will be coalesced instead of reaching the handler at once.
func (b *Bridge[T]) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Change records a local edit and schedules the upstream notification.
func (b *Bridge[T]) Change(value T) {
	b.mu.Lock()
	b.local = value

	if !b.open {
		b.open = true
		b.arm()
		handler := b.handler
		b.mu.Unlock()
		if handler != nil {
			handler(value)
		}
		return
	}

	b.pending = &value
	b.arm()
	b.mu.Unlock()
}

// Flush delivers a pending trailing notification immediately and closes the
// window.
func (b *Bridge[T]) Flush() {
	b.mu.Lock()
	b.disarm()
	pending, handler := b.pending, b.handler
	b.pending = nil
	b.open = false
	b.mu.Unlock()

	fire(handler, pending)
}

// Stop discards a pending trailing notification and closes the window.
func (b *Bridge[T]) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disarm()
	b.pending = nil
	b.open = false
}

// arm restarts the window. Callers hold b.mu.
func (b *Bridge[T]) arm() {
	b.disarm()
	b.gen++
	gen := b.gen
	b.cancel = b.schedule(Window, func() { b.expire(gen) })
}

// disarm cancels the running window timer. Callers hold b.mu.
func (b *Bridge[T]) disarm() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Bridge[T]) expire(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || !b.open {
		b.mu.Unlock()
		return
	}
	pending, handler := b.pending, b.handler
	b.pending = nil
	b.open = false
	b.cancel = nil
	b.mu.Unlock()

	fire(handler, pending)
}

func fire[T any](handler func(T), value *T) {
	if handler == nil || value == nil {
		return
	}
	handler(*value)
}

func equal[T any](a, b T) (same bool) {
	defer func() {
		if recover() != nil {
			same = reflect.DeepEqual(a, b)
		}
	}()
	return cmp.Equal(a, b, cmp.Exporter(func(reflect.Type) bool { return true }))
}
