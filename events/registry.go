// Package events provides the per-instance listener registry used by the
// engine and websocket sessions.
package events

import (
	"fmt"
	"sync"

	"github.com/oesand/ember/internal"
)

// Listener receives the value emitted for an event.
type Listener[T any] func(T)

// Registry maps event names to listeners kept in registration order.
// Listeners are never removed. Emitting is safe while other goroutines
// register listeners.
type Registry[T any] struct {
	_ internal.NoCopy

	mu        sync.RWMutex
	listeners map[string][]Listener[T]
}

// On appends a listener for the event.
func (registry *Registry[T]) On(event string, listener Listener[T]) {
	if listener == nil {
		return
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.listeners == nil {
		registry.listeners = map[string][]Listener[T]{}
	}
	registry.listeners[event] = append(registry.listeners[event], listener)
}

// Len returns the number of listeners registered for the event.
func (registry *Registry[T]) Len(event string) int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	return len(registry.listeners[event])
}

func (registry *Registry[T]) snapshot(event string) []Listener[T] {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	return registry.listeners[event]
}

// Emit calls every listener of the event in registration order.
// A panicking listener propagates to the caller and the remaining
// listeners are skipped.
func (registry *Registry[T]) Emit(event string, value T) {
	for _, listener := range registry.snapshot(event) {
		listener(value)
	}
}

// EmitSafe behaves like Emit but recovers a panicking listener and returns
// it as a *ListenerPanic. Listeners after the panicking one are skipped.
func (registry *Registry[T]) EmitSafe(event string, value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerPanic{Event: event, Value: r}
		}
	}()

	registry.Emit(event, value)
	return nil
}

// ListenerPanic carries the value recovered from a panicking listener.
type ListenerPanic struct {
	Event string
	Value any
}

func (e *ListenerPanic) Error() string {
	return fmt.Sprintf("events: listener for %q panicked: %v", e.Event, e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *ListenerPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
