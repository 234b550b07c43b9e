package service

import (
	"reflect"
	"sync"
)

// Locator maps a type to the singleton instance registered for it.
// Systems never see the Locator directly; the manager resolves their
// declared slots against it before calling Initialise.
type Locator struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
}

func NewLocator() *Locator {
	return &Locator{
		services: make(map[reflect.Type]any),
	}
}

// Put registers v under the static type T, replacing any previous value.
// Interface types are keyed by the interface, not by v's dynamic type.
// Putting a nil value removes the entry.
func Put[T any](l *Locator, v T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	l.mu.Lock()
	defer l.mu.Unlock()
	if isNil(v) {
		delete(l.services, t)
		return
	}
	l.services[t] = v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Get returns the value registered under T.
func Get[T any](l *Locator) (T, bool) {
	var zero T
	v, ok := l.Resolve(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Resolve looks up the value registered under t.
func (l *Locator) Resolve(t reflect.Type) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.services[t]
	return v, ok
}

// Remove drops the entry for T.
func Remove[T any](l *Locator) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.services, t)
}

func (l *Locator) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.services)
}

func (l *Locator) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.services)
}
