package service

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotAssignable is returned by Slot.Assign when the resolved value does
// not fit the slot's declared type.
var ErrNotAssignable = errors.New("value not assignable to slot")

// Slot is a declared injection point on a system. Its Type is the key used
// to resolve a value from the Locator.
type Slot interface {
	Type() reflect.Type
	Assign(v any) error
	String() string
}

type ptrSlot[T any] struct {
	name string
	ptr  *T
}

// Inject declares a slot backed by ptr. The slot is keyed by T, so a field
// of type *ecs.World is satisfied by service.Put[*ecs.World].
func Inject[T any](ptr *T) Slot {
	return &ptrSlot[T]{ptr: ptr}
}

// InjectNamed is Inject with a label used in log output.
func InjectNamed[T any](name string, ptr *T) Slot {
	return &ptrSlot[T]{name: name, ptr: ptr}
}

func (s *ptrSlot[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (s *ptrSlot[T]) Assign(v any) error {
	if s.ptr == nil {
		return fmt.Errorf("slot %s: nil target", s)
	}
	typed, ok := v.(T)
	if !ok {
		return fmt.Errorf("slot %s got %T: %w", s, v, ErrNotAssignable)
	}
	*s.ptr = typed
	return nil
}

func (s *ptrSlot[T]) String() string {
	if s.name != "" {
		return s.name + " " + s.Type().String()
	}
	return s.Type().String()
}
