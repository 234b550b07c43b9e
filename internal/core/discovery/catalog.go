package discovery

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// TagSystem marks a type as a registrable component system.
const TagSystem = "system"

var (
	// ErrNoConstructor is returned when a descriptor cannot be default-constructed.
	ErrNoConstructor = errors.New("no default constructor")
	// ErrNotSystem is returned when a discovered type lacks the system contract.
	ErrNotSystem = errors.New("type does not implement system")
	// ErrNilInstance is returned when a constructor yields nil.
	ErrNilInstance = errors.New("constructor returned nil")
)

// TypeDescriptor describes one discoverable type.
type TypeDescriptor struct {
	Name string       // simple type name, used to build the registration id
	Type reflect.Type // concrete type New produces; may be nil for dynamic sources
	Tags []string
	New  func() (any, error)
}

// SimpleName returns Name, falling back to the unqualified type name.
func (d TypeDescriptor) SimpleName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Type == nil {
		return ""
	}
	t := d.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// HasTag reports whether the descriptor carries tag.
func (d TypeDescriptor) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Instantiate runs the constructor. A panic or a nil result (including a
// typed nil pointer) is reported as an error so one broken type cannot
// abort a discovery batch.
func (d TypeDescriptor) Instantiate() (v any, err error) {
	if d.New == nil {
		return nil, fmt.Errorf("%s: %w", d.SimpleName(), ErrNoConstructor)
	}
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("%s: constructor panic: %v", d.SimpleName(), r)
		}
	}()
	v, err = d.New()
	if err != nil {
		return nil, err
	}
	if isNil(v) {
		return nil, fmt.Errorf("%s: %w", d.SimpleName(), ErrNilInstance)
	}
	return v, nil
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

// Describe builds a descriptor for T. With a nil ctor, T must be a pointer
// to a struct and instances are built with new(Elem).
func Describe[T any](ctor func() T, tags ...string) TypeDescriptor {
	t := reflect.TypeOf((*T)(nil)).Elem()
	d := TypeDescriptor{Type: t, Tags: tags}
	switch {
	case ctor != nil:
		d.New = func() (any, error) { return ctor(), nil }
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		d.New = func() (any, error) { return reflect.New(t.Elem()).Interface(), nil }
	}
	return d
}

// catalogKey identifies one entry. Distinct types sharing a simple name are
// separate entries; the name clash is left to whoever registers them.
type catalogKey struct {
	typ  reflect.Type
	name string
}

// Catalog is a build-time registration table of discoverable types.
type Catalog struct {
	mu    sync.RWMutex
	types map[catalogKey]TypeDescriptor
}

func NewCatalog() *Catalog {
	return &Catalog{
		types: make(map[catalogKey]TypeDescriptor),
	}
}

// Add stores d. Adding the same type under the same name again replaces
// the earlier descriptor.
func (c *Catalog) Add(d TypeDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[catalogKey{typ: d.Type, name: d.SimpleName()}] = d
}

// FindTaggedTypes returns every descriptor carrying tag. Order is unspecified.
func (c *Catalog) FindTaggedTypes(tag string) []TypeDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]TypeDescriptor, 0, len(c.types))
	for _, d := range c.types {
		if d.HasTag(tag) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}

// Default is the process catalog populated by plugin packages in init().
var Default = NewCatalog()

// Register adds d to Default.
func Register(d TypeDescriptor) {
	Default.Add(d)
}
