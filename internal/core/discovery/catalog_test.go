package discovery

import (
	"errors"
	"strings"
	"testing"
)

type widget struct{ built bool }

func newWidget() *widget { return &widget{built: true} }

func TestDescribeWithConstructor(t *testing.T) {
	d := Describe(newWidget, TagSystem)
	if d.SimpleName() != "widget" {
		t.Errorf("SimpleName() = %q", d.SimpleName())
	}
	v, err := d.Instantiate()
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if w, ok := v.(*widget); !ok || !w.built {
		t.Errorf("Instantiate() = %#v", v)
	}
}

func TestDescribeDefaultConstructor(t *testing.T) {
	d := Describe[*widget](nil)
	v, err := d.Instantiate()
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if w, ok := v.(*widget); !ok || w.built {
		t.Errorf("Expected zero widget, got %#v", v)
	}
}

func TestDescribeNoDefaultConstructor(t *testing.T) {
	d := Describe[int](nil)
	if _, err := d.Instantiate(); !errors.Is(err, ErrNoConstructor) {
		t.Errorf("Expected ErrNoConstructor, got %v", err)
	}
}

func TestInstantiateRecoversPanic(t *testing.T) {
	d := Describe(func() *widget { panic("bad wiring") })
	_, err := d.Instantiate()
	if err == nil || !strings.Contains(err.Error(), "bad wiring") {
		t.Errorf("Expected panic converted to error, got %v", err)
	}
}

func TestInstantiateRejectsNilResult(t *testing.T) {
	typedNil := Describe(func() *widget { return nil }, TagSystem)
	if v, err := typedNil.Instantiate(); !errors.Is(err, ErrNilInstance) || v != nil {
		t.Errorf("Expected ErrNilInstance for typed nil, got %v, %v", v, err)
	}

	untyped := TypeDescriptor{Name: "Untyped", New: func() (any, error) { return nil, nil }}
	if _, err := untyped.Instantiate(); !errors.Is(err, ErrNilInstance) {
		t.Errorf("Expected ErrNilInstance for untyped nil, got %v", err)
	}
}

type gadget struct{}

func TestCatalogKeepsDistinctTypesSharingName(t *testing.T) {
	c := NewCatalog()
	a := Describe[*widget](nil, TagSystem)
	a.Name = "Movement"
	b := Describe[*gadget](nil, TagSystem)
	b.Name = "Movement"
	c.Add(a)
	c.Add(b)

	if c.Len() != 2 {
		t.Fatalf("Expected 2 types, got %d", c.Len())
	}
	found := c.FindTaggedTypes(TagSystem)
	if len(found) != 2 {
		t.Fatalf("Expected both Movement types, got %d", len(found))
	}
	seen := map[string]bool{}
	for _, d := range found {
		seen[d.Type.String()] = true
	}
	if !seen["*discovery.widget"] || !seen["*discovery.gadget"] {
		t.Errorf("FindTaggedTypes returned %v", seen)
	}

	// Same type and name again replaces rather than duplicates.
	c.Add(a)
	if c.Len() != 2 {
		t.Errorf("Expected re-adding to replace, got %d types", c.Len())
	}
}

func TestCatalogFindTaggedTypes(t *testing.T) {
	c := NewCatalog()
	c.Add(Describe(newWidget, TagSystem))
	other := Describe[*widget](nil, "other")
	other.Name = "Other"
	c.Add(other)

	found := c.FindTaggedTypes(TagSystem)
	if len(found) != 1 || found[0].SimpleName() != "widget" {
		t.Errorf("FindTaggedTypes(system) = %v", found)
	}
	if len(c.FindTaggedTypes("missing")) != 0 {
		t.Error("Expected no types for unknown tag")
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 types, got %d", c.Len())
	}
}

func TestManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`
- id: "core:MotionSystem"
  enabled: false
- id: "core:CleanupSystem"
  enabled: true
`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Enabled("core:MotionSystem") {
		t.Error("MotionSystem should be disabled")
	}
	if !m.Enabled("core:CleanupSystem") || !m.Enabled("core:Unlisted") {
		t.Error("listed-enabled and unlisted ids should be enabled")
	}
	if m.Count() != 2 {
		t.Errorf("Expected 2 entries, got %d", m.Count())
	}
}

func TestManifestMissingFile(t *testing.T) {
	m, err := LoadManifest(t.TempDir() + "/none.yaml")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !m.Enabled("anything") {
		t.Error("empty manifest should enable everything")
	}
}

func TestManifestInvalid(t *testing.T) {
	if _, err := ParseManifest([]byte("id: [")); err == nil {
		t.Error("Expected parse error")
	}
}
