package event

import "testing"

type recorder struct {
	signals []string
}

func (r *recorder) SubscribeEvents(b *Bus) {
	Subscribe(b, func(s Signal) { r.signals = append(r.signals, s.Name) })
}

func TestBusDoubleBuffer(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(s Signal) { got = append(got, s.Name) })

	Emit(b, Signal{Name: "a"})
	if n := b.DispatchAll(); n != 0 || len(got) != 0 {
		t.Errorf("events must not be visible before SwapBuffers, delivered %d", n)
	}
	if b.Pending() != 1 {
		t.Errorf("Expected 1 pending, got %d", b.Pending())
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 1 {
		t.Errorf("Expected 1 delivered, got %d", n)
	}
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("got %v", got)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 0 {
		t.Errorf("Expected empty front buffer, delivered %d", n)
	}
}

func TestBusRegisterEventHandler(t *testing.T) {
	b := NewBus()
	r := &recorder{}
	b.RegisterEventHandler(r)
	if b.EventHandlers() != 1 {
		t.Errorf("Expected 1 handler, got %d", b.EventHandlers())
	}

	Emit(b, Signal{Name: "ping"})
	Emit(b, EntitySpawned{EntityID: 7})
	b.SwapBuffers()
	b.DispatchAll()
	if len(r.signals) != 1 || r.signals[0] != "ping" {
		t.Errorf("handler received %v", r.signals)
	}
}
