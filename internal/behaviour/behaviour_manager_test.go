package behaviour

import (
	"testing"
)

type MockBehaviour struct {
	starts  int
	updates []Tick
}

func (m *MockBehaviour) Start() {
	m.starts++
}

func (m *MockBehaviour) Update(tick Tick) {
	m.updates = append(m.updates, tick)
}

func TestTickDelta(t *testing.T) {
	tests := []struct {
		name string
		tick Tick
		want float64
	}{
		{"regular frame", Tick{Elapsed: 1.5, Previous: 1.0}, 0.5},
		{"first frame", Tick{Elapsed: 0, Previous: 0}, 0},
		{"clock stepped back", Tick{Elapsed: 1.0, Previous: 2.0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tick.Delta(); got != tt.want {
				t.Errorf("Expected delta %f, got %f", tt.want, got)
			}
		})
	}
}

func TestManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAll(Tick{Elapsed: 0.1})
	m.UpdateAll(Tick{Elapsed: 0.2, Previous: 0.1})

	if b.starts != 1 {
		t.Errorf("Start() should run once, ran %d times", b.starts)
	}
	if len(b.updates) != 2 {
		t.Fatalf("Expected 2 updates, got %d", len(b.updates))
	}
	if b.updates[1].Previous != 0.1 {
		t.Errorf("Expected tick to be passed through, got %+v", b.updates[1])
	}
}

func TestManagerClear(t *testing.T) {
	m := NewBehaviourManager()
	m.Add(&MockBehaviour{})
	m.Add(&MockBehaviour{})

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Clear should remove all behaviours, got %d", m.Len())
	}
}
