package behaviour

// Tick is the clock handed to every behaviour once per frame. Both values are
// seconds since the render loop started.
type Tick struct {
	Elapsed  float64
	Previous float64
}

// Delta is the time since the previous frame, zero on the first frame or if
// the clock ever steps backwards.
func (t Tick) Delta() float64 {
	d := t.Elapsed - t.Previous
	if d <= 0 {
		return 0
	}
	return d
}

type Behaviour interface {
	Start()
	Update(tick Tick)
}

type BehaviourWrapper struct {
	Behaviour Behaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

var GlobalBehaviourManager = NewBehaviourManager()

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

// UpdateAll starts any behaviour added since the last frame, then updates
// every behaviour in insertion order.
func (m *BehaviourManager) UpdateAll(tick Tick) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].Behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].Behaviour.Update(tick)
	}
}
