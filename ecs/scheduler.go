package ecs

import "github.com/milk9111/magedefence/reactive"

type System interface {
	Update(w *World)
}

// Phase selects when a system or tick callback runs.
type Phase int

const (
	// PhaseFixed runs at the loop's fixed delta, zero or more times per frame.
	PhaseFixed Phase = iota
	// PhaseFrame runs once per rendered frame.
	PhaseFrame
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseFixed:
		return "fixed"
	case PhaseFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// TickFunc receives the delta of the phase it is subscribed to.
type TickFunc func(dt float32)

type tickHook struct {
	fn     TickFunc
	active bool
}

// Scheduler holds the systems and tick callbacks of each phase. Callbacks
// run before systems, both in registration order.
type Scheduler struct {
	systems [phaseCount][]System
	hooks   [phaseCount][]*tickHook
	running int
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add appends a system to a phase.
func (s *Scheduler) Add(phase Phase, system System) {
	if system == nil || phase < 0 || phase >= phaseCount {
		return
	}
	s.systems[phase] = append(s.systems[phase], system)
}

// Subscribe registers fn for a phase. Cancelling the subscription guarantees
// fn is not called again, even later in the same pass.
func (s *Scheduler) Subscribe(phase Phase, fn TickFunc) reactive.Subscription {
	if fn == nil || phase < 0 || phase >= phaseCount {
		return reactive.NewSubscription(nil)
	}
	h := &tickHook{fn: fn, active: true}
	s.hooks[phase] = append(s.hooks[phase], h)
	return reactive.NewSubscription(func() {
		h.active = false
		s.compact(phase)
	})
}

func (s *Scheduler) OnFixedTick(fn func(dt float32)) reactive.Subscription {
	return s.Subscribe(PhaseFixed, fn)
}

func (s *Scheduler) OnFrameTick(fn func(dt float32)) reactive.Subscription {
	return s.Subscribe(PhaseFrame, fn)
}

// Run executes one pass of a phase and flushes the world events afterwards.
func (s *Scheduler) Run(w *World, phase Phase, dt float32) {
	if s == nil || phase < 0 || phase >= phaseCount {
		return
	}
	if w != nil {
		w.deltaTime = dt
	}

	s.running++
	for _, h := range s.hooks[phase] {
		if h.active {
			h.fn(dt)
		}
	}
	s.running--
	s.compact(phase)

	for _, system := range s.systems[phase] {
		system.Update(w)
	}
	w.Events().flush()
}

// Systems returns a copy of a phase's systems.
func (s *Scheduler) Systems(phase Phase) []System {
	if phase < 0 || phase >= phaseCount {
		return nil
	}
	return append([]System(nil), s.systems[phase]...)
}

// Subscribers reports the live tick callbacks of a phase.
func (s *Scheduler) Subscribers(phase Phase) int {
	if phase < 0 || phase >= phaseCount {
		return 0
	}
	n := 0
	for _, h := range s.hooks[phase] {
		if h.active {
			n++
		}
	}
	return n
}

func (s *Scheduler) compact(phase Phase) {
	if s.running > 0 {
		return
	}
	hooks := s.hooks[phase]
	live := hooks[:0]
	for _, h := range hooks {
		if h.active {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(hooks); i++ {
		hooks[i] = nil
	}
	s.hooks[phase] = live
}
