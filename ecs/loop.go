package ecs

const (
	DefaultFixedDelta    float32 = 0.02
	DefaultMaxFixedSteps         = 5
)

// Loop turns variable frame deltas into fixed-step and per-frame phases.
type Loop struct {
	scheduler     *Scheduler
	fixedDelta    float32
	maxFixedSteps int
	accumulator   float32
}

func NewLoop(s *Scheduler, fixedDelta float32, maxFixedSteps int) *Loop {
	if fixedDelta <= 0 {
		fixedDelta = DefaultFixedDelta
	}
	if maxFixedSteps <= 0 {
		maxFixedSteps = DefaultMaxFixedSteps
	}
	return &Loop{scheduler: s, fixedDelta: fixedDelta, maxFixedSteps: maxFixedSteps}
}

func (l *Loop) FixedDelta() float32 {
	return l.fixedDelta
}

// Frame advances the world by frameDelta seconds and returns the number of
// fixed steps it ran. When more than maxFixedSteps are owed the excess time is
// dropped instead of carried over.
func (l *Loop) Frame(w *World, frameDelta float32) int {
	if l == nil || l.scheduler == nil {
		return 0
	}
	if frameDelta < 0 {
		frameDelta = 0
	}

	l.accumulator += frameDelta
	steps := 0
	for l.accumulator >= l.fixedDelta && steps < l.maxFixedSteps {
		l.scheduler.Run(w, PhaseFixed, l.fixedDelta)
		l.accumulator -= l.fixedDelta
		steps++
	}
	if steps == l.maxFixedSteps && l.accumulator >= l.fixedDelta {
		l.accumulator = 0
	}

	if w != nil {
		w.time += float64(frameDelta)
	}
	l.scheduler.Run(w, PhaseFrame, frameDelta)
	return steps
}
