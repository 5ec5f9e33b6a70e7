package player

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/reactive"
)

type fakeInput struct {
	dir         mgl32.Vec3
	active      bool
	changes     *reactive.Subject[int]
	handleCalls int
}

func newFakeInput() *fakeInput {
	return &fakeInput{changes: reactive.NewSubject[int]()}
}

func (f *fakeInput) MoveDirection() mgl32.Vec3         { return f.dir }
func (f *fakeInput) SpellActive() bool                 { return f.active }
func (f *fakeInput) SpellChange() reactive.Stream[int] { return f.changes }
func (f *fakeInput) HandleInput()                      { f.handleCalls++ }

type registryCall struct {
	op string
	t  *component.Transform
}

type fakeRegistry struct {
	calls []registryCall
}

func (f *fakeRegistry) RegisterTarget(t *component.Transform) {
	f.calls = append(f.calls, registryCall{"register", t})
}

func (f *fakeRegistry) UnregisterTarget(t *component.Transform) {
	f.calls = append(f.calls, registryCall{"unregister", t})
}

type fakeCaster struct {
	casts   int
	changes []int
}

func (f *fakeCaster) CastSpell()                { f.casts++ }
func (f *fakeCaster) ChangeSpell(direction int) { f.changes = append(f.changes, direction) }

type fakeMover struct {
	moves []mgl32.Vec3
}

func (f *fakeMover) SimpleMove(motion mgl32.Vec3) { f.moves = append(f.moves, motion) }

type harness struct {
	input     *fakeInput
	registry  *fakeRegistry
	caster    *fakeCaster
	mover     *fakeMover
	stats     *component.PlayerStats
	transform *component.Transform
	scheduler *ecs.Scheduler
	world     *ecs.World
	logs      *bytes.Buffer
	ctrl      *Controller
}

func newHarness(t *testing.T, mutate func(d *Deps)) *harness {
	t.Helper()
	h := &harness{
		input:     newFakeInput(),
		registry:  &fakeRegistry{},
		caster:    &fakeCaster{},
		mover:     &fakeMover{},
		stats:     component.NewPlayerStats(5, 10),
		transform: component.NewTransform(mgl32.Vec3{}),
		scheduler: ecs.NewScheduler(),
		world:     ecs.NewWorld(),
		logs:      &bytes.Buffer{},
	}
	d := Deps{
		Input:     h.input,
		Targets:   h.registry,
		Stats:     h.stats,
		Caster:    h.caster,
		Mover:     h.mover,
		Transform: h.transform,
		Ticker:    h.scheduler,
		Logger:    slog.New(slog.NewTextHandler(h.logs, nil)),
	}
	if mutate != nil {
		mutate(&d)
	}
	h.ctrl = NewController(d)
	return h
}

func (h *harness) fixed(dt float32) { h.scheduler.Run(h.world, ecs.PhaseFixed, dt) }
func (h *harness) frame(dt float32) { h.scheduler.Run(h.world, ecs.PhaseFrame, dt) }

func TestMoveScenario(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	h.input.dir = mgl32.Vec3{0, 0, 1}

	h.fixed(0.02)

	if len(h.mover.moves) != 1 {
		t.Fatalf("expected one SimpleMove, got %d", len(h.mover.moves))
	}
	if got := h.mover.moves[0]; got.Sub(mgl32.Vec3{0, 0, 0.1}).Len() > 1e-5 {
		t.Fatalf("expected (0,0,0.1), got %v", got)
	}
}

func TestMoveMagnitude(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl32.Vec3
		dt   float32
	}{
		{"unit_x", mgl32.Vec3{1, 0, 0}, 0.02},
		{"diagonal", mgl32.Vec3{0.6, 0, 0.8}, 0.01},
		{"long_vector", mgl32.Vec3{3, 0, 4}, 0.05},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.ctrl.Move(tc.dir, tc.dt)

			if len(h.mover.moves) != 1 {
				t.Fatalf("expected one SimpleMove, got %d", len(h.mover.moves))
			}
			got := h.mover.moves[0]
			want := tc.dir.Len() * h.stats.MoveSpeed() * tc.dt
			if diff := got.Len() - want; diff > 1e-5 || diff < -1e-5 {
				t.Fatalf("expected magnitude %v, got %v", want, got.Len())
			}
			if got.Normalize().Dot(tc.dir.Normalize()) < 0.9999 {
				t.Fatalf("expected motion along %v, got %v", tc.dir, got)
			}
		})
	}
}

func TestZeroDirectionDoesNothing(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	start := mgl32.QuatRotate(0.3, common.Up)
	h.transform.Rotation = start

	for i := 0; i < 5; i++ {
		h.fixed(0.02)
	}

	if len(h.mover.moves) != 0 {
		t.Fatalf("expected no SimpleMove for zero direction, got %d", len(h.mover.moves))
	}
	if h.transform.Rotation != start {
		t.Fatalf("expected orientation unchanged, got %v", h.transform.Rotation)
	}
}

func TestRotateApproachesTargetMonotonically(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	h.input.dir = mgl32.Vec3{1, 0, 0}
	target := common.LookRotation(h.input.dir, common.Up)

	prev := common.Angle(h.transform.Rotation, target)
	for i := 0; i < 20; i++ {
		h.fixed(0.02)
		cur := common.Angle(h.transform.Rotation, target)
		if cur >= prev && prev > 1e-3 {
			t.Fatalf("tick %d: angle did not decrease (%v -> %v)", i, prev, cur)
		}
		prev = cur
	}
	if prev > 0.05 {
		t.Fatalf("expected to be near the target after 20 ticks, got %v rad", prev)
	}
}

func TestRotateFactorIsRotationSpeedTimesDt(t *testing.T) {
	h := newHarness(t, nil)
	h.stats.BaseRotationSpeed = 25 // 25 * 0.02 = half way
	dir := mgl32.Vec3{1, 0, 0}
	target := common.LookRotation(dir, common.Up)

	h.ctrl.Rotate(dir, 0.02)

	want := common.Slerp(mgl32.QuatIdent(), target, 0.5)
	if common.Angle(h.transform.Rotation, want) > 1e-3 {
		t.Fatalf("expected half-way orientation %v, got %v", want, h.transform.Rotation)
	}
}

func TestStatsAreReadEveryTick(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	h.input.dir = mgl32.Vec3{0, 0, 1}

	h.fixed(0.5)
	h.stats.MoveMultiplier = 2
	h.fixed(0.5)

	if len(h.mover.moves) != 2 {
		t.Fatalf("expected two moves, got %d", len(h.mover.moves))
	}
	if h.mover.moves[1].Z() != 2*h.mover.moves[0].Z() {
		t.Fatalf("expected doubled speed to apply immediately, got %v", h.mover.moves)
	}
}

func TestCastSpell(t *testing.T) {
	tests := []struct {
		name      string
		pattern   []bool
		noCaster  bool
		wantCasts int
	}{
		{"inactive_ten_frames", []bool{false, false, false, false, false, false, false, false, false, false}, false, 0},
		{"held_every_frame_casts_every_frame", []bool{true, true, true}, false, 3},
		{"mixed", []bool{true, false, true, false}, false, 2},
		{"no_caster", []bool{true, true}, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, func(d *Deps) {
				if tc.noCaster {
					d.Caster = nil
				}
			})
			h.ctrl.Activate()
			for _, active := range tc.pattern {
				h.input.active = active
				h.frame(0.016)
			}
			if h.caster.casts != tc.wantCasts {
				t.Fatalf("expected %d casts, got %d", tc.wantCasts, h.caster.casts)
			}
			if h.input.handleCalls != len(tc.pattern) {
				t.Fatalf("expected HandleInput once per frame, got %d", h.input.handleCalls)
			}
		})
	}
}

func TestChangeSpellForwardsEveryEmission(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()

	for _, v := range []int{1, -1, 1} {
		h.input.changes.Emit(v)
	}

	if want := []int{1, -1, 1}; !reflect.DeepEqual(h.caster.changes, want) {
		t.Fatalf("expected %v, got %v", want, h.caster.changes)
	}
}

func TestChangeSpellWithoutCaster(t *testing.T) {
	h := newHarness(t, func(d *Deps) { d.Caster = nil })
	h.ctrl.Activate()
	h.input.changes.Emit(1)
	if len(h.caster.changes) != 0 {
		t.Fatalf("expected no forwarding without a caster")
	}

	h.ctrl.SetCaster(h.caster)
	h.input.changes.Emit(-1)
	if !reflect.DeepEqual(h.caster.changes, []int{-1}) {
		t.Fatalf("expected late-attached caster to receive changes, got %v", h.caster.changes)
	}
}

func TestActivationRegistersMatchedPairs(t *testing.T) {
	h := newHarness(t, nil)

	for i := 0; i < 3; i++ {
		h.ctrl.Activate()
		h.ctrl.Deactivate()
	}

	if len(h.registry.calls) != 6 {
		t.Fatalf("expected 6 registry calls, got %d", len(h.registry.calls))
	}
	for i, call := range h.registry.calls {
		want := "register"
		if i%2 == 1 {
			want = "unregister"
		}
		if call.op != want || call.t != h.transform {
			t.Fatalf("call %d: expected %s with own transform, got %s", i, want, call.op)
		}
	}
}

func TestDeactivateReleasesCallbacks(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	h.input.dir = mgl32.Vec3{0, 0, 1}
	h.input.active = true

	h.ctrl.Deactivate()
	h.fixed(0.02)
	h.frame(0.016)
	h.input.changes.Emit(1)

	if len(h.mover.moves) != 0 || h.caster.casts != 0 || len(h.caster.changes) != 0 {
		t.Fatalf("expected no callbacks after deactivation, got moves=%d casts=%d changes=%v",
			len(h.mover.moves), h.caster.casts, h.caster.changes)
	}
	if h.scheduler.Subscribers(ecs.PhaseFixed) != 0 || h.scheduler.Subscribers(ecs.PhaseFrame) != 0 {
		t.Fatalf("expected scheduler subscriptions released")
	}
	if h.input.changes.Len() != 0 {
		t.Fatalf("expected spell change subscription released")
	}

	h.ctrl.Activate()
	h.fixed(0.02)
	if len(h.mover.moves) != 1 {
		t.Fatalf("expected reactivation to resubscribe, got %d moves", len(h.mover.moves))
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	h.ctrl.Destroy()

	if h.ctrl.State() != StateDestroyed {
		t.Fatalf("expected destroyed, got %v", h.ctrl.State())
	}
	h.ctrl.Activate()
	if h.ctrl.State() != StateDestroyed || len(h.registry.calls) != 2 {
		t.Fatalf("expected no activation after destroy, calls=%v", h.registry.calls)
	}
}

func TestMissingInputIsInert(t *testing.T) {
	h := newHarness(t, func(d *Deps) { d.Input = nil })

	h.ctrl.Activate()
	h.fixed(0.02)
	h.frame(0.016)
	h.ctrl.Deactivate()
	h.ctrl.Activate()
	h.fixed(0.02)

	if !h.ctrl.Inert() {
		t.Fatalf("expected inert controller")
	}
	if len(h.mover.moves) != 0 || h.caster.casts != 0 {
		t.Fatalf("expected no behaviour without input")
	}
	if h.scheduler.Subscribers(ecs.PhaseFixed) != 0 || h.scheduler.Subscribers(ecs.PhaseFrame) != 0 {
		t.Fatalf("expected no tick subscriptions")
	}
	if n := strings.Count(h.logs.String(), ErrMissingInput.Error()); n != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d:\n%s", n, h.logs.String())
	}
	if len(h.registry.calls) != 3 {
		t.Fatalf("expected registration to still follow activation, got %v", h.registry.calls)
	}
}

func TestMissingRegistryIsNoop(t *testing.T) {
	h := newHarness(t, func(d *Deps) { d.Targets = nil })
	h.ctrl.Activate()
	h.ctrl.Deactivate()
	if h.logs.Len() != 0 {
		t.Fatalf("expected no log output for a missing registry, got %q", h.logs.String())
	}
}

func TestLoopDrivesController(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Activate()
	h.input.dir = mgl32.Vec3{0, 0, 1}
	h.input.active = true

	loop := ecs.NewLoop(h.scheduler, 0.25, 4)
	loop.Frame(h.world, 0.5)
	loop.Frame(h.world, 0)

	if len(h.mover.moves) != 2 {
		t.Fatalf("expected two fixed moves, got %d", len(h.mover.moves))
	}
	if h.caster.casts != 2 {
		t.Fatalf("expected one cast per frame, got %d", h.caster.casts)
	}
}
