package input

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeDevice struct {
	held    map[Action]bool
	pressed map[Action]bool
	x, y    float64
}

func (f *fakeDevice) Held(a Action) bool        { return f.held[a] }
func (f *fakeDevice) JustPressed(a Action) bool { return f.pressed[a] }
func (f *fakeDevice) Stick() (float64, float64) { return f.x, f.y }

func TestHandleInputDirection(t *testing.T) {
	tests := []struct {
		name string
		dev  *fakeDevice
		want mgl32.Vec3
	}{
		{"idle", &fakeDevice{}, mgl32.Vec3{}},
		{"forward", &fakeDevice{held: map[Action]bool{ActionMoveForward: true}}, mgl32.Vec3{0, 0, 1}},
		{"right", &fakeDevice{held: map[Action]bool{ActionMoveRight: true}}, mgl32.Vec3{1, 0, 0}},
		{"opposites_cancel", &fakeDevice{held: map[Action]bool{ActionMoveLeft: true, ActionMoveRight: true}}, mgl32.Vec3{}},
		{"stick_overrides_keys", &fakeDevice{held: map[Action]bool{ActionMoveForward: true}, x: 0.5}, mgl32.Vec3{0.5, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayerInput(tc.dev)
			p.HandleInput()
			if got := p.MoveDirection(); got.Sub(tc.want).Len() > 1e-5 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDiagonalIsClampedToUnit(t *testing.T) {
	p := NewPlayerInput(&fakeDevice{held: map[Action]bool{ActionMoveForward: true, ActionMoveRight: true}})
	p.HandleInput()
	if l := p.MoveDirection().Len(); l > 1.0001 || l < 0.9999 {
		t.Fatalf("expected unit length diagonal, got %v", l)
	}
}

func TestValuesOnlyChangeInHandleInput(t *testing.T) {
	dev := &fakeDevice{held: map[Action]bool{}}
	p := NewPlayerInput(dev)

	dev.held[ActionCast] = true
	if p.SpellActive() {
		t.Fatalf("expected stale value before HandleInput")
	}
	p.HandleInput()
	if !p.SpellActive() {
		t.Fatalf("expected cast held after HandleInput")
	}
}

func TestSpellChangeEmitsOncePerPress(t *testing.T) {
	dev := &fakeDevice{pressed: map[Action]bool{}}
	p := NewPlayerInput(dev)
	var got []int
	p.SpellChange().Subscribe(func(v int) { got = append(got, v) })

	frames := []map[Action]bool{
		{ActionNextSpell: true},
		{},
		{ActionPrevSpell: true},
		{ActionNextSpell: true},
	}
	for _, f := range frames {
		dev.pressed = f
		p.HandleInput()
	}

	if want := []int{1, -1, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNilDeviceIsSafe(t *testing.T) {
	p := NewPlayerInput(nil)
	p.HandleInput()
	if p.SpellActive() || p.MoveDirection() != (mgl32.Vec3{}) {
		t.Fatalf("expected zero values without a device")
	}
}

func TestParseAction(t *testing.T) {
	if a, err := ParseAction("cast"); err != nil || a != ActionCast {
		t.Fatalf("expected ActionCast, got %v err=%v", a, err)
	}
	if _, err := ParseAction("jump"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
