package spell

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/ecs/component"
)

type recordSpawner struct {
	casts []Cast
	err   error
}

func (r *recordSpawner) SpawnProjectile(c Cast) error {
	if r.err != nil {
		return r.err
	}
	r.casts = append(r.casts, c)
	return nil
}

var testBook = []Spell{
	{Name: "firebolt", Cooldown: 0.5, Speed: 10, Damage: 1},
	{Name: "frost", Cooldown: 1, Speed: 6, Damage: 2},
	{Name: "arcane", Cooldown: 0, Speed: 20, Damage: 1},
}

func newTestCaster(t *testing.T, now *float64) (*Caster, *recordSpawner, *component.Transform) {
	t.Helper()
	origin := component.NewTransform(mgl32.Vec3{1, 0, 2})
	sp := &recordSpawner{}
	c, err := NewCaster(testBook, origin, sp, func() float64 { return *now }, nil)
	if err != nil {
		t.Fatalf("new caster: %v", err)
	}
	return c, sp, origin
}

func TestCastRespectsCooldown(t *testing.T) {
	now := 0.0
	c, sp, _ := newTestCaster(t, &now)

	steps := []struct {
		at        float64
		wantTotal int
	}{
		{0, 1},
		{0.1, 1},
		{0.49, 1},
		{0.5, 2},
		{0.6, 2},
		{1.0, 3},
	}
	for _, s := range steps {
		now = s.at
		c.CastSpell()
		if len(sp.casts) != s.wantTotal {
			t.Fatalf("t=%v: expected %d casts, got %d", s.at, s.wantTotal, len(sp.casts))
		}
	}
}

func TestCastUsesOriginAndFacing(t *testing.T) {
	now := 0.0
	c, sp, origin := newTestCaster(t, &now)
	origin.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	c.CastSpell()

	if len(sp.casts) != 1 {
		t.Fatalf("expected one cast")
	}
	cast := sp.casts[0]
	if cast.Origin != origin.Position {
		t.Fatalf("expected origin %v, got %v", origin.Position, cast.Origin)
	}
	if cast.Direction.Sub(mgl32.Vec3{1, 0, 0}).Len() > 1e-5 {
		t.Fatalf("expected +X facing, got %v", cast.Direction)
	}
	if cast.Spell.Name != "firebolt" {
		t.Fatalf("expected firebolt, got %s", cast.Spell.Name)
	}
}

func TestCastIDsAreUnique(t *testing.T) {
	now := 0.0
	c, sp, _ := newTestCaster(t, &now)
	c.ChangeSpell(2) // arcane, no cooldown
	for i := 0; i < 3; i++ {
		c.CastSpell()
	}
	seen := map[string]bool{}
	for _, cast := range sp.casts {
		if seen[cast.ID.String()] {
			t.Fatalf("duplicate cast id %s", cast.ID)
		}
		seen[cast.ID.String()] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 casts, got %d", len(seen))
	}
}

func TestChangeSpellWraps(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  string
	}{
		{"next", []int{1}, "frost"},
		{"prev_wraps_to_end", []int{-1}, "arcane"},
		{"next_wraps_to_start", []int{1, 1, 1}, "firebolt"},
		{"mixed", []int{1, -1, 1}, "frost"},
		{"large_step", []int{5}, "arcane"},
		{"zero_ignored", []int{0}, "firebolt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now := 0.0
			c, _, _ := newTestCaster(t, &now)
			for _, m := range tc.moves {
				c.ChangeSpell(m)
			}
			if got := c.Current().Name; got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCooldownIsPerSpell(t *testing.T) {
	now := 0.0
	c, sp, _ := newTestCaster(t, &now)

	c.CastSpell()
	c.ChangeSpell(1)
	c.CastSpell()
	c.ChangeSpell(-1)
	c.CastSpell()

	if len(sp.casts) != 2 {
		t.Fatalf("expected firebolt and frost to fire once each, got %d", len(sp.casts))
	}
	if c.Cooldown() != 0.5 {
		t.Fatalf("expected firebolt cooldown 0.5, got %v", c.Cooldown())
	}
}

func TestSpawnerErrorStillConsumesCooldown(t *testing.T) {
	now := 0.0
	c, sp, _ := newTestCaster(t, &now)
	sp.err = errors.New("world full")

	c.CastSpell()
	c.CastSpell()
	if c.Casts() != 1 {
		t.Fatalf("expected one attempted cast, got %d", c.Casts())
	}
}

func TestNewCasterValidation(t *testing.T) {
	if _, err := NewCaster(nil, nil, nil, func() float64 { return 0 }, nil); !errors.Is(err, ErrEmptySpellbook) {
		t.Fatalf("expected ErrEmptySpellbook, got %v", err)
	}
	if _, err := NewCaster(testBook, nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil clock")
	}
}

func TestNilCasterIsSafe(t *testing.T) {
	var c *Caster
	c.CastSpell()
	c.ChangeSpell(1)
	if c.Current().Name != "" {
		t.Fatalf("expected zero spell")
	}
}
