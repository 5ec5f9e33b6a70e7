package targeting

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/ecs/component"
)

// Registry is an identity-keyed set of target transforms. Registering the
// same transform twice, or unregistering one that is absent, is a no-op.
type Registry struct {
	targets []*component.Transform
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterTarget(t *component.Transform) {
	if r == nil || t == nil || r.index(t) >= 0 {
		return
	}
	r.targets = append(r.targets, t)
}

func (r *Registry) UnregisterTarget(t *component.Transform) {
	if r == nil || t == nil {
		return
	}
	i := r.index(t)
	if i < 0 {
		return
	}
	r.targets = append(r.targets[:i], r.targets[i+1:]...)
}

// Targets returns the registered transforms in registration order.
func (r *Registry) Targets() []*component.Transform {
	if r == nil {
		return nil
	}
	return append([]*component.Transform(nil), r.targets...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.targets)
}

// Nearest returns the registered target closest to pos on the floor plane.
func (r *Registry) Nearest(pos mgl32.Vec3) (*component.Transform, bool) {
	if r == nil || len(r.targets) == 0 {
		return nil, false
	}
	var best *component.Transform
	bestDist := float32(0)
	for _, t := range r.targets {
		d := t.Position.Sub(pos)
		dist := d.X()*d.X() + d.Z()*d.Z()
		if best == nil || dist < bestDist {
			best, bestDist = t, dist
		}
	}
	return best, true
}

func (r *Registry) index(t *component.Transform) int {
	for i, existing := range r.targets {
		if existing == t {
			return i
		}
	}
	return -1
}
