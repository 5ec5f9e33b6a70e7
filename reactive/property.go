package reactive

// Property holds a current value and notifies subscribers when it changes.
type Property[T comparable] struct {
	value   T
	changed Subject[T]
}

func NewProperty[T comparable](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

func (p *Property[T]) Value() T {
	if p == nil {
		var zero T
		return zero
	}
	return p.value
}

// Set stores v and notifies subscribers if it differs from the current value.
func (p *Property[T]) Set(v T) {
	if p == nil || p.value == v {
		return
	}
	p.value = v
	p.changed.Emit(v)
}

func (p *Property[T]) Subscribe(fn func(T)) Subscription {
	if p == nil {
		return NewSubscription(nil)
	}
	return p.changed.Subscribe(fn)
}
