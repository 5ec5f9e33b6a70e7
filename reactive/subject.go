package reactive

// Stream is the read side of a Subject.
type Stream[T any] interface {
	Subscribe(fn func(T)) Subscription
}

type handler[T any] struct {
	fn     func(T)
	active bool
}

// Subject is a synchronous, single-threaded event stream. Every emission is
// delivered once to each handler that is subscribed at the time it fires.
type Subject[T any] struct {
	handlers []*handler[T]
	emitting int
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

func (s *Subject[T]) Subscribe(fn func(T)) Subscription {
	if s == nil || fn == nil {
		return NewSubscription(nil)
	}
	h := &handler[T]{fn: fn, active: true}
	s.handlers = append(s.handlers, h)
	return NewSubscription(func() {
		h.active = false
		s.compact()
	})
}

// Emit calls handlers in subscription order. Handlers added during an
// emission first see the next one.
func (s *Subject[T]) Emit(v T) {
	if s == nil {
		return
	}
	s.emitting++
	handlers := s.handlers
	for _, h := range handlers {
		if h.active {
			h.fn(v)
		}
	}
	s.emitting--
	s.compact()
}

// Len reports the number of live handlers.
func (s *Subject[T]) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, h := range s.handlers {
		if h.active {
			n++
		}
	}
	return n
}

func (s *Subject[T]) compact() {
	if s.emitting > 0 {
		return
	}
	live := s.handlers[:0]
	for _, h := range s.handlers {
		if h.active {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.handlers); i++ {
		s.handlers[i] = nil
	}
	s.handlers = live
}
