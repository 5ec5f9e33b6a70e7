package reactive

// Subscription releases a callback registration. Cancel is idempotent.
type Subscription interface {
	Cancel()
}

type funcSubscription struct {
	cancel func()
}

// NewSubscription wraps cancel so it runs at most once.
func NewSubscription(cancel func()) Subscription {
	return &funcSubscription{cancel: cancel}
}

func (s *funcSubscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Scope owns a group of subscriptions tied to one lifetime. Closing the scope
// cancels everything it holds; the scope can be reused afterwards.
type Scope struct {
	subs []Subscription
}

// Add takes ownership of sub. Nil subscriptions are ignored.
func (s *Scope) Add(sub Subscription) {
	if s == nil || sub == nil {
		return
	}
	s.subs = append(s.subs, sub)
}

// Len reports how many subscriptions are held.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.subs)
}

// Close cancels held subscriptions in reverse order of registration.
func (s *Scope) Close() {
	if s == nil {
		return
	}
	subs := s.subs
	s.subs = nil
	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Cancel()
	}
}
