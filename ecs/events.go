package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventEnemyKilled = "enemy_killed"

// EnemyKilledEvent is pushed when an enemy's health reaches zero.
type EnemyKilledEvent struct {
	Enemy  Entity
	CastID string
}

// EventQueue is a simple FIFO queue, flushed after every scheduler phase.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Take removes and returns the events of one type, keeping the rest queued
// in order.
func (q *EventQueue) Take(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var taken []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			taken = append(taken, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return taken
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
