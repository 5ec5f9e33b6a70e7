package component

// TTL is a time-to-live in seconds. The TTL system destroys the entity once
// Remaining reaches zero.
type TTL struct {
	Remaining float32
}

var TTLComponent = NewComponent[TTL]()
