package targeting

// ID names a registry the composition root can hand out.
type ID string

const (
	// PlayerLocator tracks player transforms for enemy targeting.
	PlayerLocator ID = "PlayerLocator"
)

// Locators maps IDs to registries, created on first use.
type Locators struct {
	registries map[ID]*Registry
}

func NewLocators() *Locators {
	return &Locators{registries: make(map[ID]*Registry)}
}

func (l *Locators) Get(id ID) *Registry {
	if l == nil {
		return nil
	}
	if l.registries == nil {
		l.registries = make(map[ID]*Registry)
	}
	r, ok := l.registries[id]
	if !ok {
		r = NewRegistry()
		l.registries[id] = r
	}
	return r
}

// Lookup returns the registry for id without creating it.
func (l *Locators) Lookup(id ID) (*Registry, bool) {
	if l == nil {
		return nil, false
	}
	r, ok := l.registries[id]
	return r, ok
}
