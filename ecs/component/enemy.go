package component

// Enemy steers toward the nearest registered target.
type Enemy struct {
	Speed        float32
	TurnSpeed    float32
	StopDistance float32
}

var EnemyComponent = NewComponent[Enemy]()

type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
