package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]()
