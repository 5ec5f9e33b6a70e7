package component

// PlayerStats holds base movement values plus multipliers applied by upgrades.
// Other systems mutate it at any time; the player controller only reads it.
type PlayerStats struct {
	BaseMoveSpeed      float32
	BaseRotationSpeed  float32
	MoveMultiplier     float32
	RotationMultiplier float32
}

func NewPlayerStats(moveSpeed, rotationSpeed float32) *PlayerStats {
	return &PlayerStats{
		BaseMoveSpeed:      moveSpeed,
		BaseRotationSpeed:  rotationSpeed,
		MoveMultiplier:     1,
		RotationMultiplier: 1,
	}
}

func (s *PlayerStats) MoveSpeed() float32 {
	if s == nil {
		return 0
	}
	return s.BaseMoveSpeed * s.MoveMultiplier
}

func (s *PlayerStats) RotationSpeed() float32 {
	if s == nil {
		return 0
	}
	return s.BaseRotationSpeed * s.RotationMultiplier
}

var PlayerStatsComponent = NewComponent[PlayerStats]()

// Experience counts kills toward the next upgrade level.
type Experience struct {
	Kills         int
	Level         int
	KillsPerLevel int
}

var ExperienceComponent = NewComponent[Experience]()
