package component

// Position is an entity's location in world units.
type Position struct {
	X float64
	Y float64
}

// Velocity is a per-second displacement applied by MotionSystem.
type Velocity struct {
	DX float64
	DY float64
}
