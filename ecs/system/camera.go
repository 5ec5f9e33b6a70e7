package system

import "github.com/go-gl/mathgl/mgl32"

// Camera is a fixed top-down view centred on the arena origin. World +Z points
// up the screen.
type Camera struct {
	PixelsPerUnit float64
	Width         float64
	Height        float64
}

func NewCamera(pixelsPerUnit, width, height float64) Camera {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return Camera{PixelsPerUnit: pixelsPerUnit, Width: width, Height: height}
}

// ToScreen maps a floor position to screen pixels.
func (c Camera) ToScreen(x, z float64) (float32, float32) {
	return float32(c.Width/2 + x*c.PixelsPerUnit), float32(c.Height/2 - z*c.PixelsPerUnit)
}

func (c Camera) Vec(v mgl32.Vec3) (float32, float32) {
	return c.ToScreen(float64(v.X()), float64(v.Z()))
}

// Scale converts a world length to pixels.
func (c Camera) Scale(length float64) float32 {
	return float32(length * c.PixelsPerUnit)
}
