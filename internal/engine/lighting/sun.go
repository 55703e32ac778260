package lighting

import "math"

// SunDirection converts an azimuth around +Y and an elevation above the
// horizon, both in degrees, into a unit vector pointing toward the sun.
func SunDirection(azimuth, elevation float32) [3]float32 {
	azRad := float64(azimuth) * math.Pi / 180.0
	elRad := float64(elevation) * math.Pi / 180.0

	x := float32(math.Cos(elRad) * math.Sin(azRad))
	y := float32(math.Sin(elRad))
	z := float32(math.Cos(elRad) * math.Cos(azRad))

	return [3]float32{x, y, z}
}
