package scene

import (
	"github.com/Faultbox/harbor-view/internal/engine/camera"
	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/internal/engine/layout"
	"github.com/Faultbox/harbor-view/internal/engine/lighting"
	"github.com/Faultbox/harbor-view/internal/engine/water"
	"github.com/Faultbox/harbor-view/internal/harbor/vessel"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// WaterLevel is the rest height of the harbor water. Wave crests stay
// below the lowest quay top.
const WaterLevel = -0.9

var containerPalette = []math.Color{
	math.Hex(0xc0392b),
	math.Hex(0x2e86c1),
	math.Hex(0xf39c12),
	math.Hex(0x27ae60),
	math.Hex(0xecf0f1),
}

func v3(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

func label(x, y, z float32) *math.Vec3 {
	p := v3(x, y, z)
	return &p
}

func outline(pts ...float32) extrude.Outline {
	o := make(extrude.Outline, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		o = append(o, math.Vec2{X: pts[i], Y: pts[i+1]})
	}
	return o
}

// DefaultDefinitions returns the harbor. Every call returns fresh slices.
func DefaultDefinitions() Definitions {
	concrete := &Finish{Roughness: 0.95, Metalness: 0}

	return Definitions{
		Landmasses: []LandmassDefinition{
			{
				Name: "North Terminal",
				Kind: KindLandmass,
				Outline: outline(
					-40, -30, 40, -30, 40, -12, 18, -12,
					18, -2, -6, -2, -6, -12, -40, -12,
				),
				Height: 0.4,
				Color:  math.Hex(0x9aa5a0),
				Label:  label(-20, 2, -26),
				Finish: concrete,
			},
			{
				Name:    "West Quay",
				Kind:    KindLandmass,
				Outline: extrude.Rect(-34, 1, 12, 26),
				Height:  0.5,
				Color:   math.Hex(0xa8a08c),
				Label:   label(-34, 2, 4),
			},
			{
				Name:    "East Point",
				Kind:    KindLandmass,
				Outline: outline(26, -12, 40, -12, 40, 10, 32, 16, 26, 8),
				Height:  0.6,
				Color:   math.Hex(0x8c9a86),
				Label:   label(34, 2.2, 2),
			},
			{
				Name:    "Berth 1",
				Kind:    KindBerth,
				Outline: extrude.Rect(6, -1, 24, 2),
				Height:  0.45,
				Color:   math.Hex(0x5d6d7e),
				Label:   label(6, 1.6, 1),
				Finish:  concrete,
			},
			{
				Name:    "Berth 2",
				Kind:    KindBerth,
				Outline: extrude.Rect(-27, 1, 2, 20),
				Height:  0.45,
				Color:   math.Hex(0x5d6d7e),
				Finish:  concrete,
			},
			{
				Name:    "Breakwater",
				Kind:    KindBreakwater,
				Outline: extrude.Rect(6, 26, 44, 2.4),
				Height:  0.8,
				Color:   math.Hex(0x6e6658),
				Label:   label(6, 2.4, 26),
				Finish:  &Finish{Roughness: 1, Metalness: 0},
			},
		},

		Yards: []YardDefinition{
			{
				Name: "Yard A",
				Stacks: []layout.Config{{
					Anchor: v3(6, 0.4, -5), Columns: 5, Rows: 3, Levels: 3,
					Unit: v3(1.2, 0.5, 0.5), Palette: containerPalette,
				}},
				Cranes: CraneRow{
					Origin: v3(0, 0.45, -1), Offsets: []float32{0, 6, 12},
					Mast: v3(0.4, 4, 0.4), Boom: v3(0.3, 0.3, 6), Reach: 2,
					Color: math.Hex(0xf1c40f),
				},
			},
			{
				Name: "Yard B",
				Stacks: []layout.Config{
					{
						Anchor: v3(-22, 0.4, -21), Columns: 6, Rows: 4, Levels: 2,
						Unit: v3(1.2, 0.5, 0.5), Gap: 0.15, Palette: containerPalette,
					},
					{
						Anchor: v3(-10, 0.4, -21), Columns: 4, Rows: 4, Levels: 3,
						Unit: v3(1.2, 0.5, 0.5), Gap: 0.15, Palette: containerPalette[1:],
					},
				},
				Cranes: CraneRow{
					Origin: v3(-34, 0.5, 10), Offsets: []float32{0, 4},
					Mast: v3(0.4, 3.5, 0.4), Boom: v3(0.3, 0.3, 5), Reach: 1.5,
					Color: math.Hex(0xe67e22),
				},
			},
			{
				Name: "Yard C",
				Stacks: []layout.Config{{
					Anchor: v3(33, 0.6, -2), Columns: 3, Rows: 4, Levels: 4,
					Unit: v3(1.2, 0.5, 0.5), Pitch: math.Vec2{X: 1.5, Y: 0.7},
					Palette: containerPalette,
				}},
				Cranes: CraneRow{
					Origin: v3(30, 0.6, 9), Offsets: []float32{0, 4},
					Mast: v3(0.4, 4.5, 0.4), Boom: v3(0.3, 0.3, 6), Reach: 2.5,
					Color: math.Hex(0xf1c40f),
				},
			},
		},

		Lamps: []LampRun{{
			Name:    "Breakwater lamps",
			Origin:  v3(-14, 0.8, 26),
			Offsets: []float32{0, 6, 12, 18, 24, 30, 36},
			Post:    layout.Fixture{Size: v3(0.15, 1.4, 0.15), Color: math.Hex(0x2c3e50)},
			Head:    layout.Fixture{Size: v3(0.35, 0.25, 0.35), Color: math.Hex(0xffe7a3)},
		}},

		Vessels: []VesselDefinition{
			{
				Name:        "Inbound feeder",
				Hull:        outline(-3, -0.8, 2, -0.8, 3.2, 0, 2, 0.8, -3, 0.8),
				HullHeight:  0.9,
				HullColor:   math.Hex(0x1f3a5f),
				Cabin:       extrude.Rect(-2, 0, 1.4, 1.2),
				CabinHeight: 0.8,
				CabinColor:  math.Hex(0xf4f6f7),
				Lane: vessel.Params{
					Center: v3(0, WaterLevel, 12), Radius: 16, RadiusYScale: 0.35,
					Speed: 0.025, Phase: 0, Height: 0.3,
				},
			},
			{
				Name:        "Outbound tanker",
				Hull:        outline(-3.5, -0.9, 2.4, -0.9, 3.6, 0, 2.4, 0.9, -3.5, 0.9),
				HullHeight:  1,
				HullColor:   math.Hex(0x7b241c),
				Cabin:       extrude.Rect(-2.6, 0, 1.2, 1.4),
				CabinHeight: 1,
				CabinColor:  math.Hex(0xfdfefe),
				Lane: vessel.Params{
					Center: v3(0, WaterLevel, 12), Radius: 22, RadiusYScale: 0.35,
					Speed: 0.018, Phase: 0.42, Height: 0.3,
				},
			},
		},

		Lights: lighting.Rig{
			Ambient: lighting.Ambient{Color: math.Hex(0xbfd8ff), Intensity: 0.45},
			Directional: lighting.Directional{
				Position:    math.Vec3FromArray(lighting.SunDirection(35, 50)).Scale(60),
				Target:      v3(0, 0, 0),
				Color:       math.Hex(0xfff1d6),
				Intensity:   1.1,
				CastShadows: true,
			},
			Points: []lighting.PointLight{
				lighting.NewPointLight(v3(28, 2.5, 26), math.Hex(0xffb347), 18, 1.5),
				lighting.NewPointLight(v3(6, 5, -3), math.Hex(0xcfe8ff), 22, 1.2),
			},
		},

		Environment: Environment{
			SkyTop:     math.Hex(0x0d2b45),
			SkyHorizon: math.Hex(0x8fb8d8),
			FogColor:   math.Hex(0x8fb8d8),
			FogNear:    60,
			FogFar:     160,
		},

		Water: WaterDefinition{
			Size:     220,
			Level:    WaterLevel,
			Uniforms: water.DefaultUniforms(),
		},

		Camera: CameraDefinition{
			Constraint: camera.Constraint{
				MinPolar:        0.35,
				MaxPolar:        1.35,
				MinDistance:     25,
				MaxDistance:     110,
				Target:          v3(0, 0, 0),
				PanningDisabled: true,
			},
			Initial: camera.Pose{Polar: 0.95, Azimuth: 0.5, Distance: 70},
			FOV:     45,
			Near:    0.5,
			Far:     400,
		},
	}
}
