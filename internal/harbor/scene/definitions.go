// Package scene holds the harbor's static definition tables and composes
// them into a flat, render-ready scene.
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

// Kind classifies scene nodes.
type Kind string

const (
	KindLandmass   Kind = "landmass"
	KindBerth      Kind = "berth"
	KindBreakwater Kind = "breakwater"
	KindContainer  Kind = "container"
	KindCraneMast  Kind = "crane_mast"
	KindCraneBoom  Kind = "crane_boom"
	KindLampPost   Kind = "lamp_post"
	KindLampHead   Kind = "lamp_head"
	KindHull       Kind = "hull"
	KindCabin      Kind = "cabin"
)

// Finish is an optional surface finish. Both values are in [0, 1].
type Finish struct {
	Roughness float32
	Metalness float32
}

// DefaultFinish is used when a definition leaves Finish nil.
var DefaultFinish = Finish{Roughness: 0.85, Metalness: 0}

// LandmassDefinition describes one extruded landform, berth or breakwater.
type LandmassDefinition struct {
	Name      string
	Kind      Kind
	Outline   extrude.Outline
	Height    float32
	Elevation float32
	Color     math.Color
	// Label is where the name is drawn, if anywhere.
	Label  *math.Vec3
	Finish *Finish
}

// CraneRow is a run of cranes along world X. Each crane is a mast with a
// boom reaching toward +Z from the mast top.
type CraneRow struct {
	Origin  math.Vec3
	Offsets []float32
	Mast    math.Vec3
	Boom    math.Vec3
	// Reach is how far the boom center sits in front of the mast.
	Reach float32
	Color math.Color
}

// YardDefinition is a container yard: stacks plus the cranes serving them.
type YardDefinition struct {
	Name   string
	Stacks []layout.Config
	Cranes CraneRow
}

// LampRun is a sequence of lamps along world X.
type LampRun struct {
	Name    string
	Origin  math.Vec3
	Offsets []float32
	Post    layout.Fixture
	Head    layout.Fixture
}

// VesselDefinition is a hull with a superstructure, both extruded, moving
// along a lane. Outlines are in hull space with the bow along +X.
type VesselDefinition struct {
	Name        string
	Hull        extrude.Outline
	HullHeight  float32
	HullColor   math.Color
	Cabin       extrude.Outline
	CabinHeight float32
	CabinColor  math.Color
	Lane        vessel.Params
}

// Environment is the background: a vertical sky gradient and linear fog.
type Environment struct {
	SkyTop     math.Color
	SkyHorizon math.Color
	FogColor   math.Color
	FogNear    float32
	FogFar     float32
}

// WaterDefinition places the water surface.
type WaterDefinition struct {
	Size     float32
	Level    float32
	Uniforms water.Uniforms
}

// CameraDefinition is the camera rig setup.
type CameraDefinition struct {
	Constraint camera.Constraint
	Initial    camera.Pose
	FOV        float32 // vertical, degrees
	Near, Far  float32
}

// Definitions is the complete declarative description of the harbor.
type Definitions struct {
	Landmasses  []LandmassDefinition
	Yards       []YardDefinition
	Lamps       []LampRun
	Vessels     []VesselDefinition
	Lights      lighting.Rig
	Environment Environment
	Water       WaterDefinition
	Camera      CameraDefinition
}
