package scene

import (
	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/internal/engine/lighting"
	"github.com/Faultbox/harbor-view/internal/harbor/vessel"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// GeometryHandle indexes Scene.Geometries.
type GeometryHandle int

// MaterialHandle indexes Scene.Materials.
type MaterialHandle int

// NoVessel marks nodes that do not ride a vessel.
const NoVessel = -1

// Material is a flat-shaded surface.
type Material struct {
	Color     math.Color
	Roughness float32
	Metalness float32
	// Emissive lights the surface regardless of the rig, in [0, 1].
	Emissive float32
}

// Node is one drawable record.
type Node struct {
	Name     string
	Kind     Kind
	Geometry GeometryHandle
	Material MaterialHandle
	// Transform is world space, or hull space when Vessel is set.
	Transform  math.Mat4
	CastShadow bool
	Vessel     int
}

// Label is a name drawn at a fixed point.
type Label struct {
	Text     string
	Position math.Vec3
}

// Vessel ties a trajectory to the nodes it carries.
type Vessel struct {
	Name       string
	Trajectory *vessel.Trajectory
	Nodes      []int
}

// Scene is the composed harbor. Geometry and materials are stored once and
// referenced by handle from the flat node list.
type Scene struct {
	Geometries  []*extrude.Solid
	Materials   []Material
	Nodes       []Node
	Vessels     []Vessel
	Labels      []Label
	Lights      lighting.Rig
	Environment Environment
	Water       WaterDefinition
	Camera      CameraDefinition
}

// Geometry returns the solid behind a handle.
func (s *Scene) Geometry(h GeometryHandle) *extrude.Solid {
	return s.Geometries[h]
}

// Material returns the material behind a handle.
func (s *Scene) Material(h MaterialHandle) Material {
	return s.Materials[h]
}

// NodesOfKind returns the indices of all nodes of a kind, in node order.
func (s *Scene) NodesOfKind(kind Kind) []int {
	var out []int
	for i, n := range s.Nodes {
		if n.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// WorldTransform returns a node's world transform given the current hull
// transform of every vessel, indexed like Scene.Vessels.
func (s *Scene) WorldTransform(i int, hulls []math.Mat4) math.Mat4 {
	n := s.Nodes[i]
	if n.Vessel == NoVessel || n.Vessel >= len(hulls) {
		return n.Transform
	}
	return hulls[n.Vessel].Mul(n.Transform)
}

// HullTransforms evaluates every vessel's hull transform at elapsed time t.
func (s *Scene) HullTransforms(t float64) []math.Mat4 {
	out := make([]math.Mat4, len(s.Vessels))
	for i, v := range s.Vessels {
		out[i] = vessel.Transform(v.Trajectory.At(t))
	}
	return out
}

// Bounds returns the world box of all nodes with vessels at their t=0
// pose.
func (s *Scene) Bounds() extrude.Bounds {
	hulls := s.HullTransforms(0)
	b := extrude.EmptyBounds()
	for i, n := range s.Nodes {
		b = b.Union(NodeBounds(s.Geometries[n.Geometry].Bounds, s.WorldTransform(i, hulls)))
	}
	return b
}

// NodeBounds transforms a local box and returns the world box around it.
func NodeBounds(local extrude.Bounds, m math.Mat4) extrude.Bounds {
	out := extrude.EmptyBounds()
	for c := 0; c < 8; c++ {
		p := [3]float32{local.Min[0], local.Min[1], local.Min[2]}
		if c&1 != 0 {
			p[0] = local.Max[0]
		}
		if c&2 != 0 {
			p[1] = local.Max[1]
		}
		if c&4 != 0 {
			p[2] = local.Max[2]
		}
		w := m.TransformPoint(p)
		out = out.Union(extrude.Bounds{Min: w, Max: w})
	}
	return out
}
