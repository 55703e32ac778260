package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/internal/engine/layout"
	"github.com/Faultbox/harbor-view/internal/harbor/vessel"
	"github.com/Faultbox/harbor-view/internal/logger"
	"github.com/Faultbox/harbor-view/pkg/math"
)

var (
	// ErrDuplicateName is returned when two entities share a name.
	ErrDuplicateName = errors.New("duplicate entity name")
	// ErrInvalidFinish is returned for roughness or metalness outside [0, 1].
	ErrInvalidFinish = errors.New("finish values must be within [0, 1]")
	// ErrInvalidEntity is returned for structurally malformed definitions.
	ErrInvalidEntity = errors.New("invalid entity definition")
)

type composer struct {
	scene     *Scene
	box       GeometryHandle
	materials map[Material]MaterialHandle
	names     map[string]bool
}

// Compose builds the scene from definition tables. It fails only on
// malformed definitions, naming the offending entity.
func Compose(defs Definitions) (*Scene, error) {
	log := logger.Named("scene")

	c := &composer{
		scene: &Scene{
			Lights:      defs.Lights,
			Environment: defs.Environment,
			Water:       defs.Water,
			Camera:      defs.Camera,
		},
		materials: make(map[Material]MaterialHandle),
		names:     make(map[string]bool),
	}
	c.box = c.addGeometry(extrude.UnitBox())

	if err := defs.Lights.Validate(); err != nil {
		return nil, fmt.Errorf("lights: %w", err)
	}
	if err := defs.Camera.Constraint.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	for _, lm := range defs.Landmasses {
		if err := c.addLandmass(lm); err != nil {
			return nil, fmt.Errorf("landmass %q: %w", lm.Name, err)
		}
	}
	for _, y := range defs.Yards {
		if err := c.addYard(y); err != nil {
			return nil, fmt.Errorf("yard %q: %w", y.Name, err)
		}
	}
	for _, run := range defs.Lamps {
		if err := c.addLamps(run); err != nil {
			return nil, fmt.Errorf("lamps %q: %w", run.Name, err)
		}
	}
	for _, v := range defs.Vessels {
		if err := c.addVessel(v); err != nil {
			return nil, fmt.Errorf("vessel %q: %w", v.Name, err)
		}
	}

	s := c.scene
	log.Info("scene composed",
		zap.Int("nodes", len(s.Nodes)),
		zap.Int("geometries", len(s.Geometries)),
		zap.Int("materials", len(s.Materials)),
		zap.Int("vessels", len(s.Vessels)),
		zap.Int("labels", len(s.Labels)))
	return s, nil
}

func (c *composer) claim(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEntity)
	}
	if c.names[name] {
		return ErrDuplicateName
	}
	c.names[name] = true
	return nil
}

func (c *composer) addGeometry(s *extrude.Solid) GeometryHandle {
	c.scene.Geometries = append(c.scene.Geometries, s)
	return GeometryHandle(len(c.scene.Geometries) - 1)
}

// material returns the handle of an identical material, adding it first if
// needed.
func (c *composer) material(m Material) MaterialHandle {
	if h, ok := c.materials[m]; ok {
		return h
	}
	c.scene.Materials = append(c.scene.Materials, m)
	h := MaterialHandle(len(c.scene.Materials) - 1)
	c.materials[m] = h
	return h
}

func (c *composer) addNode(n Node) int {
	c.scene.Nodes = append(c.scene.Nodes, n)
	return len(c.scene.Nodes) - 1
}

func (c *composer) addLandmass(lm LandmassDefinition) error {
	if err := c.claim(lm.Name); err != nil {
		return err
	}
	switch lm.Kind {
	case KindLandmass, KindBerth, KindBreakwater:
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidEntity, lm.Kind)
	}

	finish := DefaultFinish
	if lm.Finish != nil {
		finish = *lm.Finish
	}
	if !inUnit(finish.Roughness) || !inUnit(finish.Metalness) {
		return fmt.Errorf("%w: %+v", ErrInvalidFinish, finish)
	}

	solid, err := extrude.Extrude(lm.Outline, lm.Height, lm.Elevation)
	if err != nil {
		return err
	}

	c.addNode(Node{
		Name:       lm.Name,
		Kind:       lm.Kind,
		Geometry:   c.addGeometry(solid),
		Material:   c.material(Material{Color: lm.Color, Roughness: finish.Roughness, Metalness: finish.Metalness}),
		Transform:  math.Identity(),
		CastShadow: true,
		Vessel:     NoVessel,
	})
	if lm.Label != nil {
		c.scene.Labels = append(c.scene.Labels, Label{Text: lm.Name, Position: *lm.Label})
	}
	return nil
}

func inUnit(x float32) bool {
	return x >= 0 && x <= 1
}

// addBox adds a unit-box node scaled to size and centered on pos.
func (c *composer) addBox(name string, kind Kind, pos, size math.Vec3, mat Material) int {
	return c.addNode(Node{
		Name:       name,
		Kind:       kind,
		Geometry:   c.box,
		Material:   c.material(mat),
		Transform:  math.TRS(pos, 0, size),
		CastShadow: true,
		Vessel:     NoVessel,
	})
}

func (c *composer) addYard(y YardDefinition) error {
	if err := c.claim(y.Name); err != nil {
		return err
	}
	if len(y.Stacks) == 0 {
		return fmt.Errorf("%w: no stacks", ErrInvalidEntity)
	}

	for si, cfg := range y.Stacks {
		placements, err := layout.Grid(cfg)
		if err != nil {
			return fmt.Errorf("stack %d: %w", si, err)
		}
		for _, p := range placements {
			name := fmt.Sprintf("%s/stack%d/c%d-r%d-l%d", y.Name, si, p.Column, p.Row, p.Level)
			c.addBox(name, KindContainer, p.Position, p.Size, Material{Color: p.Color, Roughness: 0.6, Metalness: 0.2})
		}
	}

	cr := y.Cranes
	masts, err := layout.PlaceAlong(cr.Origin, cr.Offsets, layout.Fixture{Size: cr.Mast, Color: cr.Color})
	if err != nil {
		return fmt.Errorf("cranes: %w", err)
	}
	if cr.Boom.X <= 0 || cr.Boom.Y <= 0 || cr.Boom.Z <= 0 {
		return fmt.Errorf("cranes: %w: boom %v", layout.ErrInvalidUnit, cr.Boom)
	}
	steel := Material{Color: cr.Color, Roughness: 0.4, Metalness: 0.6}
	for _, m := range masts {
		c.addBox(fmt.Sprintf("%s/crane%d/mast", y.Name, m.Index), KindCraneMast, m.Position, m.Size, steel)

		top := m.Position.Y + m.Size.Y/2
		boom := math.Vec3{X: m.Position.X, Y: top - cr.Boom.Y/2, Z: m.Position.Z + cr.Reach}
		c.addBox(fmt.Sprintf("%s/crane%d/boom", y.Name, m.Index), KindCraneBoom, boom, cr.Boom, steel)
	}
	return nil
}

func (c *composer) addLamps(run LampRun) error {
	if err := c.claim(run.Name); err != nil {
		return err
	}
	posts, err := layout.PlaceAlong(run.Origin, run.Offsets, run.Post)
	if err != nil {
		return err
	}
	for _, p := range posts {
		c.addBox(fmt.Sprintf("%s/%d/post", run.Name, p.Index), KindLampPost, p.Position, p.Size,
			Material{Color: p.Color, Roughness: 0.5, Metalness: 0.5})

		headOrigin := math.Vec3{X: p.Position.X, Y: p.Position.Y + p.Size.Y/2, Z: p.Position.Z}
		heads, err := layout.PlaceAlong(headOrigin, []float32{0}, run.Head)
		if err != nil {
			return fmt.Errorf("lamp %d head: %w", p.Index, err)
		}
		h := heads[0]
		id := c.addBox(fmt.Sprintf("%s/%d/head", run.Name, p.Index), KindLampHead, h.Position, h.Size,
			Material{Color: h.Color, Roughness: 0.3, Emissive: 1})
		c.scene.Nodes[id].CastShadow = false
	}
	return nil
}

func (c *composer) addVessel(v VesselDefinition) error {
	if err := c.claim(v.Name); err != nil {
		return err
	}
	tr, err := vessel.New(v.Lane)
	if err != nil {
		return err
	}
	hull, err := extrude.Extrude(v.Hull, v.HullHeight, 0)
	if err != nil {
		return fmt.Errorf("hull: %w", err)
	}
	cabin, err := extrude.Extrude(v.Cabin, v.CabinHeight, v.HullHeight)
	if err != nil {
		return fmt.Errorf("cabin: %w", err)
	}

	idx := len(c.scene.Vessels)
	hullNode := c.addNode(Node{
		Name:       v.Name + "/hull",
		Kind:       KindHull,
		Geometry:   c.addGeometry(hull),
		Material:   c.material(Material{Color: v.HullColor, Roughness: 0.5, Metalness: 0.3}),
		Transform:  math.Identity(),
		CastShadow: true,
		Vessel:     idx,
	})
	cabinNode := c.addNode(Node{
		Name:       v.Name + "/cabin",
		Kind:       KindCabin,
		Geometry:   c.addGeometry(cabin),
		Material:   c.material(Material{Color: v.CabinColor, Roughness: 0.7}),
		Transform:  math.Identity(),
		CastShadow: true,
		Vessel:     idx,
	})
	c.scene.Vessels = append(c.scene.Vessels, Vessel{
		Name:       v.Name,
		Trajectory: tr,
		Nodes:      []int{hullNode, cabinNode},
	})
	return nil
}
