package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/internal/engine/layout"
	"github.com/Faultbox/harbor-view/internal/engine/lighting"
	"github.com/Faultbox/harbor-view/internal/harbor/vessel"
	"github.com/Faultbox/harbor-view/pkg/math"
)

func mustCompose(t *testing.T) *Scene {
	t.Helper()
	s, err := Compose(DefaultDefinitions())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return s
}

func TestComposeDefaultHarbor(t *testing.T) {
	s := mustCompose(t)
	defs := DefaultDefinitions()

	wantContainers := 0
	wantCranes := 0
	for _, y := range defs.Yards {
		for _, cfg := range y.Stacks {
			wantContainers += cfg.Count()
		}
		wantCranes += len(y.Cranes.Offsets)
	}

	tests := []struct {
		kind Kind
		want int
	}{
		{KindLandmass, 3},
		{KindBerth, 2},
		{KindBreakwater, 1},
		{KindContainer, wantContainers},
		{KindCraneMast, wantCranes},
		{KindCraneBoom, wantCranes},
		{KindLampPost, len(defs.Lamps[0].Offsets)},
		{KindLampHead, len(defs.Lamps[0].Offsets)},
		{KindHull, 2},
		{KindCabin, 2},
	}
	for _, tt := range tests {
		if got := len(s.NodesOfKind(tt.kind)); got != tt.want {
			t.Errorf("%s nodes = %d, want %d", tt.kind, got, tt.want)
		}
	}

	if len(defs.Yards) != 3 {
		t.Errorf("yards = %d, want 3", len(defs.Yards))
	}
	if len(s.Vessels) != 2 {
		t.Errorf("vessels = %d, want 2", len(s.Vessels))
	}
	if len(s.Lights.Points) != 2 || !s.Lights.Directional.CastShadows {
		t.Errorf("light rig = %+v", s.Lights)
	}
}

func TestComposeSharesGeometryAndMaterials(t *testing.T) {
	s := mustCompose(t)
	containers := s.NodesOfKind(KindContainer)
	box := s.Nodes[containers[0]].Geometry
	mats := make(map[MaterialHandle]bool)
	for _, i := range containers {
		if s.Nodes[i].Geometry != box {
			t.Fatalf("container %q does not share the unit box", s.Nodes[i].Name)
		}
		mats[s.Nodes[i].Material] = true
	}
	// One material per palette color.
	if len(mats) > 5 {
		t.Errorf("container materials = %d, want at most 5", len(mats))
	}
	for i, n := range s.Nodes {
		if int(n.Geometry) >= len(s.Geometries) || int(n.Material) >= len(s.Materials) {
			t.Fatalf("node %d has dangling handle", i)
		}
	}
}

func TestComposeYardAExample(t *testing.T) {
	s := mustCompose(t)
	var bounds []extrude.Bounds
	for _, i := range s.NodesOfKind(KindContainer) {
		n := s.Nodes[i]
		if len(n.Name) >= 6 && n.Name[:6] == "Yard A" {
			bounds = append(bounds, NodeBounds(s.Geometry(n.Geometry).Bounds, n.Transform))
		}
	}
	if len(bounds) != 45 {
		t.Fatalf("Yard A containers = %d, want 45", len(bounds))
	}
	b := extrude.EmptyBounds()
	for _, nb := range bounds {
		b = b.Union(nb)
	}
	if cx := (b.Min[0] + b.Max[0]) / 2; abs(cx-6) > 1e-4 {
		t.Errorf("yard center x = %v, want 6", cx)
	}
	if abs(b.Min[1]-0.4) > 1e-4 || abs(b.Max[1]-1.9) > 1e-4 {
		t.Errorf("yard height range = [%v, %v], want [0.4, 1.9]", b.Min[1], b.Max[1])
	}
}

func TestComposeLabels(t *testing.T) {
	s := mustCompose(t)
	defs := DefaultDefinitions()
	want := 0
	for _, lm := range defs.Landmasses {
		if lm.Label != nil {
			want++
		}
	}
	if len(s.Labels) != want {
		t.Errorf("labels = %d, want %d", len(s.Labels), want)
	}
}

func TestVesselNodesFollowHull(t *testing.T) {
	s := mustCompose(t)
	hulls := s.HullTransforms(12.5)
	for vi, v := range s.Vessels {
		pose := v.Trajectory.At(12.5)
		for _, ni := range v.Nodes {
			w := s.WorldTransform(ni, hulls)
			if got := w.Translation(); got.Distance(pose.Position) > 1e-4 {
				t.Errorf("vessel %d node %d at %v, want %v", vi, ni, got, pose.Position)
			}
		}
	}
}

func TestSceneBounds(t *testing.T) {
	s := mustCompose(t)
	b := s.Bounds()
	if b.Min[0] > -40 || b.Max[0] < 40 {
		t.Errorf("bounds x = [%v, %v], want to cover the terminals", b.Min[0], b.Max[0])
	}
	if b.Min[1] > 0 {
		t.Errorf("bounds min y = %v, vessels sit below 0", b.Min[1])
	}
}

func TestLandmassesAreValidOutlines(t *testing.T) {
	for _, lm := range DefaultDefinitions().Landmasses {
		if err := lm.Outline.Validate(); err != nil {
			t.Errorf("%s: %v", lm.Name, err)
		}
	}
}

func TestComposeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Definitions)
		want   error
	}{
		{
			"short outline",
			func(d *Definitions) { d.Landmasses[0].Outline = d.Landmasses[0].Outline[:2] },
			extrude.ErrTooFewPoints,
		},
		{
			"flat landmass",
			func(d *Definitions) { d.Landmasses[1].Height = 0 },
			extrude.ErrNonPositiveHeight,
		},
		{
			"duplicate name",
			func(d *Definitions) { d.Landmasses[1].Name = d.Landmasses[0].Name },
			ErrDuplicateName,
		},
		{
			"shiny beyond one",
			func(d *Definitions) { d.Landmasses[2].Finish = &Finish{Roughness: 0.5, Metalness: 2} },
			ErrInvalidFinish,
		},
		{
			"empty palette",
			func(d *Definitions) { d.Yards[0].Stacks[0].Palette = nil },
			layout.ErrEmptyPalette,
		},
		{
			"stopped vessel",
			func(d *Definitions) { d.Vessels[0].Lane.Speed = 0 },
			vessel.ErrInvalidParams,
		},
		{
			"too many lights",
			func(d *Definitions) {
				d.Lights.Points = make([]lighting.PointLight, lighting.MaxPointLights+1)
			},
			lighting.ErrTooManyLights,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := DefaultDefinitions()
			tt.modify(&defs)
			_, err := Compose(defs)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compose() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNodeBoundsTranslatedBox(t *testing.T) {
	local := extrude.UnitBox().Bounds
	b := NodeBounds(local, math.TRS(math.Vec3{X: 2, Y: 1, Z: -3}, 0, math.Vec3{X: 2, Y: 4, Z: 1}))
	want := extrude.Bounds{Min: [3]float32{1, -1, -3.5}, Max: [3]float32{3, 3, -2.5}}
	if b != want {
		t.Errorf("NodeBounds = %v, want %v", b, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
