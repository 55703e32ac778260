// Package renderer draws a composed harbor scene with OpenGL 4.1: a shadow
// pass for the directional light, then sky, solids, water, labels and the
// optional bounds overlay into an offscreen framebuffer that is blitted to
// the window.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/internal/engine/framebuffer"
	"github.com/Faultbox/harbor-view/internal/engine/lighting"
	"github.com/Faultbox/harbor-view/internal/engine/shadow"
	"github.com/Faultbox/harbor-view/internal/harbor"
	"github.com/Faultbox/harbor-view/internal/harbor/frame"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/internal/logger"
	"github.com/Faultbox/harbor-view/pkg/math"
)

var _ harbor.Renderer = (*Renderer)(nil)

// ErrNoScene is returned when rendering before Load.
var ErrNoScene = errors.New("no scene loaded")

// shadowMargin pads the shadow frustum around the swept scene box.
const shadowMargin = 2

// Config holds renderer configuration.
type Config struct {
	Width            int
	Height           int
	Shadows          bool
	ShadowResolution int
	Labels           bool
	ShowBounds       bool
	WaterSegments    int
}

// Renderer handles all OpenGL rendering of the harbor.
type Renderer struct {
	config Config
	log    *zap.Logger

	framebuffer *framebuffer.Framebuffer

	solids  *solidRenderer
	shadows *shadowRenderer
	water   *waterRenderer
	sky     *skyRenderer
	labels  *labelRenderer
	bounds  *boundsRenderer

	scene         *scene.Scene
	meshes        []*mesh
	points        *lighting.PointLightBuffer
	lightViewProj math.Mat4
	worlds        []math.Mat4
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init() error {
	var err error
	if r.framebuffer, err = framebuffer.New(int32(r.config.Width), int32(r.config.Height)); err != nil {
		return err
	}
	if r.solids, err = newSolidRenderer(); err != nil {
		return err
	}
	if r.water, err = newWaterRenderer(); err != nil {
		return err
	}
	if r.sky, err = newSkyRenderer(); err != nil {
		return err
	}
	if r.labels, err = newLabelRenderer(); err != nil {
		return err
	}
	if r.bounds, err = newBoundsRenderer(); err != nil {
		return err
	}
	if r.config.Shadows {
		r.shadows, err = newShadowRenderer(r.config.ShadowResolution)
		if err != nil {
			// The harbor still renders unshadowed.
			r.log.Warn("shadows disabled", zap.Error(err))
			r.shadows = nil
		} else if got := r.shadows.shadows.Resolution(); int(got) != r.config.ShadowResolution {
			r.log.Info("shadow resolution adjusted",
				zap.Int("configured", r.config.ShadowResolution), zap.Int32("using", got))
		}
	}
	return nil
}

// Load uploads the scene's geometry, water grid and labels.
func (r *Renderer) Load(s *scene.Scene) error {
	if r.scene != nil {
		r.Release()
	}

	r.meshes = make([]*mesh, len(s.Geometries))
	for i, g := range s.Geometries {
		r.meshes[i] = uploadSolid(g)
	}
	if err := r.water.load(s.Water, r.config.WaterSegments); err != nil {
		r.Release()
		return fmt.Errorf("water: %w", err)
	}
	if r.config.Labels {
		r.labels.load(s.Labels)
	}

	r.points = s.Lights.Buffer()
	r.lightViewProj = shadow.DirectionalLightMatrix(
		s.Lights.Directional.Direction(),
		shadow.FromBounds(SweptBounds(s), shadowMargin),
	)
	r.worlds = make([]math.Mat4, len(s.Nodes))
	r.scene = s

	r.log.Info("scene uploaded",
		zap.Int("geometries", len(r.meshes)),
		zap.Int("nodes", len(s.Nodes)),
		zap.Int("labels", len(r.labels.billboards)),
		zap.Bool("shadows", r.shadowsEnabled()),
	)
	return nil
}

func (r *Renderer) shadowsEnabled() bool {
	return r.shadows != nil && r.scene != nil && r.scene.Lights.Directional.CastShadows
}

// Render draws one frame and presents it to the default framebuffer.
func (r *Renderer) Render(view harbor.View, rs frame.RenderState) error {
	s := r.scene
	if s == nil {
		return ErrNoScene
	}

	hulls := rs.HullTransforms()
	if len(hulls) != len(s.Vessels) {
		hulls = s.HullTransforms(rs.Elapsed)
	}
	for i := range s.Nodes {
		r.worlds[i] = s.WorldTransform(i, hulls)
	}

	proj := Projection(s.Camera, r.config.Width, r.config.Height)
	ps := passState{
		viewProj:      proj.Mul(view.Matrix),
		cameraPos:     view.Position,
		lightViewProj: r.lightViewProj,
		shadows:       r.shadowsEnabled(),
		worlds:        r.worlds,
	}

	if ps.shadows {
		r.shadows.render(ps, s, r.meshes)
	}

	restore := r.framebuffer.BindWithViewport()
	bg := skyClear(s.Environment)
	r.framebuffer.Clear(bg.R, bg.G, bg.B, 1)

	r.sky.render(ps, s.Environment)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	var shadowMap *shadow.Map
	if ps.shadows {
		shadowMap = r.shadows.shadows
	}
	r.solids.render(ps, s, r.meshes, r.points, shadowMap)
	r.water.render(ps, rs.Water, s.Environment)
	r.labels.render(ps, view.Matrix)
	if r.config.ShowBounds {
		r.bounds.render(ps, s)
	}
	restore()

	r.framebuffer.BlitToScreen(int32(r.config.Width), int32(r.config.Height))

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// Resize updates the drawable size.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width, r.config.Height = width, height
	r.framebuffer.Resize(int32(width), int32(height))
	r.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// Capture reads the last rendered frame.
func (r *Renderer) Capture() *image.RGBA {
	return r.framebuffer.ReadImage()
}

// Release frees everything Load uploaded. The renderer can load again.
func (r *Renderer) Release() {
	for _, m := range r.meshes {
		m.destroy()
	}
	r.meshes = nil
	r.water.unload()
	r.labels.unload()
	r.scene = nil
	r.worlds = nil
}

// Destroy releases all OpenGL resources, including the programs.
func (r *Renderer) Destroy() {
	if r.scene != nil {
		r.Release()
	}
	if r.bounds != nil {
		r.bounds.destroy()
	}
	if r.labels != nil {
		r.labels.destroy()
	}
	if r.sky != nil {
		r.sky.destroy()
	}
	if r.water != nil {
		r.water.destroy()
	}
	if r.shadows != nil {
		r.shadows.destroy()
	}
	if r.solids != nil {
		r.solids.destroy()
	}
	if r.framebuffer != nil {
		r.framebuffer.Destroy()
	}
}

// Projection returns the camera's perspective for a width x height
// drawable.
func Projection(c scene.CameraDefinition, width, height int) math.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(c.FOV*math32.Pi/180, aspect, c.Near, c.Far)
}

// cameraBasis returns the world-space right and up axes of a view matrix.
func cameraBasis(view math.Mat4) (right, up math.Vec3) {
	right = math.Vec3{X: view[0], Y: view[4], Z: view[8]}
	up = math.Vec3{X: view[1], Y: view[5], Z: view[9]}
	return right, up
}

// SweptBounds returns the world box of the static nodes together with the
// full lane of every vessel, so that the light frustum never has to move.
func SweptBounds(s *scene.Scene) extrude.Bounds {
	b := extrude.EmptyBounds()
	onVessel := make(map[int]bool)
	for _, v := range s.Vessels {
		for _, n := range v.Nodes {
			onVessel[n] = true
		}
	}
	for i, n := range s.Nodes {
		if onVessel[i] {
			continue
		}
		b = b.Union(scene.NodeBounds(s.Geometry(n.Geometry).Bounds, n.Transform))
	}

	for _, v := range s.Vessels {
		hull := extrude.EmptyBounds()
		for _, i := range v.Nodes {
			n := s.Nodes[i]
			hull = hull.Union(scene.NodeBounds(s.Geometry(n.Geometry).Bounds, n.Transform))
		}
		if len(v.Nodes) == 0 {
			continue
		}
		// Any heading: the hull can reach its farthest corner in every
		// horizontal direction.
		reach := math32.Hypot(
			max(math32.Abs(hull.Min[0]), math32.Abs(hull.Max[0])),
			max(math32.Abs(hull.Min[2]), math32.Abs(hull.Max[2])),
		)
		p := v.Trajectory.Params()
		rx := p.Radius + reach
		rz := p.Radius*p.RadiusYScale + reach
		y := p.Center.Y + p.Height
		b = b.Union(extrude.Bounds{
			Min: [3]float32{p.Center.X - rx, y + hull.Min[1], p.Center.Z - rz},
			Max: [3]float32{p.Center.X + rx, y + hull.Max[1], p.Center.Z + rz},
		})
	}
	return b
}
