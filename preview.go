package voxtrace

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/chewxy/math32"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const ambient = 0.15

// Preview renders a scene with primary rays, one directional light and
// shadow rays. Glass between a surface and the light tints the light.
type Preview struct {
	Scene  *Scene
	Camera *Camera

	// LightDir points towards the light.
	LightDir mgl32.Vec3
	Sky      mgl32.Vec3
	// Label draws a line of frame statistics in the top left corner.
	Label bool

	Width  int
	Height int

	pool pond.Pool
}

func NewPreview(scene *Scene, camera *Camera, width, height int) *Preview {
	return &Preview{
		Scene:    scene,
		Camera:   camera,
		LightDir: mgl32.Vec3{0.4, 1, 0.3}.Normalize(),
		Sky:      mgl32.Vec3{0.55, 0.7, 0.9},
		Width:    width,
		Height:   height,
		pool:     pond.NewPool(scene.Config.Workers),
	}
}

// Close stops the tile workers.
func (p *Preview) Close() {
	p.pool.StopAndWait()
}

// Render traces one frame in TileSize x TileSize tiles and returns it
// stretched by Stretch. It stops early when ctx is cancelled.
func (p *Preview) Render(ctx context.Context) (*image.RGBA, error) {
	cfg := p.Scene.Config
	frame := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))

	prof := p.Scene.Profiler
	prof.BeginScope("trace")
	defer prof.EndScope("trace")
	start := time.Now()

	group := p.pool.NewGroup()
	for ty := 0; ty < p.Height; ty += cfg.TileSize {
		for tx := 0; tx < p.Width; tx += cfg.TileSize {
			tile := image.Rect(tx, ty, min(tx+cfg.TileSize, p.Width), min(ty+cfg.TileSize, p.Height))
			group.Submit(func() {
				if ctx.Err() != nil {
					return
				}
				p.renderTile(frame, tile)
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("render tiles: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := frame
	if cfg.Stretch > 1 {
		out = image.NewRGBA(image.Rect(0, 0, p.Width*cfg.Stretch, p.Height*cfg.Stretch))
		draw.NearestNeighbor.Scale(out, out.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	}
	if p.Label {
		p.drawLabel(out, fmt.Sprintf("%dx%d %d objects %s", p.Width, p.Height, p.Scene.Len(), time.Since(start).Round(time.Millisecond)))
	}

	p.Scene.Logger().Debugf("rendered %dx%d frame in %s", p.Width, p.Height, time.Since(start))
	return out, nil
}

func (p *Preview) renderTile(frame *image.RGBA, tile image.Rectangle) {
	var rays, hits, shadowed int
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			c, hit, inShadow := p.Shade(x, y)
			frame.SetRGBA(x, y, c)
			rays++
			if hit {
				hits++
			}
			if inShadow {
				shadowed++
			}
		}
	}

	prof := p.Scene.Profiler
	prof.AddCount("rays", rays)
	prof.AddCount("hits", hits)
	prof.AddCount("occluded", shadowed)
}

// Shade traces pixel (x, y) and returns its color, whether the primary ray
// hit something and whether the hit point is in shadow.
func (p *Preview) Shade(x, y int) (color.RGBA, bool, bool) {
	dir := p.Camera.Direction(x, y, p.Width, p.Height)
	ray := p.Scene.NewRay(p.Camera.Position, dir)
	if !p.Scene.FindNearest(&ray) {
		// darker towards the horizon
		return toRGBA(p.Sky.Mul(0.6 + 0.4*math32.Max(0, dir.Y()))), false, false
	}

	n := ray.Normal
	if n.Len() > 0 {
		n = n.Normalize()
	}
	if n.Dot(dir) > 0 {
		n = n.Mul(-1)
	}

	light := mgl32.Vec3{1, 1, 1}
	inShadow := false
	ndl := n.Dot(p.LightDir)
	if ndl > 0 {
		origin := ray.IntersectionPoint().Add(n.Mul(p.Scene.Epsilon()))
		shadow := p.Scene.NewShadowRay(origin, p.LightDir, core.TMax, ray.Hit)
		var tint core.Tint
		if p.Scene.IsOccludedTint(&shadow, &tint) {
			inShadow = true
			ndl = 0
		} else if tint.Distance > 0 {
			light = tintLight(tint)
		}
	} else {
		ndl = 0
	}

	albedo := ray.Albedo()
	shade := light.Mul(ndl).Add(mgl32.Vec3{ambient, ambient, ambient})
	return toRGBA(mgl32.Vec3{albedo[0] * shade[0], albedo[1] * shade[1], albedo[2] * shade[2]}), true, inShadow
}

// tintLight fades white light towards the glass color with the distance
// travelled inside it.
func tintLight(tint core.Tint) mgl32.Vec3 {
	glass := core.Albedo(tint.Payload)
	f := math32.Exp(-0.25 * tint.Distance)
	white := mgl32.Vec3{1, 1, 1}
	return white.Mul(f).Add(glass.Mul(1 - f))
}

func toRGBA(c mgl32.Vec3) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 255}
}

func (p *Preview) drawLabel(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(4, face.Metrics().Ascent.Ceil()+2),
	}
	d.DrawString(text)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
