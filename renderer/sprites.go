package renderer

import (
	_ "embed"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mosaic/systems"
)

//go:embed shaders/particle.fs
var particleFS string

// ErrShaderInvalid is returned when the particle shader fails to compile or link.
var ErrShaderInvalid = errors.New("renderer: particle shader failed to compile")

// SpriteRenderer draws each particle as a quad through a soft-disk fragment
// shader. Quads go through raylib's render batch, so a frame costs a handful
// of draw calls rather than one per particle.
type SpriteRenderer struct {
	shader     rl.Shader
	texture    rl.Texture2D
	background rl.Color
}

// NewSpriteRenderer compiles the particle shader. Must be called after the
// raylib window is created.
func NewSpriteRenderer(bg rl.Color) (*SpriteRenderer, error) {
	shader := rl.LoadShaderFromMemory("", particleFS)
	if !rl.IsShaderValid(shader) {
		return nil, ErrShaderInvalid
	}

	// 1x1 white texel; the shader derives coverage from texture coordinates.
	img := rl.GenImageColor(1, 1, rl.White)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &SpriteRenderer{
		shader:     shader,
		texture:    texture,
		background: bg,
	}, nil
}

// DrawBatch clears the frame and draws every particle.
func (r *SpriteRenderer) DrawBatch(b *systems.Batch) {
	rl.ClearBackground(r.background)

	size := b.Radius * 2
	src := rl.NewRectangle(0, 0, 1, 1)
	origin := rl.NewVector2(b.Radius, b.Radius)

	rl.BeginBlendMode(rl.BlendAlpha)
	rl.BeginShaderMode(r.shader)
	for i := 0; i < b.Len(); i++ {
		x, y, tint := b.At(i)
		if tint.Transparent() {
			continue
		}
		r8, g8, b8, a8 := tint.RGBA8()
		dst := rl.NewRectangle(x, y, size, size)
		rl.DrawTexturePro(r.texture, src, dst, origin, 0, rl.NewColor(r8, g8, b8, a8))
	}
	rl.EndShaderMode()
	rl.EndBlendMode()
}

// Unload frees the shader and texture.
func (r *SpriteRenderer) Unload() {
	rl.UnloadShader(r.shader)
	rl.UnloadTexture(r.texture)
}
