package text2d

import "github.com/hajimehoshi/ebiten/v2"

// Filter is the interface for visual effects applied to a rendered image.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
}

// --- Kage shader sources ---
// Shaders use //kage:unit pixels. Ebitengine images are premultiplied, so the
// shader un-premultiplies before deciding and emits premultiplied output.

const alphaThresholdShaderSrc = `//kage:unit pixels
package main

var Cutoff float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a < Cutoff {
		return vec4(0)
	}
	return vec4(c.rgb/c.a, 1)
}
`

// --- Lazy shader compilation (no sync.Once, rendering is single-threaded) ---

var alphaThresholdShader *ebiten.Shader

func ensureAlphaThresholdShader() *ebiten.Shader {
	if alphaThresholdShader == nil {
		s, err := ebiten.NewShader([]byte(alphaThresholdShaderSrc))
		if err != nil {
			panic("text2d: failed to compile alpha threshold shader: " + err.Error())
		}
		alphaThresholdShader = s
	}
	return alphaThresholdShader
}

// --- AlphaThresholdFilter ---

// AlphaThresholdFilter snaps every pixel to fully opaque or fully transparent,
// removing anti-aliased edges. Used for text with Smoothing disabled.
type AlphaThresholdFilter struct {
	// Cutoff is the alpha at or above which a pixel is kept. 0.5 when zero.
	Cutoff   float64
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewAlphaThresholdFilter returns a filter with the default 0.5 cutoff.
func NewAlphaThresholdFilter() *AlphaThresholdFilter {
	return &AlphaThresholdFilter{
		Cutoff:   0.5,
		uniforms: make(map[string]any, 1),
	}
}

// alphaThreshold is the shared filter used by TextBlock rendering.
var alphaThreshold = NewAlphaThresholdFilter()

// cutoff returns the effective cutoff.
func (f *AlphaThresholdFilter) cutoff() float32 {
	if f.Cutoff <= 0 {
		return 0.5
	}
	return float32(f.Cutoff)
}

// Apply renders the thresholded src into dst.
func (f *AlphaThresholdFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureAlphaThresholdShader()
	if f.uniforms == nil {
		f.uniforms = make(map[string]any, 1)
	}
	f.uniforms["Cutoff"] = f.cutoff()
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}
