package text2d

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content   string
	Font      Font
	Justify   Justify
	LineBreak LineBreak
	Color     Color

	// Bounds, when set, constrains layout to a box: lines wrap at Bounds.X
	// and the block is anchored as if it were exactly Bounds in size.
	Bounds *Vec2

	// Smoothing false renders glyphs with hard, unblended edges.
	Smoothing bool

	// Filters run over the rasterised block in order, after the hard-edge
	// pass when Smoothing is off. Call Invalidate after changing them.
	Filters []Filter

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine

	// Rendered TTF image, rebuilt after a layout change.
	image      *ebiten.Image
	imageX     float64 // block-space X of the image's left edge
	imageDirty bool
}

// textLine stores one laid-out line and its horizontal offset.
type textLine struct {
	text  string
	x     float64
	width float64
}

// Invalidate forces a layout and image rebuild on the next frame. Call after
// changing any exported field.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Size returns the block's layout size: Bounds when set, otherwise the
// measured extent of the laid-out lines.
func (tb *TextBlock) Size() Vec2 {
	tb.layout()
	if tb.Bounds != nil {
		return *tb.Bounds
	}
	return Vec2{tb.measuredW, tb.measuredH}
}

// Lines returns the laid-out line strings after wrapping.
func (tb *TextBlock) Lines() []string {
	lines := tb.layout()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}

// layout recomputes lines if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.imageDirty = true
	tb.lines = tb.lines[:0]

	if tb.Font == nil {
		tb.measuredW = 0
		tb.measuredH = 0
		return tb.lines
	}

	var wrapWidth float64
	if tb.Bounds != nil {
		wrapWidth = tb.Bounds.X
	}

	var maxW float64
	for _, s := range wrapLines(tb.Content, tb.Font, wrapWidth, tb.LineBreak) {
		w, _ := tb.Font.MeasureString(s)
		if w > maxW {
			maxW = w
		}
		tb.lines = append(tb.lines, textLine{text: s, width: w})
	}

	// Justify within the box width when bounded, else within the widest line.
	alignW := maxW
	if tb.Bounds != nil {
		alignW = tb.Bounds.X
	}
	for i := range tb.lines {
		line := &tb.lines[i]
		switch tb.Justify {
		case JustifyLeft:
			line.x = 0
		case JustifyCenter:
			line.x = (alignW - line.width) / 2
		case JustifyRight:
			line.x = alignW - line.width
		}
	}

	tb.measuredW = maxW
	tb.measuredH = float64(len(tb.lines)) * tb.Font.LineHeight()
	return tb.lines
}

// renderImage returns the block rendered in white at its anchor-free origin,
// rebuilding it when the layout changed. Returns nil for empty blocks or
// fonts that cannot rasterise.
func (tb *TextBlock) renderImage() *ebiten.Image {
	lines := tb.layout()
	if !tb.imageDirty && tb.image != nil {
		return tb.image
	}
	tb.imageDirty = false

	f, ok := tb.Font.(*TTFFont)
	if !ok || len(lines) == 0 {
		return nil
	}

	// Lines justified wider than the box start left of it; shift them into
	// the image and remember where the image origin sits in block space.
	shift := -minLineX(lines)
	tb.imageX = -shift

	size := tb.Size()
	w := int(math.Ceil(shift + math.Max(size.X, tb.measuredW)))
	h := int(math.Ceil(math.Max(size.Y, tb.measuredH)))
	if w <= 0 || h <= 0 {
		return nil
	}

	if tb.image != nil {
		tb.image.Deallocate()
	}
	img := ebiten.NewImage(w, h)
	op := &text.DrawOptions{}
	for i, line := range lines {
		op.GeoM.Reset()
		op.GeoM.Translate(line.x+shift, float64(i)*f.lh)
		text.Draw(img, line.text, f.face, op)
	}

	for _, f := range tb.filterChain() {
		out := ebiten.NewImage(w, h)
		f.Apply(img, out)
		img.Deallocate()
		img = out
	}
	tb.image = img
	return img
}

// filterChain lists the filters renderImage applies, in order.
func (tb *TextBlock) filterChain() []Filter {
	if tb.Smoothing {
		return tb.Filters
	}
	chain := make([]Filter, 0, len(tb.Filters)+1)
	chain = append(chain, alphaThreshold)
	return append(chain, tb.Filters...)
}

func minLineX(lines []textLine) float64 {
	var m float64
	for _, l := range lines {
		if l.x < m {
			m = l.x
		}
	}
	return m
}

// --- FontSource ---

// FontSource is a parsed font file from which faces of any size are made.
type FontSource struct {
	source *text.GoTextFaceSource
}

// LoadFontSource parses TTF/OTF data.
func LoadFontSource(data []byte) (*FontSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text2d: failed to parse font data: %w", err)
	}
	return &FontSource{source: source}, nil
}

// LoadFontSourceFile reads and parses the font file at path.
func LoadFontSourceFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text2d: read font %s: %w", path, err)
	}
	src, err := LoadFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("text2d: load font %s: %w", path, err)
	}
	return src, nil
}

// Face returns a font of the given pixel size backed by this source.
func (s *FontSource) Face(size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: s.source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	src, err := LoadFontSource(ttfData)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}
