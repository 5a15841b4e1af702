// Package showcase builds the text2d demonstration scene: three animated
// labels, two wrapping boxes, an unsmoothed label and four anchored labels.
package showcase

import (
	"fmt"

	"github.com/phanxgames/text2d"
)

// Style is the font and default styling the showcase is built from.
type Style struct {
	Source        *text2d.FontSource
	FontSize      float64
	SmallFontSize float64
	Justify       text2d.Justify
}

// DefaultStyle returns the showcase defaults for src: 50px labels, 35px
// secondary text, centre justification.
func DefaultStyle(src *text2d.FontSource) Style {
	return Style{
		Source:        src,
		FontSize:      50,
		SmallFontSize: 35,
		Justify:       text2d.JustifyCenter,
	}
}

// Showcase holds handles to every node Setup created, grouped by role.
type Showcase struct {
	Animated   []*text2d.Node // translation, rotation, scale
	WrapBoxes  []*text2d.Node // word boundary box, any character box
	WrapTexts  []*text2d.Node // children of WrapBoxes, same order
	Unsmoothed *text2d.Node
	Anchored   []*text2d.Node // TopLeft, TopRight, BottomRight, BottomLeft
}

var boxSize = text2d.Vec2{X: 300, Y: 200}

type wrapDemo struct {
	x, y      float64
	color     text2d.Color
	content   string
	lineBreak text2d.LineBreak
}

var wrapDemos = []wrapDemo{
	{0, -250, text2d.RGB(0.25, 0.25, 0.75), "this text wraps in the box\n(Unicode linebreaks)", text2d.LineBreakWordBoundary},
	{320, -250, text2d.RGB(0.2, 0.3, 0.7), "this text wraps in the box\n(AnyCharacter linebreaks)", text2d.LineBreakAnyCharacter},
}

type anchorDemo struct {
	anchor text2d.Anchor
	color  text2d.Color
}

var anchorDemos = []anchorDemo{
	{text2d.AnchorTopLeft, text2d.ColorRed},
	{text2d.AnchorTopRight, text2d.ColorLime},
	{text2d.AnchorBottomRight, text2d.ColorBlue},
	{text2d.AnchorBottomLeft, text2d.ColorYellow},
}

// Setup creates the showcase nodes under the scene root. It runs once; the
// nodes are never removed.
func Setup(scene *text2d.Scene, style Style) *Showcase {
	font := style.Source.Face(style.FontSize)
	small := style.Source.Face(style.SmallFontSize)
	sc := &Showcase{}

	// One label per animation channel.
	for _, ch := range []text2d.Channel{
		text2d.ChannelTranslation,
		text2d.ChannelRotation,
		text2d.ChannelScale,
	} {
		n := text2d.NewText(ch.String(), ch.String(), font)
		n.TextBlock.Justify = style.Justify
		n.Channel = ch
		if ch == text2d.ChannelScale {
			n.Transform = text2d.FromTranslation(400, 0, 0)
		}
		sc.Animated = append(sc.Animated, scene.Add(n))
	}

	// Wrapping: text bounded by a colored box, drawn above it.
	for i, d := range wrapDemos {
		box := text2d.NewSprite(fmt.Sprintf("wrap-box-%d", i), d.color, boxSize)
		box.Transform = text2d.FromTranslation(d.x, d.y, 0)

		bounds := boxSize
		txt := text2d.NewText(fmt.Sprintf("wrap-text-%d", i), d.content, small)
		txt.TextBlock.Justify = text2d.JustifyLeft
		txt.TextBlock.LineBreak = d.lineBreak
		txt.TextBlock.Bounds = &bounds
		txt.Transform = text2d.FromTranslation(0, 0, 1)
		box.AddChild(txt)

		scene.Add(box)
		sc.WrapBoxes = append(sc.WrapBoxes, box)
		sc.WrapTexts = append(sc.WrapTexts, txt)
	}

	// Font smoothing off.
	sc.Unsmoothed = text2d.NewText("unsmoothed",
		"this text has\nFontSmoothing::None\nand JustifyText::Center", small)
	sc.Unsmoothed.TextBlock.Smoothing = false
	sc.Unsmoothed.TextBlock.Justify = text2d.JustifyCenter
	sc.Unsmoothed.Transform = text2d.FromTranslation(-400, -250, 0)
	scene.Add(sc.Unsmoothed)

	// Anchors: same point, placement decided by the anchor alone.
	for _, d := range anchorDemos {
		n := text2d.NewText("anchor-"+d.anchor.String(), fmt.Sprintf(" Anchor::%s ", d.anchor), small)
		n.TextBlock.Color = d.color
		n.Anchor = d.anchor
		n.Transform = text2d.FromTranslation(0, 250, 0)
		sc.Anchored = append(sc.Anchored, scene.Add(n))
	}

	return sc
}

// All returns every node Setup created, in creation order.
func (sc *Showcase) All() []*text2d.Node {
	all := make([]*text2d.Node, 0, len(sc.Animated)+2*len(sc.WrapBoxes)+1+len(sc.Anchored))
	all = append(all, sc.Animated...)
	for i := range sc.WrapBoxes {
		all = append(all, sc.WrapBoxes[i], sc.WrapTexts[i])
	}
	all = append(all, sc.Unsmoothed)
	return append(all, sc.Anchored...)
}
