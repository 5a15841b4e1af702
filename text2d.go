package text2d

import "github.com/hajimehoshi/ebiten/v2"

// Vec2 is a 2D vector used for sizes and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// whitePixel is a 1x1 white image used for solid color sprites. Created
// lazily so that packages importing text2d don't touch the GPU at init.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // solid color rectangle of Node.Size
	NodeTypeText                      // renders a TextBlock
)

// Justify controls horizontal alignment of each line within a TextBlock.
type Justify uint8

const (
	JustifyLeft   Justify = iota // align lines to the left edge (default)
	JustifyCenter                // center each line
	JustifyRight                 // align lines to the right edge
)

// LineBreak selects where a bounded TextBlock may wrap.
type LineBreak uint8

const (
	LineBreakWordBoundary LineBreak = iota // Unicode line break opportunities (UAX #14)
	LineBreakAnyCharacter                  // between any two grapheme clusters
)

// Anchor is the point of a node's rectangle that sits at its transform origin.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

var anchorNames = [...]string{
	AnchorCenter:       "Center",
	AnchorTopLeft:      "TopLeft",
	AnchorTopCenter:    "TopCenter",
	AnchorTopRight:     "TopRight",
	AnchorCenterLeft:   "CenterLeft",
	AnchorCenterRight:  "CenterRight",
	AnchorBottomLeft:   "BottomLeft",
	AnchorBottomCenter: "BottomCenter",
	AnchorBottomRight:  "BottomRight",
}

// String returns the anchor name, e.g. "TopLeft".
func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return "Anchor(?)"
}

// Vec returns the anchor as a normalized offset from the rectangle centre in
// Y-up scene space: TopLeft is (-0.5, 0.5), BottomRight is (0.5, -0.5).
func (a Anchor) Vec() Vec2 {
	switch a {
	case AnchorTopLeft:
		return Vec2{-0.5, 0.5}
	case AnchorTopCenter:
		return Vec2{0, 0.5}
	case AnchorTopRight:
		return Vec2{0.5, 0.5}
	case AnchorCenterLeft:
		return Vec2{-0.5, 0}
	case AnchorCenterRight:
		return Vec2{0.5, 0}
	case AnchorBottomLeft:
		return Vec2{-0.5, -0.5}
	case AnchorBottomCenter:
		return Vec2{0, -0.5}
	case AnchorBottomRight:
		return Vec2{0.5, -0.5}
	default:
		return Vec2{}
	}
}

// anchorOffset returns the pixel-space (Y down) translation that places the
// anchor point of a w x h image at the local origin.
func anchorOffset(a Anchor, w, h float64) (float64, float64) {
	v := a.Vec()
	return -(v.X + 0.5) * w, -(0.5 - v.Y) * h
}
