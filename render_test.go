package text2d

import (
	"math"
	"sort"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const testScreenW, testScreenH = 1280, 720

// traverseScene computes world transforms (mirrors Scene.Update) and runs
// traverse and sort without Draw.
func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	updateWorldTransform(s.root, identityTransform, 0)
	treeOrder := 0
	s.traverse(s.root, viewMatrix(testScreenW, testScreenH), &treeOrder)
	s.mergeSort()
}

func assertPoint(t *testing.T, name string, m [6]float64, x, y, wantX, wantY float64) {
	t.Helper()
	gx, gy := transformPoint(m, x, y)
	if math.Abs(gx-wantX) > 1e-6 || math.Abs(gy-wantY) > 1e-6 {
		t.Errorf("%s: (%v, %v) -> (%v, %v), want (%v, %v)", name, x, y, gx, gy, wantX, wantY)
	}
}

// --- Anchors ---

func TestAnchorVec(t *testing.T) {
	tests := []struct {
		a    Anchor
		want Vec2
	}{
		{AnchorCenter, Vec2{0, 0}},
		{AnchorTopLeft, Vec2{-0.5, 0.5}},
		{AnchorTopCenter, Vec2{0, 0.5}},
		{AnchorTopRight, Vec2{0.5, 0.5}},
		{AnchorCenterLeft, Vec2{-0.5, 0}},
		{AnchorCenterRight, Vec2{0.5, 0}},
		{AnchorBottomLeft, Vec2{-0.5, -0.5}},
		{AnchorBottomCenter, Vec2{0, -0.5}},
		{AnchorBottomRight, Vec2{0.5, -0.5}},
	}
	for _, tt := range tests {
		if got := tt.a.Vec(); got != tt.want {
			t.Errorf("%v.Vec() = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestAnchorString(t *testing.T) {
	if AnchorTopLeft.String() != "TopLeft" || AnchorBottomRight.String() != "BottomRight" {
		t.Errorf("unexpected names %q %q", AnchorTopLeft, AnchorBottomRight)
	}
	if Anchor(99).String() != "Anchor(?)" {
		t.Errorf("out of range anchor = %q", Anchor(99).String())
	}
}

func TestAnchorOffset(t *testing.T) {
	tests := []struct {
		a      Anchor
		ox, oy float64
	}{
		{AnchorCenter, -50, -25},
		{AnchorTopLeft, 0, 0},
		{AnchorTopCenter, -50, 0},
		{AnchorTopRight, -100, 0},
		{AnchorCenterLeft, 0, -25},
		{AnchorCenterRight, -100, -25},
		{AnchorBottomLeft, 0, -50},
		{AnchorBottomCenter, -50, -50},
		{AnchorBottomRight, -100, -50},
	}
	for _, tt := range tests {
		ox, oy := anchorOffset(tt.a, 100, 50)
		assertNear(t, tt.a.String()+".ox", ox, tt.ox)
		assertNear(t, tt.a.String()+".oy", oy, tt.oy)
	}
}

// --- Pixel transforms ---

func TestViewMatrixCentresOrigin(t *testing.T) {
	view := viewMatrix(testScreenW, testScreenH)
	assertPoint(t, "origin", view, 0, 0, 640, 360)
	assertPoint(t, "up", view, 0, 100, 640, 260)
	assertPoint(t, "right", view, 100, 0, 740, 360)
}

func TestPixelTransformAnchorsShareOnePoint(t *testing.T) {
	view := viewMatrix(testScreenW, testScreenH)
	world := [6]float64{1, 0, 0, 1, 0, 250}
	w, h := 100.0, 50.0

	// Scene point (0, 250) is pixel (640, 110).
	corners := []struct {
		a          Anchor
		cornerX    float64
		cornerY    float64
		otherX     float64
		otherY     float64
		otherWantX float64
		otherWantY float64
	}{
		// TopLeft: image top-left at the point, body extends right and down.
		{AnchorTopLeft, 0, 0, w, h, 740, 160},
		// TopRight: image top-right at the point, body extends left and down.
		{AnchorTopRight, w, 0, 0, h, 540, 160},
		// BottomRight: body extends left and up.
		{AnchorBottomRight, w, h, 0, 0, 540, 60},
		// BottomLeft: body extends right and up.
		{AnchorBottomLeft, 0, h, w, 0, 740, 60},
	}
	for _, c := range corners {
		ox, oy := anchorOffset(c.a, w, h)
		m := pixelTransform(view, world, ox, oy, 1, 1)
		assertPoint(t, c.a.String()+" corner", m, c.cornerX, c.cornerY, 640, 110)
		assertPoint(t, c.a.String()+" opposite", m, c.otherX, c.otherY, c.otherWantX, c.otherWantY)
	}
}

func TestPixelTransformRotationIsCounterClockwise(t *testing.T) {
	n := NewContainer("n")
	n.SetRotation(math.Pi / 2)
	updateWorldTransform(n, identityTransform, 0)

	m := pixelTransform(viewMatrix(testScreenW, testScreenH), n.worldTransform, 0, 0, 1, 1)
	// Image +X turns to screen up.
	assertPoint(t, "image right", m, 10, 0, 640, 350)
	// Image +Y (down) turns to screen right.
	assertPoint(t, "image down", m, 0, 10, 650, 360)
}

func TestPixelTransformStretchesSprite(t *testing.T) {
	view := viewMatrix(testScreenW, testScreenH)
	world := [6]float64{1, 0, 0, 1, 0, -250}
	ox, oy := anchorOffset(AnchorCenter, 300, 200)
	m := pixelTransform(view, world, ox, oy, 300, 200)

	// Unit pixel corners land on the box corners around scene (0, -250).
	assertPoint(t, "top-left", m, 0, 0, 490, 510)
	assertPoint(t, "bottom-right", m, 1, 1, 790, 710)
}

// --- Command emission ---

func TestSpriteEmitsOneCommand(t *testing.T) {
	s := NewScene()
	s.Add(NewSprite("box", RGB(0.25, 0.25, 0.75), Vec2{X: 300, Y: 200}))

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if cmd.image == nil {
		t.Error("sprite command should draw the white pixel")
	}
	if cmd.filter != ebiten.FilterNearest {
		t.Errorf("filter = %v, want nearest", cmd.filter)
	}
	if cmd.Color != (color32{0.25, 0.25, 0.75, 1}) {
		t.Errorf("Color = %v", cmd.Color)
	}
}

func TestZeroSizeSpriteNoCommand(t *testing.T) {
	s := NewScene()
	s.Add(NewSprite("empty", ColorWhite, Vec2{X: 0, Y: 10}))
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestContainerNoCommand(t *testing.T) {
	s := NewScene()
	s.Add(NewContainer("c"))
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestTextWithoutRasterNoCommand(t *testing.T) {
	s := NewScene()
	s.Add(NewText("t", "hello", testMono))
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	parent := NewSprite("parent", ColorWhite, Vec2{X: 10, Y: 10})
	parent.Visible = false
	parent.AddChild(NewSprite("child", ColorWhite, Vec2{X: 10, Y: 10}))
	s.Add(parent)

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for invisible subtree", len(s.commands))
	}
}

func TestDepthOrdersAboveTreeOrder(t *testing.T) {
	s := NewScene()
	box := NewSprite("box", ColorWhite, Vec2{X: 10, Y: 10})
	overlay := NewSprite("overlay", ColorWhite, Vec2{X: 1, Y: 1})
	overlay.Transform = FromTranslation(0, 0, 1)
	box.AddChild(overlay)
	later := NewSprite("later", ColorWhite, Vec2{X: 2, Y: 2})
	s.Add(box)
	s.Add(later)

	traverseScene(s)

	if len(s.commands) != 3 {
		t.Fatalf("commands = %d, want 3", len(s.commands))
	}
	// Box and later share depth 0 and keep tree order; the overlay child
	// sits at depth 1 and is drawn last.
	wantDepth := []float64{0, 0, 1}
	wantOrder := []int{1, 3, 2}
	for i, cmd := range s.commands {
		if cmd.depth != wantDepth[i] || cmd.treeOrder != wantOrder[i] {
			t.Errorf("commands[%d] = depth %v order %d, want depth %v order %d",
				i, cmd.depth, cmd.treeOrder, wantDepth[i], wantOrder[i])
		}
	}
}

// --- Merge sort ---

func TestMergeSortMatchesStdlib(t *testing.T) {
	s := NewScene()
	cmds := []RenderCommand{
		{depth: 2, treeOrder: 1},
		{depth: 0, treeOrder: 2},
		{depth: -1, treeOrder: 3},
		{depth: 1, treeOrder: 4},
		{depth: 0, treeOrder: 5},
		{depth: 2, treeOrder: 6},
		{depth: 0.5, treeOrder: 7},
	}

	ref := make([]RenderCommand, len(cmds))
	copy(ref, cmds)
	sort.SliceStable(ref, func(i, j int) bool {
		if ref[i].depth != ref[j].depth {
			return ref[i].depth < ref[j].depth
		}
		return ref[i].treeOrder < ref[j].treeOrder
	})

	s.commands = make([]RenderCommand, len(cmds))
	copy(s.commands, cmds)
	s.mergeSort()

	for i := range s.commands {
		a, b := s.commands[i], ref[i]
		if a.depth != b.depth || a.treeOrder != b.treeOrder {
			t.Errorf("index %d: mergeSort=(%v,%d), stdlib=(%v,%d)", i, a.depth, a.treeOrder, b.depth, b.treeOrder)
		}
	}
}

func TestMergeSortStable(t *testing.T) {
	s := NewScene()
	s.commands = make([]RenderCommand, 100)
	for i := range s.commands {
		s.commands[i] = RenderCommand{treeOrder: i}
	}

	s.mergeSort()

	for i := range s.commands {
		if s.commands[i].treeOrder != i {
			t.Fatalf("stability broken at index %d: treeOrder=%d", i, s.commands[i].treeOrder)
		}
	}
}

func TestMergeSortBufferReuse(t *testing.T) {
	s := NewScene()

	s.commands = make([]RenderCommand, 50)
	for i := range s.commands {
		s.commands[i] = RenderCommand{treeOrder: 50 - i}
	}
	s.mergeSort()
	bufCap := cap(s.sortBuf)

	s.commands = make([]RenderCommand, 30)
	for i := range s.commands {
		s.commands[i] = RenderCommand{treeOrder: 30 - i}
	}
	s.mergeSort()

	if cap(s.sortBuf) != bufCap {
		t.Errorf("sortBuf reallocated: was %d, now %d", bufCap, cap(s.sortBuf))
	}
}

func TestMergeSortEmpty(t *testing.T) {
	s := NewScene()
	s.commands = nil
	s.mergeSort()
}

// --- Submission ---

func TestCommandGeoM(t *testing.T) {
	cmd := &RenderCommand{Transform: [6]float32{2, 0.5, -0.5, 3, 10, 20}}
	g := commandGeoM(cmd)
	want := [6]float64{2, 0.5, -0.5, 3, 10, 20}
	got := [6]float64{g.Element(0, 0), g.Element(1, 0), g.Element(0, 1), g.Element(1, 1), g.Element(0, 2), g.Element(1, 2)}
	assertMatrix(t, "geom", got, want)
}

// --- Benchmarks ---

func buildSpriteScene(count int) *Scene {
	s := NewScene()
	for i := 0; i < count; i++ {
		n := NewSprite("", ColorWhite, Vec2{X: 4, Y: 4})
		n.Transform = FromTranslation(float64(i%100)*10, float64(i/100)*10, float64(i%3))
		s.Add(n)
	}
	return s
}

func BenchmarkTraverse1000(b *testing.B) {
	s := buildSpriteScene(1000)
	traverseScene(s)
	b.ReportAllocs()
	for b.Loop() {
		traverseScene(s)
	}
}
