package text2d

import "github.com/hajimehoshi/ebiten/v2"

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Transform [6]float32
	Color     color32
	image     *ebiten.Image
	filter    ebiten.Filter
	depth     float64
	treeOrder int // assigned during traversal for stable sort
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// viewMatrix maps Y-up scene space with the origin at the centre of a w x h
// target onto Y-down pixel space.
func viewMatrix(w, h int) [6]float64 {
	return [6]float64{1, 0, 0, -1, float64(w) / 2, float64(h) / 2}
}

// pixelTransform builds the full matrix for drawing an image whose top-left
// pixel sits at (ox, oy) in the node's pixel space and which is stretched by
// (sx, sy). The node's world matrix is conjugated with flipY so images stay
// upright while positions and rotations follow Y-up conventions.
func pixelTransform(view, world [6]float64, ox, oy, sx, sy float64) [6]float64 {
	local := [6]float64{sx, 0, 0, sy, ox, oy}
	m := multiplyAffine(view, world)
	m = multiplyAffine(m, flipY)
	return multiplyAffine(m, local)
}

// traverse walks the node tree depth-first and emits render commands for
// visible sprites and text. Invisible nodes hide their whole subtree.
func (s *Scene) traverse(n *Node, view [6]float64, treeOrder *int) {
	if !n.Visible {
		return
	}

	switch n.Type {
	case NodeTypeSprite:
		if n.Size.X > 0 && n.Size.Y > 0 {
			ox, oy := anchorOffset(n.Anchor, n.Size.X, n.Size.Y)
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Transform: affine32(pixelTransform(view, n.worldTransform, ox, oy, n.Size.X, n.Size.Y)),
				Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A)},
				image:     ensureWhitePixel(),
				filter:    ebiten.FilterNearest,
				depth:     n.worldDepth,
				treeOrder: *treeOrder,
			})
		}
	case NodeTypeText:
		tb := n.TextBlock
		if tb == nil {
			break
		}
		img := tb.renderImage()
		if img == nil {
			break
		}
		size := tb.Size()
		ox, oy := anchorOffset(n.Anchor, size.X, size.Y)
		filter := ebiten.FilterLinear
		if !tb.Smoothing {
			filter = ebiten.FilterNearest
		}
		*treeOrder++
		s.commands = append(s.commands, RenderCommand{
			Transform: affine32(pixelTransform(view, n.worldTransform, ox+tb.imageX, oy, 1, 1)),
			Color: color32{
				float32(tb.Color.R * n.Color.R),
				float32(tb.Color.G * n.Color.G),
				float32(tb.Color.B * n.Color.B),
				float32(tb.Color.A * n.Color.A),
			},
			image:     img,
			filter:    filter,
			depth:     n.worldDepth,
			treeOrder: *treeOrder,
		})
	}

	for _, child := range n.children {
		s.traverse(child, view, treeOrder)
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
