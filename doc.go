// Package text2d is a small retained-mode 2D scene graph for [Ebitengine]
// built around text: TTF text blocks with bounded wrapping, justification,
// anchors and optional hard-edged (unsmoothed) glyphs, plus solid color
// rectangles and a clock-driven transform animator.
//
// # Quick start
//
//	scene := text2d.NewScene()
//	src, err := text2d.LoadFontSource(gobold.TTF)
//	// ... handle err ...
//	label := text2d.NewText("hello", "hello", src.Face(50))
//	label.Channel = text2d.ChannelRotation
//	scene.Add(label)
//	text2d.Run(scene, text2d.RunConfig{Title: "Hello", Width: 1280, Height: 720})
//
// # Scene space
//
// Scene space is Y-up with the origin at the centre of the screen. Positive
// rotation is counter-clockwise. A node's Transform holds a 3D translation,
// a quaternion rotation and a 3D scale (go-gl/mathgl); only the depth-axis
// rotation is visible, and translation Z orders drawing.
//
// # Animation channels
//
// Each node carries one [Channel]. Every frame [Scene.Update] reads the
// clock once and calls [Animate], which rewrites the transform of each tagged
// node as a pure function of elapsed seconds:
//
//   - [ChannelTranslation]: orbit of radius 100 around (-400, 0)
//   - [ChannelRotation]: absolute angle cos(t) about the depth axis
//   - [ChannelScale]: X/Y scale (sin(t)+1.1)*2
//
// [Animator] partitions nodes into disjoint per-channel sets and can run the
// channels concurrently.
//
// # Text layout
//
// A [TextBlock] with Bounds wraps at the box width, either at Unicode line
// break opportunities ([LineBreakWordBoundary]) or between any two grapheme
// clusters ([LineBreakAnyCharacter]). The node's [Anchor] chooses which point
// of the block rectangle sits at the node origin.
//
// [Ebitengine]: https://ebitengine.org
package text2d
