package text2d

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 64

// Scene is the top-level object that owns the node tree, the clock, and
// render buffers. Scene space is Y-up with the origin at the centre of the
// screen.
type Scene struct {
	root  *Node
	nodes []*Node // every attached node, in insertion order
	clock Clock
	debug bool

	// ClearColor fills the screen before drawing. Zero alpha skips the fill.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string

	updateFunc      func() error
	replay          *Replay
	screenshotQueue []string

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand
}

// NewScene creates a new scene with a pre-created root container and a wall
// clock.
func NewScene() *Scene {
	s := &Scene{
		clock:         NewWallClock(),
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
	}
	s.root = NewContainer("root")
	s.root.scene = s
	s.nodes = append(s.nodes, s.root)
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches n (and its subtree) under the root and returns n.
func (s *Scene) Add(n *Node) *Node {
	s.root.AddChild(n)
	return n
}

// Nodes returns every node attached to the scene, root first, in the order
// they were attached. The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// register records n and its descendants as owned by s.
func (s *Scene) register(n *Node) {
	walk(n, func(c *Node) {
		if c.scene == s {
			return
		}
		if c.scene != nil {
			c.scene.forget(c)
		}
		c.scene = s
		s.nodes = append(s.nodes, c)
	})
}

// unregister releases n and its descendants.
func (s *Scene) unregister(n *Node) {
	walk(n, func(c *Node) {
		if c.scene == s {
			s.forget(c)
			c.scene = nil
		}
	})
}

func (s *Scene) forget(n *Node) {
	for i, c := range s.nodes {
		if c == n {
			copy(s.nodes[i:], s.nodes[i+1:])
			s.nodes[len(s.nodes)-1] = nil
			s.nodes = s.nodes[:len(s.nodes)-1]
			return
		}
	}
}

// Clock returns the scene's clock.
func (s *Scene) Clock() Clock {
	return s.clock
}

// SetClock replaces the clock the animator reads. Nil restores a wall clock.
func (s *Scene) SetClock(c Clock) {
	if c == nil {
		c = NewWallClock()
	}
	s.clock = c
}

// SetUpdateFunc sets a function called once per frame after animation.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// ErrReplayDone is returned by Update once a replay script reaches "quit".
var ErrReplayDone = errors.New("text2d: replay finished")

// Update advances the clock, animates tagged nodes, refreshes world
// transforms and runs the user update function. Under a replay, Update does
// nothing while a screenshot is still waiting for Draw.
func (s *Scene) Update() error {
	if s.replay != nil {
		// A queued capture freezes the replay until Draw has written it.
		if s.replay.holding(s) {
			return nil
		}
		if s.replay.step(s) {
			return ErrReplayDone
		}
	}
	s.clock.Advance()

	Animate(s.nodes, s.clock.Elapsed())
	updateWorldTransform(s.root, identityTransform, 0)

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw traverses the scene tree, emits render commands, sorts them by depth,
// and submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	b := screen.Bounds()
	treeOrder := 0
	s.traverse(s.root, viewMatrix(b.Dx(), b.Dy()), &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitBatches(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.elapsed = s.clock.Elapsed()
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame timing
// stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}
