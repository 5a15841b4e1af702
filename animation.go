package text2d

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// Channel identifies which animation behavior, if any, owns a node's
// transform. A node carries exactly one value.
type Channel uint8

const (
	ChannelNone        Channel = iota // never written by the animator
	ChannelTranslation                // orbits around (-400, 0)
	ChannelRotation                   // swings about the depth axis
	ChannelScale                      // pulses X and Y scale

	numChannels = 4
)

// String returns the channel name in lower case, e.g. "rotation".
func (c Channel) String() string {
	switch c {
	case ChannelNone:
		return "none"
	case ChannelTranslation:
		return "translation"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	default:
		return "channel(?)"
	}
}

// Orbit parameters of the translation channel.
const (
	orbitRadius  = 100.0
	orbitCenterX = -400.0
)

// depthAxis is the axis rotations are applied about.
var depthAxis = mgl64.Vec3{0, 0, 1}

// TranslationAt returns the X and Y translation of the translation channel at
// t seconds: a circle of radius 100 centred on (-400, 0).
func TranslationAt(t float64) (x, y float64) {
	sin, cos := math.Sin(t), math.Cos(t)
	return orbitRadius*sin + orbitCenterX, orbitRadius * cos
}

// RotationAt returns the rotation of the rotation channel at t seconds: an
// absolute angle of cos(t) radians about the depth axis. The angle swings
// back and forth rather than spinning.
func RotationAt(t float64) mgl64.Quat {
	return mgl64.QuatRotate(math.Cos(t), depthAxis)
}

// ScaleAt returns the uniform X/Y scale of the scale channel at t seconds.
// The result lies in [0.2, 4.2].
func ScaleAt(t float64) float64 {
	return (math.Sin(t) + 1.1) * 2.0
}

// apply writes channel c's output for time t into tr. Only the fields the
// channel owns are written.
func (c Channel) apply(tr *Transform, t float64) {
	switch c {
	case ChannelTranslation:
		tr.Translation[0], tr.Translation[1] = TranslationAt(t)
	case ChannelRotation:
		tr.Rotation = RotationAt(t)
	case ChannelScale:
		s := ScaleAt(t)
		tr.Scale[0] = s
		tr.Scale[1] = s
	}
}

// Animate is the per-frame tick. Every node tagged with a channel has that
// channel's transform fields recomputed from elapsed; untagged nodes are left
// alone. The result depends only on elapsed and the tags, so calling it twice
// with the same value is a no-op the second time.
func Animate(nodes []*Node, elapsed float64) {
	for _, n := range nodes {
		n.Channel.apply(&n.Transform, elapsed)
	}
}

// Animator holds the nodes of each channel as disjoint sets, so channels can
// be evaluated independently of each other.
type Animator struct {
	sets [numChannels][]*Node
}

// NewAnimator partitions nodes by channel. Untagged nodes are dropped. Later
// changes to a node's Channel are not seen until the Animator is rebuilt.
func NewAnimator(nodes []*Node) *Animator {
	a := &Animator{}
	for _, n := range nodes {
		if n.Channel == ChannelNone || n.Channel >= numChannels {
			continue
		}
		a.sets[n.Channel] = append(a.sets[n.Channel], n)
	}
	return a
}

// Len returns how many nodes belong to channel c.
func (a *Animator) Len(c Channel) int {
	if c >= numChannels {
		return 0
	}
	return len(a.sets[c])
}

// Tick evaluates every channel for elapsed seconds, one after another.
func (a *Animator) Tick(elapsed float64) {
	for c := ChannelTranslation; c < numChannels; c++ {
		a.tickChannel(c, elapsed)
	}
}

// TickConcurrent evaluates the channels on separate goroutines. The sets are
// disjoint and each channel writes different nodes, so no locking is needed.
// It returns ctx.Err() without touching any node if ctx is already done.
func (a *Animator) TickConcurrent(ctx context.Context, elapsed float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var g errgroup.Group
	for c := ChannelTranslation; c < numChannels; c++ {
		if len(a.sets[c]) == 0 {
			continue
		}
		g.Go(func() error {
			a.tickChannel(c, elapsed)
			return nil
		})
	}
	return g.Wait()
}

func (a *Animator) tickChannel(c Channel, elapsed float64) {
	for _, n := range a.sets[c] {
		c.apply(&n.Transform, elapsed)
	}
}
