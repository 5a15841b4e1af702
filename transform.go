package text2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a node's local placement in Y-up scene space. Translation.Z
// orders drawing (higher is drawn later); Scale.Z is carried but unused in 2D.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityTransform returns a transform with no translation, rotation or scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// FromTranslation returns an identity transform moved to (x, y, z).
func FromTranslation(x, y, z float64) Transform {
	t := IdentityTransform()
	t.Translation = mgl64.Vec3{x, y, z}
	return t
}

// Angle returns the rotation about the depth axis, in radians, as seen in the
// 2D plane. Counter-clockwise is positive.
func (t Transform) Angle() float64 {
	v := t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(v[1], v[0])
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// flipY converts between Y-up scene space and Y-down pixel space.
var flipY = [6]float64{1, 0, 0, -1, 0, 0}

// computeLocalTransform computes the local affine matrix of a node's
// Transform in Y-up scene space. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.Transform.Scale[0]
	sy := n.Transform.Scale[1]
	sin, cos := math.Sincos(n.Transform.Angle())
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		n.Transform.Translation[0], n.Transform.Translation[1],
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's world matrix and depth from its
// parent's. Animated transforms change every frame so there is no dirty
// tracking; the tree is small.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentDepth float64) {
	n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
	n.worldDepth = parentDepth + n.Transform.Translation[2]
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldDepth)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's translation on X and Y, leaving Z untouched.
func (n *Node) SetPosition(x, y float64) {
	n.Transform.Translation[0] = x
	n.Transform.Translation[1] = y
}

// SetScale sets the node's X and Y scale, leaving Z untouched.
func (n *Node) SetScale(sx, sy float64) {
	n.Transform.Scale[0] = sx
	n.Transform.Scale[1] = sy
}

// SetRotation sets the node's rotation to angle radians about the depth axis.
func (n *Node) SetRotation(angle float64) {
	n.Transform.Rotation = mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})
}

// --- Coordinate conversion ---

// WorldToLocal converts a scene-space point to this node's local space.
// Valid after the scene's first Update.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to scene space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
