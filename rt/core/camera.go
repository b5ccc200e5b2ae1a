package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed vertical reference. Yaw rotates about it and the basis is
// re-derived against it, so the camera can never roll.
var WorldUp = mgl32.Vec3{0, 1, 0}

// below this length a cross product is treated as degenerate
const degenerateEpsilon = 1e-7

// OrientationState is a free-look camera pose: a position and an orthonormal,
// right-handed (forward, up, right) basis.
//
// Looking straight along WorldUp is a singularity: forward × WorldUp vanishes, so
// right is carried over from the previous tick (turned by the yaw) until forward
// leaves the vertical. Callers that want to avoid it clamp pitch (see Elevation).
type OrientationState struct {
	position mgl32.Vec3
	forward  mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
}

func NewOrientationState() *OrientationState {
	return &OrientationState{
		position: mgl32.Vec3{0, 0, 0},
		forward:  mgl32.Vec3{0, 0, -1},
		up:       mgl32.Vec3{0, 1, 0},
		right:    mgl32.Vec3{1, 0, 0},
	}
}

// NewOrientationStateFrom builds a pose looking along forward. right and up are
// re-derived from forward and WorldUp; up is only used to pick right when forward
// is parallel to WorldUp.
func NewOrientationStateFrom(position, forward, up mgl32.Vec3) *OrientationState {
	o := &OrientationState{
		position: position,
		forward:  normalizeOrZero(forward),
	}
	o.fixUpRight(o.forward.Cross(up))
	return o
}

func (o *OrientationState) Position() mgl32.Vec3 { return o.position }
func (o *OrientationState) Forward() mgl32.Vec3  { return o.forward }
func (o *OrientationState) Up() mgl32.Vec3       { return o.up }
func (o *OrientationState) Right() mgl32.Vec3    { return o.right }

// Elevation is the angle between forward and the horizontal plane, in radians.
// Positive when looking above the horizon.
func (o *OrientationState) Elevation() float32 {
	d := o.forward.Dot(WorldUp)
	d = mgl32.Clamp(d, -1, 1)
	return float32(math.Asin(float64(d)))
}

// Translate moves the camera by delta in world space. Scaling by elapsed time is
// the caller's job.
func (o *OrientationState) Translate(delta mgl32.Vec3) {
	o.position = o.position.Add(delta)
}

// RotateBy pitches forward about the current right axis, then yaws it about
// WorldUp, then rebuilds right and up from the new forward.
func (o *OrientationState) RotateBy(yawDelta, pitchDelta float32) {
	pitch := mgl32.QuatRotate(pitchDelta, o.right)
	yaw := mgl32.QuatRotate(yawDelta, WorldUp)

	// a zero right (zero-value state) makes pitch a non-unit quaternion
	o.forward = normalizeOrZero(yaw.Mul(pitch).Normalize().Rotate(o.forward))

	// pitch leaves right in place, so only the yaw moves it
	o.fixUpRight(yaw.Rotate(o.right))
}

// fixUpRight recomputes right and up from forward. Away from the vertical the
// previous basis is never reused, so rounding error does not accumulate across
// ticks. When forward is parallel to WorldUp, right falls back to the given
// horizontal axis, and to +X if that is degenerate too.
func (o *OrientationState) fixUpRight(fallback mgl32.Vec3) {
	o.right = normalizeOrZero(o.forward.Cross(WorldUp))
	if o.right.Len() < degenerateEpsilon {
		o.right = normalizeOrZero(fallback)
		if o.right.Len() < degenerateEpsilon {
			o.right = mgl32.Vec3{1, 0, 0}
		}
	}
	o.up = normalizeOrZero(o.right.Cross(o.forward))
}

func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < degenerateEpsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
