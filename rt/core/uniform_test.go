package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackCameraUniform_FieldOrderAndPadding(t *testing.T) {
	o := NewOrientationState()
	o.Translate(mgl32.Vec3{1, 2, 3})

	rec := PackCameraUniform(o)

	assert.Equal(t, mgl32.Vec4{1, 2, 3, 0}, rec.Position)
	assert.Equal(t, mgl32.Vec4{0, 0, -1, 0}, rec.Forward)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 0}, rec.Right)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 0}, rec.Up)
}

func TestPackCameraUniform_TracksLatestPose(t *testing.T) {
	o := NewOrientationState()
	first := PackCameraUniform(o)

	o.RotateBy(0.4, -0.1)
	second := PackCameraUniform(o)

	assert.Equal(t, mgl32.Vec4{0, 0, -1, 0}, first.Forward, "earlier snapshot is not aliased to the pose")
	assert.Equal(t, o.Forward().Vec4(0), second.Forward)
	assert.Equal(t, o.Right().Vec4(0), second.Right)
	assert.Equal(t, o.Up().Vec4(0), second.Up)
	for _, v := range []mgl32.Vec4{second.Position, second.Forward, second.Right, second.Up} {
		assert.Zero(t, v.W())
	}
}

func TestCameraUniformRecord_Size(t *testing.T) {
	var rec CameraUniformRecord
	require.Equal(t, 64, rec.Size())
}
