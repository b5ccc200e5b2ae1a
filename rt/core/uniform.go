package core

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformRecord is the GPU layout of the camera block. The shader matches
// fields by order, not name: position, forward, right, up. Every vector carries
// w = 0. Size: 64 bytes.
type CameraUniformRecord struct {
	Position mgl32.Vec4 // offset  0
	Forward  mgl32.Vec4 // offset 16
	Right    mgl32.Vec4 // offset 32
	Up       mgl32.Vec4 // offset 48
}

// PackCameraUniform snapshots the pose for upload. Called once per draw.
func PackCameraUniform(o *OrientationState) CameraUniformRecord {
	return CameraUniformRecord{
		Position: padZero(o.Position()),
		Forward:  padZero(o.Forward()),
		Right:    padZero(o.Right()),
		Up:       padZero(o.Up()),
	}
}

func padZero(v mgl32.Vec3) mgl32.Vec4 {
	return v.Vec4(0)
}

// Size is the buffer size the record needs on the GPU.
func (r *CameraUniformRecord) Size() int {
	return int(unsafe.Sizeof(*r))
}
