package marcher

import (
	"math"

	"github.com/gekko3d/marcher/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Per-tick tuning of 0.05 units and 0.01 rad per key tick, expressed as
// per-second rates at 60 ticks. Mouse sensitivity is radians per pixel.
const (
	DefaultFlySpeed         float32 = 3.0
	DefaultMouseSensitivity float32 = 0.002
	DefaultKeyTurnSpeed     float32 = 0.6
	DefaultMaxPitchDegrees  float32 = 89.0
)

// FlyingCameraModule installs a free-look camera: the OrientationState resource,
// the input mapping that turns keys and mouse into intent, and the control system
// that feeds it to the camera.
type FlyingCameraModule struct {
	Speed            float32 // units per second
	MouseSensitivity float32 // radians per pixel
	KeyTurnSpeed     float32 // radians per second
	// MaxPitch limits elevation in radians. Zero selects the default, negative
	// disables the clamp and exposes the vertical singularity.
	MaxPitch float32

	// Initial pose. A zero Forward selects the default camera. Up only matters
	// when Forward is vertical, where it picks the right axis.
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Up       mgl32.Vec3
}

// FlyingCamera is the per-tick output of the input mapping plus its tuning.
type FlyingCamera struct {
	Speed            float32
	MouseSensitivity float32
	KeyTurnSpeed     float32
	MaxPitch         float32

	// Move is the movement intent in camera-local axes: x strafes right, y lifts
	// along up, z moves forward. Its length never exceeds 1.
	Move mgl32.Vec3
	// Yaw and Pitch are this tick's rotation deltas in radians.
	Yaw   float32
	Pitch float32
}

// NewFlyingCamera applies defaults to zero-valued settings.
func NewFlyingCamera(speed, mouseSensitivity, keyTurnSpeed, maxPitch float32) *FlyingCamera {
	if speed == 0 {
		speed = DefaultFlySpeed
	}
	if mouseSensitivity == 0 {
		mouseSensitivity = DefaultMouseSensitivity
	}
	if keyTurnSpeed == 0 {
		keyTurnSpeed = DefaultKeyTurnSpeed
	}
	if maxPitch == 0 {
		maxPitch = mgl32.DegToRad(DefaultMaxPitchDegrees)
	}
	return &FlyingCamera{
		Speed:            speed,
		MouseSensitivity: mouseSensitivity,
		KeyTurnSpeed:     keyTurnSpeed,
		MaxPitch:         maxPitch,
	}
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewOrientationState()
	if m.Forward.Len() > 0 {
		up := m.Up
		if up.Len() == 0 {
			up = core.WorldUp
		}
		cam = core.NewOrientationStateFrom(m.Position, m.Forward, up)
	} else {
		cam.Translate(m.Position)
	}

	fly := NewFlyingCamera(m.Speed, m.MouseSensitivity, m.KeyTurnSpeed, m.MaxPitch)
	cmd.AddResources(cam, fly)

	app.UseSystem(
		System(FlyingCameraInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(FlyingCameraControlSystem).
			InStage(Update),
	)

	app.Logger().Infof("Flying camera at %v looking %v (speed %.2f, max pitch %.1f deg)",
		cam.Position(), cam.Forward(), fly.Speed, mgl32.RadToDeg(fly.MaxPitch))
}

// MoveIntent reads the movement keys into a camera-local intent vector, scaled
// down to unit length when several keys combine past it.
func MoveIntent(input *Input) mgl32.Vec3 {
	var move mgl32.Vec3
	if input.Pressed[KeyD] {
		move[0] += 1
	}
	if input.Pressed[KeyA] {
		move[0] -= 1
	}
	if input.Pressed[KeyPageUp] || input.Pressed[KeySpace] {
		move[1] += 1
	}
	if input.Pressed[KeyPageDown] || input.Pressed[KeyControl] {
		move[1] -= 1
	}
	if input.Pressed[KeyW] {
		move[2] += 1
	}
	if input.Pressed[KeyS] {
		move[2] -= 1
	}

	// each component is -1, 0 or 1, so any multi-key press overshoots
	if move.Dot(move) > 1 {
		move = move.Normalize()
	}
	return move
}

// LookDeltas turns held arrow keys and mouse displacement into yaw and pitch.
// Left and up are positive; moving the mouse right or down turns right or down.
func LookDeltas(input *Input, fly *FlyingCamera, dt float32) (yaw, pitch float32) {
	keyStep := fly.KeyTurnSpeed * dt
	if input.Pressed[KeyLeft] {
		yaw += keyStep
	}
	if input.Pressed[KeyRight] {
		yaw -= keyStep
	}
	if input.Pressed[KeyUp] {
		pitch += keyStep
	}
	if input.Pressed[KeyDown] {
		pitch -= keyStep
	}

	if input.MouseCaptured {
		yaw -= float32(input.MouseDeltaX) * fly.MouseSensitivity
		pitch -= float32(input.MouseDeltaY) * fly.MouseSensitivity
	}
	return yaw, pitch
}

// ClampPitch limits pitch so the camera's elevation stays within ±maxPitch.
// A negative maxPitch returns pitch unchanged.
func ClampPitch(cam *core.OrientationState, pitch, maxPitch float32) float32 {
	if maxPitch < 0 {
		return pitch
	}
	maxPitch = float32(math.Min(float64(maxPitch), math.Pi/2))
	elevation := cam.Elevation()
	return mgl32.Clamp(elevation+pitch, -maxPitch, maxPitch) - elevation
}

func FlyingCameraInputSystem(input *Input, fly *FlyingCamera, time *Time) {
	fly.Move = MoveIntent(input)
	fly.Yaw, fly.Pitch = LookDeltas(input, fly, time.DeltaSeconds())
}

// FlyingCameraControlSystem moves first, along the axes the camera had at the
// start of the tick, then turns.
func FlyingCameraControlSystem(cam *core.OrientationState, fly *FlyingCamera, time *Time) {
	step := fly.Speed * time.DeltaSeconds()

	delta := cam.Forward().Mul(fly.Move.Z() * step).
		Add(cam.Up().Mul(fly.Move.Y() * step)).
		Add(cam.Right().Mul(fly.Move.X() * step))
	cam.Translate(delta)

	cam.RotateBy(fly.Yaw, ClampPitch(cam, fly.Pitch, fly.MaxPitch))
}
