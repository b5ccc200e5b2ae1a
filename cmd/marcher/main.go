package main

import (
	"flag"
	"math"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/marcher"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	// glfw and the surface must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1200, "window width")
	height := flag.Int("height", 800, "window height")
	title := flag.String("title", "Fractal Raymarcher", "window title")
	speed := flag.Float64("speed", float64(marcher.DefaultFlySpeed), "movement speed, units per second")
	sensitivity := flag.Float64("sensitivity", float64(marcher.DefaultMouseSensitivity), "mouse sensitivity, radians per pixel")
	maxPitch := flag.Float64("max-pitch", float64(marcher.DefaultMaxPitchDegrees), "pitch limit in degrees, 0 locks the horizon, negative disables it")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	app := marcher.NewAppBuilder().
		UseModule(
			marcher.LoggingModule{Prefix: "marcher", Debug: *debug},
			marcher.NewPlatformWindow(*width, *height, *title),
			marcher.TimeModule{},
			marcher.InputModule{CaptureMouse: true},
			marcher.FlyingCameraModule{
				Speed:            float32(*speed),
				MouseSensitivity: float32(*sensitivity),
				MaxPitch:         pitchLimit(*maxPitch),
			},
			marcher.RaymarchModule{ClearColor: wgpu.Color{R: 0, G: 0, B: 0, A: 1}},
			marcher.FpsModule{},
		).
		Build()

	app.Run()
}

// pitchLimit converts the -max-pitch flag to radians. The module reads a zero
// limit as "use the default", so 0 degrees maps to the smallest positive limit.
func pitchLimit(degrees float64) float32 {
	switch {
	case degrees < 0:
		return -1
	case degrees == 0:
		return math.SmallestNonzeroFloat32
	}
	return mgl32.DegToRad(float32(degrees))
}
