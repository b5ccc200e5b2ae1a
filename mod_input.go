package marcher

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyW int = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyControl
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyEscape
	keyCount
)

type InputModule struct {
	// CaptureMouse starts with the cursor hidden and recentred every tick.
	CaptureMouse bool
}

type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// MouseDeltaX/Y is the cursor offset from the window centre, sampled before
	// the cursor is moved back to the centre. Zero while not captured.
	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	WindowWidth, WindowHeight int

	cursorCentred bool
}

// setKey records the key's state for this tick and derives the edge flags.
func (input *Input) setKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, 0, 0, "")
	cmd.AddResources(&Input{MouseCaptured: mod.CaptureMouse})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input, cmd *Commands) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.setKey(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}

	if s.windowGlfw.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.Exit()
		return
	}

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
	cx, cy := float64(input.WindowWidth)/2, float64(input.WindowHeight)/2

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}

	mx, my := s.windowGlfw.GetCursorPos()
	input.MouseX, input.MouseY = mx, my
	input.MouseDeltaX, input.MouseDeltaY = 0, 0

	if input.MouseCaptured {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		// on the first captured tick the cursor is wherever it was left; skip that jump
		if input.cursorCentred {
			input.MouseDeltaX = mx - cx
			input.MouseDeltaY = my - cy
		}
		s.windowGlfw.SetCursorPos(cx, cy)
		input.cursorCentred = true
	} else {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		input.cursorCentred = false
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyW:        glfw.KeyW,
	KeyA:        glfw.KeyA,
	KeyS:        glfw.KeyS,
	KeyD:        glfw.KeyD,
	KeySpace:    glfw.KeySpace,
	KeyControl:  glfw.KeyLeftControl,
	KeyPageUp:   glfw.KeyPageUp,
	KeyPageDown: glfw.KeyPageDown,
	KeyUp:       glfw.KeyUp,
	KeyDown:     glfw.KeyDown,
	KeyLeft:     glfw.KeyLeft,
	KeyRight:    glfw.KeyRight,
	KeyTab:      glfw.KeyTab,
	KeyEscape:   glfw.KeyEscape,
}
