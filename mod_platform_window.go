package marcher

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	defaultWindowWidth  = 1200
	defaultWindowHeight = 800
	defaultWindowTitle  = "Fractal Raymarcher"
)

// WindowState is the single shared glfw window. Renderer and input modules read it
// as a resource.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

func (s *WindowState) Title() string {
	return s.windowTitle
}

// SetTitleSuffix shows "<title> - <suffix>" without changing the base title.
func (s *WindowState) SetTitleSuffix(suffix string) {
	s.windowGlfw.SetTitle(fmt.Sprintf("%s - %s", s.windowTitle, suffix))
}

// refreshSize reads the framebuffer size and reports whether it changed.
func (s *WindowState) refreshSize() bool {
	w, h := s.windowGlfw.GetFramebufferSize()
	if w == s.WindowWidth && h == s.WindowHeight {
		return false
	}
	s.WindowWidth, s.WindowHeight = w, h
	return true
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // the surface comes from wgpu, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window %dx%d: %w", windowWidth, windowHeight, err)
	}

	fbWidth, fbHeight := win.GetFramebufferSize()
	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  fbWidth,
		WindowHeight: fbHeight,
		windowTitle:  windowTitle,
	}, nil
}

// PlatformWindowModule provides the shared WindowState resource.
// Install is idempotent: an existing WindowState is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow fills zero values with the defaults.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	if title == "" {
		title = defaultWindowTitle
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, m.Width, m.Height, m.Title)
}

func ensureWindowResource(app *App, width, height int, title string) *WindowState {
	if ws, ok := Resource[WindowState](app); ok {
		return ws
	}
	m := NewPlatformWindow(width, height, title)
	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		app.Logger().Errorf("Window creation failed: %v", err)
		panic(err)
	}
	app.addResources(ws)
	app.onClose(ws.Close)
	app.Logger().Infof("Created shared window (%dx%d) '%s'", m.Width, m.Height, m.Title)
	return ws
}

// Close destroys the window and shuts glfw down.
func (s *WindowState) Close() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}
