package marcher

import (
	"fmt"
	"time"
)

// FpsCounter averages frame rate over one-second windows.
type FpsCounter struct {
	frames  int
	elapsed time.Duration
	Last    float64
}

// Tick adds one frame of length dt. It reports a new average once at least a
// second has accumulated, then starts the next window.
func (c *FpsCounter) Tick(dt time.Duration) (fps float64, ready bool) {
	c.frames++
	c.elapsed += dt
	if c.elapsed < time.Second {
		return c.Last, false
	}
	c.Last = float64(c.frames) / c.elapsed.Seconds()
	c.frames = 0
	c.elapsed = 0
	return c.Last, true
}

// FpsModule shows the frame rate in the window title.
type FpsModule struct{}

func (mod FpsModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, 0, 0, "")
	cmd.AddResources(&FpsCounter{})
	log := app.Logger()
	app.UseSystem(
		System(func(ws *WindowState, t *Time, counter *FpsCounter) {
			fpsTitleSystem(ws, t, counter, log)
		}).InStage(PostRender),
	)
}

func fpsTitleSystem(ws *WindowState, t *Time, counter *FpsCounter, log Logger) {
	fps, ready := counter.Tick(t.Dt)
	if !ready {
		return
	}
	ws.SetTitleSuffix(fmt.Sprintf("%.0f fps", fps))
	log.Debugf("%.1f fps", fps)
}
