package marcher

import (
	"time"
)

type Time struct {
	Start time.Time
	Time  time.Time
	Dt    time.Duration
}

// DeltaSeconds is the last tick's duration in seconds.
func (t *Time) DeltaSeconds() float32 {
	return float32(t.Dt.Seconds())
}

// Elapsed is the time since the module was installed, in seconds.
func (t *Time) Elapsed() float32 {
	return float32(t.Time.Sub(t.Start).Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Start: now,
		Time:  now,
		Dt:    0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(PreUpdate),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}
