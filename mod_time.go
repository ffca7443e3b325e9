package hellomesh

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration

	// Frames counts every Step; FPS is measured over the last full second.
	Frames uint64
	FPS    float64

	windowStart  time.Time
	windowFrames int
}

type TimeModule struct {
	// LogFPS writes the measured rate at debug level once per second.
	LogFPS bool
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Time:        now,
		windowStart: now,
	})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
	if mod.LogFPS {
		log := app.Logger()
		cmd.UseSystem(System(func(t *Time) {
			if t.windowFrames == 0 && t.Frames > 0 {
				log.Debugf("%.1f FPS (%s frame)", t.FPS, t.Dt)
			}
		}).InStage(PostRender))
	}
}

func timeSystem(timeResource *Time) {
	timeResource.tick(time.Now())
}

func (t *Time) tick(now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Frames++
	t.windowFrames++

	if elapsed := now.Sub(t.windowStart); elapsed >= time.Second {
		t.FPS = float64(t.windowFrames) / elapsed.Seconds()
		t.windowStart = now
		t.windowFrames = 0
	}
}
