package manifest

import (
	"fmt"
	"time"
)

// Phase is the timing of one step of a merge.
type Phase struct {
	Name        string        `yaml:"name"`
	StartTime   time.Time     `yaml:"start_time"`
	Duration    time.Duration `yaml:"elapsed"`
	DurationStr string        `yaml:"duration"`
}

// PhaseTimer records consecutive merge phases.
type PhaseTimer struct {
	start   time.Time
	current *Phase
	phases  []Phase
	now     func() time.Time
}

// NewPhaseTimer starts timing a merge.
func NewPhaseTimer() *PhaseTimer {
	t := &PhaseTimer{now: time.Now}
	t.start = t.now()
	return t
}

// Start ends the running phase, if any, and begins the named one.
func (t *PhaseTimer) Start(name string) {
	t.stop()
	t.current = &Phase{Name: name, StartTime: t.now().UTC()}
}

func (t *PhaseTimer) stop() {
	if t.current == nil {
		return
	}
	p := *t.current
	p.Duration = t.now().Sub(p.StartTime)
	p.DurationStr = formatDuration(p.Duration)
	t.phases = append(t.phases, p)
	t.current = nil
}

// Finish ends the running phase and returns every phase and the total.
func (t *PhaseTimer) Finish() ([]Phase, time.Duration) {
	t.stop()
	return t.phases, t.now().Sub(t.start)
}

// formatDuration renders d for the manifest: whole milliseconds under a
// second, tenths of a second under a minute, whole seconds above that.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
