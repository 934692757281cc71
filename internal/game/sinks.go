package game

// RenderSink receives cell invalidations from the simulation. The core
// never draws anything; it only says which cells changed.
type RenderSink interface {
	MarkDirtyCell(x, y int)
	MarkFullRedraw()
}

// AudioSink receives fire-and-forget sound events. The simulation never
// hears back; a sink that cannot play stays quiet.
type AudioSink interface {
	Play(event string)
}

// RunReport is the end-of-run summary handed to the stats sink. Some
// fields accumulate across runs, some take the maximum; that split is
// the tracker's job, not the session's.
type RunReport struct {
	Score           int
	Length          int
	Seconds         float64
	Mode            string
	TopSpeedSeconds float64
}

// StatsSink receives one report per finished run.
type StatsSink interface {
	ReportRun(r RunReport)
}

// No-op sinks keep a headless session free of nil checks.

type NoopRender struct{}

func (NoopRender) MarkDirtyCell(int, int) {}
func (NoopRender) MarkFullRedraw()        {}

type NoopAudio struct{}

func (NoopAudio) Play(string) {}

type NoopStats struct{}

func (NoopStats) ReportRun(RunReport) {}
