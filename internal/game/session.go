package game

import (
	"fmt"
	"time"
)

// GameState is the shell-visible lifecycle of a session.
type GameState int

const (
	StateMenu GameState = iota
	StateRunning
	StatePaused
	StateGameOver
)

// Message is the single transient HUD pop. A new message replaces the old
// one; the remaining ticks drive the fade.
type Message struct {
	Text  string
	Color RGB
	Ticks int
}

// hazardSource lets a mode expose danger cells without widening the
// ModeStrategy interface.
type hazardSource interface {
	HazardCells() []Position
}

// GameSession owns all mutable run state and drives one simulation step per
// Tick. It is single-threaded: nothing here locks, and no collaborator
// keeps a reference between ticks except through the session itself.
type GameSession struct {
	Cfg Config

	Snake   *SnakeBody
	Food    *FoodSpawner
	Effects *EffectRegistry
	Scoring *ScoreCompositor
	Mode    ModeStrategy

	Score      int
	HighScore  int
	CurrentFps int
	State      GameState
	Clock      float64 // real seconds inside the current run
	Ticks      int

	Msg Message

	Render RenderSink
	Audio  AudioSink
	Stats  StatsSink
	Bus    *EventBus

	// longest stretch spent at or above the configured speed cap,
	// wall-clock seconds
	topSpeedStreak float64
	topSpeedBest   float64

	rng  *Rand
	quit bool
}

// NewSession builds a ready-to-run session from a validated config. Sinks
// default to no-ops so headless use needs no wiring. Seed 0 means "now".
func NewSession(cfg Config) *GameSession {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &GameSession{
		Cfg:        cfg,
		Snake:      NewSnake(cfg.SnakeLength),
		Food:       NewFoodSpawner(splitmix64(seed ^ 0xF00D)),
		Effects:    NewEffectRegistry(),
		Scoring:    NewScoreCompositor(),
		CurrentFps: cfg.Fps,
		State:      StateMenu,
		Render:     NoopRender{},
		Audio:      NoopAudio{},
		Stats:      NoopStats{},
		Bus:        NewEventBus(),
		rng:        NewRand(splitmix64(seed ^ 0xD1CE)),
	}
	s.Mode = NewMode(cfg.Mode, cfg)
	return s
}

// SetMode swaps the ruleset. Only sensible outside a run; the menu calls
// this before StartRun.
func (s *GameSession) SetMode(name string) {
	if _, ok := modeBuilders[name]; !ok {
		return
	}
	s.Cfg.Mode = name
	s.Mode = NewMode(name, s.Cfg)
}

// StartRun resets the board and begins a fresh run in the configured mode.
func (s *GameSession) StartRun() {
	s.Score = 0
	s.Ticks = 0
	s.Clock = 0
	s.CurrentFps = s.Cfg.Fps
	s.topSpeedStreak = 0
	s.topSpeedBest = 0
	s.Msg = Message{}
	s.Snake.Reset()
	s.Effects.Clear()
	s.Scoring.Reset()
	s.Mode.Start(s)
	s.Food.Respawn(s.Snake.Body, s.hazardCells())
	s.State = StateRunning
	s.Render.MarkFullRedraw()
}

// RestartRun rebuilds the board mid-run without touching the mode: score,
// snake, food, pace and clock return to their run-start values. This is
// the full-reset path perfection collisions take.
func (s *GameSession) RestartRun() {
	s.Score = 0
	s.Ticks = 0
	s.Clock = 0
	s.CurrentFps = s.Cfg.Fps
	s.topSpeedStreak = 0
	s.Snake.Reset()
	s.Effects.Clear()
	s.Scoring.Reset()
	s.Food.Respawn(s.Snake.Body, s.hazardCells())
	s.Bus.Emit(Event{Type: EventRunReset})
	s.Render.MarkFullRedraw()
}

// ShowMessage replaces the transient HUD pop.
func (s *GameSession) ShowMessage(text string, color RGB) {
	s.Msg = Message{Text: text, Color: color, Ticks: MessageTicks}
}

// StepClock advances the wall-clock timer family. The shell feeds real
// frame time; tests feed synthetic time. Paused and ended sessions do not
// keep time.
func (s *GameSession) StepClock(dt float64) {
	if s.State != StateRunning || dt <= 0 {
		return
	}
	s.Clock += dt
	if s.CurrentFps >= s.Cfg.MaxFps {
		s.topSpeedStreak += dt
		if s.topSpeedStreak > s.topSpeedBest {
			s.topSpeedBest = s.topSpeedStreak
		}
	} else {
		s.topSpeedStreak = 0
	}
}

// Steer records a direction request, honoring a live reversed-controls
// window.
func (s *GameSession) Steer(d Direction) {
	if s.Effects.Has(EffectReverseControls) {
		d = d.Opposite()
	}
	s.Snake.SetPendingDirection(d)
}

// TogglePause flips between running and paused.
func (s *GameSession) TogglePause() {
	switch s.State {
	case StateRunning:
		s.State = StatePaused
	case StatePaused:
		s.State = StateRunning
	}
}

// Quit raises the global quit flag, checked once per tick and by the shell
// loop.
func (s *GameSession) Quit() {
	s.quit = true
}

func (s *GameSession) Quitting() bool {
	return s.quit
}

// wallPolicy is the effective policy this tick. A live no-walls window
// makes any board toroidal, and so does invincibility: a wall cannot stop
// what nothing can stop.
func (s *GameSession) wallPolicy() WallPolicy {
	if s.Effects.Has(EffectNoWalls) || s.Effects.Invincible() {
		return WallsToroidal
	}
	return s.Cfg.Walls
}

func (s *GameSession) hazardCells() []Position {
	if hs, ok := s.Mode.(hazardSource); ok {
		return hs.HazardCells()
	}
	return nil
}

// Tick runs one fixed simulation step. The order is load-bearing: input is
// already latched, the mode acts first, the snake moves, food and effects
// count down, consumption resolves, then the mode judges any collision.
func (s *GameSession) Tick() {
	if s.State != StateRunning || s.quit {
		return
	}
	s.Ticks++

	if s.Msg.Ticks > 0 {
		s.Msg.Ticks--
	}

	if !s.Mode.Update(s) {
		s.endRun()
		return
	}

	tail, vacated := s.Snake.Advance()
	if vacated {
		s.Render.MarkDirtyCell(tail.X, tail.Y)
	}
	if s.wallPolicy() == WallsToroidal {
		s.Snake.Wrap()
	}
	head := s.Snake.Head()
	s.Render.MarkDirtyCell(head.X, head.Y)

	s.Food.Tick()
	for _, eff := range s.Effects.Tick() {
		s.expireEffect(eff)
	}

	if head == s.Food.Pos {
		s.consumeFood()
	}

	if s.Snake.CheckCollision(s.wallPolicy()) && !s.Effects.Invincible() {
		switch s.Mode.CollisionOverride(s) {
		case ActionEndRun:
			s.endRun()
		case ActionResetRun:
			s.Render.MarkFullRedraw()
		case ActionContinue:
		}
	}
}

// consumeFood resolves one food event in the inherited order: grow, apply
// the effect, compose the score, announce, respawn, then the global
// score-driven speed rule.
func (s *GameSession) consumeFood() {
	kind := s.Food.Kind
	payload := s.Food.Payload
	cell := s.Food.Pos

	if g := s.Food.Growth(); g > 0 {
		s.Snake.MarkGrowth()
		if g > 1 {
			s.Snake.Grow(g - 1)
		}
	}
	s.applyFoodEffect(kind, payload)

	gained := s.Scoring.Compose(s.Food.Value(), s.Mode.ScoreMultiplier())
	s.Score += gained

	if kind == FoodNormal {
		s.ShowMessage(fmt.Sprintf("+%d", gained), ColorWhite)
	} else {
		s.ShowMessage(fmt.Sprintf("%s! +%d", foodLabel(kind), gained), ColorGold)
	}

	s.Food.Respawn(s.Snake.Body, s.hazardCells())
	s.Render.MarkDirtyCell(cell.X, cell.Y)
	s.Render.MarkDirtyCell(s.Food.Pos.X, s.Food.Pos.Y)

	if kind == FoodNormal {
		s.Audio.Play("eat_food")
	} else {
		s.Audio.Play("eat_special")
		s.Bus.Emit(Event{Type: EventSpecialFood, X: cell.X, Y: cell.Y, Name: kind.String()})
	}
	s.Bus.Emit(Event{Type: EventFoodEaten, X: cell.X, Y: cell.Y, Data: gained, Name: kind.String()})

	if s.Score > 0 && s.Score%s.Cfg.SpeedInterval == 0 {
		s.CurrentFps = min(s.Cfg.MaxFps, s.CurrentFps+s.Cfg.SpeedAmount)
	}
}

// applyFoodEffect hands a consumed category to its effect path. Kinds
// without one fall through untouched.
func (s *GameSession) applyFoodEffect(kind FoodKind, p EffectPayload) {
	switch kind {
	case FoodDoubleScore:
		s.Scoring.ArmFruitMultiplier(p.Multiplier)
	case FoodSpeedUp:
		s.Effects.Add(ActiveEffect{
			Kind:           EffectSpeedBoost,
			RemainingTicks: p.Duration,
			RollbackFps:    s.CurrentFps,
		})
		s.CurrentFps = clamp(s.CurrentFps+p.FpsDelta, MinFps, AbsoluteFpsCap)
	case FoodSpeedDown:
		s.Effects.Add(ActiveEffect{
			Kind:           EffectSpeedSlow,
			RemainingTicks: p.Duration,
			RollbackFps:    s.CurrentFps,
		})
		s.CurrentFps = clamp(s.CurrentFps+p.FpsDelta, MinFps, AbsoluteFpsCap)
	case FoodLengthDouble:
		s.Snake.Grow(s.Snake.Length())
	case FoodShrink:
		for _, c := range s.Snake.Shrink(s.Snake.Length()/2, 3) {
			s.Render.MarkDirtyCell(c.X, c.Y)
		}
	case FoodInvincible:
		s.Effects.GrantInvincibility(p.Duration)
	}
}

// expireEffect applies an expired effect's rollback. Kinds with nothing to
// roll back, and kinds this session does not know, fade silently.
func (s *GameSession) expireEffect(eff ActiveEffect) {
	switch eff.Kind {
	case EffectSpeedBoost, EffectSpeedSlow, EffectTimeFast, EffectTimeSlow:
		s.CurrentFps = clamp(eff.RollbackFps, MinFps, AbsoluteFpsCap)
		s.ShowMessage("SPEED BACK TO NORMAL", ColorWhite)
	case EffectMultiplyFood:
		s.ShowMessage("EXTRA FOOD GONE", ColorWhite)
		s.Render.MarkFullRedraw()
	}
}

// endRun closes the run: sound, high score, stats report, mode teardown.
func (s *GameSession) endRun() {
	s.State = StateGameOver
	s.Audio.Play("game_over")
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		s.Bus.Emit(Event{Type: EventHighScore, Data: s.Score})
	}
	s.Stats.ReportRun(RunReport{
		Score:           s.Score,
		Length:          s.Snake.Length(),
		Seconds:         s.Clock,
		Mode:            s.Mode.Name(),
		TopSpeedSeconds: s.topSpeedBest,
	})
	s.Bus.Emit(Event{Type: EventRunEnded, Data: s.Score, Name: s.Mode.Name()})
	s.Mode.End(s)
	s.Render.MarkFullRedraw()
}

// Snapshot is the complete serializable state of a run. Timed effects and
// the invincibility window are deliberately not part of the shape; a
// restored session starts effect-free.
type Snapshot struct {
	Score        int            `json:"score"`
	SnakeBody    []Position     `json:"snake_body"`
	Direction    [2]int         `json:"direction"`
	FoodPosition Position       `json:"food_position"`
	FoodType     string         `json:"food_type"`
	FoodTimer    int            `json:"food_timer"`
	CurrentFps   int            `json:"current_fps"`
	GameTime     float64        `json:"game_time_seconds"`
	ModeName     string         `json:"mode_name"`
	ModeState    map[string]any `json:"mode_state"`
}

// Snapshot captures the running state for persistence.
func (s *GameSession) Snapshot() Snapshot {
	dx, dy := s.Snake.Dir.Delta()
	body := make([]Position, len(s.Snake.Body))
	copy(body, s.Snake.Body)
	return Snapshot{
		Score:        s.Score,
		SnakeBody:    body,
		Direction:    [2]int{dx, dy},
		FoodPosition: s.Food.Pos,
		FoodType:     s.Food.Kind.String(),
		FoodTimer:    s.Food.SpecialTicks,
		CurrentFps:   s.CurrentFps,
		GameTime:     s.Clock,
		ModeName:     s.Mode.Name(),
		ModeState:    s.Mode.ModeState(),
	}
}

// Restore rebuilds the session from a snapshot and resumes it running. The
// mode is rebuilt from its stored name when it differs from the current
// one, then handed its opaque state back.
func (s *GameSession) Restore(snap Snapshot) {
	s.Score = snap.Score
	s.Ticks = 0
	s.Clock = snap.GameTime
	s.topSpeedStreak = 0

	if len(snap.SnakeBody) > 0 {
		s.Snake.Body = append(s.Snake.Body[:0], snap.SnakeBody...)
	} else {
		s.Snake.Reset()
	}
	s.Snake.Dir = dirFromDelta(snap.Direction[0], snap.Direction[1])
	s.Snake.Pending = s.Snake.Dir

	s.Food.Restore(ParseFoodKind(snap.FoodType), snap.FoodPosition, snap.FoodTimer)
	s.Effects.Clear()
	s.Scoring.Reset()

	if s.Mode == nil || s.Mode.Name() != snap.ModeName {
		cfg := s.Cfg
		cfg.Mode = snap.ModeName
		s.Mode = NewMode(snap.ModeName, cfg)
		s.Cfg.Mode = s.Mode.Name()
	}
	s.Mode.Start(s)
	s.Mode.RestoreState(snap.ModeState)

	s.CurrentFps = snap.CurrentFps
	s.Msg = Message{}
	s.State = StateRunning
	s.Render.MarkFullRedraw()
}
