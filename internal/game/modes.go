package game

import "fmt"

// CollisionAction is a mode's verdict on a collision: let the run continue
// untouched, end it, or rebuild the board and keep going. Exactly one
// verdict is produced per tick.
type CollisionAction int

const (
	ActionContinue CollisionAction = iota
	ActionEndRun
	ActionResetRun
)

// ModeStrategy is the pluggable ruleset. A mode owns its private counters,
// may mutate session speed and score policy during Update, and decides what
// a collision means. Update returning false ends the run.
type ModeStrategy interface {
	Name() string
	Start(s *GameSession)
	Update(s *GameSession) bool
	End(s *GameSession)
	ScoreMultiplier() float64
	StatusText() string
	CollisionOverride(s *GameSession) CollisionAction

	// ModeState and RestoreState carry the mode's counters through the
	// session snapshot as an opaque map. Restore tolerates missing or
	// mistyped keys; whatever cannot be read keeps its start value.
	ModeState() map[string]any
	RestoreState(st map[string]any)
}

// modeBuilders maps config mode names to constructors. Unknown names are
// caught by ClampConfig and fall back to classic.
var modeBuilders = map[string]func(cfg Config) ModeStrategy{
	"classic":     func(Config) ModeStrategy { return &ClassicMode{} },
	"time_attack": func(cfg Config) ModeStrategy { return &TimeAttackMode{Limit: cfg.TimeLimit} },
	"survival":    func(Config) ModeStrategy { return &SurvivalMode{} },
	"zen":         func(Config) ModeStrategy { return &ZenMode{} },
	"chaos":       func(Config) ModeStrategy { return &ChaosMode{} },
	"speedrun":    func(Config) ModeStrategy { return &SpeedRunMode{} },
	"perfection":  func(Config) ModeStrategy { return &PerfectionMode{} },
}

// modeOrder fixes the menu and registry listing order.
var modeOrder = []string{
	"classic", "time_attack", "survival", "zen", "chaos", "speedrun", "perfection",
}

var modeLabels = map[string]string{
	"classic":     "CLASSIC",
	"time_attack": "TIME ATTACK",
	"survival":    "SURVIVAL",
	"zen":         "ZEN",
	"chaos":       "CHAOS",
	"speedrun":    "SPEED RUN",
	"perfection":  "PERFECTION",
}

var modeBlurbs = map[string]string{
	"classic":     "THE CLASSIC GAME. SPEED GROWS WITH YOUR SCORE.",
	"time_attack": "120 SECONDS. COMBOS AND A FRANTIC FINALE.",
	"survival":    "EVER FASTER, EVER NASTIER. HAZARDS INCOMING.",
	"zen":         "SLOW AND UNHURRIED. COLLISIONS ONLY RESET YOU.",
	"chaos":       "RANDOM EVENTS STACK UP. ADAPT OR PERISH.",
	"speedrun":    "EVERY BITE MAKES YOU FASTER. HOLD ON.",
	"perfection":  "ONE MISTAKE RESETS EVERYTHING. BUILD THE STREAK.",
}

// NewMode builds the named mode. The name must already be validated.
func NewMode(name string, cfg Config) ModeStrategy {
	build, ok := modeBuilders[name]
	if !ok {
		build = modeBuilders["classic"]
	}
	return build(cfg)
}

// State map readers. Snapshot maps come back from JSON, so numbers arrive
// as float64; direct restores may still hold native ints.

func stateInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func stateFloat(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func stateBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func stateString(m map[string]any, key string, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

// ClassicMode is the plain ruleset: flat multiplier, every collision ends
// the run. The global score-driven speed rule does all the pacing.
type ClassicMode struct{}

func (*ClassicMode) Name() string                                { return "classic" }
func (*ClassicMode) Start(*GameSession)                          {}
func (*ClassicMode) Update(*GameSession) bool                    { return true }
func (*ClassicMode) End(*GameSession)                            {}
func (*ClassicMode) ScoreMultiplier() float64                    { return 1.0 }
func (*ClassicMode) StatusText() string                          { return "" }
func (*ClassicMode) CollisionOverride(*GameSession) CollisionAction { return ActionEndRun }
func (*ClassicMode) ModeState() map[string]any                   { return map[string]any{} }
func (*ClassicMode) RestoreState(map[string]any)                 {}

// TimeAttackMode races a wall-clock limit. The last 30 seconds raise the
// pace once, the last 10 double the take, and quick successive bites build
// a combo that decays after three idle seconds.
type TimeAttackMode struct {
	Limit float64

	remaining    float64
	rush         bool
	frenzy       bool
	combo        int
	lastEatClock float64
	lastScore    int
}

func (m *TimeAttackMode) Name() string { return "time_attack" }

func (m *TimeAttackMode) Start(s *GameSession) {
	if m.Limit <= 0 {
		m.Limit = TimeAttackLimit
	}
	m.remaining = m.Limit
	m.rush = false
	m.frenzy = false
	m.combo = 0
	m.lastEatClock = s.Clock
	m.lastScore = s.Score
}

func (m *TimeAttackMode) Update(s *GameSession) bool {
	m.remaining = m.Limit - s.Clock
	if m.remaining < 0 {
		m.remaining = 0
	}

	if m.remaining <= 30 && !m.rush {
		m.rush = true
		s.CurrentFps = min(25, s.CurrentFps+5)
		s.ShowMessage("RUSH HOUR! SPEED UP!", ColorGold)
		s.Audio.Play("level_up")
	}
	if m.remaining <= 10 && !m.frenzy {
		m.frenzy = true
		s.ShowMessage("FRENZY! DOUBLE SCORE!", ColorRed)
		s.Audio.Play("level_up")
	}

	if s.Clock-m.lastEatClock > ComboIdleSecs {
		m.combo = 0
	}
	if s.Score > m.lastScore {
		m.combo++
		m.lastEatClock = s.Clock
		if m.combo >= 5 {
			s.ShowMessage(fmt.Sprintf("COMBO X%d!", m.combo), ColorOrange)
		}
	}
	m.lastScore = s.Score

	if m.remaining <= 0 {
		bonus := m.combo * 10
		s.Score += bonus
		s.ShowMessage(fmt.Sprintf("TIME! COMBO BONUS +%d", bonus), ColorRed)
		return false
	}
	return true
}

func (m *TimeAttackMode) End(*GameSession) {}

func (m *TimeAttackMode) ScoreMultiplier() float64 {
	mult := 1.5
	if m.rush {
		mult += 0.5
	}
	if m.frenzy {
		mult *= 2
	}
	switch {
	case m.combo >= 10:
		mult += 1.0
	case m.combo >= 5:
		mult += 0.5
	case m.combo >= 3:
		mult += 0.2
	}
	return mult
}

func (m *TimeAttackMode) StatusText() string {
	st := fmt.Sprintf("TIME %.1fS", m.remaining)
	if m.combo > 0 {
		st += fmt.Sprintf(" | COMBO X%d", m.combo)
	}
	if m.rush {
		st += " | RUSH"
	}
	return st
}

func (m *TimeAttackMode) CollisionOverride(*GameSession) CollisionAction {
	return ActionEndRun
}

func (m *TimeAttackMode) ModeState() map[string]any {
	return map[string]any{
		"remaining_time":       m.remaining,
		"rush_mode":            m.rush,
		"time_bonus_triggered": m.frenzy,
		"combo_count":          m.combo,
		"last_eat_time":        m.lastEatClock,
		"last_score":           m.lastScore,
	}
}

func (m *TimeAttackMode) RestoreState(st map[string]any) {
	m.remaining = stateFloat(st, "remaining_time", m.Limit)
	m.rush = stateBool(st, "rush_mode", false)
	m.frenzy = stateBool(st, "time_bonus_triggered", false)
	m.combo = stateInt(st, "combo_count", 0)
	m.lastEatClock = stateFloat(st, "last_eat_time", 0)
	m.lastScore = stateInt(st, "last_score", 0)
}

// HazardType tags the two live hazard behaviors.
type HazardType int

const (
	HazardPoison HazardType = iota
	HazardSpeedTrap
)

func (t HazardType) String() string {
	if t == HazardSpeedTrap {
		return "speed_trap"
	}
	return "poison_zone"
}

func parseHazardType(name string) HazardType {
	if name == "speed_trap" {
		return HazardSpeedTrap
	}
	return HazardPoison
}

// Hazard is a timed danger zone. It acts on the snake whenever the head is
// within Manhattan distance Radius of its center cell.
type Hazard struct {
	Type           HazardType
	Pos            Position
	Radius         int
	RemainingTicks int
}

// Footprint returns every on-grid cell the hazard covers.
func (h Hazard) Footprint() []Position {
	cells := make([]Position, 0, 2*h.Radius*h.Radius+2*h.Radius+1)
	for dy := -h.Radius; dy <= h.Radius; dy++ {
		for dx := -h.Radius; dx <= h.Radius; dx++ {
			if abs(dx)+abs(dy) > h.Radius {
				continue
			}
			p := Position{X: h.Pos.X + dx, Y: h.Pos.Y + dy}
			if p.InBounds() {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// SurvivalMode turns the screws: speed steps up every 20 seconds worth of
// ticks, and from level 3 on the board grows timed danger zones.
type SurvivalMode struct {
	speedTimer  int
	base        float64
	level       int
	hazards     []Hazard
	hazardTimer int
	ticks       int
}

func (m *SurvivalMode) Name() string { return "survival" }

func (m *SurvivalMode) Start(*GameSession) {
	m.speedTimer = 0
	m.base = 1.0
	m.level = 1
	m.hazards = m.hazards[:0]
	m.hazardTimer = 0
	m.ticks = 0
}

func (m *SurvivalMode) Update(s *GameSession) bool {
	m.ticks++

	m.speedTimer++
	if m.speedTimer >= SurvivalStepSecs*s.CurrentFps {
		s.CurrentFps = min(SurvivalFpsCap, s.CurrentFps+2)
		m.speedTimer = 0
		m.base += 0.15
		m.level++
		s.ShowMessage(fmt.Sprintf("SURVIVAL LEVEL UP! LV.%d", m.level), ColorOrange)
		s.Audio.Play("level_up")
	}

	m.hazardTimer++
	if m.hazardTimer >= max(300, 600-m.level*30) {
		m.spawnHazard(s)
		m.hazardTimer = 0
	}

	m.updateHazards(s)
	return true
}

func (m *SurvivalMode) spawnHazard(s *GameSession) {
	if m.level < 3 {
		return
	}
	if s.rng.Intn(2) == 0 {
		var p Position
		for {
			p = Position{X: s.rng.Range(5, GridWidth-6), Y: s.rng.Range(5, GridHeight-6)}
			if !s.Snake.Contains(p) {
				break
			}
		}
		m.hazards = append(m.hazards, Hazard{
			Type: HazardPoison, Pos: p, Radius: 3,
			RemainingTicks: 15 * s.CurrentFps,
		})
		s.ShowMessage("POISON ZONE!", ColorPurple)
	} else {
		var p Position
		for {
			p = Position{X: s.rng.Range(3, GridWidth-4), Y: s.rng.Range(3, GridHeight-4)}
			if !s.Snake.Contains(p) {
				break
			}
		}
		m.hazards = append(m.hazards, Hazard{
			Type: HazardSpeedTrap, Pos: p, Radius: 2,
			RemainingTicks: 20 * s.CurrentFps,
		})
		s.ShowMessage("SPEED TRAP!", ColorBlue)
	}
	s.Audio.Play("hazard")
	s.Render.MarkFullRedraw()
}

func (m *SurvivalMode) updateHazards(s *GameSession) {
	head := s.Snake.Head()
	kept := m.hazards[:0]
	for i := range m.hazards {
		h := m.hazards[i]
		h.RemainingTicks--
		if h.RemainingTicks <= 0 {
			s.ShowMessage("HAZARD FADED", ColorWhite)
			s.Render.MarkFullRedraw()
			continue
		}
		if head.Manhattan(h.Pos) <= h.Radius {
			switch h.Type {
			case HazardPoison:
				if s.Snake.Length() > 3 && s.rng.Float64() < 0.1 {
					for _, c := range s.Snake.Shrink(1, 3) {
						s.Render.MarkDirtyCell(c.X, c.Y)
					}
					s.ShowMessage("POISONED! BODY SHRINKS", ColorPurple)
				}
			case HazardSpeedTrap:
				if s.CurrentFps > 5 {
					s.CurrentFps--
				}
				s.ShowMessage("CAUGHT IN SPEED TRAP!", ColorBlue)
			}
		}
		kept = append(kept, h)
	}
	m.hazards = kept
}

func (m *SurvivalMode) End(*GameSession) {}

func (m *SurvivalMode) ScoreMultiplier() float64 {
	return m.base + min(2.0, float64(m.ticks)/3600.0)
}

func (m *SurvivalMode) StatusText() string {
	return fmt.Sprintf("SURVIVAL LV.%d | HAZARDS %d | %dS",
		m.level, len(m.hazards), m.ticks/60)
}

func (m *SurvivalMode) CollisionOverride(*GameSession) CollisionAction {
	return ActionEndRun
}

// Hazards returns the live danger zones for rendering.
func (m *SurvivalMode) Hazards() []Hazard {
	return m.hazards
}

// HazardCells returns every covered cell, so food never lands in a zone.
func (m *SurvivalMode) HazardCells() []Position {
	var cells []Position
	for _, h := range m.hazards {
		cells = append(cells, h.Footprint()...)
	}
	return cells
}

func (m *SurvivalMode) ModeState() map[string]any {
	hs := make([]any, 0, len(m.hazards))
	for _, h := range m.hazards {
		hs = append(hs, map[string]any{
			"type":      h.Type.String(),
			"x":         h.Pos.X,
			"y":         h.Pos.Y,
			"radius":    h.Radius,
			"remaining": h.RemainingTicks,
		})
	}
	return map[string]any{
		"speed_increase_timer":  m.speedTimer,
		"current_multiplier":    m.base,
		"survival_level":        m.level,
		"hazard_timer":          m.hazardTimer,
		"survival_time":         m.ticks,
		"environmental_hazards": hs,
	}
}

func (m *SurvivalMode) RestoreState(st map[string]any) {
	m.speedTimer = stateInt(st, "speed_increase_timer", 0)
	m.base = stateFloat(st, "current_multiplier", 1.0)
	m.level = stateInt(st, "survival_level", 1)
	m.hazardTimer = stateInt(st, "hazard_timer", 0)
	m.ticks = stateInt(st, "survival_time", 0)
	m.hazards = m.hazards[:0]
	raw, ok := st["environmental_hazards"].([]any)
	if !ok {
		return
	}
	for _, e := range raw {
		hm, ok := e.(map[string]any)
		if !ok {
			continue
		}
		m.hazards = append(m.hazards, Hazard{
			Type:           parseHazardType(stateString(hm, "type", "poison_zone")),
			Pos:            Position{X: stateInt(hm, "x", 0), Y: stateInt(hm, "y", 0)},
			Radius:         stateInt(hm, "radius", 1),
			RemainingTicks: stateInt(hm, "remaining", 0),
		})
	}
}

// ZenMode never lets anything hurry or end you. The pace is pinned slow,
// collisions just re-center the snake, and points trickle in for simply
// being there.
type ZenMode struct {
	level  int
	points float64
}

func (m *ZenMode) Name() string { return "zen" }

func (m *ZenMode) Start(s *GameSession) {
	m.level = 1
	m.points = 0
	s.CurrentFps = ZenFps
}

func (m *ZenMode) Update(s *GameSession) bool {
	s.CurrentFps = ZenFps
	m.points += 0.1

	if s.Score > 0 && s.Score%100 == 0 && s.Score/100 > m.level-1 {
		m.level++
		s.ShowMessage(fmt.Sprintf("ZEN LEVEL UP! LV.%d", m.level), ColorGold)
		s.Audio.Play("level_up")
	}
	return true
}

func (m *ZenMode) End(*GameSession) {}

func (m *ZenMode) ScoreMultiplier() float64 {
	return 0.5 + float64(m.level)*0.1
}

func (m *ZenMode) StatusText() string {
	return fmt.Sprintf("ZEN LV.%d | POINTS %d", m.level, int(m.points))
}

func (m *ZenMode) CollisionOverride(s *GameSession) CollisionAction {
	s.Snake.Reset()
	m.points += ZenCollisionPoints
	s.ShowMessage("BREATHE. BEGIN AGAIN...", ColorPurple)
	return ActionResetRun
}

func (m *ZenMode) ModeState() map[string]any {
	return map[string]any{
		"zen_level":  m.level,
		"zen_points": m.points,
	}
}

func (m *ZenMode) RestoreState(st map[string]any) {
	m.level = stateInt(st, "zen_level", 1)
	m.points = stateFloat(st, "zen_points", 0)
}

// ChaosMode fires random events on a shrinking timer. Timed events go
// through the central effect registry; immediate ones mutate the board on
// the spot. Ten events raise the chaos level, which shortens the timer
// further and fattens the multiplier.
type ChaosMode struct {
	eventTimer  int
	level       int
	totalEvents int

	// mirrored from the registry each update so the multiplier does not
	// need registry access at scoring time
	doubleScore bool
	activeCount int
}

func (m *ChaosMode) Name() string { return "chaos" }

func (m *ChaosMode) Start(*GameSession) {
	m.eventTimer = 0
	m.level = 1
	m.totalEvents = 0
	m.doubleScore = false
	m.activeCount = 0
}

func (m *ChaosMode) Update(s *GameSession) bool {
	base := max(8, 25-m.level*2)
	interval := s.rng.Range(base, base+10) * s.CurrentFps

	m.eventTimer++
	if m.eventTimer >= interval {
		m.triggerEvents(s)
		m.eventTimer = 0
	}

	if m.totalEvents > 0 && m.totalEvents%10 == 0 && m.totalEvents/10 > m.level-1 {
		m.level++
		s.ShowMessage(fmt.Sprintf("CHAOS LEVEL UP! LV.%d", m.level), ColorRed)
		s.Audio.Play("level_up")
	}

	m.doubleScore = s.Effects.Has(EffectDoubleScore)
	m.activeCount = s.Effects.Count()
	return true
}

func (m *ChaosMode) triggerEvents(s *GameSession) {
	events := []func(*GameSession){
		m.speedBoost,
		m.speedSlow,
		m.doubleFood,
		m.invisibleWalls,
		m.reverseControls,
		m.shrinkSnake,
		m.multiplyFood,
		m.teleportSnake,
		m.gravityShift,
		m.timeDistortion,
	}

	n := 1
	if m.level >= 3 && s.rng.Float64() < 0.3 {
		n = 2
	} else if m.level >= 5 && s.rng.Float64() < 0.2 {
		n = 3
	}

	// partial shuffle: draw n distinct events
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(events)-i)
		events[i], events[j] = events[j], events[i]
		events[i](s)
	}
	m.totalEvents += n
	s.Audio.Play("chaos_event")
}

func (m *ChaosMode) speedBoost(s *GameSession) {
	s.CurrentFps = min(40, s.CurrentFps+5)
	s.ShowMessage("SPEED BOOST!", ColorOrange)
	s.Effects.Add(ActiveEffect{
		Kind:           EffectSpeedBoost,
		RemainingTicks: 10 * s.CurrentFps,
		RollbackFps:    s.CurrentFps - 5,
	})
}

func (m *ChaosMode) speedSlow(s *GameSession) {
	s.CurrentFps = max(5, s.CurrentFps-3)
	s.ShowMessage("SPEED SLOW!", ColorBlue)
	s.Effects.Add(ActiveEffect{
		Kind:           EffectSpeedSlow,
		RemainingTicks: 8 * s.CurrentFps,
		RollbackFps:    s.CurrentFps + 3,
	})
}

func (m *ChaosMode) doubleFood(s *GameSession) {
	s.ShowMessage("DOUBLE SCORE!", ColorGold)
	s.Effects.Add(ActiveEffect{
		Kind:           EffectDoubleScore,
		RemainingTicks: 15 * s.CurrentFps,
	})
}

func (m *ChaosMode) invisibleWalls(s *GameSession) {
	s.ShowMessage("GHOST WALLS!", ColorPurple)
	s.Effects.Add(ActiveEffect{
		Kind:           EffectNoWalls,
		RemainingTicks: 20 * s.CurrentFps,
	})
}

func (m *ChaosMode) reverseControls(s *GameSession) {
	s.ShowMessage("CONTROLS REVERSED!", ColorRed)
	s.Effects.Add(ActiveEffect{
		Kind:           EffectReverseControls,
		RemainingTicks: 12 * s.CurrentFps,
	})
}

func (m *ChaosMode) shrinkSnake(s *GameSession) {
	if s.Snake.Length() <= 3 {
		return
	}
	n := max(1, s.Snake.Length()/3)
	removed := s.Snake.Shrink(n, 3)
	for _, c := range removed {
		s.Render.MarkDirtyCell(c.X, c.Y)
	}
	s.ShowMessage(fmt.Sprintf("SNAKE SHRUNK! -%d", len(removed)), ColorOrange)
}

func (m *ChaosMode) multiplyFood(s *GameSession) {
	s.ShowMessage("FOOD FRENZY!", ColorGreen)
	eff := ActiveEffect{
		Kind:           EffectMultiplyFood,
		RemainingTicks: 20 * s.CurrentFps,
	}
	count := s.rng.Range(3, 5)
	for i := 0; i < count; i++ {
		for {
			p := Position{X: s.rng.Intn(GridWidth), Y: s.rng.Intn(GridHeight)}
			if !s.Snake.Contains(p) {
				eff.ExtraFoods = append(eff.ExtraFoods, p)
				break
			}
		}
	}
	s.Effects.Add(eff)
	s.Render.MarkFullRedraw()
}

func (m *ChaosMode) teleportSnake(s *GameSession) {
	for {
		p := Position{X: s.rng.Range(2, GridWidth-3), Y: s.rng.Range(2, GridHeight-3)}
		if !containsPos(s.Snake.Body[1:], p) {
			old := s.Snake.Head()
			s.Snake.Body[0] = p
			s.Render.MarkDirtyCell(old.X, old.Y)
			s.Render.MarkDirtyCell(p.X, p.Y)
			s.ShowMessage("TELEPORTED!", ColorPurple)
			break
		}
	}
}

func (m *ChaosMode) gravityShift(s *GameSession) {
	dirs := [4]Direction{DirUp, DirDown, DirLeft, DirRight}
	s.ShowMessage("GRAVITY SHIFT!", ColorBlue)
	s.Effects.Add(ActiveEffect{
		Kind:           EffectGravityShift,
		RemainingTicks: 15 * s.CurrentFps,
		Drift:          dirs[s.rng.Intn(4)],
	})
}

func (m *ChaosMode) timeDistortion(s *GameSession) {
	if s.rng.Float64() < 0.5 {
		s.CurrentFps = min(30, s.CurrentFps+8)
		s.ShowMessage("TIME SPEEDS UP!", ColorGold)
		s.Effects.Add(ActiveEffect{
			Kind:           EffectTimeFast,
			RemainingTicks: 10 * s.CurrentFps,
			RollbackFps:    s.CurrentFps - 8,
		})
	} else {
		s.CurrentFps = max(3, s.CurrentFps-5)
		s.ShowMessage("TIME SLOWS DOWN!", ColorBlue)
		s.Effects.Add(ActiveEffect{
			Kind:           EffectTimeSlow,
			RemainingTicks: 10 * s.CurrentFps,
			RollbackFps:    s.CurrentFps + 5,
		})
	}
}

func (m *ChaosMode) End(*GameSession) {}

func (m *ChaosMode) ScoreMultiplier() float64 {
	mult := 1.0 + float64(m.level)*0.2
	if m.doubleScore {
		mult *= 2.0
	}
	if m.activeCount > 0 {
		mult += float64(m.activeCount) * 0.1
	}
	return mult
}

func (m *ChaosMode) StatusText() string {
	st := fmt.Sprintf("CHAOS LV.%d | EVENTS %d", m.level, m.totalEvents)
	if m.activeCount > 0 {
		st += fmt.Sprintf(" | EFFECTS %d", m.activeCount)
	}
	return st
}

func (m *ChaosMode) CollisionOverride(*GameSession) CollisionAction {
	return ActionEndRun
}

func (m *ChaosMode) ModeState() map[string]any {
	return map[string]any{
		"event_timer":  m.eventTimer,
		"chaos_level":  m.level,
		"total_events": m.totalEvents,
	}
}

func (m *ChaosMode) RestoreState(st map[string]any) {
	m.eventTimer = stateInt(st, "event_timer", 0)
	m.level = stateInt(st, "chaos_level", 1)
	m.totalEvents = stateInt(st, "total_events", 0)
}

// SpeedRunMode rewards eating with raw pace. Growth is detected through
// the body length against a baseline of three starting cells.
type SpeedRunMode struct {
	speedLevel int
	maxSpeed   int
	foodEaten  int
	boostTimer int
}

func (m *SpeedRunMode) Name() string { return "speedrun" }

func (m *SpeedRunMode) Start(s *GameSession) {
	m.speedLevel = 1
	m.maxSpeed = s.CurrentFps
	m.foodEaten = 0
	m.boostTimer = 0
}

func (m *SpeedRunMode) Update(s *GameSession) bool {
	if s.Snake.Length() > m.foodEaten+3 {
		m.foodEaten = s.Snake.Length() - 3
		s.CurrentFps = min(SpeedRunFpsCap, s.CurrentFps+2)
		m.speedLevel++
		if s.CurrentFps > m.maxSpeed {
			m.maxSpeed = s.CurrentFps
		}
		s.ShowMessage(fmt.Sprintf("SPEED LEVEL UP! LV.%d", m.speedLevel), ColorOrange)
		s.Audio.Play("level_up")
		m.boostTimer = 3 * s.CurrentFps
	}

	if m.boostTimer > 0 {
		m.boostTimer--
		if m.boostTimer%10 == 0 {
			s.CurrentFps = min(BoostFpsCap, s.CurrentFps+1)
		}
	}
	return true
}

func (m *SpeedRunMode) End(*GameSession) {}

func (m *SpeedRunMode) ScoreMultiplier() float64 {
	return 1.0 + float64(m.speedLevel)*0.05
}

func (m *SpeedRunMode) StatusText() string {
	return fmt.Sprintf("SPEED LV.%d | TOP %d FPS", m.speedLevel, m.maxSpeed)
}

func (m *SpeedRunMode) CollisionOverride(*GameSession) CollisionAction {
	return ActionEndRun
}

func (m *SpeedRunMode) ModeState() map[string]any {
	return map[string]any{
		"speed_level":       m.speedLevel,
		"max_speed_reached": m.maxSpeed,
		"food_eaten":        m.foodEaten,
		"speed_boost_timer": m.boostTimer,
	}
}

func (m *SpeedRunMode) RestoreState(st map[string]any) {
	m.speedLevel = stateInt(st, "speed_level", 1)
	m.maxSpeed = stateInt(st, "max_speed_reached", DefaultFps)
	m.foodEaten = stateInt(st, "food_eaten", 0)
	m.boostTimer = stateInt(st, "speed_boost_timer", 0)
}

// PerfectionMode is all-or-nothing: a collision wipes the run back to its
// start while the streak record and reset count carry on.
type PerfectionMode struct {
	streak      int
	totalResets int
	bestStreak  int
	bonus       float64
	lastScore   int
}

func (m *PerfectionMode) Name() string { return "perfection" }

func (m *PerfectionMode) Start(*GameSession) {
	m.streak = 0
	m.totalResets = 0
	m.bestStreak = 0
	m.bonus = 1.0
	m.lastScore = 0
}

func (m *PerfectionMode) Update(s *GameSession) bool {
	if s.Score > m.lastScore {
		m.streak++
		m.lastScore = s.Score
		if m.streak > m.bestStreak {
			m.bestStreak = m.streak
		}
		if m.streak%10 == 0 {
			m.bonus += 0.1
			s.ShowMessage(fmt.Sprintf("PERFECT STREAK! X%d", m.streak), ColorGold)
			s.Audio.Play("level_up")
		}
	}
	return true
}

func (m *PerfectionMode) End(*GameSession) {}

func (m *PerfectionMode) ScoreMultiplier() float64 {
	mult := m.bonus
	switch {
	case m.streak >= 50:
		mult += 2.0
	case m.streak >= 30:
		mult += 1.5
	case m.streak >= 20:
		mult += 1.0
	case m.streak >= 10:
		mult += 0.5
	}
	return mult
}

func (m *PerfectionMode) StatusText() string {
	return fmt.Sprintf("STREAK %d | BEST %d | RESETS %d",
		m.streak, m.bestStreak, m.totalResets)
}

func (m *PerfectionMode) CollisionOverride(s *GameSession) CollisionAction {
	s.ShowMessage(fmt.Sprintf("STREAK BROKEN AT %d", m.streak), ColorRed)
	m.totalResets++
	m.streak = 0
	m.bonus = 1.0
	m.lastScore = 0
	s.RestartRun()
	return ActionResetRun
}

func (m *PerfectionMode) ModeState() map[string]any {
	return map[string]any{
		"perfect_streak":   m.streak,
		"total_resets":     m.totalResets,
		"best_streak":      m.bestStreak,
		"perfection_bonus": m.bonus,
		"last_score":       m.lastScore,
	}
}

func (m *PerfectionMode) RestoreState(st map[string]any) {
	m.streak = stateInt(st, "perfect_streak", 0)
	m.totalResets = stateInt(st, "total_resets", 0)
	m.bestStreak = stateInt(st, "best_streak", 0)
	m.bonus = stateFloat(st, "perfection_bonus", 1.0)
	m.lastScore = stateInt(st, "last_score", 0)
}
