package game

import "testing"

func almost(got, want float64) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestNewModeUnknownFallsBackToClassic(t *testing.T) {
	m := NewMode("bogus", DefaultConfig())
	if m.Name() != "classic" {
		t.Fatalf("mode = %q, want classic", m.Name())
	}
}

func TestClassicIsFlat(t *testing.T) {
	m := NewMode("classic", DefaultConfig())
	if m.ScoreMultiplier() != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", m.ScoreMultiplier())
	}
	if m.CollisionOverride(nil) != ActionEndRun {
		t.Error("classic collisions end the run")
	}
	if m.StatusText() != "" {
		t.Errorf("status = %q, want none", m.StatusText())
	}
}

func TestTimeAttackRushThenFrenzy(t *testing.T) {
	s := newTestSession("time_attack", 40)
	parkFood(s)
	m := s.Mode.(*TimeAttackMode)

	s.Clock = m.Limit - 25
	s.Tick()
	if !m.rush || m.frenzy {
		t.Fatalf("rush/frenzy = %v/%v after entering the last 30s", m.rush, m.frenzy)
	}
	if s.CurrentFps != 15 {
		t.Errorf("fps = %d, rush raises it once to min(25, +5)", s.CurrentFps)
	}
	if !almost(m.ScoreMultiplier(), 2.0) {
		t.Errorf("multiplier = %v, want 2.0 in rush", m.ScoreMultiplier())
	}

	s.Clock = m.Limit - 5
	s.Tick()
	if !m.frenzy {
		t.Fatal("the last 10s must arm the frenzy")
	}
	if !almost(m.ScoreMultiplier(), 4.0) {
		t.Errorf("multiplier = %v, want 4.0 in frenzy", m.ScoreMultiplier())
	}
}

func TestTimeAttackComboBuildsAndDecays(t *testing.T) {
	s := newTestSession("time_attack", 41)
	parkFood(s)
	m := s.Mode.(*TimeAttackMode)

	for i := 0; i < 3; i++ {
		s.Score += 10
		s.Tick()
	}
	if m.combo != 3 {
		t.Fatalf("combo = %d, want 3", m.combo)
	}
	if !almost(m.ScoreMultiplier(), 1.7) {
		t.Errorf("multiplier = %v, want 1.7 at combo 3", m.ScoreMultiplier())
	}

	s.Clock += ComboIdleSecs + 1
	s.Tick()
	if m.combo != 0 {
		t.Fatalf("combo = %d, idle time must break it", m.combo)
	}
}

func TestTimeAttackTimeoutPaysComboBonus(t *testing.T) {
	s := newTestSession("time_attack", 42)
	parkFood(s)
	m := s.Mode.(*TimeAttackMode)

	s.Clock = m.Limit - 2
	s.Score += 10
	s.Tick()
	s.Score += 10
	s.Tick()
	if m.combo != 2 {
		t.Fatalf("setup: combo = %d", m.combo)
	}

	base := s.Score
	s.Clock = m.Limit
	s.Tick()
	if s.State != StateGameOver {
		t.Fatalf("state = %v, time up must end the run", s.State)
	}
	if s.Score != base+20 {
		t.Errorf("score = %d, want %d with the combo paid out", s.Score, base+20)
	}
}

func TestTimeAttackMultiplierTiers(t *testing.T) {
	cases := []struct {
		combo        int
		rush, frenzy bool
		want         float64
	}{
		{0, false, false, 1.5},
		{3, false, false, 1.7},
		{5, false, false, 2.0},
		{10, false, false, 2.5},
		{0, true, false, 2.0},
		{0, true, true, 4.0},
		{10, true, true, 5.0},
	}
	m := &TimeAttackMode{}
	for _, c := range cases {
		m.combo, m.rush, m.frenzy = c.combo, c.rush, c.frenzy
		if got := m.ScoreMultiplier(); !almost(got, c.want) {
			t.Errorf("combo %d rush %v frenzy %v: multiplier = %v, want %v",
				c.combo, c.rush, c.frenzy, got, c.want)
		}
	}
}

func TestSurvivalSpeedsUpEveryInterval(t *testing.T) {
	s := newTestSession("survival", 43)
	m := s.Mode.(*SurvivalMode)

	for i := 0; i < SurvivalStepSecs*DefaultFps; i++ {
		m.Update(s)
	}
	if s.CurrentFps != DefaultFps+2 {
		t.Errorf("fps = %d, want %d", s.CurrentFps, DefaultFps+2)
	}
	if m.level != 2 {
		t.Errorf("level = %d, want 2", m.level)
	}
	want := 1.15 + float64(m.ticks)/3600.0
	if !almost(m.ScoreMultiplier(), want) {
		t.Errorf("multiplier = %v, want %v", m.ScoreMultiplier(), want)
	}
}

func TestSurvivalHazardsStartAtLevelThree(t *testing.T) {
	s := newTestSession("survival", 44)
	m := s.Mode.(*SurvivalMode)

	m.hazardTimer = 1 << 20
	m.Update(s)
	if len(m.Hazards()) != 0 {
		t.Fatal("no hazards below level 3")
	}

	m.level = 3
	m.hazardTimer = 1 << 20
	m.Update(s)
	if len(m.Hazards()) != 1 {
		t.Fatalf("hazards = %d, want 1", len(m.Hazards()))
	}
	h := m.Hazards()[0]
	switch h.Type {
	case HazardPoison:
		if h.Radius != 3 {
			t.Errorf("poison radius = %d, want 3", h.Radius)
		}
	case HazardSpeedTrap:
		if h.Radius != 2 {
			t.Errorf("trap radius = %d, want 2", h.Radius)
		}
	}
	if h.RemainingTicks <= 0 {
		t.Error("a fresh hazard must have time left")
	}

	cells := m.HazardCells()
	if len(cells) == 0 {
		t.Fatal("a live hazard must cover cells")
	}
	s.Food.Respawn(s.Snake.Body, cells)
	for _, c := range cells {
		if s.Food.Pos == c {
			t.Fatalf("food respawned inside a hazard at %v", c)
		}
	}
}

func TestSurvivalSpeedTrapDragsPace(t *testing.T) {
	s := newTestSession("survival", 45)
	m := s.Mode.(*SurvivalMode)
	m.hazards = append(m.hazards, Hazard{
		Type: HazardSpeedTrap, Pos: s.Snake.Head(), Radius: 2, RemainingTicks: 1000,
	})

	m.Update(s)
	if s.CurrentFps != DefaultFps-1 {
		t.Errorf("fps = %d, want %d", s.CurrentFps, DefaultFps-1)
	}

	s.CurrentFps = 5
	m.Update(s)
	if s.CurrentFps != 5 {
		t.Errorf("fps = %d, the trap never drags below 5", s.CurrentFps)
	}
}

func TestSurvivalPoisonEventuallyShrinks(t *testing.T) {
	s := newTestSession("survival", 46)
	m := s.Mode.(*SurvivalMode)
	s.Snake.Grow(4)
	m.hazards = append(m.hazards, Hazard{
		Type: HazardPoison, Pos: s.Snake.Head(), Radius: 3, RemainingTicks: 1 << 30,
	})

	start := s.Snake.Length()
	for i := 0; i < 20000 && s.Snake.Length() == start; i++ {
		m.Update(s)
	}
	if s.Snake.Length() >= start {
		t.Fatalf("length = %d, the zone never bit", s.Snake.Length())
	}
}

func TestSurvivalHazardFades(t *testing.T) {
	s := newTestSession("survival", 47)
	m := s.Mode.(*SurvivalMode)
	m.hazards = append(m.hazards, Hazard{
		Type: HazardSpeedTrap, Pos: Position{30, 20}, Radius: 2, RemainingTicks: 1,
	})
	m.Update(s)
	if len(m.Hazards()) != 0 {
		t.Fatalf("hazards = %d, a spent one must fade", len(m.Hazards()))
	}
}

func TestHazardFootprintClipsToBoard(t *testing.T) {
	corner := Hazard{Type: HazardPoison, Pos: Position{0, 0}, Radius: 2}
	cells := corner.Footprint()
	if len(cells) != 6 {
		t.Errorf("corner footprint = %d cells, want the clipped 6", len(cells))
	}
	for _, c := range cells {
		if !c.InBounds() {
			t.Errorf("cell %v out of bounds", c)
		}
	}

	center := Hazard{Type: HazardPoison, Pos: Position{20, 15}, Radius: 2}
	if got := len(center.Footprint()); got != 13 {
		t.Errorf("center footprint = %d cells, want the full diamond of 13", got)
	}
}

func TestZenPinsThePace(t *testing.T) {
	s := newTestSession("zen", 48)
	if s.CurrentFps != ZenFps {
		t.Fatalf("fps = %d at start, want %d", s.CurrentFps, ZenFps)
	}
	s.CurrentFps = 30
	s.Mode.Update(s)
	if s.CurrentFps != ZenFps {
		t.Fatalf("fps = %d, zen must pin it back", s.CurrentFps)
	}
}

func TestZenLevelsFromScore(t *testing.T) {
	s := newTestSession("zen", 49)
	m := s.Mode.(*ZenMode)

	s.Score = 100
	m.Update(s)
	if m.level != 2 {
		t.Fatalf("level = %d, want 2 at score 100", m.level)
	}
	if !almost(m.ScoreMultiplier(), 0.7) {
		t.Errorf("multiplier = %v, want 0.7", m.ScoreMultiplier())
	}

	m.Update(s)
	if m.level != 2 {
		t.Fatal("the same hundred must not level twice")
	}
}

func TestZenCollisionGrantsCalmPoints(t *testing.T) {
	s := newTestSession("zen", 50)
	m := s.Mode.(*ZenMode)
	m.points = 1.0

	if act := m.CollisionOverride(s); act != ActionResetRun {
		t.Fatalf("action = %v, want reset", act)
	}
	if !almost(m.points, 1.0+ZenCollisionPoints) {
		t.Errorf("points = %v", m.points)
	}
	if s.Snake.Head() != (Position{20, 15}) {
		t.Errorf("head = %v, want the recentered snake", s.Snake.Head())
	}
}

func TestChaosFiresEventsOnTheTimer(t *testing.T) {
	s := newTestSession("chaos", 51)
	m := s.Mode.(*ChaosMode)
	audio := &recordAudio{}
	s.Audio = audio

	m.eventTimer = 1 << 20
	m.Update(s)
	if m.totalEvents < 1 {
		t.Fatalf("events = %d, the timer must fire", m.totalEvents)
	}
	if m.eventTimer != 0 {
		t.Errorf("timer = %d, want reset", m.eventTimer)
	}
	if audio.count("chaos_event") != 1 {
		t.Errorf("chaos_event played %d times", audio.count("chaos_event"))
	}
}

func TestChaosLevelsEveryTenEvents(t *testing.T) {
	s := newTestSession("chaos", 52)
	m := s.Mode.(*ChaosMode)

	m.totalEvents = 10
	m.Update(s)
	if m.level != 2 {
		t.Fatalf("level = %d, want 2", m.level)
	}
	m.Update(s)
	if m.level != 2 {
		t.Fatal("the same bucket must not level twice")
	}
}

func TestChaosHigherLevelsDrawMultipleEvents(t *testing.T) {
	s := newTestSession("chaos", 61)
	m := s.Mode.(*ChaosMode)
	m.level = 3

	const draws = 200
	for i := 0; i < draws; i++ {
		m.triggerEvents(s)
	}
	// level 3 draws 1 or 2 events per trigger, and over 200 draws the
	// 30% double branch is statistically certain to land at least once
	if m.totalEvents <= draws {
		t.Fatalf("events = %d over %d draws, the double branch never fired", m.totalEvents, draws)
	}
	if m.totalEvents > 2*draws {
		t.Fatalf("events = %d, level 3 never draws more than 2 at once", m.totalEvents)
	}
}

func TestChaosMultiplierTracksEffects(t *testing.T) {
	s := newTestSession("chaos", 53)
	m := s.Mode.(*ChaosMode)

	if !almost(m.ScoreMultiplier(), 1.2) {
		t.Fatalf("multiplier = %v, want 1.2 at level 1", m.ScoreMultiplier())
	}

	s.Effects.Add(ActiveEffect{Kind: EffectDoubleScore, RemainingTicks: 100})
	m.Update(s)
	if !almost(m.ScoreMultiplier(), 2.5) {
		t.Errorf("multiplier = %v, want 1.2x2 + 0.1 per live effect", m.ScoreMultiplier())
	}
}

func TestChaosSpeedBoostRollsBackBelowEntry(t *testing.T) {
	s := newTestSession("chaos", 54)
	m := s.Mode.(*ChaosMode)

	s.CurrentFps = 38
	m.speedBoost(s)
	if s.CurrentFps != 40 {
		t.Fatalf("fps = %d, want the 40 cap", s.CurrentFps)
	}
	eff, ok := s.Effects.Get(EffectSpeedBoost)
	if !ok {
		t.Fatal("boost effect missing")
	}
	if eff.RollbackFps != 35 {
		t.Errorf("rollback = %d, a capped entry comes back 5 under the cap", eff.RollbackFps)
	}
}

func TestChaosMultiplyFoodScattersDecoys(t *testing.T) {
	s := newTestSession("chaos", 55)
	m := s.Mode.(*ChaosMode)

	m.multiplyFood(s)
	eff, ok := s.Effects.Get(EffectMultiplyFood)
	if !ok {
		t.Fatal("multiply-food effect missing")
	}
	if n := len(eff.ExtraFoods); n < 3 || n > 5 {
		t.Fatalf("decoys = %d, want 3..5", n)
	}
	for _, p := range eff.ExtraFoods {
		if !p.InBounds() {
			t.Errorf("decoy %v off the board", p)
		}
		if s.Snake.Contains(p) {
			t.Errorf("decoy %v on the snake", p)
		}
	}
}

func TestChaosTeleportKeepsTheBody(t *testing.T) {
	s := newTestSession("chaos", 56)
	m := s.Mode.(*ChaosMode)

	m.teleportSnake(s)
	if s.Snake.Length() != 3 {
		t.Fatalf("length = %d, teleport moves only the head", s.Snake.Length())
	}
	h := s.Snake.Head()
	if h.X < 2 || h.X > GridWidth-3 || h.Y < 2 || h.Y > GridHeight-3 {
		t.Errorf("head = %v, want the inner landing zone", h)
	}
}

func TestSpeedRunPaceFollowsGrowth(t *testing.T) {
	s := newTestSession("speedrun", 57)
	m := s.Mode.(*SpeedRunMode)

	s.Snake.Grow(1)
	m.Update(s)
	if m.foodEaten != 1 {
		t.Fatalf("foodEaten = %d, want 1", m.foodEaten)
	}
	if s.CurrentFps != 12 || m.speedLevel != 2 || m.maxSpeed != 12 {
		t.Errorf("fps/level/max = %d/%d/%d, want 12/2/12", s.CurrentFps, m.speedLevel, m.maxSpeed)
	}
	if m.boostTimer != 3*12-1 {
		t.Errorf("boostTimer = %d, it starts draining the same update", m.boostTimer)
	}
	if !almost(m.ScoreMultiplier(), 1.1) {
		t.Errorf("multiplier = %v, want 1.1", m.ScoreMultiplier())
	}

	for i := 0; i < 5; i++ {
		m.Update(s)
	}
	if s.CurrentFps != 13 {
		t.Errorf("fps = %d, the boost drips one at each tenth tick", s.CurrentFps)
	}
	if m.boostTimer != 30 {
		t.Errorf("boostTimer = %d, want 30", m.boostTimer)
	}
}

func TestSpeedRunRespectsCap(t *testing.T) {
	s := newTestSession("speedrun", 58)
	m := s.Mode.(*SpeedRunMode)

	s.CurrentFps = 49
	s.Snake.Grow(1)
	m.Update(s)
	if s.CurrentFps != SpeedRunFpsCap {
		t.Fatalf("fps = %d, want the %d cap", s.CurrentFps, SpeedRunFpsCap)
	}
}

func TestPerfectionStreakGrowsWithScore(t *testing.T) {
	s := newTestSession("perfection", 59)
	m := s.Mode.(*PerfectionMode)

	for i := 1; i <= 10; i++ {
		s.Score = i * 10
		m.Update(s)
	}
	if m.streak != 10 || m.bestStreak != 10 {
		t.Fatalf("streak/best = %d/%d, want 10/10", m.streak, m.bestStreak)
	}
	if !almost(m.bonus, 1.1) {
		t.Errorf("bonus = %v, every tenth eat feeds it", m.bonus)
	}
	if !almost(m.ScoreMultiplier(), 1.6) {
		t.Errorf("multiplier = %v, want bonus 1.1 + tier 0.5", m.ScoreMultiplier())
	}

	m.Update(s)
	if m.streak != 10 {
		t.Fatal("a flat score must not move the streak")
	}
}

func TestPerfectionCollisionClearsProgress(t *testing.T) {
	s := newTestSession("perfection", 60)
	m := s.Mode.(*PerfectionMode)

	s.Score = 10
	m.Update(s)
	if m.streak != 1 {
		t.Fatalf("setup: streak = %d", m.streak)
	}

	if act := m.CollisionOverride(s); act != ActionResetRun {
		t.Fatalf("action = %v, want reset", act)
	}
	if m.streak != 0 || m.totalResets != 1 || m.bestStreak != 1 {
		t.Errorf("streak/resets/best = %d/%d/%d, want 0/1/1", m.streak, m.totalResets, m.bestStreak)
	}
	if !almost(m.bonus, 1.0) {
		t.Errorf("bonus = %v, want the 1.0 floor", m.bonus)
	}
	if s.Score != 0 {
		t.Errorf("score = %d, the wipe clears it", s.Score)
	}
}

func TestPerfectionMultiplierTiers(t *testing.T) {
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{9, 1.0},
		{10, 1.5},
		{20, 2.0},
		{30, 2.5},
		{50, 3.0},
	}
	m := &PerfectionMode{}
	m.Start(nil)
	for _, c := range cases {
		m.streak = c.streak
		if got := m.ScoreMultiplier(); !almost(got, c.want) {
			t.Errorf("streak %d: multiplier = %v, want %v", c.streak, got, c.want)
		}
	}
}
