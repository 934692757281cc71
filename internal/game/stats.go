package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LifetimeStats is the cross-run tally. Accumulating fields add up,
// maximum fields keep their best value; the two must never be mixed up.
type LifetimeStats struct {
	TotalGames        int     `json:"total_games"`
	TotalScore        int     `json:"total_score"`
	HighestScore      int     `json:"highest_score"`
	MaxSnakeLength    int     `json:"max_snake_length"`
	MaxGameTime       float64 `json:"max_game_time"`
	MaxSurvivalTime   float64 `json:"max_survival_time"`
	SpecialFoodEaten  int     `json:"special_food_eaten"`
	PerfectStarts     int     `json:"perfect_starts"`
	HighSpeedSurvival float64 `json:"high_speed_survival"`
	KonamiUsed        bool    `json:"konami_used"`
}

// RunRecord is one finished run, stamped with a unique id.
type RunRecord struct {
	ID      string    `json:"id"`
	When    time.Time `json:"when"`
	Mode    string    `json:"mode"`
	Score   int       `json:"score"`
	Length  int       `json:"length"`
	Seconds float64   `json:"seconds"`
}

// Achievement is one unlockable. Its condition runs against the lifetime
// stats after every update; a condition that panics counts as not met and
// never takes the game down.
type Achievement struct {
	ID     string
	Name   string
	Blurb  string
	Points int
	Hidden bool
	Cond   func(st *LifetimeStats) bool
}

var achievementDefs = []Achievement{
	{ID: "first_score", Name: "FIRST BLOOD", Blurb: "SCORE YOUR FIRST POINT", Points: 5,
		Cond: func(st *LifetimeStats) bool { return st.TotalScore > 0 }},
	{ID: "score_100", Name: "CENTURION", Blurb: "REACH 100 POINTS IN ONE RUN", Points: 10,
		Cond: func(st *LifetimeStats) bool { return st.HighestScore >= 100 }},
	{ID: "score_500", Name: "HIGH ROLLER", Blurb: "REACH 500 POINTS IN ONE RUN", Points: 25,
		Cond: func(st *LifetimeStats) bool { return st.HighestScore >= 500 }},
	{ID: "score_1000", Name: "LEGEND", Blurb: "REACH 1000 POINTS IN ONE RUN", Points: 50,
		Cond: func(st *LifetimeStats) bool { return st.HighestScore >= 1000 }},
	{ID: "length_10", Name: "GROWING UP", Blurb: "REACH LENGTH 10", Points: 10,
		Cond: func(st *LifetimeStats) bool { return st.MaxSnakeLength >= 10 }},
	{ID: "length_25", Name: "BIG SNAKE", Blurb: "REACH LENGTH 25", Points: 20,
		Cond: func(st *LifetimeStats) bool { return st.MaxSnakeLength >= 25 }},
	{ID: "length_50", Name: "ANACONDA", Blurb: "REACH LENGTH 50", Points: 40,
		Cond: func(st *LifetimeStats) bool { return st.MaxSnakeLength >= 50 }},
	{ID: "time_60", Name: "ONE MINUTE IN", Blurb: "SURVIVE 60 SECONDS", Points: 15,
		Cond: func(st *LifetimeStats) bool { return st.MaxGameTime >= 60 }},
	{ID: "time_300", Name: "MARATHON", Blurb: "SURVIVE 5 MINUTES", Points: 30,
		Cond: func(st *LifetimeStats) bool { return st.MaxGameTime >= 300 }},
	{ID: "games_10", Name: "ROOKIE", Blurb: "FINISH 10 RUNS", Points: 10,
		Cond: func(st *LifetimeStats) bool { return st.TotalGames >= 10 }},
	{ID: "games_50", Name: "REGULAR", Blurb: "FINISH 50 RUNS", Points: 25,
		Cond: func(st *LifetimeStats) bool { return st.TotalGames >= 50 }},
	{ID: "games_100", Name: "VETERAN", Blurb: "FINISH 100 RUNS", Points: 50,
		Cond: func(st *LifetimeStats) bool { return st.TotalGames >= 100 }},
	{ID: "special_food_10", Name: "GOURMET", Blurb: "EAT 10 SPECIAL FOODS", Points: 20,
		Cond: func(st *LifetimeStats) bool { return st.SpecialFoodEaten >= 10 }},
	{ID: "perfect_start", Name: "SAFE OPENING", Blurb: "SURVIVE THE FIRST 30 SECONDS", Points: 15,
		Cond: func(st *LifetimeStats) bool { return st.PerfectStarts >= 1 }},
	{ID: "speed_demon", Name: "SPEED DEMON", Blurb: "HOLD TOP SPEED FOR 30 SECONDS", Points: 35,
		Cond: func(st *LifetimeStats) bool { return st.HighSpeedSurvival >= 30 }},
	{ID: "konami_code", Name: "OLD SCHOOL", Blurb: "YOU KNOW THE CODE", Points: 100, Hidden: true,
		Cond: func(st *LifetimeStats) bool { return st.KonamiUsed }},
	{ID: "no_death_hour", Name: "IMMORTAL", Blurb: "SURVIVE A FULL HOUR", Points: 200, Hidden: true,
		Cond: func(st *LifetimeStats) bool { return st.MaxSurvivalTime >= 3600 }},
}

const recentRunsKept = 50

// statsFile is the on-disk shape of stats.json.
type statsFile struct {
	Stats    LifetimeStats        `json:"stats"`
	Unlocked map[string]time.Time `json:"unlocked"`
	Recent   []RunRecord          `json:"recent_runs"`
}

// StatsTracker implements StatsSink and owns the lifetime stats file, the
// run history and the achievement state.
type StatsTracker struct {
	Stats    LifetimeStats
	Unlocked map[string]time.Time
	Recent   []RunRecord

	path     string
	OnUnlock func(a Achievement)
}

// NewStatsTracker loads stats.json from dir; a missing or broken file
// starts a fresh tally.
func NewStatsTracker(dir string) *StatsTracker {
	t := &StatsTracker{
		Unlocked: make(map[string]time.Time),
		path:     filepath.Join(dir, "stats.json"),
	}
	if data, err := os.ReadFile(t.path); err == nil {
		var f statsFile
		if json.Unmarshal(data, &f) == nil {
			t.Stats = f.Stats
			t.Recent = f.Recent
			if f.Unlocked != nil {
				t.Unlocked = f.Unlocked
			}
		}
	}
	return t
}

// Attach subscribes the tracker to the session events it counts.
func (t *StatsTracker) Attach(bus *EventBus) {
	bus.Subscribe(EventSpecialFood, func(Event) {
		t.Stats.SpecialFoodEaten++
	})
}

// ReportRun folds one finished run into the tally, evaluates achievements
// and persists. Field semantics: games/score/special-food accumulate,
// the rest take the maximum.
func (t *StatsTracker) ReportRun(r RunReport) {
	t.Stats.TotalGames++
	t.Stats.TotalScore += r.Score
	t.Stats.HighestScore = max(t.Stats.HighestScore, r.Score)
	t.Stats.MaxSnakeLength = max(t.Stats.MaxSnakeLength, r.Length)
	t.Stats.MaxGameTime = max(t.Stats.MaxGameTime, r.Seconds)
	t.Stats.MaxSurvivalTime = max(t.Stats.MaxSurvivalTime, r.Seconds)
	t.Stats.HighSpeedSurvival = max(t.Stats.HighSpeedSurvival, r.TopSpeedSeconds)
	if r.Seconds >= 30 {
		t.Stats.PerfectStarts++
	}

	t.Recent = append(t.Recent, RunRecord{
		ID:      uuid.NewString(),
		When:    time.Now(),
		Mode:    r.Mode,
		Score:   r.Score,
		Length:  r.Length,
		Seconds: r.Seconds,
	})
	if len(t.Recent) > recentRunsKept {
		t.Recent = t.Recent[len(t.Recent)-recentRunsKept:]
	}

	t.CheckAchievements()
	t.Save()
}

// MarkKonami notes the code was entered at least once.
func (t *StatsTracker) MarkKonami() {
	if t.Stats.KonamiUsed {
		return
	}
	t.Stats.KonamiUsed = true
	t.CheckAchievements()
	t.Save()
}

// CheckAchievements evaluates every locked achievement and returns the
// newly unlocked ones in definition order.
func (t *StatsTracker) CheckAchievements() []Achievement {
	var fresh []Achievement
	for _, a := range achievementDefs {
		if _, done := t.Unlocked[a.ID]; done {
			continue
		}
		if !conditionMet(a, &t.Stats) {
			continue
		}
		t.Unlocked[a.ID] = time.Now()
		fresh = append(fresh, a)
		if t.OnUnlock != nil {
			t.OnUnlock(a)
		}
	}
	return fresh
}

// conditionMet shields the caller from a misbehaving condition: a panic
// inside one counts as not met.
func conditionMet(a Achievement, st *LifetimeStats) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if a.Cond == nil {
		return false
	}
	return a.Cond(st)
}

// TotalPoints sums the points of everything unlocked.
func (t *StatsTracker) TotalPoints() int {
	pts := 0
	for _, a := range achievementDefs {
		if _, done := t.Unlocked[a.ID]; done {
			pts += a.Points
		}
	}
	return pts
}

// UnlockedCount returns how many of the defined achievements are done.
func (t *StatsTracker) UnlockedCount() (done, total int) {
	return len(t.Unlocked), len(achievementDefs)
}

// Save writes stats.json. Best effort: the tally lives on in memory when
// the disk says no.
func (t *StatsTracker) Save() error {
	data, err := json.MarshalIndent(statsFile{
		Stats:    t.Stats,
		Unlocked: t.Unlocked,
		Recent:   t.Recent,
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(t.path, data, 0o644)
}

// LoadHighScore reads high_score.json; anything missing or broken is 0.
func LoadHighScore(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var f struct {
		HighScore int `json:"high_score"`
	}
	if json.Unmarshal(data, &f) != nil {
		return 0
	}
	return f.HighScore
}

// SaveHighScore writes high_score.json.
func SaveHighScore(path string, score int) error {
	data, err := json.Marshal(struct {
		HighScore int `json:"high_score"`
	}{HighScore: score})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
