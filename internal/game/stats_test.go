package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReportRunAccumulatesAndMaxes(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	tr.ReportRun(RunReport{Score: 100, Length: 12, Seconds: 45, Mode: "classic"})
	tr.ReportRun(RunReport{Score: 40, Length: 20, Seconds: 10, Mode: "zen", TopSpeedSeconds: 7})

	st := tr.Stats
	if st.TotalGames != 2 || st.TotalScore != 140 {
		t.Errorf("games/score = %d/%d, want 2/140", st.TotalGames, st.TotalScore)
	}
	if st.HighestScore != 100 || st.MaxSnakeLength != 20 {
		t.Errorf("best score/length = %d/%d, want 100/20", st.HighestScore, st.MaxSnakeLength)
	}
	if st.MaxGameTime != 45 || st.HighSpeedSurvival != 7 {
		t.Errorf("best time/top-speed = %v/%v, want 45/7", st.MaxGameTime, st.HighSpeedSurvival)
	}
	if st.PerfectStarts != 1 {
		t.Errorf("perfect starts = %d, only the 45s run qualifies", st.PerfectStarts)
	}
}

func TestAchievementsUnlockOnceInOrder(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	var order []string
	tr.OnUnlock = func(a Achievement) { order = append(order, a.ID) }

	tr.ReportRun(RunReport{Score: 150, Length: 3, Seconds: 5, Mode: "classic"})
	want := []string{"first_score", "score_100"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("unlocks = %v, want %v", order, want)
	}
	if _, done := tr.Unlocked["score_500"]; done {
		t.Fatal("score_500 must stay locked at 150")
	}

	order = nil
	tr.ReportRun(RunReport{Score: 150, Length: 3, Seconds: 5, Mode: "classic"})
	if len(order) != 0 {
		t.Fatalf("unlocks fired again: %v", order)
	}
}

func TestSpeedDemonNeedsThirtySeconds(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	tr.ReportRun(RunReport{Score: 1, Seconds: 5, TopSpeedSeconds: 29})
	if _, done := tr.Unlocked["speed_demon"]; done {
		t.Fatal("29s at top speed must not unlock")
	}
	tr.ReportRun(RunReport{Score: 1, Seconds: 5, TopSpeedSeconds: 31})
	if _, done := tr.Unlocked["speed_demon"]; !done {
		t.Fatal("31s at top speed must unlock")
	}
}

func TestKonamiIsSticky(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	fired := 0
	tr.OnUnlock = func(Achievement) { fired++ }

	tr.MarkKonami()
	if _, done := tr.Unlocked["konami_code"]; !done {
		t.Fatal("konami_code must unlock")
	}
	if fired != 1 {
		t.Fatalf("unlock fired %d times", fired)
	}
	tr.MarkKonami()
	if fired != 1 {
		t.Fatal("a second mark must be a no-op")
	}
}

func TestStatsPersistAcrossTrackers(t *testing.T) {
	dir := t.TempDir()
	tr := NewStatsTracker(dir)
	tr.ReportRun(RunReport{Score: 150, Length: 11, Seconds: 61, Mode: "survival"})

	again := NewStatsTracker(dir)
	if again.Stats != tr.Stats {
		t.Fatalf("reloaded stats = %+v, want %+v", again.Stats, tr.Stats)
	}
	if len(again.Recent) != 1 || again.Recent[0].Mode != "survival" {
		t.Errorf("recent = %+v", again.Recent)
	}
	for _, id := range []string{"first_score", "score_100", "length_10", "time_60", "perfect_start"} {
		if _, done := again.Unlocked[id]; !done {
			t.Errorf("%s lost on reload", id)
		}
	}
}

func TestBrokenStatsFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stats.json"), []byte("{bad"), 0o644); err != nil {
		t.Fatal(err)
	}
	tr := NewStatsTracker(dir)
	if tr.Stats.TotalGames != 0 || len(tr.Unlocked) != 0 {
		t.Fatalf("tracker = %+v, want a clean slate", tr.Stats)
	}
}

func TestRecentRunsCapped(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	for i := 1; i <= recentRunsKept+5; i++ {
		tr.ReportRun(RunReport{Score: i, Seconds: 1, Mode: "classic"})
	}
	if len(tr.Recent) != recentRunsKept {
		t.Fatalf("recent = %d, want the %d cap", len(tr.Recent), recentRunsKept)
	}
	if tr.Recent[0].Score != 6 {
		t.Errorf("oldest kept = %d, want the five overflow runs dropped", tr.Recent[0].Score)
	}
}

func TestAttachCountsSpecialFood(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	bus := NewEventBus()
	tr.Attach(bus)

	for i := 0; i < 10; i++ {
		bus.Emit(Event{Type: EventSpecialFood, Name: "special"})
	}
	if tr.Stats.SpecialFoodEaten != 10 {
		t.Fatalf("special food = %d, want 10", tr.Stats.SpecialFoodEaten)
	}

	tr.ReportRun(RunReport{Score: 1, Seconds: 1})
	if _, done := tr.Unlocked["special_food_10"]; !done {
		t.Fatal("the tenth special food must unlock gourmet")
	}
}

func TestUnlockedCountAndPoints(t *testing.T) {
	tr := NewStatsTracker(t.TempDir())
	done, total := tr.UnlockedCount()
	if done != 0 || total != len(achievementDefs) {
		t.Fatalf("count = %d/%d", done, total)
	}
	if tr.TotalPoints() != 0 {
		t.Fatalf("points = %d, want 0", tr.TotalPoints())
	}

	tr.ReportRun(RunReport{Score: 10, Seconds: 1})
	done, _ = tr.UnlockedCount()
	if done != 1 {
		t.Fatalf("done = %d, want just first_score", done)
	}
	if tr.TotalPoints() != 5 {
		t.Fatalf("points = %d, want 5", tr.TotalPoints())
	}
}

func TestHighScoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_score.json")
	if got := LoadHighScore(path); got != 0 {
		t.Fatalf("missing file = %d, want 0", got)
	}
	if err := SaveHighScore(path, 420); err != nil {
		t.Fatal(err)
	}
	if got := LoadHighScore(path); got != 420 {
		t.Fatalf("reloaded = %d, want 420", got)
	}

	if err := os.WriteFile(path, []byte("?"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadHighScore(path); got != 0 {
		t.Fatalf("broken file = %d, want 0", got)
	}
}
