package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleSnap(score int, mode string, secs float64) Snapshot {
	return Snapshot{
		Score:        score,
		SnakeBody:    []Position{{5, 5}, {4, 5}, {3, 5}},
		Direction:    [2]int{1, 0},
		FoodPosition: Position{9, 9},
		FoodType:     "normal",
		CurrentFps:   10,
		GameTime:     secs,
		ModeName:     mode,
		ModeState:    map[string]any{},
	}
}

func writeSaveFile(t *testing.T, dir, slot string, f SaveFile) {
	t.Helper()
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, slot+".json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := NewSaveManager(filepath.Join(t.TempDir(), "saves"))
	snap := sampleSnap(120, "survival", 33.5)

	slot, err := m.SaveGame(snap, "slot1")
	if err != nil {
		t.Fatal(err)
	}
	if slot != "slot1" {
		t.Fatalf("slot = %q", slot)
	}

	got, err := m.LoadGame("slot1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("loaded = %+v, want %+v", got, snap)
	}
}

func TestEmptySlotGetsTimestampedName(t *testing.T) {
	m := NewSaveManager(t.TempDir())
	slot, err := m.SaveGame(sampleSnap(1, "classic", 0), "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(slot, "save_") {
		t.Fatalf("slot = %q, want a save_ timestamp", slot)
	}
	if _, err := m.LoadGame(slot); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGameMissingSlot(t *testing.T) {
	m := NewSaveManager(t.TempDir())
	if _, err := m.LoadGame("ghost"); err == nil {
		t.Fatal("want an error for a missing slot")
	}
}

func TestListSavesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	m := NewSaveManager(dir)

	writeSaveFile(t, dir, "older", SaveFile{
		ID:      "a",
		SavedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Snap:    sampleSnap(10, "classic", 5),
	})
	writeSaveFile(t, dir, "newer", SaveFile{
		ID:      "b",
		SavedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Snap:    sampleSnap(90, "zen", 40),
	})

	saves := m.ListSaves()
	if len(saves) != 2 {
		t.Fatalf("saves = %d, want 2", len(saves))
	}
	if saves[0].Slot != "newer" || saves[1].Slot != "older" {
		t.Fatalf("order = %q, %q", saves[0].Slot, saves[1].Slot)
	}
	if saves[0].Mode != "zen" || saves[0].Score != 90 || saves[0].Length != 3 || saves[0].Seconds != 40 {
		t.Errorf("info = %+v", saves[0])
	}
}

func TestListSavesSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	m := NewSaveManager(dir)
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SaveGame(sampleSnap(5, "classic", 1), "good"); err != nil {
		t.Fatal(err)
	}

	saves := m.ListSaves()
	if len(saves) != 1 || saves[0].Slot != "good" {
		t.Fatalf("saves = %+v, want only the readable slot", saves)
	}
}

func TestListSavesEmptyDir(t *testing.T) {
	m := NewSaveManager(filepath.Join(t.TempDir(), "never_created"))
	if saves := m.ListSaves(); len(saves) != 0 {
		t.Fatalf("saves = %+v, want none", saves)
	}
}

func TestDeleteSave(t *testing.T) {
	m := NewSaveManager(t.TempDir())
	if _, err := m.SaveGame(sampleSnap(5, "classic", 1), "gone"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteSave("gone"); err != nil {
		t.Fatal(err)
	}
	if saves := m.ListSaves(); len(saves) != 0 {
		t.Fatalf("saves = %+v after delete", saves)
	}
	if err := m.DeleteSave("gone"); err == nil {
		t.Fatal("deleting a missing slot must error")
	}
}

func TestExportImport(t *testing.T) {
	src := NewSaveManager(t.TempDir())
	if _, err := src.SaveGame(sampleSnap(77, "chaos", 12), "run"); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "exported.json")
	if err := src.ExportSave("run", dest); err != nil {
		t.Fatal(err)
	}

	other := NewSaveManager(t.TempDir())
	slot, err := other.ImportSave(dest, "")
	if err != nil {
		t.Fatal(err)
	}
	if slot != "exported" {
		t.Fatalf("slot = %q, want the file's base name", slot)
	}
	got, err := other.LoadGame(slot)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 77 || got.ModeName != "chaos" {
		t.Errorf("imported = %+v", got)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewSaveManager(t.TempDir())
	if _, err := m.ImportSave(bad, "x"); err == nil {
		t.Fatal("want a decode error")
	}
}

func TestSaveStatistics(t *testing.T) {
	m := NewSaveManager(t.TempDir())
	long := sampleSnap(50, "survival", 2)
	long.SnakeBody = append(long.SnakeBody, Position{2, 5}, Position{1, 5})
	for slot, snap := range map[string]Snapshot{
		"a": sampleSnap(10, "classic", 1.5),
		"b": long,
		"c": sampleSnap(30, "zen", 0.5),
	} {
		if _, err := m.SaveGame(snap, slot); err != nil {
			t.Fatal(err)
		}
	}

	st := m.Statistics()
	if st.TotalSaves != 3 || st.HighestScore != 50 || st.LongestSnake != 5 {
		t.Errorf("stats = %+v", st)
	}
	if !almost(st.TotalPlayTime, 4.0) {
		t.Errorf("play time = %v, want 4.0", st.TotalPlayTime)
	}
}
