package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaveFile is the on-disk envelope around a snapshot.
type SaveFile struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
	Snap    Snapshot  `json:"snapshot"`
}

// SaveInfo summarizes one slot for the load menu, newest first.
type SaveInfo struct {
	Slot    string
	SavedAt time.Time
	Mode    string
	Score   int
	Length  int
	Seconds float64
}

// SaveManager owns the saves directory. Slot names map to
// <dir>/<slot>.json.
type SaveManager struct {
	dir string
}

func NewSaveManager(dir string) *SaveManager {
	return &SaveManager{dir: dir}
}

func (m *SaveManager) slotPath(slot string) string {
	return filepath.Join(m.dir, slot+".json")
}

// SaveGame writes a snapshot into a slot. An empty slot name gets a
// timestamped one, returned to the caller.
func (m *SaveManager) SaveGame(snap Snapshot, slot string) (string, error) {
	if slot == "" {
		slot = "save_" + time.Now().Format("20060102_150405")
	}
	data, err := json.MarshalIndent(SaveFile{
		ID:      uuid.NewString(),
		SavedAt: time.Now(),
		Snap:    snap,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(m.slotPath(slot), data, 0o644); err != nil {
		return "", fmt.Errorf("write save %q: %w", slot, err)
	}
	return slot, nil
}

// LoadGame reads a slot back into a snapshot.
func (m *SaveManager) LoadGame(slot string) (Snapshot, error) {
	data, err := os.ReadFile(m.slotPath(slot))
	if err != nil {
		return Snapshot{}, fmt.Errorf("read save %q: %w", slot, err)
	}
	var f SaveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Snapshot{}, fmt.Errorf("decode save %q: %w", slot, err)
	}
	return f.Snap, nil
}

// ListSaves scans the directory and returns slot summaries, newest first.
// Unreadable files are skipped, not fatal.
func (m *SaveManager) ListSaves() []SaveInfo {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil
	}
	var saves []SaveInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.dir, name))
		if err != nil {
			continue
		}
		var f SaveFile
		if json.Unmarshal(data, &f) != nil {
			continue
		}
		saves = append(saves, SaveInfo{
			Slot:    strings.TrimSuffix(name, ".json"),
			SavedAt: f.SavedAt,
			Mode:    f.Snap.ModeName,
			Score:   f.Snap.Score,
			Length:  len(f.Snap.SnakeBody),
			Seconds: f.Snap.GameTime,
		})
	}
	sort.Slice(saves, func(i, j int) bool {
		return saves[i].SavedAt.After(saves[j].SavedAt)
	})
	return saves
}

// DeleteSave removes a slot.
func (m *SaveManager) DeleteSave(slot string) error {
	if err := os.Remove(m.slotPath(slot)); err != nil {
		return fmt.Errorf("delete save %q: %w", slot, err)
	}
	return nil
}

// ExportSave copies a slot to an arbitrary path outside the directory.
func (m *SaveManager) ExportSave(slot, dest string) error {
	data, err := os.ReadFile(m.slotPath(slot))
	if err != nil {
		return fmt.Errorf("read save %q: %w", slot, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("export save %q: %w", slot, err)
	}
	return nil
}

// ImportSave validates an external file and copies it into a slot. An
// empty slot name takes the file's base name.
func (m *SaveManager) ImportSave(src, slot string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read import: %w", err)
	}
	var f SaveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("decode import: %w", err)
	}
	if slot == "" {
		slot = strings.TrimSuffix(filepath.Base(src), ".json")
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(m.slotPath(slot), data, 0o644); err != nil {
		return "", fmt.Errorf("write save %q: %w", slot, err)
	}
	return slot, nil
}

// SaveStatistics aggregates over every readable slot.
type SaveStatistics struct {
	TotalSaves    int
	HighestScore  int
	LongestSnake  int
	TotalPlayTime float64
}

func (m *SaveManager) Statistics() SaveStatistics {
	var st SaveStatistics
	for _, s := range m.ListSaves() {
		st.TotalSaves++
		st.HighestScore = max(st.HighestScore, s.Score)
		st.LongestSnake = max(st.LongestSnake, s.Length)
		st.TotalPlayTime += s.Seconds
	}
	return st
}
