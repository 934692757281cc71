package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want pristine defaults", cfg)
	}
}

func TestLoadConfigBrokenFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := LoadConfig(path)
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, a broken file must not poison anything", cfg)
	}
}

func TestLoadConfigMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
  "game_settings": {
    "initial_fps": 14,
    "show_grid": false,
    "mode": "zen",
    "wrap_walls": true
  },
  "sound_settings": {"volume": 0.25}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.Fps != 14 || cfg.ShowGrid || cfg.Mode != "zen" {
		t.Errorf("fps/grid/mode = %d/%v/%q", cfg.Fps, cfg.ShowGrid, cfg.Mode)
	}
	if cfg.Walls != WallsToroidal {
		t.Error("wrap_walls must select the toroidal board")
	}
	if cfg.Volume != 0.25 {
		t.Errorf("volume = %v, want 0.25", cfg.Volume)
	}
	if cfg.SnakeLength != DefaultLength {
		t.Errorf("length = %d, absent keys keep their defaults", cfg.SnakeLength)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"game_settings": {"initial_fps": 20, "mode": "classic"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MAMBA_FPS", "12")
	t.Setenv("MAMBA_LENGTH", "5")
	t.Setenv("MAMBA_MODE", "survival")
	t.Setenv("MAMBA_SOUND", "off")
	t.Setenv("MAMBA_SEED", "99")

	cfg := LoadConfig(path)
	if cfg.Fps != 12 || cfg.SnakeLength != 5 || cfg.Mode != "survival" {
		t.Errorf("fps/length/mode = %d/%d/%q", cfg.Fps, cfg.SnakeLength, cfg.Mode)
	}
	if cfg.SoundEnabled {
		t.Error("MAMBA_SOUND=off must mute")
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Seed)
	}
}

func TestDifficultyPresets(t *testing.T) {
	easy := DefaultConfig()
	easy.Difficulty = "easy"
	ApplyDifficulty(&easy)
	if easy.Fps != 8 || easy.SpeedInterval != 100 || easy.SpeedAmount != 1 || easy.MaxFps != 20 {
		t.Errorf("easy = %d/%d/%d/%d", easy.Fps, easy.SpeedInterval, easy.SpeedAmount, easy.MaxFps)
	}

	hard := DefaultConfig()
	hard.Difficulty = "hard"
	ApplyDifficulty(&hard)
	if hard.Fps != 15 || hard.SpeedInterval != 30 || hard.SpeedAmount != 3 || hard.MaxFps != 50 {
		t.Errorf("hard = %d/%d/%d/%d", hard.Fps, hard.SpeedInterval, hard.SpeedAmount, hard.MaxFps)
	}

	normal := DefaultConfig()
	normal.Fps = 13
	ApplyDifficulty(&normal)
	if normal.Fps != 13 {
		t.Error("normal must keep whatever the config says")
	}

	weird := DefaultConfig()
	weird.Fps = 13
	weird.Difficulty = "nightmare"
	ApplyDifficulty(&weird)
	if weird.Difficulty != "normal" || weird.Fps != 13 {
		t.Errorf("unknown preset = %q fps %d, want a quiet fall back to normal", weird.Difficulty, weird.Fps)
	}
}

func TestClampConfig(t *testing.T) {
	cases := []struct {
		name  string
		tweak func(*Config)
		check func(Config) bool
	}{
		{"fps floor", func(c *Config) { c.Fps = 0 }, func(c Config) bool { return c.Fps == MinFps }},
		{"fps ceiling", func(c *Config) { c.Fps = 200 }, func(c Config) bool { return c.Fps == AbsoluteFpsCap }},
		{"length floor", func(c *Config) { c.SnakeLength = 0 }, func(c Config) bool { return c.SnakeLength == 1 }},
		{"length ceiling", func(c *Config) { c.SnakeLength = 50 }, func(c Config) bool { return c.SnakeLength == 20 }},
		{"max below fps", func(c *Config) { c.MaxFps = 5 }, func(c Config) bool { return c.MaxFps == DefaultMaxFps }},
		{"max ceiling", func(c *Config) { c.MaxFps = 300 }, func(c Config) bool { return c.MaxFps == 120 }},
		{"interval floor", func(c *Config) { c.SpeedInterval = 0 }, func(c Config) bool { return c.SpeedInterval == SpeedInterval }},
		{"amount floor", func(c *Config) { c.SpeedAmount = -1 }, func(c Config) bool { return c.SpeedAmount == SpeedAmount }},
		{"volume range", func(c *Config) { c.Volume = 1.5 }, func(c Config) bool { return c.Volume == 1 }},
		{"time limit", func(c *Config) { c.TimeLimit = 0 }, func(c Config) bool { return c.TimeLimit == TimeAttackLimit }},
		{"unknown mode", func(c *Config) { c.Mode = "bogus" }, func(c Config) bool { return c.Mode == "classic" }},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		c.tweak(&cfg)
		ClampConfig(&cfg)
		if !c.check(cfg) {
			t.Errorf("%s: cfg = %+v", c.name, cfg)
		}
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Fps = 11
	cfg.Mode = "chaos"
	cfg.ShowGrid = false
	cfg.Walls = WallsToroidal
	cfg.SoundEnabled = false
	cfg.Volume = 0.75

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	got := LoadConfig(path)
	if got.Fps != 11 || got.Mode != "chaos" || got.ShowGrid {
		t.Errorf("fps/mode/grid = %d/%q/%v", got.Fps, got.Mode, got.ShowGrid)
	}
	if got.Walls != WallsToroidal || got.SoundEnabled || got.Volume != 0.75 {
		t.Errorf("walls/sound/volume = %v/%v/%v", got.Walls, got.SoundEnabled, got.Volume)
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "on"} {
		if !parseBool(v, false) {
			t.Errorf("parseBool(%q) = false", v)
		}
	}
	for _, v := range []string{"0", "false", "No", "OFF"} {
		if parseBool(v, true) {
			t.Errorf("parseBool(%q) = true", v)
		}
	}
	if !parseBool("banana", true) || parseBool("banana", false) {
		t.Error("unknown words keep the fallback")
	}
}
