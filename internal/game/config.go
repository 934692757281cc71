package game

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Grid dimensions (in cells). The window maps 1 cell = CellSize pixels.
const (
	GridWidth  = 40
	GridHeight = 30
	CellSize   = 20
)

// Window defaults.
const (
	WindowWidth  = GridWidth * CellSize  // 800
	WindowHeight = GridHeight * CellSize // 600
)

// Simulation pacing defaults.
const (
	DefaultFps      = 10
	DefaultLength   = 3
	DefaultMaxFps   = 30
	SpeedInterval   = 50 // score points per global speed raise
	SpeedAmount     = 2  // fps added per raise
	MinFps          = 1
	AbsoluteFpsCap  = 60
	GameOverPollFps = 10 // reduced tick rate of the modal wait after a run
)

// Food tuning.
const (
	FoodSpecialTicks = 300 // non-Normal food reverts to Normal after this many ticks
	EffectTicks      = 300 // duration of food-granted timed effects
)

// HUD messages.
const MessageTicks = 120

// Mode tuning.
const (
	ZenFps             = 6
	ZenCollisionPoints = 5.0
	SurvivalFpsCap     = 60
	SurvivalStepSecs   = 20 // seconds-worth-of-ticks per survival level
	SpeedRunFpsCap     = 50
	BoostFpsCap        = 60
	BoostWindowSecs    = 3.0
	TimeAttackLimit    = 120.0 // seconds, default run length
	ComboIdleSecs      = 3.0   // combo resets after this long without scoring
)

// Config carries every tunable the engine needs at construction time.
// Values are clamped by Load/Clamp before the session sees them; the
// simulation core itself does not re-validate.
type Config struct {
	Fps           int
	SnakeLength   int
	MaxFps        int
	SpeedInterval int
	SpeedAmount   int
	Mode          string
	TimeLimit     float64
	Walls         WallPolicy
	ShowGrid      bool
	Difficulty    string
	SoundEnabled  bool
	Volume        float64
	Seed          uint64
}

// DefaultConfig returns the baseline tuning (normal difficulty, classic mode).
func DefaultConfig() Config {
	return Config{
		Fps:           DefaultFps,
		SnakeLength:   DefaultLength,
		MaxFps:        DefaultMaxFps,
		SpeedInterval: SpeedInterval,
		SpeedAmount:   SpeedAmount,
		Mode:          "classic",
		TimeLimit:     TimeAttackLimit,
		Walls:         WallsBounded,
		ShowGrid:      true,
		Difficulty:    "normal",
		SoundEnabled:  true,
		Volume:        0.5,
	}
}

// configFile mirrors the on-disk config.json layout.
type configFile struct {
	Game struct {
		Fps           *int    `json:"initial_fps"`
		SnakeLength   *int    `json:"initial_snake_length"`
		SpeedInterval *int    `json:"speed_increase_interval"`
		SpeedAmount   *int    `json:"speed_increase_amount"`
		MaxFps        *int    `json:"max_fps"`
		ShowGrid      *bool   `json:"show_grid"`
		Difficulty    *string `json:"difficulty"`
		Mode          *string `json:"mode"`
		WrapWalls     *bool   `json:"wrap_walls"`
	} `json:"game_settings"`
	Sound struct {
		Enabled *bool    `json:"enabled"`
		Volume  *float64 `json:"volume"`
	} `json:"sound_settings"`
}

// LoadConfig builds a Config from defaults, merges the JSON file at path if
// it exists, applies MAMBA_* environment overrides, applies the difficulty
// preset, and clamps everything into valid ranges. A missing or broken file
// is not an error; the defaults stand.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		var f configFile
		if json.Unmarshal(data, &f) == nil {
			if f.Game.Fps != nil {
				cfg.Fps = *f.Game.Fps
			}
			if f.Game.SnakeLength != nil {
				cfg.SnakeLength = *f.Game.SnakeLength
			}
			if f.Game.SpeedInterval != nil {
				cfg.SpeedInterval = *f.Game.SpeedInterval
			}
			if f.Game.SpeedAmount != nil {
				cfg.SpeedAmount = *f.Game.SpeedAmount
			}
			if f.Game.MaxFps != nil {
				cfg.MaxFps = *f.Game.MaxFps
			}
			if f.Game.ShowGrid != nil {
				cfg.ShowGrid = *f.Game.ShowGrid
			}
			if f.Game.Difficulty != nil {
				cfg.Difficulty = *f.Game.Difficulty
			}
			if f.Game.Mode != nil {
				cfg.Mode = *f.Game.Mode
			}
			if f.Game.WrapWalls != nil && *f.Game.WrapWalls {
				cfg.Walls = WallsToroidal
			}
			if f.Sound.Enabled != nil {
				cfg.SoundEnabled = *f.Sound.Enabled
			}
			if f.Sound.Volume != nil {
				cfg.Volume = *f.Sound.Volume
			}
		}
	}

	applyEnvOverrides(&cfg)
	ApplyDifficulty(&cfg)
	ClampConfig(&cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MAMBA_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fps = n
		}
	}
	if v := os.Getenv("MAMBA_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SnakeLength = n
		}
	}
	if v := os.Getenv("MAMBA_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("MAMBA_DIFFICULTY"); v != "" {
		cfg.Difficulty = v
	}
	if v := os.Getenv("MAMBA_SOUND"); v != "" {
		cfg.SoundEnabled = parseBool(v, cfg.SoundEnabled)
	}
	if v := os.Getenv("MAMBA_VOLUME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Volume = f
		}
	}
	if v := os.Getenv("MAMBA_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// SaveConfig writes the config back out in the config.json layout, so menu
// changes survive a restart and the file stays hand-editable.
func SaveConfig(path string, cfg Config) error {
	var f configFile
	f.Game.Fps = &cfg.Fps
	f.Game.SnakeLength = &cfg.SnakeLength
	f.Game.SpeedInterval = &cfg.SpeedInterval
	f.Game.SpeedAmount = &cfg.SpeedAmount
	f.Game.MaxFps = &cfg.MaxFps
	f.Game.ShowGrid = &cfg.ShowGrid
	f.Game.Difficulty = &cfg.Difficulty
	f.Game.Mode = &cfg.Mode
	wrap := cfg.Walls == WallsToroidal
	f.Game.WrapWalls = &wrap
	f.Sound.Enabled = &cfg.SoundEnabled
	f.Sound.Volume = &cfg.Volume

	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}

// ApplyDifficulty rewrites the pacing fields from the named preset.
// "normal" keeps whatever the config already says.
func ApplyDifficulty(cfg *Config) {
	switch cfg.Difficulty {
	case "easy":
		cfg.Fps = 8
		cfg.SpeedInterval = 100
		cfg.SpeedAmount = 1
		cfg.MaxFps = 20
	case "hard":
		cfg.Fps = 15
		cfg.SpeedInterval = 30
		cfg.SpeedAmount = 3
		cfg.MaxFps = 50
	case "normal":
	default:
		cfg.Difficulty = "normal"
	}
}

// ClampConfig forces every field into its valid range. The session trusts
// the result and never re-checks.
func ClampConfig(cfg *Config) {
	cfg.Fps = clamp(cfg.Fps, MinFps, AbsoluteFpsCap)
	cfg.SnakeLength = clamp(cfg.SnakeLength, 1, 20)
	if cfg.MaxFps < cfg.Fps {
		cfg.MaxFps = DefaultMaxFps
	}
	cfg.MaxFps = clamp(cfg.MaxFps, cfg.Fps, 120)
	if cfg.SpeedInterval < 1 {
		cfg.SpeedInterval = SpeedInterval
	}
	if cfg.SpeedAmount < 0 {
		cfg.SpeedAmount = SpeedAmount
	}
	cfg.Volume = clampF(cfg.Volume, 0, 1)
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = TimeAttackLimit
	}
	if _, ok := modeBuilders[cfg.Mode]; !ok {
		cfg.Mode = "classic"
	}
}
