package game

import "fmt"

// Menu tracks the cursor on the title screen. Rows 0..len(modeOrder)-1 are
// the game modes; the rows after them adjust settings in place.
type Menu struct {
	Row int
}

const (
	menuSettingDifficulty = iota
	menuSettingGrid
	menuSettingSound
	menuSettingCount
)

func (m *Menu) rowCount() int { return len(modeOrder) + menuSettingCount }

func (m *Menu) MoveUp() {
	m.Row = (m.Row + m.rowCount() - 1) % m.rowCount()
}

func (m *Menu) MoveDown() {
	m.Row = (m.Row + 1) % m.rowCount()
}

// SelectedMode returns the mode name under the cursor, or "" when the
// cursor sits on a settings row.
func (m *Menu) SelectedMode() string {
	if m.Row < len(modeOrder) {
		return modeOrder[m.Row]
	}
	return ""
}

// Adjust applies a Left/Right press to the settings row under the cursor.
// Difficulty rewrites the pacing fields from the preset, so the baseline is
// restored first; "normal" would otherwise keep the previous preset's pace.
func (m *Menu) Adjust(cfg *Config, dir int) bool {
	switch m.Row - len(modeOrder) {
	case menuSettingDifficulty:
		cfg.Difficulty = cycleDifficulty(cfg.Difficulty, dir)
		base := DefaultConfig()
		cfg.Fps = base.Fps
		cfg.SpeedInterval = base.SpeedInterval
		cfg.SpeedAmount = base.SpeedAmount
		cfg.MaxFps = base.MaxFps
		ApplyDifficulty(cfg)
		ClampConfig(cfg)
		return true
	case menuSettingGrid:
		cfg.ShowGrid = !cfg.ShowGrid
		return true
	case menuSettingSound:
		cfg.SoundEnabled = !cfg.SoundEnabled
		return true
	}
	return false
}

var difficultyOrder = []string{"easy", "normal", "hard"}

func cycleDifficulty(cur string, dir int) string {
	idx := 1
	for i, d := range difficultyOrder {
		if d == cur {
			idx = i
		}
	}
	idx = (idx + dir + len(difficultyOrder)) % len(difficultyOrder)
	return difficultyOrder[idx]
}

// messageFadeTicks is the tail of a pop message's lifetime spent fading out.
const messageFadeTicks = 30

// RenderHUD draws all UI chrome from the font atlas: the title menu, the
// in-run HUD, and the pause/game-over overlays.
func RenderHUD(r *Renderer, s *GameSession, menu *Menu, tracker *StatsTracker, fbW, fbH int) {
	switch s.State {
	case StateMenu:
		drawMenu(r, s, menu, tracker, fbW, fbH)

	case StateRunning:
		drawRunHUD(r, s, fbW, fbH)

	case StatePaused:
		drawRunHUD(r, s, fbW, fbH)
		dimBoard(r, fbW, fbH)

		title := "PAUSED"
		r.DrawString(title, fbW/2-TextWidth(title, 4.0)/2, fbH/2-60, 4.0, Palette.HudText)
		hint := "P TO RESUME"
		r.DrawString(hint, fbW/2-TextWidth(hint, 1.5)/2, fbH/2+10, 1.5, Palette.MenuItem)

	case StateGameOver:
		drawRunHUD(r, s, fbW, fbH)
		dimBoard(r, fbW, fbH)

		title := "GAME OVER"
		r.DrawString(title, fbW/2-TextWidth(title, 5.0)/2, fbH/2-120, 5.0, ColorRed)

		scoreStr := fmt.Sprintf("FINAL SCORE %d", s.Score)
		r.DrawString(scoreStr, fbW/2-TextWidth(scoreStr, 2.0)/2, fbH/2-30, 2.0, ColorGold)

		if s.Score > 0 && s.Score >= s.HighScore {
			best := "NEW HIGH SCORE!"
			r.DrawString(best, fbW/2-TextWidth(best, 2.0)/2, fbH/2+10, 2.0, Palette.MenuActive)
		} else {
			best := fmt.Sprintf("HIGH SCORE %d", s.HighScore)
			r.DrawString(best, fbW/2-TextWidth(best, 2.0)/2, fbH/2+10, 2.0, Palette.HudText)
		}

		hint := "SPACE RESTART   ESC MENU"
		r.DrawString(hint, fbW/2-TextWidth(hint, 1.5)/2, fbH/2+70, 1.5, Palette.MenuItem)
	}

	r.FlushText(fbW, fbH)
}

// dimBoard darkens the already-drawn board under an overlay screen.
func dimBoard(r *Renderer, fbW, fbH int) {
	r.QueueRect(0, 0, float32(fbW), float32(fbH), Palette.Overlay, 0.55)
	r.FlushRects(fbW, fbH)
}

func drawMenu(r *Renderer, s *GameSession, menu *Menu, tracker *StatsTracker, fbW, fbH int) {
	title := "MAMBA"
	r.DrawString(title, fbW/2-TextWidth(title, 6.0)/2, 64, 6.0, Palette.MenuTitle)

	if s.HighScore > 0 {
		hi := fmt.Sprintf("HIGH SCORE %d", s.HighScore)
		r.DrawString(hi, fbW/2-TextWidth(hi, 2.0)/2, 132, 2.0, ColorGold)
	}

	// Mode rows, then the settings rows after a gap.
	rowScale := float32(2.0)
	rowH := 26
	y := 186
	for i, name := range modeOrder {
		drawMenuRow(r, modeLabels[name], menu.Row == i, fbW, y, rowScale)
		y += rowH
	}
	y += 14
	settings := []string{
		fmt.Sprintf("DIFFICULTY: %s", upper(s.Cfg.Difficulty)),
		fmt.Sprintf("GRID: %s", onOff(s.Cfg.ShowGrid)),
		fmt.Sprintf("SOUND: %s", onOff(s.Cfg.SoundEnabled)),
	}
	for i, row := range settings {
		drawMenuRow(r, row, menu.Row == len(modeOrder)+i, fbW, y, rowScale)
		y += rowH
	}

	// Blurb for the mode under the cursor; settings rows get the adjust hint.
	blurb := "LEFT/RIGHT TO ADJUST"
	if name := menu.SelectedMode(); name != "" {
		blurb = modeBlurbs[name]
	}
	r.DrawString(blurb, fbW/2-TextWidth(blurb, 1.5)/2, fbH-96, 1.5, Palette.MenuItem)

	if tracker != nil {
		done, total := tracker.UnlockedCount()
		ach := fmt.Sprintf("ACHIEVEMENTS %d/%d   %d PTS", done, total, tracker.TotalPoints())
		r.DrawString(ach, fbW/2-TextWidth(ach, 1.5)/2, fbH-66, 1.5, Palette.HudText)
	}

	hint := "ARROWS SELECT   SPACE START   ESC QUIT"
	r.DrawString(hint, fbW/2-TextWidth(hint, 1.5)/2, fbH-36, 1.5, Palette.MenuItem)
}

func drawMenuRow(r *Renderer, label string, active bool, fbW, y int, scale float32) {
	col := Palette.MenuItem
	if active {
		label = "> " + label + " <"
		col = Palette.MenuActive
	}
	r.DrawString(label, fbW/2-TextWidth(label, scale)/2, y, scale, col)
}

func drawRunHUD(r *Renderer, s *GameSession, fbW, fbH int) {
	// Top-left: score pair, then the slower-moving stats below.
	scoreStr := fmt.Sprintf("SCORE %d   HI %d", s.Score, s.HighScore)
	r.DrawString(scoreStr, 8, 8, 2.0, Palette.HudText)

	statStr := fmt.Sprintf("LEN %d   SPEED %d   %.1fS", s.Snake.Length(), s.CurrentFps, s.Clock)
	r.DrawString(statStr, 8, 30, 1.5, Palette.MenuItem)

	// Top-right: whatever the mode wants to say about itself.
	if st := s.Mode.StatusText(); st != "" {
		r.DrawString(st, fbW-TextWidth(st, 2.0)-8, 8, 2.0, Palette.MenuActive)
	}

	// Bottom-left: live effect windows worth a glance.
	x := 8
	for _, tag := range effectTags(s) {
		r.DrawString(tag.text, x, fbH-22, 1.5, tag.col)
		x += TextWidth(tag.text, 1.5) + 14
	}

	// Center pop message, fading through its final ticks.
	if s.Msg.Ticks > 0 && s.Msg.Text != "" {
		alpha := float32(1.0)
		if s.Msg.Ticks < messageFadeTicks {
			alpha = float32(s.Msg.Ticks) / messageFadeTicks
		}
		popScale := float32(3.0)
		r.DrawStringAlpha(s.Msg.Text, fbW/2-TextWidth(s.Msg.Text, popScale)/2, fbH/2-80, popScale, s.Msg.Color, alpha)
	}
}

type hudTag struct {
	text string
	col  RGB
}

func effectTags(s *GameSession) []hudTag {
	tags := make([]hudTag, 0, 4)
	if s.Effects.Invincible() {
		tags = append(tags, hudTag{"INVINCIBLE", Palette.SnakeGhost})
	}
	if s.Effects.Has(EffectDoubleScore) {
		tags = append(tags, hudTag{"SCORE X2", ColorGold})
	}
	if s.Effects.Has(EffectNoWalls) {
		tags = append(tags, hudTag{"NO WALLS", ColorGreen})
	}
	if s.Effects.Has(EffectReverseControls) {
		tags = append(tags, hudTag{"REVERSED", ColorRed})
	}
	return tags
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// upper is enough for the ASCII config words that reach the menu.
func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}
