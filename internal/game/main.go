package game

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	configPath    = "config.json"
	highScorePath = "high_score.json"
	savesDir      = "saves"
	quickSlot     = "quick"
)

// RunDesktop owns the window, the fixed-timestep loop and all key handling.
// The simulation itself never sees GLFW; it is driven through GameSession.
func RunDesktop() {
	runtime.LockOSThread()

	cfg := LoadConfig(configPath)

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		panic(fmt.Errorf("font: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}
	SetSFXVolume(cfg.Volume)
	soundEnabled = cfg.SoundEnabled

	tracker := NewStatsTracker(".")
	saver := NewSaveManager(savesDir)

	session := NewSession(cfg)
	session.Render = rend
	session.Audio = DesktopAudio{}
	session.Stats = tracker
	session.HighScore = LoadHighScore(highScorePath)
	tracker.Attach(session.Bus)
	tracker.OnUnlock = func(a Achievement) {
		session.ShowMessage(fmt.Sprintf("ACHIEVEMENT: %s", a.Name), ColorGold)
		PlaySound(SoundLevelUp)
	}

	menu := &Menu{}
	for i, name := range modeOrder {
		if name == cfg.Mode {
			menu.Row = i
		}
	}

	input := NewInput()
	savedHigh := session.HighScore
	var acc float64

	defer func() {
		if err := SaveConfig(configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "save config: %v\n", err)
		}
	}()

	last := glfw.GetTime()
	for !window.ShouldClose() && !session.Quitting() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		// Static screens wait for events at a reduced poll rate instead of
		// spinning at vsync.
		if session.State == StateRunning {
			glfw.PollEvents()
		} else {
			glfw.WaitEventsTimeout(1.0 / GameOverPollFps)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		switch session.State {
		case StateMenu:
			if input.JustPressed(window, glfw.KeyEscape) {
				window.SetShouldClose(true)
			}
			if input.JustPressed(window, glfw.KeyUp) {
				menu.MoveUp()
				PlaySound(SoundMenuSelect)
			}
			if input.JustPressed(window, glfw.KeyDown) {
				menu.MoveDown()
				PlaySound(SoundMenuSelect)
			}
			if input.JustPressed(window, glfw.KeyLeft) {
				if menu.Adjust(&cfg, -1) {
					applyMenuConfig(session, rend, cfg)
				}
			}
			if input.JustPressed(window, glfw.KeyRight) {
				if menu.Adjust(&cfg, +1) {
					applyMenuConfig(session, rend, cfg)
				}
			}
			if input.JustPressed(window, glfw.KeySpace) || input.JustPressed(window, glfw.KeyEnter) {
				PlaySound(SoundMenuSelect)
				if name := menu.SelectedMode(); name != "" {
					cfg.Mode = name
					session.Cfg = cfg
					session.SetMode(name)
					session.StartRun()
					acc = 0
				} else if menu.Adjust(&cfg, +1) {
					applyMenuConfig(session, rend, cfg)
				}
			}
			if input.JustPressed(window, glfw.KeyF9) {
				loadQuickSave(session, saver)
			}

		case StateRunning:
			if input.JustPressed(window, glfw.KeyEscape) {
				session.State = StateMenu
				rend.MarkFullRedraw()
			}
			if input.JustPressed(window, glfw.KeyP) {
				session.TogglePause()
			}
			if input.JustPressed(window, glfw.KeyR) {
				session.StartRun()
				acc = 0
			}
			if input.JustPressed(window, glfw.KeyG) {
				cfg.ShowGrid = !cfg.ShowGrid
				session.Cfg.ShowGrid = cfg.ShowGrid
				rend.MarkFullRedraw()
			}
			if input.JustPressed(window, glfw.KeyM) {
				cfg.SoundEnabled = ToggleSound()
				session.Cfg.SoundEnabled = cfg.SoundEnabled
			}
			if input.JustPressed(window, glfw.KeyF5) {
				if _, err := saver.SaveGame(session.Snapshot(), quickSlot); err != nil {
					fmt.Fprintf(os.Stderr, "quicksave: %v\n", err)
					session.ShowMessage("SAVE FAILED", ColorRed)
				} else {
					session.ShowMessage("GAME SAVED", ColorGreen)
				}
			}
			if input.JustPressed(window, glfw.KeyF9) {
				loadQuickSave(session, saver)
			}
			if input.ReadGameKeys(window, session) {
				session.Effects.GrantInvincibility(EffectTicks)
				tracker.MarkKonami()
				session.ShowMessage("KONAMI! INVINCIBLE", ColorGold)
				PlaySound(SoundLevelUp)
			}

			session.StepClock(dt)
			acc += dt
			step := 1.0 / float64(session.CurrentFps)
			for acc >= step {
				session.Tick()
				acc -= step
				if session.State != StateRunning {
					acc = 0
					break
				}
				step = 1.0 / float64(session.CurrentFps)
			}

			if session.State == StateGameOver && session.HighScore > savedHigh {
				if err := SaveHighScore(highScorePath, session.HighScore); err != nil {
					fmt.Fprintf(os.Stderr, "save high score: %v\n", err)
				} else {
					savedHigh = session.HighScore
				}
			}

		case StatePaused:
			if input.JustPressed(window, glfw.KeyP) {
				session.TogglePause()
				acc = 0
			}
			if input.JustPressed(window, glfw.KeyEscape) {
				session.State = StateMenu
				rend.MarkFullRedraw()
			}
			if input.JustPressed(window, glfw.KeyF5) {
				if _, err := saver.SaveGame(session.Snapshot(), quickSlot); err != nil {
					fmt.Fprintf(os.Stderr, "quicksave: %v\n", err)
				} else {
					session.ShowMessage("GAME SAVED", ColorGreen)
				}
			}

		case StateGameOver:
			if input.JustPressed(window, glfw.KeySpace) || input.JustPressed(window, glfw.KeyR) {
				PlaySound(SoundMenuSelect)
				session.StartRun()
				acc = 0
			}
			if input.JustPressed(window, glfw.KeyEscape) {
				session.State = StateMenu
				rend.MarkFullRedraw()
			}
		}

		rend.BeginFrame(fbW, fbH)
		if session.State != StateMenu {
			rend.DrawBoard(session, fbW, fbH)
		}
		RenderHUD(rend, session, menu, tracker, fbW, fbH)
		rend.EndFrame()
		window.SwapBuffers()
	}
}

func applyMenuConfig(s *GameSession, rend *Renderer, cfg Config) {
	s.Cfg = cfg
	soundEnabled = cfg.SoundEnabled
	rend.MarkFullRedraw()
}

func loadQuickSave(s *GameSession, saver *SaveManager) {
	snap, err := saver.LoadGame(quickSlot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickload: %v\n", err)
		return
	}
	s.Restore(snap)
	s.ShowMessage("GAME LOADED", ColorGreen)
}
