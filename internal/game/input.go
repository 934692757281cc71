package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Input struct {
	prevKeys  map[glfw.Key]bool
	konamiIdx int
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

var konamiSeq = []glfw.Key{
	glfw.KeyUp, glfw.KeyUp,
	glfw.KeyDown, glfw.KeyDown,
	glfw.KeyLeft, glfw.KeyRight,
	glfw.KeyLeft, glfw.KeyRight,
	glfw.KeyB, glfw.KeyA,
}

// trackKonami advances the secret-code progress for one fresh key press
// and reports completion. A wrong key restarts the hunt, with Up opening
// a new attempt immediately.
func (in *Input) trackKonami(key glfw.Key) bool {
	if key == konamiSeq[in.konamiIdx] {
		in.konamiIdx++
		if in.konamiIdx == len(konamiSeq) {
			in.konamiIdx = 0
			return true
		}
		return false
	}
	if key == konamiSeq[0] {
		in.konamiIdx = 1
	} else {
		in.konamiIdx = 0
	}
	return false
}

// ReadGameKeys polls steering (arrows and WASD) and feeds every fresh
// press into the secret-code tracker. Returns true on the frame the code
// completes.
func (in *Input) ReadGameKeys(window *glfw.Window, s *GameSession) bool {
	steer := []struct {
		key glfw.Key
		dir Direction
	}{
		{glfw.KeyUp, DirUp},
		{glfw.KeyDown, DirDown},
		{glfw.KeyLeft, DirLeft},
		{glfw.KeyRight, DirRight},
		{glfw.KeyW, DirUp},
		{glfw.KeyS, DirDown},
		{glfw.KeyA, DirLeft},
		{glfw.KeyD, DirRight},
	}

	code := false
	for _, b := range steer {
		if !in.JustPressed(window, b.key) {
			continue
		}
		s.Steer(b.dir)
		if in.trackKonami(b.key) {
			code = true
		}
	}
	if in.JustPressed(window, glfw.KeyB) && in.trackKonami(glfw.KeyB) {
		code = true
	}
	return code
}
