package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// hazardLister is what the renderer needs from a mode that spawns zones.
type hazardLister interface {
	Hazards() []Hazard
}

// quadFloats is one colored quad: 6 vertices x (x, y, r, g, b, a).
const quadFloats = 6 * 6

// maxBoardQuads bounds the board VBO: every cell plus grid lines.
const maxBoardQuads = GridWidth*GridHeight + GridWidth + GridHeight + 8

// Renderer draws the board as batched colored quads and text as textured
// glyph quads. It implements RenderSink: the session marks changed cells,
// and board geometry is rebuilt only on frames where a mark came in. The
// rebuild itself is whole-board; the marks gate when, not where.
type Renderer struct {
	cellProg uint32
	cellURes int32

	boardVAO uint32
	boardVBO uint32
	boardLen int32 // vertex count of the cached board geometry
	boardBuf []float32

	uiVAO uint32
	uiVBO uint32
	uiBuf []float32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32

	dirtyMarks int
	fullRedraw bool

	framesDrawn   int
	boardRebuilds int
}

func NewRenderer() (*Renderer, error) {
	cellProg, err := linkProgram(cellVertSrc, cellFragSrc)
	if err != nil {
		return nil, fmt.Errorf("cell program: %w", err)
	}

	r := &Renderer{cellProg: cellProg, fullRedraw: true}

	gl.UseProgram(cellProg)
	r.cellURes = gl.GetUniformLocation(cellProg, gl.Str("uResolution\x00"))

	gl.GenVertexArrays(1, &r.boardVAO)
	gl.GenBuffers(1, &r.boardVBO)
	setupQuadVAO(r.boardVAO, r.boardVBO, maxBoardQuads*quadFloats)

	gl.GenVertexArrays(1, &r.uiVAO)
	gl.GenBuffers(1, &r.uiVBO)
	setupQuadVAO(r.uiVAO, r.uiVBO, 256*quadFloats)

	gl.BindVertexArray(0)

	bg := Palette.Background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	return r, nil
}

// setupQuadVAO configures the pos(2) + color(4) layout shared by the board
// and UI streams.
func setupQuadVAO(vao, vbo uint32, capFloats int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capFloats*4, nil, gl.STREAM_DRAW)
	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.boardVBO, r.uiVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.boardVAO, r.uiVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.cellProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// MarkDirtyCell implements RenderSink.
func (r *Renderer) MarkDirtyCell(x, y int) {
	r.dirtyMarks++
}

// MarkFullRedraw implements RenderSink.
func (r *Renderer) MarkFullRedraw() {
	r.fullRedraw = true
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *Renderer) EndFrame() {
	r.framesDrawn++
}

// FrameStats reports how often the board geometry actually changed.
func (r *Renderer) FrameStats() (frames, rebuilds int) {
	return r.framesDrawn, r.boardRebuilds
}

// pushQuad appends one colored rectangle (two triangles) in pixel space.
func pushQuad(buf []float32, x, y, w, h float32, col RGB, alpha float32) []float32 {
	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	return append(buf,
		x, y, cr, cg, cb, alpha,
		x+w, y, cr, cg, cb, alpha,
		x, y+h, cr, cg, cb, alpha,
		x+w, y, cr, cg, cb, alpha,
		x+w, y+h, cr, cg, cb, alpha,
		x, y+h, cr, cg, cb, alpha,
	)
}

// pushCell appends one grid cell, inset so tiles read as tiles.
func pushCell(buf []float32, p Position, inset float32, col RGB, alpha float32) []float32 {
	x := float32(p.X*CellSize) + inset
	y := float32(p.Y*CellSize) + inset
	s := float32(CellSize) - 2*inset
	return pushQuad(buf, x, y, s, s, col, alpha)
}

// DrawBoard renders the playfield. Cached geometry is reused on frames
// where no cell was invalidated.
func (r *Renderer) DrawBoard(s *GameSession, fbW, fbH int) {
	if r.fullRedraw || r.dirtyMarks > 0 || r.boardLen == 0 {
		r.rebuildBoard(s)
		r.boardRebuilds++
	}
	r.fullRedraw = false
	r.dirtyMarks = 0

	if r.boardLen == 0 {
		return
	}
	gl.UseProgram(r.cellProg)
	gl.BindVertexArray(r.boardVAO)
	gl.Uniform2f(r.cellURes, float32(fbW), float32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, r.boardLen)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) rebuildBoard(s *GameSession) {
	buf := r.boardBuf[:0]

	if s.Cfg.ShowGrid {
		for x := 0; x <= GridWidth; x++ {
			buf = pushQuad(buf, float32(x*CellSize), 0, 1, WindowHeight, Palette.GridLine, 1)
		}
		for y := 0; y <= GridHeight; y++ {
			buf = pushQuad(buf, 0, float32(y*CellSize), WindowWidth, 1, Palette.GridLine, 1)
		}
	}

	// Hazard zones under everything else: translucent footprint, solid core.
	if hl, ok := s.Mode.(hazardLister); ok {
		for _, h := range hl.Hazards() {
			col := Palette.Poison
			if h.Type == HazardSpeedTrap {
				col = Palette.SpeedTrap
			}
			for _, p := range h.Footprint() {
				buf = pushCell(buf, p, 0, col, 0.30)
			}
			buf = pushCell(buf, h.Pos, 3, col, 0.85)
		}
	}

	if eff, ok := s.Effects.Get(EffectMultiplyFood); ok {
		for _, p := range eff.ExtraFoods {
			buf = pushCell(buf, p, 4, Palette.ExtraFood, 1)
		}
	}

	buf = pushCell(buf, s.Food.Pos, 2, foodColor(s.Food.Kind), 1)

	headCol := Palette.SnakeHead
	bodyCol := Palette.SnakeBody
	if s.Effects.Invincible() {
		headCol = Palette.SnakeGhost
		bodyCol = Palette.SnakeGhost.Mul(200)
	}
	for i := len(s.Snake.Body) - 1; i >= 1; i-- {
		buf = pushCell(buf, s.Snake.Body[i], 1, bodyCol, 1)
	}
	if len(s.Snake.Body) > 0 {
		buf = pushCell(buf, s.Snake.Body[0], 1, headCol, 1)
	}

	r.boardBuf = buf
	r.boardLen = int32(len(buf) / 6)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.boardVBO)
	if len(buf) > maxBoardQuads*quadFloats {
		gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)
	} else if len(buf) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(buf)*4, gl.Ptr(buf))
	}
}

// QueueRect buffers one UI rectangle in pixel space for this frame.
func (r *Renderer) QueueRect(x, y, w, h float32, col RGB, alpha float32) {
	r.uiBuf = pushQuad(r.uiBuf, x, y, w, h, col, alpha)
}

// FlushRects draws all buffered UI rectangles and clears the buffer.
func (r *Renderer) FlushRects(fbW, fbH int) {
	if len(r.uiBuf) == 0 {
		return
	}
	gl.UseProgram(r.cellProg)
	gl.BindVertexArray(r.uiVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.uiVBO)
	gl.Uniform2f(r.cellURes, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	count := len(r.uiBuf) / 6
	if len(r.uiBuf) > 256*quadFloats {
		gl.BufferData(gl.ARRAY_BUFFER, len(r.uiBuf)*4, gl.Ptr(r.uiBuf), gl.STREAM_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.uiBuf)*4, gl.Ptr(r.uiBuf))
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.Disable(gl.BLEND)
	r.uiBuf = r.uiBuf[:0]
}
