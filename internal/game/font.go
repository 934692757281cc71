package game

// Font atlas layout (generated at startup: 32 cols x 4 rows, ASCII 0-127).
const (
	FontGlyphW = 5
	FontGlyphH = 7
	FontCellW  = FontGlyphW + 1
	FontCellH  = FontGlyphH + 1
	FontCols   = 32
	FontRows   = 4
	FontAtlasW = FontCellW * FontCols // 192
	FontAtlasH = FontCellH * FontRows // 32
)

// glyphs5x7 holds the printable lower half of ASCII (32..95), rows top to
// bottom, bit 4 the leftmost pixel. Lowercase letters reuse the uppercase
// shapes; code points with no entry render blank.
var glyphs5x7 = [64][FontGlyphH]byte{
	' ' - 32:  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	'!' - 32:  {0x04, 0x04, 0x04, 0x04, 0x04, 0x00, 0x04},
	'"' - 32:  {0x0A, 0x0A, 0x0A, 0x00, 0x00, 0x00, 0x00},
	'#' - 32:  {0x0A, 0x0A, 0x1F, 0x0A, 0x1F, 0x0A, 0x0A},
	'$' - 32:  {0x04, 0x0F, 0x14, 0x0E, 0x05, 0x1E, 0x04},
	'%' - 32:  {0x18, 0x19, 0x02, 0x04, 0x08, 0x13, 0x03},
	'&' - 32:  {0x0C, 0x12, 0x14, 0x08, 0x15, 0x12, 0x0D},
	'\'' - 32: {0x0C, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00},
	'(' - 32:  {0x02, 0x04, 0x08, 0x08, 0x08, 0x04, 0x02},
	')' - 32:  {0x08, 0x04, 0x02, 0x02, 0x02, 0x04, 0x08},
	'*' - 32:  {0x00, 0x04, 0x15, 0x0E, 0x15, 0x04, 0x00},
	'+' - 32:  {0x00, 0x04, 0x04, 0x1F, 0x04, 0x04, 0x00},
	',' - 32:  {0x00, 0x00, 0x00, 0x00, 0x0C, 0x04, 0x08},
	'-' - 32:  {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00},
	'.' - 32:  {0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x0C},
	'/' - 32:  {0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x00},
	'0' - 32:  {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1' - 32:  {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2' - 32:  {0x0E, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1F},
	'3' - 32:  {0x1F, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0E},
	'4' - 32:  {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5' - 32:  {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6' - 32:  {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7' - 32:  {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8' - 32:  {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9' - 32:  {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	':' - 32:  {0x00, 0x0C, 0x0C, 0x00, 0x0C, 0x0C, 0x00},
	';' - 32:  {0x00, 0x0C, 0x0C, 0x00, 0x0C, 0x04, 0x08},
	'<' - 32:  {0x02, 0x04, 0x08, 0x10, 0x08, 0x04, 0x02},
	'=' - 32:  {0x00, 0x00, 0x1F, 0x00, 0x1F, 0x00, 0x00},
	'>' - 32:  {0x08, 0x04, 0x02, 0x01, 0x02, 0x04, 0x08},
	'?' - 32:  {0x0E, 0x11, 0x01, 0x02, 0x04, 0x00, 0x04},
	'@' - 32:  {0x0E, 0x11, 0x01, 0x0D, 0x15, 0x15, 0x0E},
	'A' - 32:  {0x0E, 0x11, 0x11, 0x11, 0x1F, 0x11, 0x11},
	'B' - 32:  {0x1E, 0x11, 0x11, 0x1E, 0x11, 0x11, 0x1E},
	'C' - 32:  {0x0E, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0E},
	'D' - 32:  {0x1E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1E},
	'E' - 32:  {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x1F},
	'F' - 32:  {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x10},
	'G' - 32:  {0x0E, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0F},
	'H' - 32:  {0x11, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'I' - 32:  {0x0E, 0x04, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'J' - 32:  {0x07, 0x02, 0x02, 0x02, 0x02, 0x12, 0x0C},
	'K' - 32:  {0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11},
	'L' - 32:  {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1F},
	'M' - 32:  {0x11, 0x1B, 0x15, 0x15, 0x11, 0x11, 0x11},
	'N' - 32:  {0x11, 0x11, 0x19, 0x15, 0x13, 0x11, 0x11},
	'O' - 32:  {0x0E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'P' - 32:  {0x1E, 0x11, 0x11, 0x1E, 0x10, 0x10, 0x10},
	'Q' - 32:  {0x0E, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0D},
	'R' - 32:  {0x1E, 0x11, 0x11, 0x1E, 0x14, 0x12, 0x11},
	'S' - 32:  {0x0F, 0x10, 0x10, 0x0E, 0x01, 0x01, 0x1E},
	'T' - 32:  {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
	'U' - 32:  {0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'V' - 32:  {0x11, 0x11, 0x11, 0x11, 0x11, 0x0A, 0x04},
	'W' - 32:  {0x11, 0x11, 0x11, 0x15, 0x15, 0x15, 0x0A},
	'X' - 32:  {0x11, 0x11, 0x0A, 0x04, 0x0A, 0x11, 0x11},
	'Y' - 32:  {0x11, 0x11, 0x11, 0x0A, 0x04, 0x04, 0x04},
	'Z' - 32:  {0x1F, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1F},
	'[' - 32:  {0x0E, 0x08, 0x08, 0x08, 0x08, 0x08, 0x0E},
	'\\' - 32: {0x00, 0x10, 0x08, 0x04, 0x02, 0x01, 0x00},
	']' - 32:  {0x0E, 0x02, 0x02, 0x02, 0x02, 0x02, 0x0E},
	'^' - 32:  {0x04, 0x0A, 0x11, 0x00, 0x00, 0x00, 0x00},
	'_' - 32:  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F},
}

func glyphFor(ch rune) ([FontGlyphH]byte, bool) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 32
	}
	if ch < 32 || ch > 95 {
		return [FontGlyphH]byte{}, false
	}
	return glyphs5x7[ch-32], true
}

// fontAtlasPixels rasterizes the glyph table into an RGBA atlas, white on
// transparent, one cell per code point.
func fontAtlasPixels() []byte {
	pix := make([]byte, FontAtlasW*FontAtlasH*4)
	for code := 0; code < FontCols*FontRows; code++ {
		g, ok := glyphFor(rune(code))
		if !ok {
			continue
		}
		ox := (code % FontCols) * FontCellW
		oy := (code / FontCols) * FontCellH
		for gy := 0; gy < FontGlyphH; gy++ {
			bits := g[gy]
			for gx := 0; gx < FontGlyphW; gx++ {
				if bits&(1<<(FontGlyphW-1-gx)) == 0 {
					continue
				}
				o := ((oy+gy)*FontAtlasW + ox + gx) * 4
				pix[o] = 255
				pix[o+1] = 255
				pix[o+2] = 255
				pix[o+3] = 255
			}
		}
	}
	return pix
}
