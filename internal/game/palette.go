package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Message and HUD colours.
var (
	ColorWhite  = RGB{R: 255, G: 255, B: 255}
	ColorGreen  = RGB{R: 0, G: 255, B: 0}
	ColorRed    = RGB{R: 255, G: 0, B: 0}
	ColorBlue   = RGB{R: 0, G: 0, B: 255}
	ColorGray   = RGB{R: 128, G: 128, B: 128}
	ColorGold   = RGB{R: 255, G: 215, B: 0}
	ColorOrange = RGB{R: 255, G: 165, B: 0}
	ColorPurple = RGB{R: 128, G: 0, B: 128}
)

var Palette = struct {
	Background RGB
	GridLine   RGB
	SnakeHead  RGB
	SnakeBody  RGB
	SnakeGhost RGB
	FoodNormal RGB
	FoodBonus  RGB
	ExtraFood  RGB
	Poison     RGB
	SpeedTrap  RGB
	HudText    RGB
	MenuTitle  RGB
	MenuItem   RGB
	MenuActive RGB
	Overlay    RGB
}{
	Background: RGB{R: 12, G: 14, B: 16},
	GridLine:   RGB{R: 34, G: 38, B: 42},
	SnakeHead:  RGB{R: 0, G: 255, B: 0},
	SnakeBody:  RGB{R: 0, G: 200, B: 0},
	SnakeGhost: RGB{R: 90, G: 160, B: 220},
	FoodNormal: RGB{R: 255, G: 0, B: 0},
	FoodBonus:  RGB{R: 255, G: 215, B: 0},
	ExtraFood:  RGB{R: 120, G: 220, B: 120},
	Poison:     RGB{R: 128, G: 0, B: 128},
	SpeedTrap:  RGB{R: 60, G: 90, B: 200},
	HudText:    RGB{R: 235, G: 235, B: 235},
	MenuTitle:  RGB{R: 0, G: 255, B: 0},
	MenuItem:   RGB{R: 160, G: 160, B: 160},
	MenuActive: RGB{R: 255, G: 215, B: 0},
	Overlay:    RGB{R: 0, G: 0, B: 0},
}

// foodColor maps a category to its board colour. Non-normal categories get
// a gold base; the per-kind accent keeps them tellable apart at 20px.
func foodColor(k FoodKind) RGB {
	switch k {
	case FoodNormal:
		return Palette.FoodNormal
	case FoodSpecial:
		return Palette.FoodBonus
	case FoodDoubleScore:
		return ColorGold.Add(-40, 0, 60)
	case FoodSpeedUp:
		return ColorOrange
	case FoodSpeedDown:
		return ColorBlue.Add(80, 80, 0)
	case FoodLengthDouble:
		return ColorGreen.Add(120, -40, 120)
	case FoodShrink:
		return ColorGray.Add(40, 0, 0)
	case FoodInvincible:
		return ColorPurple.Add(80, 40, 80)
	}
	return Palette.FoodNormal
}
