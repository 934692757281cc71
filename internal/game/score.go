package game

import "math"

// ScoreCompositor folds a food's base value with the mode multiplier and
// the one-shot fruit multiplier. Lump bonuses (time-attack combo payout,
// zen collision grants) go straight onto the session score and never pass
// through here.
type ScoreCompositor struct {
	fruitMult float64
}

func NewScoreCompositor() *ScoreCompositor {
	return &ScoreCompositor{fruitMult: 1.0}
}

// Compose returns floor(base x modeMult x fruitMult) and spends the fruit
// multiplier: it applies to exactly one food event.
func (c *ScoreCompositor) Compose(base int, modeMult float64) int {
	gained := int(math.Floor(float64(base) * modeMult * c.fruitMult))
	c.fruitMult = 1.0
	if gained < 0 {
		gained = 0
	}
	return gained
}

// ArmFruitMultiplier installs the multiplier spent by the next Compose.
func (c *ScoreCompositor) ArmFruitMultiplier(mult float64) {
	if mult > 0 {
		c.fruitMult = mult
	}
}

// FruitMultiplier reports the armed multiplier, mostly for tests and HUD.
func (c *ScoreCompositor) FruitMultiplier() float64 {
	return c.fruitMult
}

// Reset disarms any pending fruit multiplier.
func (c *ScoreCompositor) Reset() {
	c.fruitMult = 1.0
}
