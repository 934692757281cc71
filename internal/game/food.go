package game

import "fmt"

type FoodKind int

const (
	FoodNormal       FoodKind = iota
	FoodSpecial               // worth double, grows two cells
	FoodDoubleScore           // arms a x2 spent on its own composition
	FoodSpeedUp               // +5 fps for a while
	FoodSpeedDown             // -3 fps for a while
	FoodLengthDouble          // body doubles via its own effect
	FoodShrink                // body halves, never below three cells
	FoodInvincible            // collisions pass through for a while

	FoodKindCount // must stay last
)

var foodKindNames = [FoodKindCount]string{
	"normal", "special", "double_score", "speed_up",
	"speed_down", "length_double", "shrink", "invincible",
}

// foodKindLabels are the HUD pop names for the non-normal categories.
var foodKindLabels = [FoodKindCount]string{
	"FOOD", "SPECIAL FOOD", "DOUBLE SCORE", "SPEED UP",
	"SPEED DOWN", "LENGTH X2", "SHRINK", "INVINCIBLE",
}

func foodLabel(k FoodKind) string {
	if k < 0 || k >= FoodKindCount {
		return "FOOD"
	}
	return foodKindLabels[k]
}

func (k FoodKind) String() string {
	if k < 0 || k >= FoodKindCount {
		return "unknown"
	}
	return foodKindNames[k]
}

// ParseFoodKind maps a stored name back to its kind. Unknown names fall
// back to normal food rather than failing the restore.
func ParseFoodKind(name string) FoodKind {
	for i, n := range foodKindNames {
		if n == name {
			return FoodKind(i)
		}
	}
	return FoodNormal
}

// Value is the base score before mode and fruit multipliers.
func (k FoodKind) Value() int {
	switch k {
	case FoodSpecial:
		return 20
	case FoodDoubleScore, FoodLengthDouble, FoodInvincible:
		return 30
	case FoodSpeedUp, FoodSpeedDown:
		return 15
	case FoodShrink:
		return 5
	default:
		return 10
	}
}

// Growth is the number of cells gained through the normal growth path.
// LengthDouble grows through its own effect instead.
func (k FoodKind) Growth() int {
	switch k {
	case FoodSpecial:
		return 2
	case FoodLengthDouble:
		return 0
	default:
		return 1
	}
}

// EffectPayload carries the kind-specific numbers a consumed food hands to
// the effect registry.
type EffectPayload struct {
	Multiplier float64 `json:"multiplier,omitempty"`
	FpsDelta   int     `json:"fps_delta,omitempty"`
	Duration   int     `json:"duration,omitempty"`
}

type foodEntry struct {
	kind FoodKind
	prob float64
}

// foodTable is walked in declaration order by categoryForRoll. The
// probabilities must sum to exactly 1.0; NewFoodSpawner refuses to start
// otherwise.
var foodTable = []foodEntry{
	{FoodNormal, 0.70},
	{FoodSpecial, 0.15},
	{FoodDoubleScore, 0.05},
	{FoodSpeedUp, 0.03},
	{FoodSpeedDown, 0.03},
	{FoodLengthDouble, 0.02},
	{FoodShrink, 0.015},
	{FoodInvincible, 0.005},
}

const foodTableEpsilon = 1e-9

// categoryForRoll walks the cumulative table and picks the first category
// whose cumulative probability reaches r. r is expected in [0,1).
func categoryForRoll(r float64) FoodKind {
	cum := 0.0
	for _, e := range foodTable {
		cum += e.prob
		if cum >= r {
			return e.kind
		}
	}
	return foodTable[len(foodTable)-1].kind
}

// FoodSpawner owns the single live food item: its cell, its rolled category,
// and the count-down after which a non-normal category decays back to normal
// in place.
type FoodSpawner struct {
	Pos          Position
	Kind         FoodKind
	SpecialTicks int
	Payload      EffectPayload

	rng *Rand
}

// NewFoodSpawner verifies the category table and seeds the spawner's RNG.
// A table that does not sum to 1.0 is a programming error and stops the
// engine before the first tick.
func NewFoodSpawner(seed uint64) *FoodSpawner {
	sum := 0.0
	for _, e := range foodTable {
		sum += e.prob
	}
	if sum < 1.0-foodTableEpsilon || sum > 1.0+foodTableEpsilon {
		panic(fmt.Sprintf("food category table sums to %v, want 1.0", sum))
	}
	return &FoodSpawner{rng: NewRand(seed), Kind: FoodNormal}
}

// Respawn draws random cells until one is free of the snake body and all
// hazard cells, then rolls the category and arms its payload and timer.
func (f *FoodSpawner) Respawn(occupied, hazards []Position) {
	for {
		p := Position{X: f.rng.Intn(GridWidth), Y: f.rng.Intn(GridHeight)}
		if containsPos(occupied, p) || containsPos(hazards, p) {
			continue
		}
		f.Pos = p
		break
	}
	f.setKind(categoryForRoll(f.rng.Float64()))
}

func (f *FoodSpawner) setKind(k FoodKind) {
	f.Kind = k
	f.Payload = EffectPayload{}
	f.SpecialTicks = 0
	if k == FoodNormal {
		return
	}
	f.SpecialTicks = FoodSpecialTicks
	switch k {
	case FoodDoubleScore:
		f.Payload = EffectPayload{Multiplier: 2.0, Duration: EffectTicks}
	case FoodSpeedUp:
		f.Payload = EffectPayload{FpsDelta: 5, Duration: EffectTicks}
	case FoodSpeedDown:
		f.Payload = EffectPayload{FpsDelta: -3, Duration: EffectTicks}
	case FoodInvincible:
		f.Payload = EffectPayload{Duration: EffectTicks}
	}
}

// Restore reinstates a persisted food without consuming any randomness.
func (f *FoodSpawner) Restore(kind FoodKind, pos Position, ticks int) {
	f.Pos = pos
	f.setKind(kind)
	if kind != FoodNormal {
		f.SpecialTicks = ticks
	}
}

// Tick counts the special timer down. At zero the food degrades to a normal
// one where it stands; it is not respawned.
func (f *FoodSpawner) Tick() {
	if f.Kind == FoodNormal || f.SpecialTicks <= 0 {
		return
	}
	f.SpecialTicks--
	if f.SpecialTicks <= 0 {
		f.Kind = FoodNormal
		f.Payload = EffectPayload{}
	}
}

// Value returns the current category's base score.
func (f *FoodSpawner) Value() int {
	return f.Kind.Value()
}

// Growth returns the current category's normal-path growth.
func (f *FoodSpawner) Growth() int {
	return f.Kind.Growth()
}

func containsPos(cells []Position, p Position) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}
