package game

// EffectKind names every timed window the registry can hold: the ones food
// grants and the ones chaos events push.
type EffectKind int

const (
	EffectDoubleScore     EffectKind = iota // score doubled while live
	EffectSpeedBoost                        // fps raised, snapshot restored on expiry
	EffectSpeedSlow                         // fps lowered, snapshot restored on expiry
	EffectNoWalls                           // walls wrap while live
	EffectReverseControls                   // direction input inverted while live
	EffectMultiplyFood                      // decorative bonus food cells on the board
	EffectGravityShift                      // announced drift, not steered
	EffectTimeFast                          // fps pushed up, snapshot restored
	EffectTimeSlow                          // fps pulled down, snapshot restored

	EffectKindCount // must stay last
)

var effectKindNames = [EffectKindCount]string{
	"double_score", "speed_boost", "speed_slow", "no_walls",
	"reverse_controls", "multiply_food", "gravity_shift",
	"time_fast", "time_slow",
}

func (k EffectKind) String() string {
	if k < 0 || k >= EffectKindCount {
		return "unknown"
	}
	return effectKindNames[k]
}

// ActiveEffect is one live timed window. RollbackFps is the snapshot the
// speed-affecting kinds restore on expiry; overlapping same-kind effects
// overwrite each other, so the snapshot that survives is the newest one,
// not a consistent history. That is the inherited behavior and stays.
type ActiveEffect struct {
	Kind           EffectKind
	RemainingTicks int
	RollbackFps    int
	ExtraFoods     []Position
	Drift          Direction
}

// EffectRegistry owns every live timed effect plus the invincibility
// countdown, which sits outside the generic list and is only ever read by
// the collision check.
type EffectRegistry struct {
	effects     []ActiveEffect
	invincTicks int
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{}
}

// Add installs an effect. A live effect of the same kind is replaced
// outright; there is no per-kind stacking.
func (r *EffectRegistry) Add(eff ActiveEffect) {
	for i := range r.effects {
		if r.effects[i].Kind == eff.Kind {
			r.effects[i] = eff
			return
		}
	}
	r.effects = append(r.effects, eff)
}

// Has reports whether an effect of the given kind is live.
func (r *EffectRegistry) Has(kind EffectKind) bool {
	for i := range r.effects {
		if r.effects[i].Kind == kind {
			return true
		}
	}
	return false
}

// Get returns the live effect of the given kind, if any.
func (r *EffectRegistry) Get(kind EffectKind) (ActiveEffect, bool) {
	for i := range r.effects {
		if r.effects[i].Kind == kind {
			return r.effects[i], true
		}
	}
	return ActiveEffect{}, false
}

// Count returns the number of live effects. Invincibility is not an effect
// in the list and does not count.
func (r *EffectRegistry) Count() int {
	return len(r.effects)
}

// Active returns the live effects in insertion order, for the HUD and the
// renderer. The slice is the registry's own; callers must not keep it.
func (r *EffectRegistry) Active() []ActiveEffect {
	return r.effects
}

// GrantInvincibility arms the countdown. A fresh grant replaces whatever
// remained; grants do not add up.
func (r *EffectRegistry) GrantInvincibility(ticks int) {
	if ticks > 0 {
		r.invincTicks = ticks
	}
}

// Invincible reports whether collisions are currently suppressed.
func (r *EffectRegistry) Invincible() bool {
	return r.invincTicks > 0
}

// InvincibleTicks returns the remaining suppression window, for the HUD.
func (r *EffectRegistry) InvincibleTicks() int {
	return r.invincTicks
}

// Tick counts every effect and the invincibility window down one frame and
// removes what expired. The expired effects are returned in list order so
// the session can apply their rollbacks; an expired kind the session does
// not recognize is simply dropped.
func (r *EffectRegistry) Tick() []ActiveEffect {
	if r.invincTicks > 0 {
		r.invincTicks--
	}
	var expired []ActiveEffect
	kept := r.effects[:0]
	for i := range r.effects {
		r.effects[i].RemainingTicks--
		if r.effects[i].RemainingTicks > 0 {
			kept = append(kept, r.effects[i])
		} else {
			expired = append(expired, r.effects[i])
		}
	}
	r.effects = kept
	return expired
}

// Clear drops every effect and the invincibility window. Used on run
// restart and on snapshot restore: the saved shape does not carry effects.
func (r *EffectRegistry) Clear() {
	r.effects = r.effects[:0]
	r.invincTicks = 0
}
