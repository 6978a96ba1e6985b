// Package anim evolves a flat per-entity animation state record. Presets
// produce per-tick patches merged last-write-wins per channel; temporary
// overlays (hurt flash, arm swing) run concurrently on top of the active
// preset and reset their phase on retrigger.
package anim

// Channel names one field of the flat entity state record. There is no
// nesting and no per-entity-type subclassing; every entity shares this
// schema.
type Channel int

// State channels. Boolean channels store 0 or 1.
const (
	ChanAge Channel = iota
	ChanTime
	ChanLimbSwing
	ChanLimbSpeed
	ChanSwingProgress
	ChanHurtTime
	ChanDeathTime
	ChanHealth
	ChanAggressive
	ChanHurt
	ChanChild
	ChanOnGround

	numChannels
)

var channelNames = [numChannels]string{
	"age", "time", "limb_swing", "limb_speed", "swing_progress",
	"hurt_time", "death_time", "health",
	"is_aggressive", "is_hurt", "is_child", "is_on_ground",
}

// String returns the channel's wire name.
func (c Channel) String() string {
	if c < 0 || c >= numChannels {
		return "unknown"
	}
	return channelNames[c]
}

// State is the flat animation state record: one value per channel, value
// semantics throughout (Apply returns a new State, inputs are never
// mutated).
type State [numChannels]float64

// Get returns a numeric channel.
func (s State) Get(c Channel) float64 { return s[c] }

// Bool reads a boolean channel.
func (s State) Bool(c Channel) bool { return s[c] != 0 }

// Change assigns one channel.
type Change struct {
	Channel Channel
	Value   float64
}

// Bool builds a Change from a boolean value.
func Bool(c Channel, v bool) Change {
	if v {
		return Change{Channel: c, Value: 1}
	}
	return Change{Channel: c, Value: 0}
}

// Set builds a numeric Change.
func Set(c Channel, v float64) Change {
	return Change{Channel: c, Value: v}
}

// Patch is an ordered list of channel assignments. Applying a patch writes
// each change in order, so a later change to the same channel wins.
type Patch []Change

// Apply merges the patch into a copy of the state.
func (s State) Apply(p Patch) State {
	out := s
	for _, ch := range p {
		if ch.Channel >= 0 && ch.Channel < numChannels {
			out[ch.Channel] = ch.Value
		}
	}
	return out
}
