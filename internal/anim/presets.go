package anim

import "math"

// Cycle and clamp constants for the built-in definitions, in ticks.
const (
	WalkCycle     = 24.0
	IdleCycle     = 40.0
	DeathDuration = 20.0 // death_time never exceeds this
	HurtDuration  = 10.0
	SwingDuration = 6.0
)

// PresetIdle is the default standing pose with a slow breathing cycle on
// the time channel.
var PresetIdle = &Preset{
	ID:       "idle",
	Name:     "Idle",
	Duration: IdleCycle,
	Loop:     true,
	Setup: func() Patch {
		return Patch{Set(ChanLimbSpeed, 0), Bool(ChanOnGround, true)}
	},
	Update: func(s State, phase, dt float64) Patch {
		return Patch{
			Set(ChanTime, phase),
			Set(ChanLimbSwing, s.Get(ChanLimbSwing)*0.8), // ease out of a walk
		}
	},
}

// PresetWalk drives the limb swing channels with a looping gait.
var PresetWalk = &Preset{
	ID:       "walk",
	Name:     "Walk",
	Duration: WalkCycle,
	Loop:     true,
	Setup: func() Patch {
		return Patch{Set(ChanLimbSpeed, 1), Bool(ChanOnGround, true)}
	},
	Update: func(s State, phase, dt float64) Patch {
		return Patch{
			Set(ChanTime, phase),
			Set(ChanLimbSwing, s.Get(ChanLimbSwing)+dt*s.Get(ChanLimbSpeed)),
		}
	},
}

// PresetAggressive is the hostile stance: walk gait plus the aggression
// flag consumed by composite eye/overlay layers.
var PresetAggressive = &Preset{
	ID:       "aggressive",
	Name:     "Aggressive",
	Duration: WalkCycle,
	Loop:     true,
	Setup: func() Patch {
		return Patch{Set(ChanLimbSpeed, 1.4), Bool(ChanAggressive, true)}
	},
	Update: func(s State, phase, dt float64) Patch {
		return Patch{
			Set(ChanTime, phase),
			Set(ChanLimbSwing, s.Get(ChanLimbSwing)+dt*s.Get(ChanLimbSpeed)),
		}
	},
}

// PresetDeath is the non-looping keel-over. Its terminal channel death_time
// rises with the phase and clamps at DeathDuration; consumers poll the
// clamped value, there is no completion event.
var PresetDeath = &Preset{
	ID:       "death",
	Name:     "Death",
	Duration: DeathDuration,
	Loop:     false,
	Setup: func() Patch {
		return Patch{Set(ChanHealth, 0), Bool(ChanAggressive, false)}
	},
	Update: func(s State, phase, dt float64) Patch {
		return Patch{
			Set(ChanDeathTime, math.Min(phase, DeathDuration)),
			Set(ChanLimbSpeed, 0),
		}
	},
}

// Presets lists the built-in presets by id.
var Presets = map[string]*Preset{
	PresetIdle.ID:       PresetIdle,
	PresetWalk.ID:       PresetWalk,
	PresetAggressive.ID: PresetAggressive,
	PresetDeath.ID:      PresetDeath,
}

// OverlayHurt flashes the hurt channels for HurtDuration ticks. Retrigger
// restarts the countdown from the top.
var OverlayHurt = &Overlay{
	ID:       "hurt",
	Duration: HurtDuration,
	Update: func(s State, phase, dt float64) Patch {
		remaining := HurtDuration - phase
		if remaining < 0 {
			remaining = 0
		}
		return Patch{
			Set(ChanHurtTime, remaining),
			Bool(ChanHurt, true),
		}
	},
	Teardown: func() Patch {
		return Patch{Set(ChanHurtTime, 0), Bool(ChanHurt, false)}
	},
}

// OverlaySwing runs an arm swing: swing_progress ramps 0..1 over
// SwingDuration ticks and retriggering snaps it back to 0.
var OverlaySwing = &Overlay{
	ID:       "swing",
	Duration: SwingDuration,
	Update: func(s State, phase, dt float64) Patch {
		progress := phase / SwingDuration
		if progress > 1 {
			progress = 1
		}
		return Patch{Set(ChanSwingProgress, progress)}
	},
	Teardown: func() Patch {
		return Patch{Set(ChanSwingProgress, 0)}
	},
}

// Overlays lists the built-in overlays by id.
var Overlays = map[string]*Overlay{
	OverlayHurt.ID:  OverlayHurt,
	OverlaySwing.ID: OverlaySwing,
}
