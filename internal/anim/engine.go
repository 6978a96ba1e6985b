package anim

import "math"

// Preset is a reusable animation definition. Setup (optional) produces a
// one-time initialization patch when the preset is selected; Update runs
// every simulated tick. Both are pure: all timing state lives in the engine.
type Preset struct {
	ID   string
	Name string
	// Duration in ticks. 0 means unbounded; for looping presets it is the
	// cycle length the phase wraps over.
	Duration float64
	Loop     bool
	Setup    func() Patch
	// Update receives the current state, the preset-local phase (elapsed
	// ticks, wrapped for looping presets, clamped at Duration otherwise)
	// and the tick delta.
	Update func(s State, phase, dt float64) Patch
}

// Overlay is a temporary trigger animation that runs concurrently on top of
// whichever preset is active. Overlays with phase past Duration are dropped;
// Teardown (optional) runs once at that point to restore the channels the
// overlay was driving.
type Overlay struct {
	ID       string
	Duration float64
	Update   func(s State, phase, dt float64) Patch
	Teardown func() Patch
}

// Engine owns one entity's animation timing: the active preset, its elapsed
// phase, and the local phase of every live overlay. The state record itself
// is passed through Evaluate by value and never retained.
type Engine struct {
	preset  *Preset
	elapsed float64

	overlayOrder []string
	overlays     map[string]*overlayRun
}

type overlayRun struct {
	def   *Overlay
	phase float64
}

// NewEngine creates an engine with no preset and no overlays.
func NewEngine() *Engine {
	return &Engine{overlays: map[string]*overlayRun{}}
}

// SetPreset activates a preset, resets its phase and applies its setup
// patch. A nil preset clears the slot.
func (e *Engine) SetPreset(p *Preset, s State) State {
	e.preset = p
	e.elapsed = 0
	if p != nil && p.Setup != nil {
		return s.Apply(p.Setup())
	}
	return s
}

// Preset returns the active preset, nil when none.
func (e *Engine) Preset() *Preset { return e.preset }

// Trigger starts an overlay. Retriggering a live overlay resets its local
// phase to zero; it neither stacks a second copy nor ignores the call.
func (e *Engine) Trigger(o *Overlay) {
	if o == nil {
		return
	}
	if run, ok := e.overlays[o.ID]; ok {
		run.phase = 0
		run.def = o
		return
	}
	e.overlays[o.ID] = &overlayRun{def: o}
	e.overlayOrder = append(e.overlayOrder, o.ID)
}

// ActiveOverlays returns the ids of overlays still running, in trigger
// order.
func (e *Engine) ActiveOverlays() []string {
	out := make([]string, 0, len(e.overlayOrder))
	for _, id := range e.overlayOrder {
		if _, ok := e.overlays[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Evaluate advances the engine by dt ticks and returns the new state: the
// preset's patch is applied first, then each live overlay's in trigger
// order (later writes win per channel). Finished overlays are dropped after
// their final tick.
func (e *Engine) Evaluate(s State, dt float64) State {
	out := s.Apply(Patch{Set(ChanAge, s.Get(ChanAge) + dt)})

	if p := e.preset; p != nil && p.Update != nil {
		e.elapsed += dt
		phase := e.elapsed
		if p.Duration > 0 {
			if p.Loop {
				phase = wrap(phase, p.Duration)
			} else if phase > p.Duration {
				// Non-looping presets clamp, no matter how large dt was.
				phase = p.Duration
			}
		}
		out = out.Apply(p.Update(out, phase, dt))
	}

	kept := e.overlayOrder[:0]
	for _, id := range e.overlayOrder {
		run, ok := e.overlays[id]
		if !ok {
			continue
		}
		out = out.Apply(run.def.Update(out, run.phase, dt))
		run.phase += dt
		if run.def.Duration > 0 && run.phase >= run.def.Duration {
			if run.def.Teardown != nil {
				out = out.Apply(run.def.Teardown())
			}
			delete(e.overlays, id)
			continue
		}
		kept = append(kept, id)
	}
	e.overlayOrder = kept

	return out
}

// wrap reduces phase modulo cycle, tolerating phases many cycles ahead.
func wrap(phase, cycle float64) float64 {
	m := math.Mod(phase, cycle)
	if m < 0 {
		m += cycle
	}
	return m
}
