package anim

import (
	"testing"
)

func TestPatch_LastWriteWins(t *testing.T) {
	var s State
	out := s.Apply(Patch{
		Set(ChanHealth, 20),
		Set(ChanHealth, 5),
		Bool(ChanAggressive, true),
	})
	if out.Get(ChanHealth) != 5 {
		t.Errorf("health = %v, want 5 (last write)", out.Get(ChanHealth))
	}
	if !out.Bool(ChanAggressive) {
		t.Error("aggressive flag lost")
	}
	if s.Get(ChanHealth) != 0 {
		t.Error("Apply mutated its receiver")
	}
}

func TestSetPreset_AppliesSetup(t *testing.T) {
	e := NewEngine()
	var s State
	s = e.SetPreset(PresetWalk, s)
	if s.Get(ChanLimbSpeed) != 1 {
		t.Errorf("limb_speed = %v after walk setup", s.Get(ChanLimbSpeed))
	}
	if !s.Bool(ChanOnGround) {
		t.Error("on_ground not set by walk setup")
	}
}

func TestLoopingPreset_PhaseWraps(t *testing.T) {
	e := NewEngine()
	var s State
	s = e.SetPreset(PresetWalk, s)

	// Advance by more than one full cycle in uneven steps.
	total := 0.0
	for _, dt := range []float64{5, 7, 9, 11, 3} {
		s = e.Evaluate(s, dt)
		total += dt
	}
	wantPhase := total
	for wantPhase >= WalkCycle {
		wantPhase -= WalkCycle
	}
	if got := s.Get(ChanTime); got != wantPhase {
		t.Errorf("phase = %v, want %v (wrapped)", got, wantPhase)
	}
}

func TestNonLoopingPreset_ClampsTerminalChannel(t *testing.T) {
	e := NewEngine()
	var s State
	s = e.SetPreset(PresetDeath, s)

	if s.Get(ChanHealth) != 0 {
		t.Error("death setup should zero health")
	}

	// Ordinary ticks approach the maximum...
	for i := 0; i < 15; i++ {
		s = e.Evaluate(s, 1)
	}
	if got := s.Get(ChanDeathTime); got != 15 {
		t.Errorf("death_time = %v after 15 ticks", got)
	}

	// ...and arbitrarily many ticks, including absurd dt, never exceed it.
	for _, dt := range []float64{1, 100, 1e9, 0.25} {
		for i := 0; i < 10; i++ {
			s = e.Evaluate(s, dt)
			if got := s.Get(ChanDeathTime); got > DeathDuration {
				t.Fatalf("death_time = %v exceeds documented max %v (dt=%v)", got, DeathDuration, dt)
			}
		}
	}
	if got := s.Get(ChanDeathTime); got != DeathDuration {
		t.Errorf("death_time = %v, want clamped %v", got, DeathDuration)
	}
}

func TestOverlay_RunsOnTopOfPreset(t *testing.T) {
	e := NewEngine()
	var s State
	s = e.SetPreset(PresetWalk, s)
	e.Trigger(OverlayHurt)

	s = e.Evaluate(s, 1)

	// Preset channels and overlay channels both advanced this tick.
	if s.Get(ChanLimbSwing) == 0 {
		t.Error("preset did not run under the overlay")
	}
	if !s.Bool(ChanHurt) || s.Get(ChanHurtTime) != HurtDuration {
		t.Errorf("hurt overlay: is_hurt=%v hurt_time=%v", s.Bool(ChanHurt), s.Get(ChanHurtTime))
	}
}

func TestOverlay_RetriggerResetsPhase(t *testing.T) {
	e := NewEngine()
	var s State
	e.Trigger(OverlaySwing)

	s = e.Evaluate(s, 3) // phase 0 -> progress 0
	s = e.Evaluate(s, 0) // phase 3 -> progress 0.5
	if got := s.Get(ChanSwingProgress); got != 0.5 {
		t.Fatalf("swing progress = %v, want 0.5", got)
	}

	// Retrigger mid-swing: phase snaps back to zero, not stacked, not ignored.
	e.Trigger(OverlaySwing)
	s = e.Evaluate(s, 0)
	if got := s.Get(ChanSwingProgress); got != 0 {
		t.Errorf("swing progress after retrigger = %v, want 0", got)
	}
	if n := len(e.ActiveOverlays()); n != 1 {
		t.Errorf("active overlays = %d, want 1 (no stacking)", n)
	}
}

func TestOverlay_ExpiresAndTearsDown(t *testing.T) {
	e := NewEngine()
	var s State
	e.Trigger(OverlayHurt)

	for i := 0; i < int(HurtDuration)+1; i++ {
		s = e.Evaluate(s, 1)
	}

	if len(e.ActiveOverlays()) != 0 {
		t.Error("overlay still active past its duration")
	}
	if s.Bool(ChanHurt) || s.Get(ChanHurtTime) != 0 {
		t.Errorf("teardown missed: is_hurt=%v hurt_time=%v", s.Bool(ChanHurt), s.Get(ChanHurtTime))
	}
}

func TestEvaluate_AgeAlwaysAdvances(t *testing.T) {
	e := NewEngine() // no preset at all
	var s State
	s = e.Evaluate(s, 2.5)
	s = e.Evaluate(s, 0.5)
	if got := s.Get(ChanAge); got != 3 {
		t.Errorf("age = %v, want 3", got)
	}
}

func TestChannelNames(t *testing.T) {
	if ChanLimbSwing.String() != "limb_swing" || ChanAggressive.String() != "is_aggressive" {
		t.Errorf("channel names wrong: %s, %s", ChanLimbSwing, ChanAggressive)
	}
	if Channel(99).String() != "unknown" {
		t.Error("out-of-range channel should print unknown")
	}
}
