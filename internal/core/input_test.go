package core

import "testing"

func TestInputFrameDirectionPriority(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		expected Direction
	}{
		{"none", nil, DirNone},
		{"left only", []Action{ActionLeft}, DirLeft},
		{"vertical overrides horizontal", []Action{ActionLeft, ActionUp}, DirUp},
		{"down overrides right", []Action{ActionRight, ActionDown}, DirDown},
		{"opposing verticals fall back to horizontal", []Action{ActionUp, ActionDown, ActionRight}, DirRight},
		{"all opposing", []Action{ActionUp, ActionDown, ActionLeft, ActionRight}, DirNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := FrameOf(tc.actions...)
			if got := f.Direction(); got != tc.expected {
				t.Errorf("Direction() = %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestInputFrameSteerValue(t *testing.T) {
	f := FrameOf(ActionSteerLeft)
	if f.SteerValue() != 1 {
		t.Errorf("Expected steer 1 for left, got %f", f.SteerValue())
	}

	f = FrameOf(ActionSteerLeft, ActionSteerRight)
	if f.SteerValue() != 0 {
		t.Errorf("Expected opposing steer to cancel, got %f", f.SteerValue())
	}

	f = FrameOf(ActionSteerLeft)
	f.Steer = -3
	if f.SteerValue() != -1 {
		t.Errorf("Expected analog steer to win and clamp to -1, got %f", f.SteerValue())
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := FrameOf(ActionAttack)
	f.Steer = 0.5
	clone := f.Clone()
	f.Clear()

	if !clone.Has(ActionAttack) || clone.Steer != 0.5 {
		t.Error("Clone should not be affected by clearing the original")
	}
	if f.Has(ActionAttack) || f.Steer != 0 {
		t.Error("Clear should reset actions and steer")
	}
}

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"accelerate":  ActionAccelerate,
		"SteerLeft":   ActionSteerLeft,
		"steer-right": ActionSteerRight,
		"use_item":    ActionUseItem,
		"QUIT":        ActionQuit,
	}
	for name, want := range tests {
		got, ok := ParseAction(name)
		if !ok || got != want {
			t.Errorf("ParseAction(%q) = %v, %v; expected %v", name, got, ok, want)
		}
	}
	for _, name := range []string{"", "none", "jump"} {
		if _, ok := ParseAction(name); ok {
			t.Errorf("ParseAction(%q) should fail", name)
		}
	}
}

func TestCountdown(t *testing.T) {
	var c Countdown
	if c.Tick(16) {
		t.Error("idle countdown should not report expiry")
	}

	c.Set(500)
	if !c.Active() {
		t.Fatal("countdown should be active after Set")
	}
	if c.Tick(200) {
		t.Error("countdown expired too early")
	}
	if c.Remaining() != 300 {
		t.Errorf("Expected 300ms remaining, got %f", c.Remaining())
	}
	if !c.Tick(400) {
		t.Error("countdown should report expiry on the crossing tick")
	}
	if c.Active() || c.Remaining() != 0 {
		t.Error("expired countdown should be inactive at zero")
	}
	if c.Tick(16) {
		t.Error("expiry should be reported only once")
	}
}

func TestChanceBounds(t *testing.T) {
	rng := NewRNG(1)
	for range 100 {
		if Chance(rng, 0) {
			t.Fatal("Chance(0) must never succeed")
		}
		if !Chance(rng, 1) {
			t.Fatal("Chance(1) must always succeed")
		}
	}
}
