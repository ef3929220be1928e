package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionP1Up) {
		t.Fatal("zero frame should have no actions")
	}

	f.Set(ActionP1Up)
	f.Set(ActionP2Down)
	if !f.Has(ActionP1Up) || !f.Has(ActionP2Down) {
		t.Error("expected actions to be set")
	}
	if f.Has(ActionP1Down) {
		t.Error("unexpected action")
	}
}

func TestActionString(t *testing.T) {
	if ActionP2Up.String() != "P2Up" {
		t.Errorf("got %q", ActionP2Up.String())
	}
	if (ActionP2Down + 1).String() != "Unknown" {
		t.Errorf("paddle actions should be the only named actions, got %q", (ActionP2Down + 1).String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("got %q", Action(99).String())
	}
}
