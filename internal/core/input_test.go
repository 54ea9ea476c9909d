package core

import "testing"

func TestSlotIndex(t *testing.T) {
	tests := []struct {
		action Action
		index  int
		ok     bool
	}{
		{ActionSlot1, 0, true},
		{ActionSlot2, 1, true},
		{ActionSlot3, 2, true},
		{ActionConfirm, 0, false},
	}

	for _, tc := range tests {
		idx, ok := tc.action.SlotIndex()
		if idx != tc.index || ok != tc.ok {
			t.Errorf("%s.SlotIndex() = (%d, %v), expected (%d, %v)", tc.action, idx, ok, tc.index, tc.ok)
		}
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionUp) {
		t.Fatal("Zero frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionSlot2)
	if !f.Has(ActionUp) || !f.Has(ActionSlot2) {
		t.Error("Set actions should be reported")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should drop every action")
	}
}
