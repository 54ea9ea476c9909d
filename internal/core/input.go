package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, K, W - cursor one floor up
	ActionDown           // Down arrow, J, S - cursor one floor down
	ActionLeft           // Left arrow, H, A - rotate the selection left
	ActionRight          // Right arrow, L, D - rotate the selection right
	ActionSlot1          // 1 - select the first tile
	ActionSlot2          // 2 - select the second tile
	ActionSlot3          // 3 - select the third tile
	ActionConfirm        // Enter, Space - place the selected tile
	ActionBack           // Escape - drop the selection
	ActionRestart        // R - new game after game over
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSlot1:
		return "Slot1"
	case ActionSlot2:
		return "Slot2"
	case ActionSlot3:
		return "Slot3"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// SlotIndex returns the hand index selected by a slot action.
func (a Action) SlotIndex() (int, bool) {
	switch a {
	case ActionSlot1:
		return 0, true
	case ActionSlot2:
		return 1, true
	case ActionSlot3:
		return 2, true
	default:
		return 0, false
	}
}

// InputFrame holds the actions triggered since the previous frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
