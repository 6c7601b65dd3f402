package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move the cursor up
	ActionDown           // S, Down arrow - move the cursor down
	ActionLeft           // A, Left arrow - move the cursor left
	ActionRight          // D, Right arrow - move the cursor right
	ActionSelect         // Space, Enter - click at the cursor
	ActionNext           // Tab - jump to the next selectable target
	ActionPrev           // Shift+Tab - jump to the previous selectable target
	ActionRestart        // R key - start a new round
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionHelp           // ? - toggle extended help
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
	case ActionSelect:
		return "Select"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// InputFrame is the input collected between two steps.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Click is the screen cell of a pointer press, if one happened.
	Click *Point
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

// SetClick records a pointer press at cell (x, y). A later press replaces an earlier one.
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Point{X: x, Y: y}
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	return f.Click == nil && len(f.Actions) == 0
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Click != nil {
		p := *f.Click
		clone.Click = &p
	}
	return clone
}
