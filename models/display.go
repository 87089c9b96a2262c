package models

// DisplayState is one of the fixed on-screen states a kiosk can present.
type DisplayState string

const (
	StateOpen        DisplayState = "open"
	StateClosed      DisplayState = "closed"
	StateMeeting     DisplayState = "meeting"
	StateBRB         DisplayState = "brb"
	StateLunch       DisplayState = "lunch"
	StateUnavailable DisplayState = "unavailable"
)

// DisplayStates lists every recognized display state.
var DisplayStates = []DisplayState{
	StateOpen, StateClosed, StateMeeting, StateBRB, StateLunch, StateUnavailable,
}

// Valid reports whether s is one of the fixed display states.
func (s DisplayState) Valid() bool {
	for _, known := range DisplayStates {
		if s == known {
			return true
		}
	}
	return false
}
