package input

// IntentType discriminates what an event did
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentResize // Terminal resize event

	// Session control
	IntentReset // r, or double click inside the start zone
	IntentPause // Space toggled pause/resume

	// Aiming
	IntentAimStart  // Button press inside the start zone while armed
	IntentAimMove   // Drag with the button held
	IntentAimCancel // Esc during an aim
	IntentLaunch    // Release accepted by the target
	IntentRejected  // Release refused by the target, see AimHandler.Err
)

var intentNames = [...]string{
	IntentNone:      "none",
	IntentQuit:      "quit",
	IntentResize:    "resize",
	IntentReset:     "reset",
	IntentPause:     "pause",
	IntentAimStart:  "aim-start",
	IntentAimMove:   "aim-move",
	IntentAimCancel: "aim-cancel",
	IntentLaunch:    "launch",
	IntentRejected:  "rejected",
}

func (i IntentType) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
