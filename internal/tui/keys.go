package tui

import "github.com/eugenenazirov/package-shark/internal/quantity"

const (
	keyFetch = "enter"
	keyQuit  = "ctrl+c"
	keyEsc   = "esc"
)

// controlKeys binds each adjustment control label to its key.
var controlKeys = map[string]string{
	"-1000": "pgdown",
	"-100":  "down",
	"Reset": "ctrl+r",
	"+100":  "up",
	"+1000": "pgup",
}

type binding struct {
	key     string
	control quantity.Control
}

// bindings returns the adjustment controls in display order with their keys.
func bindings() []binding {
	controls := quantity.Controls()
	out := make([]binding, 0, len(controls))
	for _, c := range controls {
		out = append(out, binding{key: controlKeys[c.Label], control: c})
	}
	return out
}
