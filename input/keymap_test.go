package input

import (
	"strings"
	"testing"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	for r, want := range map[rune]IntentType{'q': IntentQuit, 'R': IntentReset, ' ': IntentPause, 'x': IntentNone} {
		if got := km.Lookup(r); got != want {
			t.Errorf("Lookup(%q) = %s, want %s", r, got, want)
		}
	}
}

func TestLoadKeyMap_Override(t *testing.T) {
	km, err := LoadKeyMap([]byte(`
reset = ["x"]
pause = ["p", "space"]
`))
	if err != nil {
		t.Fatalf("LoadKeyMap: %v", err)
	}

	if km.Lookup('x') != IntentReset {
		t.Error("x should reset")
	}
	if km.Lookup('r') != IntentNone {
		t.Error("overridden default r should be unbound")
	}
	if km.Lookup('p') != IntentPause || km.Lookup(' ') != IntentPause {
		t.Error("p and space should pause")
	}
	if km.Lookup('q') != IntentQuit {
		t.Error("untouched quit keeps defaults")
	}
}

func TestLoadKeyMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown action", `jump = ["j"]`, "keymap parse"},
		{"multi char", `quit = ["ab"]`, "invalid key"},
		{"conflict", `quit = ["r"]`, "already bound"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyMap([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestAim_CustomKeyMap(t *testing.T) {
	km, err := LoadKeyMap([]byte(`quit = ["x"]`))
	if err != nil {
		t.Fatal(err)
	}
	h, _, _ := newTestHandler()
	h.SetKeyMap(km)

	if got := h.Handle(keyRune('x')); got != IntentQuit {
		t.Errorf("x: got %s", got)
	}
	if got := h.Handle(keyRune('q')); got != IntentNone {
		t.Errorf("q after rebind: got %s", got)
	}
}
