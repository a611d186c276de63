package input

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Rune aliases for keys that can't be bare single-char TOML strings
var runeAliases = map[string]rune{
	"space": ' ',
	"tab":   '\t',
}

// KeyMap binds runes to session intents
type KeyMap struct {
	bindings map[rune]IntentType
}

// keyMapConfig is the TOML form: each action lists its keys
type keyMapConfig struct {
	Quit  []string `toml:"quit"`
	Reset []string `toml:"reset"`
	Pause []string `toml:"pause"`
}

// DefaultKeyMap returns the stock bindings: q quit, r reset, space pause
func DefaultKeyMap() *KeyMap {
	return &KeyMap{bindings: map[rune]IntentType{
		'q': IntentQuit,
		'Q': IntentQuit,
		'r': IntentReset,
		'R': IntentReset,
		' ': IntentPause,
	}}
}

// LoadKeyMap parses TOML bindings over the defaults
// An action present in the data replaces all of its default keys
func LoadKeyMap(data []byte) (*KeyMap, error) {
	var cfg keyMapConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	km := DefaultKeyMap()
	sections := []struct {
		name   string
		keys   []string
		intent IntentType
	}{
		{"quit", cfg.Quit, IntentQuit},
		{"reset", cfg.Reset, IntentReset},
		{"pause", cfg.Pause, IntentPause},
	}

	for _, s := range sections {
		if s.keys == nil {
			continue
		}
		for r, intent := range km.bindings {
			if intent == s.intent {
				delete(km.bindings, r)
			}
		}
	}

	for _, s := range sections {
		for _, key := range s.keys {
			r, err := parseKey(key)
			if err != nil {
				return nil, fmt.Errorf("keymap %s: %w", s.name, err)
			}
			if prev, ok := km.bindings[r]; ok && prev != s.intent {
				return nil, fmt.Errorf("keymap %s: key %q already bound to %s", s.name, key, prev)
			}
			km.bindings[r] = s.intent
		}
	}
	return km, nil
}

// Lookup returns the intent bound to r
func (km *KeyMap) Lookup(r rune) IntentType {
	return km.bindings[r]
}

func parseKey(key string) (rune, error) {
	if r, ok := runeAliases[key]; ok {
		return r, nil
	}
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return 0, fmt.Errorf("invalid key %q: expected one character or an alias", key)
	}
	return r, nil
}
