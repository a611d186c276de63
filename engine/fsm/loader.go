package fsm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// RootConfig represents the top-level config structure
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `toml:"parent,omitempty"`
	OnEnter     []string           `toml:"on_enter,omitempty"`
	OnExit      []string           `toml:"on_exit,omitempty"`
	Transitions []TransitionConfig `toml:"transitions,omitempty"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger string `toml:"trigger"`         // Registered event name
	Target  string `toml:"target"`          // Target state name
	Guard   string `toml:"guard,omitempty"` // Guard function name
}

// LoadConfig parses a TOML byte slice and populates the Machine
// Validates all references (states, guards, actions, events); unknown keys are rejected
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	// 1. Decode TOML into intermediate config
	var config RootConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	if config.States == nil {
		config.States = make(map[string]*StateConfig)
	}

	// 2. Clear existing graph
	m.nodes = make(map[StateID]*Node[T])
	m.names = make(map[string]StateID)
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	// 3. First Pass: Root node and IDs
	m.AddState(StateRoot, RootName, StateNone)
	nameToID := map[string]StateID{RootName: StateRoot}

	if _, ok := config.States[RootName]; !ok {
		config.States[RootName] = &StateConfig{}
	}

	// Sort keys for deterministic ID generation
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != RootName {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	nextID := StateRoot + 1
	for _, name := range stateNames {
		nameToID[name] = nextID
		nextID++
	}

	// 4. Second Pass: Build nodes and resolve parents
	for _, name := range stateNames {
		cfg := config.States[name]
		pName := RootName
		if cfg != nil && cfg.Parent != "" {
			pName = cfg.Parent
		}
		parentID, ok := nameToID[pName]
		if !ok {
			return fmt.Errorf("state '%s' references unknown parent '%s'", name, pName)
		}
		m.AddState(nameToID[name], name, parentID)
	}

	// 5. Third Pass: Actions and transitions, Root included
	for name, cfg := range config.States {
		if cfg == nil {
			continue
		}
		if name == RootName && cfg.Parent != "" {
			return fmt.Errorf("state '%s' cannot have a parent", RootName)
		}
		node := m.nodes[nameToID[name]]

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	// 6. Finalize: Compile Paths for LCA
	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok || initialID == StateRoot {
		return fmt.Errorf("initial state '%s' is not a declared state", config.InitialState)
	}
	m.InitialStateID = initialID

	return nil
}

func (m *Machine[T]) compileActions(names []string) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(names))
	for _, name := range names {
		fn, ok := m.actionReg[name]
		if !ok {
			return nil, fmt.Errorf("unknown action '%s'", name)
		}
		actions = append(actions, Action[T]{Name: name, Func: fn})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, tc := range configs {
		if !m.eventReg[tc.Trigger] {
			return fmt.Errorf("unknown trigger '%s'", tc.Trigger)
		}
		targetID, ok := nameToID[tc.Target]
		if !ok || targetID == StateRoot {
			return fmt.Errorf("unknown target '%s'", tc.Target)
		}

		trans := Transition[T]{TargetID: targetID, Event: tc.Trigger}
		if tc.Guard != "" {
			guard, ok := m.guardReg[tc.Guard]
			if !ok {
				return fmt.Errorf("unknown guard '%s'", tc.Guard)
			}
			trans.Guard = guard
		}
		node.Transitions = append(node.Transitions, trans)
	}
	return nil
}
