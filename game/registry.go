package game

import (
	"fmt"
	"sort"
)

var registry = map[string]func() Game{
	"tic-tac-toe": func() Game { return TicTacToe{} },
	"nim":         func() Game { return Nim{Stones: DefaultNimStones} },
}

// Load returns the game registered under name.
func Load(name string) (Game, error) {
	newGame, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown game %q (known: %v)", name, Names())
	}
	return newGame(), nil
}

// Names lists the registered games in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
