package decks

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voidbound/battle-server-go/internal/battle"
)

// DeckFile is the top-level YAML structure of a deck list file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a single named deck.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is a card and its copy count within a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ParseDeckFile parses a YAML deck file into deck name to definition list.
func ParseDeckFile(path string) (map[string][]*battle.CardDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	out := make(map[string][]*battle.CardDefinition, len(df.Decks))
	for _, deck := range df.Decks {
		var cards []*battle.CardDefinition
		for _, entry := range deck.Cards {
			def, err := Lookup(entry.Name)
			if err != nil {
				return nil, fmt.Errorf("deck %q: %w", deck.Name, err)
			}
			for i := 0; i < entry.Count; i++ {
				cards = append(cards, def)
			}
		}
		if len(cards) == 0 {
			return nil, fmt.Errorf("deck %q is empty", deck.Name)
		}
		out[deck.Name] = cards
	}
	return out, nil
}

// DeckByName loads one named deck from a deck file. An empty name falls back
// to the built-in default deck; so does an empty path.
func DeckByName(path, name string) ([]*battle.CardDefinition, error) {
	if path == "" || name == "" {
		return DefaultDeck(), nil
	}
	all, err := ParseDeckFile(path)
	if err != nil {
		return nil, err
	}
	deck, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("deck %q not found in %s", name, path)
	}
	return deck, nil
}
