package battle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint computes a deterministic digest of the rules-relevant battle
// state. Two states with equal fingerprints are interchangeable for replay
// purposes: same zones, same pending work, same generator position. The
// battle id, trace buffer, animation steps and undo history are excluded
// because they do not influence future rules outcomes.
func Fingerprint(state *BattleState) string {
	hash := sha256.Sum256([]byte(canonicalState(state)))
	return hex.EncodeToString(hash[:])
}

// canonicalState renders the state as canonical text, map iteration order
// factored out by sorting.
func canonicalState(state *BattleState) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "TURN:%d|%s|%t\n", state.Turn.ID, state.Turn.ActivePlayer, state.Turn.Ended)
	fmt.Fprintf(&buf, "STATUS:%t|%s\n", state.Status.GameOver, state.Status.Winner)

	for _, name := range []PlayerName{PlayerOne, PlayerTwo} {
		p := state.Player(name)
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%d|%d|%d|%t\n",
			name, p.Name, p.Energy, p.ProducedEnergy, p.Points, p.DrawExceededHandSize)
		for _, def := range p.Deck {
			fmt.Fprintf(&buf, "  DECKDEF:%s\n", def.Name)
		}
	}

	// AllCards exposes the live store slice; sort a copy so fingerprinting
	// never reorders it.
	cards := append([]*CardState(nil), state.Cards.AllCards()...)
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	for _, card := range cards {
		fmt.Fprintf(&buf, "CARD:%d|%s|%s|%s|%d|%t\n",
			card.ID, card.Created.Definition.Name, card.Owner, card.Zone,
			card.Object, card.RevealedToOpponent)
		if card.Zone == ZoneBattlefield {
			if cs := state.Cards.CharacterState(card.Owner, CharacterID(card.ID)); cs != nil {
				fmt.Fprintf(&buf, "  SPARK:%d\n", cs.Spark)
			}
		}
	}

	for _, name := range []PlayerName{PlayerOne, PlayerTwo} {
		known := state.Cards.TopOfDeckKnown(name)
		ids := make([]string, len(known))
		for i, id := range known {
			ids[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&buf, "TOPDECK:%s|%s\n", name, strings.Join(ids, ","))
	}

	// Stack order is resolution order, never sorted.
	buf.WriteString("STACK:\n")
	for i, item := range state.Cards.StackCards() {
		fmt.Fprintf(&buf, "  %d:%d|%s|%t|%t|%d|%s\n",
			i, item.Card, item.Controller, item.Negated, item.FromVoid,
			item.AdditionalEnergyPaid, targetsText(item.Targets))
	}

	buf.WriteString("PROMPTS:\n")
	for i, prompt := range state.Prompts {
		fmt.Fprintf(&buf, "  %d:%s|%s|%s|%s|%s|%s|%d\n",
			i, prompt.Kind, prompt.Player,
			prompt.ValidCharacters, prompt.ValidStackCards,
			prompt.ValidVoidCards, prompt.Current,
			prompt.MaximumSelection)
	}

	buf.WriteString("PENDING:\n")
	for i, effect := range state.Pending {
		fmt.Fprintf(&buf, "  %d:%+v|%d|%s\n",
			i, effect.Effect, effect.NextIndex, targetsText(effect.Targets))
	}

	buf.WriteString("GRANTED:\n")
	for i, granted := range state.Granted {
		fmt.Fprintf(&buf, "  %d:%d|%d\n", i, granted.Source, granted.Number)
	}

	keys := make([]AbilityKey, 0, len(state.AbilityCounters))
	for key := range state.AbilityCounters {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Card != keys[j].Card {
			return keys[i].Card < keys[j].Card
		}
		return keys[i].Number < keys[j].Number
	})
	for _, key := range keys {
		fmt.Fprintf(&buf, "COUNTER:%d|%d=%d\n", key.Card, key.Number, state.AbilityCounters[key])
	}

	fmt.Fprintf(&buf, "RNG:%x\n", state.RNG.State())

	return buf.String()
}

func targetsText(t *EffectTargets) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%d|%d|%d|%s", t.Kind, t.Character, t.StackCard, t.VoidCards)
}

