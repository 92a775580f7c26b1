package mutations

import (
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// HandLimitEnergyGrant is the energy given in place of a draw when the hand
// is full.
const HandLimitEnergyGrant = 1

// Draw moves one card from the player's deck to their hand and returns its
// hand-zone identifier. When the hand is at its limit, the draw is replaced
// by a fixed energy grant and the player's limit flag is set for the rest of
// the turn; no card moves and the second return is false. An empty deck is
// recycled from the registered deck list first.
func Draw(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName) (battle.HandCardID, bool) {
	return drawOne(state, source, player, true)
}

// DrawCards draws count cards in sequence. One pre-draw snapshot is
// amortized across the whole batch rather than one snapshot per card.
func DrawCards(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName, count int) []battle.HandCardID {
	if count <= 0 {
		return nil
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationDrawCards,
		Player: player,
		Source: source,
		Amount: count,
	})
	var drawn []battle.HandCardID
	for i := 0; i < count; i++ {
		if id, ok := drawOne(state, source, player, false); ok {
			drawn = append(drawn, id)
		}
	}
	return drawn
}

func drawOne(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName, record bool) (battle.HandCardID, bool) {
	p := state.Player(player)
	if state.Cards.Hand(player).Len() >= battle.MaximumHandSize {
		if record {
			animate(state, battle.Animation{
				Kind:   battle.AnimationHandLimitExceeded,
				Player: player,
				Source: source,
				Amount: HandLimitEnergyGrant,
			})
		}
		p.Energy += HandLimitEnergyGrant
		p.DrawExceededHandSize = true
		state.Tracef("draw replaced by energy grant at hand limit",
			trace.F("player", player))
		return 0, false
	}

	id := nextDeckCard(state, source, player)
	if record {
		animate(state, battle.Animation{
			Kind:   battle.AnimationDrawCards,
			Player: player,
			Source: source,
			Cards:  []battle.CardID{id.CardID()},
			Amount: 1,
		})
	}
	MoveCard(state, source, id.CardID(), battle.ZoneHand)
	return battle.HandCardID(id), true
}

// nextDeckCard picks the card the next draw takes: the known top of the deck
// if one exists, otherwise a uniformly random card from the shuffled
// portion. An empty deck is recycled first; a deck that is still empty after
// recycling means deck registration was empty, which callers must prevent.
func nextDeckCard(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName) battle.DeckCardID {
	if state.Cards.DeckSize(player) == 0 {
		AddDeckCopy(state, source, player)
		state.Triggers.Push(battle.Trigger{
			Name:   battle.TriggerDrewAllCardsInCopy,
			Card:   -1,
			Player: player,
			Source: source,
		})
	}
	if id, ok := state.Cards.TakeKnownTopOfDeck(player); ok {
		return id
	}
	shuffled := state.Cards.DeckShuffled(player)
	if shuffled.IsEmpty() {
		battle.Failf("no card to draw for %v after deck recycle", player)
	}
	id, _ := shuffled.At(state.RNG.IntN(shuffled.Len()))
	return id
}

// AddDeckCopy instantiates a fresh set of cards from the player's registered
// deck list and appends them to the deck zone, resolving each card's play
// restriction from the ability cache.
func AddDeckCopy(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName) {
	deck := state.Player(player).Deck
	if len(deck) == 0 {
		battle.Failf("deck copy requested for %v with empty registration", player)
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationShuffleNewDeckCopy,
		Player: player,
		Source: source,
		Amount: len(deck),
	})
	for _, def := range deck {
		list, ok := state.Abilities.Lookup(def.Name)
		if !ok {
			battle.Failf("definition %q missing from ability cache", def.Name)
		}
		created := battle.CreatedCard{
			Definition:  def,
			Cost:        def.Cost,
			Spark:       def.Spark,
			Type:        def.Type,
			Fast:        def.Fast,
			Restriction: list.Restriction,
		}
		state.Cards.CreateCard(player, battle.ZoneDeck, created)
	}
	state.Tracef("added deck copy",
		trace.F("player", player),
		trace.F("cards", len(deck)))
}

// RealizeTopOfDeck guarantees at least count known cards sit at the top of
// the player's deck, pulling random cards upward as needed and recycling the
// deck if it runs out. Already-known top cards are left in place.
func RealizeTopOfDeck(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName, count int) []battle.DeckCardID {
	for len(state.Cards.TopOfDeckKnown(player)) < count {
		// Reveals draw from the shuffled portion, which can run dry while
		// known cards remain on top.
		if state.Cards.DeckShuffled(player).IsEmpty() {
			AddDeckCopy(state, source, player)
			state.Triggers.Push(battle.Trigger{
				Name:   battle.TriggerDrewAllCardsInCopy,
				Card:   -1,
				Player: player,
				Source: source,
			})
		}
		shuffled := state.Cards.DeckShuffled(player)
		if shuffled.IsEmpty() {
			battle.Failf("no card to reveal for %v after deck recycle", player)
		}
		id, _ := shuffled.At(state.RNG.IntN(shuffled.Len()))
		state.Cards.RevealTopOfDeck(player, id)
	}
	known := state.Cards.TopOfDeckKnown(player)
	return append([]battle.DeckCardID(nil), known[:count]...)
}
