// Package queries contains pure read-only views over battle state. Nothing
// in this package mutates the battle; both the UI layer and automated
// players consult it before submitting actions.
package queries

import (
	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
)

// AbilityList returns the cached ability list for a card. Unknown cards or
// definitions missing from the cache indicate corrupted bookkeeping.
func AbilityList(state *battle.BattleState, id battle.CardID) *battle.AbilityList {
	card := state.Cards.Card(id)
	if card == nil {
		battle.Failf("ability list requested for unknown card %v", id)
	}
	list, ok := state.Abilities.Lookup(card.Created.Definition.Name)
	if !ok {
		battle.Failf("definition %q missing from ability cache", card.Created.Definition.Name)
	}
	return list
}

// EnergyCost returns a card's printed play cost.
func EnergyCost(state *battle.BattleState, id battle.CardID) battle.Energy {
	return state.Cards.Card(id).Created.Cost
}

// IsFast reports whether a card carries the fast tag.
func IsFast(state *battle.BattleState, id battle.CardID) bool {
	return state.Cards.Card(id).Created.Fast
}

// SparkOf returns a battlefield character's current spark, falling back to
// its base spark when no character state has been installed yet.
func SparkOf(state *battle.BattleState, player battle.PlayerName, id battle.CharacterID) battle.Spark {
	if cs := state.Cards.CharacterState(player, id); cs != nil {
		return cs.Spark
	}
	return state.Cards.Card(id.CardID()).Created.Spark
}

// MatchesPredicate reports whether a card satisfies a targeting predicate
// evaluated from the given controller's perspective.
func MatchesPredicate(state *battle.BattleState, controller battle.PlayerName, pred ability.Predicate, id battle.CardID) bool {
	card := state.Cards.Card(id)
	if card == nil {
		return false
	}
	switch pred.Owner {
	case ability.OwnerEnemy:
		if card.Owner == controller {
			return false
		}
	case ability.OwnerYour:
		if card.Owner != controller {
			return false
		}
	}
	switch pred.Filter {
	case ability.FilterCharacter:
		return card.Created.Type == battle.TypeCharacter
	case ability.FilterEvent:
		return card.Created.Type == battle.TypeEvent
	}
	return true
}

// ValidCharacterTargets returns every battlefield character matching the
// predicate from the controller's perspective.
func ValidCharacterTargets(state *battle.BattleState, controller battle.PlayerName, pred ability.Predicate) battle.CardSet[battle.CharacterID] {
	var out battle.CardSet[battle.CharacterID]
	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		for _, id := range state.Cards.Battlefield(player).All() {
			if MatchesPredicate(state, controller, pred, id.CardID()) {
				out.Insert(id)
			}
		}
	}
	return out
}

// ValidStackCardTargets returns every stack card matching the predicate,
// excluding the given card and anything already negated.
func ValidStackCardTargets(state *battle.BattleState, controller battle.PlayerName, exclude battle.StackCardID, pred ability.Predicate) battle.CardSet[battle.StackCardID] {
	var out battle.CardSet[battle.StackCardID]
	for _, item := range state.Cards.StackCards() {
		if item.Card == exclude || item.Negated {
			continue
		}
		if MatchesPredicate(state, controller, pred, item.Card.CardID()) {
			out.Insert(item.Card)
		}
	}
	return out
}

// ValidVoidTargets returns every void card matching the predicate from the
// controller's perspective.
func ValidVoidTargets(state *battle.BattleState, controller battle.PlayerName, pred ability.Predicate) battle.CardSet[battle.VoidCardID] {
	var out battle.CardSet[battle.VoidCardID]
	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		for _, id := range state.Cards.Void(player).All() {
			if MatchesPredicate(state, controller, pred, id.CardID()) {
				out.Insert(id)
			}
		}
	}
	return out
}
