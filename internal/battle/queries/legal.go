package queries

import (
	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
)

// FromHand returns the hand cards the player can legally play right now.
// Cheap checks run first: affordability, the fast tag when fastOnly is set,
// then the precomputed CanPlayRestriction. Only cards without a usable
// restriction fall through to the full legal-target and additional-cost
// walk. This function runs for every hand card on every decision point, so
// the ordering matters.
func FromHand(state *battle.BattleState, player battle.PlayerName, fastOnly bool) []battle.HandCardID {
	energy := state.Player(player).Energy
	var out []battle.HandCardID
	for _, id := range state.Cards.Hand(player).All() {
		card := state.Cards.Card(id.CardID())
		if fastOnly && !card.Created.Fast {
			continue
		}
		if energy < card.Created.Cost {
			continue
		}
		if onlyPlayableFromVoid(state, card) {
			continue
		}
		if !passesRestriction(state, player, card) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// CanPlayFromVoid describes one legal play out of the void: the card, the
// specific ability that permits the play, and the cost that ability charges.
type CanPlayFromVoid struct {
	Card    battle.VoidCardID
	Ability battle.AbilityNumber
	Cost    battle.Energy
}

// FromVoid returns the void cards the player can legally play right now.
// When a card carries several play-from-void abilities, the cheapest one
// wins and its ability number is carried in the result.
func FromVoid(state *battle.BattleState, player battle.PlayerName, fastOnly bool) []CanPlayFromVoid {
	energy := state.Player(player).Energy
	var out []CanPlayFromVoid
	for _, id := range state.Cards.Void(player).All() {
		card := state.Cards.Card(id.CardID())
		list := AbilityList(state, id.CardID())
		if !list.HasPlayFromVoid {
			continue
		}
		if fastOnly && !card.Created.Fast {
			continue
		}
		number, cost, ok := cheapestVoidPlay(card, list)
		if !ok || energy < cost {
			continue
		}
		if !targetsAvailable(state, player, card, list) {
			continue
		}
		out = append(out, CanPlayFromVoid{Card: id, Ability: number, Cost: cost})
	}
	return out
}

// PlayFromVoidEnergyCost returns the cost of playing a void card through a
// specific ability. It must only be called after FromVoid confirmed the
// play; an unplayable combination is an internal ordering bug.
func PlayFromVoidEnergyCost(state *battle.BattleState, player battle.PlayerName, id battle.VoidCardID, number battle.AbilityNumber) battle.Energy {
	for _, entry := range FromVoid(state, player, false) {
		if entry.Card == id && entry.Ability == number {
			return entry.Cost
		}
	}
	battle.Failf("void play cost requested for unplayable card %v ability %v", id, number)
	return 0
}

func cheapestVoidPlay(card *battle.CardState, list *battle.AbilityList) (battle.AbilityNumber, battle.Energy, bool) {
	var bestNumber battle.AbilityNumber
	var bestCost battle.Energy
	found := false
	for _, data := range list.StaticAbilities {
		var cost battle.Energy
		switch data.Ability.Kind {
		case ability.StaticPlayFromVoid:
			if data.Ability.EnergyCost >= 0 {
				cost = battle.Energy(data.Ability.EnergyCost)
			} else {
				cost = card.Created.Cost
			}
		case ability.StaticPlayOnlyFromVoid:
			cost = card.Created.Cost
		default:
			continue
		}
		if !found || cost < bestCost {
			bestNumber, bestCost, found = data.Number, cost, true
		}
	}
	return bestNumber, bestCost, found
}

func onlyPlayableFromVoid(state *battle.BattleState, card *battle.CardState) bool {
	list := AbilityList(state, card.ID)
	for _, data := range list.StaticAbilities {
		if data.Ability.Kind == ability.StaticPlayOnlyFromVoid {
			return true
		}
	}
	return false
}

func passesRestriction(state *battle.BattleState, player battle.PlayerName, card *battle.CardState) bool {
	restriction := card.Created.Restriction
	switch restriction.Kind {
	case battle.RestrictionUnrestricted:
		return true
	case battle.RestrictionEnemyCharacterOnBattlefield:
		return !state.Cards.Battlefield(player.Opponent()).IsEmpty()
	case battle.RestrictionEnemyCardOnStack:
		return enemyStackCardPresent(state, player, nil)
	case battle.RestrictionEnemyEventCardOnStack:
		eventType := battle.TypeEvent
		return enemyStackCardPresent(state, player, &eventType)
	case battle.RestrictionEnemyCharacterCardOnStack:
		characterType := battle.TypeCharacter
		return enemyStackCardPresent(state, player, &characterType)
	case battle.RestrictionAdditionalEnergyAvailable:
		return state.Player(player).Energy >= card.Created.Cost+restriction.Energy
	}
	return canPlayFull(state, player, card)
}

func enemyStackCardPresent(state *battle.BattleState, player battle.PlayerName, cardType *battle.CardType) bool {
	for _, item := range state.Cards.StackCards() {
		if item.Controller == player || item.Negated {
			continue
		}
		if cardType != nil && state.Cards.Card(item.Card.CardID()).Created.Type != *cardType {
			continue
		}
		return true
	}
	return false
}

// canPlayFull is the slow path: walk every event ability checking that its
// additional cost is payable and every targeted effect has at least one
// legal target.
func canPlayFull(state *battle.BattleState, player battle.PlayerName, card *battle.CardState) bool {
	list := AbilityList(state, card.ID)
	energy := state.Player(player).Energy
	for _, data := range list.EventAbilities {
		switch data.Ability.AdditionalCost.Kind {
		case ability.CostEnergy:
			if energy < card.Created.Cost+battle.Energy(data.Ability.AdditionalCost.Energy) {
				return false
			}
		case ability.CostSpendOneOrMoreEnergy:
			if energy < card.Created.Cost+1 {
				return false
			}
		}
	}
	return targetsAvailable(state, player, card, list)
}

func targetsAvailable(state *battle.BattleState, player battle.PlayerName, card *battle.CardState, list *battle.AbilityList) bool {
	for _, data := range list.EventAbilities {
		if !effectTargetsAvailable(state, player, card, data.Ability.Effect) {
			return false
		}
	}
	return true
}

func effectTargetsAvailable(state *battle.BattleState, player battle.PlayerName, card *battle.CardState, effect ability.Effect) bool {
	check := func(e ability.StandardEffect) bool {
		shape, ok := e.RequiresTarget()
		if !ok {
			return true
		}
		switch shape {
		case ability.TargetCharacter:
			return !ValidCharacterTargets(state, player, e.Target).IsEmpty()
		case ability.TargetStackCard:
			return !ValidStackCardTargets(state, player, battle.StackCardID(card.ID), e.Target).IsEmpty()
		case ability.TargetVoidCards:
			return !ValidVoidTargets(state, player, e.Target).IsEmpty()
		}
		return true
	}
	switch effect.Kind {
	case ability.EffectStandard:
		return check(effect.Standard)
	case ability.EffectList:
		for _, e := range effect.List {
			if !check(e) {
				return false
			}
		}
	}
	return true
}
