// Package mutations is the only place battle state changes. Every operation
// here settles the trigger queue before returning control to the caller, so
// callers always observe a quiescent state.
package mutations

import (
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// MoveCard transfers a card between zones, running the leave hooks for the
// old zone and the enter hooks for the new one: trigger listener
// registration, character state installation, the materialized trigger, and
// reveal-on-return. Returns the card's new object id.
func MoveCard(state *battle.BattleState, source battle.EffectSource, id battle.CardID, to battle.Zone) battle.ObjectID {
	card := state.Cards.Card(id)
	if card == nil {
		battle.Failf("move of unknown card %v", id)
	}
	from := card.Zone
	if from == to {
		return card.Object
	}
	state.Tracef("moving card",
		trace.F("card", id),
		trace.F("from", from),
		trace.F("to", to))
	leaveZone(state, card, from)
	object := state.Cards.MoveCard(id, to)
	enterZone(state, source, card, from, to)
	return object
}

func leaveZone(state *battle.BattleState, card *battle.CardState, from battle.Zone) {
	list := queries.AbilityList(state, card.ID)
	switch from {
	case battle.ZoneBattlefield:
		for _, name := range list.BattlefieldTriggers {
			state.Triggers.RemoveListener(name, card.ID)
		}
	case battle.ZoneStack:
		for _, name := range list.StackTriggers {
			state.Triggers.RemoveListener(name, card.ID)
		}
	}
}

func enterZone(state *battle.BattleState, source battle.EffectSource, card *battle.CardState, from, to battle.Zone) {
	list := queries.AbilityList(state, card.ID)
	switch to {
	case battle.ZoneBattlefield:
		for _, name := range list.BattlefieldTriggers {
			state.Triggers.AddListener(name, card.ID)
		}
		// Printed abilities limited to the turn they arrive in live in
		// the granted list, which end-of-turn cleanup clears.
		for _, data := range list.TriggeredAbilities {
			if data.Ability.Options.UntilEndOfTurn {
				GrantUntilEndOfTurn(state, card.ID, data.Number, data.Ability)
			}
		}
		state.Cards.SetCharacterState(card.Owner, battle.CharacterID(card.ID),
			&battle.CharacterState{Spark: card.Created.Spark})
		state.Triggers.Push(battle.Trigger{
			Name:   battle.TriggerMaterialized,
			Card:   card.ID,
			Player: card.Owner,
			Source: source,
		})
	case battle.ZoneStack:
		for _, name := range list.StackTriggers {
			state.Triggers.AddListener(name, card.ID)
		}
	case battle.ZoneHand:
		// Cards coming back from public zones are no longer hidden
		// information.
		if from == battle.ZoneVoid || from == battle.ZoneBattlefield {
			card.RevealedToOpponent = true
		}
	}
}

// animate records an animation step with a snapshot taken before the
// mutation it describes. A nil recorder disables recording entirely.
func animate(state *battle.BattleState, animation battle.Animation) {
	if state.Animations == nil {
		return
	}
	state.Animations.Record(state.Turn.ID, state.Clone(), animation)
}
