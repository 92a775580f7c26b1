package mutations

import (
	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// Settle drains the trigger queue and executes pending effects until the
// battle is quiescent or an effect suspends on a prompt. Triggers enqueued
// while an effect resolves wait for the current cascade to finish, so a
// partially applied effect is never observable.
func Settle(state *battle.BattleState) {
	for {
		if state.Status.GameOver || state.ActivePrompt() != nil {
			return
		}
		if len(state.Pending) > 0 {
			executePendingFront(state)
			continue
		}
		trigger, ok := state.Triggers.Pop()
		if !ok {
			return
		}
		matchTrigger(state, trigger)
	}
}

// matchTrigger scans registered listeners in ascending card id order, which
// is their arrival order in the watched zone, and enqueues a pending effect
// for every triggered ability whose condition and gating pass.
func matchTrigger(state *battle.BattleState, trigger battle.Trigger) {
	state.Tracef("matching trigger",
		trace.F("trigger", trigger.Name),
		trace.F("card", trigger.Card))
	for _, listener := range state.Triggers.Listeners(trigger.Name) {
		list := queries.AbilityList(state, listener)
		for _, data := range list.TriggeredAbilities {
			if data.Ability.Options.UntilEndOfTurn {
				// Fires through the granted list only, so it stops
				// matching once the turn ends.
				continue
			}
			if !conditionMatches(state, trigger, listener, data.Ability.Trigger) {
				continue
			}
			enqueueTriggeredEffect(state, trigger, listener, data.Number, data.Ability)
		}
	}
	for _, granted := range state.Granted {
		if !conditionMatches(state, trigger, granted.Source, granted.Ability.Trigger) {
			continue
		}
		enqueueTriggeredEffect(state, trigger, granted.Source, granted.Number, granted.Ability)
	}
}

func enqueueTriggeredEffect(state *battle.BattleState, trigger battle.Trigger, listener battle.CardID, number battle.AbilityNumber, triggered *ability.TriggeredAbility) {
	if triggered.Options.OncePerTurn {
		key := battle.AbilityKey{Card: listener, Number: number}
		if state.AbilityCounters[key] > 0 {
			return
		}
		state.AbilityCounters[key]++
	}
	owner := state.Cards.Card(listener).Owner
	state.Tracef("triggered ability fires",
		trace.F("card", listener),
		trace.F("ability", number))
	state.Pending = append(state.Pending, &battle.PendingEffect{
		Source: battle.EffectSource{
			Kind:       battle.SourceTriggered,
			Controller: owner,
			Card:       listener,
			Ability:    number,
		},
		Effect: triggered.Effect,
	})
}

func conditionMatches(state *battle.BattleState, trigger battle.Trigger, listener battle.CardID, condition ability.TriggerCondition) bool {
	owner := state.Cards.Card(listener).Owner
	switch condition.Kind {
	case ability.TriggerSelfMaterialized:
		return trigger.Name == battle.TriggerMaterialized && trigger.Card == listener
	case ability.TriggerMaterialized:
		if trigger.Name != battle.TriggerMaterialized {
			return false
		}
	case ability.TriggerDissolved:
		if trigger.Name != battle.TriggerDissolved {
			return false
		}
	case ability.TriggerDiscarded:
		if trigger.Name != battle.TriggerDiscarded {
			return false
		}
	case ability.TriggerPlayedCardFromVoid:
		if trigger.Name != battle.TriggerPlayedCardFromVoid {
			return false
		}
	case ability.TriggerDrewAllCardsInCopy:
		return trigger.Name == battle.TriggerDrewAllCardsInCopy && trigger.Player == owner
	default:
		return false
	}
	if trigger.Card < 0 {
		return false
	}
	return queries.MatchesPredicate(state, owner, condition.Subject, trigger.Card)
}

// GrantUntilEndOfTurn attaches a triggered ability to a card for the rest of
// the current turn. End-of-turn cleanup removes it.
func GrantUntilEndOfTurn(state *battle.BattleState, source battle.CardID, number battle.AbilityNumber, triggered *ability.TriggeredAbility) {
	state.Granted = append(state.Granted, &battle.GrantedAbility{
		Source:  source,
		Number:  number,
		Ability: triggered,
	})
}
