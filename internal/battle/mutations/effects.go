package mutations

import (
	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// PointsToWin ends the battle when a player's score reaches it.
const PointsToWin = 12

// executePendingFront runs the front pending effect depth-first from its
// stored continuation index. An effect that needs a target it does not have
// yet pushes a prompt and suspends; re-entering resumes at the same index
// with the answer written into the effect's target slot.
func executePendingFront(state *battle.BattleState) {
	pending := state.Pending[0]
	effects := effectList(pending.Effect)
	for pending.NextIndex < len(effects) {
		e := effects[pending.NextIndex]
		if !ensurePendingTarget(state, pending, e) {
			return
		}
		applyStandardEffect(state, pending.Source, e, pending.Targets)
		pending.Targets = nil
		pending.NextIndex++
	}
	state.Pending = state.Pending[1:]
}

func effectList(effect ability.Effect) []ability.StandardEffect {
	if effect.Kind == ability.EffectStandard {
		return []ability.StandardEffect{effect.Standard}
	}
	return effect.List
}

// ensurePendingTarget reports whether the effect can run now. Effects whose
// target shape has no legal candidates run anyway and fizzle at apply time.
func ensurePendingTarget(state *battle.BattleState, pending *battle.PendingEffect, e ability.StandardEffect) bool {
	shape, ok := e.RequiresTarget()
	if !ok || pending.Targets != nil {
		return true
	}
	controller := pending.Source.Controller
	onSelected := battle.OnSelected{Kind: battle.SelectedAddPendingEffectTargets}
	switch shape {
	case ability.TargetCharacter:
		valid := queries.ValidCharacterTargets(state, controller, e.Target)
		if valid.IsEmpty() {
			return true
		}
		state.PushPrompt(&battle.Prompt{
			Kind:            battle.PromptChooseCharacter,
			Player:          controller,
			Source:          pending.Source,
			ValidCharacters: valid,
			OnSelected:      onSelected,
		})
	case ability.TargetStackCard:
		valid := queries.ValidStackCardTargets(state, controller, battle.StackCardID(pending.Source.Card), e.Target)
		if valid.IsEmpty() {
			return true
		}
		state.PushPrompt(&battle.Prompt{
			Kind:            battle.PromptChooseStackCard,
			Player:          controller,
			Source:          pending.Source,
			ValidStackCards: valid,
			OnSelected:      onSelected,
		})
	case ability.TargetVoidCards:
		valid := queries.ValidVoidTargets(state, controller, e.Target)
		if valid.IsEmpty() {
			return true
		}
		maximum := e.Count
		if maximum <= 0 || maximum > valid.Len() {
			maximum = valid.Len()
		}
		state.PushPrompt(&battle.Prompt{
			Kind:             battle.PromptChooseVoidCards,
			Player:           controller,
			Source:           pending.Source,
			ValidVoidCards:   valid,
			MaximumSelection: maximum,
			OnSelected:       onSelected,
		})
	}
	return false
}

// applyStandardEffect performs one concrete effect. A required target that
// is missing or no longer valid makes the effect fizzle silently.
func applyStandardEffect(state *battle.BattleState, source battle.EffectSource, e ability.StandardEffect, targets *battle.EffectTargets) {
	controller := source.Controller
	switch e.Kind {
	case ability.DrawCards:
		DrawCards(state, source, controller, e.Count)
	case ability.GainEnergy:
		GainEnergy(state, source, controller, battle.Energy(e.Amount))
	case ability.GainPoints:
		GainPoints(state, source, controller, battle.Points(e.Amount))
	case ability.GainSparkToTarget:
		if id, ok := characterTarget(state, targets); ok {
			GainSpark(state, source, id, battle.Spark(e.Amount))
		}
	case ability.DissolveCharacter:
		if id, ok := characterTarget(state, targets); ok {
			DissolveCharacter(state, source, id)
		}
	case ability.NegateStackCard:
		if targets != nil && targets.Kind == battle.TargetsStackCard {
			NegateStackCard(state, source, targets.StackCard)
		}
	case ability.ReturnVoidCardsToHand:
		if targets != nil && targets.Kind == battle.TargetsVoidCards {
			ReturnVoidCardsToHand(state, source, targets.VoidCards)
		}
	case ability.DiscardCards:
		DiscardRandomCards(state, source, controller, e.Count)
	}
}

func characterTarget(state *battle.BattleState, targets *battle.EffectTargets) (battle.CharacterID, bool) {
	if targets == nil || targets.Kind != battle.TargetsCharacter {
		return 0, false
	}
	id := targets.Character
	card := state.Cards.Card(id.CardID())
	if card == nil || card.Zone != battle.ZoneBattlefield {
		return 0, false
	}
	return id, true
}

// GainEnergy grants energy to a player.
func GainEnergy(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName, amount battle.Energy) {
	if amount <= 0 {
		return
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationGainEnergy,
		Player: player,
		Source: source,
		Amount: int(amount),
	})
	state.Player(player).Energy += amount
}

// GainPoints scores points for a player and ends the battle at the winning
// threshold.
func GainPoints(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName, amount battle.Points) {
	if amount <= 0 {
		return
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationScorePoints,
		Player: player,
		Source: source,
		Amount: int(amount),
	})
	p := state.Player(player)
	p.Points += amount
	state.Tracef("scored points",
		trace.F("player", player),
		trace.F("total", p.Points))
	if p.Points >= PointsToWin {
		state.Status = battle.Status{GameOver: true, Winner: player}
		state.Tracef("battle over", trace.F("winner", player))
	}
}

// GainSpark adds spark to a battlefield character.
func GainSpark(state *battle.BattleState, source battle.EffectSource, id battle.CharacterID, amount battle.Spark) {
	card := state.Cards.Card(id.CardID())
	if card == nil || card.Zone != battle.ZoneBattlefield {
		battle.Failf("spark gain for %v off the battlefield", id)
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationGainSpark,
		Player: card.Owner,
		Source: source,
		Cards:  []battle.CardID{id.CardID()},
		Amount: int(amount),
	})
	cs := state.Cards.CharacterState(card.Owner, id)
	if cs == nil {
		battle.Failf("character %v has no battlefield state", id)
	}
	cs.Spark += amount
}

// DissolveCharacter moves a battlefield character to its owner's void and
// pushes the dissolved trigger.
func DissolveCharacter(state *battle.BattleState, source battle.EffectSource, id battle.CharacterID) {
	card := state.Cards.Card(id.CardID())
	if card == nil || card.Zone != battle.ZoneBattlefield {
		battle.Failf("dissolve of %v off the battlefield", id)
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationDissolve,
		Player: card.Owner,
		Source: source,
		Cards:  []battle.CardID{id.CardID()},
	})
	MoveCard(state, source, id.CardID(), battle.ZoneVoid)
	state.Triggers.Push(battle.Trigger{
		Name:   battle.TriggerDissolved,
		Card:   id.CardID(),
		Player: card.Owner,
		Source: source,
	})
}

// NegateStackCard marks a stack item as resolving with no effect.
func NegateStackCard(state *battle.BattleState, source battle.EffectSource, id battle.StackCardID) {
	item := state.Cards.StackItem(id)
	if item == nil {
		return
	}
	state.Tracef("negated stack card", trace.F("card", id))
	item.Negated = true
}

// ReturnVoidCardsToHand moves the chosen void cards to their owners' hands.
// The cards become revealed to the opponent on the way.
func ReturnVoidCardsToHand(state *battle.BattleState, source battle.EffectSource, cards battle.CardSet[battle.VoidCardID]) {
	for _, id := range cards.All() {
		card := state.Cards.Card(id.CardID())
		if card == nil || card.Zone != battle.ZoneVoid {
			continue
		}
		MoveCard(state, source, id.CardID(), battle.ZoneHand)
	}
}

// DiscardRandomCards discards count uniformly random cards from a player's
// hand, pushing one discarded trigger per card.
func DiscardRandomCards(state *battle.BattleState, source battle.EffectSource, player battle.PlayerName, count int) {
	for i := 0; i < count; i++ {
		hand := state.Cards.Hand(player)
		if hand.IsEmpty() {
			return
		}
		id, _ := hand.At(state.RNG.IntN(hand.Len()))
		animate(state, battle.Animation{
			Kind:   battle.AnimationDiscard,
			Player: player,
			Source: source,
			Cards:  []battle.CardID{id.CardID()},
		})
		MoveCard(state, source, id.CardID(), battle.ZoneVoid)
		state.Triggers.Push(battle.Trigger{
			Name:   battle.TriggerDiscarded,
			Card:   id.CardID(),
			Player: player,
			Source: source,
		})
	}
}
