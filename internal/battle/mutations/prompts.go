package mutations

import (
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// SelectCharacter answers the front prompt with a character choice, writes
// it through the prompt's continuation, and resumes resolution.
func SelectCharacter(state *battle.BattleState, player battle.PlayerName, id battle.CharacterID) {
	prompt := popPromptExpecting(state, player, battle.PromptChooseCharacter)
	if !prompt.ValidCharacters.Contains(id) {
		battle.Failf("character %v is not a valid choice", id)
	}
	animateSelection(state, prompt, []battle.CardID{id.CardID()})
	writeTargets(state, prompt.OnSelected, &battle.EffectTargets{
		Kind:      battle.TargetsCharacter,
		Character: id,
	})
	Settle(state)
}

// SelectStackCard answers the front prompt with a stack card choice.
func SelectStackCard(state *battle.BattleState, player battle.PlayerName, id battle.StackCardID) {
	prompt := popPromptExpecting(state, player, battle.PromptChooseStackCard)
	if !prompt.ValidStackCards.Contains(id) {
		battle.Failf("stack card %v is not a valid choice", id)
	}
	animateSelection(state, prompt, []battle.CardID{id.CardID()})
	writeTargets(state, prompt.OnSelected, &battle.EffectTargets{
		Kind:      battle.TargetsStackCard,
		StackCard: id,
	})
	Settle(state)
}

// SelectVoidCard toggles a void card in the front prompt's in-progress
// selection. The prompt stays at the front of the queue; only submission
// pops it. Single-selection prompts replace the previous choice instead of
// refusing the toggle. A selection beyond the maximum is ignored.
func SelectVoidCard(state *battle.BattleState, player battle.PlayerName, id battle.VoidCardID) {
	prompt := frontPromptExpecting(state, player, battle.PromptChooseVoidCards)
	if !prompt.ValidVoidCards.Contains(id) {
		battle.Failf("void card %v is not a valid choice", id)
	}
	switch {
	case prompt.Current.Contains(id):
		prompt.Current.Remove(id)
	case prompt.MaximumSelection == 1:
		prompt.Current.Clear()
		prompt.Current.Insert(id)
	case prompt.Current.Len() < prompt.MaximumSelection:
		prompt.Current.Insert(id)
	}
}

// SubmitVoidCardTargets finalizes the front void selection prompt. The
// legal-action layer only offers submission for a non-empty selection, so an
// empty one here is an internal ordering bug.
func SubmitVoidCardTargets(state *battle.BattleState, player battle.PlayerName) {
	prompt := popPromptExpecting(state, player, battle.PromptChooseVoidCards)
	if prompt.Current.IsEmpty() {
		battle.Failf("void selection submitted empty")
	}
	if prompt.Current.Len() > prompt.MaximumSelection {
		battle.Failf("void selection exceeds maximum %d", prompt.MaximumSelection)
	}
	chosen := prompt.Current.Clone()
	var cards []battle.CardID
	for _, id := range chosen.All() {
		cards = append(cards, id.CardID())
	}
	animateSelection(state, prompt, cards)
	writeTargets(state, prompt.OnSelected, &battle.EffectTargets{
		Kind:      battle.TargetsVoidCards,
		VoidCards: chosen,
	})
	Settle(state)
}

func frontPromptExpecting(state *battle.BattleState, player battle.PlayerName, kind battle.PromptKind) *battle.Prompt {
	prompt := state.ActivePrompt()
	if prompt == nil {
		battle.Failf("no active prompt for %v selection", kind)
	}
	if prompt.Kind != kind {
		battle.Failf("active prompt is %v, expected %v", prompt.Kind, kind)
	}
	if prompt.Player != player {
		battle.Failf("prompt belongs to %v, answered by %v", prompt.Player, player)
	}
	return prompt
}

func popPromptExpecting(state *battle.BattleState, player battle.PlayerName, kind battle.PromptKind) *battle.Prompt {
	frontPromptExpecting(state, player, kind)
	return state.PopPrompt()
}

// writeTargets resolves an OnSelected continuation by writing the chosen
// targets to the referenced stack item or pending effect. The references
// are produced by the engine only; a dangling one is fatal.
func writeTargets(state *battle.BattleState, on battle.OnSelected, targets *battle.EffectTargets) {
	switch on.Kind {
	case battle.SelectedAddStackTargets:
		item := state.Cards.StackItem(on.StackCard)
		if item == nil {
			battle.Failf("selection written to missing stack card %v", on.StackCard)
		}
		item.Targets = targets
	case battle.SelectedAddPendingEffectTargets:
		if on.EffectIndex < 0 || on.EffectIndex >= len(state.Pending) {
			battle.Failf("selection written to missing pending effect %d", on.EffectIndex)
		}
		state.Pending[on.EffectIndex].Targets = targets
	}
}

func animateSelection(state *battle.BattleState, prompt *battle.Prompt, cards []battle.CardID) {
	state.Tracef("targets selected",
		trace.F("player", prompt.Player),
		trace.F("cards", cards))
	animate(state, battle.Animation{
		Kind:   battle.AnimationSelectedTargets,
		Player: prompt.Player,
		Source: prompt.Source,
		Cards:  cards,
	})
}
