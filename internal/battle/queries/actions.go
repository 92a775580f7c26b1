package queries

import "github.com/voidbound/battle-server-go/internal/battle"

// LegalActions returns every action the player may submit in the current
// state. An empty result means the player is waiting: either the battle is
// over or it is the other player's decision.
//
// Decision ordering mirrors the engine's gating: an active prompt binds its
// own player exclusively; otherwise a non-empty stack gives priority to the
// opponent of the top item's controller; otherwise the ended-turn window
// lets the incoming player respond or begin their turn; otherwise the
// active player holds an ordinary main phase.
func LegalActions(state *battle.BattleState, player battle.PlayerName) []battle.Action {
	if state.Status.GameOver {
		return nil
	}
	if prompt := state.ActivePrompt(); prompt != nil {
		if prompt.Player != player {
			return nil
		}
		return promptActions(prompt)
	}
	if top := state.Cards.TopOfStack(); top != nil {
		if player == top.Controller {
			return nil
		}
		actions := playActions(state, player, true)
		return append(actions, battle.PassPriority())
	}
	if state.Turn.Ended {
		if player != state.Turn.ActivePlayer.Opponent() {
			return nil
		}
		actions := playActions(state, player, true)
		return append(actions, battle.StartNextTurn())
	}
	if player != state.Turn.ActivePlayer {
		return nil
	}
	actions := playActions(state, player, false)
	return append(actions, battle.EndTurn())
}

// RandomAction picks a uniformly random legal action for the player. The
// generator is the caller's, never the battle's own: action selection is a
// driver decision, and burning battle randomness on it would make a recorded
// action log impossible to replay. The second return is false when the
// player has no legal action.
func RandomAction(state *battle.BattleState, player battle.PlayerName, rng *battle.RNG) (battle.Action, bool) {
	actions := LegalActions(state, player)
	if len(actions) == 0 {
		return battle.Action{}, false
	}
	return actions[rng.IntN(len(actions))], true
}

func playActions(state *battle.BattleState, player battle.PlayerName, fastOnly bool) []battle.Action {
	var out []battle.Action
	for _, id := range FromHand(state, player, fastOnly) {
		out = append(out, battle.PlayFromHand(id))
	}
	for _, entry := range FromVoid(state, player, fastOnly) {
		out = append(out, battle.PlayFromVoid(entry.Card))
	}
	return out
}

func promptActions(prompt *battle.Prompt) []battle.Action {
	var out []battle.Action
	switch prompt.Kind {
	case battle.PromptChooseCharacter:
		for _, id := range prompt.ValidCharacters.All() {
			out = append(out, battle.SelectCharacter(id))
		}
	case battle.PromptChooseStackCard:
		for _, id := range prompt.ValidStackCards.All() {
			out = append(out, battle.SelectStackCard(id))
		}
	case battle.PromptChooseVoidCards:
		// Selections only ever add here; deselection is a UI affordance,
		// not something an automated player needs to enumerate.
		if prompt.Current.Len() < prompt.MaximumSelection || prompt.MaximumSelection == 1 {
			for _, id := range prompt.ValidVoidCards.All() {
				if !prompt.Current.Contains(id) {
					out = append(out, battle.SelectVoidCard(id))
				}
			}
		}
		if !prompt.Current.IsEmpty() {
			out = append(out, battle.SubmitVoidTargets())
		}
	}
	return out
}
