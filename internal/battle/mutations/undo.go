package mutations

import "github.com/voidbound/battle-server-go/internal/battle"

// Undo returns the battle as it was immediately before the last full player
// action. Micro selection steps are never recorded in the history, so undo
// always lands before the action that opened the current interaction rather
// than mid-prompt. With no recorded action the state is returned unchanged.
//
// The recorded snapshot stays in the history of later snapshots, so the
// result is a fresh clone that callers may mutate freely.
func Undo(state *battle.BattleState) *battle.BattleState {
	if len(state.History) == 0 {
		return state
	}
	record := state.History[len(state.History)-1]
	return record.Snapshot.Clone()
}
