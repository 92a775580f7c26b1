package mutations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidbound/battle-server-go/internal/battle"
)

func TestAnimationSnapshotPrecedesMutation(t *testing.T) {
	state := newBattle(t)
	state.Animations = battle.NewAnimationRecorder()
	p := state.Player(battle.PlayerOne)
	p.Energy = 2

	GainEnergy(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, battle.Energy(3))

	require.Len(t, state.Animations.Steps, 1)
	step := state.Animations.Steps[0]
	assert.Equal(t, battle.AnimationGainEnergy, step.Animation.Kind)
	assert.Equal(t, 3, step.Animation.Amount)
	assert.Equal(t, battle.Energy(2), step.Snapshot.Player(battle.PlayerOne).Energy,
		"snapshot must show the state before the gain")
	assert.Equal(t, battle.Energy(5), p.Energy)
}

func TestAnimationStepsRestartOnNewTurn(t *testing.T) {
	state := newBattle(t)
	state.Animations = battle.NewAnimationRecorder()

	GainEnergy(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, battle.Energy(1))
	require.NotEmpty(t, state.Animations.Steps)

	EndTurn(state, battle.PlayerOne)
	StartNextTurn(state, battle.PlayerTwo)

	assert.Equal(t, state.Turn.ID, state.Animations.TurnID)
	require.NotEmpty(t, state.Animations.Steps)
	assert.Equal(t, battle.AnimationStartTurn, state.Animations.Steps[0].Animation.Kind)
}

func TestSnapshotIsNotRetroactivelyMutated(t *testing.T) {
	state := newBattle(t)
	state.Animations = battle.NewAnimationRecorder()
	id := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	giveEnergy(state, battle.PlayerOne, 1)

	PlayCardFromHand(state, battle.PlayerOne, battle.HandCardID(id))

	require.NotEmpty(t, state.Animations.Steps)
	snapshot := state.Animations.Steps[0].Snapshot
	assert.True(t, snapshot.Cards.Contains(battle.PlayerOne, id, battle.ZoneHand))
	assert.True(t, state.Cards.Contains(battle.PlayerOne, id, battle.ZoneStack))
}
