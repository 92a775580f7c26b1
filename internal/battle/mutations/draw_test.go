package mutations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/decks"
)

func TestDrawTakesKnownTopFirst(t *testing.T) {
	state := newBattle(t)
	for i := 0; i < 4; i++ {
		spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	}
	source := battle.GameSource(battle.PlayerOne)

	known := RealizeTopOfDeck(state, source, battle.PlayerOne, 2)
	require.Len(t, known, 2)

	id, ok := Draw(state, source, battle.PlayerOne)
	require.True(t, ok)
	assert.Equal(t, known[0].CardID(), id.CardID())

	id, ok = Draw(state, source, battle.PlayerOne)
	require.True(t, ok)
	assert.Equal(t, known[1].CardID(), id.CardID())
}

func TestDrawAtHandLimitGrantsEnergy(t *testing.T) {
	state := newBattle(t)
	for i := 0; i < battle.MaximumHandSize; i++ {
		spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	}
	spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	p := state.Player(battle.PlayerOne)
	p.Energy = 0

	_, ok := Draw(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne)

	assert.False(t, ok)
	assert.Equal(t, battle.Energy(HandLimitEnergyGrant), p.Energy)
	assert.True(t, p.DrawExceededHandSize)
	assert.Equal(t, battle.MaximumHandSize, state.Cards.Hand(battle.PlayerOne).Len())
	assert.Equal(t, 1, state.Cards.DeckSize(battle.PlayerOne))
}

func TestDrawRecyclesEmptyDeck(t *testing.T) {
	state := newBattle(t)
	require.Equal(t, 0, state.Cards.DeckSize(battle.PlayerOne))

	id, ok := Draw(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne)

	require.True(t, ok)
	assert.NotNil(t, state.Cards.Card(id.CardID()))
	// One card of the fresh copy was drawn, the rest stay in the deck.
	assert.Equal(t, len(decks.DefaultDeck())-1, state.Cards.DeckSize(battle.PlayerOne))
}

func TestDeckRecycleFiresDrewAllCardsTrigger(t *testing.T) {
	state := newBattle(t)
	keeper := spawn(t, state, battle.PlayerOne, "Archive Keeper", battle.ZoneBattlefield)
	require.NotNil(t, state.Cards.CharacterState(battle.PlayerOne, battle.CharacterID(keeper)))
	p := state.Player(battle.PlayerOne)
	require.Equal(t, battle.Points(0), p.Points)

	// Empty deck forces a recycle, which Archive Keeper converts to a point.
	Draw(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne)
	Settle(state)

	assert.Equal(t, battle.Points(1), p.Points)
}

func TestDrawCardsAmortizesAnimationSnapshot(t *testing.T) {
	state := newBattle(t)
	state.Animations = battle.NewAnimationRecorder()
	for i := 0; i < 5; i++ {
		spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	}

	drawn := DrawCards(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, 3)

	require.Len(t, drawn, 3)
	batches := 0
	for _, step := range state.Animations.Steps {
		if step.Animation.Kind == battle.AnimationDrawCards {
			batches++
		}
	}
	assert.Equal(t, 1, batches, "batch draw should record a single snapshot")
}

func TestRealizeTopOfDeckIsIdempotent(t *testing.T) {
	state := newBattle(t)
	for i := 0; i < 6; i++ {
		spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	}
	source := battle.GameSource(battle.PlayerOne)

	first := RealizeTopOfDeck(state, source, battle.PlayerOne, 3)
	second := RealizeTopOfDeck(state, source, battle.PlayerOne, 3)

	assert.Equal(t, first, second)
	assert.Len(t, state.Cards.TopOfDeckKnown(battle.PlayerOne), 3)
}

func TestRealizeTopOfDeckRecyclesWhenAllCardsKnown(t *testing.T) {
	state := newBattle(t)
	spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	source := battle.GameSource(battle.PlayerOne)

	RealizeTopOfDeck(state, source, battle.PlayerOne, 2)
	require.Len(t, state.Cards.TopOfDeckKnown(battle.PlayerOne), 2)

	// Both deck cards are already revealed; the third reveal comes from a
	// fresh copy.
	known := RealizeTopOfDeck(state, source, battle.PlayerOne, 3)
	require.Len(t, known, 3)
	assert.Equal(t, 2+len(decks.DefaultDeck()), state.Cards.DeckSize(battle.PlayerOne))

	recycled := false
	for {
		trigger, ok := state.Triggers.Pop()
		if !ok {
			break
		}
		if trigger.Name == battle.TriggerDrewAllCardsInCopy && trigger.Player == battle.PlayerOne {
			recycled = true
		}
	}
	assert.True(t, recycled)
}

func TestMoveToBattlefieldInstallsCharacterState(t *testing.T) {
	state := newBattle(t)
	id := spawn(t, state, battle.PlayerOne, "Spark Shrine", battle.ZoneBattlefield)

	cs := state.Cards.CharacterState(battle.PlayerOne, battle.CharacterID(id))
	require.NotNil(t, cs)
	assert.Equal(t, battle.Spark(3), cs.Spark)

	// Listener registered while on the battlefield, dropped on leave.
	assert.Contains(t, state.Triggers.Listeners(battle.TriggerMaterialized), id)
	MoveCard(state, battle.GameSource(battle.PlayerOne), id, battle.ZoneVoid)
	assert.NotContains(t, state.Triggers.Listeners(battle.TriggerMaterialized), id)
}

func TestReturnFromVoidRevealsCard(t *testing.T) {
	state := newBattle(t)
	id := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneVoid)
	require.False(t, state.Cards.Card(id).RevealedToOpponent)

	MoveCard(state, battle.GameSource(battle.PlayerOne), id, battle.ZoneHand)

	assert.True(t, state.Cards.Card(id).RevealedToOpponent)
}
