package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition(name string) *CardDefinition {
	return &CardDefinition{Name: name, Type: TypeCharacter, Cost: 1, Spark: 1}
}

func newTestState(t *testing.T) *BattleState {
	t.Helper()
	deck := []*CardDefinition{testDefinition("Test Recruit"), testDefinition("Test Scout")}
	return New(deck, deck, 99)
}

func TestNewRejectsEmptyDeck(t *testing.T) {
	assert.Panics(t, func() {
		New(nil, []*CardDefinition{testDefinition("Solo")}, 1)
	})
}

func TestCloneIsIndependent(t *testing.T) {
	state := newTestState(t)
	id := state.Cards.CreateCard(PlayerOne, ZoneHand, CreatedCard{
		Definition: testDefinition("Test Recruit"),
		Cost:       1,
		Spark:      1,
	})
	state.Player(PlayerOne).Energy = 3
	state.Triggers.Push(Trigger{Name: TriggerMaterialized, Card: id, Player: PlayerOne})
	state.PushPrompt(&Prompt{Kind: PromptChooseCharacter, Player: PlayerTwo})

	clone := state.Clone()
	clone.Player(PlayerOne).Energy = 7
	clone.Cards.MoveCard(id, ZoneVoid)
	clone.PopPrompt()
	clone.Triggers.Pop()

	assert.Equal(t, Energy(3), state.Player(PlayerOne).Energy)
	assert.True(t, state.Cards.Contains(PlayerOne, id, ZoneHand))
	assert.NotNil(t, state.ActivePrompt())
	assert.True(t, state.Triggers.Pending())
}

func TestCloneReproducesRandomStream(t *testing.T) {
	state := newTestState(t)
	clone := state.Clone()

	for i := 0; i < 50; i++ {
		require.Equal(t, state.RNG.IntN(1000), clone.RNG.IntN(1000))
	}
}

func TestClonePreservesRandomStreamPosition(t *testing.T) {
	state := newTestState(t)
	for i := 0; i < 10; i++ {
		state.RNG.IntN(100)
	}
	clone := state.Clone()

	assert.Equal(t, state.RNG.IntN(1000), clone.RNG.IntN(1000))
}

func TestPromptQueueIsFIFO(t *testing.T) {
	state := newTestState(t)
	first := &Prompt{Kind: PromptChooseCharacter, Player: PlayerOne}
	second := &Prompt{Kind: PromptChooseStackCard, Player: PlayerTwo}
	state.PushPrompt(first)
	state.PushPrompt(second)

	assert.Same(t, first, state.ActivePrompt())
	assert.Same(t, first, state.PopPrompt())
	assert.Same(t, second, state.ActivePrompt())
}

func TestPopEmptyPromptQueuePanics(t *testing.T) {
	state := newTestState(t)
	assert.Panics(t, func() { state.PopPrompt() })
}

func TestObjectIDChangesOnMove(t *testing.T) {
	state := newTestState(t)
	id := state.Cards.CreateCard(PlayerOne, ZoneDeck, CreatedCard{
		Definition: testDefinition("Test Recruit"),
	})

	before := state.Cards.Card(id).Object
	state.Cards.MoveCard(id, ZoneHand)
	after := state.Cards.Card(id).Object

	assert.NotEqual(t, before, after, "moves bump the object id")
	assert.Equal(t, id, state.Cards.Card(id).ID, "flat identity never changes")
}
