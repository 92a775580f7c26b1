package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/mutations"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/decks"
)

// putInHand instantiates a catalog card directly into a player's hand.
func putInHand(t *testing.T, state *battle.BattleState, player battle.PlayerName, name string) battle.HandCardID {
	t.Helper()
	def, err := decks.Lookup(name)
	require.NoError(t, err)
	list, ok := state.Abilities.Lookup(name)
	require.True(t, ok)
	id := state.Cards.CreateCard(player, battle.ZoneHand, battle.CreatedCard{
		Definition:  def,
		Cost:        def.Cost,
		Spark:       def.Spark,
		Type:        def.Type,
		Fast:        def.Fast,
		Restriction: list.Restriction,
	})
	return battle.HandCardID(id)
}

// advanceTurns runs full turn cycles without playing any cards.
func advanceTurns(t *testing.T, state *battle.BattleState, cycles int) {
	t.Helper()
	for i := 0; i < cycles; i++ {
		active := state.Turn.ActivePlayer
		mutations.Apply(state, active, battle.EndTurn())
		mutations.Apply(state, active.Opponent(), battle.StartNextTurn())
	}
}

func TestFullBattleOpening(t *testing.T) {
	state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), 14)
	mutations.StartBattle(state)

	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		assert.Equal(t, mutations.OpeningHandSize, state.Cards.Hand(player).Len())
		assert.Equal(t, len(decks.DefaultDeck())-mutations.OpeningHandSize,
			state.Cards.DeckSize(player))
	}
	assert.Equal(t, battle.Energy(1), state.Player(battle.PlayerOne).Energy)
	assert.Equal(t, battle.Energy(0), state.Player(battle.PlayerTwo).Energy)

	actions := queries.LegalActions(state, battle.PlayerOne)
	require.NotEmpty(t, actions)
	for _, action := range actions {
		assert.False(t, action.IsMicro(), "no prompt is open at battle start")
	}
}

func TestCharacterPlayResolvesAndScores(t *testing.T) {
	state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), 14)
	mutations.StartBattle(state)

	active := state.Turn.ActivePlayer
	id := putInHand(t, state, active, "Ember Recruit")
	require.GreaterOrEqual(t, state.Player(active).Energy, battle.Energy(1))

	mutations.Apply(state, active, battle.PlayFromHand(id))
	require.NotNil(t, state.Cards.TopOfStack())

	// Opponent declines to respond, the character resolves.
	mutations.Apply(state, active.Opponent(), battle.PassPriority())
	assert.True(t, state.Cards.Contains(active, id.CardID(), battle.ZoneBattlefield))

	// As the only battlefield presence, judgment scores a point.
	require.True(t, state.Cards.Battlefield(active.Opponent()).IsEmpty())
	mutations.Apply(state, active, battle.EndTurn())
	assert.Equal(t, battle.Points(1), state.Player(active).Points)
}

func TestEnergyGrowthAcrossTurns(t *testing.T) {
	state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), 8)
	mutations.StartBattle(state)

	advanceTurns(t, state, 4)

	// Turn 1 produced one energy for player one; two full cycles later the
	// active player produces three.
	assert.Equal(t, 5, state.Turn.ID)
	assert.Equal(t, battle.Energy(3), state.Player(state.Turn.ActivePlayer).ProducedEnergy)
}

func TestRandomPlayoutsAlwaysTerminateCleanly(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), seed)
		mutations.StartBattle(state)
		driver := battle.NewRNG(seed * 31)

		for i := 0; i < 2000 && !state.Status.GameOver; i++ {
			acted := false
			for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
				if action, ok := queries.RandomAction(state, player, driver); ok {
					mutations.Apply(state, player, action)
					acted = true
					break
				}
			}
			require.True(t, acted, "seed %d: no player had a legal action", seed)
		}

		// Cards never leave the battle: whatever was instantiated is still
		// in some zone.
		total := 0
		for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
			total += state.Cards.DeckSize(player) +
				state.Cards.Hand(player).Len() +
				state.Cards.Battlefield(player).Len() +
				state.Cards.Void(player).Len() +
				state.Cards.Banished(player).Len()
		}
		total += len(state.Cards.StackCards())
		assert.Equal(t, state.Cards.CardCount(), total, "seed %d", seed)
	}
}
