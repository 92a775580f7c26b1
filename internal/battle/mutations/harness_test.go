package mutations

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/decks"
)

// newBattle creates a quiescent battle over the built-in catalog deck with
// nothing dealt. Tests place cards themselves.
func newBattle(t *testing.T) *battle.BattleState {
	t.Helper()
	return battle.New(decks.DefaultDeck(), decks.DefaultDeck(), 42)
}

// spawn instantiates a catalog card directly into a zone, discarding any
// triggers the placement would fire so tests start from a known quiet state.
// Listener registration and character state still happen.
func spawn(t *testing.T, state *battle.BattleState, player battle.PlayerName, name string, zone battle.Zone) battle.CardID {
	t.Helper()
	def, err := decks.Lookup(name)
	require.NoError(t, err)
	list, ok := state.Abilities.Lookup(name)
	require.True(t, ok, "card %q missing from ability cache", name)
	id := state.Cards.CreateCard(player, battle.ZoneDeck, battle.CreatedCard{
		Definition:  def,
		Cost:        def.Cost,
		Spark:       def.Spark,
		Type:        def.Type,
		Fast:        def.Fast,
		Restriction: list.Restriction,
	})
	if zone != battle.ZoneDeck {
		MoveCard(state, battle.GameSource(player), id, zone)
	}
	drainQuietly(state)
	return id
}

// drainQuietly discards queued triggers and pending effects left over from
// test setup.
func drainQuietly(state *battle.BattleState) {
	for {
		if _, ok := state.Triggers.Pop(); !ok {
			break
		}
	}
	state.Pending = nil
}

// giveEnergy sets a player's available energy directly.
func giveEnergy(state *battle.BattleState, player battle.PlayerName, amount battle.Energy) {
	state.Player(player).Energy = amount
}
