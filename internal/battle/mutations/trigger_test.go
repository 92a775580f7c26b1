package mutations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/decks"
)

func TestSelfMaterializedTriggerDraws(t *testing.T) {
	state := newBattle(t)
	for i := 0; i < 3; i++ {
		spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneDeck)
	}
	herald := spawn(t, state, battle.PlayerOne, "Dawn Herald", battle.ZoneHand)
	giveEnergy(state, battle.PlayerOne, 2)

	PlayCardFromHand(state, battle.PlayerOne, battle.HandCardID(herald))
	ResolveTopOfStack(state, battle.PlayerOne.Opponent())

	assert.True(t, state.Cards.Contains(battle.PlayerOne, herald, battle.ZoneBattlefield))
	assert.Equal(t, 1, state.Cards.Hand(battle.PlayerOne).Len(), "materialize should draw one card")
}

func TestMaterializedTriggerDoesNotFireForOtherOwner(t *testing.T) {
	state := newBattle(t)
	spawn(t, state, battle.PlayerOne, "Spark Shrine", battle.ZoneBattlefield)

	// An enemy character materializing does not match the shrine's
	// own-character subject predicate.
	recruit := spawn(t, state, battle.PlayerTwo, "Ember Recruit", battle.ZoneHand)
	giveEnergy(state, battle.PlayerTwo, 1)
	PlayCardFromHand(state, battle.PlayerTwo, battle.HandCardID(recruit))
	ResolveTopOfStack(state, battle.PlayerOne)

	assert.Nil(t, state.ActivePrompt())
}

func TestOncePerTurnTriggerGating(t *testing.T) {
	state := newBattle(t)
	shrine := spawn(t, state, battle.PlayerOne, "Spark Shrine", battle.ZoneBattlefield)
	giveEnergy(state, battle.PlayerOne, 4)

	first := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	PlayCardFromHand(state, battle.PlayerOne, battle.HandCardID(first))
	ResolveTopOfStack(state, battle.PlayerTwo)

	prompt := state.ActivePrompt()
	require.NotNil(t, prompt, "shrine should ask for a spark target")
	require.Equal(t, battle.PromptChooseCharacter, prompt.Kind)
	SelectCharacter(state, battle.PlayerOne, battle.CharacterID(shrine))
	cs := state.Cards.CharacterState(battle.PlayerOne, battle.CharacterID(shrine))
	require.NotNil(t, cs)
	assert.Equal(t, battle.Spark(4), cs.Spark)

	// Second materialization in the same turn is gated off.
	second := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	PlayCardFromHand(state, battle.PlayerOne, battle.HandCardID(second))
	ResolveTopOfStack(state, battle.PlayerTwo)
	assert.Nil(t, state.ActivePrompt())
}

func TestTriggerCascadeRunsAfterCurrentEffect(t *testing.T) {
	state := newBattle(t)
	tender := spawn(t, state, battle.PlayerOne, "Grave Tender", battle.ZoneBattlefield)
	victim := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneBattlefield)
	_ = tender
	p := state.Player(battle.PlayerOne)
	p.Energy = 0

	DissolveCharacter(state, battle.GameSource(battle.PlayerTwo), battle.CharacterID(victim))
	Settle(state)

	assert.True(t, state.Cards.Contains(battle.PlayerOne, victim, battle.ZoneVoid))
	assert.Equal(t, battle.Energy(1), p.Energy, "grave tender should convert the loss to energy")
}

func TestGrantedAbilityExpiresAtEndOfTurn(t *testing.T) {
	state := newBattle(t)
	recruit := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneBattlefield)
	granted := &ability.TriggeredAbility{
		Trigger: ability.TriggerCondition{Kind: ability.TriggerDiscarded},
		Effect:  ability.Single(ability.StandardEffect{Kind: ability.GainEnergy, Amount: 2}),
	}
	GrantUntilEndOfTurn(state, recruit, 0, granted)
	victim := spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	_ = victim
	p := state.Player(battle.PlayerOne)
	p.Energy = 0

	DiscardRandomCards(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, 1)
	Settle(state)
	assert.Equal(t, battle.Energy(2), p.Energy)

	EndTurn(state, state.Turn.ActivePlayer)
	assert.Empty(t, state.Granted)

	spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	DiscardRandomCards(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, 1)
	Settle(state)
	assert.Equal(t, battle.Energy(2), p.Energy, "expired grant must not fire again")
}

func TestPrintedUntilEndOfTurnTriggerExpires(t *testing.T) {
	watcher := &battle.CardDefinition{
		Name: "Fleeting Watcher",
		Type: battle.TypeCharacter,
		Cost: 1,
		Abilities: []ability.Ability{{
			Kind: ability.KindTriggered,
			Triggered: &ability.TriggeredAbility{
				Trigger: ability.TriggerCondition{Kind: ability.TriggerDiscarded},
				Effect:  ability.Single(ability.StandardEffect{Kind: ability.GainEnergy, Amount: 2}),
				Options: ability.TriggeredAbilityOptions{UntilEndOfTurn: true},
			},
		}},
	}
	deck := append(decks.DefaultDeck(), watcher)
	state := battle.New(deck, decks.DefaultDeck(), 42)

	list, ok := state.Abilities.Lookup(watcher.Name)
	require.True(t, ok)
	id := state.Cards.CreateCard(battle.PlayerOne, battle.ZoneDeck, battle.CreatedCard{
		Definition:  watcher,
		Cost:        watcher.Cost,
		Type:        watcher.Type,
		Restriction: list.Restriction,
	})
	MoveCard(state, battle.GameSource(battle.PlayerOne), id, battle.ZoneBattlefield)
	drainQuietly(state)
	require.Len(t, state.Granted, 1, "arrival should grant the turn-limited trigger")

	p := state.Player(battle.PlayerOne)
	p.Energy = 0
	spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	DiscardRandomCards(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, 1)
	Settle(state)
	assert.Equal(t, battle.Energy(2), p.Energy, "trigger fires once in the arrival turn")

	EndTurn(state, state.Turn.ActivePlayer)
	assert.Empty(t, state.Granted)

	spawn(t, state, battle.PlayerOne, "Ember Recruit", battle.ZoneHand)
	DiscardRandomCards(state, battle.GameSource(battle.PlayerOne), battle.PlayerOne, 1)
	Settle(state)
	assert.Equal(t, battle.Energy(2), p.Energy, "watcher stays in play but its trigger has ended")
}
