package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidbound/battle-server-go/internal/ability"
)

func eventDefinition(name string, effect ability.Effect, cost ability.Cost) *CardDefinition {
	return &CardDefinition{
		Name: name,
		Type: TypeEvent,
		Cost: 2,
		Abilities: []ability.Ability{{
			Kind:  ability.KindEvent,
			Event: &ability.EventAbility{Effect: effect, AdditionalCost: cost},
		}},
	}
}

func TestRestrictionForUntargetedEvent(t *testing.T) {
	def := eventDefinition("Surge",
		ability.Single(ability.StandardEffect{Kind: ability.GainEnergy, Amount: 2}),
		ability.Cost{})
	cache := BuildAbilityCache([]*CardDefinition{def})

	list, ok := cache.Lookup("Surge")
	require.True(t, ok)
	assert.Equal(t, RestrictionUnrestricted, list.Restriction.Kind)
}

func TestRestrictionForEnemyCharacterTarget(t *testing.T) {
	def := eventDefinition("Bolt",
		ability.Single(ability.StandardEffect{
			Kind:   ability.DissolveCharacter,
			Target: ability.Predicate{Owner: ability.OwnerEnemy, Filter: ability.FilterCharacter},
		}),
		ability.Cost{})
	cache := BuildAbilityCache([]*CardDefinition{def})

	list, _ := cache.Lookup("Bolt")
	assert.Equal(t, RestrictionEnemyCharacterOnBattlefield, list.Restriction.Kind)
}

func TestRestrictionForEnemyStackTargetByType(t *testing.T) {
	cases := []struct {
		filter ability.CardFilter
		want   CanPlayRestrictionKind
	}{
		{ability.FilterAnyCard, RestrictionEnemyCardOnStack},
		{ability.FilterEvent, RestrictionEnemyEventCardOnStack},
		{ability.FilterCharacter, RestrictionEnemyCharacterCardOnStack},
	}
	for _, tc := range cases {
		def := eventDefinition("Negate",
			ability.Single(ability.StandardEffect{
				Kind:   ability.NegateStackCard,
				Target: ability.Predicate{Owner: ability.OwnerEnemy, Filter: tc.filter},
			}),
			ability.Cost{})
		cache := BuildAbilityCache([]*CardDefinition{def})
		list, _ := cache.Lookup("Negate")
		assert.Equal(t, tc.want, list.Restriction.Kind)
	}
}

func TestRestrictionForAdditionalEnergyCost(t *testing.T) {
	def := eventDefinition("Reveler",
		ability.Single(ability.StandardEffect{Kind: ability.GainPoints, Amount: 2}),
		ability.Cost{Kind: ability.CostSpendOneOrMoreEnergy})
	cache := BuildAbilityCache([]*CardDefinition{def})

	list, _ := cache.Lookup("Reveler")
	assert.Equal(t, RestrictionAdditionalEnergyAvailable, list.Restriction.Kind)
	assert.Equal(t, Energy(1), list.Restriction.Energy)
}

func TestRestrictionDisabledWhenAmbiguous(t *testing.T) {
	// Two specific restrictions cannot be merged into one fast path.
	def := eventDefinition("Tangle",
		ability.List(
			ability.StandardEffect{
				Kind:   ability.DissolveCharacter,
				Target: ability.Predicate{Owner: ability.OwnerEnemy, Filter: ability.FilterCharacter},
			},
			ability.StandardEffect{
				Kind:   ability.NegateStackCard,
				Target: ability.Predicate{Owner: ability.OwnerEnemy, Filter: ability.FilterAnyCard},
			},
		),
		ability.Cost{})
	cache := BuildAbilityCache([]*CardDefinition{def})

	list, _ := cache.Lookup("Tangle")
	assert.Equal(t, RestrictionNone, list.Restriction.Kind)
}

func TestTriggerSubscriptionsByZone(t *testing.T) {
	def := &CardDefinition{
		Name:  "Watcher",
		Type:  TypeCharacter,
		Cost:  3,
		Spark: 2,
		Abilities: []ability.Ability{
			{
				Kind: ability.KindTriggered,
				Triggered: &ability.TriggeredAbility{
					Trigger: ability.TriggerCondition{Kind: ability.TriggerDissolved},
					Effect:  ability.Single(ability.StandardEffect{Kind: ability.DrawCards, Count: 1}),
				},
			},
			{
				Kind:   ability.KindStatic,
				Static: &ability.StaticAbility{Kind: ability.StaticPlayFromVoid, EnergyCost: 5},
			},
		},
	}
	cache := BuildAbilityCache([]*CardDefinition{def})

	list, _ := cache.Lookup("Watcher")
	assert.Equal(t, []TriggerName{TriggerDissolved}, list.BattlefieldTriggers)
	assert.Equal(t, []TriggerName{TriggerPlayedCardFromVoid}, list.StackTriggers)
	assert.True(t, list.HasPlayFromVoid)
}
