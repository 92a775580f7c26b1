// Package decks provides the built-in card catalog and YAML deck list
// loading.
package decks

import (
	"fmt"
	"sync"

	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
)

var (
	catalogOnce sync.Once
	catalog     map[string]*battle.CardDefinition
)

// Catalog returns the built-in card definitions keyed by name. Definitions
// are immutable and shared.
func Catalog() map[string]*battle.CardDefinition {
	catalogOnce.Do(buildCatalog)
	return catalog
}

// Lookup returns a catalog definition by name.
func Lookup(name string) (*battle.CardDefinition, error) {
	if def, ok := Catalog()[name]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("unknown card %q", name)
}

// DefaultDeck returns the built-in starter deck.
func DefaultDeck() []*battle.CardDefinition {
	entries := []struct {
		name  string
		count int
	}{
		{"Ember Recruit", 3},
		{"Dawn Herald", 3},
		{"Spark Shrine", 2},
		{"Grave Tender", 2},
		{"Archive Keeper", 1},
		{"Void Cultist", 2},
		{"Revenant", 1},
		{"Flame Bolt", 3},
		{"Null Wave", 2},
		{"Energy Surge", 2},
		{"Frenzied Vision", 2},
		{"Grave Call", 1},
		{"Twilight Reveler", 1},
	}
	var deck []*battle.CardDefinition
	for _, entry := range entries {
		def, err := Lookup(entry.name)
		if err != nil {
			panic(err)
		}
		for i := 0; i < entry.count; i++ {
			deck = append(deck, def)
		}
	}
	return deck
}

func buildCatalog() {
	definitions := []*battle.CardDefinition{
		{
			Name:  "Ember Recruit",
			Type:  battle.TypeCharacter,
			Cost:  1,
			Spark: 1,
		},
		{
			Name:  "Dawn Herald",
			Type:  battle.TypeCharacter,
			Cost:  2,
			Spark: 1,
			Abilities: []ability.Ability{
				triggered(ability.TriggerCondition{Kind: ability.TriggerSelfMaterialized},
					ability.Single(ability.StandardEffect{Kind: ability.DrawCards, Count: 1}),
					ability.TriggeredAbilityOptions{}),
			},
		},
		{
			Name:  "Spark Shrine",
			Type:  battle.TypeCharacter,
			Cost:  4,
			Spark: 3,
			Abilities: []ability.Ability{
				triggered(
					ability.TriggerCondition{
						Kind:    ability.TriggerMaterialized,
						Subject: ability.Predicate{Owner: ability.OwnerYour, Filter: ability.FilterCharacter},
					},
					ability.Single(ability.StandardEffect{
						Kind:   ability.GainSparkToTarget,
						Amount: 1,
						Target: ability.Predicate{Owner: ability.OwnerYour, Filter: ability.FilterCharacter},
					}),
					ability.TriggeredAbilityOptions{OncePerTurn: true}),
			},
		},
		{
			Name:  "Grave Tender",
			Type:  battle.TypeCharacter,
			Cost:  3,
			Spark: 1,
			Abilities: []ability.Ability{
				triggered(
					ability.TriggerCondition{
						Kind:    ability.TriggerDissolved,
						Subject: ability.Predicate{Owner: ability.OwnerYour, Filter: ability.FilterCharacter},
					},
					ability.Single(ability.StandardEffect{Kind: ability.GainEnergy, Amount: 1}),
					ability.TriggeredAbilityOptions{OncePerTurn: true}),
			},
		},
		{
			Name:  "Archive Keeper",
			Type:  battle.TypeCharacter,
			Cost:  3,
			Spark: 2,
			Abilities: []ability.Ability{
				triggered(ability.TriggerCondition{Kind: ability.TriggerDrewAllCardsInCopy},
					ability.Single(ability.StandardEffect{Kind: ability.GainPoints, Amount: 1}),
					ability.TriggeredAbilityOptions{}),
			},
		},
		{
			Name:  "Void Cultist",
			Type:  battle.TypeCharacter,
			Cost:  2,
			Spark: 2,
			Abilities: []ability.Ability{
				{
					Kind:   ability.KindStatic,
					Static: &ability.StaticAbility{Kind: ability.StaticPlayFromVoid, EnergyCost: 4},
				},
			},
		},
		{
			Name:  "Revenant",
			Type:  battle.TypeCharacter,
			Cost:  3,
			Spark: 4,
			Abilities: []ability.Ability{
				{
					Kind:   ability.KindStatic,
					Static: &ability.StaticAbility{Kind: ability.StaticPlayOnlyFromVoid, EnergyCost: -1},
				},
			},
		},
		{
			Name: "Flame Bolt",
			Type: battle.TypeEvent,
			Cost: 2,
			Fast: true,
			Abilities: []ability.Ability{
				event(ability.Single(ability.StandardEffect{
					Kind:   ability.DissolveCharacter,
					Target: ability.Predicate{Owner: ability.OwnerEnemy, Filter: ability.FilterCharacter},
				}), ability.Cost{}),
			},
		},
		{
			Name: "Null Wave",
			Type: battle.TypeEvent,
			Cost: 2,
			Fast: true,
			Abilities: []ability.Ability{
				event(ability.Single(ability.StandardEffect{
					Kind:   ability.NegateStackCard,
					Target: ability.Predicate{Owner: ability.OwnerEnemy, Filter: ability.FilterAnyCard},
				}), ability.Cost{}),
			},
		},
		{
			Name: "Energy Surge",
			Type: battle.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				event(ability.List(
					ability.StandardEffect{Kind: ability.GainEnergy, Amount: 2},
					ability.StandardEffect{Kind: ability.DrawCards, Count: 1},
				), ability.Cost{}),
			},
		},
		{
			Name: "Frenzied Vision",
			Type: battle.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				event(ability.List(
					ability.StandardEffect{Kind: ability.DrawCards, Count: 2},
					ability.StandardEffect{Kind: ability.DiscardCards, Count: 1},
				), ability.Cost{}),
			},
		},
		{
			Name: "Grave Call",
			Type: battle.TypeEvent,
			Cost: 2,
			Abilities: []ability.Ability{
				event(ability.Single(ability.StandardEffect{
					Kind:   ability.ReturnVoidCardsToHand,
					Count:  2,
					Target: ability.Predicate{Owner: ability.OwnerYour, Filter: ability.FilterCharacter},
				}), ability.Cost{}),
			},
		},
		{
			Name: "Twilight Reveler",
			Type: battle.TypeEvent,
			Cost: 3,
			Abilities: []ability.Ability{
				event(ability.Single(ability.StandardEffect{Kind: ability.GainPoints, Amount: 2}),
					ability.Cost{Kind: ability.CostSpendOneOrMoreEnergy}),
			},
		},
	}
	catalog = make(map[string]*battle.CardDefinition, len(definitions))
	for _, def := range definitions {
		catalog[def.Name] = def
	}
}

func triggered(condition ability.TriggerCondition, effect ability.Effect, options ability.TriggeredAbilityOptions) ability.Ability {
	return ability.Ability{
		Kind: ability.KindTriggered,
		Triggered: &ability.TriggeredAbility{
			Trigger: condition,
			Effect:  effect,
			Options: options,
		},
	}
}

func event(effect ability.Effect, additionalCost ability.Cost) ability.Ability {
	return ability.Ability{
		Kind:  ability.KindEvent,
		Event: &ability.EventAbility{Effect: effect, AdditionalCost: additionalCost},
	}
}
