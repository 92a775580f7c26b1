package battle

import "github.com/voidbound/battle-server-go/internal/ability"

// AbilityNumber indexes an ability within its card definition.
type AbilityNumber int

// CanPlayRestrictionKind names the fast-path play legality checks.
type CanPlayRestrictionKind int

const (
	// RestrictionNone means no fast path exists; callers must run the
	// full legal-target/additional-cost walk.
	RestrictionNone CanPlayRestrictionKind = iota
	// RestrictionUnrestricted means the card is always playable once
	// affordable.
	RestrictionUnrestricted
	// RestrictionEnemyCharacterOnBattlefield requires at least one enemy
	// character in play.
	RestrictionEnemyCharacterOnBattlefield
	// RestrictionEnemyCardOnStack requires any enemy card on the stack.
	RestrictionEnemyCardOnStack
	// RestrictionEnemyEventCardOnStack requires an enemy event card on
	// the stack.
	RestrictionEnemyEventCardOnStack
	// RestrictionEnemyCharacterCardOnStack requires an enemy character
	// card on the stack.
	RestrictionEnemyCharacterCardOnStack
	// RestrictionAdditionalEnergyAvailable requires energy beyond the
	// card's own cost by a fixed margin.
	RestrictionAdditionalEnergyAvailable
)

// CanPlayRestriction is a cheap numeric/tag precondition for playing a card,
// computed once per definition when the ability cache is built.
type CanPlayRestriction struct {
	Kind   CanPlayRestrictionKind
	Energy Energy
}

// AbilityData pairs an ability with its index in the definition.
type AbilityData[A any] struct {
	Number  AbilityNumber
	Ability A
}

// AbilityList is the precomputed, immutable-after-build view of one card
// definition's abilities, bucketed by kind with derived lookup data.
type AbilityList struct {
	EventAbilities     []AbilityData[*ability.EventAbility]
	StaticAbilities    []AbilityData[*ability.StaticAbility]
	ActivatedAbilities []AbilityData[*ability.ActivatedAbility]
	TriggeredAbilities []AbilityData[*ability.TriggeredAbility]

	// Restriction is the merged fast-path play check for the whole list.
	Restriction CanPlayRestriction
	// BattlefieldTriggers are the trigger names this card subscribes to
	// while on the battlefield.
	BattlefieldTriggers []TriggerName
	// StackTriggers are the trigger names this card subscribes to while
	// on the stack.
	StackTriggers []TriggerName
	// HasPlayFromVoid is set when any static ability allows playing the
	// card out of the void.
	HasPlayFromVoid bool
}

// AbilityCache maps card definition names to their built ability lists. It is
// built once per deck composition at battle start and never mutated after.
type AbilityCache struct {
	lists map[string]*AbilityList
}

// BuildAbilityCache builds the cache for every supplied definition.
func BuildAbilityCache(definitions []*CardDefinition) *AbilityCache {
	cache := &AbilityCache{lists: make(map[string]*AbilityList, len(definitions))}
	for _, def := range definitions {
		cache.lists[def.Name] = buildAbilityList(def)
	}
	return cache
}

// Lookup returns the ability list for a definition name. The second return
// is false when the definition was not part of the battle's decks.
func (c *AbilityCache) Lookup(name string) (*AbilityList, bool) {
	list, ok := c.lists[name]
	return list, ok
}

func buildAbilityList(def *CardDefinition) *AbilityList {
	list := &AbilityList{}
	for i := range def.Abilities {
		a := &def.Abilities[i]
		number := AbilityNumber(i)
		switch a.Kind {
		case ability.KindEvent:
			list.EventAbilities = append(list.EventAbilities,
				AbilityData[*ability.EventAbility]{Number: number, Ability: a.Event})
		case ability.KindStatic:
			list.StaticAbilities = append(list.StaticAbilities,
				AbilityData[*ability.StaticAbility]{Number: number, Ability: a.Static})
		case ability.KindActivated:
			list.ActivatedAbilities = append(list.ActivatedAbilities,
				AbilityData[*ability.ActivatedAbility]{Number: number, Ability: a.Activated})
		case ability.KindTriggered:
			list.TriggeredAbilities = append(list.TriggeredAbilities,
				AbilityData[*ability.TriggeredAbility]{Number: number, Ability: a.Triggered})
		}
	}

	list.Restriction = mergeRestrictions(
		eventTargetRestriction(list),
		additionalCostRestriction(list),
	)
	list.BattlefieldTriggers = battlefieldTriggers(list)
	list.StackTriggers = stackTriggers(list)
	list.HasPlayFromVoid = hasPlayFromVoid(list)
	return list
}

// mergeRestrictions combines per-concern restrictions into one fast path.
// Any absent component, or more than one specific restriction, disables the
// fast path entirely rather than risking a wrong cheap answer.
func mergeRestrictions(restrictions ...CanPlayRestriction) CanPlayRestriction {
	specific := make([]CanPlayRestriction, 0, len(restrictions))
	for _, r := range restrictions {
		switch r.Kind {
		case RestrictionNone:
			return CanPlayRestriction{Kind: RestrictionNone}
		case RestrictionUnrestricted:
		default:
			specific = append(specific, r)
		}
	}
	switch len(specific) {
	case 0:
		return CanPlayRestriction{Kind: RestrictionUnrestricted}
	case 1:
		return specific[0]
	default:
		return CanPlayRestriction{Kind: RestrictionNone}
	}
}

func eventTargetRestriction(list *AbilityList) CanPlayRestriction {
	var predicates []targetedEffect
	for _, data := range list.EventAbilities {
		predicates = append(predicates, targetedEffects(data.Ability.Effect)...)
	}
	switch len(predicates) {
	case 0:
		return CanPlayRestriction{Kind: RestrictionUnrestricted}
	case 1:
	default:
		return CanPlayRestriction{Kind: RestrictionNone}
	}

	te := predicates[0]
	if te.predicate.Owner != ability.OwnerEnemy {
		return CanPlayRestriction{Kind: RestrictionNone}
	}
	switch te.shape {
	case ability.TargetCharacter:
		if te.predicate.Filter == ability.FilterCharacter || te.predicate.Filter == ability.FilterAnyCard {
			return CanPlayRestriction{Kind: RestrictionEnemyCharacterOnBattlefield}
		}
	case ability.TargetStackCard:
		switch te.predicate.Filter {
		case ability.FilterAnyCard:
			return CanPlayRestriction{Kind: RestrictionEnemyCardOnStack}
		case ability.FilterEvent:
			return CanPlayRestriction{Kind: RestrictionEnemyEventCardOnStack}
		case ability.FilterCharacter:
			return CanPlayRestriction{Kind: RestrictionEnemyCharacterCardOnStack}
		}
	}
	return CanPlayRestriction{Kind: RestrictionNone}
}

type targetedEffect struct {
	shape     ability.TargetShape
	predicate ability.Predicate
}

func targetedEffects(effect ability.Effect) []targetedEffect {
	var out []targetedEffect
	collect := func(e ability.StandardEffect) {
		if shape, ok := e.RequiresTarget(); ok && shape != ability.TargetVoidCards {
			out = append(out, targetedEffect{shape: shape, predicate: e.Target})
		}
	}
	switch effect.Kind {
	case ability.EffectStandard:
		collect(effect.Standard)
	case ability.EffectList:
		for _, e := range effect.List {
			collect(e)
		}
	}
	return out
}

func additionalCostRestriction(list *AbilityList) CanPlayRestriction {
	var costs []ability.Cost
	for _, data := range list.EventAbilities {
		if data.Ability.AdditionalCost.Kind != ability.CostNone {
			costs = append(costs, data.Ability.AdditionalCost)
		}
	}
	for _, data := range list.ActivatedAbilities {
		costs = append(costs, data.Ability.Costs...)
	}

	switch len(costs) {
	case 0:
		return CanPlayRestriction{Kind: RestrictionUnrestricted}
	case 1:
	default:
		return CanPlayRestriction{Kind: RestrictionNone}
	}
	if costs[0].Kind == ability.CostSpendOneOrMoreEnergy {
		return CanPlayRestriction{Kind: RestrictionAdditionalEnergyAvailable, Energy: 1}
	}
	return CanPlayRestriction{Kind: RestrictionNone}
}

func battlefieldTriggers(list *AbilityList) []TriggerName {
	seen := map[TriggerName]bool{}
	var names []TriggerName
	add := func(n TriggerName) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, data := range list.TriggeredAbilities {
		switch data.Ability.Trigger.Kind {
		case ability.TriggerMaterialized, ability.TriggerSelfMaterialized:
			add(TriggerMaterialized)
		case ability.TriggerDissolved:
			add(TriggerDissolved)
		case ability.TriggerDiscarded:
			add(TriggerDiscarded)
		case ability.TriggerDrewAllCardsInCopy:
			add(TriggerDrewAllCardsInCopy)
		case ability.TriggerPlayedCardFromVoid:
			// Watched from the stack, not the battlefield.
		}
	}
	return names
}

func stackTriggers(list *AbilityList) []TriggerName {
	for _, data := range list.StaticAbilities {
		if data.Ability.Kind == ability.StaticPlayFromVoid {
			return []TriggerName{TriggerPlayedCardFromVoid}
		}
	}
	return nil
}

func hasPlayFromVoid(list *AbilityList) bool {
	for _, data := range list.StaticAbilities {
		switch data.Ability.Kind {
		case ability.StaticPlayFromVoid, ability.StaticPlayOnlyFromVoid:
			return true
		}
	}
	return false
}
