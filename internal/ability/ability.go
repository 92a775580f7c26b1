// Package ability defines the structured ability/effect AST the rules engine
// consumes. Instances are produced by the external rules-text parser and are
// treated as opaque, already-validated values: the engine never re-parses text
// and never mutates an Ability after it has been attached to a card definition.
package ability

// Kind discriminates the top-level ability variants.
type Kind int

const (
	// KindEvent is a one-shot ability applied when an event card resolves.
	KindEvent Kind = iota
	// KindStatic is a continuously-true ability (e.g. playable from void).
	KindStatic
	// KindActivated is an ability the controller invokes by paying a cost.
	KindActivated
	// KindTriggered fires when a matching game event occurs.
	KindTriggered
)

// Ability is one parsed ability of a card definition. Exactly one of the
// variant fields is populated, according to Kind.
type Ability struct {
	Kind      Kind
	Event     *EventAbility
	Static    *StaticAbility
	Activated *ActivatedAbility
	Triggered *TriggeredAbility
}

// EventAbility is the effect of an event card, applied on resolution.
type EventAbility struct {
	Effect         Effect
	AdditionalCost Cost
}

// StaticKind discriminates static ability variants.
type StaticKind int

const (
	// StaticPlayFromVoid lets the card be played from the void for a cost.
	StaticPlayFromVoid StaticKind = iota
	// StaticPlayOnlyFromVoid restricts play to the void zone.
	StaticPlayOnlyFromVoid
)

// StaticAbility is a continuously-applied ability.
type StaticAbility struct {
	Kind StaticKind
	// EnergyCost is the play cost for StaticPlayFromVoid. Negative means
	// "use the card's printed cost".
	EnergyCost int
}

// ActivatedAbility is an ability invoked explicitly by its controller.
type ActivatedAbility struct {
	Costs  []Cost
	Effect Effect
}

// TriggeredAbility pairs a trigger condition with an effect. Options gate how
// often the ability may fire; the gating counters live in battle turn state,
// never here.
type TriggeredAbility struct {
	Trigger TriggerCondition
	Effect  Effect
	Options TriggeredAbilityOptions
}

// TriggeredAbilityOptions adjusts triggered ability scheduling.
type TriggeredAbilityOptions struct {
	OncePerTurn    bool
	UntilEndOfTurn bool
}

// TriggerConditionKind names the game events a triggered ability can watch.
type TriggerConditionKind int

const (
	// TriggerMaterialized fires when a character enters the battlefield.
	TriggerMaterialized TriggerConditionKind = iota
	// TriggerSelfMaterialized fires only when the ability's own card
	// enters the battlefield.
	TriggerSelfMaterialized
	// TriggerDissolved fires when a character leaves the battlefield for
	// the void.
	TriggerDissolved
	// TriggerDiscarded fires when a card moves from hand to void.
	TriggerDiscarded
	// TriggerPlayedCardFromVoid fires when a card is played out of the void.
	TriggerPlayedCardFromVoid
	// TriggerDrewAllCardsInCopy fires when a player exhausts a full deck
	// copy and a fresh one is recycled in.
	TriggerDrewAllCardsInCopy
)

// TriggerCondition is the watched event plus an optional subject filter.
type TriggerCondition struct {
	Kind TriggerConditionKind
	// Subject filters which cards satisfy the condition. Zero value
	// matches anything.
	Subject Predicate
}

// EffectKind discriminates effect shapes.
type EffectKind int

const (
	// EffectStandard is a single standard effect.
	EffectStandard EffectKind = iota
	// EffectList is a sequence of standard effects applied in order.
	EffectList
)

// Effect is a single effect or an ordered list of effects.
type Effect struct {
	Kind     EffectKind
	Standard StandardEffect
	List     []StandardEffect
}

// Single wraps a standard effect as an Effect.
func Single(e StandardEffect) Effect {
	return Effect{Kind: EffectStandard, Standard: e}
}

// List wraps a sequence of standard effects as an Effect.
func List(effects ...StandardEffect) Effect {
	return Effect{Kind: EffectList, List: effects}
}

// StandardEffectKind names the concrete effect operations.
type StandardEffectKind int

const (
	// DrawCards draws Count cards for the controller.
	DrawCards StandardEffectKind = iota
	// GainEnergy grants Amount energy to the controller.
	GainEnergy
	// GainPoints scores Amount points for the controller.
	GainPoints
	// GainSpark adds Amount spark to a target character.
	GainSparkToTarget
	// DissolveCharacter moves a target character to its owner's void.
	DissolveCharacter
	// NegateStackCard negates a target card on the stack.
	NegateStackCard
	// ReturnVoidCardsToHand returns up to Count void cards to hand.
	ReturnVoidCardsToHand
	// DiscardCards discards Count random cards from the controller's hand.
	DiscardCards
)

// StandardEffect is one concrete effect operation. Target carries the
// predicate for targeted effects; Count/Amount carry magnitudes.
type StandardEffect struct {
	Kind   StandardEffectKind
	Count  int
	Amount int
	Target Predicate
}

// RequiresTarget reports whether resolving this effect needs a player-chosen
// target, and of which shape.
func (e StandardEffect) RequiresTarget() (TargetShape, bool) {
	switch e.Kind {
	case DissolveCharacter, GainSparkToTarget:
		return TargetCharacter, true
	case NegateStackCard:
		return TargetStackCard, true
	case ReturnVoidCardsToHand:
		return TargetVoidCards, true
	default:
		return 0, false
	}
}

// TargetShape is the fixed arity/type of a targeted effect.
type TargetShape int

const (
	// TargetCharacter selects a single battlefield character.
	TargetCharacter TargetShape = iota
	// TargetStackCard selects a single card on the stack.
	TargetStackCard
	// TargetVoidCards selects a bounded set of void cards.
	TargetVoidCards
)

// PredicateOwner scopes a predicate to a side of the battle.
type PredicateOwner int

const (
	// OwnerAny matches cards of either player.
	OwnerAny PredicateOwner = iota
	// OwnerEnemy matches cards controlled by the opponent.
	OwnerEnemy
	// OwnerYour matches cards controlled by the ability's controller.
	OwnerYour
)

// CardFilter narrows a predicate to a card category.
type CardFilter int

const (
	// FilterAnyCard matches every card.
	FilterAnyCard CardFilter = iota
	// FilterCharacter matches character cards.
	FilterCharacter
	// FilterEvent matches event cards.
	FilterEvent
)

// Predicate selects cards an effect may act on.
type Predicate struct {
	Owner  PredicateOwner
	Filter CardFilter
}

// CostKind names additional cost variants beyond a card's printed energy cost.
type CostKind int

const (
	// CostNone means no additional cost.
	CostNone CostKind = iota
	// CostEnergy is a flat additional energy payment.
	CostEnergy
	// CostSpendOneOrMoreEnergy lets the player choose an amount of at
	// least one extra energy.
	CostSpendOneOrMoreEnergy
)

// Cost is an additional cost descriptor attached to an ability.
type Cost struct {
	Kind   CostKind
	Energy int
}
