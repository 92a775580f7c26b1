package battle

import "github.com/voidbound/battle-server-go/internal/ability"

// TargetsKind discriminates EffectTargets variants.
type TargetsKind int

const (
	// TargetsNone means no targets have been chosen yet.
	TargetsNone TargetsKind = iota
	// TargetsCharacter is a single battlefield character.
	TargetsCharacter
	// TargetsStackCard is a single card on the stack.
	TargetsStackCard
	// TargetsVoidCards is a set of void cards.
	TargetsVoidCards
)

// EffectTargets is the target value attached to a stack item or pending
// effect, populated incrementally as targets are chosen. Each effect shape
// has a fixed target arity and type, so this is a variant rather than a
// generic collection. The void variant is a sorted set: submission order
// never affects the stored value.
type EffectTargets struct {
	Kind      TargetsKind
	Character CharacterID
	StackCard StackCardID
	VoidCards CardSet[VoidCardID]
}

// Clone returns an independent copy of the targets.
func (t *EffectTargets) Clone() *EffectTargets {
	if t == nil {
		return nil
	}
	clone := *t
	clone.VoidCards = t.VoidCards.Clone()
	return &clone
}

// StackItem is a card on the resolution stack together with its chosen
// targets and resolution flags.
type StackItem struct {
	Card       StackCardID
	Controller PlayerName
	Targets    *EffectTargets
	// Negated marks an item that resolves with no effect.
	Negated bool
	// FromVoid records that the card was played out of the void.
	FromVoid bool
	// AdditionalEnergyPaid is the chosen amount for spend-one-or-more
	// energy costs.
	AdditionalEnergyPaid Energy
}

// Clone returns an independent copy of the stack item.
func (s *StackItem) Clone() *StackItem {
	clone := *s
	clone.Targets = s.Targets.Clone()
	return &clone
}

// PendingEffect is an effect waiting to execute, attached to its source card
// and controller. Effects requiring targets suspend here until the prompt
// queue supplies them.
type PendingEffect struct {
	Source EffectSource
	Effect ability.Effect
	// NextIndex is the resume position within a list effect.
	NextIndex int
	Targets   *EffectTargets
}

// Clone returns an independent copy of the pending effect.
func (p *PendingEffect) Clone() *PendingEffect {
	clone := *p
	clone.Targets = p.Targets.Clone()
	return &clone
}

// PromptKind names the shapes of interactive requests.
type PromptKind int

const (
	// PromptChooseCharacter asks for a single battlefield character.
	PromptChooseCharacter PromptKind = iota
	// PromptChooseStackCard asks for a single card on the stack.
	PromptChooseStackCard
	// PromptChooseVoidCards asks for up to MaximumSelection void cards.
	PromptChooseVoidCards
)

// String returns the string representation of the prompt kind.
func (k PromptKind) String() string {
	switch k {
	case PromptChooseCharacter:
		return "CHOOSE_CHARACTER"
	case PromptChooseStackCard:
		return "CHOOSE_STACK_CARD"
	case PromptChooseVoidCards:
		return "CHOOSE_VOID_CARDS"
	default:
		return "UNKNOWN"
	}
}

// OnSelectedKind names where a prompt's answer is written back.
type OnSelectedKind int

const (
	// SelectedAddStackTargets appends the choice to a stack item's
	// target set.
	SelectedAddStackTargets OnSelectedKind = iota
	// SelectedAddPendingEffectTargets appends the choice to a pending
	// effect's target set, by index.
	SelectedAddPendingEffectTargets
)

// OnSelected is the stored continuation of a prompt: a tag identifying where
// the eventual selection should be applied. These references are produced by
// the engine only; a dangling one signals an internal ordering bug.
type OnSelected struct {
	Kind OnSelectedKind
	// StackCard identifies the stack item for SelectedAddStackTargets.
	StackCard StackCardID
	// EffectIndex identifies the pending effect for
	// SelectedAddPendingEffectTargets.
	EffectIndex int
}

// Prompt is a queued request for an external player decision. The front
// prompt gates all further player-initiated mutation until it is resolved.
type Prompt struct {
	Kind   PromptKind
	Player PlayerName
	Source EffectSource

	// ValidCharacters holds the selectable characters for
	// PromptChooseCharacter.
	ValidCharacters CardSet[CharacterID]
	// ValidStackCards holds the selectable stack cards for
	// PromptChooseStackCard.
	ValidStackCards CardSet[StackCardID]
	// ValidVoidCards and Current hold the selectable and
	// currently-selected void cards for PromptChooseVoidCards.
	ValidVoidCards   CardSet[VoidCardID]
	Current          CardSet[VoidCardID]
	MaximumSelection int

	OnSelected OnSelected
}

// Clone returns an independent copy of the prompt.
func (p *Prompt) Clone() *Prompt {
	clone := *p
	clone.ValidCharacters = p.ValidCharacters.Clone()
	clone.ValidStackCards = p.ValidStackCards.Clone()
	clone.ValidVoidCards = p.ValidVoidCards.Clone()
	clone.Current = p.Current.Clone()
	return &clone
}
