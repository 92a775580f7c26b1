package battle

import "github.com/voidbound/battle-server-go/internal/ability"

// CardType is the broad category of a card.
type CardType int

const (
	// TypeCharacter cards materialize onto the battlefield.
	TypeCharacter CardType = iota
	// TypeEvent cards apply their effect and go to the void.
	TypeEvent
)

// String returns the string representation of the card type.
func (t CardType) String() string {
	if t == TypeCharacter {
		return "CHARACTER"
	}
	return "EVENT"
}

// CardDefinition is the already-resolved static description of a card,
// supplied by the external card-database layer. The engine uses its fields
// but does not validate them.
type CardDefinition struct {
	Name      string
	Type      CardType
	Cost      Energy
	Spark     Spark
	Fast      bool
	Abilities []ability.Ability
}

// CreatedCard is the immutable snapshot of a card's rules-relevant static
// facts, materialized when a deck copy or generated card is instantiated.
// Storing these per card means runtime queries never re-resolve ability data.
type CreatedCard struct {
	Definition *CardDefinition
	Cost       Energy
	Spark      Spark
	Type       CardType
	Fast       bool
	// Restriction is the precomputed fast-path play legality check from
	// the ability cache, or RestrictionNone when the card needs the full
	// legality walk.
	Restriction CanPlayRestriction
}

// CardState is the per-card record in the flat card store.
type CardState struct {
	ID      CardID
	Owner   PlayerName
	Zone    Zone
	Object  ObjectID
	Created CreatedCard
	// RevealedToOpponent is set when a normally-hidden card has been shown
	// to the other player (e.g. returned from void to hand).
	RevealedToOpponent bool
}

// CharacterState is the mutable battlefield-only state of a character.
type CharacterState struct {
	Spark Spark
}
