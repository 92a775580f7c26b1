package battle

import "fmt"

// PlayerName identifies one of the two players in a battle.
type PlayerName int

const (
	// PlayerOne is the first player.
	PlayerOne PlayerName = iota
	// PlayerTwo is the second player.
	PlayerTwo
)

// Opponent returns the other player.
func (p PlayerName) Opponent() PlayerName {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// String returns the string representation of the player name.
func (p PlayerName) String() string {
	switch p {
	case PlayerOne:
		return "ONE"
	case PlayerTwo:
		return "TWO"
	default:
		return fmt.Sprintf("PlayerName(%d)", int(p))
	}
}

// Energy is the resource spent to play cards.
type Energy int

// Spark is a character's power statistic.
type Spark int

// Points is a player's score.
type Points int

// CardID is the permanent flat identity of a card within one battle. It is
// assigned at instantiation and never reused or reassigned while the battle
// is active, regardless of zone changes.
type CardID int

// ObjectID is a presentation-stable handle for "the same visible object".
// Unlike CardID it changes on every zone move, which lets a display layer
// distinguish successive incarnations of one card for animation continuity.
type ObjectID int

// CardIDType is the constraint satisfied by CardID and every zone-typed
// wrapper around it.
type CardIDType interface {
	~int
}

// Zone-typed identifiers. Each zone has its own defined type over CardID so
// that, for example, a hand-card reference cannot be passed where a
// battlefield reference is required. Forward conversions (CardID to a zone
// type) are only made by the movement engine when a card actually enters the
// zone; conversions back to the flat id are always available.

// DeckCardID references a card while it is in a deck.
type DeckCardID CardID

// HandCardID references a card while it is in a hand.
type HandCardID CardID

// CharacterID references a card while it is on the battlefield.
type CharacterID CardID

// VoidCardID references a card while it is in the void.
type VoidCardID CardID

// StackCardID references a card while it is on the stack.
type StackCardID CardID

// CardID returns the flat identity underlying a deck-zone reference.
func (id DeckCardID) CardID() CardID { return CardID(id) }

// CardID returns the flat identity underlying a hand-zone reference.
func (id HandCardID) CardID() CardID { return CardID(id) }

// CardID returns the flat identity underlying a battlefield reference.
func (id CharacterID) CardID() CardID { return CardID(id) }

// CardID returns the flat identity underlying a void-zone reference.
func (id VoidCardID) CardID() CardID { return CardID(id) }

// CardID returns the flat identity underlying a stack reference.
func (id StackCardID) CardID() CardID { return CardID(id) }

// Zone names a location a card can occupy.
type Zone int

const (
	// ZoneDeck is a player's deck.
	ZoneDeck Zone = iota
	// ZoneHand is a player's hand.
	ZoneHand
	// ZoneBattlefield holds characters in play.
	ZoneBattlefield
	// ZoneVoid is a player's discard zone.
	ZoneVoid
	// ZoneStack holds cards awaiting resolution.
	ZoneStack
	// ZoneBanished holds cards removed from the battle.
	ZoneBanished
)

// String returns the string representation of the zone.
func (z Zone) String() string {
	switch z {
	case ZoneDeck:
		return "DECK"
	case ZoneHand:
		return "HAND"
	case ZoneBattlefield:
		return "BATTLEFIELD"
	case ZoneVoid:
		return "VOID"
	case ZoneStack:
		return "STACK"
	case ZoneBanished:
		return "BANISHED"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}
