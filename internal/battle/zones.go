package battle

// CardMap is the flat card store plus zone membership for both players.
// Every card is a single record keyed by its permanent CardID; the zone
// collections hold zone-typed references into that store. Zone membership
// only changes through MoveCard, which the movement engine wraps.
type CardMap struct {
	cards   []*CardState
	players [2]*playerZones
	stack   []*StackItem
	nextObj ObjectID
}

type playerZones struct {
	hand        CardSet[HandCardID]
	void        CardSet[VoidCardID]
	battlefield CardSet[CharacterID]
	banished    CardSet[CardID]
	// deckKnown is the revealed top of the deck, front first. deckShuffled
	// holds the remaining cards in no particular order; draws from it are
	// random picks through the battle's seeded generator.
	deckKnown      []DeckCardID
	deckShuffled   CardSet[DeckCardID]
	characterState map[CharacterID]*CharacterState
}

func newPlayerZones() *playerZones {
	return &playerZones{characterState: make(map[CharacterID]*CharacterState)}
}

// NewCardMap returns an empty card store.
func NewCardMap() *CardMap {
	return &CardMap{players: [2]*playerZones{newPlayerZones(), newPlayerZones()}}
}

func (m *CardMap) zones(player PlayerName) *playerZones {
	return m.players[int(player)]
}

// CreateCard instantiates a card record in the given zone and returns its
// permanent flat identity.
func (m *CardMap) CreateCard(owner PlayerName, zone Zone, created CreatedCard) CardID {
	id := CardID(len(m.cards))
	state := &CardState{
		ID:      id,
		Owner:   owner,
		Zone:    zone,
		Object:  m.newObjectID(),
		Created: created,
	}
	m.cards = append(m.cards, state)
	m.addToZone(owner, id, zone)
	return id
}

// Card returns the record for a flat identity, or nil when the id was never
// assigned.
func (m *CardMap) Card(id CardID) *CardState {
	if int(id) < 0 || int(id) >= len(m.cards) {
		return nil
	}
	return m.cards[id]
}

// CardCount returns the number of instantiated cards.
func (m *CardMap) CardCount() int {
	return len(m.cards)
}

// Contains reports whether the card is currently in the given player's zone.
func (m *CardMap) Contains(player PlayerName, id CardID, zone Zone) bool {
	card := m.Card(id)
	return card != nil && card.Owner == player && card.Zone == zone
}

// MoveCard transfers a card to a new zone and returns its new object id.
// Callers go through the movement engine, which layers the enter/leave hooks
// and trigger bookkeeping on top of this raw transfer.
func (m *CardMap) MoveCard(id CardID, to Zone) ObjectID {
	card := m.Card(id)
	m.removeFromZone(card.Owner, id, card.Zone)
	m.addToZone(card.Owner, id, to)
	card.Zone = to
	card.Object = m.newObjectID()
	return card.Object
}

func (m *CardMap) newObjectID() ObjectID {
	m.nextObj++
	return m.nextObj
}

func (m *CardMap) addToZone(owner PlayerName, id CardID, zone Zone) {
	z := m.zones(owner)
	switch zone {
	case ZoneDeck:
		z.deckShuffled.Insert(DeckCardID(id))
	case ZoneHand:
		z.hand.Insert(HandCardID(id))
	case ZoneBattlefield:
		z.battlefield.Insert(CharacterID(id))
	case ZoneVoid:
		z.void.Insert(VoidCardID(id))
	case ZoneStack:
		m.stack = append(m.stack, &StackItem{Card: StackCardID(id), Controller: owner})
	case ZoneBanished:
		z.banished.Insert(id)
	}
}

func (m *CardMap) removeFromZone(owner PlayerName, id CardID, zone Zone) {
	z := m.zones(owner)
	switch zone {
	case ZoneDeck:
		deckID := DeckCardID(id)
		z.deckShuffled.Remove(deckID)
		for i, known := range z.deckKnown {
			if known == deckID {
				z.deckKnown = append(z.deckKnown[:i], z.deckKnown[i+1:]...)
				break
			}
		}
	case ZoneHand:
		z.hand.Remove(HandCardID(id))
	case ZoneBattlefield:
		z.battlefield.Remove(CharacterID(id))
		delete(z.characterState, CharacterID(id))
	case ZoneVoid:
		z.void.Remove(VoidCardID(id))
	case ZoneStack:
		for i := len(m.stack) - 1; i >= 0; i-- {
			if m.stack[i].Card == StackCardID(id) {
				m.stack = append(m.stack[:i], m.stack[i+1:]...)
				break
			}
		}
	case ZoneBanished:
		z.banished.Remove(id)
	}
}

// Hand returns a player's hand.
func (m *CardMap) Hand(player PlayerName) CardSet[HandCardID] {
	return m.zones(player).hand
}

// Void returns a player's void.
func (m *CardMap) Void(player PlayerName) CardSet[VoidCardID] {
	return m.zones(player).void
}

// Battlefield returns a player's battlefield characters.
func (m *CardMap) Battlefield(player PlayerName) CardSet[CharacterID] {
	return m.zones(player).battlefield
}

// Banished returns a player's banished cards.
func (m *CardMap) Banished(player PlayerName) CardSet[CardID] {
	return m.zones(player).banished
}

// DeckSize returns the number of cards in a player's deck, known and unknown.
func (m *CardMap) DeckSize(player PlayerName) int {
	z := m.zones(player)
	return len(z.deckKnown) + z.deckShuffled.Len()
}

// TopOfDeckKnown returns the revealed top of a player's deck, front first.
func (m *CardMap) TopOfDeckKnown(player PlayerName) []DeckCardID {
	return m.zones(player).deckKnown
}

// DeckShuffled returns the unrevealed portion of a player's deck.
func (m *CardMap) DeckShuffled(player PlayerName) CardSet[DeckCardID] {
	return m.zones(player).deckShuffled
}

// RevealTopOfDeck moves a card from the shuffled portion to the back of the
// known top-of-deck list. The card must be in the shuffled portion.
func (m *CardMap) RevealTopOfDeck(player PlayerName, id DeckCardID) bool {
	z := m.zones(player)
	if !z.deckShuffled.Remove(id) {
		return false
	}
	z.deckKnown = append(z.deckKnown, id)
	return true
}

// TakeKnownTopOfDeck pops the front of the known top-of-deck list. The second
// return is false when no known cards remain.
func (m *CardMap) TakeKnownTopOfDeck(player PlayerName) (DeckCardID, bool) {
	z := m.zones(player)
	if len(z.deckKnown) == 0 {
		return 0, false
	}
	front := z.deckKnown[0]
	z.deckKnown = z.deckKnown[1:]
	// The card stays in the deck zone; it simply becomes "unpositioned"
	// until moved, so keep membership in the shuffled set for the move.
	z.deckShuffled.Insert(front)
	return front, true
}

// CharacterState returns the battlefield state for a character, or nil when
// the character is not on its owner's battlefield.
func (m *CardMap) CharacterState(player PlayerName, id CharacterID) *CharacterState {
	return m.zones(player).characterState[id]
}

// SetCharacterState installs battlefield state for a character.
func (m *CardMap) SetCharacterState(player PlayerName, id CharacterID, state *CharacterState) {
	m.zones(player).characterState[id] = state
}

// StackCards returns the resolution stack, bottom first.
func (m *CardMap) StackCards() []*StackItem {
	return m.stack
}

// StackItem returns the stack item for a card, or nil when the card is not
// on the stack.
func (m *CardMap) StackItem(id StackCardID) *StackItem {
	for _, item := range m.stack {
		if item.Card == id {
			return item
		}
	}
	return nil
}

// TopOfStack returns the most recently added stack item, or nil when the
// stack is empty.
func (m *CardMap) TopOfStack() *StackItem {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// AllCards returns every instantiated card record.
func (m *CardMap) AllCards() []*CardState {
	return m.cards
}

// Clone returns a deep copy of the card store.
func (m *CardMap) Clone() *CardMap {
	clone := &CardMap{
		cards:   make([]*CardState, len(m.cards)),
		nextObj: m.nextObj,
		stack:   make([]*StackItem, len(m.stack)),
	}
	for i, card := range m.cards {
		copied := *card
		clone.cards[i] = &copied
	}
	for i, item := range m.stack {
		clone.stack[i] = item.Clone()
	}
	for p, z := range m.players {
		cz := &playerZones{
			hand:           z.hand.Clone(),
			void:           z.void.Clone(),
			battlefield:    z.battlefield.Clone(),
			banished:       z.banished.Clone(),
			deckKnown:      append([]DeckCardID(nil), z.deckKnown...),
			deckShuffled:   z.deckShuffled.Clone(),
			characterState: make(map[CharacterID]*CharacterState, len(z.characterState)),
		}
		for id, state := range z.characterState {
			copied := *state
			cz.characterState[id] = &copied
		}
		clone.players[p] = cz
	}
	return clone
}
