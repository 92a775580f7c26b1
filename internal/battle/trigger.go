package battle

import "fmt"

// TriggerName is the category of a game event that triggered abilities can
// subscribe to.
type TriggerName int

const (
	// TriggerMaterialized fires after a character enters the battlefield.
	TriggerMaterialized TriggerName = iota
	// TriggerDissolved fires after a character moves battlefield to void.
	TriggerDissolved
	// TriggerDiscarded fires after a card moves hand to void.
	TriggerDiscarded
	// TriggerPlayedCardFromVoid fires after a card is played from the void.
	TriggerPlayedCardFromVoid
	// TriggerDrewAllCardsInCopy fires after a player's deck is exhausted
	// and a fresh copy is recycled in.
	TriggerDrewAllCardsInCopy
)

// String returns the string representation of the trigger name.
func (n TriggerName) String() string {
	switch n {
	case TriggerMaterialized:
		return "MATERIALIZED"
	case TriggerDissolved:
		return "DISSOLVED"
	case TriggerDiscarded:
		return "DISCARDED"
	case TriggerPlayedCardFromVoid:
		return "PLAYED_CARD_FROM_VOID"
	case TriggerDrewAllCardsInCopy:
		return "DREW_ALL_CARDS_IN_COPY"
	default:
		return fmt.Sprintf("TriggerName(%d)", int(n))
	}
}

// Trigger is a discrete game event. Triggers are inert data: mutating
// operations push them and a single resolution loop drains them after each
// settle point, so cascades never interleave mid-effect.
type Trigger struct {
	Name TriggerName
	// Card is the subject of the event (the materialized character, the
	// discarded card, ...). Negative when the event has no subject card.
	Card CardID
	// Player is the player the event happened to.
	Player PlayerName
	// Source attributes the event to the effect that caused it.
	Source EffectSource
}

// TriggerState is the trigger queue plus the listener index. Listeners are
// registered when a card with matching triggered abilities enters a watched
// zone and removed when it leaves.
type TriggerState struct {
	queue     []Trigger
	listeners map[TriggerName]CardSet[CardID]
}

// NewTriggerState returns an empty trigger state.
func NewTriggerState() *TriggerState {
	return &TriggerState{listeners: make(map[TriggerName]CardSet[CardID])}
}

// Push appends a trigger to the FIFO queue.
func (t *TriggerState) Push(trigger Trigger) {
	t.queue = append(t.queue, trigger)
}

// Pop removes and returns the front trigger. The second return is false when
// the queue is empty.
func (t *TriggerState) Pop() (Trigger, bool) {
	if len(t.queue) == 0 {
		return Trigger{}, false
	}
	front := t.queue[0]
	t.queue = t.queue[1:]
	return front, true
}

// Pending reports whether any triggers are queued.
func (t *TriggerState) Pending() bool {
	return len(t.queue) > 0
}

// AddListener subscribes a card to a trigger name.
func (t *TriggerState) AddListener(name TriggerName, id CardID) {
	set := t.listeners[name]
	set.Insert(id)
	t.listeners[name] = set
}

// RemoveListener unsubscribes a card from a trigger name.
func (t *TriggerState) RemoveListener(name TriggerName, id CardID) {
	set := t.listeners[name]
	set.Remove(id)
	t.listeners[name] = set
}

// Listeners returns the cards subscribed to a trigger name in ascending id
// order, which is their arrival order in the watched zone.
func (t *TriggerState) Listeners(name TriggerName) []CardID {
	return t.listeners[name].All()
}

// Clone returns a deep copy of the trigger state.
func (t *TriggerState) Clone() *TriggerState {
	clone := &TriggerState{
		queue:     append([]Trigger(nil), t.queue...),
		listeners: make(map[TriggerName]CardSet[CardID], len(t.listeners)),
	}
	for name, set := range t.listeners {
		clone.listeners[name] = set.Clone()
	}
	return clone
}

// EffectSourceKind names how an effect came to exist.
type EffectSourceKind int

const (
	// SourceGame is the game itself (turn structure, rules actions).
	SourceGame EffectSourceKind = iota
	// SourcePlayedCard is a card played by a player.
	SourcePlayedCard
	// SourceTriggered is a triggered ability of a card.
	SourceTriggered
)

// EffectSource attributes a mutation to the card and controller that caused
// it, for tracing and animation.
type EffectSource struct {
	Kind       EffectSourceKind
	Controller PlayerName
	Card       CardID
	Ability    AbilityNumber
}

// GameSource returns a source representing a game-rules action by a player.
func GameSource(player PlayerName) EffectSource {
	return EffectSource{Kind: SourceGame, Controller: player, Card: -1}
}
