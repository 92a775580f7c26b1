package battle

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// MaximumHandSize is the hand limit. A draw while at the limit grants energy
// instead of moving a card.
const MaximumHandSize = 10

// PlayerState is one player's side of the battle.
type PlayerState struct {
	Name           PlayerName
	Energy         Energy
	ProducedEnergy Energy
	Points         Points
	// Deck is the player's registered deck list, used whenever a fresh
	// deck copy must be materialized.
	Deck []*CardDefinition
	// DrawExceededHandSize is set for the rest of the turn once a draw
	// was converted to an energy grant by the hand limit.
	DrawExceededHandSize bool
}

// Clone returns an independent copy of the player state. The deck list is
// immutable and shared.
func (p *PlayerState) Clone() *PlayerState {
	clone := *p
	return &clone
}

// TurnData identifies the current turn.
type TurnData struct {
	ID           int
	ActivePlayer PlayerName
	// Ended is set between the active player ending their turn and the
	// opponent starting theirs; the opponent may play fast cards in this
	// window.
	Ended bool
}

// AbilityKey identifies one ability of one card for per-turn gating.
type AbilityKey struct {
	Card   CardID
	Number AbilityNumber
}

// GrantedAbility is a triggered ability attached to a card at runtime, as
// opposed to one from its printed ability list. Grants tagged until-end-of-
// turn are dropped during end-of-turn cleanup.
type GrantedAbility struct {
	Source  CardID
	Number  AbilityNumber
	Ability *ability.TriggeredAbility
}

// Status reports whether the battle has ended.
type Status struct {
	GameOver bool
	Winner   PlayerName
}

// BattleState is the single root aggregate of one battle. It is created once
// at battle start, mutated exclusively through the engine's own functions for
// the battle's duration, and discarded at battle end. A full logical clone
// may be taken at any point for snapshotting.
type BattleState struct {
	ID      uuid.UUID
	Players [2]*PlayerState
	Cards   *CardMap
	// Abilities is the immutable-after-build ability cache for every
	// definition in either deck.
	Abilities *AbilityCache
	Triggers  *TriggerState
	// Prompts is the FIFO of interactive requests; the front prompt gates
	// all player-initiated mutation.
	Prompts []*Prompt
	// Pending is the list of effects awaiting execution.
	Pending []*PendingEffect
	// Granted holds runtime-granted until-end-of-turn triggered abilities.
	Granted []*GrantedAbility
	// Animations is nil when animation recording is disabled.
	Animations *AnimationRecorder
	RNG        *RNG
	Turn       TurnData
	// AbilityCounters tracks per-card, per-turn firing counts for
	// once-per-turn gating. Reset at end-of-turn cleanup.
	AbilityCounters map[AbilityKey]int
	// History records full (non-micro) actions with their pre-action
	// snapshots for undo.
	History []ActionRecord
	Status  Status
	Trace   *trace.Recorder
}

// ActionRecord pairs an applied action with the snapshot taken before it.
type ActionRecord struct {
	Action   Action
	Player   PlayerName
	Snapshot *BattleState
}

// New creates a battle for the given decks and seed. Both decks must be
// non-empty; an empty registered deck would make deck recycling impossible,
// which the movement engine treats as fatal.
func New(deckOne, deckTwo []*CardDefinition, seed uint64) *BattleState {
	if len(deckOne) == 0 || len(deckTwo) == 0 {
		Failf("battle created with an empty registered deck")
	}
	var all []*CardDefinition
	seen := map[string]bool{}
	for _, def := range append(append([]*CardDefinition{}, deckOne...), deckTwo...) {
		if !seen[def.Name] {
			seen[def.Name] = true
			all = append(all, def)
		}
	}
	state := &BattleState{
		ID:              uuid.New(),
		Cards:           NewCardMap(),
		Abilities:       BuildAbilityCache(all),
		Triggers:        NewTriggerState(),
		RNG:             NewRNG(seed),
		Turn:            TurnData{ID: 1, ActivePlayer: PlayerOne},
		AbilityCounters: make(map[AbilityKey]int),
	}
	state.Players[PlayerOne] = &PlayerState{Name: PlayerOne, Deck: deckOne}
	state.Players[PlayerTwo] = &PlayerState{Name: PlayerTwo, Deck: deckTwo}
	return state
}

// Player returns the state for a player.
func (b *BattleState) Player(name PlayerName) *PlayerState {
	return b.Players[int(name)]
}

// ActivePrompt returns the front of the prompt queue, or nil when no prompt
// is pending.
func (b *BattleState) ActivePrompt() *Prompt {
	if len(b.Prompts) == 0 {
		return nil
	}
	return b.Prompts[0]
}

// PushPrompt appends a prompt to the queue.
func (b *BattleState) PushPrompt(p *Prompt) {
	b.Prompts = append(b.Prompts, p)
}

// PopPrompt removes and returns the front prompt. Calling this with an empty
// queue is an invariant violation.
func (b *BattleState) PopPrompt() *Prompt {
	if len(b.Prompts) == 0 {
		Failf("pop on empty prompt queue")
	}
	front := b.Prompts[0]
	b.Prompts = b.Prompts[1:]
	return front
}

// Clone takes a full logical copy of the battle. Prior snapshots inside the
// history and animation steps are immutable, so those lists copy shallowly.
func (b *BattleState) Clone() *BattleState {
	clone := &BattleState{
		ID:        b.ID,
		Cards:     b.Cards.Clone(),
		Abilities: b.Abilities,
		Triggers:  b.Triggers.Clone(),
		RNG:       b.RNG.Clone(),
		Turn:      b.Turn,
		Status:    b.Status,
		Trace:     b.Trace,
		AbilityCounters: make(map[AbilityKey]int, len(b.AbilityCounters)),
		History:         append([]ActionRecord(nil), b.History...),
		Animations:      b.Animations.Clone(),
	}
	for name, player := range b.Players {
		clone.Players[name] = player.Clone()
	}
	for _, p := range b.Prompts {
		clone.Prompts = append(clone.Prompts, p.Clone())
	}
	for _, e := range b.Pending {
		clone.Pending = append(clone.Pending, e.Clone())
	}
	clone.Granted = append([]*GrantedAbility(nil), b.Granted...)
	for key, count := range b.AbilityCounters {
		clone.AbilityCounters[key] = count
	}
	return clone
}

// Tracef records a trace event when tracing is enabled.
func (b *BattleState) Tracef(message string, fields ...trace.Field) {
	if b.Trace != nil {
		b.Trace.Event(message, fields...)
	}
}

// Failf reports an engine invariant violation. These indicate inconsistent
// internal bookkeeping, never a user error, so they are fatal rather than
// surfaced as recoverable errors.
func Failf(format string, args ...any) {
	panic(fmt.Sprintf("battle invariant violated: "+format, args...))
}
