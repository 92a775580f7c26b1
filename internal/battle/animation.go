package battle

// AnimationKind names the player-visible changes the recorder can describe.
type AnimationKind int

const (
	// AnimationStartTurn announces a new turn.
	AnimationStartTurn AnimationKind = iota
	// AnimationDrawCards shows one or more cards moving deck to hand.
	AnimationDrawCards
	// AnimationPlayCard shows a card leaving the hand or void for the stack.
	AnimationPlayCard
	// AnimationResolveCharacter shows a character materializing.
	AnimationResolveCharacter
	// AnimationResolveEvent shows an event card resolving to the void.
	AnimationResolveEvent
	// AnimationSelectedTargets shows the targets chosen for a card.
	AnimationSelectedTargets
	// AnimationGainEnergy shows an energy gain.
	AnimationGainEnergy
	// AnimationGainSpark shows a character's spark increasing.
	AnimationGainSpark
	// AnimationScorePoints shows a score change.
	AnimationScorePoints
	// AnimationDissolve shows a character moving to the void.
	AnimationDissolve
	// AnimationDiscard shows cards moving hand to void.
	AnimationDiscard
	// AnimationShuffleNewDeckCopy shows a fresh deck copy arriving.
	AnimationShuffleNewDeckCopy
	// AnimationHandLimitExceeded shows a draw converted to energy.
	AnimationHandLimitExceeded
)

// String returns the string representation of the animation kind.
func (k AnimationKind) String() string {
	switch k {
	case AnimationStartTurn:
		return "START_TURN"
	case AnimationDrawCards:
		return "DRAW_CARDS"
	case AnimationPlayCard:
		return "PLAY_CARD"
	case AnimationResolveCharacter:
		return "RESOLVE_CHARACTER"
	case AnimationResolveEvent:
		return "RESOLVE_EVENT"
	case AnimationSelectedTargets:
		return "SELECTED_TARGETS"
	case AnimationGainEnergy:
		return "GAIN_ENERGY"
	case AnimationGainSpark:
		return "GAIN_SPARK"
	case AnimationScorePoints:
		return "SCORE_POINTS"
	case AnimationDissolve:
		return "DISSOLVE"
	case AnimationDiscard:
		return "DISCARD"
	case AnimationShuffleNewDeckCopy:
		return "SHUFFLE_NEW_DECK_COPY"
	case AnimationHandLimitExceeded:
		return "HAND_LIMIT_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

// Animation describes one player-visible change for the presentation layer.
type Animation struct {
	Kind   AnimationKind
	Player PlayerName
	Source EffectSource
	// Cards are the subject cards of the change, flat ids.
	Cards []CardID
	// Amount carries the magnitude of numeric changes.
	Amount int
}

// AnimationStep pairs an animation with the full state snapshot taken before
// the mutation it describes, so replay from any step is self-contained.
type AnimationStep struct {
	Snapshot  *BattleState
	Animation Animation
}

// AnimationRecorder collects the animation steps of the current turn. The
// step list restarts whenever the turn id changes. A nil recorder on the
// battle disables recording entirely.
type AnimationRecorder struct {
	TurnID int
	Steps  []AnimationStep
}

// NewAnimationRecorder returns an empty recorder.
func NewAnimationRecorder() *AnimationRecorder {
	return &AnimationRecorder{}
}

// Record appends a step, clearing the list first if the turn changed.
func (r *AnimationRecorder) Record(turnID int, snapshot *BattleState, animation Animation) {
	if turnID != r.TurnID {
		r.TurnID = turnID
		r.Steps = nil
	}
	r.Steps = append(r.Steps, AnimationStep{Snapshot: snapshot, Animation: animation})
}

// Clone returns a copy of the recorder. Step snapshots are immutable once
// taken, so the step list is copied shallowly.
func (r *AnimationRecorder) Clone() *AnimationRecorder {
	if r == nil {
		return nil
	}
	return &AnimationRecorder{TurnID: r.TurnID, Steps: append([]AnimationStep(nil), r.Steps...)}
}
