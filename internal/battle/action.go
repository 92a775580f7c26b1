package battle

import "fmt"

// ActionKind discriminates the battle actions a player can take.
type ActionKind int

const (
	ActionPlayCardFromHand ActionKind = iota
	ActionPlayCardFromVoid
	ActionPassPriority
	ActionEndTurn
	ActionStartNextTurn
	ActionSelectCharacterTarget
	ActionSelectStackCardTarget
	ActionSelectVoidCardTarget
	ActionSubmitVoidCardTargets
)

// Action is a single player decision submitted to the engine. Exactly the
// field matching the kind is meaningful.
type Action struct {
	Kind      ActionKind
	Hand      HandCardID
	Void      VoidCardID
	Character CharacterID
	StackCard StackCardID
}

// PlayFromHand builds a play-card action for a hand card.
func PlayFromHand(id HandCardID) Action {
	return Action{Kind: ActionPlayCardFromHand, Hand: id}
}

// PlayFromVoid builds a play-card action for a void card.
func PlayFromVoid(id VoidCardID) Action {
	return Action{Kind: ActionPlayCardFromVoid, Void: id}
}

// PassPriority builds the action that resolves the top of the stack.
func PassPriority() Action {
	return Action{Kind: ActionPassPriority}
}

// EndTurn builds the end-turn action.
func EndTurn() Action {
	return Action{Kind: ActionEndTurn}
}

// StartNextTurn builds the action the incoming player takes to begin their
// turn.
func StartNextTurn() Action {
	return Action{Kind: ActionStartNextTurn}
}

// SelectCharacter builds a character target selection.
func SelectCharacter(id CharacterID) Action {
	return Action{Kind: ActionSelectCharacterTarget, Character: id}
}

// SelectStackCard builds a stack card target selection.
func SelectStackCard(id StackCardID) Action {
	return Action{Kind: ActionSelectStackCardTarget, StackCard: id}
}

// SelectVoidCard builds a void card selection toggle.
func SelectVoidCard(id VoidCardID) Action {
	return Action{Kind: ActionSelectVoidCardTarget, Void: id}
}

// SubmitVoidTargets builds the confirmation for an in-progress void card
// selection.
func SubmitVoidTargets() Action {
	return Action{Kind: ActionSubmitVoidCardTargets}
}

// IsMicro reports whether the action is an intermediate step inside a larger
// interaction. Micro actions are not recorded in the undo history, so an
// undo lands on the state before the full action that opened the
// interaction.
func (a Action) IsMicro() bool {
	switch a.Kind {
	case ActionSelectCharacterTarget, ActionSelectStackCardTarget,
		ActionSelectVoidCardTarget, ActionSubmitVoidCardTargets:
		return true
	}
	return false
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlayCardFromHand:
		return fmt.Sprintf("PlayCardFromHand(%d)", a.Hand)
	case ActionPlayCardFromVoid:
		return fmt.Sprintf("PlayCardFromVoid(%d)", a.Void)
	case ActionPassPriority:
		return "PassPriority"
	case ActionEndTurn:
		return "EndTurn"
	case ActionStartNextTurn:
		return "StartNextTurn"
	case ActionSelectCharacterTarget:
		return fmt.Sprintf("SelectCharacterTarget(%d)", a.Character)
	case ActionSelectStackCardTarget:
		return fmt.Sprintf("SelectStackCardTarget(%d)", a.StackCard)
	case ActionSelectVoidCardTarget:
		return fmt.Sprintf("SelectVoidCardTarget(%d)", a.Void)
	case ActionSubmitVoidCardTargets:
		return "SubmitVoidCardTargets"
	}
	return fmt.Sprintf("Action(%d)", a.Kind)
}
