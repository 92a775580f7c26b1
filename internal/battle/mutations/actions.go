package mutations

import (
	"github.com/voidbound/battle-server-go/internal/ability"
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/trace"
)

// OpeningHandSize is the number of cards each player draws at battle start.
const OpeningHandSize = 5

// StartBattle deals both players their deck copy and opening hand and opens
// the first turn for the starting player.
func StartBattle(state *battle.BattleState) {
	source := battle.GameSource(state.Turn.ActivePlayer)
	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		AddDeckCopy(state, battle.GameSource(player), player)
		DrawCards(state, battle.GameSource(player), player, OpeningHandSize)
	}
	active := state.Player(state.Turn.ActivePlayer)
	active.ProducedEnergy = 1
	active.Energy = active.ProducedEnergy
	animate(state, battle.Animation{
		Kind:   battle.AnimationStartTurn,
		Player: state.Turn.ActivePlayer,
		Source: source,
	})
	Settle(state)
}

// Apply dispatches one player action, recording a pre-action snapshot in the
// undo history for every full (non-micro) action. Callers are expected to
// consult the legal-action evaluator first; an action that is structurally
// impossible in the current state is treated as an internal ordering bug.
func Apply(state *battle.BattleState, player battle.PlayerName, action battle.Action) {
	if state.Status.GameOver {
		battle.Failf("action %v after battle end", action)
	}
	if !action.IsMicro() {
		state.History = append(state.History, battle.ActionRecord{
			Action:   action,
			Player:   player,
			Snapshot: state.Clone(),
		})
	}
	state.Tracef("applying action",
		trace.F("player", player),
		trace.F("action", action))
	switch action.Kind {
	case battle.ActionPlayCardFromHand:
		PlayCardFromHand(state, player, action.Hand)
	case battle.ActionPlayCardFromVoid:
		PlayCardFromVoid(state, player, action.Void)
	case battle.ActionPassPriority:
		ResolveTopOfStack(state, player)
	case battle.ActionEndTurn:
		EndTurn(state, player)
	case battle.ActionStartNextTurn:
		StartNextTurn(state, player)
	case battle.ActionSelectCharacterTarget:
		SelectCharacter(state, player, action.Character)
	case battle.ActionSelectStackCardTarget:
		SelectStackCard(state, player, action.StackCard)
	case battle.ActionSelectVoidCardTarget:
		SelectVoidCard(state, player, action.Void)
	case battle.ActionSubmitVoidCardTargets:
		SubmitVoidCardTargets(state, player)
	default:
		battle.Failf("unknown action kind %d", action.Kind)
	}
}

// PlayCardFromHand pays a hand card's cost and puts it on the stack,
// prompting for targets when its effects need them.
func PlayCardFromHand(state *battle.BattleState, player battle.PlayerName, id battle.HandCardID) {
	card := state.Cards.Card(id.CardID())
	if card == nil || !state.Cards.Contains(player, id.CardID(), battle.ZoneHand) {
		battle.Failf("play of %v outside %v's hand", id, player)
	}
	p := state.Player(player)
	if p.Energy < card.Created.Cost {
		battle.Failf("play of %v without energy for its cost", id)
	}
	animate(state, battle.Animation{
		Kind:   battle.AnimationPlayCard,
		Player: player,
		Cards:  []battle.CardID{id.CardID()},
		Source: battle.GameSource(player),
	})
	p.Energy -= card.Created.Cost
	MoveCard(state, battle.GameSource(player), id.CardID(), battle.ZoneStack)
	item := state.Cards.StackItem(battle.StackCardID(id))
	payAdditionalCosts(state, player, card, item)
	promptForStackTargets(state, player, card, item)
	Settle(state)
}

// PlayCardFromVoid plays a void card through its cheapest play-from-void
// ability. The played-from-void trigger fires before the card resolves.
func PlayCardFromVoid(state *battle.BattleState, player battle.PlayerName, id battle.VoidCardID) {
	var entry *queries.CanPlayFromVoid
	for _, candidate := range queries.FromVoid(state, player, false) {
		if candidate.Card == id {
			entry = &candidate
			break
		}
	}
	if entry == nil {
		battle.Failf("void play of %v is not legal", id)
	}
	card := state.Cards.Card(id.CardID())
	animate(state, battle.Animation{
		Kind:   battle.AnimationPlayCard,
		Player: player,
		Cards:  []battle.CardID{id.CardID()},
		Source: battle.GameSource(player),
	})
	state.Player(player).Energy -= entry.Cost
	MoveCard(state, battle.GameSource(player), id.CardID(), battle.ZoneStack)
	item := state.Cards.StackItem(battle.StackCardID(id))
	item.FromVoid = true
	state.Triggers.Push(battle.Trigger{
		Name:   battle.TriggerPlayedCardFromVoid,
		Card:   id.CardID(),
		Player: player,
		Source: battle.GameSource(player),
	})
	promptForStackTargets(state, player, card, item)
	Settle(state)
}

// payAdditionalCosts settles additional costs attached to the card's event
// abilities. Spend-one-or-more costs pay the minimum of one extra energy.
func payAdditionalCosts(state *battle.BattleState, player battle.PlayerName, card *battle.CardState, item *battle.StackItem) {
	list := queries.AbilityList(state, card.ID)
	p := state.Player(player)
	for _, data := range list.EventAbilities {
		switch data.Ability.AdditionalCost.Kind {
		case ability.CostEnergy:
			extra := battle.Energy(data.Ability.AdditionalCost.Energy)
			if p.Energy < extra {
				battle.Failf("play of %v without energy for its additional cost", card.ID)
			}
			p.Energy -= extra
		case ability.CostSpendOneOrMoreEnergy:
			if p.Energy < 1 {
				battle.Failf("play of %v without spendable extra energy", card.ID)
			}
			p.Energy--
			item.AdditionalEnergyPaid++
		}
	}
}

// promptForStackTargets pushes a target prompt for the first event effect
// that needs one. Targets chosen here are written onto the stack item and
// consumed at resolution.
func promptForStackTargets(state *battle.BattleState, player battle.PlayerName, card *battle.CardState, item *battle.StackItem) {
	list := queries.AbilityList(state, card.ID)
	source := battle.EffectSource{
		Kind:       battle.SourcePlayedCard,
		Controller: player,
		Card:       card.ID,
	}
	onSelected := battle.OnSelected{
		Kind:      battle.SelectedAddStackTargets,
		StackCard: item.Card,
	}
	for _, data := range list.EventAbilities {
		for _, e := range effectList(data.Ability.Effect) {
			shape, ok := e.RequiresTarget()
			if !ok {
				continue
			}
			switch shape {
			case ability.TargetCharacter:
				valid := queries.ValidCharacterTargets(state, player, e.Target)
				if valid.IsEmpty() {
					continue
				}
				state.PushPrompt(&battle.Prompt{
					Kind:            battle.PromptChooseCharacter,
					Player:          player,
					Source:          source,
					ValidCharacters: valid,
					OnSelected:      onSelected,
				})
				return
			case ability.TargetStackCard:
				valid := queries.ValidStackCardTargets(state, player, item.Card, e.Target)
				if valid.IsEmpty() {
					continue
				}
				state.PushPrompt(&battle.Prompt{
					Kind:            battle.PromptChooseStackCard,
					Player:          player,
					Source:          source,
					ValidStackCards: valid,
					OnSelected:      onSelected,
				})
				return
			case ability.TargetVoidCards:
				valid := queries.ValidVoidTargets(state, player, e.Target)
				if valid.IsEmpty() {
					continue
				}
				maximum := e.Count
				if maximum <= 0 || maximum > valid.Len() {
					maximum = valid.Len()
				}
				state.PushPrompt(&battle.Prompt{
					Kind:             battle.PromptChooseVoidCards,
					Player:           player,
					Source:           source,
					ValidVoidCards:   valid,
					MaximumSelection: maximum,
					OnSelected:       onSelected,
				})
				return
			}
		}
	}
}

// ResolveTopOfStack resolves the most recent stack item: characters
// materialize, events apply their effects and go to the void, negated items
// go straight to the void.
func ResolveTopOfStack(state *battle.BattleState, player battle.PlayerName) {
	item := state.Cards.TopOfStack()
	if item == nil {
		battle.Failf("resolve with empty stack")
	}
	card := state.Cards.Card(item.Card.CardID())
	source := battle.EffectSource{
		Kind:       battle.SourcePlayedCard,
		Controller: item.Controller,
		Card:       card.ID,
	}
	switch {
	case item.Negated:
		animate(state, battle.Animation{
			Kind:   battle.AnimationResolveEvent,
			Player: item.Controller,
			Source: source,
			Cards:  []battle.CardID{card.ID},
		})
		MoveCard(state, source, card.ID, battle.ZoneVoid)
	case card.Created.Type == battle.TypeCharacter:
		animate(state, battle.Animation{
			Kind:   battle.AnimationResolveCharacter,
			Player: item.Controller,
			Source: source,
			Cards:  []battle.CardID{card.ID},
		})
		MoveCard(state, source, card.ID, battle.ZoneBattlefield)
	default:
		animate(state, battle.Animation{
			Kind:   battle.AnimationResolveEvent,
			Player: item.Controller,
			Source: source,
			Cards:  []battle.CardID{card.ID},
		})
		targets := item.Targets
		MoveCard(state, source, card.ID, battle.ZoneVoid)
		list := queries.AbilityList(state, card.ID)
		for _, data := range list.EventAbilities {
			effectSource := source
			effectSource.Ability = data.Number
			state.Pending = append(state.Pending, &battle.PendingEffect{
				Source:  effectSource,
				Effect:  data.Ability.Effect,
				Targets: targets.Clone(),
			})
		}
	}
	Settle(state)
}

// EndTurn closes the active player's turn: the side with the higher total
// battlefield spark scores a point, until-end-of-turn grants expire, and
// per-turn counters reset. The opponent gets a response window before their
// turn begins.
func EndTurn(state *battle.BattleState, player battle.PlayerName) {
	if player != state.Turn.ActivePlayer || state.Turn.Ended {
		battle.Failf("end turn by %v out of order", player)
	}
	if state.Cards.TopOfStack() != nil || state.ActivePrompt() != nil {
		battle.Failf("end turn with unresolved stack or prompt")
	}
	scoreJudgment(state)
	state.Granted = nil
	state.AbilityCounters = make(map[battle.AbilityKey]int)
	for _, p := range state.Players {
		p.DrawExceededHandSize = false
	}
	state.Turn.Ended = true
	Settle(state)
}

// StartNextTurn begins the incoming player's turn: energy production grows
// by one and refills, and the player draws a card.
func StartNextTurn(state *battle.BattleState, player battle.PlayerName) {
	if !state.Turn.Ended || player != state.Turn.ActivePlayer.Opponent() {
		battle.Failf("start turn by %v out of order", player)
	}
	if state.Cards.TopOfStack() != nil || state.ActivePrompt() != nil {
		battle.Failf("start turn with unresolved stack or prompt")
	}
	state.Turn = battle.TurnData{ID: state.Turn.ID + 1, ActivePlayer: player}
	source := battle.GameSource(player)
	animate(state, battle.Animation{
		Kind:   battle.AnimationStartTurn,
		Player: player,
		Source: source,
	})
	p := state.Player(player)
	p.ProducedEnergy++
	p.Energy = p.ProducedEnergy
	Draw(state, source, player)
	state.Tracef("turn started",
		trace.F("turn", state.Turn.ID),
		trace.F("player", player))
	Settle(state)
}

// scoreJudgment awards one point to the side with the higher total
// battlefield spark. A tie scores nothing.
func scoreJudgment(state *battle.BattleState) {
	totals := [2]battle.Spark{}
	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		for _, id := range state.Cards.Battlefield(player).All() {
			totals[player] += queries.SparkOf(state, player, id)
		}
	}
	source := battle.GameSource(state.Turn.ActivePlayer)
	switch {
	case totals[battle.PlayerOne] > totals[battle.PlayerTwo]:
		GainPoints(state, source, battle.PlayerOne, 1)
	case totals[battle.PlayerTwo] > totals[battle.PlayerOne]:
		GainPoints(state, source, battle.PlayerTwo, 1)
	}
}
