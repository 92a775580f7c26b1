// Command web-demo serves automated battles to browser clients over a
// websocket. Clients create a battle, then step it forward action by action
// and watch the zone view update.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/mutations"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/decks"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for demo
	},
}

type Card struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Cost     int    `json:"cost"`
	Spark    int    `json:"spark,omitempty"`
	Zone     string `json:"zone"`
	Owner    string `json:"owner"`
	Revealed bool   `json:"revealed"`
}

type StackEntry struct {
	Card       Card   `json:"card"`
	Controller string `json:"controller"`
	Negated    bool   `json:"negated"`
}

type Player struct {
	Name      string `json:"name"`
	Energy    int    `json:"energy"`
	Produced  int    `json:"produced_energy"`
	Points    int    `json:"points"`
	DeckCount int    `json:"deck_count"`
	HandCount int    `json:"hand_count"`
	VoidCount int    `json:"void_count"`
}

type BattleView struct {
	BattleID     string       `json:"battle_id"`
	Turn         int          `json:"turn"`
	ActivePlayer string       `json:"active_player"`
	TurnEnded    bool         `json:"turn_ended"`
	GameOver     bool         `json:"game_over"`
	Winner       string       `json:"winner,omitempty"`
	Players      []Player     `json:"players"`
	Battlefield  []Card       `json:"battlefield"`
	Voids        []Card       `json:"voids"`
	Stack        []StackEntry `json:"stack"`
	LastAction   string       `json:"last_action,omitempty"`
}

type WSMessage struct {
	Type     string `json:"type"`
	BattleID string `json:"battle_id,omitempty"`
	Steps    int    `json:"steps,omitempty"`
	Data     any    `json:"data,omitempty"`
}

type liveBattle struct {
	state  *battle.BattleState
	driver *battle.RNG
	last   string
}

type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	battleID string
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	battles    map[string]*liveBattle
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		battles:    make(map[string]*liveBattle),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("Client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) createBattle() (string, *liveBattle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	seed := uint64(time.Now().UnixNano())
	state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), seed)
	mutations.StartBattle(state)

	live := &liveBattle{
		state:  state,
		driver: battle.NewRNG(seed + 1),
	}
	id := state.ID.String()
	h.battles[id] = live
	return id, live
}

// stepBattle advances a battle by up to count random actions.
func (h *Hub) stepBattle(battleID string, count int) *liveBattle {
	h.mu.Lock()
	defer h.mu.Unlock()

	live := h.battles[battleID]
	if live == nil {
		return nil
	}
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count && !live.state.Status.GameOver; i++ {
		acted := false
		for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
			if action, ok := queries.RandomAction(live.state, player, live.driver); ok {
				mutations.Apply(live.state, player, action)
				live.last = player.String() + " " + action.String()
				acted = true
				break
			}
		}
		if !acted {
			break
		}
	}
	return live
}

func buildView(battleID string, live *liveBattle) BattleView {
	state := live.state
	view := BattleView{
		BattleID:     battleID,
		Turn:         state.Turn.ID,
		ActivePlayer: state.Turn.ActivePlayer.String(),
		TurnEnded:    state.Turn.Ended,
		GameOver:     state.Status.GameOver,
		LastAction:   live.last,
	}
	if state.Status.GameOver {
		view.Winner = state.Status.Winner.String()
	}

	for _, name := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		p := state.Player(name)
		view.Players = append(view.Players, Player{
			Name:      name.String(),
			Energy:    int(p.Energy),
			Produced:  int(p.ProducedEnergy),
			Points:    int(p.Points),
			DeckCount: state.Cards.DeckSize(name),
			HandCount: state.Cards.Hand(name).Len(),
			VoidCount: state.Cards.Void(name).Len(),
		})
		for _, id := range state.Cards.Battlefield(name).All() {
			view.Battlefield = append(view.Battlefield, cardView(state, id.CardID()))
		}
		for _, id := range state.Cards.Void(name).All() {
			view.Voids = append(view.Voids, cardView(state, id.CardID()))
		}
	}

	for _, item := range state.Cards.StackCards() {
		view.Stack = append(view.Stack, StackEntry{
			Card:       cardView(state, item.Card.CardID()),
			Controller: item.Controller.String(),
			Negated:    item.Negated,
		})
	}
	return view
}

func cardView(state *battle.BattleState, id battle.CardID) Card {
	card := state.Cards.Card(id)
	view := Card{
		ID:       int(card.ID),
		Name:     card.Created.Definition.Name,
		Type:     card.Created.Type.String(),
		Cost:     int(card.Created.Cost),
		Zone:     card.Zone.String(),
		Owner:    card.Owner.String(),
		Revealed: card.RevealedToOpponent,
	}
	if card.Zone == battle.ZoneBattlefield {
		if cs := state.Cards.CharacterState(card.Owner, battle.CharacterID(card.ID)); cs != nil {
			view.Spark = int(cs.Spark)
		}
	}
	return view
}

func (h *Hub) handleMessage(client *Client, msg WSMessage) {
	log.Printf("Received message: %s", msg.Type)

	switch msg.Type {
	case "create_battle":
		id, live := h.createBattle()
		client.battleID = id
		h.mu.RLock()
		response, _ := json.Marshal(WSMessage{Type: "battle_state", BattleID: id, Data: buildView(id, live)})
		h.mu.RUnlock()
		client.send <- response

	case "join_battle":
		h.mu.RLock()
		live, exists := h.battles[msg.BattleID]
		h.mu.RUnlock()
		if !exists {
			response, _ := json.Marshal(WSMessage{Type: "error", Data: "battle not found"})
			client.send <- response
			return
		}
		client.battleID = msg.BattleID
		h.mu.RLock()
		response, _ := json.Marshal(WSMessage{Type: "battle_state", BattleID: msg.BattleID, Data: buildView(msg.BattleID, live)})
		h.mu.RUnlock()
		client.send <- response

	case "step":
		id := msg.BattleID
		if id == "" {
			id = client.battleID
		}
		if h.stepBattle(id, msg.Steps) == nil {
			response, _ := json.Marshal(WSMessage{Type: "error", Data: "battle not found"})
			client.send <- response
			return
		}
		h.broadcastBattleState(id)
	}
}

func (h *Hub) broadcastBattleState(battleID string) {
	h.mu.RLock()
	live := h.battles[battleID]
	if live == nil {
		h.mu.RUnlock()
		return
	}
	response, _ := json.Marshal(WSMessage{Type: "battle_state", BattleID: battleID, Data: buildView(battleID, live)})
	h.mu.RUnlock()

	for client := range h.clients {
		if client.battleID == battleID {
			select {
			case client.send <- response:
			default:
			}
		}
	}
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		hub.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump(hub)
}

func main() {
	hub := newHub()
	go hub.run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})

	log.Println("WebSocket server starting on :8080")
	log.Println("WebSocket endpoint: ws://localhost:8080/ws")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
