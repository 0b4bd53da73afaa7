// agents/client/client.go
package client

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/coursework_figgie/game"
)

// Таймаут ожидания сообщения от сервера; по его истечении
// переотправляется самая старая неподтвержденная заявка
const receiveTimeout = 30 * time.Second

// Стратегия принятия решений агента
type Strategy interface {
	MakeDecision(c *GameClient)
}

// Observer — опциональный интерфейс стратегии, которой нужны
// все входящие сообщения (например, для контекста LLM)
type Observer interface {
	Observe(raw []byte)
}

// Конверт сообщения протокола
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// GameClient — базовый игровой клиент агента
type GameClient struct {
	PlayerID string
	URI      string
	Conn     *websocket.Conn

	GameState *game.GameState
	Cards     map[string]int
	Cash      int

	Strategy Strategy
	Rng      *rand.Rand

	// Очередь неподтвержденных заявок для переотправки
	mu      sync.Mutex
	pending [][]byte
}

// NewGameClient создает клиента для подключения к серверу
func NewGameClient(playerID, baseURI string) *GameClient {
	return &GameClient{
		PlayerID: playerID,
		URI:      fmt.Sprintf("%s/%s", baseURI, playerID),
		Cards:    make(map[string]int),
		Rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Connect устанавливает соединение и занимает место за столом
func (c *GameClient) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.URI, nil)
	if err != nil {
		LogToFile(c.PlayerID, "Error connecting: %v", err)
		return err
	}
	c.Conn = conn
	LogToFile(c.PlayerID, "Connected to %s", c.URI)

	return c.sendEnvelope("add_player", map[string]string{"player_id": c.PlayerID})
}

// SendReady отправляет сигнал готовности
func (c *GameClient) SendReady() error {
	return c.sendEnvelope("player_ready", map[string]string{"player_id": c.PlayerID})
}

// PlaceOrder отправляет заявку на покупку или продажу
func (c *GameClient) PlaceOrder(suit string, price int, isBid bool) {
	payload, err := json.Marshal(envelope{Type: "place_order", Data: mustMarshal(game.Order{
		PlayerID: c.PlayerID,
		Suit:     suit,
		Price:    price,
		IsBid:    isBid,
	})})
	if err != nil {
		return
	}
	c.queueOrder(payload)
	c.sendRaw(payload)
	LogToFile(c.PlayerID, "Sent order: %s", payload)
}

// AcceptOrder принимает стоящую заявку по масти
func (c *GameClient) AcceptOrder(suit string, isBid bool) {
	payload, err := json.Marshal(envelope{Type: "accept_order", Data: mustMarshal(game.Order{
		PlayerID: c.PlayerID,
		Suit:     suit,
		IsBid:    isBid,
	})})
	if err != nil {
		return
	}
	c.queueOrder(payload)
	c.sendRaw(payload)
	LogToFile(c.PlayerID, "Sent accept: %s", payload)
}

// sendEnvelope упаковывает и отправляет сообщение
func (c *GameClient) sendEnvelope(msgType string, data interface{}) error {
	payload, err := json.Marshal(envelope{Type: msgType, Data: mustMarshal(data)})
	if err != nil {
		return err
	}
	if err := c.sendRaw(payload); err != nil {
		return err
	}
	LogToFile(c.PlayerID, "Sent: %s", payload)
	return nil
}

// sendRaw отправляет данные в соединение, если оно установлено
func (c *GameClient) sendRaw(payload []byte) error {
	if c.Conn == nil {
		return nil
	}
	return c.Conn.WriteMessage(websocket.TextMessage, payload)
}

// queueOrder добавляет заявку в очередь неподтвержденных
func (c *GameClient) queueOrder(payload []byte) {
	c.mu.Lock()
	c.pending = append(c.pending, payload)
	c.mu.Unlock()
}

// ackOrder убирает подтвержденную заявку из очереди
func (c *GameClient) ackOrder() {
	c.mu.Lock()
	if len(c.pending) > 0 {
		c.pending = c.pending[1:]
	}
	c.mu.Unlock()
}

// PendingOrders возвращает копию очереди неподтвержденных заявок
func (c *GameClient) PendingOrders() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	orders := make([][]byte, len(c.pending))
	copy(orders, c.pending)
	return orders
}

// resendOldest переотправляет самую старую неподтвержденную заявку
func (c *GameClient) resendOldest() {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return
	}
	payload := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()

	LogToFile(c.PlayerID, "Resending last order: %s", payload)
	c.sendRaw(payload)
}

// ReceiveMessages читает сообщения сервера до конца игры
func (c *GameClient) ReceiveMessages() {
	defer func() {
		if c.Conn != nil {
			c.Conn.Close()
		}
		LogToFile(c.PlayerID, "Disconnected")
	}()

	for {
		c.Conn.SetReadDeadline(time.Now().Add(receiveTimeout))
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				// Сервер молчит: проверяем очередь неподтвержденных заявок
				LogToFile(c.PlayerID, "No response from server, checking order queue...")
				c.resendOldest()
				continue
			}
			LogToFile(c.PlayerID, "Connection closed: %v", err)
			return
		}

		LogToFile(c.PlayerID, "Received: %s", raw)

		// Стратегия может наблюдать все сообщения
		if observer, ok := c.Strategy.(Observer); ok {
			observer.Observe(raw)
		}

		var msg envelope
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "game_started":
			LogToFile(c.PlayerID, "Game started")

		case "deal_cards":
			var hand struct {
				Cards map[string]int `json:"cards"`
				Cash  int            `json:"cash"`
			}
			if err := json.Unmarshal(msg.Data, &hand); err == nil {
				c.Cards = hand.Cards
				c.Cash = hand.Cash
				LogToFile(c.PlayerID, "Received cards: %v and cash: %d", c.Cards, c.Cash)
			}

		case "game_state":
			var state game.GameState
			if err := json.Unmarshal(msg.Data, &state); err == nil {
				c.GameState = &state
				if c.Strategy != nil {
					c.Strategy.MakeDecision(c)
				}
			}

		case "add_order_processed", "accept_order_processed":
			LogToFile(c.PlayerID, "Order processed: %s", msg.Data)
			c.ackOrder()

		case "transaction_processed":
			var trade game.Trade
			if err := json.Unmarshal(msg.Data, &trade); err == nil {
				c.updateAfterTransaction(trade)
			}

		case "game_result":
			LogToFile(c.PlayerID, "Game result: %s", msg.Data)

		case "game_stopped":
			LogToFile(c.PlayerID, "Game ended")
			return
		}
	}
}

// updateAfterTransaction корректирует локальные карты и деньги после сделки
func (c *GameClient) updateAfterTransaction(trade game.Trade) {
	if trade.From == c.PlayerID {
		// Мы продали карту
		c.Cash += trade.Amount
		c.Cards[trade.Suit]--
	} else if trade.To == c.PlayerID {
		// Мы купили карту
		c.Cash -= trade.Amount
		c.Cards[trade.Suit]++
	}
	LogToFile(c.PlayerID, "Updated after transaction: Cards: %v, Cash: %d", c.Cards, c.Cash)
}

// mustMarshal сериализует данные, которые не могут вызвать ошибку
func mustMarshal(data interface{}) json.RawMessage {
	raw, err := json.Marshal(data)
	if err != nil {
		return json.RawMessage("{}")
	}
	return raw
}
