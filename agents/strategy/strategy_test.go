package strategy

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_figgie/agents/client"
	"github.com/LilVoxy/coursework_figgie/game"
)

// newTestAgent создает клиента без соединения: отправленные заявки
// остаются в очереди неподтвержденных и доступны через PendingOrders
func newTestAgent(t *testing.T, seed int64) *client.GameClient {
	t.Helper()
	c := client.NewGameClient("agent", "ws://test")
	c.Rng = rand.New(rand.NewSource(seed))
	c.GameState = game.NewGameState(game.TimerCountdown)
	c.GameState.Started = true
	return c
}

// Отправленный конверт протокола
type sentMessage struct {
	Type string     `json:"type"`
	Data game.Order `json:"data"`
}

// sentMessages разбирает очередь неподтвержденных заявок клиента
func sentMessages(t *testing.T, c *client.GameClient) []sentMessage {
	t.Helper()
	var messages []sentMessage
	for _, raw := range c.PendingOrders() {
		var msg sentMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		messages = append(messages, msg)
	}
	return messages
}

func TestAggressiveTraderWithoutStateDoesNothing(t *testing.T) {
	c := client.NewGameClient("agent", "ws://test")
	c.Strategy = &AggressiveTrader{}

	c.Strategy.MakeDecision(c)
	assert.Empty(t, c.PendingOrders())
}

func TestAggressiveTraderSellsHeldCards(t *testing.T) {
	c := newTestAgent(t, 1)
	c.Cards = map[string]int{"hearts": 2, "diamonds": 2, "clubs": 2, "spades": 2}
	c.Cash = 0

	s := &AggressiveTrader{}
	for i := 0; i < 10; i++ {
		s.MakeDecision(c)
	}

	messages := sentMessages(t, c)
	require.NotEmpty(t, messages)

	// Имея карты и не имея денег, агент только продает
	for _, msg := range messages {
		require.Equal(t, "place_order", msg.Type)
		assert.False(t, msg.Data.IsBid)
		assert.Equal(t, "agent", msg.Data.PlayerID)
		assert.Contains(t, game.Suits, msg.Data.Suit)

		// Пустая книга: цена продажи от 5 до 20
		assert.GreaterOrEqual(t, msg.Data.Price, 5)
		assert.LessOrEqual(t, msg.Data.Price, 20)
	}
}

func TestAggressiveTraderBuysBelowAsk(t *testing.T) {
	c := newTestAgent(t, 2)
	c.Cards = map[string]int{}
	c.Cash = 100

	// В книге стоят заявки на продажу по 10
	for _, suit := range game.Suits {
		c.GameState.OrderBook.Asks[suit] = game.BookEntry{Price: 10, PlayerID: "other", OrderID: 1}
	}

	s := &AggressiveTrader{}
	for i := 0; i < 10; i++ {
		s.MakeDecision(c)
	}

	messages := sentMessages(t, c)
	require.NotEmpty(t, messages)

	for _, msg := range messages {
		switch msg.Type {
		case "place_order":
			// Покупка всегда дешевле предложения, но не ниже 1
			assert.True(t, msg.Data.IsBid)
			assert.GreaterOrEqual(t, msg.Data.Price, 1)
			assert.Less(t, msg.Data.Price, 10)
		case "accept_order":
			// Принятие заявки на продажу
			assert.False(t, msg.Data.IsBid)
		default:
			t.Fatalf("неожиданный тип сообщения: %s", msg.Type)
		}
	}
}

func TestSpeculativeAccumulatorPicksTargetSuit(t *testing.T) {
	c := newTestAgent(t, 3)
	c.Cards = map[string]int{}
	c.Cash = 100

	s := &SpeculativeAccumulator{}
	s.MakeDecision(c)

	// Целевая масть выбирается при первом решении и не меняется
	require.Contains(t, game.Suits, s.TargetSuit)
	chosen := s.TargetSuit
	for i := 0; i < 5; i++ {
		s.MakeDecision(c)
	}
	assert.Equal(t, chosen, s.TargetSuit)

	// Без карт других мастей все заявки — покупки целевой масти
	messages := sentMessages(t, c)
	require.NotEmpty(t, messages)
	for _, msg := range messages {
		require.Equal(t, "place_order", msg.Type)
		assert.True(t, msg.Data.IsBid)
		assert.Equal(t, chosen, msg.Data.Suit)
	}
}

func TestSpeculativeAccumulatorSellsOffOtherSuits(t *testing.T) {
	c := newTestAgent(t, 4)
	c.Cards = map[string]int{"spades": 3, "clubs": 2}
	c.Cash = 0

	s := &SpeculativeAccumulator{TargetSuit: "hearts"}
	for i := 0; i < 10; i++ {
		s.MakeDecision(c)
	}

	messages := sentMessages(t, c)
	require.NotEmpty(t, messages)

	for _, msg := range messages {
		require.Equal(t, "place_order", msg.Type)
		if msg.Data.IsBid {
			// Покупаем только целевую масть
			assert.Equal(t, "hearts", msg.Data.Suit)
		} else {
			// Продаем только нецелевые масти
			assert.NotEqual(t, "hearts", msg.Data.Suit)
		}
	}
}

func TestMarketMakerQuotesBothSidesWithSpread(t *testing.T) {
	c := newTestAgent(t, 5)
	c.Cards = map[string]int{"hearts": 3, "diamonds": 3, "clubs": 3, "spades": 3}
	c.Cash = 100

	s := &MarketMaker{}
	s.MakeDecision(c)

	messages := sentMessages(t, c)
	require.NotEmpty(t, messages)

	bids := make(map[string]int)
	asks := make(map[string]int)
	for _, msg := range messages {
		if msg.Type != "place_order" {
			continue
		}
		if msg.Data.IsBid {
			bids[msg.Data.Suit] = msg.Data.Price
		} else {
			asks[msg.Data.Suit] = msg.Data.Price
		}
	}

	// На пустой книге котируются обе стороны со спредом от 2 до 5
	for suit, bid := range bids {
		ask, ok := asks[suit]
		require.True(t, ok, "нет встречной котировки для %s", suit)
		assert.GreaterOrEqual(t, bid, 1)
		assert.GreaterOrEqual(t, ask-bid, 2)
		assert.LessOrEqual(t, ask-bid, 5)
	}
}

func TestMarketMakerSellsExcessInventory(t *testing.T) {
	c := newTestAgent(t, 6)
	c.Cards = map[string]int{"hearts": 5}
	c.Cash = 0

	// В книге стоит спрос на hearts
	c.GameState.OrderBook.Bids["hearts"] = game.BookEntry{Price: 4, PlayerID: "other", OrderID: 1}

	s := &MarketMaker{}
	var accepted bool
	for i := 0; i < 30 && !accepted; i++ {
		s.MakeDecision(c)
		for _, msg := range sentMessages(t, c) {
			if msg.Type == "accept_order" && msg.Data.Suit == "hearts" && msg.Data.IsBid {
				accepted = true
			}
		}
	}

	// Излишек карт (> 2) сбрасывается через принятие заявки на покупку
	assert.True(t, accepted, "маркет-мейкер не продал излишек")
}
