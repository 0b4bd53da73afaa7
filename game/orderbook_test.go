package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTradingGame создает игру с заданными руками и деньгами без запуска таймера
func newTradingGame(t *testing.T, hands map[string]map[string]int, cash map[string]int) *Game {
	t.Helper()
	g := NewGame("g1", len(hands), 10)

	for playerID := range hands {
		require.NoError(t, g.AddPlayer(playerID))
	}

	g.State.Started = true
	g.State.PlayerCards = make(map[string]map[string]int)
	g.State.PlayerCardCount = make(map[string]int)
	g.State.PlayerCash = make(map[string]int)

	for playerID, hand := range hands {
		g.State.PlayerCards[playerID] = hand
		total := 0
		for _, count := range hand {
			total += count
		}
		g.State.PlayerCardCount[playerID] = total
		g.State.PlayerCash[playerID] = cash[playerID]
	}

	return g
}

// collectAcks собирает ответы на заявки указанного типа
func collectAcks(g *Game, event string) *[]OrderAck {
	acks := &[]OrderAck{}
	g.AddEventListener(event, func(data interface{}) {
		*acks = append(*acks, data.(OrderAck))
	})
	return acks
}

func TestPlaceBidImprovesBook(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"hearts": 2}, "p2": {"hearts": 1}},
		map[string]int{"p1": 100, "p2": 100})
	acks := collectAcks(g, "add_order_processed")

	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 5, PlayerID: "p1"})
	assert.Equal(t, 5, g.State.OrderBook.Bids["hearts"].Price)
	assert.Equal(t, "p1", g.State.OrderBook.Bids["hearts"].PlayerID)

	// Заявка не выше текущей отклоняется
	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 5, PlayerID: "p2"})
	assert.Equal(t, "p1", g.State.OrderBook.Bids["hearts"].PlayerID)

	// Более высокая заявка вытесняет текущую
	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 6, PlayerID: "p2"})
	assert.Equal(t, 6, g.State.OrderBook.Bids["hearts"].Price)
	assert.Equal(t, "p2", g.State.OrderBook.Bids["hearts"].PlayerID)

	require.Len(t, *acks, 3)
	assert.Equal(t, "Order added", (*acks)[0].Message)
	assert.Equal(t, "Order not added", (*acks)[1].Message)
	assert.Equal(t, "Order added", (*acks)[2].Message)
}

func TestPlaceAskImprovesBook(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"spades": 2}, "p2": {"spades": 1}},
		map[string]int{"p1": 100, "p2": 100})

	g.ProcessAddOrder(Order{IsBid: false, Suit: "spades", Price: 8, PlayerID: "p1"})
	assert.Equal(t, 8, g.State.OrderBook.Asks["spades"].Price)

	// Продажа дороже текущей отклоняется
	g.ProcessAddOrder(Order{IsBid: false, Suit: "spades", Price: 9, PlayerID: "p2"})
	assert.Equal(t, "p1", g.State.OrderBook.Asks["spades"].PlayerID)

	// Более дешевая продажа вытесняет текущую
	g.ProcessAddOrder(Order{IsBid: false, Suit: "spades", Price: 7, PlayerID: "p2"})
	assert.Equal(t, 7, g.State.OrderBook.Asks["spades"].Price)
	assert.Equal(t, "p2", g.State.OrderBook.Asks["spades"].PlayerID)
}

func TestPlaceOrderValidation(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"hearts": 1}, "p2": {}},
		map[string]int{"p1": 100, "p2": 100})
	acks := collectAcks(g, "add_order_processed")

	// Нулевая и отрицательная цена
	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 0, PlayerID: "p1"})
	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: -3, PlayerID: "p1"})

	// Неизвестная масть и неизвестный игрок
	g.ProcessAddOrder(Order{IsBid: true, Suit: "stars", Price: 5, PlayerID: "p1"})
	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 5, PlayerID: "ghost"})

	require.Len(t, *acks, 4)
	assert.Equal(t, "Invalid price", (*acks)[0].Message)
	assert.Equal(t, "Invalid price", (*acks)[1].Message)
	assert.Equal(t, "Unknown suit", (*acks)[2].Message)
	assert.Equal(t, "Unknown player", (*acks)[3].Message)
}

func TestPlaceOrderGameNotStarted(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"hearts": 1}, "p2": {}},
		map[string]int{"p1": 100, "p2": 100})
	g.State.Started = false
	acks := collectAcks(g, "add_order_processed")

	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 5, PlayerID: "p1"})

	require.Len(t, *acks, 1)
	assert.Equal(t, "Game not started", (*acks)[0].Message)
}

func TestBidCrossesAskExecutesTrade(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"hearts": 0}, "p2": {"hearts": 2}},
		map[string]int{"p1": 100, "p2": 100})

	var trades []Trade
	g.AddEventListener("transaction_processed", func(data interface{}) {
		trades = append(trades, data.(Trade))
	})

	g.ProcessAddOrder(Order{IsBid: false, Suit: "hearts", Price: 5, PlayerID: "p2"})

	// Заявка на покупку выше стоящей продажи исполняется по цене продавца
	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 7, PlayerID: "p1"})

	require.Len(t, trades, 1)
	assert.Equal(t, Trade{From: "p2", To: "p1", Suit: "hearts", Amount: 5}, trades[0])

	// Карта и деньги перешли из рук в руки
	assert.Equal(t, 1, g.State.PlayerCards["p1"]["hearts"])
	assert.Equal(t, 1, g.State.PlayerCards["p2"]["hearts"])
	assert.Equal(t, 95, g.State.PlayerCash["p1"])
	assert.Equal(t, 105, g.State.PlayerCash["p2"])
	assert.Equal(t, 1, g.State.PlayerCardCount["p1"])
	assert.Equal(t, 1, g.State.PlayerCardCount["p2"])

	// Книга заявок полностью сброшена после сделки
	for _, suit := range Suits {
		assert.Equal(t, -1, g.State.OrderBook.Bids[suit].Price)
		assert.Equal(t, -1, g.State.OrderBook.Asks[suit].Price)
	}
}

func TestAskCrossesBidExecutesTrade(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"clubs": 1}, "p2": {"clubs": 0}},
		map[string]int{"p1": 100, "p2": 100})

	g.ProcessAddOrder(Order{IsBid: true, Suit: "clubs", Price: 6, PlayerID: "p2"})

	// Продажа дешевле стоящей покупки исполняется по цене покупателя
	g.ProcessAddOrder(Order{IsBid: false, Suit: "clubs", Price: 4, PlayerID: "p1"})

	require.Len(t, g.Trades, 1)
	assert.Equal(t, Trade{From: "p1", To: "p2", Suit: "clubs", Amount: 6}, g.Trades[0])
	assert.Equal(t, 106, g.State.PlayerCash["p1"])
	assert.Equal(t, 94, g.State.PlayerCash["p2"])
}

func TestAcceptBidSellsToBidder(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"diamonds": 1}, "p2": {}},
		map[string]int{"p1": 100, "p2": 100})
	acks := collectAcks(g, "accept_order_processed")

	g.ProcessAddOrder(Order{IsBid: true, Suit: "diamonds", Price: 6, PlayerID: "p2"})

	// p1 принимает покупку p2: продает карту по 6
	g.ProcessAcceptOrder(Order{IsBid: true, Suit: "diamonds", PlayerID: "p1"})

	require.Len(t, *acks, 1)
	assert.Equal(t, "Order added", (*acks)[0].Message)
	require.Len(t, g.Trades, 1)
	assert.Equal(t, Trade{From: "p1", To: "p2", Suit: "diamonds", Amount: 6}, g.Trades[0])
	assert.Equal(t, 106, g.State.PlayerCash["p1"])
	assert.Equal(t, 1, g.State.PlayerCards["p2"]["diamonds"])
}

func TestAcceptAskBuysFromAsker(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {}, "p2": {"spades": 1}},
		map[string]int{"p1": 100, "p2": 100})

	g.ProcessAddOrder(Order{IsBid: false, Suit: "spades", Price: 4, PlayerID: "p2"})

	// p1 принимает продажу p2: покупает карту по 4
	g.ProcessAcceptOrder(Order{IsBid: false, Suit: "spades", PlayerID: "p1"})

	require.Len(t, g.Trades, 1)
	assert.Equal(t, Trade{From: "p2", To: "p1", Suit: "spades", Amount: 4}, g.Trades[0])
	assert.Equal(t, 96, g.State.PlayerCash["p1"])
	assert.Equal(t, 1, g.State.PlayerCards["p1"]["spades"])
}

func TestAcceptOwnOrderRejected(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"hearts": 1}, "p2": {}},
		map[string]int{"p1": 100, "p2": 100})
	acks := collectAcks(g, "accept_order_processed")

	g.ProcessAddOrder(Order{IsBid: false, Suit: "hearts", Price: 5, PlayerID: "p1"})

	// Нельзя принять собственную заявку
	g.ProcessAcceptOrder(Order{IsBid: false, Suit: "hearts", PlayerID: "p1"})

	require.Len(t, *acks, 1)
	assert.Equal(t, "Order not added", (*acks)[0].Message)
	assert.Empty(t, g.Trades)
}

func TestAcceptEmptyBookRejected(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {}, "p2": {}},
		map[string]int{"p1": 100, "p2": 100})
	acks := collectAcks(g, "accept_order_processed")

	g.ProcessAcceptOrder(Order{IsBid: true, Suit: "hearts", PlayerID: "p1"})

	require.Len(t, *acks, 1)
	assert.Equal(t, "Order not added", (*acks)[0].Message)
}

func TestTradeRejectedWithoutCard(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {}, "p2": {}},
		map[string]int{"p1": 100, "p2": 100})

	g.ProcessAddOrder(Order{IsBid: true, Suit: "hearts", Price: 5, PlayerID: "p2"})

	// У p1 нет карты hearts — сделка не проходит
	g.ProcessAcceptOrder(Order{IsBid: true, Suit: "hearts", PlayerID: "p1"})

	assert.Empty(t, g.Trades)
	assert.Equal(t, 100, g.State.PlayerCash["p1"])
	assert.Equal(t, 100, g.State.PlayerCash["p2"])
}

func TestTradeRejectedWithoutCash(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{"p1": {"hearts": 1}, "p2": {}},
		map[string]int{"p1": 100, "p2": 3})

	g.ProcessAddOrder(Order{IsBid: false, Suit: "hearts", Price: 5, PlayerID: "p1"})

	// У p2 не хватает денег на покупку
	g.ProcessAcceptOrder(Order{IsBid: false, Suit: "hearts", PlayerID: "p2"})

	assert.Empty(t, g.Trades)
	assert.Equal(t, 1, g.State.PlayerCards["p1"]["hearts"])
}
