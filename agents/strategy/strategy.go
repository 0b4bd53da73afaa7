// agents/strategy/strategy.go
package strategy

import (
	"github.com/LilVoxy/coursework_figgie/agents/client"
	"github.com/LilVoxy/coursework_figgie/game"
)

// bidPrice возвращает цену лучшей заявки на покупку по масти (-1 если нет)
func bidPrice(state *game.GameState, suit string) int {
	if state == nil || state.OrderBook == nil {
		return -1
	}
	entry, ok := state.OrderBook.Bids[suit]
	if !ok {
		return -1
	}
	return entry.Price
}

// askPrice возвращает цену лучшей заявки на продажу по масти (-1 если нет)
func askPrice(state *game.GameState, suit string) int {
	if state == nil || state.OrderBook == nil {
		return -1
	}
	entry, ok := state.OrderBook.Asks[suit]
	if !ok {
		return -1
	}
	return entry.Price
}

// hasBook проверяет, что состояние игры с книгой заявок уже получено
func hasBook(c *client.GameClient) bool {
	return c.GameState != nil && c.GameState.OrderBook != nil
}
