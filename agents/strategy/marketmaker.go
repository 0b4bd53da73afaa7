// agents/strategy/marketmaker.go
package strategy

import (
	"github.com/LilVoxy/coursework_figgie/agents/client"
	"github.com/LilVoxy/coursework_figgie/game"
)

// MarketMaker котирует обе стороны книги с небольшим спредом
// и выравнивает свой запас карт
type MarketMaker struct{}

// NewMarketMakerClient создает клиента со стратегией маркет-мейкера
func NewMarketMakerClient(playerID, baseURI string) *client.GameClient {
	c := client.NewGameClient(playerID, baseURI)
	c.Strategy = &MarketMaker{}
	return c
}

func (s *MarketMaker) MakeDecision(c *client.GameClient) {
	if !hasBook(c) {
		return
	}

	for _, suit := range game.Suits {
		bid := bidPrice(c.GameState, suit)
		ask := askPrice(c.GameState, suit)

		// 90% шанс выставить котировки
		if c.Rng.Float64() < 0.9 {
			spread := 2 + c.Rng.Intn(4)

			var newBid, newAsk int
			switch {
			case bid == -1 && ask == -1:
				// Книга пуста — создаем новый спред
				newBid = 1 + c.Rng.Intn(10)
				newAsk = newBid + spread
			case bid == -1:
				// Нет заявки на покупку — ставим ниже предложения
				newBid = ask - spread
				if newBid < 1 {
					newBid = 1
				}
				newAsk = ask
			case ask == -1:
				// Нет заявки на продажу — ставим выше спроса
				newBid = bid
				newAsk = bid + spread
			default:
				// Обе стороны есть — пытаемся сузить спред
				newBid = min(bid+1, ask-spread)
				newAsk = max(ask-1, bid+spread)
			}

			if newBid < 0 || newAsk < 0 {
				continue
			}

			if c.Cash >= newBid {
				c.PlaceOrder(suit, newBid, true)
			}
			if c.Cards[suit] > 0 {
				c.PlaceOrder(suit, newAsk, false)
			}
		}

		// 20% шанс принять заявку для выравнивания запаса
		if c.Rng.Float64() < 0.2 {
			if c.Cards[suit] > 2 && bid > 0 {
				c.AcceptOrder(suit, true) // Принимаем bid (продаем излишек)
			} else if c.Cards[suit] < 2 && ask > 0 && c.Cash >= ask {
				c.AcceptOrder(suit, false) // Принимаем ask (пополняем запас)
			}
		}
	}
}
