// agents/strategy/aggressive.go
package strategy

import (
	"github.com/LilVoxy/coursework_figgie/agents/client"
	"github.com/LilVoxy/coursework_figgie/game"
)

// AggressiveTrader активно торгует всеми мастями:
// продает свои карты дороже текущего спроса и покупает дешевле предложения
type AggressiveTrader struct{}

// NewAggressiveTraderClient создает клиента с агрессивной стратегией
func NewAggressiveTraderClient(playerID, baseURI string) *client.GameClient {
	c := client.NewGameClient(playerID, baseURI)
	c.Strategy = &AggressiveTrader{}
	return c
}

func (s *AggressiveTrader) MakeDecision(c *client.GameClient) {
	if !hasBook(c) {
		return
	}

	for _, suit := range game.Suits {
		bid := bidPrice(c.GameState, suit)
		ask := askPrice(c.GameState, suit)

		// 50% шанс сделать ход
		if c.Rng.Float64() < 0.5 {
			if c.Cards[suit] > 0 {
				// Есть карта — пытаемся продать дороже
				var sellPrice int
				if bid == -1 {
					sellPrice = 5 + c.Rng.Intn(16)
				} else {
					sellPrice = bid + 1 + c.Rng.Intn(5)
				}
				c.PlaceOrder(suit, sellPrice, false)
			} else if c.Cash >= 1 {
				// Карты нет — пытаемся купить дешевле
				var buyPrice int
				if ask == -1 {
					buyPrice = 1 + c.Rng.Intn(15)
				} else {
					buyPrice = ask - 1 - c.Rng.Intn(5)
					if buyPrice < 1 {
						buyPrice = 1
					}
				}
				c.PlaceOrder(suit, buyPrice, true)
			}
		}

		// 30% шанс принять стоящую заявку
		if c.Rng.Float64() < 0.3 {
			if c.Cards[suit] > 0 && bid > 0 {
				c.AcceptOrder(suit, true) // Принимаем bid (продаем)
			} else if ask > 0 && c.Cash >= ask {
				c.AcceptOrder(suit, false) // Принимаем ask (покупаем)
			}
		}
	}
}
