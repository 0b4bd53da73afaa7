// agents/strategy/accumulator.go
package strategy

import (
	"github.com/LilVoxy/coursework_figgie/agents/client"
	"github.com/LilVoxy/coursework_figgie/game"
)

// SpeculativeAccumulator выбирает одну масть и скупает ее,
// распродавая остальные масти
type SpeculativeAccumulator struct {
	TargetSuit string
}

// NewSpeculativeAccumulatorClient создает клиента со стратегией накопления
func NewSpeculativeAccumulatorClient(playerID, baseURI string) *client.GameClient {
	c := client.NewGameClient(playerID, baseURI)
	c.Strategy = &SpeculativeAccumulator{}
	return c
}

func (s *SpeculativeAccumulator) MakeDecision(c *client.GameClient) {
	if !hasBook(c) {
		return
	}

	if s.TargetSuit == "" {
		s.TargetSuit = game.Suits[c.Rng.Intn(len(game.Suits))]
		client.LogToFile(c.PlayerID, "Chosen target suit: %s", s.TargetSuit)
	}

	bid := bidPrice(c.GameState, s.TargetSuit)
	ask := askPrice(c.GameState, s.TargetSuit)

	// 80% шанс сделать ход по целевой масти
	if c.Rng.Float64() < 0.8 {
		if ask > 0 && c.Cash >= ask {
			// Покупаем по цене предложения или чуть выше
			buyPrice := ask + c.Rng.Intn(3)
			c.PlaceOrder(s.TargetSuit, buyPrice, true)
		} else if c.Cash >= 1 {
			// Ставим конкурентную заявку на покупку
			var buyPrice int
			if bid == -1 {
				buyPrice = 1 + c.Rng.Intn(15)
			} else {
				buyPrice = bid + 1 + c.Rng.Intn(3)
			}
			c.PlaceOrder(s.TargetSuit, buyPrice, true)
		}
	}

	// Распродаем остальные масти
	for _, suit := range game.Suits {
		if suit == s.TargetSuit || c.Cards[suit] <= 0 {
			continue
		}
		if c.Rng.Float64() < 0.4 {
			var sellPrice int
			if bid == -1 {
				sellPrice = 5 + c.Rng.Intn(16)
			} else {
				sellPrice = bid + 1 + c.Rng.Intn(5)
			}
			c.PlaceOrder(suit, sellPrice, false)
		}
	}
}
