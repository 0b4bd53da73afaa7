package transform

import (
	"database/sql"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// TradeFactsProcessor преобразует сделки OLTP в факты сделок OLAP
type TradeFactsProcessor struct {
	oltpDB *sql.DB
	olapDB *sql.DB
	logger *utils.ETLLogger
}

// NewTradeFactsProcessor создает новый экземпляр TradeFactsProcessor
func NewTradeFactsProcessor(oltpDB, olapDB *sql.DB, logger *utils.ETLLogger) *TradeFactsProcessor {
	return &TradeFactsProcessor{
		oltpDB: oltpDB,
		olapDB: olapDB,
		logger: logger,
	}
}

// ProcessTradeFacts формирует факты сделок
// Признак is_goal_suit определяется по целевой масти игры,
// поэтому сделки незавершенных игр получают false до следующего запуска
func (p *TradeFactsProcessor) ProcessTradeFacts(
	trades []models.TradeOLTP,
	games []models.GameOLTP) ([]models.TradeFact, error) {

	// Карта целевых мастей по играм
	goalSuits := make(map[string]string, len(games))
	for _, game := range games {
		goalSuits[game.ID] = game.GoalSuit
	}

	facts := make([]models.TradeFact, 0, len(trades))
	for _, trade := range trades {
		goalSuit, known := goalSuits[trade.GameID]

		// Если игры нет в текущей выборке, запрашиваем ее целевую масть отдельно
		if !known {
			err := p.oltpDB.QueryRow(
				"SELECT goal_suit FROM games WHERE id = ?", trade.GameID,
			).Scan(&goalSuit)
			if err != nil {
				p.logger.Debug("Целевая масть для игры %s недоступна: %v", trade.GameID, err)
				goalSuit = ""
			}
			goalSuits[trade.GameID] = goalSuit
		}

		facts = append(facts, models.TradeFact{
			TradeID:    trade.ID,
			GameID:     trade.GameID,
			SellerID:   trade.SellerID,
			BuyerID:    trade.BuyerID,
			Suit:       trade.Suit,
			Price:      trade.Price,
			IsGoalSuit: goalSuit != "" && trade.Suit == goalSuit,
			TradedAt:   trade.CreatedAt,
		})
	}

	return facts, nil
}
