package transform

import (
	"database/sql"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
	"github.com/LilVoxy/coursework_figgie/game"
)

// ResultFactsProcessor преобразует итоги игроков OLTP в факты результатов OLAP
type ResultFactsProcessor struct {
	oltpDB *sql.DB
	olapDB *sql.DB
	logger *utils.ETLLogger
}

// NewResultFactsProcessor создает новый экземпляр ResultFactsProcessor
func NewResultFactsProcessor(oltpDB, olapDB *sql.DB, logger *utils.ETLLogger) *ResultFactsProcessor {
	return &ResultFactsProcessor{
		oltpDB: oltpDB,
		olapDB: olapDB,
		logger: logger,
	}
}

// ProcessResultFacts формирует факты результатов игроков
// Прибыль считается относительно стартового капитала игрока
func (p *ResultFactsProcessor) ProcessResultFacts(
	results []models.ResultOLTP,
	games []models.GameOLTP) ([]models.ResultFact, error) {

	// Карта времени завершения по играм
	finishedAt := make(map[string]models.GameOLTP, len(games))
	for _, g := range games {
		finishedAt[g.ID] = g
	}

	facts := make([]models.ResultFact, 0, len(results))
	for _, result := range results {
		fact := models.ResultFact{
			GameID:    result.GameID,
			PlayerID:  result.PlayerID,
			GoalCards: result.GoalCards,
			Bonus:     result.Bonus,
			FinalCash: result.FinalCash,
			Profit:    result.FinalCash - game.CashPerPlayer,
			Winner:    result.Winner,
		}
		if g, ok := finishedAt[result.GameID]; ok {
			fact.FinishedAt = g.FinishedAt
		}
		facts = append(facts, fact)
	}

	return facts, nil
}
