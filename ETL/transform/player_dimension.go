package transform

import (
	"database/sql"
	"sort"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// PlayerDimensionProcessor формирует приращения измерения игроков
type PlayerDimensionProcessor struct {
	oltpDB *sql.DB
	olapDB *sql.DB
	logger *utils.ETLLogger
}

// NewPlayerDimensionProcessor создает новый экземпляр PlayerDimensionProcessor
func NewPlayerDimensionProcessor(oltpDB, olapDB *sql.DB, logger *utils.ETLLogger) *PlayerDimensionProcessor {
	return &PlayerDimensionProcessor{
		oltpDB: oltpDB,
		olapDB: olapDB,
		logger: logger,
	}
}

// ProcessPlayerDimension агрегирует приращения по игрокам за текущий запуск ETL.
// Приращения складываются с накопленными значениями при загрузке в OLAP.
func (p *PlayerDimensionProcessor) ProcessPlayerDimension(
	resultFacts []models.ResultFact,
	tradeFacts []models.TradeFact) ([]models.PlayerDimension, error) {

	players := make(map[string]*models.PlayerDimension)

	// Игрок мог появиться либо в итогах игры, либо в сделках
	getOrCreate := func(playerID string) *models.PlayerDimension {
		if dim, exists := players[playerID]; exists {
			return dim
		}
		dim := &models.PlayerDimension{PlayerID: playerID}
		players[playerID] = dim
		return dim
	}

	// Агрегируем итоги игр
	for _, fact := range resultFacts {
		dim := getOrCreate(fact.PlayerID)
		dim.GamesPlayed++
		dim.TotalProfit += fact.Profit
		if fact.Winner {
			dim.Wins++
		}
		if fact.FinishedAt.After(dim.LastSeen) {
			dim.LastSeen = fact.FinishedAt
		}
	}

	// Агрегируем сделки: покупки и продажи учитываются раздельно
	for _, fact := range tradeFacts {
		buyer := getOrCreate(fact.BuyerID)
		buyer.TradesBuy++
		buyer.VolumeBuy += fact.Price
		if fact.TradedAt.After(buyer.LastSeen) {
			buyer.LastSeen = fact.TradedAt
		}

		seller := getOrCreate(fact.SellerID)
		seller.TradesSell++
		seller.VolumeSell += fact.Price
		if fact.TradedAt.After(seller.LastSeen) {
			seller.LastSeen = fact.TradedAt
		}
	}

	// Стабильный порядок для детерминированной загрузки
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	dimensions := make([]models.PlayerDimension, 0, len(players))
	for _, id := range ids {
		dimensions = append(dimensions, *players[id])
	}

	return dimensions, nil
}
