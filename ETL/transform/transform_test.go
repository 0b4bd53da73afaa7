package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
	"github.com/LilVoxy/coursework_figgie/game"
)

func TestProcessTradeFacts(t *testing.T) {
	logger := utils.NewETLLogger(false)
	processor := NewTradeFactsProcessor(nil, nil, logger)

	tradedAt := time.Date(2026, 5, 12, 10, 0, 5, 0, time.UTC)
	games := []models.GameOLTP{
		{ID: "g1", GoalSuit: "hearts"},
	}
	trades := []models.TradeOLTP{
		{ID: 1, GameID: "g1", SellerID: "p1", BuyerID: "p2", Suit: "hearts", Price: 7, CreatedAt: tradedAt},
		{ID: 2, GameID: "g1", SellerID: "p2", BuyerID: "p3", Suit: "spades", Price: 4, CreatedAt: tradedAt},
	}

	facts, err := processor.ProcessTradeFacts(trades, games)
	require.NoError(t, err)
	require.Len(t, facts, 2)

	// Сделка по целевой масти помечается флагом
	assert.Equal(t, 1, facts[0].TradeID)
	assert.True(t, facts[0].IsGoalSuit)
	assert.Equal(t, "p1", facts[0].SellerID)
	assert.Equal(t, "p2", facts[0].BuyerID)
	assert.Equal(t, tradedAt, facts[0].TradedAt)

	assert.False(t, facts[1].IsGoalSuit)
}

func TestProcessResultFacts(t *testing.T) {
	logger := utils.NewETLLogger(false)
	processor := NewResultFactsProcessor(nil, nil, logger)

	finished := time.Date(2026, 5, 12, 10, 0, 15, 0, time.UTC)
	games := []models.GameOLTP{
		{ID: "g1", GoalSuit: "hearts", FinishedAt: finished},
	}
	results := []models.ResultOLTP{
		{GameID: "g1", PlayerID: "p1", GoalCards: 5, Bonus: 150, FinalCash: 500, Winner: true},
		{GameID: "g1", PlayerID: "p2", GoalCards: 0, Bonus: 0, FinalCash: 350, Winner: false},
	}

	facts, err := processor.ProcessResultFacts(results, games)
	require.NoError(t, err)
	require.Len(t, facts, 2)

	// Прибыль считается относительно стартового капитала
	assert.Equal(t, 500-game.CashPerPlayer, facts[0].Profit)
	assert.Equal(t, 350-game.CashPerPlayer, facts[1].Profit)
	assert.True(t, facts[0].Winner)
	assert.Equal(t, finished, facts[0].FinishedAt)
}

func TestProcessPlayerDimension(t *testing.T) {
	logger := utils.NewETLLogger(false)
	processor := NewPlayerDimensionProcessor(nil, nil, logger)

	finished := time.Date(2026, 5, 12, 10, 0, 15, 0, time.UTC)
	tradedAt := finished.Add(-10 * time.Second)

	resultFacts := []models.ResultFact{
		{GameID: "g1", PlayerID: "p1", Profit: 100, Winner: true, FinishedAt: finished},
		{GameID: "g1", PlayerID: "p2", Profit: -50, Winner: false, FinishedAt: finished},
	}
	tradeFacts := []models.TradeFact{
		{TradeID: 1, GameID: "g1", SellerID: "p1", BuyerID: "p2", Price: 7, TradedAt: tradedAt},
		{TradeID: 2, GameID: "g1", SellerID: "p2", BuyerID: "p1", Price: 4, TradedAt: tradedAt},
		{TradeID: 3, GameID: "g1", SellerID: "p1", BuyerID: "p3", Price: 3, TradedAt: tradedAt},
	}

	dimensions, err := processor.ProcessPlayerDimension(resultFacts, tradeFacts)
	require.NoError(t, err)
	require.Len(t, dimensions, 3)

	// Результат отсортирован по ID игроков
	assert.Equal(t, "p1", dimensions[0].PlayerID)
	assert.Equal(t, "p2", dimensions[1].PlayerID)
	assert.Equal(t, "p3", dimensions[2].PlayerID)

	p1 := dimensions[0]
	assert.Equal(t, 1, p1.GamesPlayed)
	assert.Equal(t, 1, p1.Wins)
	assert.Equal(t, 100, p1.TotalProfit)
	assert.Equal(t, 2, p1.TradesSell)
	assert.Equal(t, 1, p1.TradesBuy)
	assert.Equal(t, 10, p1.VolumeSell)
	assert.Equal(t, 4, p1.VolumeBuy)
	assert.Equal(t, finished, p1.LastSeen)

	// Игрок, встретившийся только в сделках, тоже попадает в измерение
	p3 := dimensions[2]
	assert.Equal(t, 0, p3.GamesPlayed)
	assert.Equal(t, 1, p3.TradesBuy)
	assert.Equal(t, 3, p3.VolumeBuy)
	assert.Equal(t, tradedAt, p3.LastSeen)
}
