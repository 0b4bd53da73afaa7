package traderrank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// Заглушка источника данных для тестов
type fakeDataService struct {
	trades map[string]map[string][]TradeInfo
}

func (s *fakeDataService) GetTradesForTraderRank() (map[string]map[string][]TradeInfo, error) {
	return s.trades, nil
}

// Заглушка репозитория, запоминающая сохраненные результаты
type fakeRepository struct {
	savedRanks   []TraderInfluenceRank
	savedWeights []TradeLinkWeight
}

func (r *fakeRepository) SaveTraderRanks(ranks []TraderInfluenceRank) error {
	r.savedRanks = ranks
	return nil
}

func (r *fakeRepository) SaveTradeLinkWeights(weights []TradeLinkWeight) error {
	r.savedWeights = weights
	return nil
}

func (r *fakeRepository) GetTopTradersByRank(limit int, date time.Time) ([]TraderInfluenceRank, error) {
	return nil, nil
}

func TestRoundToThousandth(t *testing.T) {
	assert.Equal(t, 0.123, RoundToThousandth(0.1234))
	assert.Equal(t, 0.124, RoundToThousandth(0.1235))
	assert.Equal(t, 1.0, RoundToThousandth(0.9999))
}

func TestCalculateCountFactor(t *testing.T) {
	// Пять сделок — стандартное количество, фактор равен 1
	trades := make([]TradeInfo, 5)
	assert.InDelta(t, 1.0, calculateCountFactor(trades), 0.0001)

	// Одна сделка дает меньший фактор, но не ноль
	one := calculateCountFactor([]TradeInfo{{Price: 5}})
	assert.Greater(t, one, 0.0)
	assert.Less(t, one, 1.0)

	assert.Equal(t, 0.0, calculateCountFactor(nil))
}

func TestCalculateVolumeFactor(t *testing.T) {
	// Оборот в 50 монет (стоимость входа) — фактор 1
	assert.InDelta(t, 1.0, calculateVolumeFactor([]TradeInfo{{Price: 50}}), 0.0001)

	// Большой оборот ограничивается сверху: 0.5 + 0.5*2 = 1.5
	assert.InDelta(t, 1.5, calculateVolumeFactor([]TradeInfo{{Price: 1000}}), 0.0001)

	assert.Equal(t, 0.0, calculateVolumeFactor(nil))
}

func TestCalculateGoalSuitFactor(t *testing.T) {
	trades := []TradeInfo{
		{Price: 5, IsGoalSuit: true},
		{Price: 3, IsGoalSuit: false},
		{Price: 7, IsGoalSuit: true},
		{Price: 2, IsGoalSuit: false},
	}
	assert.InDelta(t, 0.5, calculateGoalSuitFactor(trades), 0.0001)

	assert.Equal(t, 0.0, calculateGoalSuitFactor(nil))
}

func TestCalculateTradeLinkWeights(t *testing.T) {
	logger := utils.NewETLLogger(false)
	tradesMap := map[string]map[string][]TradeInfo{
		"alice": {
			"bob": {
				{Price: 25, IsGoalSuit: true},
				{Price: 25, IsGoalSuit: true},
			},
		},
	}

	weights, err := CalculateTradeLinkWeights(tradesMap, DefaultConfig(), logger)
	require.NoError(t, err)
	require.Len(t, weights, 1)

	w := weights[0]
	assert.Equal(t, "alice", w.SellerID)
	assert.Equal(t, "bob", w.BuyerID)

	// Оборот 50 монет: фактор объема 1; все сделки по целевой масти: фактор 1
	assert.InDelta(t, 1.0, w.VolumeFactor, 0.001)
	assert.InDelta(t, 1.0, w.GoalSuitFactor, 0.001)

	// Итоговый вес — взвешенная сумма факторов
	expected := RoundToThousandth(0.4*w.CountFactor + 0.35*w.VolumeFactor + 0.25*w.GoalSuitFactor)
	assert.InDelta(t, expected, w.Weight, 0.001)
}

func TestBuildTraderGraph(t *testing.T) {
	weights := []TradeLinkWeight{
		{SellerID: "alice", BuyerID: "bob", Weight: 0.8},
		{SellerID: "alice", BuyerID: "carol", Weight: 0.4},
		{SellerID: "bob", BuyerID: "carol", Weight: 0.6},
	}

	graph := BuildTraderGraph(weights)
	require.Len(t, graph, 3)

	// Исходящая степень продавца — сумма весов его связей
	assert.InDelta(t, 1.2, graph["alice"].OutDegree, 0.0001)
	assert.InDelta(t, 0.6, graph["bob"].OutDegree, 0.0001)
	assert.InDelta(t, 0.0, graph["carol"].OutDegree, 0.0001)

	// Входящие связи покупателя
	assert.InDelta(t, 0.8, graph["bob"].IncomingLinks["alice"], 0.0001)
	assert.InDelta(t, 0.4, graph["carol"].IncomingLinks["alice"], 0.0001)
	assert.InDelta(t, 0.6, graph["carol"].IncomingLinks["bob"], 0.0001)
}

func TestCalculateTraderRankConverges(t *testing.T) {
	logger := utils.NewETLLogger(false)
	weights := []TradeLinkWeight{
		{SellerID: "alice", BuyerID: "bob", Weight: 1.0},
	}
	graph := BuildTraderGraph(weights)

	result, err := CalculateTraderRank(graph, DefaultConfig(), logger)
	require.NoError(t, err)

	// Без входящих связей ранг сходится к (1 - damping)
	assert.InDelta(t, 0.15, graph["alice"].TradeRank, 0.001)

	// Покупатель получает вклад продавца и ранжируется выше
	assert.Greater(t, graph["bob"].TradeRank, graph["alice"].TradeRank)
	assert.InDelta(t, 0.15+0.85*0.15, graph["bob"].TradeRank, 0.001)

	// Сходимость достигнута до исчерпания итераций
	assert.Less(t, result.IterationCount, DefaultConfig().MaxIterations)
	assert.Less(t, result.ConvergenceDelta, 0.001)
}

func TestCalculateTraderRankEmptyGraph(t *testing.T) {
	logger := utils.NewETLLogger(false)
	_, err := CalculateTraderRank(map[string]*TraderNode{}, DefaultConfig(), logger)
	assert.Error(t, err)
}

func TestNormalizeAndCategorizeRanks(t *testing.T) {
	graph := map[string]*TraderNode{
		"low":    {PlayerID: "low", TradeRank: 0.1},
		"mid":    {PlayerID: "mid", TradeRank: 0.5},
		"high":   {PlayerID: "high", TradeRank: 0.9},
		"lowest": {PlayerID: "lowest", TradeRank: 0.05},
	}
	playerIDs := []string{"high", "low", "lowest", "mid"}

	ranks := normalizeAndCategorizeRanks(graph, playerIDs)
	require.Len(t, ranks, 4)

	byID := make(map[string]TraderInfluenceRank)
	for _, r := range ranks {
		byID[r.PlayerID] = r
	}

	assert.Equal(t, "high", byID["high"].Category)
	assert.Equal(t, "medium", byID["mid"].Category)
	assert.Equal(t, "low", byID["lowest"].Category)
	assert.Equal(t, 1.0, byID["high"].RankPercentile)
	assert.Equal(t, 0.0, byID["lowest"].RankPercentile)
}

func TestRunSavesRanksAndWeights(t *testing.T) {
	logger := utils.NewETLLogger(false)
	dataService := &fakeDataService{
		trades: map[string]map[string][]TradeInfo{
			"alice": {"bob": {{Price: 10, IsGoalSuit: true}}},
			"bob":   {"alice": {{Price: 4, IsGoalSuit: false}, {Price: 6, IsGoalSuit: false}}},
		},
	}
	repository := &fakeRepository{}

	require.NoError(t, Run(dataService, repository, logger))

	require.Len(t, repository.savedRanks, 2)
	require.Len(t, repository.savedWeights, 2)

	// Всем рангам проставлены итоговые параметры сходимости
	for _, rank := range repository.savedRanks {
		assert.Greater(t, rank.IterationCount, 0)
		assert.Greater(t, rank.TradeRank, 0.0)
	}
}

func TestRunSkipsWhenNoTrades(t *testing.T) {
	logger := utils.NewETLLogger(false)
	repository := &fakeRepository{}

	require.NoError(t, Run(&fakeDataService{trades: map[string]map[string][]TradeInfo{}}, repository, logger))
	assert.Empty(t, repository.savedRanks)
	assert.Empty(t, repository.savedWeights)
}
