package traderrank

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// RoundToThousandth округляет число до тысячных (3 знака после запятой)
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// TradeInfo содержит информацию о сделке для расчета факторов связи
type TradeInfo struct {
	Price      int  // Цена сделки
	IsGoalSuit bool // Была ли сделка по целевой масти
}

// DataService интерфейс для получения данных для TradeRank
type DataService interface {
	// GetTradesForTraderRank возвращает карту сделок для расчета TradeRank
	// в формате: sellerID -> buyerID -> []TradeInfo
	GetTradesForTraderRank() (map[string]map[string][]TradeInfo, error)
}

// CalculateTraderRank вычисляет ранги игроков на основе построенного графа торговых связей
func CalculateTraderRank(
	traderGraph map[string]*TraderNode,
	config TraderRankConfig,
	logger *utils.ETLLogger) (TraderRankResult, error) {

	if len(traderGraph) == 0 {
		return TraderRankResult{}, fmt.Errorf("пустой граф торговых связей")
	}

	logger.Info("Начинаем расчет TradeRank для %d игроков", len(traderGraph))

	// Инициализируем начальные ранги всех игроков равными значениями
	initialRank := 1.0 / float64(len(traderGraph))
	for _, node := range traderGraph {
		node.TradeRank = initialRank
		node.PrevRank = 0.0 // Нужно для первой итерации и проверки сходимости
	}

	// Запоминаем ID игроков для стабильных итераций
	playerIDs := make([]string, 0, len(traderGraph))
	for playerID := range traderGraph {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs) // Сортируем для стабильности вычислений

	// Итеративно вычисляем TradeRank
	var maxDelta float64
	var iteration int
	for iteration = 0; iteration < config.MaxIterations; iteration++ {
		// Сохраняем текущие ранги перед обновлением
		for _, playerID := range playerIDs {
			traderGraph[playerID].PrevRank = traderGraph[playerID].TradeRank
		}

		// Вычисляем новые ранги для каждого игрока
		for _, playerID := range playerIDs {
			node := traderGraph[playerID]

			sum := 0.0
			for sellerID, weight := range node.IncomingLinks {
				sellerNode, exists := traderGraph[sellerID]
				if !exists {
					continue // Пропускаем продавца, если его нет в графе
				}

				contribution := sellerNode.PrevRank * weight
				if sellerNode.OutDegree > 0 {
					contribution /= sellerNode.OutDegree
				}
				sum += contribution
			}

			// Новый ранг по формуле TradeRank
			node.TradeRank = (1 - config.DampingFactor) + config.DampingFactor*sum
		}

		// Проверяем сходимость (максимальное изменение ранга)
		maxDelta = 0.0
		for _, playerID := range playerIDs {
			node := traderGraph[playerID]
			delta := math.Abs(node.TradeRank - node.PrevRank)
			if delta > maxDelta {
				maxDelta = delta
			}
		}

		logger.Debug("Итерация %d, максимальная дельта: %.6f", iteration+1, maxDelta)

		// Если достигли желаемой точности, прерываем итерации
		if maxDelta < config.ConvergenceEpsilon {
			logger.Info("Сходимость достигнута на итерации %d, дельта: %.6f", iteration+1, maxDelta)
			break
		}
	}

	// Нормализуем ранги после завершения итераций
	traderRanks := normalizeAndCategorizeRanks(traderGraph, playerIDs)

	result := TraderRankResult{
		TraderRanks:      traderRanks,
		IterationCount:   iteration + 1,
		ConvergenceDelta: RoundToThousandth(maxDelta),
		CalculationDate:  time.Now(),
	}

	logger.Info("Расчет TradeRank завершен за %d итераций", result.IterationCount)
	return result, nil
}

// normalizeAndCategorizeRanks нормализует ранги и категоризирует игроков
func normalizeAndCategorizeRanks(traderGraph map[string]*TraderNode, playerIDs []string) []TraderInfluenceRank {
	// Создаем список для сортировки рангов
	ranks := make([]float64, 0, len(traderGraph))
	for _, playerID := range playerIDs {
		ranks = append(ranks, traderGraph[playerID].TradeRank)
	}
	sort.Float64s(ranks)

	traderRanks := make([]TraderInfluenceRank, 0, len(traderGraph))
	calculationTime := time.Now()

	for _, playerID := range playerIDs {
		rank := traderGraph[playerID].TradeRank
		percentile := getPercentile(ranks, rank)

		// Определяем категорию
		var category string
		if percentile >= 0.9 {
			category = "high"
		} else if percentile >= 0.5 {
			category = "medium"
		} else {
			category = "low"
		}

		traderRanks = append(traderRanks, TraderInfluenceRank{
			PlayerID:         playerID,
			TradeRank:        RoundToThousandth(rank),
			RankPercentile:   RoundToThousandth(percentile),
			Category:         category,
			CalculationDate:  calculationTime,
			IterationCount:   0, // Будет установлено позже
			ConvergenceDelta: 0, // Будет установлено позже
		})
	}

	return traderRanks
}

// getPercentile возвращает процентиль значения в отсортированном списке
func getPercentile(sortedValues []float64, value float64) float64 {
	if len(sortedValues) < 2 {
		return 0
	}

	position := 0
	for i, v := range sortedValues {
		if v <= value {
			position = i
		} else {
			break
		}
	}

	return float64(position) / float64(len(sortedValues)-1)
}

// CalculateTradeLinkWeights вычисляет веса торговых связей
func CalculateTradeLinkWeights(
	tradesMap map[string]map[string][]TradeInfo,
	config TraderRankConfig,
	logger *utils.ETLLogger) ([]TradeLinkWeight, error) {

	logger.Info("Вычисление весов торговых связей")

	weights := make([]TradeLinkWeight, 0)

	for sellerID, buyers := range tradesMap {
		for buyerID, trades := range buyers {
			countFactor := calculateCountFactor(trades)
			volumeFactor := calculateVolumeFactor(trades)
			goalSuitFactor := calculateGoalSuitFactor(trades)

			// Итоговый вес как взвешенная сумма факторов
			weight := config.CountFactor*countFactor +
				config.VolumeFactor*volumeFactor +
				config.GoalSuitFactor*goalSuitFactor

			weights = append(weights, TradeLinkWeight{
				SellerID:        sellerID,
				BuyerID:         buyerID,
				Weight:          RoundToThousandth(weight),
				CountFactor:     RoundToThousandth(countFactor),
				VolumeFactor:    RoundToThousandth(volumeFactor),
				GoalSuitFactor:  RoundToThousandth(goalSuitFactor),
				CalculationDate: time.Now(),
			})
		}
	}

	logger.Info("Вычислено %d весов торговых связей", len(weights))
	return weights, nil
}

// calculateCountFactor вычисляет фактор количества сделок.
// Квадратный корень сглаживает доминирование очень активных пар игроков.
func calculateCountFactor(trades []TradeInfo) float64 {
	if len(trades) == 0 {
		return 0
	}

	// Нормализуем относительно "стандартного" количества сделок между парой
	standardCount := 5.0
	return math.Sqrt(float64(len(trades))) / math.Sqrt(standardCount)
}

// calculateVolumeFactor вычисляет фактор денежного оборота между парой игроков
func calculateVolumeFactor(trades []TradeInfo) float64 {
	if len(trades) == 0 {
		return 0
	}

	totalVolume := 0
	for _, trade := range trades {
		totalVolume += trade.Price
	}

	// Нормализуем относительно "стандартного" оборота (50 монет, стоимость входа)
	// и ограничиваем сверху для предотвращения доминирования фактора
	standardVolume := 50.0
	volumeRatio := float64(totalVolume) / standardVolume

	return 0.5 + 0.5*math.Min(volumeRatio, 2.0)
}

// calculateGoalSuitFactor вычисляет долю сделок по целевой масти.
// Игроки, торгующие целевой мастью, получают больший вес связи.
func calculateGoalSuitFactor(trades []TradeInfo) float64 {
	if len(trades) == 0 {
		return 0
	}

	goalSuitCount := 0
	for _, trade := range trades {
		if trade.IsGoalSuit {
			goalSuitCount++
		}
	}

	return float64(goalSuitCount) / float64(len(trades))
}

// BuildTraderGraph строит граф игроков на основе весов торговых связей
func BuildTraderGraph(weights []TradeLinkWeight) map[string]*TraderNode {
	traderGraph := make(map[string]*TraderNode)

	// Сначала собираем все уникальные ID игроков
	for _, weight := range weights {
		if _, exists := traderGraph[weight.SellerID]; !exists {
			traderGraph[weight.SellerID] = &TraderNode{
				PlayerID:      weight.SellerID,
				IncomingLinks: make(map[string]float64),
				OutDegree:     0,
			}
		}

		if _, exists := traderGraph[weight.BuyerID]; !exists {
			traderGraph[weight.BuyerID] = &TraderNode{
				PlayerID:      weight.BuyerID,
				IncomingLinks: make(map[string]float64),
				OutDegree:     0,
			}
		}
	}

	// Заполняем связи и исходящие степени
	for _, weight := range weights {
		// Добавляем связь от продавца к покупателю
		traderGraph[weight.BuyerID].IncomingLinks[weight.SellerID] = weight.Weight

		// Увеличиваем исходящую степень продавца
		traderGraph[weight.SellerID].OutDegree += weight.Weight
	}

	return traderGraph
}

// RunWithCustomConfig запускает TradeRank с пользовательской конфигурацией
func RunWithCustomConfig(
	dataService DataService,
	repository TraderRankRepository,
	logger *utils.ETLLogger,
	config TraderRankConfig) error {

	startTime := time.Now()

	// 1. Извлекаем данные для расчета факторов
	logger.Info("Извлечение данных для TradeRank")
	tradesMap, err := dataService.GetTradesForTraderRank()
	if err != nil {
		return fmt.Errorf("ошибка при извлечении данных: %w", err)
	}

	if len(tradesMap) == 0 {
		logger.Info("Нет сделок для расчета TradeRank, пропускаем")
		return nil
	}

	// 2. Вычисляем веса торговых связей
	weights, err := CalculateTradeLinkWeights(tradesMap, config, logger)
	if err != nil {
		return fmt.Errorf("ошибка при вычислении весов связей: %w", err)
	}

	// 3. Строим граф игроков
	logger.Info("Построение графа игроков")
	traderGraph := BuildTraderGraph(weights)

	// 4. Запускаем алгоритм TradeRank
	result, err := CalculateTraderRank(traderGraph, config, logger)
	if err != nil {
		return fmt.Errorf("ошибка при вычислении TradeRank: %w", err)
	}

	// 5. Сохраняем результаты
	logger.Info("Сохранение результатов TradeRank")

	// Устанавливаем недостающие поля для всех рангов
	for i := range result.TraderRanks {
		result.TraderRanks[i].IterationCount = result.IterationCount
		result.TraderRanks[i].ConvergenceDelta = result.ConvergenceDelta
	}

	if err := repository.SaveTraderRanks(result.TraderRanks); err != nil {
		return fmt.Errorf("ошибка при сохранении рангов игроков: %w", err)
	}

	if err := repository.SaveTradeLinkWeights(weights); err != nil {
		return fmt.Errorf("ошибка при сохранении весов связей: %w", err)
	}

	logger.Info("TradeRank успешно выполнен. Общее время выполнения: %v", time.Since(startTime))
	return nil
}

// Run запускает TradeRank с конфигурацией по умолчанию
func Run(dataService DataService, repository TraderRankRepository, logger *utils.ETLLogger) error {
	return RunWithCustomConfig(dataService, repository, logger, DefaultConfig())
}
