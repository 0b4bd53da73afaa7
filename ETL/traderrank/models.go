package traderrank

import (
	"time"
)

// TraderNode представляет узел игрока в графе торговых связей
type TraderNode struct {
	PlayerID      string             // ID игрока
	IncomingLinks map[string]float64 // ID продавца -> вес связи
	OutDegree     float64            // Сумма весов исходящих связей
	TradeRank     float64            // Текущий расчетный ранг игрока
	PrevRank      float64            // Предыдущий ранг для проверки сходимости
}

// TradeLinkWeight представляет вес торговой связи между игроками.
// Направление связи: от продавца к покупателю, то есть влиятельность
// "перетекает" к тому, кто покупает карты.
type TradeLinkWeight struct {
	SellerID        string    // ID продавца
	BuyerID         string    // ID покупателя
	Weight          float64   // Итоговый вес связи
	CountFactor     float64   // Фактор количества сделок
	VolumeFactor    float64   // Фактор денежного оборота
	GoalSuitFactor  float64   // Фактор доли сделок по целевой масти
	CalculationDate time.Time // Дата расчета
}

// TraderInfluenceRank представляет ранг влиятельности игрока на рынке
type TraderInfluenceRank struct {
	PlayerID         string    // ID игрока
	TradeRank        float64   // Значение TradeRank
	RankPercentile   float64   // Процентиль ранга
	Category         string    // Категория влияния (high, medium, low)
	CalculationDate  time.Time // Дата расчета
	IterationCount   int       // Количество итераций до сходимости
	ConvergenceDelta float64   // Дельта сходимости
}

// TraderRankConfig содержит параметры для алгоритма TradeRank
type TraderRankConfig struct {
	DampingFactor      float64 // Коэффициент затухания (обычно 0.85)
	MaxIterations      int     // Максимальное количество итераций
	ConvergenceEpsilon float64 // Порог сходимости
	CountFactor        float64 // Вес фактора количества сделок
	VolumeFactor       float64 // Вес фактора денежного оборота
	GoalSuitFactor     float64 // Вес фактора сделок по целевой масти
}

// TraderRankResult содержит результаты расчета TradeRank
type TraderRankResult struct {
	TraderRanks      []TraderInfluenceRank // Рассчитанные ранги игроков
	Weights          []TradeLinkWeight     // Рассчитанные веса связей
	IterationCount   int                   // Количество выполненных итераций
	ConvergenceDelta float64               // Итоговая дельта сходимости
	CalculationDate  time.Time             // Дата расчета
}

// DefaultConfig возвращает конфигурацию TradeRank по умолчанию
func DefaultConfig() TraderRankConfig {
	return TraderRankConfig{
		DampingFactor:      0.85,
		MaxIterations:      100,
		ConvergenceEpsilon: 0.0001,
		CountFactor:        0.4,
		VolumeFactor:       0.35,
		GoalSuitFactor:     0.25,
	}
}

// TraderRankRepository интерфейс для работы с хранилищем рангов
type TraderRankRepository interface {
	// SaveTraderRanks сохраняет ранги игроков в БД
	SaveTraderRanks(ranks []TraderInfluenceRank) error

	// SaveTradeLinkWeights сохраняет веса торговых связей в БД
	SaveTradeLinkWeights(weights []TradeLinkWeight) error

	// GetTopTradersByRank получает топ-N игроков по рангу
	GetTopTradersByRank(limit int, date time.Time) ([]TraderInfluenceRank, error)
}
