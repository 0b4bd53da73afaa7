package linear_regression

import (
	"time"
)

// DataPoint представляет точку данных для линейной регрессии
type DataPoint struct {
	X    float64   // Порядковый номер завершенной игры для игрока
	Y    float64   // Накопленная прибыль игрока после этой игры
	Date time.Time // Дата завершения игры
}

// RegressionResult содержит результаты линейной регрессии
type RegressionResult struct {
	A           float64     // Коэффициент наклона (прибыль за игру)
	B           float64     // Сдвиг
	R           float64     // Коэффициент корреляции Пирсона
	R2          float64     // Коэффициент детерминации
	PeriodStart time.Time   // Начало анализируемого периода
	PeriodEnd   time.Time   // Конец анализируемого периода
	DataPoints  []DataPoint // Исходные точки данных
}

// ForecastPoint представляет точку прогноза прибыли
type ForecastPoint struct {
	GameIndex     float64 // Порядковый номер будущей игры
	ForecastValue float64 // Прогнозируемая накопленная прибыль
	CILower       float64 // Нижняя граница доверительного интервала
	CIUpper       float64 // Верхняя граница доверительного интервала
}

// PlayerTrend содержит результат анализа тренда прибыли игрока
type PlayerTrend struct {
	PlayerID   string          // ID игрока
	Result     RegressionResult // Модель регрессии
	Forecasts  []ForecastPoint  // Прогнозы на будущие игры
	Calculated time.Time        // Дата расчета
}

// TrendRepository интерфейс для работы с хранилищем трендов прибыли
type TrendRepository interface {
	// EnsureTableExists создает таблицу трендов, если она не существует
	EnsureTableExists() error

	// SavePlayerTrend сохраняет тренд прибыли игрока в БД
	SavePlayerTrend(trend PlayerTrend) error

	// DeleteOldTrends удаляет устаревшие тренды (старше указанной даты)
	DeleteOldTrends(olderThan time.Time) error
}
