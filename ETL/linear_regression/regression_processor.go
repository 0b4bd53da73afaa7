package linear_regression

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// Config конфигурация процессора линейной регрессии
type Config struct {
	// Количество дней для анализа
	AnalysisPeriodDays int
	// Количество игр для прогноза
	ForecastGames int
	// Уровень доверия (0.90, 0.95, 0.99)
	ConfidenceLevel float64
	// Минимальное значение r² для признания модели значимой
	MinR2Threshold float64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		AnalysisPeriodDays: 30,
		ForecastGames:      5,
		ConfidenceLevel:    0.95,
		MinR2Threshold:     0.30, // 30% объясненной вариации
	}
}

// RegressionProcessor процессор линейной регрессии по трендам прибыли игроков
type RegressionProcessor struct {
	dataService *DataService
	repository  *MySQLTrendRepository
	logger      *utils.ETLLogger
	config      Config
}

// NewRegressionProcessor создает новый процессор линейной регрессии
func NewRegressionProcessor(
	dataService *DataService,
	repository *MySQLTrendRepository,
	logger *utils.ETLLogger,
	config Config,
) *RegressionProcessor {
	return &RegressionProcessor{
		dataService: dataService,
		repository:  repository,
		logger:      logger,
		config:      config,
	}
}

// Process выполняет основной процесс: анализ данных, построение моделей
// по каждому игроку и сохранение прогнозов
func (p *RegressionProcessor) Process() error {
	startTime := time.Now()
	p.logger.Info("Запуск процесса линейной регрессии для трендов прибыли")

	// 1. Убеждаемся, что таблица существует
	if err := p.repository.EnsureTableExists(); err != nil {
		return fmt.Errorf("ошибка при проверке/создании таблицы: %w", err)
	}

	// 2. Получаем серии прибыли игроков
	p.logger.Info("Получение серий прибыли за последние %d дней", p.config.AnalysisPeriodDays)
	series, err := p.dataService.GetPlayerProfitSeries(p.config.AnalysisPeriodDays)
	if err != nil {
		return fmt.Errorf("ошибка при получении данных: %w", err)
	}

	// Стабильный порядок обхода игроков
	playerIDs := make([]string, 0, len(series))
	for playerID := range series {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	processed := 0
	for _, playerID := range playerIDs {
		points := series[playerID]
		if len(points) < 2 {
			p.logger.Debug("У игрока %s недостаточно игр для регрессии (%d)", playerID, len(points))
			continue
		}

		// 3. Строим модель по игроку
		regressionResult, err := LinearRegression(points)
		if err != nil {
			p.logger.Error("Ошибка регрессии для игрока %s: %v", playerID, err)
			continue
		}

		p.logger.Info("Игрок %s: наклон (a)=%.3f, сдвиг (b)=%.3f, R=%.3f, R²=%.3f",
			playerID, regressionResult.A, regressionResult.B, regressionResult.R, regressionResult.R2)

		// Если модель недостаточно хороша, логируем предупреждение, но прогноз делаем
		if regressionResult.R2 < p.config.MinR2Threshold {
			p.logger.Info("Низкое качество модели для игрока %s (R²=%.3f < %.3f)",
				playerID, regressionResult.R2, p.config.MinR2Threshold)
		}

		// 4. Генерируем прогнозы на будущие игры
		forecasts := GenerateForecasts(regressionResult, p.config.ForecastGames, p.config.ConfidenceLevel)

		// 5. Сохраняем тренд в БД
		trend := PlayerTrend{
			PlayerID:   playerID,
			Result:     *regressionResult,
			Forecasts:  forecasts,
			Calculated: time.Now(),
		}
		if err := p.repository.SavePlayerTrend(trend); err != nil {
			p.logger.Error("Ошибка при сохранении тренда игрока %s: %v", playerID, err)
			continue
		}

		processed++
	}

	// 6. Удаляем устаревшие тренды (старше 90 дней)
	deleteOlderThan := time.Now().AddDate(0, 0, -90)
	if err := p.repository.DeleteOldTrends(deleteOlderThan); err != nil {
		// Это некритическая ошибка, просто логируем
		p.logger.Info("Не удалось удалить устаревшие тренды: %v", err)
	}

	p.logger.Info("Процесс линейной регрессии завершен: %d игроков. Время выполнения: %v",
		processed, time.Since(startTime))
	return nil
}

// RunWithCustomConfig запускает процесс с пользовательской конфигурацией
func RunWithCustomConfig(olapDB *sql.DB, logger *utils.ETLLogger, config Config) error {
	dataService := NewDataService(olapDB)
	repository := NewMySQLTrendRepository(olapDB)
	processor := NewRegressionProcessor(dataService, repository, logger, config)

	return processor.Process()
}

// RunAsPartOfETL запускает процесс как часть ETL
func RunAsPartOfETL(olapDB *sql.DB, logger *utils.ETLLogger) error {
	return RunWithCustomConfig(olapDB, logger, DefaultConfig())
}
