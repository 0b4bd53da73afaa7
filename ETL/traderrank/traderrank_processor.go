package traderrank

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// TraderRankProcessor отвечает за вычисление и сохранение TradeRank
type TraderRankProcessor struct {
	olapDB      *sql.DB
	logger      *utils.ETLLogger
	dataService DataService
	repository  *MySQLTraderRankRepository
	config      TraderRankConfig
}

// NewTraderRankProcessor создает новый экземпляр TraderRankProcessor
func NewTraderRankProcessor(olapDB *sql.DB, logger *utils.ETLLogger) *TraderRankProcessor {
	return &TraderRankProcessor{
		olapDB:      olapDB,
		logger:      logger,
		dataService: NewMySQLDataService(olapDB, logger),
		repository:  NewMySQLTraderRankRepository(olapDB, logger),
		config:      DefaultConfig(),
	}
}

// Process запускает процесс вычисления TradeRank
func (p *TraderRankProcessor) Process() error {
	startTime := time.Now()
	p.logger.Info("Запуск процесса TradeRank")

	// Убеждаемся, что таблицы существуют
	if err := p.repository.CreateTables(); err != nil {
		return fmt.Errorf("ошибка при создании таблиц TradeRank: %w", err)
	}

	err := RunWithCustomConfig(p.dataService, p.repository, p.logger, p.config)
	if err != nil {
		return fmt.Errorf("ошибка при выполнении TradeRank: %w", err)
	}

	p.logger.Info("Процесс TradeRank успешно завершен. Время выполнения: %v", time.Since(startTime))
	return nil
}

// SetConfig устанавливает конфигурацию для TradeRank
func (p *TraderRankProcessor) SetConfig(config TraderRankConfig) {
	p.config = config
}

// GetConfig возвращает текущую конфигурацию TradeRank
func (p *TraderRankProcessor) GetConfig() TraderRankConfig {
	return p.config
}

// GetTopTraders возвращает топ-N игроков по TradeRank
func (p *TraderRankProcessor) GetTopTraders(n int) ([]TraderInfluenceRank, error) {
	return p.repository.GetTopTradersByRank(n, time.Now())
}
