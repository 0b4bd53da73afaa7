package transform

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// Transformer координирует процесс преобразования данных из OLTP в OLAP
type Transformer struct {
	oltpDB             *sql.DB
	olapDB             *sql.DB
	logger             *utils.ETLLogger
	tradeFProcessor    *TradeFactsProcessor
	resultFProcessor   *ResultFactsProcessor
	playerDimProcessor *PlayerDimensionProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(oltpDB, olapDB *sql.DB, logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		oltpDB:             oltpDB,
		olapDB:             olapDB,
		logger:             logger,
		tradeFProcessor:    NewTradeFactsProcessor(oltpDB, olapDB, logger),
		resultFProcessor:   NewResultFactsProcessor(oltpDB, olapDB, logger),
		playerDimProcessor: NewPlayerDimensionProcessor(oltpDB, olapDB, logger),
	}
}

// Transform выполняет полный процесс преобразования данных из OLTP в OLAP
func (t *Transformer) Transform(extractedData *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	transformedData := &models.TransformedData{}

	// 1. Преобразование сделок в факты
	t.logger.Info("Преобразование фактов сделок...")
	tradeFacts, err := t.tradeFProcessor.ProcessTradeFacts(extractedData.Trades, extractedData.Games)
	if err != nil {
		t.logger.Error("Ошибка при преобразовании фактов сделок: %v", err)
		return nil, fmt.Errorf("ошибка при преобразовании фактов сделок: %w", err)
	}
	transformedData.Trades = tradeFacts

	// 2. Преобразование итогов игроков в факты результатов
	t.logger.Info("Преобразование фактов результатов...")
	resultFacts, err := t.resultFProcessor.ProcessResultFacts(extractedData.Results, extractedData.Games)
	if err != nil {
		t.logger.Error("Ошибка при преобразовании фактов результатов: %v", err)
		return nil, fmt.Errorf("ошибка при преобразовании фактов результатов: %w", err)
	}
	transformedData.Results = resultFacts

	// 3. Формирование приращений измерения игроков
	t.logger.Info("Формирование измерения игроков...")
	playerDimensions, err := t.playerDimProcessor.ProcessPlayerDimension(resultFacts, tradeFacts)
	if err != nil {
		t.logger.Error("Ошибка при формировании измерения игроков: %v", err)
		return nil, fmt.Errorf("ошибка при формировании измерения игроков: %w", err)
	}
	transformedData.Players = playerDimensions

	// Заполняем метаданные
	transformedData.Metadata = models.ETLMetadata{
		LastRunTimestamp: time.Now(),
		GamesProcessed:   len(extractedData.Games),
		TradesProcessed:  len(extractedData.Trades),
		ResultsProcessed: len(extractedData.Results),
	}

	// Устанавливаем последний обработанный ID сделки
	for _, trade := range extractedData.Trades {
		if trade.ID > transformedData.Metadata.LastProcessedTradeID {
			transformedData.Metadata.LastProcessedTradeID = trade.ID
		}
	}

	duration := time.Since(startTime)
	t.logger.Info("Фаза Transform завершена. Длительность: %v", duration)

	return transformedData, nil
}
