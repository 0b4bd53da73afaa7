package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// Extractor координирует процесс извлечения данных из OLTP
type Extractor struct {
	db             *sql.DB
	logger         *utils.ETLLogger
	gameExtractor  *GameExtractor
	tradeExtractor *TradeExtractor
	batchSize      int
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *Extractor {
	return &Extractor{
		db:             db,
		logger:         logger,
		gameExtractor:  NewGameExtractor(db, logger),
		tradeExtractor: NewTradeExtractor(db, logger),
		batchSize:      batchSize,
	}
}

// Extract выполняет извлечение данных из OLTP для ETL процесса
// lastRunTime - время последнего запуска ETL, для инкрементального извлечения данных
// lastProcessedTradeID - ID последней обработанной сделки
func (e *Extractor) Extract(lastRunTime time.Time, lastProcessedTradeID int) (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.Info("Начало фазы Extract (Извлечение данных)")

	var extractedData models.ExtractedData
	var err error

	// Извлекаем завершенные игры
	extractedData.Games, err = e.gameExtractor.ExtractFinishedGames(lastRunTime, e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении игр: %v", err)
		return nil, fmt.Errorf("ошибка извлечения игр: %w", err)
	}

	// Извлекаем итоги игроков для этих игр
	gameIDs := make([]string, 0, len(extractedData.Games))
	for _, g := range extractedData.Games {
		gameIDs = append(gameIDs, g.ID)
	}
	extractedData.Results, err = e.gameExtractor.ExtractResults(gameIDs)
	if err != nil {
		e.logger.Error("Ошибка при извлечении итогов игроков: %v", err)
		return nil, fmt.Errorf("ошибка извлечения итогов игроков: %w", err)
	}

	// Извлекаем новые сделки
	extractedData.Trades, err = e.tradeExtractor.ExtractTrades(lastProcessedTradeID, e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении сделок: %v", err)
		return nil, fmt.Errorf("ошибка извлечения сделок: %w", err)
	}

	// Записываем время запуска
	extractedData.LastRunTS = time.Now()

	e.logger.Info("Фаза Extract завершена: %d игр, %d итогов, %d сделок. Длительность: %v",
		len(extractedData.Games),
		len(extractedData.Results),
		len(extractedData.Trades),
		time.Since(startTime),
	)

	return &extractedData, nil
}

// GetETLMetadata получает метаданные для ETL
func (e *Extractor) GetETLMetadata() (models.ETLMetadata, error) {
	var metadata models.ETLMetadata
	var err error

	// Получаем ID последней сделки
	metadata.LastProcessedTradeID, err = e.tradeExtractor.GetLastTradeID()
	if err != nil {
		e.logger.Error("Ошибка при получении ID последней сделки: %v", err)
		return metadata, err
	}

	metadata.LastRunTimestamp = time.Now()
	return metadata, nil
}

// GetGameInfo получает информацию об игре по ID
func (e *Extractor) GetGameInfo(gameID string) (*models.GameOLTP, error) {
	return e.gameExtractor.GetGameByID(gameID)
}
