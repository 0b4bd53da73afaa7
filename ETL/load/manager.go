package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// LoadManager отвечает за управление процессом загрузки данных в OLAP
type LoadManager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader *OLAPLoader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:     db,
		logger: logger,
		loader: NewOLAPLoader(db, logger),
	}
}

// EnsureOLAPTables создает таблицы OLAP-куба при первом запуске
func (m *LoadManager) EnsureOLAPTables() error {
	return m.loader.CreateOLAPTables()
}

// Load выполняет фазу загрузки данных ETL-процесса
// Принимает обработанные данные из фазы Transform
func (m *LoadManager) Load(transformedData *models.TransformedData) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	// 1. Загружаем факты сделок
	if len(transformedData.Trades) > 0 {
		m.logger.Info("Загрузка фактов сделок...")
		if err := m.loader.LoadTradeFacts(transformedData.Trades); err != nil {
			m.logger.Error("Ошибка при загрузке фактов сделок: %v", err)
			return fmt.Errorf("ошибка при загрузке фактов сделок: %w", err)
		}
	}

	// 2. Загружаем факты результатов
	if len(transformedData.Results) > 0 {
		m.logger.Info("Загрузка фактов результатов...")
		if err := m.loader.LoadResultFacts(transformedData.Results); err != nil {
			m.logger.Error("Ошибка при загрузке фактов результатов: %v", err)
			return fmt.Errorf("ошибка при загрузке фактов результатов: %w", err)
		}
	}

	// 3. Загружаем измерение игроков
	if len(transformedData.Players) > 0 {
		m.logger.Info("Загрузка измерения игроков...")
		if err := m.loader.LoadPlayerDimension(transformedData.Players); err != nil {
			m.logger.Error("Ошибка при загрузке измерения игроков: %v", err)
			return fmt.Errorf("ошибка при загрузке измерения игроков: %w", err)
		}
	}

	duration := time.Since(startTime)
	m.logger.Info("Фаза Load завершена. Длительность: %v", duration)

	return nil
}
