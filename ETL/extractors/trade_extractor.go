package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// TradeExtractor извлекает сделки из OLTP базы данных
type TradeExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewTradeExtractor создает новый экземпляр TradeExtractor
func NewTradeExtractor(db *sql.DB, logger *utils.ETLLogger) *TradeExtractor {
	return &TradeExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractTrades извлекает сделки с ID больше lastProcessedTradeID
// Инкрементальное извлечение: обрабатываем только новые сделки
func (e *TradeExtractor) ExtractTrades(lastProcessedTradeID, batchSize int) ([]models.TradeOLTP, error) {
	query := `
	SELECT id, game_id, seller_id, buyer_id, suit, price, created_at
	FROM trades
	WHERE id > ?
	ORDER BY id ASC
	LIMIT ?
	`

	rows, err := e.db.Query(query, lastProcessedTradeID, batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе сделок: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeOLTP
	for rows.Next() {
		var trade models.TradeOLTP
		err := rows.Scan(
			&trade.ID,
			&trade.GameID,
			&trade.SellerID,
			&trade.BuyerID,
			&trade.Suit,
			&trade.Price,
			&trade.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании сделки: %w", err)
		}
		trades = append(trades, trade)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по сделкам: %w", err)
	}

	e.logger.Debug("Извлечено %d сделок (после ID %d)", len(trades), lastProcessedTradeID)
	return trades, nil
}

// GetLastTradeID возвращает максимальный ID сделки в OLTP
func (e *TradeExtractor) GetLastTradeID() (int, error) {
	var lastID sql.NullInt64
	err := e.db.QueryRow("SELECT MAX(id) FROM trades").Scan(&lastID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении последнего ID сделки: %w", err)
	}

	if !lastID.Valid {
		return 0, nil // Сделок еще нет
	}
	return int(lastID.Int64), nil
}
