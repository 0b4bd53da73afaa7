package traderrank

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// MySQLDataService реализация сервиса для работы с данными из MySQL
type MySQLDataService struct {
	olapDB *sql.DB
	logger *utils.ETLLogger
}

// NewMySQLDataService создает новый экземпляр MySQLDataService
func NewMySQLDataService(olapDB *sql.DB, logger *utils.ETLLogger) *MySQLDataService {
	return &MySQLDataService{
		olapDB: olapDB,
		logger: logger,
	}
}

// GetTradesForTraderRank получает данные о сделках для расчета TradeRank
// из таблицы trade_facts OLAP-куба
func (s *MySQLDataService) GetTradesForTraderRank() (map[string]map[string][]TradeInfo, error) {
	tradesMap := make(map[string]map[string][]TradeInfo)

	s.logger.Info("Запрос данных для расчета TradeRank")

	rows, err := s.olapDB.Query(`
		SELECT
			tf.seller_id,
			tf.buyer_id,
			tf.price,
			tf.is_goal_suit
		FROM figgie_analytics.trade_facts tf
		ORDER BY tf.seller_id, tf.buyer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе данных сделок: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			sellerID, buyerID string
			price             int
			isGoalSuit        bool
		)

		err := rows.Scan(&sellerID, &buyerID, &price, &isGoalSuit)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании результатов: %w", err)
		}

		// Инициализируем вложенную карту, если её еще нет
		if _, exists := tradesMap[sellerID]; !exists {
			tradesMap[sellerID] = make(map[string][]TradeInfo)
		}

		tradesMap[sellerID][buyerID] = append(
			tradesMap[sellerID][buyerID],
			TradeInfo{
				Price:      price,
				IsGoalSuit: isGoalSuit,
			},
		)

		count++
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	s.logger.Info("Получено %d сделок для %d продавцов", count, len(tradesMap))
	return tradesMap, nil
}

// GetPlayerCount возвращает количество игроков в OLAP-кубе
func (s *MySQLDataService) GetPlayerCount() (int, error) {
	var count int
	err := s.olapDB.QueryRow("SELECT COUNT(*) FROM figgie_analytics.player_dimension").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете игроков: %w", err)
	}
	return count, nil
}
