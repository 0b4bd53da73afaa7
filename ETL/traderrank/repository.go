package traderrank

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// MySQLTraderRankRepository реализация TraderRankRepository для MySQL
type MySQLTraderRankRepository struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewMySQLTraderRankRepository создает новый экземпляр MySQLTraderRankRepository
func NewMySQLTraderRankRepository(db *sql.DB, logger *utils.ETLLogger) *MySQLTraderRankRepository {
	return &MySQLTraderRankRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTables создает таблицы для хранения рангов и весов связей, если они не существуют
func (r *MySQLTraderRankRepository) CreateTables() error {
	createRanksTable := `
	CREATE TABLE IF NOT EXISTS figgie_analytics.trader_influence_rank (
		player_id VARCHAR(64) PRIMARY KEY,
		trade_rank DECIMAL(10,3) NOT NULL,
		rank_percentile DECIMAL(10,3) NOT NULL,
		category ENUM('high', 'medium', 'low') NOT NULL,
		calculation_date DATE NOT NULL,
		iteration_count INT NOT NULL DEFAULT 0,
		convergence_delta DECIMAL(10,3) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	createWeightsTable := `
	CREATE TABLE IF NOT EXISTS figgie_analytics.trade_link_weights (
		id INT AUTO_INCREMENT PRIMARY KEY,
		seller_id VARCHAR(64) NOT NULL,
		buyer_id VARCHAR(64) NOT NULL,
		weight DECIMAL(10,3) NOT NULL,
		count_factor DECIMAL(10,3) NOT NULL,
		volume_factor DECIMAL(10,3) NOT NULL,
		goal_suit_factor DECIMAL(10,3) NOT NULL,
		calculation_date DATE NOT NULL,
		UNIQUE KEY uq_tlw_pair (seller_id, buyer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	for name, query := range map[string]string{
		"trader_influence_rank": createRanksTable,
		"trade_link_weights":    createWeightsTable,
	} {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("ошибка при создании таблицы %s: %w", name, err)
		}
	}

	return nil
}

// SaveTraderRanks сохраняет ранги игроков в БД
func (r *MySQLTraderRankRepository) SaveTraderRanks(ranks []TraderInfluenceRank) error {
	if len(ranks) == 0 {
		return nil
	}

	// Используем транзакцию для атомарной записи
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при создании транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO figgie_analytics.trader_influence_rank
		(player_id, trade_rank, rank_percentile, category, calculation_date, iteration_count, convergence_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		trade_rank = VALUES(trade_rank),
		rank_percentile = VALUES(rank_percentile),
		category = VALUES(category),
		calculation_date = VALUES(calculation_date),
		iteration_count = VALUES(iteration_count),
		convergence_delta = VALUES(convergence_delta)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, rank := range ranks {
		_, err = stmt.Exec(
			rank.PlayerID,
			rank.TradeRank,
			rank.RankPercentile,
			rank.Category,
			rank.CalculationDate.Format("2006-01-02"),
			rank.IterationCount,
			rank.ConvergenceDelta,
		)
		if err != nil {
			return fmt.Errorf("ошибка при вставке ранга для игрока %s: %w", rank.PlayerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	r.logger.Info("Сохранено %d рангов игроков", len(ranks))
	return nil
}

// SaveTradeLinkWeights сохраняет веса торговых связей в БД
func (r *MySQLTraderRankRepository) SaveTradeLinkWeights(weights []TradeLinkWeight) error {
	if len(weights) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при создании транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO figgie_analytics.trade_link_weights
		(seller_id, buyer_id, weight, count_factor, volume_factor, goal_suit_factor, calculation_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		weight = VALUES(weight),
		count_factor = VALUES(count_factor),
		volume_factor = VALUES(volume_factor),
		goal_suit_factor = VALUES(goal_suit_factor),
		calculation_date = VALUES(calculation_date)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, weight := range weights {
		_, err = stmt.Exec(
			weight.SellerID,
			weight.BuyerID,
			weight.Weight,
			weight.CountFactor,
			weight.VolumeFactor,
			weight.GoalSuitFactor,
			weight.CalculationDate.Format("2006-01-02"),
		)
		if err != nil {
			return fmt.Errorf("ошибка при вставке веса связи от %s к %s: %w",
				weight.SellerID, weight.BuyerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	r.logger.Info("Сохранено %d весов торговых связей", len(weights))
	return nil
}

// GetTopTradersByRank получает топ-N игроков по рангу
func (r *MySQLTraderRankRepository) GetTopTradersByRank(limit int, date time.Time) ([]TraderInfluenceRank, error) {
	rows, err := r.db.Query(`
		SELECT player_id, trade_rank, rank_percentile, category, calculation_date, iteration_count, convergence_delta
		FROM figgie_analytics.trader_influence_rank
		WHERE calculation_date = ?
		ORDER BY trade_rank DESC
		LIMIT ?
	`, date.Format("2006-01-02"), limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе топ игроков: %w", err)
	}
	defer rows.Close()

	var ranks []TraderInfluenceRank
	for rows.Next() {
		var rank TraderInfluenceRank
		var dateStr string
		err := rows.Scan(
			&rank.PlayerID,
			&rank.TradeRank,
			&rank.RankPercentile,
			&rank.Category,
			&dateStr,
			&rank.IterationCount,
			&rank.ConvergenceDelta,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании результатов: %w", err)
		}

		rank.CalculationDate, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("ошибка при парсинге даты: %w", err)
		}

		ranks = append(ranks, rank)
	}

	return ranks, nil
}
