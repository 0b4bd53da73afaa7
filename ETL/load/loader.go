package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// Loader интерфейс загрузчика данных в OLAP
type Loader interface {
	// LoadTradeFacts загружает факты сделок
	LoadTradeFacts(facts []models.TradeFact) error

	// LoadResultFacts загружает факты результатов игроков
	LoadResultFacts(facts []models.ResultFact) error

	// LoadPlayerDimension загружает приращения измерения игроков
	LoadPlayerDimension(dimensions []models.PlayerDimension) error
}

// OLAPLoader реализация Loader для MySQL
type OLAPLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewOLAPLoader создает новый экземпляр OLAPLoader
func NewOLAPLoader(db *sql.DB, logger *utils.ETLLogger) *OLAPLoader {
	return &OLAPLoader{
		db:     db,
		logger: logger,
	}
}

// CreateOLAPTables создает таблицы OLAP-куба, если они не существуют
func (l *OLAPLoader) CreateOLAPTables() error {
	tables := map[string]string{
		"trade_facts": `
		CREATE TABLE IF NOT EXISTS figgie_analytics.trade_facts (
			trade_id INT PRIMARY KEY,
			game_id VARCHAR(36) NOT NULL,
			seller_id VARCHAR(64) NOT NULL,
			buyer_id VARCHAR(64) NOT NULL,
			suit VARCHAR(16) NOT NULL,
			price INT NOT NULL,
			is_goal_suit BOOLEAN NOT NULL DEFAULT FALSE,
			traded_at TIMESTAMP NULL,
			INDEX idx_tf_game_id (game_id),
			INDEX idx_tf_seller_id (seller_id),
			INDEX idx_tf_buyer_id (buyer_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

		"result_facts": `
		CREATE TABLE IF NOT EXISTS figgie_analytics.result_facts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			game_id VARCHAR(36) NOT NULL,
			player_id VARCHAR(64) NOT NULL,
			goal_cards INT NOT NULL DEFAULT 0,
			bonus INT NOT NULL DEFAULT 0,
			final_cash INT NOT NULL DEFAULT 0,
			profit INT NOT NULL DEFAULT 0,
			winner BOOLEAN NOT NULL DEFAULT FALSE,
			finished_at TIMESTAMP NULL,
			UNIQUE KEY uq_rf_game_player (game_id, player_id),
			INDEX idx_rf_player_id (player_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

		"player_dimension": `
		CREATE TABLE IF NOT EXISTS figgie_analytics.player_dimension (
			player_id VARCHAR(64) PRIMARY KEY,
			games_played INT NOT NULL DEFAULT 0,
			wins INT NOT NULL DEFAULT 0,
			total_profit INT NOT NULL DEFAULT 0,
			trades_buy INT NOT NULL DEFAULT 0,
			trades_sell INT NOT NULL DEFAULT 0,
			volume_buy INT NOT NULL DEFAULT 0,
			volume_sell INT NOT NULL DEFAULT 0,
			last_seen TIMESTAMP NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	}

	for name, query := range tables {
		if _, err := l.db.Exec(query); err != nil {
			return fmt.Errorf("ошибка при создании таблицы %s: %w", name, err)
		}
	}

	return nil
}

// LoadTradeFacts загружает факты сделок
// Повторная загрузка того же trade_id обновляет запись
func (l *OLAPLoader) LoadTradeFacts(facts []models.TradeFact) error {
	if len(facts) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при создании транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO figgie_analytics.trade_facts
		(trade_id, game_id, seller_id, buyer_id, suit, price, is_goal_suit, traded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		is_goal_suit = VALUES(is_goal_suit),
		price = VALUES(price)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, fact := range facts {
		_, err = stmt.Exec(
			fact.TradeID,
			fact.GameID,
			fact.SellerID,
			fact.BuyerID,
			fact.Suit,
			fact.Price,
			fact.IsGoalSuit,
			fact.TradedAt,
		)
		if err != nil {
			return fmt.Errorf("ошибка при вставке факта сделки %d: %w", fact.TradeID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загружено %d фактов сделок", len(facts))
	return nil
}

// LoadResultFacts загружает факты результатов игроков
func (l *OLAPLoader) LoadResultFacts(facts []models.ResultFact) error {
	if len(facts) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при создании транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO figgie_analytics.result_facts
		(game_id, player_id, goal_cards, bonus, final_cash, profit, winner, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		goal_cards = VALUES(goal_cards),
		bonus = VALUES(bonus),
		final_cash = VALUES(final_cash),
		profit = VALUES(profit),
		winner = VALUES(winner),
		finished_at = VALUES(finished_at)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, fact := range facts {
		_, err = stmt.Exec(
			fact.GameID,
			fact.PlayerID,
			fact.GoalCards,
			fact.Bonus,
			fact.FinalCash,
			fact.Profit,
			fact.Winner,
			fact.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("ошибка при вставке результата игрока %s в игре %s: %w",
				fact.PlayerID, fact.GameID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загружено %d фактов результатов", len(facts))
	return nil
}

// LoadPlayerDimension загружает приращения измерения игроков.
// Счетчики прибавляются к накопленным значениям, last_seen берется максимальный.
func (l *OLAPLoader) LoadPlayerDimension(dimensions []models.PlayerDimension) error {
	if len(dimensions) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при создании транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO figgie_analytics.player_dimension
		(player_id, games_played, wins, total_profit, trades_buy, trades_sell, volume_buy, volume_sell, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		games_played = games_played + VALUES(games_played),
		wins = wins + VALUES(wins),
		total_profit = total_profit + VALUES(total_profit),
		trades_buy = trades_buy + VALUES(trades_buy),
		trades_sell = trades_sell + VALUES(trades_sell),
		volume_buy = volume_buy + VALUES(volume_buy),
		volume_sell = volume_sell + VALUES(volume_sell),
		last_seen = GREATEST(IFNULL(last_seen, VALUES(last_seen)), VALUES(last_seen))
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, dim := range dimensions {
		_, err = stmt.Exec(
			dim.PlayerID,
			dim.GamesPlayed,
			dim.Wins,
			dim.TotalProfit,
			dim.TradesBuy,
			dim.TradesSell,
			dim.VolumeBuy,
			dim.VolumeSell,
			dim.LastSeen,
		)
		if err != nil {
			return fmt.Errorf("ошибка при обновлении измерения игрока %s: %w", dim.PlayerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Обновлено измерение для %d игроков", len(dimensions))
	return nil
}
