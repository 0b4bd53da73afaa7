package linear_regression

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLTrendRepository реализация TrendRepository для MySQL
type MySQLTrendRepository struct {
	db *sql.DB
}

// NewMySQLTrendRepository создает новый экземпляр MySQLTrendRepository
func NewMySQLTrendRepository(db *sql.DB) *MySQLTrendRepository {
	return &MySQLTrendRepository{
		db: db,
	}
}

// EnsureTableExists создает таблицу трендов прибыли, если она не существует
func (r *MySQLTrendRepository) EnsureTableExists() error {
	query := `
	CREATE TABLE IF NOT EXISTS figgie_analytics.profit_trends (
		id INT AUTO_INCREMENT PRIMARY KEY,
		player_id VARCHAR(64) NOT NULL,
		slope DECIMAL(12,3) NOT NULL,
		intercept DECIMAL(12,3) NOT NULL,
		r DECIMAL(10,3) NOT NULL,
		r2 DECIMAL(10,3) NOT NULL,
		games_analyzed INT NOT NULL,
		forecast_games INT NOT NULL,
		forecast_profit DECIMAL(12,3) NOT NULL,
		ci_lower DECIMAL(12,3) NOT NULL,
		ci_upper DECIMAL(12,3) NOT NULL,
		calculation_date DATE NOT NULL,
		UNIQUE KEY uq_pt_player_date (player_id, calculation_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы profit_trends: %w", err)
	}

	return nil
}

// SavePlayerTrend сохраняет тренд прибыли игрока.
// В строку записывается последний (самый дальний) прогноз серии.
func (r *MySQLTrendRepository) SavePlayerTrend(trend PlayerTrend) error {
	if len(trend.Forecasts) == 0 {
		return fmt.Errorf("тренд игрока %s не содержит прогнозов", trend.PlayerID)
	}

	last := trend.Forecasts[len(trend.Forecasts)-1]

	query := `
	INSERT INTO figgie_analytics.profit_trends
	(player_id, slope, intercept, r, r2, games_analyzed, forecast_games, forecast_profit, ci_lower, ci_upper, calculation_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
	slope = VALUES(slope),
	intercept = VALUES(intercept),
	r = VALUES(r),
	r2 = VALUES(r2),
	games_analyzed = VALUES(games_analyzed),
	forecast_games = VALUES(forecast_games),
	forecast_profit = VALUES(forecast_profit),
	ci_lower = VALUES(ci_lower),
	ci_upper = VALUES(ci_upper)
	`

	_, err := r.db.Exec(
		query,
		trend.PlayerID,
		trend.Result.A,
		trend.Result.B,
		trend.Result.R,
		trend.Result.R2,
		len(trend.Result.DataPoints),
		len(trend.Forecasts),
		last.ForecastValue,
		last.CILower,
		last.CIUpper,
		trend.Calculated.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении тренда игрока %s: %w", trend.PlayerID, err)
	}

	return nil
}

// DeleteOldTrends удаляет устаревшие тренды (старше указанной даты)
func (r *MySQLTrendRepository) DeleteOldTrends(olderThan time.Time) error {
	_, err := r.db.Exec(
		"DELETE FROM figgie_analytics.profit_trends WHERE calculation_date < ?",
		olderThan.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("ошибка при удалении устаревших трендов: %w", err)
	}

	return nil
}
