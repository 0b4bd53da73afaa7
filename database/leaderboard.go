// database/leaderboard.go
package database

import (
	"database/sql"
	"log"

	"github.com/LilVoxy/coursework_figgie/game"
)

// Строка таблицы лидеров
type LeaderboardRow struct {
	PlayerID    string `json:"playerId"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
	TotalProfit int    `json:"totalProfit"`
}

// GetLeaderboard возвращает статистику игроков по завершенным играм
// Прибыль считается относительно стартового капитала
func GetLeaderboard(db *sql.DB, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT
			player_id,
			COUNT(*) as games_played,
			SUM(winner) as wins,
			SUM(final_cash - ?) as total_profit
		FROM game_players
		GROUP BY player_id
		ORDER BY wins DESC, total_profit DESC
		LIMIT ?
	`, game.CashPerPlayer, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaderboard []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.PlayerID, &row.GamesPlayed, &row.Wins, &row.TotalProfit); err != nil {
			log.Printf("❌ Ошибка при сканировании строки лидерборда: %v", err)
			continue
		}
		leaderboard = append(leaderboard, row)
	}

	return leaderboard, rows.Err()
}
