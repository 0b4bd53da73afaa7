// database/game.go
package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/LilVoxy/coursework_figgie/game"
)

// Запись об игре
type GameRecord struct {
	ID         string     `json:"id"`
	GoalSuit   string     `json:"goalSuit"`
	StartedAt  *time.Time `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// SaveGame сохраняет запись об игре при старте раунда
func SaveGame(db *sql.DB, gameID, goalSuit string, startedAt time.Time) error {
	stmt, err := db.Prepare(`
		INSERT INTO games (id, goal_suit, started_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE goal_suit = VALUES(goal_suit), started_at = VALUES(started_at)
	`)
	if err != nil {
		log.Printf("❌ Ошибка подготовки запроса для сохранения игры: %v", err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(gameID, goalSuit, startedAt); err != nil {
		log.Printf("❌ Ошибка выполнения запроса для сохранения игры: %v", err)
		return err
	}

	log.Printf("✅ Игра %s сохранена в БД (целевая масть: %s)", gameID, goalSuit)
	return nil
}

// FinishGame отмечает игру завершенной
func FinishGame(db *sql.DB, gameID string, finishedAt time.Time) error {
	if _, err := db.Exec(`UPDATE games SET finished_at = ? WHERE id = ?`, finishedAt, gameID); err != nil {
		log.Printf("❌ Ошибка закрытия игры %s: %v", gameID, err)
		return err
	}
	return nil
}

// SaveResults сохраняет итоги раунда для каждого игрока
func SaveResults(db *sql.DB, gameID string, results []game.PlayerResult) error {
	stmt, err := db.Prepare(`
		INSERT INTO game_players (game_id, player_id, goal_cards, bonus, final_cash, winner)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		log.Printf("❌ Ошибка подготовки запроса для сохранения результатов: %v", err)
		return err
	}
	defer stmt.Close()

	for _, result := range results {
		if _, err := stmt.Exec(gameID, result.PlayerID, result.GoalCards, result.Bonus, result.FinalCash, result.Winner); err != nil {
			log.Printf("❌ Ошибка сохранения результата игрока %s: %v", result.PlayerID, err)
			return err
		}
	}

	log.Printf("✅ Результаты игры %s сохранены (%d игроков)", gameID, len(results))
	return nil
}

// GetGames возвращает список завершенных и текущих игр
func GetGames(db *sql.DB, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, goal_suit, started_at, finished_at, created_at
		FROM games
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var record GameRecord
		if err := rows.Scan(&record.ID, &record.GoalSuit, &record.StartedAt, &record.FinishedAt, &record.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании игры: %v", err)
			continue
		}
		games = append(games, record)
	}

	return games, rows.Err()
}
