// database/game_log.go
package database

import (
	"database/sql"
	"log"
)

// SaveGameLog сохраняет сжатый архив журнала событий игры
func SaveGameLog(db *sql.DB, gameID string, blob []byte) error {
	stmt, err := db.Prepare(`
		INSERT INTO game_logs (game_id, log_data)
		VALUES (?, ?)
	`)
	if err != nil {
		log.Printf("❌ Ошибка подготовки запроса для сохранения журнала: %v", err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(gameID, blob); err != nil {
		log.Printf("❌ Ошибка выполнения запроса для сохранения журнала: %v", err)
		return err
	}

	return nil
}

// GetGameLog возвращает последний сохраненный архив журнала игры
func GetGameLog(db *sql.DB, gameID string) ([]byte, error) {
	var blob []byte
	err := db.QueryRow(`
		SELECT log_data FROM game_logs
		WHERE game_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, gameID).Scan(&blob)
	if err != nil {
		return nil, err
	}
	return blob, nil
}
