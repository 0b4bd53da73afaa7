// routes/leaderboard_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_figgie/database"
)

// Ответ API для таблицы лидеров
type LeaderboardResponse struct {
	Leaderboard []database.LeaderboardRow `json:"leaderboard"`
}

// GetLeaderboardHandler обрабатывает запросы на получение таблицы лидеров
func GetLeaderboardHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		query := r.URL.Query()
		limitStr := query.Get("limit")

		limit := 20
		if limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil {
				http.Error(w, "Неверный формат параметра limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		// Получаем таблицу лидеров из базы данных
		leaderboard, err := database.GetLeaderboard(db, limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе таблицы лидеров: %v", err)
			http.Error(w, "Ошибка при получении таблицы лидеров", http.StatusInternalServerError)
			return
		}

		// Подготавливаем ответ
		response := LeaderboardResponse{Leaderboard: leaderboard}

		// Устанавливаем заголовок для JSON
		w.Header().Set("Content-Type", "application/json")

		// Кодируем и отправляем ответ
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлена таблица лидеров из %d строк", len(leaderboard))
	}
}
