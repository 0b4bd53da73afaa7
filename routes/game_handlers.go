// routes/game_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_figgie/database"
)

// Ответ API для списка игр
type GamesResponse struct {
	Games []database.GameRecord `json:"games"`
}

// Ответ API для сделок
type TradesResponse struct {
	Trades []database.TradeRecord `json:"trades"`
}

// GetGamesHandler обрабатывает запросы на получение истории игр
func GetGamesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		query := r.URL.Query()
		limitStr := query.Get("limit")

		limit := 50
		if limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil {
				http.Error(w, "Неверный формат параметра limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		// Получаем список игр из базы данных
		games, err := database.GetGames(db, limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе игр: %v", err)
			http.Error(w, "Ошибка при получении списка игр", http.StatusInternalServerError)
			return
		}

		// Подготавливаем ответ
		response := GamesResponse{Games: games}

		// Устанавливаем заголовок для JSON
		w.Header().Set("Content-Type", "application/json")

		// Кодируем и отправляем ответ
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлен список из %d игр", len(games))
	}
}

// GetTradesHandler обрабатывает запросы на получение сделок игры
func GetTradesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		query := r.URL.Query()
		gameID := query.Get("gameId")

		// Поддержка альтернативного формата параметра (game_id)
		if gameID == "" {
			gameID = query.Get("game_id")
		}

		// Проверяем параметры
		if gameID == "" {
			http.Error(w, "Отсутствует обязательный параметр gameId или game_id", http.StatusBadRequest)
			return
		}

		// Получаем сделки из базы данных
		trades, err := database.GetTradesByGame(db, gameID)
		if err != nil {
			log.Printf("❌ Ошибка при запросе сделок: %v", err)
			http.Error(w, "Ошибка при получении сделок", http.StatusInternalServerError)
			return
		}

		// Подготавливаем ответ
		response := TradesResponse{Trades: trades}

		// Устанавливаем заголовок для JSON
		w.Header().Set("Content-Type", "application/json")

		// Кодируем и отправляем ответ
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлено %d сделок для игры %s", len(trades), gameID)
	}
}
