// routes/api_routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/LilVoxy/coursework_figgie/middleware"
	"github.com/LilVoxy/coursework_figgie/websocket"
	"github.com/gorilla/mux"
)

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, db *sql.DB, wsManager *websocket.Manager) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// WebSocket соединения игроков и наблюдателей
	router.HandleFunc("/ws/ui", wsManager.HandleUIConnections)
	router.HandleFunc("/ws/{playerId}", wsManager.HandleConnections)

	// API статусов
	router.HandleFunc("/api/status", wsManager.HandleStatus).Methods("POST", "OPTIONS")

	// API истории игр
	router.HandleFunc("/api/games", GetGamesHandler(db)).Methods("GET", "OPTIONS")

	// API сделок игры
	router.HandleFunc("/api/trades", GetTradesHandler(db)).Methods("GET", "OPTIONS")

	// API таблицы лидеров
	router.HandleFunc("/api/leaderboard", GetLeaderboardHandler(db)).Methods("GET", "OPTIONS")

	// Статические файлы (страница наблюдения за игрой)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("public")))
}
