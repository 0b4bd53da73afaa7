// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/LilVoxy/coursework_figgie/game"
	"github.com/LilVoxy/coursework_figgie/routes"
	"github.com/LilVoxy/coursework_figgie/websocket"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func main() {
	fmt.Println("Запуск сервера Figgie...")

	// Инициализация базы данных
	db, err := websocket.InitDB()
	if err != nil {
		log.Fatalf("❌ Не удалось инициализировать базу данных: %v", err)
	}
	defer db.Close()

	// Настройки игры из окружения
	maxPlayers := intFromEnv("FIGGIE_MAX_PLAYERS", game.DefaultMaxPlayers)
	timerMax := intFromEnv("FIGGIE_ROUND_SECONDS", game.TimerCountdown)

	// Создаем игру и менеджер WebSocket с подключением к БД
	figgieGame := game.NewGame(uuid.NewString(), maxPlayers, timerMax)
	wsManager := websocket.NewManager(db, figgieGame)
	websocket.SetManager(wsManager)

	log.Printf("🎴 Создана игра %s (игроков: %d, раунд: %d секунд)",
		figgieGame.GameID, maxPlayers, timerMax)

	// Запускаем менеджер WebSocket
	go wsManager.Run()

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	routes.SetupRoutes(router, db, wsManager)

	// Настраиваем сервер
	addr := os.Getenv("FIGGIE_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Ожидаем сигнал завершения
	<-stop
	log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")

	// Останавливаем текущий раунд, если он идет
	figgieGame.StopGame()

	// Закрываем соединение с базой данных
	if err := db.Close(); err != nil {
		log.Printf("❌ Ошибка закрытия соединения с БД: %v", err)
	} else {
		log.Println("✅ Соединение с БД закрыто")
	}

	log.Println("👋 Сервер остановлен")
}

// intFromEnv читает целочисленную настройку из окружения
func intFromEnv(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Неверное значение %s=%q, используется %d", key, value, fallback)
		return fallback
	}
	return parsed
}
