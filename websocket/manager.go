// websocket/manager.go
package websocket

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/LilVoxy/coursework_figgie/game"
)

// Установка глобального менеджера
func SetManager(manager *Manager) {
	if manager != nil {
		globalManager = manager
		log.Println("Глобальный менеджер установлен")
	} else {
		log.Println("Ошибка: попытка установить nil менеджер")
	}
}

// Создание нового менеджера WebSocket-соединений для игры
func NewManager(db *sql.DB, g *game.Game) *Manager {
	manager := &Manager{
		Broadcast:      make(chan []byte),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		Clients:        make(map[string]*Client),
		UIClients:      make(map[*Client]bool),
		DB:             db,
		Game:           g,
		PlayerStatuses: make(map[string]*PlayerStatus),
	}

	// Подписываем менеджер на события игры
	manager.bindGameEvents()

	return manager
}

// Run запускает работу менеджера
func (manager *Manager) Run() {
	// Запускаем мониторинг активности игроков
	go manager.checkPlayerActivity()

	for {
		select {
		case client := <-manager.Register:
			if client.IsUI {
				manager.UIClients[client] = true
				log.Printf("👁 Наблюдатель подключился")
			} else {
				manager.Clients[client.ID] = client
				log.Printf("👤 Игрок %s подключился", client.ID)
			}

		case client := <-manager.Unregister:
			if client.IsUI {
				if _, ok := manager.UIClients[client]; ok {
					delete(manager.UIClients, client)
					close(client.Send)
					log.Printf("👁 Наблюдатель отключился")
				}
				continue
			}
			if _, ok := manager.Clients[client.ID]; ok {
				delete(manager.Clients, client.ID)
				close(client.Send)
				log.Printf("👤 Игрок %s отключился", client.ID)

				// Обновляем статус на "offline" при отключении
				manager.updatePlayerStatus(client.ID, "offline", false)
			}

		case message := <-manager.Broadcast:
			// Рассылаем сообщение всем подключенным клиентам
			manager.broadcast(message)
		}
	}
}

// broadcast отправляет сообщение всем игрокам и наблюдателям
func (manager *Manager) broadcast(message []byte) {
	for _, client := range manager.Clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(manager.Clients, client.ID)
		}
	}
	for client := range manager.UIClients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(manager.UIClients, client)
		}
	}
}

// Настройки для подключения к базе данных
type DBInfo struct {
	Username string
	Password string
	Host     string
	Port     string
	Database string
}

// envOrDefault возвращает значение переменной окружения или значение по умолчанию
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Инициализация базы данных
func InitDB() (*sql.DB, error) {
	// Настройки для подключения к базе данных
	dbInfo := &DBInfo{
		Username: envOrDefault("FIGGIE_DB_USER", "root"),
		Password: envOrDefault("FIGGIE_DB_PASSWORD", "Vjnbkmlf40782"),
		Host:     envOrDefault("FIGGIE_DB_HOST", "localhost"),
		Port:     envOrDefault("FIGGIE_DB_PORT", "3306"),
		Database: envOrDefault("FIGGIE_DB_NAME", "figgiedb"),
	}

	// Формируем строку подключения
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbInfo.Username,
		dbInfo.Password,
		dbInfo.Host,
		dbInfo.Port,
		dbInfo.Database,
	)

	// Устанавливаем соединение с базой данных
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("❌ Ошибка подключения к БД: %v", err)
		return nil, err
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Printf("❌ Ошибка проверки соединения с БД: %v", err)
		return nil, err
	}

	// Устанавливаем параметры пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Успешное подключение к базе данных")

	// Проверяем существование необходимых таблиц
	if err := createTablesIfNotExist(db); err != nil {
		log.Printf("❌ Ошибка создания таблиц: %v", err)
		return nil, err
	}

	return db, nil
}

// Создание необходимых таблиц, если они не существуют
func createTablesIfNotExist(db *sql.DB) error {
	// SQL для создания таблицы игр
	createGamesTable := `
	CREATE TABLE IF NOT EXISTS games (
		id VARCHAR(36) PRIMARY KEY,
		goal_suit VARCHAR(16) NOT NULL DEFAULT '',
		started_at TIMESTAMP NULL,
		finished_at TIMESTAMP NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// SQL для создания таблицы итогов игроков
	createGamePlayersTable := `
	CREATE TABLE IF NOT EXISTS game_players (
		id INT AUTO_INCREMENT PRIMARY KEY,
		game_id VARCHAR(36) NOT NULL,
		player_id VARCHAR(64) NOT NULL,
		goal_cards INT NOT NULL DEFAULT 0,
		bonus INT NOT NULL DEFAULT 0,
		final_cash INT NOT NULL DEFAULT 0,
		winner BOOLEAN NOT NULL DEFAULT FALSE,
		FOREIGN KEY (game_id) REFERENCES games(id),
		INDEX idx_game_id (game_id),
		INDEX idx_player_id (player_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// SQL для создания таблицы сделок
	createTradesTable := `
	CREATE TABLE IF NOT EXISTS trades (
		id INT AUTO_INCREMENT PRIMARY KEY,
		game_id VARCHAR(36) NOT NULL,
		seller_id VARCHAR(64) NOT NULL,
		buyer_id VARCHAR(64) NOT NULL,
		suit VARCHAR(16) NOT NULL,
		price INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (game_id) REFERENCES games(id),
		INDEX idx_trades_game_id (game_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// SQL для создания таблицы архивов журналов игр
	createGameLogsTable := `
	CREATE TABLE IF NOT EXISTS game_logs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		game_id VARCHAR(36) NOT NULL,
		log_data MEDIUMBLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (game_id) REFERENCES games(id),
		INDEX idx_game_logs_game_id (game_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// Выполняем создание таблиц
	for name, query := range map[string]string{
		"games":        createGamesTable,
		"game_players": createGamePlayersTable,
		"trades":       createTradesTable,
		"game_logs":    createGameLogsTable,
	} {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("ошибка создания таблицы %s: %v", name, err)
		}
	}

	log.Println("✅ Структура базы данных проверена и актуализирована")
	return nil
}
