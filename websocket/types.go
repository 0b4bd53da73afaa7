// websocket/types.go
package websocket

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/coursework_figgie/game"
	"github.com/LilVoxy/coursework_figgie/processor"
)

// Конверт сообщения для обмена через WebSocket
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Клиент WebSocket
type Client struct {
	ID     string
	IsUI   bool
	Socket *websocket.Conn
	Send   chan []byte
}

// Статус присутствия игрока
type PlayerStatus struct {
	Status       string    `json:"status"`
	LastPing     time.Time `json:"last_ping"`
	IsActive     bool      `json:"is_active"`
	Connected    bool      `json:"connected"`
	LastSeen     time.Time `json:"last_seen"`
	ConnectionID string    `json:"connection_id"`
}

// Менеджер WebSocket-соединений
type Manager struct {
	Clients    map[string]*Client
	UIClients  map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	DB         *sql.DB
	Game       *game.Game

	PlayerStatuses map[string]*PlayerStatus
	statusMutex    sync.RWMutex

	// Журнал событий раунда для архивации
	eventLog   []processor.GameEvent
	eventMutex sync.Mutex
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника (для разработки)
	},
}

// Глобальная переменная для менеджера
var globalManager *Manager
