// websocket/connection_handler.go
package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HandleConnections обрабатывает WebSocket-соединения игроков
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	// Получаем ID игрока из URL
	params := mux.Vars(r)
	playerID := params["playerId"]
	log.Printf("Получен запрос на установку WebSocket с параметром playerId=%s, полный URL: %s", playerID, r.URL.String())

	if playerID == "" {
		log.Printf("Пустой ID игрока в запросе %s", r.URL.String())
		http.Error(w, "Пустой ID игрока", http.StatusBadRequest)
		return
	}

	// Устанавливаем WebSocket-соединение
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Ошибка при установке WebSocket-соединения:", err)
		return
	}

	// Создаем нового клиента
	client := &Client{
		ID:     playerID,
		Socket: conn,
		Send:   make(chan []byte, 256),
	}

	// Если клиент с таким ID уже существует, отключаем его
	if existingClient, ok := manager.Clients[playerID]; ok {
		log.Printf("Игрок %s уже подключен. Заменяем соединение.", playerID)

		// Удаляем клиента из менеджера перед закрытием канала
		delete(manager.Clients, playerID)

		// Закрываем соединение и канал
		existingClient.Socket.Close()
		select {
		case _, ok := <-existingClient.Send:
			if ok {
				close(existingClient.Send)
			}
		default:
			close(existingClient.Send)
		}
	}

	// Регистрируем клиента в менеджере
	manager.Register <- client

	// Обновляем статус игрока при подключении
	manager.statusMutex.Lock()
	if status, exists := manager.PlayerStatuses[playerID]; exists {
		status.Connected = true
		status.ConnectionID = r.RemoteAddr
		status.LastSeen = time.Now()
	}
	manager.statusMutex.Unlock()

	// Вызываем обновление статуса через централизованную функцию
	manager.updatePlayerStatus(playerID, "online", true)
	log.Printf("✅ Игрок %s подключился с адреса %s", playerID, r.RemoteAddr)

	// Запускаем горутины для чтения и отправки сообщений
	go client.readPump(manager)
	go client.writePump()
}

// HandleUIConnections обрабатывает соединения наблюдателей (страница логов)
// Наблюдатель получает все широковещательные сообщения, но не участвует в игре
func (manager *Manager) HandleUIConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Ошибка при установке WebSocket-соединения наблюдателя:", err)
		return
	}

	client := &Client{
		ID:     "ui:" + r.RemoteAddr,
		IsUI:   true,
		Socket: conn,
		Send:   make(chan []byte, 256),
	}

	manager.Register <- client
	log.Printf("✅ Наблюдатель подключился с адреса %s", r.RemoteAddr)

	go client.readPump(manager)
	go client.writePump()
}
