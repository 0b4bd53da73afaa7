// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// readPump обрабатывает чтение сообщений от клиента
func (c *Client) readPump(manager *Manager) {
	defer func() {
		// Обработка паники при закрытии канала
		if r := recover(); r != nil {
			log.Printf("Паника при чтении сообщений клиента %s: %v", c.ID, r)
		}

		if !c.IsUI {
			// Обновляем статус при отключении
			manager.statusMutex.Lock()
			if status, exists := manager.PlayerStatuses[c.ID]; exists {
				status.Connected = false
				status.LastSeen = time.Now()
			}
			manager.statusMutex.Unlock()

			// Если раунд не начался, игрок освобождает место за столом
			if !manager.Game.State.Started {
				manager.Game.RemovePlayer(c.ID)
			}

			log.Printf("❌ Игрок %s отключился", c.ID)
		}

		// Отправляем сигнал отключения
		manager.Unregister <- c

		// Безопасно закрываем соединение
		c.Socket.Close()

		log.Printf("Завершение readPump для клиента %s", c.ID)
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Читаем сообщения
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Ошибка: %v", err)
			}
			break
		}

		// Наблюдатели ничего не отправляют, их сообщения игнорируются
		if c.IsUI {
			continue
		}

		// Обрабатываем полученное сообщение
		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Println("Ошибка декодирования сообщения:", err)
			continue
		}

		switch msg.Type {
		case "ping":
			// Отправляем понг-сообщение обратно клиенту
			if pongData, err := json.Marshal(Message{Type: "pong"}); err == nil {
				c.Send <- pongData
			}
			manager.updatePlayerStatus(c.ID, "online", true)

		case "status":
			// Обновляем статус присутствия игрока
			var statusData struct {
				Status   string `json:"status"`
				IsActive bool   `json:"is_active"`
			}
			if err := json.Unmarshal(msg.Data, &statusData); err == nil {
				manager.updatePlayerStatus(c.ID, statusData.Status, statusData.IsActive)
				log.Printf("Обновлен статус %s для игрока %s", statusData.Status, c.ID)
			}

		default:
			// Делегируем игровые сообщения HandleMessage
			manager.HandleMessage(c, msg)
		}
	}
}
