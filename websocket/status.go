// websocket/status.go
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Сообщение о статусе присутствия игрока
type statusMessage struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
	IsActive bool   `json:"is_active,omitempty"`
}

// updatePlayerStatus обновляет статус присутствия игрока
func (manager *Manager) updatePlayerStatus(playerID string, status string, isActive bool) {
	manager.statusMutex.Lock()
	defer manager.statusMutex.Unlock()

	if _, exists := manager.PlayerStatuses[playerID]; !exists {
		manager.PlayerStatuses[playerID] = &PlayerStatus{
			LastSeen: time.Now(),
		}
	}

	statusObj := manager.PlayerStatuses[playerID]
	oldStatus := statusObj.Status

	// Обновляем статус только если он действительно изменился
	if statusObj.Status != status || statusObj.IsActive != isActive {
		statusObj.Status = status
		statusObj.IsActive = isActive
		statusObj.LastPing = time.Now()
		statusObj.LastSeen = time.Now()

		// Логируем изменение статуса
		log.Printf("📊 Статус игрока %s изменен: %s -> %s (активен: %v)",
			playerID, oldStatus, status, isActive)

		// Рассылаем статус всем клиентам, кроме самого игрока
		payload, err := marshalEnvelope("status", statusMessage{PlayerID: playerID, Status: status})
		if err != nil {
			return
		}
		for clientID, client := range manager.Clients {
			if clientID != playerID {
				select {
				case client.Send <- payload:
				default:
					close(client.Send)
					delete(manager.Clients, client.ID)
				}
			}
		}
	}
}

// checkPlayerActivity проверяет активность игроков и обновляет их статусы
func (manager *Manager) checkPlayerActivity() {
	for {
		time.Sleep(inactivityTimeout / 2) // Проверяем каждые 30 секунд

		manager.statusMutex.Lock()
		now := time.Now()

		type stale struct {
			playerID string
			status   string
		}
		var updates []stale

		for playerID, status := range manager.PlayerStatuses {
			// Проверяем время последней активности
			timeSinceLastPing := now.Sub(status.LastPing)

			// Если игрок подключен и неактивен более 60 секунд
			if status.Connected && status.Status == "online" && timeSinceLastPing > 60*time.Second {
				updates = append(updates, stale{playerID, "away"})
				log.Printf("⚠️ Игрок %s помечен как неактивный", playerID)
				continue
			}

			// Если игрок не пинговал сервер более 120 секунд
			if status.Connected && timeSinceLastPing > 120*time.Second {
				updates = append(updates, stale{playerID, "offline"})
				log.Printf("❌ Игрок %s помечен как отключенный", playerID)
			}
		}

		manager.statusMutex.Unlock()

		for _, u := range updates {
			manager.updatePlayerStatus(u.playerID, u.status, false)
		}
	}
}

// HandleStatus обрабатывает HTTP запросы для обновления статуса игрока
func (manager *Manager) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var msg statusMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg.PlayerID == "" || msg.Status == "" {
		http.Error(w, "Missing player_id or status", http.StatusBadRequest)
		return
	}

	// Обновляем статус с учетом активности через единый метод
	manager.updatePlayerStatus(msg.PlayerID, msg.Status, msg.IsActive)

	// Отправляем успешный ответ с подтверждением
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// Возвращаем информацию о выполненном действии
	response := map[string]interface{}{
		"success":   true,
		"message":   "Status updated successfully",
		"player_id": msg.PlayerID,
		"status":    msg.Status,
	}

	json.NewEncoder(w).Encode(response)
}
