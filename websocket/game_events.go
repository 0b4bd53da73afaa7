// websocket/game_events.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/LilVoxy/coursework_figgie/database"
	"github.com/LilVoxy/coursework_figgie/game"
	"github.com/LilVoxy/coursework_figgie/processor"
)

// marshalEnvelope упаковывает данные события в конверт {type, data}
func marshalEnvelope(msgType string, data interface{}) ([]byte, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Data: rawData})
}

// sendToPlayer отправляет сообщение конкретному игроку, если он подключен
func (manager *Manager) sendToPlayer(playerID string, payload []byte) {
	client, ok := manager.Clients[playerID]
	if !ok {
		log.Printf("ℹ️ Игрок %s не в сети, сообщение не доставлено", playerID)
		return
	}
	select {
	case client.Send <- payload:
	default:
		close(client.Send)
		delete(manager.Clients, playerID)
		log.Printf("❌ Не удалось доставить сообщение игроку %s", playerID)
	}
}

// emitToAll упаковывает событие и рассылает его всем клиентам
func (manager *Manager) emitToAll(msgType string, data interface{}) {
	payload, err := marshalEnvelope(msgType, data)
	if err != nil {
		log.Printf("❌ Ошибка сериализации события %s: %v", msgType, err)
		return
	}
	manager.recordEvent(msgType, data)
	manager.Broadcast <- payload
}

// emitToPlayer упаковывает событие и отправляет его одному игроку
func (manager *Manager) emitToPlayer(playerID, msgType string, data interface{}) {
	payload, err := marshalEnvelope(msgType, data)
	if err != nil {
		log.Printf("❌ Ошибка сериализации события %s: %v", msgType, err)
		return
	}
	manager.sendToPlayer(playerID, payload)
}

// recordEvent добавляет событие в журнал раунда для последующей архивации
func (manager *Manager) recordEvent(msgType string, data interface{}) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return
	}
	manager.eventMutex.Lock()
	manager.eventLog = append(manager.eventLog, processor.GameEvent{
		Timestamp: time.Now(),
		Type:      msgType,
		Data:      rawData,
	})
	manager.eventMutex.Unlock()
}

// flushEventLog архивирует журнал событий раунда и сохраняет его в БД
func (manager *Manager) flushEventLog(gameID string) {
	manager.eventMutex.Lock()
	events := manager.eventLog
	manager.eventLog = nil
	manager.eventMutex.Unlock()

	if len(events) == 0 || manager.DB == nil {
		return
	}

	blob, err := processor.ArchiveGameLog(events)
	if err != nil {
		log.Printf("❌ Ошибка архивации журнала игры %s: %v", gameID, err)
		return
	}

	if err := database.SaveGameLog(manager.DB, gameID, blob); err != nil {
		log.Printf("❌ Ошибка сохранения журнала игры %s: %v", gameID, err)
		return
	}
	log.Printf("✅ Журнал игры %s заархивирован (%d событий, %d байт)", gameID, len(events), len(blob))
}

// bindGameEvents подписывает менеджер на события игры.
// Обработчики вызываются изнутри методов Game и не должны обращаться
// обратно к Game — они только сериализуют, рассылают и сохраняют данные
func (manager *Manager) bindGameEvents() {
	g := manager.Game

	g.AddEventListener("player_added", func(data interface{}) {
		manager.emitToAll("player_added", map[string]interface{}{"player_id": data})
	})

	g.AddEventListener("player_removed", func(data interface{}) {
		manager.emitToAll("player_removed", map[string]interface{}{"player_id": data})
	})

	g.AddEventListener("player_ready", func(data interface{}) {
		manager.emitToAll("player_ready", map[string]interface{}{"player_id": data})
	})

	g.AddEventListener("message", func(data interface{}) {
		manager.emitToAll("message", data)
	})

	g.AddEventListener("game_started", func(data interface{}) {
		gameID, _ := data.(string)
		goalSuit := g.State.GoalSuit
		startedAt := time.Now()

		manager.emitToAll("game_started", map[string]interface{}{"game_id": gameID})

		if manager.DB != nil {
			go func() {
				if err := database.SaveGame(manager.DB, gameID, goalSuit, startedAt); err != nil {
					log.Printf("❌ Ошибка сохранения игры %s: %v", gameID, err)
				}
			}()
		}
	})

	g.AddEventListener("game_state", func(data interface{}) {
		manager.emitToAll("game_state", data)
	})

	g.AddEventListener("deal_cards", func(data interface{}) {
		hand, ok := data.(game.DealtHand)
		if !ok {
			return
		}
		// Руку видит только ее владелец
		manager.emitToPlayer(hand.PlayerID, "deal_cards", map[string]interface{}{
			"cards": hand.Cards,
			"cash":  hand.Cash,
		})
	})

	g.AddEventListener("add_order_processed", func(data interface{}) {
		ack, ok := data.(game.OrderAck)
		if !ok {
			return
		}
		manager.recordEvent("add_order_processed", ack)
		manager.emitToPlayer(ack.PlayerID, "add_order_processed", ack.Message)
	})

	g.AddEventListener("accept_order_processed", func(data interface{}) {
		ack, ok := data.(game.OrderAck)
		if !ok {
			return
		}
		manager.recordEvent("accept_order_processed", ack)
		manager.emitToPlayer(ack.PlayerID, "accept_order_processed", ack.Message)
	})

	g.AddEventListener("transaction_processed", func(data interface{}) {
		trade, ok := data.(game.Trade)
		if !ok {
			return
		}
		manager.emitToAll("transaction_processed", trade)

		if manager.DB != nil {
			gameID := g.GameID
			go func() {
				if err := database.SaveTrade(manager.DB, gameID, trade); err != nil {
					log.Printf("❌ Ошибка сохранения сделки: %v", err)
				}
			}()
		}
	})

	g.AddEventListener("game_result", func(data interface{}) {
		results, ok := data.([]game.PlayerResult)
		if !ok {
			return
		}
		manager.emitToAll("game_result", results)

		gameID := g.GameID
		if manager.DB != nil {
			resultsCopy := make([]game.PlayerResult, len(results))
			copy(resultsCopy, results)
			go func() {
				if err := database.SaveResults(manager.DB, gameID, resultsCopy); err != nil {
					log.Printf("❌ Ошибка сохранения результатов игры %s: %v", gameID, err)
				}
				if err := database.FinishGame(manager.DB, gameID, time.Now()); err != nil {
					log.Printf("❌ Ошибка закрытия игры %s: %v", gameID, err)
				}
			}()
		}
	})

	g.AddEventListener("game_stopped", func(data interface{}) {
		gameID, _ := data.(string)
		manager.emitToAll("game_stopped", map[string]interface{}{"game_id": gameID})

		// Архивируем журнал раунда после рассылки итогов
		go manager.flushEventLog(gameID)
	})
}
