// websocket/message_handler.go
package websocket

import (
	"encoding/json"
	"log"

	"github.com/LilVoxy/coursework_figgie/game"
)

// HandleMessage обрабатывает игровые сообщения от клиента
func (manager *Manager) HandleMessage(client *Client, msg Message) {
	log.Printf("Получено сообщение от %s: %s", client.ID, msg.Type)

	switch msg.Type {
	case "add_player":
		// Игрок занимает место за столом
		if err := manager.Game.AddPlayer(client.ID); err != nil {
			log.Printf("⚠️ Не удалось добавить игрока %s: %v", client.ID, err)
			manager.emitToPlayer(client.ID, "error", err.Error())
		}

	case "player_ready":
		// Игрок отмечает готовность; когда все готовы — стартуем
		manager.Game.PlayerIsReady(client.ID)
		if manager.Game.CheckAllPlayersReady() {
			log.Printf("✅ Все игроки готовы, запускаем обратный отсчет")
			go manager.Game.PreGameCountdown()
		}

	case "place_order":
		order, ok := manager.parseOrder(client, msg.Data)
		if !ok {
			return
		}
		manager.Game.ProcessAddOrder(order)

	case "accept_order":
		order, ok := manager.parseOrder(client, msg.Data)
		if !ok {
			return
		}
		manager.Game.ProcessAcceptOrder(order)

	default:
		log.Printf("⚠️ Неизвестный тип сообщения от %s: %s", client.ID, msg.Type)
	}
}

// parseOrder разбирает заявку из данных сообщения.
// ID игрока всегда берется из соединения, а не из тела сообщения
func (manager *Manager) parseOrder(client *Client, data json.RawMessage) (game.Order, bool) {
	var order game.Order
	if err := json.Unmarshal(data, &order); err != nil {
		log.Printf("Ошибка разбора заявки от %s: %v", client.ID, err)
		manager.emitToPlayer(client.ID, "error", "Некорректный формат заявки")
		return order, false
	}
	order.PlayerID = client.ID
	return order, true
}
