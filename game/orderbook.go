// game/orderbook.go
package game

import "log"

// Ответ игроку на его заявку
type OrderAck struct {
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

const (
	orderAdded    = "Order added"
	orderNotAdded = "Order not added"
)

// ProcessAddOrder обрабатывает размещение заявки.
// Заявка на покупку попадает в книгу, только если она строго выше текущей;
// заявка на продажу — если книга пуста или цена строго ниже текущей.
// Заявка, пересекающая встречную сторону книги, немедленно исполняется
// по цене стоящей заявки.
func (g *Game) ProcessAddOrder(order Order) {
	g.mu.Lock()
	defer g.mu.Unlock()

	event := "add_order_processed"
	if !g.validateOrderLocked(order, event) {
		return
	}
	if order.Price <= 0 {
		g.emitEvent(event, OrderAck{PlayerID: order.PlayerID, Message: "Invalid price"})
		return
	}

	book := g.State.OrderBook
	message := orderNotAdded

	if order.IsBid {
		currentAsk := book.Asks[order.Suit]
		currentBid := book.Bids[order.Suit]

		switch {
		case currentAsk.Price != -1 && order.Price >= currentAsk.Price && currentAsk.PlayerID != order.PlayerID:
			// Заявка пересекает книгу: покупаем по цене продавца
			if g.executeTradeLocked(order.PlayerID, currentAsk.PlayerID, order.Suit, currentAsk.Price) {
				message = orderAdded
			}
		case order.Price > currentBid.Price:
			book.Bids[order.Suit] = BookEntry{Price: order.Price, PlayerID: order.PlayerID, OrderID: 1}
			message = orderAdded
		}
	} else {
		currentBid := book.Bids[order.Suit]
		currentAsk := book.Asks[order.Suit]

		switch {
		case currentBid.Price != -1 && order.Price <= currentBid.Price && currentBid.PlayerID != order.PlayerID:
			// Заявка пересекает книгу: продаем по цене покупателя
			if g.executeTradeLocked(currentBid.PlayerID, order.PlayerID, order.Suit, currentBid.Price) {
				message = orderAdded
			}
		case currentAsk.Price == -1 || order.Price < currentAsk.Price:
			book.Asks[order.Suit] = BookEntry{Price: order.Price, PlayerID: order.PlayerID, OrderID: 1}
			message = orderAdded
		}
	}

	g.emitEvent(event, OrderAck{PlayerID: order.PlayerID, Message: message})
}

// ProcessAcceptOrder обрабатывает принятие стоящей заявки.
// Принятие bid — продажа карты покупателю по его цене,
// принятие ask — покупка карты у продавца по его цене.
func (g *Game) ProcessAcceptOrder(order Order) {
	g.mu.Lock()
	defer g.mu.Unlock()

	event := "accept_order_processed"
	if !g.validateOrderLocked(order, event) {
		return
	}

	book := g.State.OrderBook
	message := orderNotAdded

	if order.IsBid {
		currentBid := book.Bids[order.Suit]
		if currentBid.Price != -1 && currentBid.PlayerID != order.PlayerID {
			if g.executeTradeLocked(currentBid.PlayerID, order.PlayerID, order.Suit, currentBid.Price) {
				message = orderAdded
			}
		}
	} else {
		currentAsk := book.Asks[order.Suit]
		if currentAsk.Price != -1 && currentAsk.PlayerID != order.PlayerID {
			if g.executeTradeLocked(order.PlayerID, currentAsk.PlayerID, order.Suit, currentAsk.Price) {
				message = orderAdded
			}
		}
	}

	g.emitEvent(event, OrderAck{PlayerID: order.PlayerID, Message: message})
}

// validateOrderLocked выполняет базовые проверки заявки
// Вызывается только под мьютексом
func (g *Game) validateOrderLocked(order Order, event string) bool {
	reject := func(message string) bool {
		g.emitEvent(event, OrderAck{PlayerID: order.PlayerID, Message: message})
		return false
	}

	if !g.State.Started {
		return reject("Game not started")
	}
	if _, exists := g.Players[order.PlayerID]; !exists {
		return reject("Unknown player")
	}
	if !IsValidSuit(order.Suit) {
		return reject("Unknown suit")
	}
	return true
}

// executeTradeLocked исполняет сделку: проверяет карту у продавца и деньги
// у покупателя, переводит их и сбрасывает книгу заявок целиком.
// Вызывается только под мьютексом
func (g *Game) executeTradeLocked(buyerID, sellerID, suit string, price int) bool {
	if buyerID == sellerID {
		return false
	}
	if price <= 0 {
		return false
	}
	if g.State.PlayerCards[sellerID][suit] <= 0 {
		log.Printf("⚠️ Сделка отклонена: у продавца %s нет карты %s", sellerID, suit)
		return false
	}
	if g.State.PlayerCash[buyerID] < price {
		log.Printf("⚠️ Сделка отклонена: у покупателя %s не хватает денег (%d < %d)",
			buyerID, g.State.PlayerCash[buyerID], price)
		return false
	}

	g.State.PlayerCards[sellerID][suit]--
	g.State.PlayerCardCount[sellerID]--
	if g.State.PlayerCards[buyerID] == nil {
		g.State.PlayerCards[buyerID] = make(map[string]int)
	}
	g.State.PlayerCards[buyerID][suit]++
	g.State.PlayerCardCount[buyerID]++

	g.State.PlayerCash[sellerID] += price
	g.State.PlayerCash[buyerID] -= price

	trade := Trade{From: sellerID, To: buyerID, Suit: suit, Amount: price}
	g.Trades = append(g.Trades, trade)

	// После каждой сделки книга сбрасывается целиком
	g.State.OrderBook.Reset()

	log.Printf("💱 Сделка: %s -> %s, %s за %d", sellerID, buyerID, suit, price)
	g.emitEvent("transaction_processed", trade)
	return true
}
