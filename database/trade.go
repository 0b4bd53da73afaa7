// database/trade.go
package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/LilVoxy/coursework_figgie/game"
)

// Запись о сделке
type TradeRecord struct {
	ID        int       `json:"id"`
	GameID    string    `json:"gameId"`
	SellerID  string    `json:"sellerId"`
	BuyerID   string    `json:"buyerId"`
	Suit      string    `json:"suit"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveTrade сохраняет сделку в базе данных
func SaveTrade(db *sql.DB, gameID string, trade game.Trade) error {
	stmt, err := db.Prepare(`
		INSERT INTO trades (game_id, seller_id, buyer_id, suit, price)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		log.Printf("❌ Ошибка подготовки запроса для сохранения сделки: %v", err)
		return err
	}
	defer stmt.Close()

	result, err := stmt.Exec(gameID, trade.From, trade.To, trade.Suit, trade.Amount)
	if err != nil {
		log.Printf("❌ Ошибка выполнения запроса для сохранения сделки: %v", err)
		return err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		log.Printf("❌ Ошибка получения ID сохраненной сделки: %v", err)
		return err
	}

	log.Printf("✅ Сделка успешно сохранена в БД (ID: %d, игра: %s)", lastID, gameID)
	return nil
}

// GetTradesByGame возвращает все сделки игры в хронологическом порядке
func GetTradesByGame(db *sql.DB, gameID string) ([]TradeRecord, error) {
	rows, err := db.Query(`
		SELECT id, game_id, seller_id, buyer_id, suit, price, created_at
		FROM trades
		WHERE game_id = ?
		ORDER BY created_at ASC, id ASC
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []TradeRecord
	for rows.Next() {
		var record TradeRecord
		if err := rows.Scan(&record.ID, &record.GameID, &record.SellerID, &record.BuyerID,
			&record.Suit, &record.Price, &record.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании сделки: %v", err)
			continue
		}
		trades = append(trades, record)
	}

	return trades, rows.Err()
}
