package models

import (
	"time"
)

// TradeOLTP представляет сделку из игровой (OLTP) базы данных
type TradeOLTP struct {
	ID        int       `json:"id"`
	GameID    string    `json:"game_id"`
	SellerID  string    `json:"seller_id"`
	BuyerID   string    `json:"buyer_id"`
	Suit      string    `json:"suit"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// GameOLTP представляет завершенную игру из OLTP базы данных
type GameOLTP struct {
	ID         string    `json:"id"`
	GoalSuit   string    `json:"goal_suit"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ResultOLTP представляет итог игрока в завершенной игре
type ResultOLTP struct {
	GameID    string `json:"game_id"`
	PlayerID  string `json:"player_id"`
	GoalCards int    `json:"goal_cards"`
	Bonus     int    `json:"bonus"`
	FinalCash int    `json:"final_cash"`
	Winner    bool   `json:"winner"`
}

// ExtractedData содержит данные, извлеченные из OLTP за один запуск ETL
type ExtractedData struct {
	Games     []GameOLTP
	Trades    []TradeOLTP
	Results   []ResultOLTP
	LastRunTS time.Time
}

// ETLMetadata содержит метаданные ETL процесса
type ETLMetadata struct {
	LastRunTimestamp     time.Time
	LastProcessedTradeID int
	GamesProcessed       int
	TradesProcessed      int
	ResultsProcessed     int
}
