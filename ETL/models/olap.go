package models

import (
	"time"
)

// TradeFact представляет факт сделки в аналитической (OLAP) базе данных
type TradeFact struct {
	TradeID    int       `json:"trade_id"`
	GameID     string    `json:"game_id"`
	SellerID   string    `json:"seller_id"`
	BuyerID    string    `json:"buyer_id"`
	Suit       string    `json:"suit"`
	Price      int       `json:"price"`
	IsGoalSuit bool      `json:"is_goal_suit"`
	TradedAt   time.Time `json:"traded_at"`
}

// ResultFact представляет факт итога игрока в завершенной игре
type ResultFact struct {
	GameID     string    `json:"game_id"`
	PlayerID   string    `json:"player_id"`
	GoalCards  int       `json:"goal_cards"`
	Bonus      int       `json:"bonus"`
	FinalCash  int       `json:"final_cash"`
	Profit     int       `json:"profit"`
	Winner     bool      `json:"winner"`
	FinishedAt time.Time `json:"finished_at"`
}

// PlayerDimension представляет накопительное измерение игрока.
// Числовые поля содержат приращения за текущий запуск ETL,
// при загрузке они прибавляются к уже накопленным значениям.
type PlayerDimension struct {
	PlayerID    string    `json:"player_id"`
	GamesPlayed int       `json:"games_played"`
	Wins        int       `json:"wins"`
	TotalProfit int       `json:"total_profit"`
	TradesBuy   int       `json:"trades_buy"`
	TradesSell  int       `json:"trades_sell"`
	VolumeBuy   int       `json:"volume_buy"`
	VolumeSell  int       `json:"volume_sell"`
	LastSeen    time.Time `json:"last_seen"`
}

// TransformedData содержит данные, подготовленные для загрузки в OLAP
type TransformedData struct {
	Trades   []TradeFact
	Results  []ResultFact
	Players  []PlayerDimension
	Metadata ETLMetadata
}
