// game/types.go
package game

// Игрок за столом
type Player struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// Запись в книге заявок (лучшая заявка по масти)
// Price == -1 означает, что заявки нет
type BookEntry struct {
	Price    int    `json:"price"`
	PlayerID string `json:"player_id"`
	OrderID  int    `json:"order_id"`
}

// Книга заявок: по одной лучшей заявке на покупку и продажу для каждой масти
type OrderBook struct {
	Bids map[string]BookEntry `json:"bids"`
	Asks map[string]BookEntry `json:"asks"`
}

// NewOrderBook создает пустую книгу заявок
func NewOrderBook() *OrderBook {
	book := &OrderBook{
		Bids: make(map[string]BookEntry),
		Asks: make(map[string]BookEntry),
	}
	book.Reset()
	return book
}

// Reset очищает книгу заявок (после каждой сделки книга сбрасывается целиком)
func (book *OrderBook) Reset() {
	for _, suit := range Suits {
		book.Bids[suit] = BookEntry{Price: -1, OrderID: -1}
		book.Asks[suit] = BookEntry{Price: -1, OrderID: -1}
	}
}

// Заявка игрока
type Order struct {
	IsBid    bool   `json:"is_bid"`
	Suit     string `json:"suit"`
	Price    int    `json:"price"`
	PlayerID string `json:"player_id"`
}

// Сделка между двумя игроками
// From — продавец (получает деньги, отдает карту), To — покупатель
type Trade struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Suit   string `json:"suit"`
	Amount int    `json:"amount"`
}

// Итог раунда для одного игрока
type PlayerResult struct {
	PlayerID  string `json:"player_id"`
	GoalCards int    `json:"goal_cards"`
	Bonus     int    `json:"bonus"`
	FinalCash int    `json:"final_cash"`
	Winner    bool   `json:"winner"`
}

// Состояние игры
type GameState struct {
	Started         bool                      `json:"started"`
	Countdown       int                       `json:"countdown"`
	PlayerCards     map[string]map[string]int `json:"player2cards,omitempty"`
	PlayerCardCount map[string]int            `json:"player2card_count"`
	GoalSuit        string                    `json:"goal_suit,omitempty"`
	PlayerCash      map[string]int            `json:"player2cash"`
	OrderBook       *OrderBook                `json:"orderbook"`
}

// NewGameState создает начальное состояние игры
func NewGameState(countdown int) *GameState {
	return &GameState{
		Countdown:       countdown,
		PlayerCards:     make(map[string]map[string]int),
		PlayerCardCount: make(map[string]int),
		PlayerCash:      make(map[string]int),
		OrderBook:       NewOrderBook(),
	}
}

// Redacted возвращает копию состояния без закрытой информации
// (руки игроков и целевая масть не рассылаются во время раунда)
func (state *GameState) Redacted() *GameState {
	redacted := &GameState{
		Started:         state.Started,
		Countdown:       state.Countdown,
		PlayerCardCount: make(map[string]int, len(state.PlayerCardCount)),
		PlayerCash:      make(map[string]int, len(state.PlayerCash)),
		OrderBook: &OrderBook{
			Bids: make(map[string]BookEntry, len(state.OrderBook.Bids)),
			Asks: make(map[string]BookEntry, len(state.OrderBook.Asks)),
		},
	}

	for playerID, count := range state.PlayerCardCount {
		redacted.PlayerCardCount[playerID] = count
	}
	for playerID, cash := range state.PlayerCash {
		redacted.PlayerCash[playerID] = cash
	}
	for suit, entry := range state.OrderBook.Bids {
		redacted.OrderBook.Bids[suit] = entry
	}
	for suit, entry := range state.OrderBook.Asks {
		redacted.OrderBook.Asks[suit] = entry
	}

	return redacted
}
