// game/constants.go
package game

// Константы игры Figgie
const (
	// Длительность раунда в секундах
	TimerCountdown = 10

	// Стартовый капитал игрока
	CashPerPlayer = 400

	// Взнос за вход в игру (формирует банк раунда)
	CashToEnter = 50

	// Премия за каждую карту целевой масти при расчете банка
	GoalCardBonus = 10

	// Максимальное количество игроков за столом
	DefaultMaxPlayers = 5
)

// Масти в игре
var Suits = []string{"hearts", "diamonds", "clubs", "spades"}

// Соответствие масти и цвета
var SuitColors = map[string]string{
	"hearts":   "red",
	"diamonds": "red",
	"clubs":    "black",
	"spades":   "black",
}

// Соответствие цвета и мастей
var ColorSuits = map[string][]string{
	"red":   {"hearts", "diamonds"},
	"black": {"clubs", "spades"},
}

// Распределение карт по мастям в колоде (всего 40 карт)
var SuitCounts = []int{8, 10, 10, 12}

// Возможные количества карт целевой масти
var GoalSuitCounts = []int{8, 10}

// IsValidSuit проверяет, что масть существует в игре
func IsValidSuit(suit string) bool {
	for _, s := range Suits {
		if s == suit {
			return true
		}
	}
	return false
}
