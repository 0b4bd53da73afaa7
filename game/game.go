// game/game.go
package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

// Callback для событий игры
type EventCallback func(data interface{})

// Game содержит полное состояние одного раунда Figgie
type Game struct {
	GameID     string
	MaxPlayers int
	TimerMax   int

	State   *GameState
	Players map[string]*Player

	// Порядок подключения игроков (нужен для раздачи карт по кругу)
	playerOrder []string

	// Журнал сделок раунда
	Trades []Trade

	// Результаты последнего завершенного раунда
	Results []PlayerResult

	mu        sync.Mutex
	listeners map[string][]EventCallback
	rng       *rand.Rand
	stopCh    chan struct{}
}

// NewGame создает новую игру
func NewGame(gameID string, maxPlayers, timerMax int) *Game {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	if timerMax <= 0 {
		timerMax = TimerCountdown
	}
	return &Game{
		GameID:     gameID,
		MaxPlayers: maxPlayers,
		TimerMax:   timerMax,
		State:      NewGameState(timerMax),
		Players:    make(map[string]*Player),
		listeners:  make(map[string][]EventCallback),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddEventListener регистрирует обработчик события
func (g *Game) AddEventListener(event string, callback EventCallback) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners[event] = append(g.listeners[event], callback)
}

// emitEvent вызывает все обработчики события
// Вызывается только изнутри методов Game; обработчики не должны
// обращаться обратно к Game (они лишь сериализуют и отправляют данные)
func (g *Game) emitEvent(event string, data interface{}) {
	for _, callback := range g.listeners[event] {
		callback(data)
	}
}

// AddPlayer добавляет игрока за стол
func (g *Game) AddPlayer(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.Players[playerID]; exists {
		return fmt.Errorf("игрок %s уже за столом", playerID)
	}
	if len(g.Players) >= g.MaxPlayers {
		return fmt.Errorf("стол заполнен (%d игроков)", g.MaxPlayers)
	}

	g.Players[playerID] = &Player{PlayerID: playerID}
	g.playerOrder = append(g.playerOrder, playerID)
	log.Printf("👤 Игрок %s присоединился к игре %s", playerID, g.GameID)

	g.emitEvent("player_added", playerID)
	return nil
}

// RemovePlayer убирает игрока со стола
func (g *Game) RemovePlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.Players[playerID]; !exists {
		return
	}

	delete(g.Players, playerID)
	for i, id := range g.playerOrder {
		if id == playerID {
			g.playerOrder = append(g.playerOrder[:i], g.playerOrder[i+1:]...)
			break
		}
	}
	log.Printf("👤 Игрок %s покинул игру %s", playerID, g.GameID)

	g.emitEvent("player_removed", playerID)
}

// PlayerIsReady отмечает готовность игрока
func (g *Game) PlayerIsReady(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, exists := g.Players[playerID]
	if !exists {
		return
	}

	player.Ready = true
	g.emitEvent("player_ready", playerID)
}

// CheckAllPlayersReady проверяет, что стол полон и все игроки готовы
func (g *Game) CheckAllPlayersReady() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allReadyLocked()
}

func (g *Game) allReadyLocked() bool {
	if len(g.Players) != g.MaxPlayers {
		return false
	}
	for _, player := range g.Players {
		if !player.Ready {
			return false
		}
	}
	return true
}

// PreGameCountdown проводит обратный отсчет 3-2-1 перед стартом раунда
func (g *Game) PreGameCountdown() {
	for i := 3; i > 0; i-- {
		time.Sleep(1 * time.Second)
		g.mu.Lock()
		g.emitEvent("message", fmt.Sprintf("Game starting in %d", i))
		g.mu.Unlock()
	}
	if err := g.StartGame(); err != nil {
		log.Printf("❌ Не удалось запустить игру %s: %v", g.GameID, err)
	}
}

// StartGame раздает карты и запускает таймер раунда
func (g *Game) StartGame() error {
	g.mu.Lock()

	if g.State.Started {
		g.mu.Unlock()
		return fmt.Errorf("игра %s уже запущена", g.GameID)
	}
	if !g.allReadyLocked() {
		g.mu.Unlock()
		return fmt.Errorf("не все игроки готовы")
	}

	g.dealCardsLocked()

	g.State.Started = true
	g.State.Countdown = g.TimerMax
	g.Trades = nil
	g.Results = nil
	g.stopCh = make(chan struct{})

	log.Printf("✅ Игра %s началась, целевая масть: %s", g.GameID, g.State.GoalSuit)
	g.emitEvent("game_started", g.GameID)
	g.mu.Unlock()

	go g.countdownLoop()
	return nil
}

// countdownLoop ведет посекундный отсчет раунда и рассылает состояние
func (g *Game) countdownLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopCh:
			return
		case <-ticker.C:
			g.mu.Lock()
			if !g.State.Started {
				g.mu.Unlock()
				return
			}

			g.State.Countdown--
			g.emitEvent("game_state", g.State.Redacted())

			if g.State.Countdown <= 0 {
				g.stopGameLocked()
				g.mu.Unlock()
				return
			}
			g.mu.Unlock()
		}
	}
}

// StopGame досрочно завершает раунд
func (g *Game) StopGame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.State.Started {
		return
	}
	g.stopGameLocked()
}

// stopGameLocked завершает раунд: расчет банка, результаты, сброс таймера
// Вызывается только под мьютексом
func (g *Game) stopGameLocked() {
	g.State.Started = false
	select {
	case <-g.stopCh:
	default:
		close(g.stopCh)
	}

	results := g.settleLocked()
	g.Results = results
	g.State.Countdown = g.TimerMax

	log.Printf("🏁 Игра %s завершена, сделок за раунд: %d", g.GameID, len(g.Trades))
	g.emitEvent("game_result", results)
	g.emitEvent("game_stopped", g.GameID)
}
