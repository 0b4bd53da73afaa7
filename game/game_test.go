package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addReadyPlayers добавляет игроков и отмечает их готовность
func addReadyPlayers(t *testing.T, g *Game, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, g.AddPlayer(id))
		g.PlayerIsReady(id)
	}
}

func TestNewGameDefaults(t *testing.T) {
	g := NewGame("g1", 0, 0)

	assert.Equal(t, DefaultMaxPlayers, g.MaxPlayers)
	assert.Equal(t, TimerCountdown, g.TimerMax)
	assert.False(t, g.State.Started)
	assert.Equal(t, TimerCountdown, g.State.Countdown)

	// Книга заявок пуста для всех мастей
	for _, suit := range Suits {
		assert.Equal(t, -1, g.State.OrderBook.Bids[suit].Price)
		assert.Equal(t, -1, g.State.OrderBook.Asks[suit].Price)
	}
}

func TestAddPlayer(t *testing.T) {
	g := NewGame("g1", 2, 10)

	require.NoError(t, g.AddPlayer("alice"))
	require.NoError(t, g.AddPlayer("bob"))

	// Повторное добавление того же игрока запрещено
	assert.Error(t, g.AddPlayer("alice"))

	// Стол заполнен
	assert.Error(t, g.AddPlayer("carol"))
	assert.Len(t, g.Players, 2)
}

func TestAddPlayerEmitsEvent(t *testing.T) {
	g := NewGame("g1", 2, 10)

	var added []string
	g.AddEventListener("player_added", func(data interface{}) {
		added = append(added, data.(string))
	})

	require.NoError(t, g.AddPlayer("alice"))
	assert.Equal(t, []string{"alice"}, added)
}

func TestRemovePlayer(t *testing.T) {
	g := NewGame("g1", 3, 10)
	require.NoError(t, g.AddPlayer("alice"))
	require.NoError(t, g.AddPlayer("bob"))

	g.RemovePlayer("alice")
	assert.Len(t, g.Players, 1)
	assert.Equal(t, []string{"bob"}, g.playerOrder)

	// Удаление неизвестного игрока не делает ничего
	g.RemovePlayer("carol")
	assert.Len(t, g.Players, 1)
}

func TestCheckAllPlayersReady(t *testing.T) {
	g := NewGame("g1", 2, 10)

	require.NoError(t, g.AddPlayer("alice"))
	g.PlayerIsReady("alice")

	// Стол не полон — игра не готова к старту
	assert.False(t, g.CheckAllPlayersReady())

	require.NoError(t, g.AddPlayer("bob"))
	assert.False(t, g.CheckAllPlayersReady())

	g.PlayerIsReady("bob")
	assert.True(t, g.CheckAllPlayersReady())
}

func TestPlayerIsReadyUnknownPlayer(t *testing.T) {
	g := NewGame("g1", 2, 10)
	require.NoError(t, g.AddPlayer("alice"))

	// Готовность неизвестного игрока игнорируется
	g.PlayerIsReady("bob")
	assert.False(t, g.Players["alice"].Ready)
}

func TestStartGameRequiresReadyPlayers(t *testing.T) {
	g := NewGame("g1", 2, 10)
	require.NoError(t, g.AddPlayer("alice"))
	require.NoError(t, g.AddPlayer("bob"))

	assert.Error(t, g.StartGame())
}

func TestStartGameDealsCardsAndCash(t *testing.T) {
	g := NewGame("g1", 4, 10)
	addReadyPlayers(t, g, "p1", "p2", "p3", "p4")

	require.NoError(t, g.StartGame())
	defer g.StopGame()

	assert.True(t, g.State.Started)
	assert.Contains(t, Suits, g.State.GoalSuit)

	// Каждый игрок получил стартовый капитал за вычетом взноса
	totalCards := 0
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		assert.Equal(t, CashPerPlayer-CashToEnter, g.State.PlayerCash[id])
		totalCards += g.State.PlayerCardCount[id]
	}
	assert.Equal(t, 40, totalCards)

	// Повторный запуск запрещен
	assert.Error(t, g.StartGame())
}

func TestStopGameProducesResults(t *testing.T) {
	g := NewGame("g1", 4, 10)
	addReadyPlayers(t, g, "p1", "p2", "p3", "p4")

	var stopped bool
	g.AddEventListener("game_stopped", func(data interface{}) {
		stopped = true
	})

	require.NoError(t, g.StartGame())
	g.StopGame()

	assert.False(t, g.State.Started)
	assert.True(t, stopped)
	assert.Len(t, g.Results, 4)

	// Таймер сброшен для следующего раунда
	assert.Equal(t, g.TimerMax, g.State.Countdown)

	// Повторная остановка безопасна
	g.StopGame()
}

func TestRedactedStateHidesPrivateData(t *testing.T) {
	g := NewGame("g1", 4, 10)
	addReadyPlayers(t, g, "p1", "p2", "p3", "p4")
	require.NoError(t, g.StartGame())
	defer g.StopGame()

	redacted := g.State.Redacted()

	// Руки игроков и целевая масть не попадают в публичное состояние
	assert.Empty(t, redacted.PlayerCards)
	assert.Empty(t, redacted.GoalSuit)

	// Публичные данные сохранены
	assert.Equal(t, g.State.PlayerCardCount, redacted.PlayerCardCount)
	assert.Equal(t, g.State.PlayerCash, redacted.PlayerCash)
}
