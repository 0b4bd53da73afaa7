package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementPayoutsAndWinner(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{
			"p1": {"spades": 5},
			"p2": {"spades": 3},
			"p3": {"spades": 2},
			"p4": {"spades": 0},
		},
		map[string]int{"p1": 350, "p2": 350, "p3": 350, "p4": 350})
	g.State.GoalSuit = "spades"

	results := g.settleLocked()

	// Банк 200: премии 50+30+20 = 100, остаток 100 уходит p1 как держателю большинства
	require.Len(t, results, 4)
	assert.Equal(t, "p1", results[0].PlayerID)
	assert.Equal(t, 5, results[0].GoalCards)
	assert.Equal(t, 150, results[0].Bonus)
	assert.Equal(t, 500, results[0].FinalCash)
	assert.True(t, results[0].Winner)

	assert.Equal(t, "p2", results[1].PlayerID)
	assert.Equal(t, 30, results[1].Bonus)
	assert.Equal(t, 380, results[1].FinalCash)
	assert.False(t, results[1].Winner)

	assert.Equal(t, "p4", results[3].PlayerID)
	assert.Equal(t, 0, results[3].Bonus)
	assert.Equal(t, 350, results[3].FinalCash)
}

func TestSettlementSplitsRemainderBetweenMajorityHolders(t *testing.T) {
	g := newTradingGame(t,
		map[string]map[string]int{
			"p1": {"hearts": 4},
			"p2": {"hearts": 4},
			"p3": {"hearts": 2},
			"p4": {"hearts": 0},
		},
		map[string]int{"p1": 350, "p2": 350, "p3": 350, "p4": 350})
	g.State.GoalSuit = "hearts"

	results := g.settleLocked()

	// Банк 200: премии 40+40+20 = 100, остаток 100 делится между p1 и p2 по 50
	byID := make(map[string]PlayerResult)
	for _, r := range results {
		byID[r.PlayerID] = r
	}

	assert.Equal(t, 90, byID["p1"].Bonus)
	assert.Equal(t, 90, byID["p2"].Bonus)
	assert.Equal(t, 440, byID["p1"].FinalCash)
	assert.Equal(t, 440, byID["p2"].FinalCash)

	// Оба держателя большинства выигрывают при равном капитале
	assert.True(t, byID["p1"].Winner)
	assert.True(t, byID["p2"].Winner)
	assert.False(t, byID["p3"].Winner)
	assert.False(t, byID["p4"].Winner)
}

func TestSettlementWinnerByCashNotGoalCards(t *testing.T) {
	// Игрок без карт целевой масти может выиграть за счет наторгованных денег
	g := newTradingGame(t,
		map[string]map[string]int{
			"p1": {"clubs": 3},
			"p2": {"clubs": 0},
		},
		map[string]int{"p1": 300, "p2": 500})
	g.State.GoalSuit = "clubs"

	results := g.settleLocked()

	// Банк 100: премия p1 = 30, остаток 70 тоже p1; итог p1 = 400, p2 = 500
	byID := make(map[string]PlayerResult)
	for _, r := range results {
		byID[r.PlayerID] = r
	}

	assert.Equal(t, 400, byID["p1"].FinalCash)
	assert.False(t, byID["p1"].Winner)
	assert.True(t, byID["p2"].Winner)

	// Результаты отсортированы по убыванию капитала
	assert.Equal(t, "p2", results[0].PlayerID)
}
