// game/settlement.go
package game

import (
	"log"
	"sort"
)

// settleLocked проводит расчет банка в конце раунда:
// банк = взнос * количество игроков; каждая карта целевой масти приносит
// владельцу 10 из банка; остаток банка делится поровну между игроками
// с наибольшим количеством карт целевой масти.
// Вызывается только под мьютексом
func (g *Game) settleLocked() []PlayerResult {
	pot := CashToEnter * len(g.playerOrder)
	goalSuit := g.State.GoalSuit

	// Премия за каждую карту целевой масти
	maxGoalCards := 0
	totalBonus := 0
	for _, playerID := range g.playerOrder {
		goalCards := g.State.PlayerCards[playerID][goalSuit]
		bonus := goalCards * GoalCardBonus
		g.State.PlayerCash[playerID] += bonus
		totalBonus += bonus
		if goalCards > maxGoalCards {
			maxGoalCards = goalCards
		}
	}

	// Остаток банка делится между держателями наибольшего числа карт целевой масти
	remainder := pot - totalBonus
	var majorityHolders []string
	for _, playerID := range g.playerOrder {
		if g.State.PlayerCards[playerID][goalSuit] == maxGoalCards {
			majorityHolders = append(majorityHolders, playerID)
		}
	}
	majorityShare := 0
	if len(majorityHolders) > 0 && remainder > 0 {
		majorityShare = remainder / len(majorityHolders)
		for _, playerID := range majorityHolders {
			g.State.PlayerCash[playerID] += majorityShare
		}
	}

	// Определяем победителей по итоговому капиталу
	maxCash := 0
	for _, playerID := range g.playerOrder {
		if g.State.PlayerCash[playerID] > maxCash {
			maxCash = g.State.PlayerCash[playerID]
		}
	}

	results := make([]PlayerResult, 0, len(g.playerOrder))
	for _, playerID := range g.playerOrder {
		goalCards := g.State.PlayerCards[playerID][goalSuit]
		bonus := goalCards * GoalCardBonus
		for _, holder := range majorityHolders {
			if holder == playerID {
				bonus += majorityShare
			}
		}
		results = append(results, PlayerResult{
			PlayerID:  playerID,
			GoalCards: goalCards,
			Bonus:     bonus,
			FinalCash: g.State.PlayerCash[playerID],
			Winner:    g.State.PlayerCash[playerID] == maxCash,
		})
	}

	// Стабильный порядок: по убыванию капитала, затем по имени
	sort.Slice(results, func(i, j int) bool {
		if results[i].FinalCash != results[j].FinalCash {
			return results[i].FinalCash > results[j].FinalCash
		}
		return results[i].PlayerID < results[j].PlayerID
	})

	log.Printf("💰 Расчет банка игры %s: банк=%d, премии=%d, остаток=%d на %d держателей",
		g.GameID, pot, totalBonus, remainder, len(majorityHolders))

	return results
}
