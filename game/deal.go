// game/deal.go
package game

// getGoalSuit случайно выбирает целевую масть раунда
func (g *Game) getGoalSuit() string {
	return Suits[g.rng.Intn(len(Suits))]
}

// getSuitDistribution строит распределение карт по мастям:
// масть с 12 картами всегда того же цвета, что и целевая,
// целевая масть получает 8 или 10 карт, оставшиеся масти — остаток
func (g *Game) getSuitDistribution(goalSuit string) map[string]int {
	suitCounts := make(map[string]int)

	goalColor := SuitColors[goalSuit]
	goalCount := GoalSuitCounts[g.rng.Intn(len(GoalSuitCounts))]

	var sameColorOther string
	for _, suit := range ColorSuits[goalColor] {
		if suit != goalSuit {
			sameColorOther = suit
		}
	}

	suitCounts[goalSuit] = goalCount
	suitCounts[sameColorOther] = 12

	var remainingSuits []string
	for _, suit := range Suits {
		if _, taken := suitCounts[suit]; !taken {
			remainingSuits = append(remainingSuits, suit)
		}
	}

	remainingCounts := []int{8, 10}
	if goalCount == 8 {
		remainingCounts = []int{10, 10}
	}

	g.rng.Shuffle(len(remainingSuits), func(i, j int) {
		remainingSuits[i], remainingSuits[j] = remainingSuits[j], remainingSuits[i]
	})
	g.rng.Shuffle(len(remainingCounts), func(i, j int) {
		remainingCounts[i], remainingCounts[j] = remainingCounts[j], remainingCounts[i]
	})

	for i, suit := range remainingSuits {
		suitCounts[suit] = remainingCounts[i]
	}

	return suitCounts
}

// createDeck собирает и тасует колоду из распределения мастей
func (g *Game) createDeck(suitCounts map[string]int) []string {
	var deck []string
	for _, suit := range Suits {
		for i := 0; i < suitCounts[suit]; i++ {
			deck = append(deck, suit)
		}
	}
	g.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// distributeCards раздает колоду игрокам по кругу
func (g *Game) distributeCards(deck []string) map[string]map[string]int {
	playerCards := make(map[string]map[string]int)

	for i, playerID := range g.playerOrder {
		hand := make(map[string]int)
		for j := i; j < len(deck); j += len(g.playerOrder) {
			hand[deck[j]]++
		}
		playerCards[playerID] = hand
	}

	return playerCards
}

// initializePlayerCash выдает игрокам стартовый капитал за вычетом взноса
func (g *Game) initializePlayerCash() map[string]int {
	playerCash := make(map[string]int)
	for _, playerID := range g.playerOrder {
		playerCash[playerID] = CashPerPlayer - CashToEnter
	}
	return playerCash
}

// dealCardsLocked раздает карты и деньги, рассылая каждому игроку его руку
// Вызывается только под мьютексом
func (g *Game) dealCardsLocked() {
	g.State.GoalSuit = g.getGoalSuit()
	suitCounts := g.getSuitDistribution(g.State.GoalSuit)
	deck := g.createDeck(suitCounts)

	g.State.PlayerCards = g.distributeCards(deck)
	g.State.PlayerCash = g.initializePlayerCash()

	g.State.PlayerCardCount = make(map[string]int)
	for playerID, hand := range g.State.PlayerCards {
		total := 0
		for _, count := range hand {
			total += count
		}
		g.State.PlayerCardCount[playerID] = total
	}

	// Каждый игрок видит только свою руку
	for _, playerID := range g.playerOrder {
		g.emitEvent("deal_cards", DealtHand{
			PlayerID: playerID,
			Cards:    g.State.PlayerCards[playerID],
			Cash:     g.State.PlayerCash[playerID],
		})
	}
}

// DealtHand — рука и деньги, выданные игроку при раздаче
type DealtHand struct {
	PlayerID string         `json:"player_id"`
	Cards    map[string]int `json:"cards"`
	Cash     int            `json:"cash"`
}
