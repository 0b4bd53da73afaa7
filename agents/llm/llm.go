// agents/llm/llm.go
package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/LilVoxy/coursework_figgie/agents/client"
)

// Количество последних сообщений, передаваемых модели как контекст
const recentUpdatesLimit = 30

// Решение, возвращаемое моделью
type Decision struct {
	Action string `json:"action"` // place_order | accept_order | wait
	Suit   string `json:"suit"`
	Price  int    `json:"price"`
	IsBid  bool   `json:"is_bid"`
}

// LLMStrategy принимает торговые решения через LLM API
type LLMStrategy struct {
	Instructions string
	Provider     Provider

	mu      sync.Mutex
	updates []string
}

// NewLLMClient создает клиента с LLM-стратегией
func NewLLMClient(playerID, baseURI, instructions, providerName string) (*client.GameClient, error) {
	provider, err := NewProvider(providerName)
	if err != nil {
		return nil, err
	}

	c := client.NewGameClient(playerID, baseURI)
	c.Strategy = &LLMStrategy{
		Instructions: instructions,
		Provider:     provider,
	}
	return c, nil
}

// Observe сохраняет входящее сообщение в скользящем окне контекста
func (s *LLMStrategy) Observe(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, string(raw))
	if len(s.updates) > recentUpdatesLimit {
		s.updates = s.updates[len(s.updates)-recentUpdatesLimit:]
	}
}

// MakeDecision запрашивает у модели торговое решение и исполняет его
func (s *LLMStrategy) MakeDecision(c *client.GameClient) {
	if c.GameState == nil || c.GameState.OrderBook == nil {
		return
	}

	response, err := s.Provider.Complete(s.systemPrompt(), s.buildPrompt(c))
	if err != nil {
		client.LogToFile(c.PlayerID, "Error in make_decision: %v", err)
		return
	}
	client.LogToFile(c.PlayerID, "%s response: %s", s.Provider.Name(), response)

	decision, err := ParseDecision(response)
	if err != nil {
		client.LogToFile(c.PlayerID, "Error parsing decision: %v", err)
		return
	}

	switch decision.Action {
	case "place_order":
		c.PlaceOrder(decision.Suit, decision.Price, decision.IsBid)
	case "accept_order":
		c.AcceptOrder(decision.Suit, decision.IsBid)
	}
	// Если действие "wait" — ничего не делаем
}

// systemPrompt описывает модели правила игры и ее задачу
func (s *LLMStrategy) systemPrompt() string {
	return fmt.Sprintf(`You are an AI agent playing a card trading game called Figgie. Your goal is to maximize your profit by trading cards and predicting the goal suit. Here are the rules:

1. There are four suits: hearts, diamonds, clubs, and spades.
2. One suit is secretly chosen as the goal suit, worth 10 points each at the end.
3. The goal suit is of the same color as the suit with the most cards in the deck.
4. You start with 400 cash and a random distribution of cards. 50 cash is required to enter the game.
5. You can buy and sell cards by placing or accepting orders.
6. The game ends after a set time, and the player with the highest score (goal cards * 10 + cash) wins.

Your task is to %s. You can place orders, accept orders, or wait for more information before making a decision. Good luck!`, s.Instructions)
}

// buildPrompt собирает пользовательский промпт с текущим состоянием игры
func (s *LLMStrategy) buildPrompt(c *client.GameClient) string {
	stateJSON, _ := json.Marshal(c.GameState)
	cardsJSON, _ := json.Marshal(c.Cards)

	s.mu.Lock()
	recent := strings.Join(s.updates, "\n")
	s.mu.Unlock()

	return fmt.Sprintf(`Current game state:
%s

Your inventory:
%s

Your cash:
%d

Recent updates:
%s

Based on this information, what action would you like to take? Respond with a JSON-formatted decision in this format: {"action": "place_order"|"accept_order"|"wait", "suit": "hearts"|"diamonds"|"clubs"|"spades", "price": <int>, "is_bid": <bool>}. Please directly respond with json.`,
		stateJSON, cardsJSON, c.Cash, recent)
}

// ParseDecision разбирает решение из ответа модели
// Модель может обернуть JSON в блок кода — снимаем обертку
func ParseDecision(response string) (Decision, error) {
	var decision Decision

	text := response
	if idx := strings.Index(text, "```json"); idx != -1 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	}
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		return decision, fmt.Errorf("некорректный JSON в решении модели: %w", err)
	}

	switch decision.Action {
	case "place_order", "accept_order", "wait":
	default:
		return decision, fmt.Errorf("неизвестное действие модели: %q", decision.Action)
	}

	return decision, nil
}
