// agents/client/pool.go
package client

import (
	"fmt"
	"sync"
	"time"
)

// AgentPool управляет группой однотипных агентов
type AgentPool struct {
	agents []*GameClient
}

// NewAgentPool создает пул из numWorkers агентов
// build получает порядковый номер агента и возвращает готового клиента
func NewAgentPool(numWorkers int, build func(index int) (*GameClient, error)) (*AgentPool, error) {
	pool := &AgentPool{}
	for i := 0; i < numWorkers; i++ {
		agent, err := build(i)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания агента %d: %w", i, err)
		}
		pool.agents = append(pool.agents, agent)
	}
	return pool, nil
}

// Start подключает всех агентов пула к серверу
func (pool *AgentPool) Start() error {
	for _, agent := range pool.agents {
		if err := agent.Connect(); err != nil {
			return fmt.Errorf("ошибка подключения агента %s: %w", agent.PlayerID, err)
		}
		// Небольшая пауза между подключениями
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// SendReady отправляет сигнал готовности от всех агентов пула
func (pool *AgentPool) SendReady() error {
	for _, agent := range pool.agents {
		if err := agent.SendReady(); err != nil {
			return fmt.Errorf("ошибка отправки готовности агента %s: %w", agent.PlayerID, err)
		}
	}
	return nil
}

// Run запускает циклы приема сообщений всех агентов пула
func (pool *AgentPool) Run(wg *sync.WaitGroup) {
	for _, agent := range pool.agents {
		wg.Add(1)
		go func(a *GameClient) {
			defer wg.Done()
			a.ReceiveMessages()
		}(agent)
	}
}

// Agents возвращает агентов пула
func (pool *AgentPool) Agents() []*GameClient {
	return pool.agents
}
