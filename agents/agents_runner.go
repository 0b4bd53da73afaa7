// agents/agents_runner.go
package main

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/LilVoxy/coursework_figgie/agents/client"
	"github.com/LilVoxy/coursework_figgie/agents/llm"
	"github.com/LilVoxy/coursework_figgie/agents/strategy"
)

// envOrDefault возвращает значение переменной окружения или значение по умолчанию
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	log.Println("Запуск агентов Figgie...")

	baseURI := envOrDefault("FIGGIE_WS_URI", "ws://localhost:8080/ws")
	llmProvider := envOrDefault("FIGGIE_LLM_PROVIDER", "openai")

	// Очищаем журналы прошлого запуска
	os.RemoveAll("player_logs")

	// Состав стола: две правиловые стратегии и два LLM-агента
	builders := []struct {
		name  string
		build func() (*client.GameClient, error)
	}{
		{"aggressive_trader", func() (*client.GameClient, error) {
			return strategy.NewAggressiveTraderClient("aggressive_trader", baseURI), nil
		}},
		{"speculative_accumulator", func() (*client.GameClient, error) {
			return strategy.NewSpeculativeAccumulatorClient("speculative_accumulator", baseURI), nil
		}},
		{"openai_champion", func() (*client.GameClient, error) {
			return llm.NewLLMClient("openai_champion", baseURI,
				"Guess the goal suit and place smart orders to maximize profit and win the game with most profit",
				llmProvider)
		}},
		{"openai_mm", func() (*client.GameClient, error) {
			return llm.NewLLMClient("openai_mm", baseURI,
				"Guess goal suit and place smart orders to act as a market maker, be aggressive",
				llmProvider)
		}},
	}

	var pools []*client.AgentPool
	for _, b := range builders {
		builder := b
		pool, err := client.NewAgentPool(1, func(int) (*client.GameClient, error) {
			return builder.build()
		})
		if err != nil {
			log.Fatalf("❌ Ошибка создания пула %s: %v", builder.name, err)
		}
		pools = append(pools, pool)
	}

	// Подключаем всех агентов
	for i, pool := range pools {
		if err := pool.Start(); err != nil {
			log.Fatalf("❌ Ошибка запуска пула %s: %v", builders[i].name, err)
		}
	}

	// Даем соединениям установиться
	time.Sleep(2 * time.Second)

	// Отправляем сигнал готовности от всех агентов
	for i, pool := range pools {
		if err := pool.SendReady(); err != nil {
			log.Fatalf("❌ Ошибка отправки готовности пула %s: %v", builders[i].name, err)
		}
	}

	// Запускаем циклы приема сообщений
	var wg sync.WaitGroup
	for _, pool := range pools {
		pool.Run(&wg)
	}
	wg.Wait()

	log.Println("👋 Все агенты завершили работу")
}
