// agents/llm/provider.go
package llm

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Provider — интерфейс доступа к LLM API
type Provider interface {
	// Complete отправляет системный и пользовательский промпты
	// и возвращает текст ответа модели
	Complete(systemPrompt, userPrompt string) (string, error)

	// Name возвращает имя провайдера для журналов
	Name() string
}

// Таймаут запросов к LLM API
const requestTimeout = 60 * time.Second

// NewProvider создает провайдера по имени ("openai" или "anthropic")
// Ключи берутся из переменных окружения OPENAI_API_KEY / ANTHROPIC_API_KEY
func NewProvider(name string) (Provider, error) {
	httpClient := &http.Client{Timeout: requestTimeout}

	switch name {
	case "openai":
		return &OpenAIProvider{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			Model:      "gpt-4o-mini",
			BaseURL:    "https://api.openai.com/v1",
			HTTPClient: httpClient,
		}, nil
	case "anthropic":
		return &AnthropicProvider{
			APIKey:     os.Getenv("ANTHROPIC_API_KEY"),
			Model:      "claude-3-5-sonnet-20240620",
			BaseURL:    "https://api.anthropic.com",
			HTTPClient: httpClient,
		}, nil
	default:
		return nil, fmt.Errorf("неподдерживаемый LLM провайдер: %s", name)
	}
}
