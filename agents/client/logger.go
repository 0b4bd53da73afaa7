// agents/client/logger.go
package client

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Каталог для журналов агентов
const logDir = "player_logs"

// LogToFile дописывает строку в персональный журнал агента
func LogToFile(playerID, format string, args ...interface{}) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("❌ Не удалось создать каталог журналов: %v", err)
		return
	}

	filename := filepath.Join(logDir, fmt.Sprintf("%s_log.txt", playerID))
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("❌ Не удалось открыть журнал агента %s: %v", playerID, err)
		return
	}
	defer file.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(file, "[%s] %s\n", timestamp, message)
}
