package processor

import (
	"encoding/json"
	"time"
)

// Событие игры в журнале раунда
type GameEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
}

// ArchiveGameLog объединяет два этапа обработки журнала раунда:
// 1. Сериализация списка событий в JSON
// 2. Сжатие с использованием Snappy (функция CompressLog из compress.go)
// Полученный blob сохраняется в таблице game_logs.
func ArchiveGameLog(events []GameEvent) ([]byte, error) {
	serialized, err := json.Marshal(events)
	if err != nil {
		return nil, err
	}
	return CompressLog(serialized), nil
}

// RestoreGameLog выполняет обратный процесс:
// 1. Распаковка blob с использованием Snappy (функция DecompressLog из compress.go)
// 2. Десериализация JSON обратно в список событий
func RestoreGameLog(blob []byte) ([]GameEvent, error) {
	serialized, err := DecompressLog(blob)
	if err != nil {
		return nil, err
	}

	var events []GameEvent
	if err := json.Unmarshal(serialized, &events); err != nil {
		return nil, err
	}
	return events, nil
}
