package processor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveAndRestoreGameLog(t *testing.T) {
	events := []GameEvent{
		{
			Timestamp: time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC),
			Type:      "game_started",
			Data:      json.RawMessage(`"g1"`),
		},
		{
			Timestamp: time.Date(2026, 5, 12, 10, 0, 3, 0, time.UTC),
			Type:      "transaction_processed",
			Data:      json.RawMessage(`{"from":"p1","to":"p2","suit":"hearts","amount":7}`),
		},
		{
			Timestamp: time.Date(2026, 5, 12, 10, 0, 10, 0, time.UTC),
			Type:      "game_stopped",
			Data:      json.RawMessage(`"g1"`),
		},
	}

	blob, err := ArchiveGameLog(events)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	restored, err := RestoreGameLog(blob)
	require.NoError(t, err)
	assert.Equal(t, events, restored)
}

func TestArchiveEmptyLog(t *testing.T) {
	blob, err := ArchiveGameLog(nil)
	require.NoError(t, err)

	restored, err := RestoreGameLog(blob)
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestRestoreRejectsCorruptedBlob(t *testing.T) {
	_, err := RestoreGameLog([]byte("это не snappy"))
	assert.Error(t, err)
}

func TestCompressReducesRepetitiveLog(t *testing.T) {
	// Журнал раунда состоит из повторяющихся конвертов — сжатие должно давать выигрыш
	var events []GameEvent
	for i := 0; i < 200; i++ {
		events = append(events, GameEvent{
			Timestamp: time.Date(2026, 5, 12, 10, 0, 0, i, time.UTC),
			Type:      "game_state",
			Data:      json.RawMessage(`{"order_book":{"bids":{"hearts":{"price":-1}},"asks":{"hearts":{"price":-1}}}}`),
		})
	}

	serialized, err := json.Marshal(events)
	require.NoError(t, err)

	compressed := CompressLog(serialized)
	assert.Less(t, len(compressed), len(serialized))

	decompressed, err := DecompressLog(compressed)
	require.NoError(t, err)
	assert.Equal(t, serialized, decompressed)
}
