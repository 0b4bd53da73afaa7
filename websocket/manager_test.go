package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_figgie/game"
)

// newTestClient создает клиента с буферизованным каналом отправки без сокета
func newTestClient(id string, isUI bool) *Client {
	return &Client{
		ID:   id,
		IsUI: isUI,
		Send: make(chan []byte, 16),
	}
}

// waitForMessage ждет сообщение из канала клиента
func waitForMessage(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("сообщение не получено вовремя")
		return nil
	}
}

func TestManagerRegisterAndBroadcast(t *testing.T) {
	g := game.NewGame("g1", 2, 10)
	manager := NewManager(nil, g)
	go manager.Run()

	player := newTestClient("alice", false)
	observer := newTestClient("ui:test", true)

	manager.Register <- player
	manager.Register <- observer

	// Ждем, пока менеджер обработает регистрацию
	manager.Broadcast <- []byte(`{"type":"message","data":"hello"}`)

	assert.Equal(t, `{"type":"message","data":"hello"}`, string(waitForMessage(t, player)))
	assert.Equal(t, `{"type":"message","data":"hello"}`, string(waitForMessage(t, observer)))
}

func TestManagerUnregisterClosesSend(t *testing.T) {
	g := game.NewGame("g1", 2, 10)
	manager := NewManager(nil, g)
	go manager.Run()

	player := newTestClient("bob", false)
	manager.Register <- player
	manager.Unregister <- player

	select {
	case _, open := <-player.Send:
		assert.False(t, open, "канал должен быть закрыт после отключения")
	case <-time.After(2 * time.Second):
		t.Fatal("канал не закрыт после отключения")
	}
}

func TestGameEventsAreBroadcast(t *testing.T) {
	g := game.NewGame("g1", 2, 10)
	manager := NewManager(nil, g)
	go manager.Run()

	player := newTestClient("alice", false)
	manager.Register <- player

	// Событие игры уходит всем клиентам через конверт {type, data}
	require.NoError(t, g.AddPlayer("alice"))

	raw := waitForMessage(t, player)
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "player_added", msg.Type)
	assert.True(t, strings.Contains(string(msg.Data), "alice"))
}

func TestOrderAckGoesOnlyToSender(t *testing.T) {
	g := game.NewGame("g1", 2, 10)
	manager := NewManager(nil, g)
	go manager.Run()

	alice := newTestClient("alice", false)
	bob := newTestClient("bob", false)
	manager.Register <- alice
	manager.Register <- bob

	require.NoError(t, g.AddPlayer("alice"))
	require.NoError(t, g.AddPlayer("bob"))

	// Сбрасываем события о добавлении игроков
	waitForMessage(t, alice)
	waitForMessage(t, alice)
	waitForMessage(t, bob)
	waitForMessage(t, bob)

	// Заявка до старта игры: ответ должен получить только отправитель
	g.ProcessAddOrder(game.Order{IsBid: true, Suit: "hearts", Price: 5, PlayerID: "alice"})

	raw := waitForMessage(t, alice)
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "add_order_processed", msg.Type)

	var ackText string
	require.NoError(t, json.Unmarshal(msg.Data, &ackText))
	assert.Equal(t, "Game not started", ackText)

	select {
	case extra := <-bob.Send:
		t.Fatalf("bob не должен получать чужой ответ, получено: %s", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHandleStatusEndpoint(t *testing.T) {
	g := game.NewGame("g1", 2, 10)
	manager := NewManager(nil, g)

	// Некорректный метод
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	manager.HandleStatus(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// Отсутствует player_id
	req = httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{"status":"online"}`))
	rec = httptest.NewRecorder()
	manager.HandleStatus(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Корректное обновление статуса
	req = httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{"player_id":"alice","status":"online","is_active":true}`))
	rec = httptest.NewRecorder()
	manager.HandleStatus(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "alice", response["player_id"])

	manager.statusMutex.Lock()
	status := manager.PlayerStatuses["alice"]
	manager.statusMutex.Unlock()
	require.NotNil(t, status)
	assert.Equal(t, "online", status.Status)
	assert.True(t, status.IsActive)
}
