package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/arcanechess/arcanechess/internal/config"
	"github.com/arcanechess/arcanechess/internal/game"
)

func newHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	service := NewService(&config.Config{}, hub)
	router := mux.NewRouter()
	service.Routes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func waitForSubscriber(t *testing.T, hub *Hub, gameID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.RLock()
		n := len(hub.gameClients[gameID])
		hub.mu.RUnlock()
		if n == 1 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered with the hub")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubDeliversEventsToSubscribers(t *testing.T) {
	hub, srv := newHubServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?gameId=game-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()
	waitForSubscriber(t, hub, "game-1")

	from := game.Position{X: 4, Y: 6}
	to := game.Position{X: 4, Y: 4}
	hub.BroadcastEvent("game-1", game.Event{Type: game.EventMove, Team: game.White, From: &from, To: &to})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		t.Fatalf("Failed to parse envelope: %v", err)
	}
	if env.GameID != "game-1" {
		t.Errorf("Expected game-1, got %s", env.GameID)
	}
	if env.Event.Type != game.EventMove {
		t.Errorf("Expected move event, got %s", env.Event.Type)
	}
	if env.Event.To == nil || *env.Event.To != to {
		t.Errorf("Expected destination %v, got %v", to, env.Event.To)
	}
}

func TestHubScopesEventsByGame(t *testing.T) {
	hub, srv := newHubServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?gameId=mine"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()
	waitForSubscriber(t, hub, "mine")

	hub.BroadcastEvent("other", game.Event{Type: game.EventCheckmate, Team: game.Black})
	hub.BroadcastEvent("mine", game.Event{Type: game.EventTurn, Team: game.Black})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		t.Fatalf("Failed to parse envelope: %v", err)
	}
	if env.GameID != "mine" || env.Event.Type != game.EventTurn {
		t.Errorf("Expected only this game's turn event, got %+v", env)
	}
}

func TestWebSocketHandlerRequiresGameID(t *testing.T) {
	_, srv := newHubServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 without gameId, got %d", resp.StatusCode)
	}
}
