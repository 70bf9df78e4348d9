package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/testutil"
)

func TestBroadcaster_NotifySendsJSONEvent(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("game-1")
	client := NewClient(hub, "bob")
	hub.Register(client)

	event := model.Event{
		Type:      model.EventMovePlayed,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		GameID:    "game-1",
		ActorID:   "alice",
		Move:      &model.Move{ID: "m1", Type: model.MoveTypePlay, Score: 16},
		Payload:   model.TurnPayload{NextTurn: "bob"},
	}
	if err := broadcaster.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.HasPrefix(msgStr, "event: move_played\nid: 1\n") {
			t.Errorf("message does not start with event name and id: %s", msgStr)
		}
		var line string
		for _, l := range strings.Split(msgStr, "\n") {
			if strings.HasPrefix(l, "data: ") {
				line = strings.TrimPrefix(l, "data: ")
			}
		}

		var decoded struct {
			Type    string `json:"type"`
			GameID  string `json:"game_id"`
			ActorID string `json:"actor_id"`
			Move    struct {
				Score int `json:"score"`
			} `json:"move"`
			Payload struct {
				NextTurn string `json:"next_turn"`
			} `json:"payload"`
		}
		if err := sonic.UnmarshalString(line, &decoded); err != nil {
			t.Fatalf("event data is not JSON: %v (%s)", err, line)
		}
		if decoded.Type != "move_played" || decoded.GameID != "game-1" || decoded.ActorID != "alice" {
			t.Errorf("unexpected event header: %+v", decoded)
		}
		if decoded.Move.Score != 16 {
			t.Errorf("move score = %d, want 16", decoded.Move.Score)
		}
		if decoded.Payload.NextTurn != "bob" {
			t.Errorf("next turn = %q, want bob", decoded.Payload.NextTurn)
		}
	default:
		t.Error("client did not receive message")
	}
}

func TestBroadcaster_NotifyWithoutWatchersIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	err := broadcaster.Notify(context.Background(), model.Event{Type: model.EventPassed, GameID: "nobody-watching"})
	if err != nil {
		t.Errorf("Notify returned error: %v", err)
	}
	if manager.GetHub("nobody-watching") != nil {
		t.Error("Notify should not create hubs")
	}
}

func TestBroadcaster_OnlyGameWatchersReceive(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	watched := manager.GetOrCreateHub("game-1")
	other := manager.GetOrCreateHub("game-2")
	inGame := NewClient(watched, "alice")
	elsewhere := NewClient(other, "carol")
	watched.Register(inGame)
	other.Register(elsewhere)

	finished := model.Event{
		Type:    model.EventGameFinished,
		GameID:  "game-1",
		Payload: model.GameFinishedPayload{WinnerID: "alice", EndReason: "Four consecutive passes"},
	}
	if err := broadcaster.Notify(context.Background(), finished); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	select {
	case msg := <-inGame.send:
		if !strings.Contains(string(msg), "event: game_finished") {
			t.Errorf("unexpected message: %s", msg)
		}
		if !strings.Contains(string(msg), `"winner_id":"alice"`) {
			t.Errorf("message missing winner: %s", msg)
		}
	default:
		t.Error("watcher did not receive message")
	}

	select {
	case msg := <-elsewhere.send:
		t.Errorf("watcher of another game received %s", msg)
	default:
	}
}
