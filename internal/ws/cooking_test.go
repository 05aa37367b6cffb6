package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/testutil"
)

// fakeItems serves items from a map.
type fakeItems map[string]models.MenuItem

func (f fakeItems) GetItem(_ context.Context, id string) (models.MenuItem, error) {
	if item, ok := f[id]; ok {
		return item, nil
	}
	return models.MenuItem{}, repository.NewNotFoundError("item " + id + " not found")
}

// setupTestCookingHandler creates a CookingHandler with a running Hub and
// millisecond timer minutes.
func setupTestCookingHandler() *CookingHandler {
	hub := NewHub()
	go hub.Run()
	dish := testutil.TestDish("52772", "Teriyaki Chicken Casserole")
	ch := NewCookingHandler(hub, fakeItems{dish.ID: dish}, nil)
	ch.TimerUnit = time.Millisecond
	return ch
}

// newTestClient creates a Client with a buffered Send channel and no real
// websocket.Conn. This works because the handler methods write to client.Send
// rather than Conn directly.
func newTestClient(hub *Hub, roomID, clientID string) *Client {
	return &Client{
		Hub:      hub,
		Send:     make(chan []byte, 256),
		RoomID:   roomID,
		ClientID: clientID,
	}
}

// joinTestClient joins a new client to the dish's "s1" session and drains
// the connected and initial state messages.
func joinTestClient(t *testing.T, ch *CookingHandler, clientID string) *Client {
	t.Helper()
	dish := testutil.TestDish("52772", "Teriyaki Chicken Casserole")
	client := newTestClient(ch.Hub, cookRoomID(dish.ID, "s1"), clientID)
	ch.join(client, dish, "s1")
	if msg := readMessage(t, client); msg.Type != MsgTypeConnected {
		t.Fatalf("first message = %q, want %q", msg.Type, MsgTypeConnected)
	}
	if msg := readMessage(t, client); msg.Type != MsgTypeCookState {
		t.Fatalf("second message = %q, want %q", msg.Type, MsgTypeCookState)
	}
	return client
}

// readMessage reads a single WSMessage from the client's Send channel with a
// short timeout to prevent tests from hanging.
func readMessage(t *testing.T, client *Client) WSMessage {
	t.Helper()
	select {
	case data := <-client.Send:
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("failed to unmarshal message from Send channel: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message on Send channel")
		return WSMessage{}
	}
}

func readState(t *testing.T, client *Client) CookStatePayload {
	t.Helper()
	msg := readMessage(t, client)
	if msg.Type != MsgTypeCookState {
		t.Fatalf("expected type %q, got %q", MsgTypeCookState, msg.Type)
	}
	var state CookStatePayload
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("failed to unmarshal CookStatePayload: %v", err)
	}
	return state
}

func readError(t *testing.T, client *Client) string {
	t.Helper()
	msg := readMessage(t, client)
	if msg.Type != MsgTypeError {
		t.Fatalf("expected error type, got %q", msg.Type)
	}
	var errPayload ErrorPayload
	if err := json.Unmarshal(msg.Payload, &errPayload); err != nil {
		t.Fatalf("failed to unmarshal ErrorPayload: %v", err)
	}
	return errPayload.Message
}

// assertNoMoreMessages verifies nothing else is pending on the Send channel.
func assertNoMoreMessages(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected extra message on Send channel: %s", string(data))
	case <-time.After(50 * time.Millisecond):
	}
}

func send(ch *CookingHandler, client *Client, msgType string, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	data, _ := json.Marshal(WSMessage{Type: msgType, Payload: raw})
	ch.handleMessage(client, data)
}

func intPtr(v int) *int { return &v }

// --- join ---

func TestJoin_SendsConnectedAndInitialState(t *testing.T) {
	ch := setupTestCookingHandler()
	dish := testutil.TestDish("52772", "Teriyaki Chicken Casserole")
	client := newTestClient(ch.Hub, cookRoomID(dish.ID, "s1"), "client-1")

	ch.join(client, dish, "s1")

	msg := readMessage(t, client)
	if msg.Type != MsgTypeConnected {
		t.Fatalf("expected type %q, got %q", MsgTypeConnected, msg.Type)
	}
	var connected ConnectedPayload
	json.Unmarshal(msg.Payload, &connected)
	if connected.ItemID != dish.ID || connected.Session != "s1" || connected.ClientID != "client-1" {
		t.Errorf("unexpected connected payload: %+v", connected)
	}

	state := readState(t, client)
	if state.ItemID != dish.ID || state.CurrentStep != 0 || state.TotalSteps != 3 {
		t.Errorf("unexpected initial state: %+v", state)
	}
	if state.Completed == nil || len(state.Completed) != 0 || state.TimerEndsAt != nil {
		t.Errorf("unexpected initial progress: %+v", state)
	}
	assertNoMoreMessages(t, client)
}

// --- step navigation ---

func TestStepNextAndPrev_ClampToRange(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	want := []int{1, 2, 2}
	for i, w := range want {
		send(ch, client, MsgTypeStepNext, nil)
		if state := readState(t, client); state.CurrentStep != w {
			t.Errorf("step_next #%d: current_step = %d, want %d", i+1, state.CurrentStep, w)
		}
	}

	want = []int{1, 0, 0}
	for i, w := range want {
		send(ch, client, MsgTypeStepPrev, nil)
		if state := readState(t, client); state.CurrentStep != w {
			t.Errorf("step_prev #%d: current_step = %d, want %d", i+1, state.CurrentStep, w)
		}
	}
}

func TestStepGoto(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	send(ch, client, MsgTypeStepGoto, StepIndexPayload{Index: intPtr(2)})
	if state := readState(t, client); state.CurrentStep != 2 {
		t.Errorf("current_step = %d, want 2", state.CurrentStep)
	}

	send(ch, client, MsgTypeStepGoto, StepIndexPayload{Index: intPtr(99)})
	if state := readState(t, client); state.CurrentStep != 2 {
		t.Errorf("current_step = %d, want clamp to 2", state.CurrentStep)
	}

	send(ch, client, MsgTypeStepGoto, StepIndexPayload{Index: intPtr(-4)})
	if state := readState(t, client); state.CurrentStep != 0 {
		t.Errorf("current_step = %d, want clamp to 0", state.CurrentStep)
	}

	send(ch, client, MsgTypeStepGoto, map[string]string{})
	if msg := readError(t, client); msg != "index is required" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestStepToggle(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	send(ch, client, MsgTypeStepToggle, StepIndexPayload{Index: intPtr(2)})
	send(ch, client, MsgTypeStepToggle, StepIndexPayload{Index: intPtr(0)})
	readState(t, client)
	state := readState(t, client)
	if len(state.Completed) != 2 || state.Completed[0] != 0 || state.Completed[1] != 2 {
		t.Errorf("completed = %v, want [0 2]", state.Completed)
	}

	send(ch, client, MsgTypeStepToggle, StepIndexPayload{Index: intPtr(2)})
	if state := readState(t, client); len(state.Completed) != 1 || state.Completed[0] != 0 {
		t.Errorf("completed = %v, want [0]", state.Completed)
	}

	send(ch, client, MsgTypeStepToggle, StepIndexPayload{Index: intPtr(3)})
	if msg := readError(t, client); msg != "step index out of range" {
		t.Errorf("unexpected error message: %q", msg)
	}
	assertNoMoreMessages(t, client)
}

func TestStateIsSharedAcrossRoom(t *testing.T) {
	ch := setupTestCookingHandler()
	first := joinTestClient(t, ch, "client-1")
	second := joinTestClient(t, ch, "client-2")

	send(ch, first, MsgTypeStepNext, nil)

	for _, client := range []*Client{first, second} {
		if state := readState(t, client); state.CurrentStep != 1 {
			t.Errorf("%s: current_step = %d, want 1", client.ClientID, state.CurrentStep)
		}
	}

	// A third client joining later sees the current step.
	third := newTestClient(ch.Hub, first.RoomID, "client-3")
	ch.join(third, testutil.TestDish("52772", "Teriyaki Chicken Casserole"), "s1")
	readMessage(t, third)
	if state := readState(t, third); state.CurrentStep != 1 {
		t.Errorf("late joiner current_step = %d, want 1", state.CurrentStep)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ch := setupTestCookingHandler()
	dish := testutil.TestDish("52772", "Teriyaki Chicken Casserole")
	a := joinTestClient(t, ch, "client-1")
	b := newTestClient(ch.Hub, cookRoomID(dish.ID, "s2"), "client-2")
	ch.join(b, dish, "s2")
	readMessage(t, b)
	readState(t, b)

	send(ch, a, MsgTypeStepNext, nil)
	readState(t, a)
	assertNoMoreMessages(t, b)
}

// --- timers ---

func TestTimerStart_FiresTimerDone(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	send(ch, client, MsgTypeTimerStart, TimerStartPayload{Minutes: 20})
	if state := readState(t, client); state.TimerEndsAt == nil {
		t.Fatal("timer_ends_at should be set after timer_start")
	}

	msg := readMessage(t, client)
	if msg.Type != MsgTypeTimerDone {
		t.Fatalf("expected type %q, got %q", MsgTypeTimerDone, msg.Type)
	}
	var done TimerDonePayload
	json.Unmarshal(msg.Payload, &done)
	if done.ItemID != "themealdb-52772" {
		t.Errorf("timer_done item_id = %q", done.ItemID)
	}
	if state := readState(t, client); state.TimerEndsAt != nil {
		t.Errorf("timer_ends_at = %v, want nil after timer_done", state.TimerEndsAt)
	}
}

func TestTimerCancel_SuppressesTimerDone(t *testing.T) {
	ch := setupTestCookingHandler()
	ch.TimerUnit = 5 * time.Millisecond
	client := joinTestClient(t, ch, "client-1")

	send(ch, client, MsgTypeTimerStart, TimerStartPayload{Minutes: 10})
	readState(t, client)
	send(ch, client, MsgTypeTimerCancel, nil)
	if state := readState(t, client); state.TimerEndsAt != nil {
		t.Errorf("timer_ends_at = %v, want nil after cancel", state.TimerEndsAt)
	}

	select {
	case data := <-client.Send:
		t.Fatalf("unexpected message after cancel: %s", string(data))
	case <-time.After(150 * time.Millisecond):
	}
}

func TestTimerStart_InvalidMinutes(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	for _, minutes := range []float64{0, -5, 2000} {
		send(ch, client, MsgTypeTimerStart, TimerStartPayload{Minutes: minutes})
		if msg := readError(t, client); msg != "minutes must be between 0 and 1440" {
			t.Errorf("minutes=%v: unexpected error message: %q", minutes, msg)
		}
	}
	assertNoMoreMessages(t, client)
}

// --- protocol errors ---

func TestHandleMessage_InvalidJSON(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	ch.handleMessage(client, []byte("{not json"))
	if msg := readError(t, client); msg != "invalid message format" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestHandleMessage_UnknownType(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")

	send(ch, client, "chat_message", nil)
	if msg := readError(t, client); msg != "unknown message type: chat_message" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestHandleMessage_NoSession(t *testing.T) {
	ch := setupTestCookingHandler()
	client := newTestClient(ch.Hub, "cook:missing:s1", "client-1")

	send(ch, client, MsgTypeStepNext, nil)
	if msg := readError(t, client); msg != "no active cook session" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

// --- session lifetime ---

func TestSessionReleasedWhenRoomEmpties(t *testing.T) {
	ch := setupTestCookingHandler()
	client := joinTestClient(t, ch, "client-1")
	send(ch, client, MsgTypeTimerStart, TimerStartPayload{Minutes: 1440})
	readState(t, client)

	ch.Hub.Unregister <- client

	deadline := time.Now().Add(2 * time.Second)
	for ch.session(client.RoomID) != nil {
		if time.Now().After(deadline) {
			t.Fatal("session was not released after the room emptied")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOriginAllowed(t *testing.T) {
	allowed := map[string]bool{"https://recipes.example.com": true}

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://recipes.example.com", true},
		{"http://localhost:3000", true},
		{"http://localhost", true},
		{"https://localhost.evil.com", false},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		if got := originAllowed(tt.origin, allowed); got != tt.want {
			t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
