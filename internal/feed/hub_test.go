package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saitamau-maximum/standings/internal/board"
	"github.com/saitamau-maximum/standings/internal/feed"
	"github.com/saitamau-maximum/standings/internal/rank"
)

// --- helpers ----------------------------------------------------------------

func newBoard(published bool) *board.Board {
	b := board.New()
	if published {
		b.Publish([]rank.Ranked{
			{Rank: 1, Name: "Alpha", Score: 100},
			{Rank: 2, Name: "Maximum", Score: 90, Tracked: true},
		}, "rendered")
	}
	return b
}

// startHub starts a test HTTP server with the hub as its handler.
// Returns the ws:// URL and the hub.
func startHub(t *testing.T, b *board.Board) (string, *feed.Hub) {
	t.Helper()

	hub := feed.New(b)
	ctx, cancel := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return "ws" + strings.TrimPrefix(srv.URL, "http"), hub
}

// dial connects a WebSocket client to wsURL and returns the connection.
func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readMessage reads one text message from conn with a short deadline.
func readMessage(t *testing.T, conn *websocket.Conn) feed.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var msg feed.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	return msg
}

// waitForClients polls until the hub reports n connected clients.
func waitForClients(t *testing.T, hub *feed.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub.Count() = %d, want %d", hub.Count(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// --- behaviour --------------------------------------------------------------

func TestHub_SendsSnapshotOnConnect(t *testing.T) {
	wsURL, _ := startHub(t, newBoard(true))
	conn := dial(t, wsURL)

	msg := readMessage(t, conn)
	if msg.Event != "standings" {
		t.Errorf("event = %q, want standings", msg.Event)
	}
	if len(msg.Data.Rows) != 2 || msg.Data.Rows[1].Name != "Maximum" {
		t.Errorf("rows = %+v", msg.Data.Rows)
	}
}

func TestHub_NotifyBroadcastsToAllClients(t *testing.T) {
	b := newBoard(true)
	wsURL, hub := startHub(t, b)

	c1 := dial(t, wsURL)
	c2 := dial(t, wsURL)
	waitForClients(t, hub, 2)

	// Drain the on-connect snapshots.
	readMessage(t, c1)
	readMessage(t, c2)

	b.Publish([]rank.Ranked{{Rank: 1, Name: "Maximum", Score: 500, Tracked: true}}, "v2")
	hub.Notify()

	for _, conn := range []*websocket.Conn{c1, c2} {
		msg := readMessage(t, conn)
		if msg.Data.Rendered != "v2" {
			t.Errorf("rendered = %q, want v2", msg.Data.Rendered)
		}
	}
}

func TestHub_NoSnapshotYet_NothingOnConnect(t *testing.T) {
	wsURL, hub := startHub(t, newBoard(false))
	conn := dial(t, wsURL)
	waitForClients(t, hub, 1)

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected no message before the first publish")
	}
}

func TestHub_CountTracksDisconnects(t *testing.T) {
	wsURL, hub := startHub(t, newBoard(true))

	conn := dial(t, wsURL)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

// Broadcasts racing client disconnects must not panic: a client snapshotted
// by Notify may be unregistered before the send happens.
func TestHub_NotifyDuringClientChurn(t *testing.T) {
	b := newBoard(true)
	wsURL, hub := startHub(t, b)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					hub.Notify()
				}
			}
		}()
	}

	// Connect and immediately drop clients while the broadcasts hammer.
	for i := 0; i < 50; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("dial %s: %v", wsURL, err)
		}
		conn.Close()
	}

	close(stop)
	wg.Wait()
	waitForClients(t, hub, 0)
}
