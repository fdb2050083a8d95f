package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/events"

	"github.com/gorilla/websocket"
)

const (
	feedWriteTimeout = 5 * time.Second
	feedSendBuffer   = 16
)

// OrderFeed pushes placed orders to connected admin websocket clients.
// It implements events.Publisher. Each client has its own writer goroutine
// and send buffer; publishing never writes to a socket.
type OrderFeed struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewOrderFeed(logger *log.Logger) *OrderFeed {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &OrderFeed{
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		logger:   logger,
		clients:  make(map[*feedClient]struct{}),
	}
}

// Serve upgrades the request and holds the connection until the client leaves.
func (f *OrderFeed) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Printf("order feed: upgrade error=%v", err)
		return
	}
	client := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}
	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()

	go f.write(client)
	defer f.drop(client)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *OrderFeed) write(client *feedClient) {
	defer client.conn.Close()
	for data := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.logger.Printf("order feed: write error=%v", err)
			f.drop(client)
			return
		}
	}
	_ = client.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

// drop unregisters the client once; closing send stops its writer.
func (f *OrderFeed) drop(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remove(client)
}

// remove must be called with f.mu held.
func (f *OrderFeed) remove(client *feedClient) {
	if _, ok := f.clients[client]; !ok {
		return
	}
	delete(f.clients, client)
	close(client.send)
}

func (f *OrderFeed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *OrderFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		f.remove(client)
	}
}

// PublishOrderPlaced queues the event for every client. Clients whose
// buffer is full are disconnected instead of waited on.
func (f *OrderFeed) PublishOrderPlaced(_ context.Context, order domain.Order) error {
	data, err := json.Marshal(events.NewOrderPlaced(order))
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- data:
		default:
			f.logger.Printf("order feed: client too slow, dropping")
			f.remove(client)
		}
	}
	return nil
}
