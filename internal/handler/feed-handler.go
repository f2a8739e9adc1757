package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gojobot/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	feedBroadcastBuf = 1024
	feedRegisterBuf  = 64
	clientSendBuf    = 64
)

var timeNow = time.Now

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the feed endpoint is admin-token gated, origin is not the control
		return true
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ScanFeed broadcasts scan events to connected admin-panel clients over
// websocket. One owner goroutine, non-blocking fan-out: a slow client is
// dropped instead of slowing everyone down.
type ScanFeed struct {
	logger     *zap.Logger
	clients    map[*feedClient]struct{}
	register   chan *feedClient
	unregister chan *feedClient
	broadcast  chan []byte
}

// NewScanFeed starts the hub goroutine; it runs until ctx is canceled,
// then disconnects every client.
func NewScanFeed(ctx context.Context, logger *zap.Logger) *ScanFeed {
	f := &ScanFeed{
		logger:     logger,
		clients:    make(map[*feedClient]struct{}),
		register:   make(chan *feedClient, feedRegisterBuf),
		unregister: make(chan *feedClient, feedRegisterBuf),
		broadcast:  make(chan []byte, feedBroadcastBuf),
	}
	go f.run(ctx)
	return f
}

func (f *ScanFeed) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range f.clients {
				close(c.send)
				delete(f.clients, c)
			}
			return

		case c := <-f.register:
			f.clients[c] = struct{}{}

		case c := <-f.unregister:
			if _, ok := f.clients[c]; ok {
				delete(f.clients, c)
				close(c.send)
			}

		case msg := <-f.broadcast:
			for c := range f.clients {
				select {
				case c.send <- msg:
				default:
					// slow/dead client
					close(c.send)
					delete(f.clients, c)
				}
			}
		}
	}
}

// Publish queues a scan event for broadcast. Never blocks the message
// handlers: if the feed is overloaded the event is dropped.
func (f *ScanFeed) Publish(ev domain.ScanEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		f.logger.Error("failed to encode scan event", zap.Error(err))
		return
	}
	select {
	case f.broadcast <- data:
	default:
		f.logger.Warn("scan feed overloaded, dropping event", zap.String("id", ev.ID))
	}
}

// ServeWS upgrades the request and attaches the client to the feed.
func (f *ScanFeed) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Error("ws upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, clientSendBuf),
	}
	f.register <- client

	go f.writePump(client)
	go f.readPump(client)
}

// readPump only services pings and notices disconnects; feed clients are
// consumers, inbound data is discarded.
func (f *ScanFeed) readPump(c *feedClient) {
	defer func() {
		f.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *ScanFeed) writePump(c *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
