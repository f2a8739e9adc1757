package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"gojobot/internal/domain"
)

func TestScanFeedBroadcastsAndShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewScanFeed(ctx, zap.NewNop())

	c := &feedClient{send: make(chan []byte, clientSendBuf)}
	f.register <- c

	// publish until the hub has picked up the registration
	var msg []byte
	deadline := time.After(2 * time.Second)
receive:
	for {
		f.Publish(domain.ScanEvent{ID: "ev-1", Code: "012345678905", Source: domain.ScanSourceText})
		select {
		case msg = <-c.send:
			break receive
		case <-deadline:
			t.Fatal("registered client never received a broadcast")
		case <-time.After(10 * time.Millisecond):
		}
	}
	assert.Contains(t, string(msg), `"012345678905"`)

	// canceling the context must disconnect the client
	cancel()
	deadline = time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-c.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("client send channel was not closed on shutdown")
		}
	}
}

func TestScanFeedPublishNeverBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewScanFeed(ctx, zap.NewNop())

	// with the hub stopped the broadcast buffer eventually fills; Publish
	// must drop instead of blocking the message handlers
	done := make(chan struct{})
	go func() {
		for i := 0; i < feedBroadcastBuf*2; i++ {
			f.Publish(domain.ScanEvent{ID: "ev", Code: "12345678"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on an overloaded feed")
	}
}
