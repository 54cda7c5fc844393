// Package sink adapts transport connections to the dispatcher's Conn
// boundary. Outbound frames go through a buffered channel so one slow
// client never stalls a broadcast.
package sink

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"openmandi/contract"
	"openmandi/domain"
	"openmandi/domain/event"
	"openmandi/observability"
)

// WsConn is one websocket participant. Reads happen on the dispatcher's
// goroutine; writes are funneled through the outbound buffer and drained by
// WritePump.
type WsConn struct {
	ws              *websocket.Conn
	log             *slog.Logger
	monitor         *observability.Monitor
	outbound        chan event.Outbound
	deliveryTimeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

var _ contract.Conn = (*WsConn)(nil)

func NewWsConn(ws *websocket.Conn, log *slog.Logger,
	monitor *observability.Monitor, bufferSize int,
	deliveryTimeout time.Duration) *WsConn {
	return &WsConn{
		ws:              ws,
		log:             log,
		monitor:         monitor,
		outbound:        make(chan event.Outbound, bufferSize),
		deliveryTimeout: deliveryTimeout,
		done:            make(chan struct{}),
	}
}

// ReadEvent blocks until the next inbound frame arrives.
func (c *WsConn) ReadEvent() (event.Inbound, error) {
	var raw []byte
	if err := websocket.Message.Receive(c.ws, &raw); err != nil {
		return nil, err
	}
	return event.ParseInbound(raw)
}

// WriteEvent enqueues a frame for the writer pump. A full buffer that does
// not drain within the delivery timeout counts as a failed delivery, which
// gets this participant pruned from its session.
func (c *WsConn) WriteEvent(e event.Outbound) error {
	select {
	case c.outbound <- e:
		return nil
	case <-c.done:
		return fmt.Errorf("connection closed")
	case <-time.After(c.deliveryTimeout):
		c.monitor.IncrDeliveryFailures()
		return fmt.Errorf("outbound buffer full after %s", c.deliveryTimeout)
	}
}

// Deliver implements the session broadcast target.
func (c *WsConn) Deliver(m domain.Message) error {
	return c.WriteEvent(event.NewMessageEvent(m))
}

// WritePump drains the outbound buffer onto the socket. It returns when the
// socket breaks or the connection is closed; pending frames are dropped at
// that point.
func (c *WsConn) WritePump() {
	for {
		select {
		case <-c.done:
			return
		case e := <-c.outbound:
			payload, err := event.EncodeOutbound(e)
			if err != nil {
				c.log.Error("failed to encode outbound event", "error", err)
				continue
			}
			if err := websocket.Message.Send(c.ws, string(payload)); err != nil {
				c.monitor.IncrDeliveryFailures()
				c.log.Debug("socket write failed, stopping pump", "error", err)
				c.Close()
				return
			}
		}
	}
}

// Close is idempotent and unblocks both the pump and pending writers.
func (c *WsConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}
