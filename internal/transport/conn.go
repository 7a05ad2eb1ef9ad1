// Package transport provides a duplex text-frame connection over a
// websocket: serialized reads/writes, ping/pong liveness, and graceful
// close, generalized from the teacher's single-purpose publish-only
// client into a full on_open/on_message/on_close/send collaborator.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait        = 1 * time.Second
	maxMessageSize   = 1 << 20
	pingResolution   = 5 * time.Second
	pongWait         = pingResolution * 4
	readDeadline     = time.Second
	writeDeadline    = time.Second
	closeGracePeriod = 5 * time.Second
)

var upgrader = websocket.Upgrader{}

// ErrSockCongestion indicates too many waiters on the socket for a
// given op.
var ErrSockCongestion = errors.New("transport: operation failed due to congestion")

// ErrPongDeadlineExceeded indicates the peer stopped answering pings.
var ErrPongDeadlineExceeded = errors.New("transport: peer disconnected, pong deadline exceeded")

// Handler receives the lifecycle callbacks for a single connection.
// OnMessage is invoked once per inbound text frame, serially, in
// arrival order. OnClose is invoked exactly once when the connection's
// Run loop exits, whatever the cause.
type Handler interface {
	OnOpen(conn *Conn)
	OnMessage(conn *Conn, text string)
	OnClose(conn *Conn, reason string)
}

// Conn is one upgraded, duplex websocket connection.
type Conn struct {
	id       string
	ws       *websocket.Conn
	readSem  chan struct{}
	writeSem chan struct{}
}

// Upgrade promotes an HTTP request to a websocket-backed Conn.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: upgrade: %w", err)
	}

	ws.SetReadLimit(maxMessageSize)

	return &Conn{
		id:       uuid.NewString(),
		ws:       ws,
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
	}, nil
}

// ID is this connection's stable identifier for the lifetime of the
// process.
func (c *Conn) ID() string {
	return c.id
}

// Send serializes one text frame to the peer.
func (c *Conn) Send(text string) error {
	return c.write(func(ws *websocket.Conn) error {
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("transport: set write deadline: %w", err)
		}
		return ws.WriteMessage(websocket.TextMessage, []byte(text))
	})
}

// Run drives the connection until the context is cancelled, the peer
// disconnects, or an unrecoverable transport error occurs, invoking
// handler's callbacks along the way. Run blocks; callers should invoke
// it in its own goroutine per connection.
func (c *Conn) Run(ctx context.Context, handler Handler) {
	handler.OnOpen(c)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return c.readPump(groupCtx, handler) })
	group.Go(func() error { return c.pingPump(groupCtx) })

	err := group.Wait()
	reason := ""
	if err != nil {
		reason = err.Error()
	}

	c.close()
	handler.OnClose(c, reason)
}

func (c *Conn) readPump(ctx context.Context, handler Handler) error {
	for {
		var text string
		err := c.read(func(ws *websocket.Conn) error {
			_, data, readErr := ws.ReadMessage()
			if readErr != nil {
				return readErr
			}
			text = string(data)
			return nil
		})
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
			handler.OnMessage(c, text)
		}
	}
}

func (c *Conn) pingPump(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	c.ws.SetPongHandler(func(string) error {
		pong <- struct{}{}
		return nil
	})

	pinger := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := c.write(func(ws *websocket.Conn) error {
				return ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			}); err != nil {
				if isUnexpected(err) {
					return fmt.Errorf("transport: ping: %w", err)
				}
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (c *Conn) read(fn func(*websocket.Conn) error) error {
	select {
	case c.readSem <- struct{}{}:
		defer func() { <-c.readSem }()
		return fn(c.ws)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}

func (c *Conn) write(fn func(*websocket.Conn) error) error {
	select {
	case c.writeSem <- struct{}{}:
		defer func() { <-c.writeSem }()
		return fn(c.ws)
	case <-time.After(writeDeadline):
		return ErrSockCongestion
	}
}

func (c *Conn) close() {
	_ = c.write(func(ws *websocket.Conn) error {
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		return ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
	time.Sleep(closeGracePeriod)
	_ = c.ws.Close()
}

func isUnexpected(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
