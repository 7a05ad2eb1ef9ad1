package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/cuboktahedron/tetsimu2-hub/internal/transport"
)

type recordingHandler struct {
	opened   chan *transport.Conn
	messages chan string
	closed   chan string
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		opened:   make(chan *transport.Conn, 1),
		messages: make(chan string, 8),
		closed:   make(chan string, 1),
	}
}

func (h *recordingHandler) OnOpen(conn *transport.Conn)            { h.opened <- conn }
func (h *recordingHandler) OnMessage(conn *transport.Conn, s string) { h.messages <- s }
func (h *recordingHandler) OnClose(conn *transport.Conn, reason string) { h.closed <- reason }

func TestConnReceivesAndSendsMessages(t *testing.T) {
	Convey("Given a server that upgrades every request to a transport.Conn", t, func() {
		handler := newRecordingHandler()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := transport.Upgrade(w, r)
			if err != nil {
				t.Fatalf("upgrade: %v", err)
			}
			go conn.Run(ctx, handler)
		}))
		defer srv.Close()

		wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
		client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		So(err, ShouldBeNil)
		defer client.Close()

		Convey("a message sent by the peer reaches OnMessage", func() {
			So(client.WriteMessage(websocket.TextMessage, []byte("hello")), ShouldBeNil)

			select {
			case msg := <-handler.messages:
				So(msg, ShouldEqual, "hello")
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for OnMessage")
			}
		})

		Convey("Send delivers a frame to the peer", func() {
			var conn *transport.Conn
			select {
			case conn = <-handler.opened:
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for OnOpen")
			}

			So(conn.Send("world"), ShouldBeNil)

			_, data, err := client.ReadMessage()
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "world")
		})
	})
}
