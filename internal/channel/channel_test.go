package channel

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playsv/playsv/internal/shared"
)

var upgrader = websocket.Upgrader{}

// channelServer is a websocket test server that counts connections and
// exposes the frames it receives.
type channelServer struct {
	*httptest.Server
	dials    atomic.Int32
	received chan []byte
	inbound  chan []byte // frames to push to the client
}

func newChannelServer(t *testing.T, closeAfterDial bool) *channelServer {
	t.Helper()
	cs := &channelServer{
		received: make(chan []byte, 16),
		inbound:  make(chan []byte, 16),
	}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cs.dials.Add(1)
		if closeAfterDial {
			conn.Close()
			return
		}

		go func() {
			for frame := range cs.inbound {
				if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					return
				}
			}
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			cs.received <- data
		}
	}))
	t.Cleanup(cs.Close)
	return cs
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestEndpointURL(t *testing.T) {
	t.Run("upgrades http to ws", func(t *testing.T) {
		got, err := EndpointURL("http://media.local:8080", "/ws")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "ws://media.local:8080/ws" {
			t.Errorf("expected ws URL, got %s", got)
		}
	})

	t.Run("upgrades https to wss", func(t *testing.T) {
		got, err := EndpointURL("https://media.local", "/ws")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "wss://media.local/ws" {
			t.Errorf("expected wss URL, got %s", got)
		}
	})

	t.Run("rejects unsupported schemes", func(t *testing.T) {
		if _, err := EndpointURL("ftp://media.local", "/ws"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestClient(t *testing.T) {
	t.Run("Connect", func(t *testing.T) {
		t.Run("moves to connected and notifies", func(t *testing.T) {
			server := newChannelServer(t, false)

			states := make(chan ConnState, 8)
			client, err := NewClient(ClientOpts{
				BaseURL: server.URL,
				OnState: func(state ConnState) { states <- state },
			})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()

			client.Connect()

			if client.State() != StateConnected {
				t.Errorf("expected connected state, got %s", client.State())
			}
			select {
			case state := <-states:
				if state != StateConnected {
					t.Errorf("expected connected notification, got %s", state)
				}
			case <-time.After(time.Second):
				t.Error("expected a state notification")
			}
		})

		t.Run("moves to error when the dial fails", func(t *testing.T) {
			client, err := NewClient(ClientOpts{
				BaseURL:        "http://127.0.0.1:1", // nothing listens here
				ReconnectDelay: time.Hour,            // keep the retry out of this test
			})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()

			client.Connect()

			if client.State() != StateErrored {
				t.Errorf("expected errored state, got %s", client.State())
			}
		})
	})

	t.Run("Send", func(t *testing.T) {
		t.Run("drops commands while disconnected", func(t *testing.T) {
			client, err := NewClient(ClientOpts{BaseURL: "http://media.local:8080"})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			if err := client.Send("play", nil); !errors.Is(err, shared.ErrNotConnected) {
				t.Errorf("expected ErrNotConnected, got %v", err)
			}
		})

		t.Run("wraps commands in the mpv envelope", func(t *testing.T) {
			server := newChannelServer(t, false)

			client, err := NewClient(ClientOpts{BaseURL: server.URL})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()
			client.Connect()

			if err := client.Send("seek", map[string]any{"seconds": 30}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			select {
			case frame := <-server.received:
				var envelope Command
				if err := json.Unmarshal(frame, &envelope); err != nil {
					t.Fatalf("failed to decode frame: %v", err)
				}
				if envelope.Type != "mpv_command" {
					t.Errorf("expected mpv_command type, got %q", envelope.Type)
				}
				if envelope.Command != "seek" {
					t.Errorf("expected seek command, got %q", envelope.Command)
				}
				if envelope.Args["seconds"] != float64(30) {
					t.Errorf("expected seconds arg, got %v", envelope.Args)
				}
			case <-time.After(time.Second):
				t.Error("expected the server to receive the command")
			}
		})

		t.Run("serializes concurrent senders", func(t *testing.T) {
			server := newChannelServer(t, false)
			server.received = make(chan []byte, 1024)

			client, err := NewClient(ClientOpts{BaseURL: server.URL})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()
			client.Connect()

			const senders, perSender = 4, 50
			var wg sync.WaitGroup
			for i := 0; i < senders; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < perSender; j++ {
						if err := client.Send("play", map[string]any{"video": j}); err != nil {
							t.Errorf("expected no error, got %v", err)
							return
						}
					}
				}()
			}
			wg.Wait()

			if !waitFor(t, 2*time.Second, func() bool { return len(server.received) == senders*perSender }) {
				t.Errorf("expected %d frames, got %d", senders*perSender, len(server.received))
			}
			for len(server.received) > 0 {
				var envelope Command
				if err := json.Unmarshal(<-server.received, &envelope); err != nil {
					t.Fatalf("received a corrupt frame: %v", err)
				}
			}
		})

		t.Run("sends an empty args object rather than null", func(t *testing.T) {
			server := newChannelServer(t, false)

			client, err := NewClient(ClientOpts{BaseURL: server.URL})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()
			client.Connect()

			if err := client.Send("pause", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			select {
			case frame := <-server.received:
				if strings.Contains(string(frame), `"args":null`) {
					t.Errorf("expected empty args object, got %s", frame)
				}
			case <-time.After(time.Second):
				t.Error("expected the server to receive the command")
			}
		})
	})

	t.Run("dispatch", func(t *testing.T) {
		t.Run("routes messages to their registered handler", func(t *testing.T) {
			server := newChannelServer(t, false)

			client, err := NewClient(ClientOpts{BaseURL: server.URL})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()

			got := make(chan Message, 1)
			client.Handle(MsgVideosUpdated, func(msg Message) { got <- msg })
			client.Connect()

			server.inbound <- []byte(`{"type": "videos_updated", "payload": {"count": 2}}`)

			select {
			case msg := <-got:
				if msg.Type != MsgVideosUpdated {
					t.Errorf("expected videos_updated, got %q", msg.Type)
				}
			case <-time.After(time.Second):
				t.Error("expected the handler to run")
			}
		})

		t.Run("drops unknown types and bad frames without dying", func(t *testing.T) {
			server := newChannelServer(t, false)

			client, err := NewClient(ClientOpts{BaseURL: server.URL})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()

			got := make(chan Message, 1)
			client.Handle(MsgStatus, func(msg Message) { got <- msg })
			client.Connect()

			server.inbound <- []byte(`not json at all`)
			server.inbound <- []byte(`{"type": "mystery"}`)
			server.inbound <- []byte(`{"type": "status", "payload": {}}`)

			select {
			case msg := <-got:
				if msg.Type != MsgStatus {
					t.Errorf("expected the status message to survive, got %q", msg.Type)
				}
			case <-time.After(time.Second):
				t.Error("expected the read loop to survive bad frames")
			}
		})
	})

	t.Run("reconnect", func(t *testing.T) {
		t.Run("redials after every server-side close", func(t *testing.T) {
			server := newChannelServer(t, true)

			client, err := NewClient(ClientOpts{
				BaseURL:        server.URL,
				ReconnectDelay: 10 * time.Millisecond,
			})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			defer client.Close()

			client.Connect()

			if !waitFor(t, 2*time.Second, func() bool { return server.dials.Load() >= 3 }) {
				t.Errorf("expected repeated reconnects, got %d dials", server.dials.Load())
			}
		})

		t.Run("close stops the reconnect loop", func(t *testing.T) {
			server := newChannelServer(t, true)

			client, err := NewClient(ClientOpts{
				BaseURL:        server.URL,
				ReconnectDelay: 10 * time.Millisecond,
			})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			client.Connect()
			client.Close()

			settled := server.dials.Load()
			time.Sleep(100 * time.Millisecond)
			if server.dials.Load() > settled+1 {
				t.Errorf("expected dials to stop after close, got %d then %d", settled, server.dials.Load())
			}
		})
	})
}
