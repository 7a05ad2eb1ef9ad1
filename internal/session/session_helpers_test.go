package session_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fakeSender struct {
	sent chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan string, 16)}
}

func (s *fakeSender) Send(text string) error {
	s.sent <- text
	return nil
}

// waitForTag drains sent messages until one carries the given
// top-level tag, or fails the test after timeout.
func (s *fakeSender) waitForTag(t *testing.T, tag string, timeout time.Duration) string {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg := <-s.sent:
			var env map[string]json.RawMessage
			if err := json.Unmarshal([]byte(msg), &env); err != nil {
				continue
			}
			if _, ok := env[tag]; ok {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for tag %q", tag)
			return ""
		}
	}
}
