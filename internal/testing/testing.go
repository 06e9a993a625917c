// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
)

// MockSender is a test double for [player.Sender] that records every sent
// command.
type MockSender struct {
	mu       sync.Mutex
	Err      error
	Commands []SentCommand
}

// SentCommand captures one Send call.
type SentCommand struct {
	Command string
	Args    map[string]any
}

func (m *MockSender) Send(command string, args map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Commands = append(m.Commands, SentCommand{Command: command, Args: args})
	return nil
}

func (m *MockSender) Sent() []SentCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentCommand(nil), m.Commands...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// CountingRoundTripper wraps a transport and counts the calls that reach it.
type CountingRoundTripper struct {
	mu    sync.Mutex
	base  http.RoundTripper
	Calls int
}

func NewCountingRoundTripper(base http.RoundTripper) *CountingRoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &CountingRoundTripper{base: base}
}

func (c *CountingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.Calls++
	c.mu.Unlock()
	return c.base.RoundTrip(req)
}

func (c *CountingRoundTripper) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
