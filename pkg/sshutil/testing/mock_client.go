// Package testing provides a mock SSH client for exercising code that
// depends on sshutil.SSHClient without a live connection.
package testing

import (
	"errors"
	"sync"
	"time"
)

// CommandResponse defines a canned response for a specific command.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
}

// MockClient simulates an SSH connection for testing. Responses are keyed
// by exact command string. It records every executed command and detects
// overlapping Exec calls so callers can assert single-cycle exclusivity.
type MockClient struct {
	mu         sync.Mutex
	host       string
	address    string
	closed     bool
	closes     int
	commands   map[string]CommandResponse
	calls      []string
	delay      time.Duration
	inFlight   int
	overlapped bool
}

// NewMockClient creates a new mock SSH client.
func NewMockClient(host string) *MockClient {
	return &MockClient{
		host:     host,
		address:  host + ":22",
		commands: make(map[string]CommandResponse),
	}
}

// SetResponse configures the canned response for a command.
func (m *MockClient) SetResponse(cmd string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[cmd] = resp
}

// SetDelay makes every Exec call take at least d, simulating remote I/O.
func (m *MockClient) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Exec returns the canned response for cmd, recording the call.
func (m *MockClient) Exec(cmd string) (stdout, stderr []byte, exitCode int, err error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, nil, -1, errors.New("connection closed")
	}
	m.calls = append(m.calls, cmd)
	m.inFlight++
	if m.inFlight > 1 {
		m.overlapped = true
	}
	delay := m.delay
	resp, ok := m.commands[cmd]
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()

	if !ok {
		return nil, []byte("command not found: " + cmd), 127, nil
	}
	return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
}

// Close marks the connection closed. Subsequent Exec calls fail.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	m.closed = true
	return nil
}

// GetHost returns the host the mock was created with.
func (m *MockClient) GetHost() string {
	return m.host
}

// GetAddress returns the mock host:port address.
func (m *MockClient) GetAddress() string {
	return m.address
}

// Calls returns the commands executed so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CloseCount returns how many times Close has been called.
func (m *MockClient) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// Overlapped reports whether two Exec calls were ever in flight at once.
func (m *MockClient) Overlapped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapped
}
