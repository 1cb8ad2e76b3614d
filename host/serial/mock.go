package serial

import (
	"io"
	"sync"
)

// MockPort is an in-memory Port for driver tests. Writes are recorded,
// reads are served from queued response bytes.
type MockPort struct {
	mu        sync.Mutex
	written   []byte
	responses []byte
	closed    bool
}

// NewMockPort creates an empty mock port
func NewMockPort() *MockPort {
	return &MockPort{}
}

// QueueResponse appends bytes to be returned by subsequent Reads
func (p *MockPort) QueueResponse(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, data...)
}

// Written returns a copy of everything written so far
func (p *MockPort) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(p.written))
	copy(out, p.written)
	return out
}

// Reset clears recorded writes and queued responses
func (p *MockPort) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = nil
	p.responses = nil
}

func (p *MockPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	if len(p.responses) == 0 {
		// Mimic a timed-out serial read: no data, no error.
		return 0, nil
	}
	n := copy(b, p.responses)
	p.responses = p.responses[n:]
	return n, nil
}

func (p *MockPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	p.written = append(p.written, b...)
	return len(b), nil
}

func (p *MockPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *MockPort) Flush() error {
	return nil
}
