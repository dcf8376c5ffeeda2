package ledger

import (
	"context"
	"sync"

	"github.com/rustyeddy/tradetrack/trade"
)

// Memory is a process-local ledger. It is what tests run against.
type Memory struct {
	mu      sync.RWMutex
	records []trade.Record
	closed  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, rec trade.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *Memory) ReadAll(_ context.Context) ([]trade.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]trade.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory) ClearAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records = nil
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
