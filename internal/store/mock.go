package store

import (
	"context"

	"tradevault/trade-import/internal/models"
)

// MockSink is a scriptable persistence sink for tests. It records every
// call and can be told to fail at a given call index.
type MockSink struct {
	Saved  []models.TradeRecord
	FailAt int // 0-based call index to fail at; -1 never fails
	Err    error
}

// NewMockSink creates a sink that never fails.
func NewMockSink() *MockSink {
	return &MockSink{FailAt: -1}
}

// SaveTrade records the call, failing when the scripted index is reached.
func (m *MockSink) SaveTrade(_ context.Context, record models.TradeRecord) error {
	if m.FailAt >= 0 && len(m.Saved) == m.FailAt {
		return m.Err
	}
	m.Saved = append(m.Saved, record)
	return nil
}
