package events

import (
	"context"
	"log/slog"
	"sync"
)

// PublishedEvent captures one Publish call for assertions.
type PublishedEvent struct {
	Topic   string
	Payload interface{}
}

// MockEventPublisher records events in memory for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(_ context.Context, topic string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{Topic: topic, Payload: payload})
	if m.logger != nil {
		m.logger.Debug("mock event published", "topic", topic)
	}
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// Events returns a copy of everything published so far.
func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}
