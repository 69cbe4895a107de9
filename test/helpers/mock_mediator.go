package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface. Responses are programmed per
// request type and every request sent is kept for later assertions.
type MockMediator struct {
	mu        sync.Mutex
	responses map[reflect.Type]func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	sent      []mediator.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		responses: make(map[reflect.Type]func(ctx context.Context, request mediator.Request) (mediator.Response, error)),
	}
}

// On programs the reply for requests of the same type as sample
func (m *MockMediator) On(sample mediator.Request, reply func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[reflect.TypeOf(sample)] = reply
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	m.sent = append(m.sent, request)
	reply, ok := m.responses[reflect.TypeOf(request)]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no response programmed for %T", request)
	}
	return reply(ctx, request)
}

// Register implements the Mediator interface (no-op for mock)
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// Use implements the Mediator interface (no-op for mock)
func (m *MockMediator) Use(middleware mediator.Middleware) {}

// Sent returns every request sent so far
func (m *MockMediator) Sent() []mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mediator.Request(nil), m.sent...)
}
