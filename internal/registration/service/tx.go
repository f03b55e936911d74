package service

import (
	"context"
	"sync"

	dErrors "onboarding/pkg/domain-errors"
)

// InMemoryConnector hands out sessions for in-memory stores. Transactions are
// serialized with a coarse lock; there is no rollback, so stores that must
// stay consistent across a failed transaction need a real database.
type InMemoryConnector struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	failures []error
	opened   int
	closed   int
}

// NewInMemoryConnector constructs a connector whose sessions always open.
func NewInMemoryConnector() *InMemoryConnector {
	return &InMemoryConnector{}
}

// FailNext makes the next len(errs) Connect calls fail with errs, in order.
func (c *InMemoryConnector) FailNext(errs ...error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, errs...)
}

func (c *InMemoryConnector) Connect(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.failures) > 0 {
		err := c.failures[0]
		c.failures = c.failures[1:]
		return nil, err
	}
	c.opened++
	return &inMemorySession{connector: c}, nil
}

// Open returns the number of sessions handed out and not yet closed.
func (c *InMemoryConnector) Open() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened - c.closed
}

// Opened returns the number of sessions handed out so far.
func (c *InMemoryConnector) Opened() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened
}

type inMemorySession struct {
	connector *InMemoryConnector
	once      sync.Once
}

func (s *inMemorySession) Bind(ctx context.Context) context.Context {
	return ctx
}

func (s *inMemorySession) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	s.connector.txMu.Lock()
	defer s.connector.txMu.Unlock()
	return fn(ctx)
}

func (s *inMemorySession) Close() error {
	s.once.Do(func() {
		s.connector.mu.Lock()
		s.connector.closed++
		s.connector.mu.Unlock()
	})
	return nil
}
