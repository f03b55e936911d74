package main

import (
	"context"

	"onboarding/internal/platform/database"
	"onboarding/internal/registration/service"
)

// poolConnector hands the registration service one pooled connection per
// request.
type poolConnector struct {
	pool *database.Pool
}

func (c poolConnector) Connect(ctx context.Context) (service.Session, error) {
	session, err := c.pool.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}
