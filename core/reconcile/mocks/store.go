package mocks

import (
	"context"

	"local-tp/core/pattern"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of reconcile.Store
type Store struct {
	mock.Mock
}

func (m *Store) CreateRule(ctx context.Context, rule pattern.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *Store) UpdateRule(ctx context.Context, id string, rule pattern.Rule) error {
	args := m.Called(ctx, id, rule)
	return args.Error(0)
}

func (m *Store) DeleteRule(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
