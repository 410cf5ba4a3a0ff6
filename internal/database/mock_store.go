package database

import (
	"context"

	gomock "go.uber.org/mock/gomock"
)

// MockStore satisfies Store with a MockQuerier. ExecTx runs the callback
// directly against the mock, so expectations set on the querier also
// cover statements issued inside a transaction.
type MockStore struct {
	*MockQuerier
}

var _ Store = (*MockStore)(nil)

func NewMockStore(ctrl *gomock.Controller) *MockStore {
	return &MockStore{MockQuerier: NewMockQuerier(ctrl)}
}

func (m *MockStore) ExecTx(_ context.Context, fn func(Querier) error) error {
	return fn(m.MockQuerier)
}
