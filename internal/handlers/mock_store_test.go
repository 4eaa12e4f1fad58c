package handlers_test

import (
	"context"
	"errors"

	"github.com/tokenlink/tokenlink/internal/redirect"
)

var errMock = errors.New("mock error")

// mockStore is a test double for redirect.Repository that can be configured
// to return errors.
type mockStore struct {
	insertErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	record *redirect.Record
}

func (m *mockStore) Insert(_ context.Context, _ *redirect.Record) error {
	return m.insertErr
}

func (m *mockStore) GetByKey(_ context.Context, _ string) (*redirect.Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	return m.record, nil
}

func (m *mockStore) List(_ context.Context) ([]*redirect.Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	if m.record == nil {
		return nil, nil
	}

	return []*redirect.Record{m.record}, nil
}

func (m *mockStore) UpdateDestination(_ context.Context, _, _ string) (*redirect.Record, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}

	return m.record, nil
}

func (m *mockStore) DeleteByKey(_ context.Context, _ string) error {
	return m.deleteErr
}
