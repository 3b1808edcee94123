package assets

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MockStore is an in-memory Store for tests. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	PutFunc func(key string, data []byte, contentType string) error

	Objects  map[string]MockObject
	PutCalls []struct {
		Key         string
		ContentType string
	}
}

type MockObject struct {
	Data        []byte
	ContentType string
}

func NewMock() *MockStore {
	return &MockStore{Objects: map[string]MockObject{}}
}

func (m *MockStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, struct {
		Key         string
		ContentType string
	}{key, contentType})
	if m.PutFunc != nil {
		if err := m.PutFunc(key, data, contentType); err != nil {
			return err
		}
	}
	m.Objects[key] = MockObject{Data: data, ContentType: contentType}
	return nil
}

func (m *MockStore) Get(_ context.Context, key string) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.Objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:          io.NopCloser(bytes.NewReader(obj.Data)),
		ContentType:   obj.ContentType,
		ContentLength: int64(len(obj.Data)),
	}, nil
}
