package s3client

import (
	"context"
	"hr-onboarding-backend/models"
	"slices"
	"sync"
)

// NewMemClient хранилище объектов в памяти процесса
func NewMemClient() Provider {
	return &memClient{
		objects: map[string][]byte{},
	}
}

type memClient struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func (m *memClient) MakeBucket(ctx context.Context) error {
	return nil
}

func (m *memClient) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = slices.Clone(body)
	return nil
}

func (m *memClient) GetObject(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.objects[key]
	if !ok {
		return nil, models.ErrFileNotFound
	}
	return slices.Clone(body), nil
}
