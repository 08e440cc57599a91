package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kassslll/creator-studio/backend/models"
)

// MemoryStore keeps everything in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu            sync.RWMutex
	contents      map[uint]models.Content
	curricula     map[uint]models.Curriculum
	nextContentID uint
	nextCurrID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contents:      make(map[uint]models.Content),
		curricula:     make(map[uint]models.Curriculum),
		nextContentID: 1,
		nextCurrID:    1,
	}
}

func (m *MemoryStore) Create(_ context.Context, c *models.Content) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prepareCreate(c)
	c.ID = m.nextContentID
	m.nextContentID++
	m.contents[c.ID] = *c
	return c.ID, nil
}

func (m *MemoryStore) Get(_ context.Context, id uint) (*models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.contents[id]
	if !ok {
		return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	return &c, nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inOrder(), nil
}

func (m *MemoryStore) ListRecent(_ context.Context, n int) ([]models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortRecent(m.inOrder(), n), nil
}

func (m *MemoryStore) Update(_ context.Context, id uint, patch models.ContentPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contents[id]
	if !ok {
		return fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	patch.Apply(&c)
	updated := c.NextUpdatedAt(time.Now())
	c.UpdatedAt = &updated
	m.contents[id] = c
	return nil
}

// inOrder walks ids ascending, which is insertion order.
func (m *MemoryStore) inOrder() []models.Content {
	out := make([]models.Content, 0, len(m.contents))
	for id := uint(1); id < m.nextContentID; id++ {
		if c, ok := m.contents[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (m *MemoryStore) GetCurriculum(_ context.Context, id uint) (*models.Curriculum, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.curricula[id]
	if !ok {
		return nil, fmt.Errorf("curriculum %d: %w", id, ErrNotFound)
	}
	return &c, nil
}

func (m *MemoryStore) ListCurricula(_ context.Context) ([]models.Curriculum, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Curriculum, 0, len(m.curricula))
	for id := uint(1); id < m.nextCurrID; id++ {
		if c, ok := m.curricula[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateCurriculum(_ context.Context, c *models.Curriculum) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.nextCurrID
	m.nextCurrID++
	m.curricula[c.ID] = *c
	return c.ID, nil
}

func (m *MemoryStore) Close() error { return nil }
