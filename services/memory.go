package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"facturacion-admin/models"
)

// MemoryStore keeps billings in process memory. Used for local runs
// without Postgres and by tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.MerchantBilling
}

func NewMemoryStore(seed ...models.MerchantBilling) *MemoryStore {
	s := &MemoryStore{rows: make(map[uint]models.MerchantBilling)}
	for i := range seed {
		_ = s.Create(context.Background(), &seed[i])
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, id uint) (*models.MerchantBilling, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *MemoryStore) GetByCode(_ context.Context, code string) (*models.MerchantBilling, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.rows {
		if b.Code == code {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, filter ListFilter) ([]models.MerchantBilling, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MerchantBilling, 0, len(s.rows))
	for _, b := range s.rows {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []models.MerchantBilling{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, b *models.MerchantBilling) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rows {
		if existing.Code == b.Code {
			return invalid("create", "ya existe una facturación con el código "+b.Code)
		}
	}
	s.nextID++
	b.ID = s.nextID
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	s.rows[b.ID] = *b
	return nil
}

func (s *MemoryStore) Transition(_ context.Context, id uint, fn func(b *models.MerchantBilling) error) (*models.MerchantBilling, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()
	s.rows[id] = b
	return &b, nil
}
