package enumsync

import (
	"context"
	"sort"
	"sync"
)

// memRepo is an in-memory Repository that counts lookups
type memRepo struct {
	mu      sync.Mutex
	records map[string]*Record
	nextID  int64
	finds   int
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]*Record)}
}

func (m *memRepo) copyOf(rec *Record) *Record {
	c := *rec
	return &c
}

func (m *memRepo) FindByEnumID(_ context.Context, enumID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	rec, ok := m.records[enumID]
	if !ok {
		return nil, ErrNotFound
	}
	return m.copyOf(rec), nil
}

func (m *memRepo) find(match func(*Record) bool) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	for _, rec := range m.records {
		if match(rec) {
			return m.copyOf(rec), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) FindByCode(_ context.Context, code string) (*Record, error) {
	return m.find(func(r *Record) bool { return r.Code == code })
}

func (m *memRepo) FindByName(_ context.Context, name string) (*Record, error) {
	return m.find(func(r *Record) bool { return r.EnumName == name })
}

func (m *memRepo) FindActive(context.Context) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Record
	for _, rec := range m.records {
		if rec.IsActive {
			out = append(out, m.copyOf(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memRepo) Save(_ context.Context, rec *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if rec.ID == 0 {
		m.nextID++
		rec.ID = m.nextID
	}
	m.records[rec.EnumID] = m.copyOf(rec)
	return rec, nil
}

func (m *memRepo) Update(_ context.Context, enumID string, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[enumID]
	if !ok {
		return ErrNotFound
	}
	if patch.Label != nil {
		rec.Label = *patch.Label
	}
	if patch.Description != nil {
		rec.Description = patch.Description
	}
	if patch.Items != nil {
		rec.Items = patch.Items
	}
	if patch.EnumName != nil {
		rec.EnumName = *patch.EnumName
	}
	if patch.EnumValues != nil {
		rec.EnumValues = patch.EnumValues
	}
	if patch.IsActive != nil {
		rec.IsActive = *patch.IsActive
	}
	return nil
}
