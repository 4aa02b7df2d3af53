package enumsync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/adisonshadow/adb/pkg/adbenum"
	"github.com/adisonshadow/adb/pkg/meta"
)

// NamedEnum is a plain enumeration together with the name it is saved under
type NamedEnum struct {
	Name string
	Enum meta.Enumeration
}

// Service keeps the __enums__ table in step with enumeration definitions.
// Repository errors are returned as the repository produced them.
type Service struct {
	repo     Repository
	registry *meta.Registry
	cache    *adbenum.Cache
	logger   *zap.Logger
}

// NewService creates a service. A nil registry, cache or logger falls back
// to the process-wide registry, the process-wide cache and a no-op logger.
func NewService(repo Repository, registry *meta.Registry, cache *adbenum.Cache, logger *zap.Logger) *Service {
	if registry == nil {
		registry = meta.Default()
	}
	if cache == nil {
		cache = adbenum.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, registry: registry, cache: cache, logger: logger}
}

// Save persists a plain enumeration under name. Enhanced enumerations are
// delegated to SaveEnum. It fails with ErrMissingEnumInfo when the
// enumeration has no EnumInfo.
func (s *Service) Save(ctx context.Context, owner meta.Enumeration, name string) (*Record, error) {
	if e, ok := owner.(*adbenum.Enum); ok {
		return s.SaveEnum(ctx, e)
	}

	info, ok := s.registry.Enums.Get(owner)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnumInfo, name)
	}

	values := meta.NewValues()
	for _, key := range owner.Keys() {
		if meta.IsNumericKey(key) {
			continue
		}
		v, _ := owner.Value(key)
		values.Set(key, v)
	}

	return s.upsert(ctx, info, name, values)
}

// SaveEnum persists an enhanced enumeration under EnumName(code)
func (s *Service) SaveEnum(ctx context.Context, e *adbenum.Enum) (*Record, error) {
	return s.upsert(ctx, e.Info(), EnumName(e.Code()), e.Values())
}

func (s *Service) upsert(ctx context.Context, info meta.EnumInfo, name string, values *meta.Values) (*Record, error) {
	rec, err := s.repo.FindByEnumID(ctx, info.ID)
	if errors.Is(err, ErrNotFound) {
		rec = &Record{}
	} else if err != nil {
		return nil, err
	}

	rec.EnumID = info.ID
	rec.Code = info.Code
	rec.Label = info.Label
	rec.Description = nil
	if info.Description != "" {
		desc := info.Description
		rec.Description = &desc
	}
	rec.Items = info.Items
	if rec.Items == nil {
		rec.Items = map[string]meta.EnumItem{}
	}
	rec.EnumName = name
	rec.EnumValues = values
	rec.IsActive = true

	return s.repo.Save(ctx, rec)
}

// SaveAll saves each enumeration, logging and skipping failures. It returns
// the records that were saved.
func (s *Service) SaveAll(ctx context.Context, enums []NamedEnum) []*Record {
	var saved []*Record
	for _, ne := range enums {
		rec, err := s.Save(ctx, ne.Enum, ne.Name)
		if err != nil {
			s.logger.Error("failed to save enum metadata", zap.String("enum_name", ne.Name), zap.Error(err))
			continue
		}
		saved = append(saved, rec)
	}
	return saved
}

// SaveEnums saves each enhanced enumeration, logging and skipping failures
func (s *Service) SaveEnums(ctx context.Context, enums []*adbenum.Enum) []*Record {
	var saved []*Record
	for _, e := range enums {
		rec, err := s.SaveEnum(ctx, e)
		if err != nil {
			s.logger.Error("failed to save adb enum", zap.String("code", e.Code()), zap.Error(err))
			continue
		}
		saved = append(saved, rec)
	}
	return saved
}

// Sync saves every enhanced enumeration in the service's cache
func (s *Service) Sync(ctx context.Context) []*Record {
	return s.SaveEnums(ctx, s.cache.All())
}

// GetByID returns the record with the given enum id
func (s *Service) GetByID(ctx context.Context, enumID string) (*Record, error) {
	return s.repo.FindByEnumID(ctx, enumID)
}

// GetByCode returns the record with the given code
func (s *Service) GetByCode(ctx context.Context, code string) (*Record, error) {
	return s.repo.FindByCode(ctx, code)
}

// GetByName returns the record with the given enum name
func (s *Service) GetByName(ctx context.Context, name string) (*Record, error) {
	return s.repo.FindByName(ctx, name)
}

// ListActive returns the active records ordered by code
func (s *Service) ListActive(ctx context.Context) ([]*Record, error) {
	return s.repo.FindActive(ctx)
}

// Deactivate marks a record inactive. Rows are never deleted.
func (s *Service) Deactivate(ctx context.Context, enumID string) error {
	inactive := false
	return s.repo.Update(ctx, enumID, Patch{IsActive: &inactive})
}

// RebuildInfo loads the EnumInfo stored for enumID
func (s *Service) RebuildInfo(ctx context.Context, enumID string) (meta.EnumInfo, error) {
	rec, err := s.repo.FindByEnumID(ctx, enumID)
	if err != nil {
		return meta.EnumInfo{}, err
	}
	return rec.Info(), nil
}

// RebuildEnum recreates the enhanced enumeration stored for enumID. When the
// id is already cached the cached instance is returned.
func (s *Service) RebuildEnum(ctx context.Context, enumID string) (*adbenum.Enum, error) {
	rec, err := s.repo.FindByEnumID(ctx, enumID)
	if err != nil {
		return nil, err
	}
	return s.rebuild(rec)
}

// RebuildEnumByCode recreates the enhanced enumeration stored under code
func (s *Service) RebuildEnumByCode(ctx context.Context, code string) (*adbenum.Enum, error) {
	rec, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.rebuild(rec)
}

func (s *Service) rebuild(rec *Record) (*adbenum.Enum, error) {
	if rec.EnumValues == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoValues, rec.EnumID)
	}
	return s.cache.Create(adbenum.ConfigFromInfo(rec.Info(), rec.EnumValues)), nil
}
