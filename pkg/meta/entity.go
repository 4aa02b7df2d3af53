package meta

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// EntityEntry pairs an owner with its EntityInfo
type EntityEntry struct {
	Owner Owner
	Info  EntityInfo
}

// EntityDetails is the full view of an entity: its descriptor plus every
// described column.
type EntityDetails struct {
	ClassName string        `json:"className"`
	TableName string        `json:"tableName"`
	Info      EntityInfo    `json:"entityInfo"`
	Columns   []ColumnEntry `json:"columns"`
}

// EntityRegistry attaches and queries whole-definition metadata
type EntityRegistry struct {
	store *Store
	now   func() time.Time
}

// NewEntityRegistry creates an entity registry backed by store
func NewEntityRegistry(store *Store) *EntityRegistry {
	return &EntityRegistry{store: store, now: time.Now}
}

// Define fills the defaults (enabled, unlocked, created and updated now) for
// any zero field of info and attaches the result to owner.
func (r *EntityRegistry) Define(owner Owner, info EntityInfo) EntityInfo {
	now := r.now()
	if info.Status == "" {
		info.Status = StatusEnabled
	}
	if info.CreatedAt.IsZero() {
		info.CreatedAt = now
	}
	if info.UpdatedAt.IsZero() {
		info.UpdatedAt = now
	}
	if info.Tags != nil {
		info.Tags = append([]string(nil), info.Tags...)
	}

	r.store.Attach(owner, "", KindEntityInfo, info)
	return info
}

// Get retrieves the EntityInfo of owner
func (r *EntityRegistry) Get(owner Owner) (EntityInfo, bool) {
	v, ok := r.store.Get(owner, "", KindEntityInfo)
	if !ok {
		return EntityInfo{}, false
	}
	info, ok := v.(EntityInfo)
	return info, ok
}

// Has checks if owner has an EntityInfo
func (r *EntityRegistry) Has(owner Owner) bool {
	_, ok := r.Get(owner)
	return ok
}

// Collect returns the entries of owners that carry EntityInfo. Owners
// without one are skipped.
func (r *EntityRegistry) Collect(owners []Owner) []EntityEntry {
	entries := make([]EntityEntry, 0, len(owners))
	for _, owner := range owners {
		if info, ok := r.Get(owner); ok {
			entries = append(entries, EntityEntry{Owner: owner, Info: info})
		}
	}
	return entries
}

// All returns every defined entity in definition order
func (r *EntityRegistry) All() []EntityEntry {
	return r.Collect(r.store.Owners(KindEntityInfo))
}

// FindByCode returns the first entry whose code matches. Codes are not
// required to be unique.
func (r *EntityRegistry) FindByCode(owners []Owner, code string) (EntityEntry, bool) {
	for _, owner := range owners {
		if info, ok := r.Get(owner); ok && info.Code == code {
			return EntityEntry{Owner: owner, Info: info}, true
		}
	}
	return EntityEntry{}, false
}

// FindByTag returns every entry tagged with tag
func (r *EntityRegistry) FindByTag(owners []Owner, tag string) []EntityEntry {
	var entries []EntityEntry
	for _, entry := range r.Collect(owners) {
		if entry.Info.HasTag(tag) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ClassName returns the display name of an owner: reflect.Type and any owner
// with a Name() method report that, everything else its dynamic type.
func ClassName(owner Owner) string {
	if named, ok := owner.(interface{ Name() string }); ok {
		if name := named.Name(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(owner)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		return t.Name()
	}
	return fmt.Sprintf("%T", owner)
}

// TableName returns the owner's TableName() if it has one, the lowercased
// class name otherwise.
func TableName(owner Owner) string {
	if tabler, ok := owner.(interface{ TableName() string }); ok {
		return tabler.TableName()
	}
	return strings.ToLower(ClassName(owner))
}
