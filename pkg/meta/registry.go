package meta

import "time"

// Registry bundles a descriptor store with the three registries over it
type Registry struct {
	Store    *Store
	Entities *EntityRegistry
	Columns  *ColumnRegistry
	Enums    *EnumRegistry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	store := NewStore()
	return &Registry{
		Store:    store,
		Entities: NewEntityRegistry(store),
		Columns:  NewColumnRegistry(store),
		Enums:    NewEnumRegistry(store),
	}
}

// SetClock replaces the time source used for entity defaults
func (r *Registry) SetClock(now func() time.Time) {
	r.Entities.now = now
}

// Details returns the full view of an entity
func (r *Registry) Details(owner Owner) (EntityDetails, bool) {
	info, ok := r.Entities.Get(owner)
	if !ok {
		return EntityDetails{}, false
	}
	return EntityDetails{
		ClassName: ClassName(owner),
		TableName: TableName(owner),
		Info:      info,
		Columns:   r.Columns.Ordered(owner),
	}, true
}

// Global registry instance
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry filled during the definition phase
func Default() *Registry {
	return defaultRegistry
}

// DefineEntity attaches info to owner in the default registry
func DefineEntity(owner Owner, info EntityInfo) EntityInfo {
	return defaultRegistry.Entities.Define(owner, info)
}

// DefineColumn attaches info to member of owner in the default registry
func DefineColumn(owner Owner, member string, info ColumnInfo) {
	defaultRegistry.Columns.Define(owner, member, info)
}

// DefineEnum attaches info to an enumeration in the default registry
func DefineEnum(owner Enumeration, info EnumInfo) {
	defaultRegistry.Enums.Define(owner, info)
}

// Reset clears the default registry (useful for testing)
func Reset() {
	defaultRegistry.Store.Clear()
}
