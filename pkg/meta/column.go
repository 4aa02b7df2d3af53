package meta

// ColumnEntry pairs a member name with its ColumnInfo
type ColumnEntry struct {
	Member string     `json:"member"`
	Info   ColumnInfo `json:"columnInfo"`
}

// ColumnRegistry attaches and queries per-member metadata
type ColumnRegistry struct {
	store *Store
}

// NewColumnRegistry creates a column registry backed by store
func NewColumnRegistry(store *Store) *ColumnRegistry {
	return &ColumnRegistry{store: store}
}

// Define attaches info to member of owner
func (r *ColumnRegistry) Define(owner Owner, member string, info ColumnInfo) {
	r.store.Attach(owner, member, KindColumnInfo, info)
}

// Get retrieves the ColumnInfo of a member
func (r *ColumnRegistry) Get(owner Owner, member string) (ColumnInfo, bool) {
	v, ok := r.store.Get(owner, member, KindColumnInfo)
	if !ok {
		return ColumnInfo{}, false
	}
	info, ok := v.(ColumnInfo)
	return info, ok
}

// Has checks if a member has a ColumnInfo
func (r *ColumnRegistry) Has(owner Owner, member string) bool {
	_, ok := r.Get(owner, member)
	return ok
}

// CollectAll returns every described member of owner keyed by member name
func (r *ColumnRegistry) CollectAll(owner Owner) map[string]ColumnInfo {
	result := make(map[string]ColumnInfo)
	for _, entry := range r.Ordered(owner) {
		result[entry.Member] = entry.Info
	}
	return result
}

// Ordered returns every described member of owner in attachment order
func (r *ColumnRegistry) Ordered(owner Owner) []ColumnEntry {
	members := r.store.ListMembers(owner)
	entries := make([]ColumnEntry, 0, len(members))
	for _, member := range members {
		if info, ok := r.Get(owner, member); ok {
			entries = append(entries, ColumnEntry{Member: member, Info: info})
		}
	}
	return entries
}

// FilterByExtendType returns the members whose ExtendType equals extendType
// exactly. Legacy and prefixed tags are distinct values.
func (r *ColumnRegistry) FilterByExtendType(owner Owner, extendType ExtendType) []ColumnEntry {
	entries := []ColumnEntry{}
	for _, entry := range r.Ordered(owner) {
		if entry.Info.ExtendType == extendType {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (r *ColumnRegistry) MediaColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendMedia)
}

func (r *ColumnRegistry) EnumColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendEnum)
}

func (r *ColumnRegistry) AutoIncrementIDColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendAutoIncrementID)
}

func (r *ColumnRegistry) GUIDIDColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendGUIDID)
}

func (r *ColumnRegistry) SnowflakeIDColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendSnowflakeID)
}

// LegacyMediaColumns returns members tagged with the unprefixed "media" tag
func (r *ColumnRegistry) LegacyMediaColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendLegacyMedia)
}

// LegacyEnumColumns returns members tagged with the unprefixed "enum" tag
func (r *ColumnRegistry) LegacyEnumColumns(owner Owner) []ColumnEntry {
	return r.FilterByExtendType(owner, ExtendLegacyEnum)
}
