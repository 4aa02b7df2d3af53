package meta

import (
	"regexp"
	"sort"
	"strings"
)

// Enumeration is an ordered key to scalar table that enum descriptors attach
// to. *Values and enhanced enumerations both implement it.
type Enumeration interface {
	Keys() []string
	Value(key string) (any, bool)
}

// EnumEntry is one resolved enumeration member
type EnumEntry struct {
	Key   string
	Value any
	Item  EnumItem
}

// EnumRegistry attaches and queries enumeration metadata
type EnumRegistry struct {
	store *Store
}

// NewEnumRegistry creates an enumeration registry backed by store
func NewEnumRegistry(store *Store) *EnumRegistry {
	return &EnumRegistry{store: store}
}

// Define attaches info to the enumeration owner
func (r *EnumRegistry) Define(owner Enumeration, info EnumInfo) {
	if info.Items != nil {
		items := make(map[string]EnumItem, len(info.Items))
		for k, v := range info.Items {
			items[k] = v
		}
		info.Items = items
	}
	r.store.Attach(owner, "", KindEnumInfo, info)
}

// Get retrieves the EnumInfo of owner
func (r *EnumRegistry) Get(owner Enumeration) (EnumInfo, bool) {
	v, ok := r.store.Get(owner, "", KindEnumInfo)
	if !ok {
		return EnumInfo{}, false
	}
	info, ok := v.(EnumInfo)
	return info, ok
}

// Has checks if owner has an EnumInfo
func (r *EnumRegistry) Has(owner Enumeration) bool {
	_, ok := r.Get(owner)
	return ok
}

// All returns every enumeration that has an EnumInfo, in definition order
func (r *EnumRegistry) All() []Enumeration {
	owners := r.store.Owners(KindEnumInfo)
	out := make([]Enumeration, 0, len(owners))
	for _, owner := range owners {
		if e, ok := owner.(Enumeration); ok {
			out = append(out, e)
		}
	}
	return out
}

// DefineItem attaches item directly to key of owner.
//
// Deprecated: put the item in EnumInfo.Items instead. Items attached this
// way are only consulted when the items map has no entry.
func (r *EnumRegistry) DefineItem(owner Enumeration, key string, item EnumItem) {
	r.store.Attach(owner, key, KindEnumItem, item)
}

// HasItem checks if key resolves to an item through either path
func (r *EnumRegistry) HasItem(owner Enumeration, key string) bool {
	_, ok := r.Item(owner, key)
	return ok
}

// Item resolves the item of key: the items map first, the per-key
// attachment second.
func (r *EnumRegistry) Item(owner Enumeration, key string) (EnumItem, bool) {
	if info, ok := r.Get(owner); ok {
		if item, ok := info.Items[key]; ok {
			return item, true
		}
	}
	return r.legacyItem(owner, key)
}

func (r *EnumRegistry) legacyItem(owner Enumeration, key string) (EnumItem, bool) {
	v, ok := r.store.Get(owner, key, KindEnumItem)
	if !ok {
		return EnumItem{}, false
	}
	item, ok := v.(EnumItem)
	return item, ok
}

// AllItems resolves every non-numeric key of owner that has an item.
//
// Items come from the items map. Only when the map resolves nothing for the
// whole enumeration are the per-key attachments used instead, so a key that
// exists only as a per-key attachment is dropped when any other key is in
// the map.
func (r *EnumRegistry) AllItems(owner Enumeration) []EnumEntry {
	keys := namedKeys(owner)
	info, _ := r.Get(owner)

	entries := []EnumEntry{}
	for _, key := range keys {
		if item, ok := info.Items[key]; ok {
			value, _ := owner.Value(key)
			entries = append(entries, EnumEntry{Key: key, Value: value, Item: item})
		}
	}
	if len(entries) > 0 {
		return entries
	}

	for _, key := range keys {
		if item, ok := r.legacyItem(owner, key); ok {
			value, _ := owner.Value(key)
			entries = append(entries, EnumEntry{Key: key, Value: value, Item: item})
		}
	}
	return entries
}

// ItemsByTag returns the items whose metadata tags contain tag
func (r *EnumRegistry) ItemsByTag(owner Enumeration, tag string) []EnumEntry {
	return filterEntries(r.AllItems(owner), func(e EnumEntry) bool {
		return e.Item.HasTag(tag)
	})
}

// EnabledItems returns the items not marked disabled
func (r *EnumRegistry) EnabledItems(owner Enumeration) []EnumEntry {
	return filterEntries(r.AllItems(owner), func(e EnumEntry) bool {
		return !e.Item.Disabled
	})
}

// SortedItems returns the items in ascending Sort order. Ties keep key order.
func (r *EnumRegistry) SortedItems(owner Enumeration) []EnumEntry {
	entries := r.AllItems(owner)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Item.Sort < entries[j].Item.Sort
	})
	return entries
}

func filterEntries(entries []EnumEntry, keep func(EnumEntry) bool) []EnumEntry {
	out := []EnumEntry{}
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// namedKeys drops keys that parse as numbers, such as the reverse index
// entries of numeric enumerations.
func namedKeys(e Enumeration) []string {
	var keys []string
	for _, k := range e.Keys() {
		if !IsNumericKey(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

var (
	decimalKey = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)
	radixKey   = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// IsNumericKey reports whether key reads as a number literal: a signed
// decimal with optional exponent, Infinity, or an unsigned 0x, 0o or 0b
// integer. NaN, Inf and digit separators are names. Blank keys count as
// numeric.
func IsNumericKey(key string) bool {
	s := strings.TrimSpace(key)
	if s == "" {
		return true
	}
	return decimalKey.MatchString(s) || radixKey.MatchString(s)
}
