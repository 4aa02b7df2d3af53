// Package adbenum provides enhanced enumerations: identity-cached,
// immutable key to value tables that carry per-item metadata.
package adbenum

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/adisonshadow/adb/pkg/meta"
	"github.com/adisonshadow/adb/pkg/validation"
)

// Config describes an enumeration to create
type Config struct {
	ID          string
	Code        string
	Label       string
	Description string
	Items       map[string]meta.EnumItem
	Values      *meta.Values
}

// ConfigFromInfo combines an EnumInfo with its values
func ConfigFromInfo(info meta.EnumInfo, values *meta.Values) Config {
	return Config{
		ID:          info.ID,
		Code:        info.Code,
		Label:       info.Label,
		Description: info.Description,
		Items:       info.Items,
		Values:      values,
	}
}

// Item is one member of an enumeration. Config is nil when the key has no
// item metadata.
type Item struct {
	Key    string         `json:"key"`
	Value  any            `json:"value"`
	Config *meta.EnumItem `json:"config,omitempty"`
}

// Snapshot is the serialized form of an enumeration
type Snapshot struct {
	ID          string                   `json:"id"`
	Code        string                   `json:"code"`
	Label       string                   `json:"label"`
	Description string                   `json:"description,omitempty"`
	Values      *meta.Values             `json:"values"`
	Items       map[string]meta.EnumItem `json:"items"`
}

// Enum is an enhanced enumeration. Instances never change after creation.
type Enum struct {
	id          string
	code        string
	label       string
	description string
	items       map[string]meta.EnumItem
	values      *meta.Values
	keys        []string
}

// New creates an enumeration outside any cache. Callers that cannot supply
// a unique id use it so distinct definitions never collapse into one.
func New(cfg Config) *Enum {
	return newEnum(cfg)
}

func newEnum(cfg Config) *Enum {
	items := make(map[string]meta.EnumItem, len(cfg.Items))
	for k, v := range cfg.Items {
		items[k] = v
	}
	values := cfg.Values.Clone()
	return &Enum{
		id:          cfg.ID,
		code:        cfg.Code,
		label:       cfg.Label,
		description: cfg.Description,
		items:       items,
		values:      values,
		keys:        values.Keys(),
	}
}

func (e *Enum) ID() string          { return e.id }
func (e *Enum) Code() string        { return e.code }
func (e *Enum) Label() string       { return e.label }
func (e *Enum) Description() string { return e.description }

// Keys returns the keys in definition order
func (e *Enum) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Values returns a copy of the value table
func (e *Enum) Values() *meta.Values {
	return e.values.Clone()
}

// Items returns a copy of the item metadata
func (e *Enum) Items() map[string]meta.EnumItem {
	out := make(map[string]meta.EnumItem, len(e.items))
	for k, v := range e.items {
		out[k] = v
	}
	return out
}

// Value returns the value of key
func (e *Enum) Value(key string) (any, bool) {
	return e.values.Value(key)
}

// MustValue returns the value of key and panics if the key is unknown.
// Meant for package-level declarations.
func (e *Enum) MustValue(key string) any {
	v, ok := e.values.Value(key)
	if !ok {
		panic(fmt.Sprintf("adbenum: %s has no key %q", e, key))
	}
	return v
}

// Key returns the first key, in definition order, whose value equals value
func (e *Enum) Key(value any) (string, bool) {
	for _, k := range e.keys {
		if v, _ := e.values.Value(k); reflect.DeepEqual(v, value) {
			return k, true
		}
	}
	return "", false
}

// HasKey checks if key is defined
func (e *Enum) HasKey(key string) bool {
	_, ok := e.values.Value(key)
	return ok
}

// HasValue checks if any key maps to value
func (e *Enum) HasValue(value any) bool {
	_, ok := e.Key(value)
	return ok
}

// ItemConfig returns the item metadata of key
func (e *Enum) ItemConfig(key string) (meta.EnumItem, bool) {
	item, ok := e.items[key]
	return item, ok
}

func (e *Enum) item(key string) Item {
	v, _ := e.values.Value(key)
	it := Item{Key: key, Value: v}
	if cfg, ok := e.items[key]; ok {
		it.Config = &cfg
	}
	return it
}

// EnabledItems returns every key not marked disabled, including keys without
// item metadata
func (e *Enum) EnabledItems() []Item {
	out := []Item{}
	for _, k := range e.keys {
		if cfg, ok := e.items[k]; ok && cfg.Disabled {
			continue
		}
		out = append(out, e.item(k))
	}
	return out
}

// SortedItems returns every key in ascending Sort order. Keys without item
// metadata sort as 0 and ties keep definition order.
func (e *Enum) SortedItems() []Item {
	out := make([]Item, 0, len(e.keys))
	for _, k := range e.keys {
		out = append(out, e.item(k))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortWeight(out[i]) < sortWeight(out[j])
	})
	return out
}

func sortWeight(it Item) int {
	if it.Config == nil {
		return 0
	}
	return it.Config.Sort
}

// ItemsByTag returns the keys whose metadata tags contain tag
func (e *Enum) ItemsByTag(tag string) []Item {
	out := []Item{}
	for _, k := range e.keys {
		if cfg, ok := e.items[k]; ok && cfg.HasTag(tag) {
			out = append(out, e.item(k))
		}
	}
	return out
}

// Info returns the enumeration as an EnumInfo descriptor
func (e *Enum) Info() meta.EnumInfo {
	return meta.EnumInfo{
		ID:          e.id,
		Code:        e.code,
		Label:       e.label,
		Description: e.description,
		Items:       e.Items(),
	}
}

// PlainObject returns the value table as a plain map
func (e *Enum) PlainObject() map[string]any {
	return e.values.Map()
}

// Snapshot returns the full descriptor for serialization
func (e *Enum) Snapshot() Snapshot {
	return Snapshot{
		ID:          e.id,
		Code:        e.code,
		Label:       e.label,
		Description: e.description,
		Values:      e.Values(),
		Items:       e.Items(),
	}
}

// MarshalJSON implements json.Marshaler
func (e *Enum) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Snapshot())
}

// String returns "ADBEnum(<code>)"
func (e *Enum) String() string {
	return fmt.Sprintf("ADBEnum(%s)", e.code)
}

// Validate checks the identity fields, that values are present, and that
// every item config belongs to a defined key and has a label
func (e *Enum) Validate() validation.Result {
	r := validation.CheckEnumInfo(meta.EnumInfo{ID: e.id, Code: e.code, Label: e.label})

	if len(e.keys) == 0 {
		r.Add("Enum must have at least one value")
	}

	itemKeys := make([]string, 0, len(e.items))
	for k := range e.items {
		itemKeys = append(itemKeys, k)
	}
	sort.Strings(itemKeys)

	for _, k := range itemKeys {
		if !e.HasKey(k) {
			r.Addf("EnumItem config exists for undefined key: %s", k)
		}
		if e.items[k].Label == "" {
			r.Addf("EnumItem.label is required for key: %s", k)
		}
	}
	return r
}
