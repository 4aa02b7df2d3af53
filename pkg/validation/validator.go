package validation

import (
	"github.com/adisonshadow/adb/pkg/meta"
)

// OwnerResult tags a result with the definition it belongs to
type OwnerResult struct {
	Owner  meta.Owner `json:"-"`
	Name   string     `json:"name"`
	Result Result     `json:"result"`
}

// MemberResult tags a result with a column member name
type MemberResult struct {
	Member string `json:"member"`
	Result Result `json:"result"`
}

// ItemResult tags a result with an enumeration key
type ItemResult struct {
	Key    string `json:"key"`
	Result Result `json:"result"`
}

// Validator checks the descriptors held by a registry
type Validator struct {
	registry *meta.Registry
}

// NewValidator creates a validator over registry
func NewValidator(registry *meta.Registry) *Validator {
	return &Validator{registry: registry}
}

// Entity checks the EntityInfo of owner. A missing EntityInfo is an error.
func (v *Validator) Entity(owner meta.Owner) Result {
	info, ok := v.registry.Entities.Get(owner)
	if !ok {
		return Invalid("Entity is missing EntityInfo metadata")
	}
	return CheckEntityInfo(info)
}

// AllEntities checks every owner
func (v *Validator) AllEntities(owners []meta.Owner) []OwnerResult {
	results := make([]OwnerResult, 0, len(owners))
	for _, owner := range owners {
		results = append(results, OwnerResult{
			Owner:  owner,
			Name:   meta.ClassName(owner),
			Result: v.Entity(owner),
		})
	}
	return results
}

// Column checks the ColumnInfo of a member. Members without one are valid.
func (v *Validator) Column(owner meta.Owner, member string) Result {
	info, ok := v.registry.Columns.Get(owner, member)
	if !ok {
		return Valid()
	}
	return CheckColumnInfo(info)
}

// AllColumns checks every described member of owner in attachment order
func (v *Validator) AllColumns(owner meta.Owner) []MemberResult {
	members := v.registry.Store.ListMembers(owner)
	results := make([]MemberResult, 0, len(members))
	for _, member := range members {
		results = append(results, MemberResult{Member: member, Result: v.Column(owner, member)})
	}
	return results
}

// Enum checks the EnumInfo of an enumeration. A missing EnumInfo is an error.
func (v *Validator) Enum(owner meta.Enumeration) Result {
	info, ok := v.registry.Enums.Get(owner)
	if !ok {
		return Invalid("Enum is missing EnumInfo metadata")
	}
	return CheckEnumInfo(info)
}

// EnumItem checks the resolved item of key. Keys without an item are valid.
func (v *Validator) EnumItem(owner meta.Enumeration, key string) Result {
	item, ok := v.registry.Enums.Item(owner, key)
	if !ok {
		return Valid()
	}
	return CheckEnumItem(item)
}

// AllEnumItems checks every non-numeric key of owner
func (v *Validator) AllEnumItems(owner meta.Enumeration) []ItemResult {
	var results []ItemResult
	for _, key := range owner.Keys() {
		if meta.IsNumericKey(key) {
			continue
		}
		results = append(results, ItemResult{Key: key, Result: v.EnumItem(owner, key)})
	}
	return results
}

// Summary folds tagged results into one, prefixing each message with its tag
func Summary[T OwnerResult | MemberResult | ItemResult](results []T) Result {
	out := Valid()
	for _, r := range results {
		var tag string
		var res Result
		switch x := any(r).(type) {
		case OwnerResult:
			tag, res = x.Name, x.Result
		case MemberResult:
			tag, res = x.Member, x.Result
		case ItemResult:
			tag, res = x.Key, x.Result
		}
		for _, msg := range res.Errors {
			out.Addf("%s: %s", tag, msg)
		}
	}
	return out
}
