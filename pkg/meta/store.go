package meta

import (
	"fmt"
	"reflect"
	"sync"
)

// Owner identifies a schema definition that descriptors attach to.
// Owners are compared by identity: use a pointer, or EntityOf for Go structs.
type Owner = any

// EntityOf returns the owner handle for the Go type T
func EntityOf[T any]() Owner {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Kind is the kind of descriptor stored under an owner
type Kind int

const (
	KindEntityInfo Kind = iota
	KindColumnInfo
	KindEnumInfo
	KindEnumItem
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindEntityInfo:
		return "EntityInfo"
	case KindColumnInfo:
		return "ColumnInfo"
	case KindEnumInfo:
		return "EnumInfo"
	case KindEnumItem:
		return "EnumItem"
	default:
		return "Unknown"
	}
}

type storeKey struct {
	owner  Owner
	member string
	kind   Kind
}

type ownerKind struct {
	owner Owner
	kind  Kind
}

// Store is the descriptor store: values keyed by (owner, member, kind).
// Whole-definition descriptors use the empty member name.
//
// Attach never validates. Replacing a value for the same key overwrites it.
type Store struct {
	mu      sync.RWMutex
	values  map[storeKey]any
	members map[Owner][]string
	owners  map[Kind][]Owner
	seen    map[ownerKind]struct{}
}

// NewStore creates an empty descriptor store
func NewStore() *Store {
	return &Store{
		values:  make(map[storeKey]any),
		members: make(map[Owner][]string),
		owners:  make(map[Kind][]Owner),
		seen:    make(map[ownerKind]struct{}),
	}
}

// Attach stores value for (owner, member, kind). Attaching a ColumnInfo also
// records member in the owner's ordered member list.
// It panics if owner is nil or not comparable.
func (s *Store) Attach(owner Owner, member string, kind Kind, value any) {
	if !comparableOwner(owner) {
		panic(fmt.Sprintf("meta: owner %T cannot be used as a map key", owner))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[storeKey{owner, member, kind}] = value

	ok := ownerKind{owner, kind}
	if _, exists := s.seen[ok]; !exists {
		s.seen[ok] = struct{}{}
		s.owners[kind] = append(s.owners[kind], owner)
	}

	if kind == KindColumnInfo {
		for _, m := range s.members[owner] {
			if m == member {
				return
			}
		}
		s.members[owner] = append(s.members[owner], member)
	}
}

// Get returns the value stored for (owner, member, kind)
func (s *Store) Get(owner Owner, member string, kind Kind) (any, bool) {
	if !comparableOwner(owner) {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.values[storeKey{owner, member, kind}]
	return v, exists
}

// Has checks if a value is stored for (owner, member, kind)
func (s *Store) Has(owner Owner, member string, kind Kind) bool {
	_, exists := s.Get(owner, member, kind)
	return exists
}

// ListMembers returns the members of owner that have a ColumnInfo attached,
// in first-attachment order
func (s *Store) ListMembers(owner Owner) []string {
	if !comparableOwner(owner) {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	members := s.members[owner]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Owners returns every owner that has at least one descriptor of kind,
// in first-attachment order
func (s *Store) Owners(kind Kind) []Owner {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := s.owners[kind]
	out := make([]Owner, len(owners))
	copy(out, owners)
	return out
}

// Clear removes all stored descriptors (useful for testing)
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[storeKey]any)
	s.members = make(map[Owner][]string)
	s.owners = make(map[Kind][]Owner)
	s.seen = make(map[ownerKind]struct{})
}

func comparableOwner(owner Owner) bool {
	if owner == nil {
		return false
	}
	return reflect.TypeOf(owner).Comparable()
}
