// Package loader reads entity and enumeration definitions from YAML files
// and registers them, so definitions can be validated and synced without
// compiling Go code.
//
// A definition file holds two optional lists:
//
//	enums:
//	  - name: OrderStatus
//	    info: {id: enum-order-status-001, code: "order:status", label: Order Status}
//	    values: {PENDING: pending, PAID: paid}
//	    items:
//	      PAID: {label: Paid, color: green, sort: 1}
//
//	entities:
//	  - name: Order
//	    table: orders
//	    info: {id: entity-order-001, code: "shop:order", label: Order}
//	    columns:
//	      - member: status
//	        enum: OrderStatus
//	        info: {id: field_status_001, label: Status, extendType: adb-enum, enumConfig: {}}
//
// Enumerations become enhanced enumerations in the cache and are usable as
// owners in the registry. An enumeration without an id stays out of the
// cache. Columns reference enumerations by name or code.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adisonshadow/adb/pkg/adbenum"
	"github.com/adisonshadow/adb/pkg/meta"
)

var (
	// ErrUnknownEnum is returned when a column references an enumeration
	// that was not defined
	ErrUnknownEnum = errors.New("unknown enumeration")

	// ErrDuplicate is returned when two definitions share a name, or two
	// enumerations share an id
	ErrDuplicate = errors.New("duplicate definition")
)

// File is the document layout of a definition file
type File struct {
	Enums    []EnumDef   `yaml:"enums"`
	Entities []EntityDoc `yaml:"entities"`
}

// EnumDef defines one enhanced enumeration
type EnumDef struct {
	Name   string                   `yaml:"name"`
	Info   meta.EnumInfo            `yaml:"info"`
	Values *meta.Values             `yaml:"values"`
	Items  map[string]meta.EnumItem `yaml:"items"`
}

// EntityDoc defines one entity and its columns
type EntityDoc struct {
	Name    string          `yaml:"name"`
	Table   string          `yaml:"table"`
	Info    meta.EntityInfo `yaml:"info"`
	Columns []ColumnDoc     `yaml:"columns"`
}

// ColumnDoc defines one column. Enum names the enumeration an enum column
// draws its values from.
type ColumnDoc struct {
	Member string          `yaml:"member"`
	Enum   string          `yaml:"enum"`
	Info   meta.ColumnInfo `yaml:"info"`
}

// EntityDef is the registry owner of a loaded entity
type EntityDef struct {
	name  string
	table string
}

// Name returns the entity name
func (e *EntityDef) Name() string { return e.name }

// TableName returns the table name, defaulting to the lowercased name
func (e *EntityDef) TableName() string {
	if e.table != "" {
		return e.table
	}
	return strings.ToLower(e.name)
}

// Set is everything loaded so far
type Set struct {
	Registry *meta.Registry
	Cache    *adbenum.Cache
	Entities []*EntityDef
	Enums    []NamedEnum
}

// NamedEnum is a loaded enumeration with its definition name
type NamedEnum struct {
	Name   string
	Source string
	Enum   *adbenum.Enum
}

// Loader registers definitions into a registry and an enum cache
type Loader struct {
	set *Set
}

// New creates a loader. Nil arguments get fresh instances.
func New(registry *meta.Registry, cache *adbenum.Cache) *Loader {
	if registry == nil {
		registry = meta.NewRegistry()
	}
	if cache == nil {
		cache = adbenum.NewCache()
	}
	return &Loader{set: &Set{Registry: registry, Cache: cache}}
}

// Set returns the definitions loaded so far
func (l *Loader) Set() *Set {
	return l.set
}

// LoadDir loads every .yaml and .yml file under dir in lexical order. All
// enumerations are registered before any entity so columns can reference
// enumerations from other files.
func (l *Loader) LoadDir(dir string) (*Set, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	sort.Strings(paths)

	files := make([]File, len(paths))
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		files[i], err = decode(f, path)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	for i, file := range files {
		if err := l.addEnums(file.Enums, paths[i]); err != nil {
			return nil, err
		}
	}
	for i, file := range files {
		if err := l.addEntities(file.Entities, paths[i]); err != nil {
			return nil, err
		}
	}
	return l.set, nil
}

// Load reads one document from r. source names it in errors.
func (l *Loader) Load(r io.Reader, source string) (*Set, error) {
	file, err := decode(r, source)
	if err != nil {
		return nil, err
	}
	if err := l.addEnums(file.Enums, source); err != nil {
		return nil, err
	}
	if err := l.addEntities(file.Entities, source); err != nil {
		return nil, err
	}
	return l.set, nil
}

func decode(r io.Reader, source string) (File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("%s: %w", source, err)
	}
	return file, nil
}

func (l *Loader) addEnums(defs []EnumDef, source string) error {
	for _, def := range defs {
		name := def.Name
		if name == "" {
			name = def.Info.Code
		}
		if _, ok := l.set.Enum(name); ok {
			return fmt.Errorf("%s: %w: enum %s", source, ErrDuplicate, name)
		}

		values := def.Values
		if values == nil {
			values = meta.NewValues()
		}
		info := def.Info
		if def.Items != nil {
			info.Items = def.Items
		}

		cfg := adbenum.ConfigFromInfo(info, values)
		var e *adbenum.Enum
		if info.ID == "" {
			// kept out of the cache; validation reports the missing id
			e = adbenum.New(cfg)
		} else {
			if _, ok := l.set.Cache.Lookup(info.ID); ok {
				return fmt.Errorf("%s: %w: enum id %s", source, ErrDuplicate, info.ID)
			}
			e = l.set.Cache.Create(cfg)
		}
		l.set.Registry.Enums.Define(e, e.Info())
		l.set.Enums = append(l.set.Enums, NamedEnum{Name: name, Source: source, Enum: e})
	}
	return nil
}

func (l *Loader) addEntities(docs []EntityDoc, source string) error {
	for _, doc := range docs {
		if doc.Name == "" {
			return fmt.Errorf("%s: entity without a name", source)
		}
		if _, ok := l.set.Entity(doc.Name); ok {
			return fmt.Errorf("%s: %w: entity %s", source, ErrDuplicate, doc.Name)
		}

		owner := &EntityDef{name: doc.Name, table: doc.Table}
		l.set.Registry.Entities.Define(owner, doc.Info)

		for _, col := range doc.Columns {
			info := col.Info
			if col.Enum != "" {
				ne, ok := l.set.Enum(col.Enum)
				if !ok {
					return fmt.Errorf("%s: %s.%s: %w %q", source, doc.Name, col.Member, ErrUnknownEnum, col.Enum)
				}
				cfg := meta.EnumConfig{}
				if info.Enum != nil {
					cfg = *info.Enum
				}
				cfg.Enum = ne.Enum
				info.Enum = &cfg
			}
			l.set.Registry.Columns.Define(owner, col.Member, info)
		}
		l.set.Entities = append(l.set.Entities, owner)
	}
	return nil
}

// Enum finds a loaded enumeration by definition name or code
func (s *Set) Enum(nameOrCode string) (NamedEnum, bool) {
	for _, ne := range s.Enums {
		if ne.Name == nameOrCode || ne.Enum.Code() == nameOrCode {
			return ne, true
		}
	}
	return NamedEnum{}, false
}

// EnumByID finds a loaded enumeration by EnumInfo id
func (s *Set) EnumByID(id string) (NamedEnum, bool) {
	for _, ne := range s.Enums {
		if ne.Enum.ID() == id {
			return ne, true
		}
	}
	return NamedEnum{}, false
}

// Entity finds a loaded entity by name
func (s *Set) Entity(name string) (*EntityDef, bool) {
	for _, e := range s.Entities {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

// Owners returns the loaded entities as registry owners
func (s *Set) Owners() []meta.Owner {
	owners := make([]meta.Owner, len(s.Entities))
	for i, e := range s.Entities {
		owners[i] = e
	}
	return owners
}

// EnumOwners returns the loaded enumerations as registry owners
func (s *Set) EnumOwners() []meta.Enumeration {
	owners := make([]meta.Enumeration, len(s.Enums))
	for i, ne := range s.Enums {
		owners[i] = ne.Enum
	}
	return owners
}

// EnhancedEnums returns the loaded enhanced enumerations in load order
func (s *Set) EnhancedEnums() []*adbenum.Enum {
	enums := make([]*adbenum.Enum, len(s.Enums))
	for i, ne := range s.Enums {
		enums[i] = ne.Enum
	}
	return enums
}
