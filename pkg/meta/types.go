package meta

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of an entity definition
type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
	StatusArchived Status = "archived"
)

// Valid reports whether s is one of the allowed statuses
func (s Status) Valid() bool {
	switch s {
	case StatusEnabled, StatusDisabled, StatusArchived:
		return true
	default:
		return false
	}
}

// ParseStatus converts a string to a Status
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status: %s", s)
	}
	return st, nil
}

// EntityInfo is the descriptor attached once per schema definition.
type EntityInfo struct {
	ID          string    `json:"id" yaml:"id"`
	Code        string    `json:"code" yaml:"code"`
	Label       string    `json:"label" yaml:"label"`
	Status      Status    `json:"status,omitempty" yaml:"status,omitempty"`
	IsLocked    bool      `json:"isLocked" yaml:"isLocked"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt,omitempty"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"` // kept for older definitions
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasTag reports whether the entity carries the given tag
func (e EntityInfo) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ExtendType selects which extension config of a ColumnInfo applies
type ExtendType string

const (
	ExtendMedia           ExtendType = "adb-media"
	ExtendEnum            ExtendType = "adb-enum"
	ExtendAutoIncrementID ExtendType = "adb-auto-increment-id"
	ExtendGUIDID          ExtendType = "adb-guid-id"
	ExtendSnowflakeID     ExtendType = "adb-snowflake-id"

	// Older definitions tag columns without the adb- prefix. Both spellings
	// are stored and queried as written.
	ExtendLegacyMedia ExtendType = "media"
	ExtendLegacyEnum  ExtendType = "enum"
)

// Recognized reports whether t is one of the five adb- extension tags
func (t ExtendType) Recognized() bool {
	switch t {
	case ExtendMedia, ExtendEnum, ExtendAutoIncrementID, ExtendGUIDID, ExtendSnowflakeID:
		return true
	default:
		return false
	}
}

// MediaType is the kind of media a column stores
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
	MediaFile     MediaType = "file"
)

// Valid reports whether m is an allowed media type
func (m MediaType) Valid() bool {
	switch m {
	case MediaImage, MediaVideo, MediaAudio, MediaDocument, MediaFile:
		return true
	default:
		return false
	}
}

// GUIDVersion is the UUID version used by a GUID id column
type GUIDVersion string

const (
	GUIDv1 GUIDVersion = "v1"
	GUIDv4 GUIDVersion = "v4"
	GUIDv5 GUIDVersion = "v5"
)

// Valid reports whether v is a supported UUID version
func (v GUIDVersion) Valid() bool {
	return v == GUIDv1 || v == GUIDv4 || v == GUIDv5
}

// GUIDFormat is the textual or binary encoding of a GUID
type GUIDFormat string

const (
	GUIDFormatDefault GUIDFormat = "default"
	GUIDFormatBraced  GUIDFormat = "braced"
	GUIDFormatBinary  GUIDFormat = "binary"
	GUIDFormatURN     GUIDFormat = "urn"
)

// Valid reports whether f is a supported GUID format
func (f GUIDFormat) Valid() bool {
	switch f {
	case GUIDFormatDefault, GUIDFormatBraced, GUIDFormatBinary, GUIDFormatURN:
		return true
	default:
		return false
	}
}

// SnowflakeFormat is how snowflake ids are exposed
type SnowflakeFormat string

const (
	SnowflakeNumber SnowflakeFormat = "number"
	SnowflakeString SnowflakeFormat = "string"
)

// Valid reports whether f is a supported snowflake format
func (f SnowflakeFormat) Valid() bool {
	return f == SnowflakeNumber || f == SnowflakeString
}

// MediaConfig describes a media column
type MediaConfig struct {
	MediaType   MediaType `json:"mediaType" yaml:"mediaType"`
	Formats     []string  `json:"formats" yaml:"formats"`
	MaxSize     *float64  `json:"maxSize,omitempty" yaml:"maxSize,omitempty"` // megabytes
	IsMultiple  bool      `json:"isMultiple,omitempty" yaml:"isMultiple,omitempty"`
	StoragePath string    `json:"storagePath,omitempty" yaml:"storagePath,omitempty"`
}

// EnumConfig binds a column to an enumeration definition
type EnumConfig struct {
	Enum       Enumeration `json:"-" yaml:"-"`
	IsMultiple bool        `json:"isMultiple,omitempty" yaml:"isMultiple,omitempty"`
	Default    any         `json:"default,omitempty" yaml:"default,omitempty"`
}

// AutoIncrementIDConfig describes an auto-increment id column
type AutoIncrementIDConfig struct {
	StartValue   *int64 `json:"startValue,omitempty" yaml:"startValue,omitempty"`
	Increment    *int64 `json:"increment,omitempty" yaml:"increment,omitempty"`
	IsPrimaryKey bool   `json:"isPrimaryKey,omitempty" yaml:"isPrimaryKey,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// GUIDIDConfig describes a GUID id column
type GUIDIDConfig struct {
	Version          GUIDVersion `json:"version,omitempty" yaml:"version,omitempty"`
	Format           GUIDFormat  `json:"format,omitempty" yaml:"format,omitempty"`
	IsPrimaryKey     bool        `json:"isPrimaryKey,omitempty" yaml:"isPrimaryKey,omitempty"`
	GenerateOnInsert bool        `json:"generateOnInsert,omitempty" yaml:"generateOnInsert,omitempty"`
	Description      string      `json:"description,omitempty" yaml:"description,omitempty"`
}

// SnowflakeIDConfig describes a distributed snowflake id column
type SnowflakeIDConfig struct {
	MachineID        *int            `json:"machineId,omitempty" yaml:"machineId,omitempty"`
	DatacenterID     *int            `json:"datacenterId,omitempty" yaml:"datacenterId,omitempty"`
	Epoch            *time.Time      `json:"epoch,omitempty" yaml:"epoch,omitempty"`
	IsPrimaryKey     bool            `json:"isPrimaryKey,omitempty" yaml:"isPrimaryKey,omitempty"`
	Format           SnowflakeFormat `json:"format,omitempty" yaml:"format,omitempty"`
	GenerateOnInsert bool            `json:"generateOnInsert,omitempty" yaml:"generateOnInsert,omitempty"`
	Description      string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// ColumnInfo is the descriptor attached to a member of a schema definition.
// At most one extension config is expected, matching ExtendType.
type ColumnInfo struct {
	ID              string                 `json:"id" yaml:"id"`
	Label           string                 `json:"label" yaml:"label"`
	ExtendType      ExtendType             `json:"extendType,omitempty" yaml:"extendType,omitempty"`
	Media           *MediaConfig           `json:"mediaConfig,omitempty" yaml:"mediaConfig,omitempty"`
	Enum            *EnumConfig            `json:"enumConfig,omitempty" yaml:"enumConfig,omitempty"`
	AutoIncrementID *AutoIncrementIDConfig `json:"autoIncrementIdConfig,omitempty" yaml:"autoIncrementIdConfig,omitempty"`
	GUIDID          *GUIDIDConfig          `json:"guidIdConfig,omitempty" yaml:"guidIdConfig,omitempty"`
	SnowflakeID     *SnowflakeIDConfig     `json:"snowflakeIdConfig,omitempty" yaml:"snowflakeIdConfig,omitempty"`
}

// ExtensionCount returns how many extension configs are populated
func (c ColumnInfo) ExtensionCount() int {
	n := 0
	if c.Media != nil {
		n++
	}
	if c.Enum != nil {
		n++
	}
	if c.AutoIncrementID != nil {
		n++
	}
	if c.GUIDID != nil {
		n++
	}
	if c.SnowflakeID != nil {
		n++
	}
	return n
}

// EnumItem is the descriptor for a single enumeration member
type EnumItem struct {
	Label       string         `json:"label" yaml:"label"`
	Icon        string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       string         `json:"color,omitempty" yaml:"color,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Sort        int            `json:"sort,omitempty" yaml:"sort,omitempty"`
	Disabled    bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Tags returns the tag set stored under Metadata["tags"].
// Both []string and []any (as produced by JSON/YAML decoding) are accepted.
func (i EnumItem) Tags() []string {
	raw, ok := i.Metadata["tags"]
	if !ok {
		return nil
	}
	switch t := raw.(type) {
	case []string:
		return t
	case []any:
		tags := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// HasTag reports whether the item's metadata tags contain tag
func (i EnumItem) HasTag(tag string) bool {
	for _, t := range i.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// EnumInfo is the descriptor attached once per enumeration definition
type EnumInfo struct {
	ID          string              `json:"id" yaml:"id"`
	Code        string              `json:"code" yaml:"code"`
	Label       string              `json:"label" yaml:"label"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Items       map[string]EnumItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// Ptr returns a pointer to v. Handy for the optional numeric config fields.
func Ptr[T any](v T) *T {
	return &v
}
