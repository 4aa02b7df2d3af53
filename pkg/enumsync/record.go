// Package enumsync persists enumeration metadata to the __enums__ table and
// rebuilds enhanced enumerations from it.
package enumsync

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/adisonshadow/adb/pkg/meta"
)

// TableName is the table enumeration records live in
const TableName = "__enums__"

var (
	// ErrNotFound is returned when no record matches
	ErrNotFound = errors.New("enum record not found")

	// ErrDuplicate is returned when a unique column already holds the value
	ErrDuplicate = errors.New("enum record already exists")

	// ErrMissingEnumInfo is returned when saving an enumeration that has no
	// EnumInfo attached
	ErrMissingEnumInfo = errors.New("enumeration does not have EnumInfo metadata")

	// ErrNoValues is returned when rebuilding from a record without values
	ErrNoValues = errors.New("enum record has no values")
)

// Record is one row of the __enums__ table
type Record struct {
	ID          int64                    `json:"id"`
	EnumID      string                   `json:"enumId"`
	Code        string                   `json:"code"`
	Label       string                   `json:"label"`
	Description *string                  `json:"description,omitempty"`
	Items       map[string]meta.EnumItem `json:"items"`
	EnumName    string                   `json:"enumName"`
	EnumValues  *meta.Values             `json:"enumValues,omitempty"`
	IsActive    bool                     `json:"isActive"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// Info rebuilds the EnumInfo a record was saved from
func (r *Record) Info() meta.EnumInfo {
	info := meta.EnumInfo{
		ID:    r.EnumID,
		Code:  r.Code,
		Label: r.Label,
		Items: r.Items,
	}
	if r.Description != nil {
		info.Description = *r.Description
	}
	return info
}

// Patch lists the columns to change in an update. Nil fields are left alone.
type Patch struct {
	Label       *string
	Description *string
	Items       map[string]meta.EnumItem
	EnumName    *string
	EnumValues  *meta.Values
	IsActive    *bool
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return p.Label == nil && p.Description == nil && p.Items == nil &&
		p.EnumName == nil && p.EnumValues == nil && p.IsActive == nil
}

// Repository stores enumeration records. Lookups for absent rows return
// ErrNotFound.
type Repository interface {
	FindByEnumID(ctx context.Context, enumID string) (*Record, error)
	FindByCode(ctx context.Context, code string) (*Record, error)
	FindByName(ctx context.Context, name string) (*Record, error)
	FindActive(ctx context.Context) ([]*Record, error)
	Save(ctx context.Context, rec *Record) (*Record, error)
	Update(ctx context.Context, enumID string, patch Patch) error
}

// EnumName is the record name used for enhanced enumerations
func EnumName(code string) string {
	return "ADBEnum_" + strings.ReplaceAll(code, ":", "_")
}

type recordEntity struct{}

func (recordEntity) Name() string      { return "EnumMetadata" }
func (recordEntity) TableName() string { return TableName }

// RecordEntity is the owner the __enums__ descriptors attach to
var RecordEntity meta.Owner = recordEntity{}

// DescribeRecord attaches the descriptors of the __enums__ table to reg
func DescribeRecord(reg *meta.Registry) {
	owner := RecordEntity
	reg.Entities.Define(owner, meta.EntityInfo{
		ID:          "enum-metadata-entity-001",
		Code:        "system:enum:metadata",
		Label:       "Enum Metadata Table",
		Description: "Store metadata information for all enums in the system",
		Tags:        []string{"system", "enum", "metadata"},
	})

	columns := []struct {
		member, id, label string
		extend            meta.ExtendType
	}{
		{"id", "field_enum_meta_id_001", "Primary Key ID", meta.ExtendAutoIncrementID},
		{"enumId", "field_enum_meta_enum_id_001", "Enum Unique Identifier", ""},
		{"code", "field_enum_meta_code_001", "Enum Code", ""},
		{"label", "field_enum_meta_label_001", "Enum Display Name", ""},
		{"description", "field_enum_meta_description_001", "Enum Description", ""},
		{"items", "field_enum_meta_items_001", "Enum Items Configuration", "json"},
		{"enumName", "field_enum_meta_enum_name_001", "Enum Name", ""},
		{"enumValues", "field_enum_meta_enum_values_001", "Enum Values Mapping", "json"},
		{"isActive", "field_enum_meta_is_active_001", "Is Active", ""},
		{"createdAt", "field_enum_meta_created_at_001", "Created At", ""},
		{"updatedAt", "field_enum_meta_updated_at_001", "Updated At", ""},
	}
	for _, c := range columns {
		info := meta.ColumnInfo{ID: c.id, Label: c.label, ExtendType: c.extend}
		if c.extend == meta.ExtendAutoIncrementID {
			info.AutoIncrementID = &meta.AutoIncrementIDConfig{IsPrimaryKey: true}
		}
		reg.Columns.Define(owner, c.member, info)
	}
}
