// Package meta attaches business metadata to schema definitions.
//
// # Overview
//
// Schema definitions exist primarily for persistence mapping. This package
// lets them carry a second layer of descriptive information: what an entity,
// a column or an enumeration is for, in business terms. Descriptors are plain
// values stored in a Store under (owner, member, kind) and read back by the
// entity, column and enumeration registries.
//
// # Descriptor Kinds
//
//   - EntityInfo: one per schema definition (id, code, label, status, tags)
//   - ColumnInfo: one per described member, with at most one extension config
//   - EnumInfo: one per enumeration, with an items map of EnumItem
//   - EnumItem: per-member enumeration metadata (label, sort, disabled, tags)
//
// # Owners
//
// Owners are compared by identity. Go structs use EntityOf:
//
//	type Order struct{}
//
//	reg := meta.NewRegistry()
//	order := meta.EntityOf[Order]()
//	reg.Entities.Define(order, meta.EntityInfo{ID: "e1", Code: "order:tx", Label: "Order"})
//	reg.Columns.Define(order, "status", meta.ColumnInfo{
//		ID:         "c1",
//		Label:      "Status",
//		ExtendType: meta.ExtendEnum,
//		Enum:       &meta.EnumConfig{Enum: status},
//	})
//
// Enumerations are any Enumeration value, typically *Values:
//
//	status := meta.NewValues().Set("PAID", "paid").Set("PENDING", "pending")
//	reg.Enums.Define(status, meta.EnumInfo{
//		ID: "s1", Code: "order:status", Label: "Order Status",
//		Items: map[string]meta.EnumItem{"PAID": {Label: "Paid", Sort: 2}},
//	})
//
// # Lifecycle
//
// Descriptors are attached during a definition phase, usually from init
// functions or a loader, and read afterwards. Attaching again for the same
// key replaces the previous value. The Default registry is shared by the
// whole process; tests should build their own with NewRegistry.
//
// Attaching never validates. Use the validation package to check
// descriptors explicitly.
package meta
