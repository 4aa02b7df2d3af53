package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnRegistry(t *testing.T) {
	t.Run("define get has", func(t *testing.T) {
		reg := NewRegistry()
		order := EntityOf[Order]()

		reg.Columns.Define(order, "title", ColumnInfo{ID: "c1", Label: "Title"})

		info, ok := reg.Columns.Get(order, "title")
		require.True(t, ok)
		assert.Equal(t, "Title", info.Label)
		assert.True(t, reg.Columns.Has(order, "title"))
		assert.False(t, reg.Columns.Has(order, "missing"))
	})

	t.Run("collect all", func(t *testing.T) {
		reg := NewRegistry()
		order := EntityOf[Order]()
		reg.Columns.Define(order, "a", ColumnInfo{ID: "1", Label: "A"})
		reg.Columns.Define(order, "b", ColumnInfo{ID: "2", Label: "B"})

		all := reg.Columns.CollectAll(order)
		assert.Len(t, all, 2)
		assert.Equal(t, "1", all["a"].ID)
		assert.Empty(t, reg.Columns.CollectAll(EntityOf[Customer]()))
	})

	t.Run("extend type filtering partitions", func(t *testing.T) {
		reg := NewRegistry()
		order := EntityOf[Order]()
		reg.Columns.Define(order, "cover", ColumnInfo{ID: "1", Label: "Cover", ExtendType: ExtendLegacyMedia})
		reg.Columns.Define(order, "state", ColumnInfo{ID: "2", Label: "State", ExtendType: ExtendLegacyEnum})
		reg.Columns.Define(order, "note", ColumnInfo{ID: "3", Label: "Note"})

		media := reg.Columns.FilterByExtendType(order, "media")
		require.Len(t, media, 1)
		assert.Equal(t, "cover", media[0].Member)

		enums := reg.Columns.FilterByExtendType(order, "enum")
		require.Len(t, enums, 1)
		assert.Equal(t, "state", enums[0].Member)

		assert.Empty(t, reg.Columns.FilterByExtendType(order, "adb-guid-id"))
		assert.NotNil(t, reg.Columns.FilterByExtendType(order, "unused"))
	})

	t.Run("legacy and prefixed tags are distinct", func(t *testing.T) {
		reg := NewRegistry()
		order := EntityOf[Order]()
		reg.Columns.Define(order, "legacyMedia", ColumnInfo{ExtendType: ExtendLegacyMedia})
		reg.Columns.Define(order, "media", ColumnInfo{ExtendType: ExtendMedia})
		reg.Columns.Define(order, "legacyEnum", ColumnInfo{ExtendType: ExtendLegacyEnum})
		reg.Columns.Define(order, "enum", ColumnInfo{ExtendType: ExtendEnum})
		reg.Columns.Define(order, "seq", ColumnInfo{ExtendType: ExtendAutoIncrementID})
		reg.Columns.Define(order, "guid", ColumnInfo{ExtendType: ExtendGUIDID})
		reg.Columns.Define(order, "flake", ColumnInfo{ExtendType: ExtendSnowflakeID})

		members := func(entries []ColumnEntry) []string {
			var out []string
			for _, e := range entries {
				out = append(out, e.Member)
			}
			return out
		}

		assert.Equal(t, []string{"media"}, members(reg.Columns.MediaColumns(order)))
		assert.Equal(t, []string{"legacyMedia"}, members(reg.Columns.LegacyMediaColumns(order)))
		assert.Equal(t, []string{"enum"}, members(reg.Columns.EnumColumns(order)))
		assert.Equal(t, []string{"legacyEnum"}, members(reg.Columns.LegacyEnumColumns(order)))
		assert.Equal(t, []string{"seq"}, members(reg.Columns.AutoIncrementIDColumns(order)))
		assert.Equal(t, []string{"guid"}, members(reg.Columns.GUIDIDColumns(order)))
		assert.Equal(t, []string{"flake"}, members(reg.Columns.SnowflakeIDColumns(order)))
	})
}

func TestColumnInfo_ExtensionCount(t *testing.T) {
	assert.Equal(t, 0, ColumnInfo{}.ExtensionCount())
	assert.Equal(t, 2, ColumnInfo{
		Media:  &MediaConfig{},
		GUIDID: &GUIDIDConfig{},
	}.ExtensionCount())
}

func TestExtendType_Recognized(t *testing.T) {
	for _, et := range []ExtendType{ExtendMedia, ExtendEnum, ExtendAutoIncrementID, ExtendGUIDID, ExtendSnowflakeID} {
		assert.True(t, et.Recognized(), et)
	}
	assert.False(t, ExtendLegacyMedia.Recognized())
	assert.False(t, ExtendLegacyEnum.Recognized())
	assert.False(t, ExtendType("").Recognized())
}

func TestTypeCatalog(t *testing.T) {
	catalog := TypeCatalog()
	require.Len(t, catalog, 28)

	for i, entry := range catalog {
		if i < 5 {
			assert.Equal(t, CategoryExtension, entry.Category, entry.Key)
		} else {
			assert.Equal(t, CategoryPrimitive, entry.Category, entry.Key)
		}
	}

	assert.Len(t, ExtensionTypes(), 5)
	assert.Len(t, PrimitiveTypes(), 23)

	guid, ok := LookupType("adb-guid-id")
	require.True(t, ok)
	assert.Equal(t, "GUID ID", guid.Label)

	enum, ok := LookupType("enum")
	require.True(t, ok)
	assert.Equal(t, CategoryPrimitive, enum.Category)

	_, ok = LookupType("geometry")
	assert.False(t, ok)

	catalog[0].Label = "mutated"
	assert.Equal(t, "Auto Increment ID", TypeCatalog()[0].Label)
}

func TestEnumItem_Tags(t *testing.T) {
	tests := []struct {
		name string
		item EnumItem
		want []string
	}{
		{"no metadata", EnumItem{}, nil},
		{"string slice", EnumItem{Metadata: map[string]any{"tags": []string{"a", "b"}}}, []string{"a", "b"}},
		{"decoded slice", EnumItem{Metadata: map[string]any{"tags": []any{"a", 1, "b"}}}, []string{"a", "b"}},
		{"wrong type", EnumItem{Metadata: map[string]any{"tags": "a"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Tags())
		})
	}
}
