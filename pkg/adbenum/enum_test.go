package adbenum

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/adisonshadow/adb/pkg/meta"
)

func orderStatus(cache *Cache) *Enum {
	return cache.Create(Config{
		ID:          "enum-order-status",
		Code:        "order:status",
		Label:       "Order Status",
		Description: "Lifecycle of an order",
		Values:      meta.NewValues().Set("PENDING", "pending").Set("PAID", "paid").Set("REFUNDED", "refunded"),
		Items: map[string]meta.EnumItem{
			"PENDING":  {Label: "Pending", Sort: 1, Metadata: map[string]any{"tags": []string{"open"}}},
			"PAID":     {Label: "Paid", Sort: 2, Metadata: map[string]any{"tags": []string{"closed", "billable"}}},
			"REFUNDED": {Label: "Refunded", Sort: 3, Disabled: true, Metadata: map[string]any{"tags": []string{"closed"}}},
		},
	})
}

func itemKeys(items []Item) []string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	return keys
}

func TestEnum_Accessors(t *testing.T) {
	e := orderStatus(NewCache())

	assert.Equal(t, "enum-order-status", e.ID())
	assert.Equal(t, "order:status", e.Code())
	assert.Equal(t, "Order Status", e.Label())
	assert.Equal(t, "Lifecycle of an order", e.Description())
	assert.Equal(t, []string{"PENDING", "PAID", "REFUNDED"}, e.Keys())

	v, ok := e.Value("PAID")
	require.True(t, ok)
	assert.Equal(t, "paid", v)
	_, ok = e.Value("UNKNOWN")
	assert.False(t, ok)
	assert.Equal(t, "pending", e.MustValue("PENDING"))
	assert.Panics(t, func() { e.MustValue("UNKNOWN") })

	key, ok := e.Key("paid")
	require.True(t, ok)
	assert.Equal(t, "PAID", key)
	_, ok = e.Key("nope")
	assert.False(t, ok)

	assert.True(t, e.HasKey("REFUNDED"))
	assert.False(t, e.HasKey("refunded"))
	assert.True(t, e.HasValue("refunded"))
	assert.False(t, e.HasValue("REFUNDED"))

	cfg, ok := e.ItemConfig("PAID")
	require.True(t, ok)
	assert.Equal(t, "Paid", cfg.Label)
	_, ok = e.ItemConfig("UNKNOWN")
	assert.False(t, ok)

	assert.Equal(t, "ADBEnum(order:status)", e.String())
	assert.Equal(t, "ADBEnum(order:status)", fmt.Sprint(e))
}

func TestEnum_KeyReturnsFirstMatch(t *testing.T) {
	e := NewCache().Create(Config{
		ID: "dup", Code: "dup", Label: "Dup",
		Values: meta.NewValues().Set("B", "x").Set("A", "x"),
	})

	key, ok := e.Key("x")
	require.True(t, ok)
	assert.Equal(t, "B", key)
}

func TestEnum_IsImmutable(t *testing.T) {
	values := meta.NewValues().Set("A", "a")
	items := map[string]meta.EnumItem{"A": {Label: "A"}}
	e := NewCache().Create(Config{ID: "imm", Code: "imm", Label: "Imm", Values: values, Items: items})

	values.Set("B", "b")
	items["B"] = meta.EnumItem{Label: "B"}
	assert.Equal(t, []string{"A"}, e.Keys())
	assert.Len(t, e.Items(), 1)

	e.Values().Set("C", "c")
	e.Items()["C"] = meta.EnumItem{}
	keys := e.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"A"}, e.Keys())
	assert.Len(t, e.Items(), 1)

	plain := e.PlainObject()
	plain["A"] = "changed"
	assert.Equal(t, "a", e.MustValue("A"))
}

func TestEnum_ItemViews(t *testing.T) {
	e := NewCache().Create(Config{
		ID: "views", Code: "views", Label: "Views",
		Values: meta.NewValues().Set("K1", 1).Set("K2", 2).Set("K3", 3).Set("K4", 4),
		Items: map[string]meta.EnumItem{
			"K1": {Label: "One", Sort: 2, Metadata: map[string]any{"tags": []any{"x"}}},
			"K3": {Label: "Three", Sort: 1, Disabled: true},
			"K4": {Label: "Four"},
		},
	})

	t.Run("sorted keeps ties in key order", func(t *testing.T) {
		sorted := e.SortedItems()
		assert.Equal(t, []string{"K2", "K4", "K3", "K1"}, itemKeys(sorted))
		assert.Nil(t, sorted[0].Config)
		require.NotNil(t, sorted[1].Config)
		assert.Equal(t, "Four", sorted[1].Config.Label)
	})

	t.Run("enabled includes keys without metadata", func(t *testing.T) {
		assert.Equal(t, []string{"K1", "K2", "K4"}, itemKeys(e.EnabledItems()))
	})

	t.Run("by tag", func(t *testing.T) {
		assert.Equal(t, []string{"K1"}, itemKeys(e.ItemsByTag("x")))
		assert.Empty(t, e.ItemsByTag("y"))
	})
}

func TestEnum_SortStability(t *testing.T) {
	e := NewCache().Create(Config{
		ID: "weights", Code: "weights", Label: "Weights",
		Values: meta.NewValues().Set("k1", "1").Set("k2", "2").Set("k3", "3").Set("k4", "4"),
		Items: map[string]meta.EnumItem{
			"k1": {Label: "k1", Sort: 2},
			"k2": {Label: "k2"},
			"k3": {Label: "k3", Sort: 1},
			"k4": {Label: "k4"},
		},
	})

	assert.Equal(t, []string{"k2", "k4", "k3", "k1"}, itemKeys(e.SortedItems()))
}

func TestEnum_Serialization(t *testing.T) {
	e := orderStatus(NewCache())

	assert.Equal(t, map[string]any{"PENDING": "pending", "PAID": "paid", "REFUNDED": "refunded"}, e.PlainObject())

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, "enum-order-status", snap.ID)
	assert.Equal(t, "order:status", snap.Code)
	assert.Equal(t, "Order Status", snap.Label)
	assert.Equal(t, "Lifecycle of an order", snap.Description)
	assert.Equal(t, []string{"PENDING", "PAID", "REFUNDED"}, snap.Values.Keys())
	assert.Equal(t, "Paid", snap.Items["PAID"].Label)

	info := e.Info()
	assert.Equal(t, "order:status", info.Code)
	assert.Len(t, info.Items, 3)
}

func TestEnum_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][A-Z0-9_]{0,10}`), 1, 8, rapid.ID[string]).Draw(t, "keys")
		values := meta.NewValues()
		for _, k := range keys {
			values.Set(k, rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(t, "value"))
		}
		cfg := Config{
			ID:     rapid.StringMatching(`[a-z0-9-]{1,12}`).Draw(t, "id"),
			Code:   rapid.StringMatching(`[a-z]{1,6}(:[a-z]{1,6}){0,2}`).Draw(t, "code"),
			Label:  rapid.StringMatching(`[A-Za-z ]{1,16}`).Draw(t, "label"),
			Values: values,
		}

		e := NewCache().Create(cfg)

		data, err := json.Marshal(e)
		require.NoError(t, err)
		var snap Snapshot
		require.NoError(t, json.Unmarshal(data, &snap))

		assert.Equal(t, cfg.ID, snap.ID)
		assert.Equal(t, cfg.Code, snap.Code)
		assert.Equal(t, cfg.Label, snap.Label)
		assert.True(t, values.Equal(snap.Values))
		assert.Equal(t, values.Map(), e.PlainObject())
		assert.True(t, e.Validate().IsValid, e.Validate().Errors)
	})
}

func TestEnum_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "valid",
			cfg: Config{ID: "1", Code: "a:b", Label: "L", Values: meta.NewValues().Set("A", "a"),
				Items: map[string]meta.EnumItem{"A": {Label: "A"}}},
		},
		{
			name: "missing identity and values",
			cfg:  Config{ID: "2"},
			want: []string{
				"EnumInfo.code is required",
				"EnumInfo.label is required",
				"Enum must have at least one value",
			},
		},
		{
			name: "bad code",
			cfg:  Config{ID: "3", Code: "a b", Label: "L", Values: meta.NewValues().Set("A", "a")},
			want: []string{"EnumInfo.code can only contain letters, numbers and colons"},
		},
		{
			name: "dangling and unlabeled items",
			cfg: Config{ID: "4", Code: "c", Label: "L", Values: meta.NewValues().Set("A", "a"),
				Items: map[string]meta.EnumItem{"A": {}, "Z": {Label: "Zed"}}},
			want: []string{
				"EnumItem.label is required for key: A",
				"EnumItem config exists for undefined key: Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCache().Create(tt.cfg).Validate()
			if tt.want == nil {
				assert.True(t, r.IsValid, r.Errors)
				return
			}
			assert.False(t, r.IsValid)
			assert.Equal(t, tt.want, r.Errors)
		})
	}
}

func TestCache(t *testing.T) {
	t.Run("first writer wins", func(t *testing.T) {
		cache := NewCache()
		a := cache.Create(Config{ID: "X", Code: "a", Label: "A", Values: meta.NewValues().Set("ONE", "1")})
		b := cache.Create(Config{ID: "X", Code: "b", Label: "B", Values: meta.NewValues().Set("TWO", "2")})

		assert.Same(t, a, b)
		assert.Equal(t, "a", b.Code())
		assert.Equal(t, "A", b.Label())
		assert.Equal(t, []string{"ONE"}, b.Keys())
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("New bypasses the cache", func(t *testing.T) {
		a := New(Config{Code: "a", Label: "A", Values: meta.NewValues().Set("ONE", "1")})
		b := New(Config{Code: "b", Label: "B", Values: meta.NewValues().Set("TWO", "2")})

		assert.NotSame(t, a, b)
		assert.Equal(t, []string{"ONE"}, a.Keys())
		assert.Equal(t, []string{"TWO"}, b.Keys())
	})

	t.Run("lookup and list", func(t *testing.T) {
		cache := NewCache()
		cache.Create(Config{ID: "2", Code: "zeta", Label: "Z"})
		cache.Create(Config{ID: "1", Code: "alpha", Label: "A"})

		e, ok := cache.Lookup("1")
		require.True(t, ok)
		assert.Equal(t, "alpha", e.Code())
		_, ok = cache.Lookup("3")
		assert.False(t, ok)

		e, ok = cache.LookupByCode("zeta")
		require.True(t, ok)
		assert.Equal(t, "2", e.ID())

		all := cache.All()
		require.Len(t, all, 2)
		assert.Equal(t, "alpha", all[0].Code())
		assert.Equal(t, "zeta", all[1].Code())

		cache.Reset()
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("concurrent create returns one instance", func(t *testing.T) {
		cache := NewCache()
		results := make([]*Enum, 20)

		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = cache.Create(Config{ID: "shared", Code: fmt.Sprintf("c%d", i), Label: "L"})
			}(i)
		}
		wg.Wait()

		for _, r := range results {
			assert.Same(t, results[0], r)
		}
	})

	t.Run("default cache", func(t *testing.T) {
		t.Cleanup(Default().Reset)

		a := Create(Config{ID: "default-test", Code: "d", Label: "D"})
		b, ok := Default().Lookup("default-test")
		require.True(t, ok)
		assert.Same(t, a, b)
	})
}
