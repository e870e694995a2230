package equipment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/trend"
)

var (
	_ soe.Directory     = (*Catalog)(nil)
	_ trend.TagResolver = (*Catalog)(nil)
	_ trend.ScaleSource = (*Catalog)(nil)
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	return c
}

func TestLoadFile(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, 6, c.Len())
	assert.Equal(t, []string{"ST1", "ST2"}, c.Stations())

	_, err := LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		entries, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Parse(strings.NewReader("equipment:\n  - type: Motor\n"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("equipment: ["))
		assert.Error(t, err)
	})
}

func TestCatalog_List(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"ST1.AI01", "ST1.DI01", "ST1.DO01", "ST2.M01", "ST2.V01", "SPARE"}},
		{"group All", Filter{Group: "All"}, []string{"ST1.AI01", "ST1.DI01", "ST1.DO01", "ST2.M01", "ST2.V01", "SPARE"}},
		{"station", Filter{Station: "st2"}, []string{"ST2.M01", "ST2.V01"}},
		{"group", Filter{Group: "di"}, []string{"ST1.DI01"}},
		{"query description", Filter{Query: "TANK 1"}, []string{"ST1.AI01", "ST1.DI01", "ST1.DO01"}},
		{"query tag", Filter{Query: "st2_m"}, []string{"ST2.M01"}},
		{"combined", Filter{Station: "ST1", Group: "DO", Query: "pump"}, []string{"ST1.DO01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := c.List(tt.filter)
			require.NoError(t, err)
			names := make([]string, len(items))
			for i, it := range items {
				names[i] = it.Equipment
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := c.List(Filter{Group: "Pump"})
	assert.Error(t, err)

	items, _ := c.List(Filter{Query: "ST1.AI01"})
	require.Len(t, items, 1)
	assert.Equal(t, models.GroupAI, items[0].Group)
	assert.Equal(t, "#BFDF9F", items[0].Color)
	assert.Equal(t, "ST1", items[0].Station)

	items, _ = c.List(Filter{Query: "SPARE"})
	require.Len(t, items, 1)
	assert.Equal(t, models.GroupAll, items[0].Group)
	assert.Equal(t, "transparent", items[0].Color)
}

func TestCatalog_Lookups(t *testing.T) {
	c := loadTestCatalog(t)
	ctx := context.Background()

	ref, err := c.Equipment(ctx, "st1.ai01", "stw")
	require.NoError(t, err)
	assert.Equal(t, "ST1.AI01", ref.Name)
	assert.Equal(t, "ST1.AI01.STW", ref.TrendTag)
	assert.Equal(t, "AnalogIn", ref.Type)
	assert.Equal(t, "ST1_AI01", ref.TagName)

	_, err = c.Equipment(ctx, "nope", "STW")
	assert.ErrorIs(t, err, ErrNotFound)

	refs, err := c.References(ctx, "ST1.AI01", "tabdido")
	require.NoError(t, err)
	assert.Equal(t, []string{"ST1.DI01", "ST1.DO01", "Unknown"}, refs)

	refs, err = c.References(ctx, "ST1.DI01", "TabDIDO")
	require.NoError(t, err)
	assert.Empty(t, refs)

	typ, err := c.ResolveEquipmentType(ctx, "ST2.M01")
	require.NoError(t, err)
	assert.Equal(t, "Motor", typ)

	lo, hi, ok := c.BaseRange(ctx, "ST1.AI01")
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
	_, _, ok = c.BaseRange(ctx, "ST1.DI01")
	assert.False(t, ok)
}

func TestCatalog_ResolveTrendTag(t *testing.T) {
	c := loadTestCatalog(t)
	ctx := context.Background()

	tag, err := c.ResolveTrendTag(ctx, "ST1.AI01", "R")
	require.NoError(t, err)
	assert.Equal(t, "ST1.AI01.R", tag)

	// an explicit trends map without the item means no trend
	tag, err = c.ResolveTrendTag(ctx, "ST1.DI01", "R")
	require.NoError(t, err)
	assert.Empty(t, tag)

	// no trends map falls back to <name>.<item>
	tag, err = c.ResolveTrendTag(ctx, "ST1.DO01", "STW")
	require.NoError(t, err)
	assert.Equal(t, "ST1.DO01.STW", tag)

	tag, err = c.ResolveTrendTag(ctx, "ST1.DO01", " ")
	require.NoError(t, err)
	assert.Empty(t, tag)
}

func TestCatalog_Replace(t *testing.T) {
	c := NewCatalog([]Entry{
		{Name: "A", Type: "Motor"},
		{Name: "a", Type: "Atv"},
		{Name: " "},
		{Name: "B", Type: "DigitalIn"},
	})
	assert.Equal(t, 2, c.Len())
	e, ok := c.Get("A")
	require.True(t, ok)
	assert.Equal(t, "Atv", e.Type)
	assert.Equal(t, models.GroupAtv, e.Group())

	c.Replace(nil)
	assert.Equal(t, 0, c.Len())
}

func TestExtractorOverCatalog(t *testing.T) {
	c := loadTestCatalog(t)
	hist := &recordingSource{}
	x := soe.NewExtractor(hist, c,
		soe.WithClock(func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }),
		soe.WithLocation(time.UTC))

	_, err := x.Extract(context.Background(), "ST1.AI01", soe.Options{}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ST1.AI01.STW", "ST1.DI01.STW", "ST1.DO01.STW"}, hist.uniqueTags())
}

type recordingSource struct {
	tags []string
}

func (r *recordingSource) FetchSamples(_ context.Context, tag string, _, _ time.Time) ([]models.Sample, error) {
	r.tags = append(r.tags, tag)
	return nil, nil
}

func (r *recordingSource) uniqueTags() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range r.tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
