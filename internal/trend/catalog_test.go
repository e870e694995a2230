package trend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techequipments/engine/internal/models"
)

func TestCatalog_Defaults(t *testing.T) {
	c := NewCatalog()

	ai := c.Series(models.GroupAI)
	require.Len(t, ai, 2)
	assert.Equal(t, "R", ai[0].Key)
	assert.True(t, ai[0].Base)
	assert.False(t, ai[0].HasRange)
	assert.Equal(t, "#2E7D32", ai[0].Color)
	assert.Equal(t, 0.7, ai[0].Transparency)

	assert.Equal(t, "STW", ai[1].Key)
	assert.False(t, ai[1].Base)
	lo, hi, ok := ai[1].Range()
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100.0, hi)

	for _, g := range []models.TypeGroup{models.GroupAll, models.GroupDI, models.GroupMotor, models.GroupAtv} {
		specs := c.Series(g)
		require.Len(t, specs, 1, g.String())
		assert.Equal(t, DefaultBaseKey, specs[0].Key)
		assert.True(t, specs[0].Base)
	}
}

func TestCatalog_SeriesIsACopy(t *testing.T) {
	c := NewCatalog()
	specs := c.Series(models.GroupAI)
	specs[0].Key = "changed"
	assert.Equal(t, "R", c.Base(models.GroupAI).Key)
}

func TestCatalog_Register(t *testing.T) {
	c := NewCatalog()

	err := c.Register(models.GroupVGA, []SeriesSpec{
		{Key: " "},
		{Key: "Value", Base: false},
		{Key: "Man", Base: true},
		{Key: "value"},
	})
	require.NoError(t, err)

	specs := c.Series(models.GroupVGA)
	require.Len(t, specs, 2)
	assert.Equal(t, "Value", specs[0].Key)
	assert.True(t, specs[0].Base, "first declared series is the base")
	assert.False(t, specs[1].Base, "exactly one base")

	assert.Error(t, c.Register(models.GroupVGD, nil))
}

func TestCatalog_LoadYAML(t *testing.T) {
	doc := `
groups:
  VGA:
    - key: R
      color: "#1565C0"
    - key: Value
      min: 100
      max: 0
      transparency: 0.5
  di:
    - key: STW
`
	c := NewCatalog()
	require.NoError(t, c.LoadYAML(strings.NewReader(doc)))

	vga := c.Series(models.GroupVGA)
	require.Len(t, vga, 2)
	assert.Equal(t, "#1565C0", vga[0].Color)
	lo, hi, ok := vga[1].Range()
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo, "range is ordered")
	assert.Equal(t, 100.0, hi)

	assert.Equal(t, "STW", c.Base(models.GroupDI).Key)
	// untouched groups keep their defaults
	assert.Len(t, c.Series(models.GroupAI), 2)

	t.Run("unknown group", func(t *testing.T) {
		err := NewCatalog().LoadYAML(strings.NewReader("groups:\n  Pump:\n    - key: R\n"))
		assert.Error(t, err)
	})

	t.Run("empty group", func(t *testing.T) {
		err := NewCatalog().LoadYAML(strings.NewReader("groups:\n  AI: []\n"))
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		assert.NoError(t, NewCatalog().LoadYAML(strings.NewReader("")))
	})
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()

	c, err := LoadCatalogFile(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Len(t, c.Series(models.GroupAI), 2)

	path := filepath.Join(dir, "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups:\n  Motor:\n    - key: TimeHmi\n"), 0644))
	c, err = LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TimeHmi", c.Base(models.GroupMotor).Key)

	require.NoError(t, os.WriteFile(path, []byte("groups: [oops"), 0644))
	_, err = LoadCatalogFile(path)
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	ai := Fields(models.GroupAI)
	require.NotEmpty(t, ai)
	assert.True(t, HasField(models.GroupAI, "STW"))
	assert.True(t, HasField(models.GroupAI, "R"))
	assert.True(t, HasField(models.GroupAI, "MinR"))
	assert.Equal(t, "AlarmLAEn", ai[0].Name)
	assert.Equal(t, "Unit", ai[len(ai)-1].Name)
	assert.Equal(t, KindString, ai[len(ai)-1].Kind)

	m, ok := ModelFor(models.GroupVGAEL)
	require.True(t, ok)
	assert.Equal(t, "VGA_El", m.Name)
	for _, f := range m.Fields {
		if f.Name == "STW" {
			assert.Equal(t, KindLong, f.Kind)
			assert.Equal(t, "long", f.Type)
		}
	}

	atv, _ := ModelFor(models.GroupAtv)
	assert.Equal(t, "ATV", atv.Name)
	assert.True(t, HasField(models.GroupAtv, "STW01"))
	assert.True(t, HasField(models.GroupAtv, "STW02"))

	assert.Nil(t, Fields(models.GroupDO))
	assert.Nil(t, Fields(models.GroupAll))
	_, ok = ModelFor(models.GroupDO)
	assert.False(t, ok)

	// every model with a trend declares its base series field
	for _, g := range []models.TypeGroup{models.GroupAI, models.GroupAtv, models.GroupVGA, models.GroupVGAEL} {
		assert.True(t, HasField(g, "R"), g.String())
	}
}
