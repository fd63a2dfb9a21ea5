package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crdtools/crdtools/version"
)

func TestMaterialize(t *testing.T) {
	reg := version.MustRegister([]version.Definition{
		{Version: version.MustParse("v1alpha1")},
		{Version: version.MustParse("v1beta1")},
		{Version: version.MustParse("v1")},
	})

	items := []Item{
		{Name: "name", Type: "string"},
		{Name: "bar", Type: "usize", Added: &Added{Since: version.MustParse("v1beta1")}},
		{
			Name: "deprecatedGau", Type: "bool",
			Added:      &Added{Since: version.MustParse("v1alpha1")},
			Deprecated: &Deprecated{Since: version.MustParse("v1"), Note: "gone in v2"},
		},
	}

	changesets, err := ProjectAll(items, reg)
	require.NoError(t, err)

	t.Run("v1alpha1 has no bar", func(t *testing.T) {
		shape, ok := Materialize(changesets, version.MustParse("v1alpha1"))
		require.True(t, ok)

		_, hasBar := shape.Item("bar")
		assert.False(t, hasBar)

		gau, hasGau := shape.Item("gau")
		require.True(t, hasGau)
		assert.False(t, gau.Deprecated)

		assert.Len(t, shape.Items, 2)
	})

	t.Run("v1beta1 has bar", func(t *testing.T) {
		shape, ok := Materialize(changesets, version.MustParse("v1beta1"))
		require.True(t, ok)

		bar, hasBar := shape.Item("bar")
		require.True(t, hasBar)
		assert.Equal(t, Type("usize"), bar.Type)
		assert.Len(t, shape.Items, 3)
	})

	t.Run("v1 uses deprecated name form", func(t *testing.T) {
		shape, ok := Materialize(changesets, version.MustParse("v1"))
		require.True(t, ok)

		_, hasOldName := shape.Item("gau")
		assert.False(t, hasOldName)

		gau, hasGau := shape.Item("deprecatedGau")
		require.True(t, hasGau)
		assert.True(t, gau.Deprecated)
		assert.Equal(t, "gone in v2", gau.Note)
	})

	t.Run("unknown version", func(t *testing.T) {
		_, ok := Materialize(changesets, version.MustParse("v9"))
		assert.False(t, ok)
	})
}

func TestMaterializeCarriesNotePastDeprecationVersion(t *testing.T) {
	reg := version.MustRegister([]version.Definition{
		{Version: version.MustParse("v1beta1")},
		{Version: version.MustParse("v1")},
		{Version: version.MustParse("v2")},
	})

	items := []Item{
		{
			Name: "deprecatedGau", Type: "bool",
			Deprecated: &Deprecated{Since: version.MustParse("v1"), Note: "gone in v3"},
		},
	}

	changesets, err := ProjectAll(items, reg)
	require.NoError(t, err)

	// v2 carries the deprecation forward as NoChange; the note must survive.
	shape, ok := Materialize(changesets, version.MustParse("v2"))
	require.True(t, ok)

	gau, hasGau := shape.Item("deprecatedGau")
	require.True(t, hasGau)
	assert.True(t, gau.Deprecated)
	assert.Equal(t, "gone in v3", gau.Note)
}

func TestMaterializePreservesItemOrder(t *testing.T) {
	reg := version.MustRegister([]version.Definition{
		{Version: version.MustParse("v1")},
	})

	items := []Item{
		{Name: "charlie", Type: "string"},
		{Name: "alpha", Type: "string"},
		{Name: "bravo", Type: "string"},
	}

	changesets, err := ProjectAll(items, reg)
	require.NoError(t, err)

	shape, ok := Materialize(changesets, version.MustParse("v1"))
	require.True(t, ok)

	names := make([]string, len(shape.Items))
	for i, item := range shape.Items {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, names)
}

func TestMaterializeAll(t *testing.T) {
	reg := version.MustRegister([]version.Definition{
		{Version: version.MustParse("v1alpha1")},
		{Version: version.MustParse("v1")},
	})

	items := []Item{
		{Name: "bar", Type: "string", Added: &Added{Since: version.MustParse("v1")}},
	}

	changesets, err := ProjectAll(items, reg)
	require.NoError(t, err)

	shapes := MaterializeAll(changesets, reg)
	require.Len(t, shapes, 2)

	assert.Equal(t, version.MustParse("v1alpha1"), shapes[0].Version)
	assert.Empty(t, shapes[0].Items)

	assert.Equal(t, version.MustParse("v1"), shapes[1].Version)
	assert.Len(t, shapes[1].Items, 1)
}
