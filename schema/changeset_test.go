package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

func statusAt(t *testing.T, cs *Changeset, v string) ItemStatus {
	t.Helper()
	status, ok := cs.At(version.MustParse(v))
	require.True(t, ok, "no status for version %s", v)
	return status
}

func TestProjectPlainItem(t *testing.T) {
	reg := testRegistry(t)
	item := Item{Name: "bar", Type: "string"}

	cs, err := Project(item, reg)
	require.NoError(t, err)

	// An item without actions exists in every version, unchanged.
	for _, v := range []string{"v1alpha1", "v1beta1", "v1", "v2"} {
		status := statusAt(t, cs, v)
		assert.Equal(t, StatusNoChange, status.Kind)
		assert.Equal(t, "bar", status.Name)
		assert.Equal(t, Type("string"), status.Type)
		assert.False(t, status.Deprecated())
	}
}

func TestProjectAddedItem(t *testing.T) {
	reg := testRegistry(t)
	item := Item{
		Name: "bar", Type: "usize",
		Added: &Added{Since: version.MustParse("v1beta1"), Default: func() any { return 42 }},
	}

	cs, err := Project(item, reg)
	require.NoError(t, err)

	assert.Equal(t, StatusAbsent, statusAt(t, cs, "v1alpha1").Kind)

	addition := statusAt(t, cs, "v1beta1")
	assert.Equal(t, StatusAddition, addition.Kind)
	assert.Equal(t, "bar", addition.Name)
	require.NotNil(t, addition.Default)
	assert.Equal(t, 42, addition.Default())

	assert.Equal(t, StatusNoChange, statusAt(t, cs, "v1").Kind)
	assert.Equal(t, StatusNoChange, statusAt(t, cs, "v2").Kind)
}

func TestProjectRenamedAndRetypedItem(t *testing.T) {
	reg := version.MustRegister([]version.Definition{
		{Version: version.MustParse("v1alpha1")},
		{Version: version.MustParse("v1beta1")},
	})
	item := Item{
		Name: "bar", Type: "usize",
		Changes: []Changed{{
			Since:    version.MustParse("v1beta1"),
			FromName: "prevBar",
			FromType: "uint16",
		}},
	}

	cs, err := Project(item, reg)
	require.NoError(t, err)

	before := statusAt(t, cs, "v1alpha1")
	assert.Equal(t, StatusNoChange, before.Kind)
	assert.Equal(t, "prevBar", before.Name)
	assert.Equal(t, Type("uint16"), before.Type)

	change := statusAt(t, cs, "v1beta1")
	assert.Equal(t, StatusChange, change.Kind)
	assert.Equal(t, "prevBar", change.FromName)
	assert.Equal(t, Type("uint16"), change.FromType)
	assert.Equal(t, "bar", change.Name)
	assert.Equal(t, Type("usize"), change.Type)
}

func TestProjectChainedChanges(t *testing.T) {
	reg := testRegistry(t)
	item := Item{
		Name: "baz", Type: "int64",
		Added: &Added{Since: version.MustParse("v1alpha1")},
		Changes: []Changed{
			{Since: version.MustParse("v1beta1"), FromName: "foo"},
			{Since: version.MustParse("v1"), FromName: "bar", FromType: "int32"},
		},
	}

	cs, err := Project(item, reg)
	require.NoError(t, err)

	// The backward walk threads names through the chain:
	// foo (v1alpha1) -> bar (v1beta1) -> baz (v1).
	addition := statusAt(t, cs, "v1alpha1")
	assert.Equal(t, StatusAddition, addition.Kind)
	assert.Equal(t, "foo", addition.Name)
	assert.Equal(t, Type("int32"), addition.Type)

	first := statusAt(t, cs, "v1beta1")
	assert.Equal(t, StatusChange, first.Kind)
	assert.Equal(t, "foo", first.FromName)
	assert.Equal(t, "bar", first.Name)
	assert.Equal(t, Type("int32"), first.Type)

	second := statusAt(t, cs, "v1")
	assert.Equal(t, StatusChange, second.Kind)
	assert.Equal(t, "bar", second.FromName)
	assert.Equal(t, Type("int32"), second.FromType)
	assert.Equal(t, "baz", second.Name)
	assert.Equal(t, Type("int64"), second.Type)

	last := statusAt(t, cs, "v2")
	assert.Equal(t, StatusNoChange, last.Kind)
	assert.Equal(t, "baz", last.Name)
}

func TestProjectDeprecatedItem(t *testing.T) {
	reg := testRegistry(t)
	item := Item{
		Name: "deprecatedBar", Type: "string",
		Added:      &Added{Since: version.MustParse("v1alpha1")},
		Deprecated: &Deprecated{Since: version.MustParse("v1"), Note: "use baz instead"},
	}

	cs, err := Project(item, reg)
	require.NoError(t, err)

	// Before the deprecation the item uses its pre-deprecation name.
	addition := statusAt(t, cs, "v1alpha1")
	assert.Equal(t, "bar", addition.Name)

	before := statusAt(t, cs, "v1beta1")
	assert.Equal(t, StatusNoChange, before.Kind)
	assert.Equal(t, "bar", before.Name)
	assert.False(t, before.Deprecated())

	dep := statusAt(t, cs, "v1")
	assert.Equal(t, StatusDeprecation, dep.Kind)
	assert.Equal(t, "deprecatedBar", dep.Name)
	assert.Equal(t, "bar", dep.PreviousName)
	assert.Equal(t, "use baz instead", dep.Note)
	assert.True(t, dep.Deprecated())

	after := statusAt(t, cs, "v2")
	assert.Equal(t, StatusNoChange, after.Kind)
	assert.Equal(t, "deprecatedBar", after.Name)
	assert.True(t, after.PreviouslyDeprecated)
	assert.True(t, after.Deprecated())
	assert.Equal(t, "use baz instead", after.Note)
}

func TestProjectFullLifecycle(t *testing.T) {
	reg := testRegistry(t)
	item := Item{
		Name: "deprecatedBar", Type: "usize",
		Added:      &Added{Since: version.MustParse("v1alpha1")},
		Changes:    []Changed{{Since: version.MustParse("v1beta1"), FromName: "gau"}},
		Deprecated: &Deprecated{Since: version.MustParse("v1")},
	}

	cs, err := Project(item, reg)
	require.NoError(t, err)

	assert.Equal(t, "gau", statusAt(t, cs, "v1alpha1").Name)

	change := statusAt(t, cs, "v1beta1")
	assert.Equal(t, "gau", change.FromName)
	assert.Equal(t, "bar", change.Name)

	dep := statusAt(t, cs, "v1")
	assert.Equal(t, "bar", dep.PreviousName)
	assert.Equal(t, "deprecatedBar", dep.Name)

	assert.Equal(t, "deprecatedBar", statusAt(t, cs, "v2").Name)
}

func TestProjectTotality(t *testing.T) {
	reg := testRegistry(t)

	items := []Item{
		{Name: "plain", Type: "string"},
		{Name: "late", Type: "bool", Added: &Added{Since: version.MustParse("v2")}},
		{
			Name: "deprecatedFull", Type: "int64",
			Added:      &Added{Since: version.MustParse("v1alpha1")},
			Changes:    []Changed{{Since: version.MustParse("v1beta1"), FromName: "early", FromType: "int32"}},
			Deprecated: &Deprecated{Since: version.MustParse("v1")},
		},
	}

	changesets, err := ProjectAll(items, reg)
	require.NoError(t, err)

	// Exactly one status per (item, version) pair; no version unaccounted for.
	for _, cs := range changesets {
		for i := 0; i < reg.Len(); i++ {
			_, ok := cs.At(reg.At(i).Version)
			assert.True(t, ok, "item %s missing status at %s", cs.Item().Name, reg.At(i).Version)
		}
	}
}

func TestProjectUndeclaredVersion(t *testing.T) {
	reg := testRegistry(t)
	item := Item{
		Name: "bar", Type: "string",
		Added: &Added{Since: version.MustParse("v99")},
	}

	_, err := Project(item, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, vererrors.ErrActionVersionNotDeclared)
}
