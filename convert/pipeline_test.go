package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

var (
	v1alpha1 = version.MustParse("v1alpha1")
	v1beta1  = version.MustParse("v1beta1")
	v1       = version.MustParse("v1")
)

func threeVersionRegistry(t *testing.T) *version.Registry {
	t.Helper()
	reg, err := version.Register([]version.Definition{
		{Version: v1alpha1},
		{Version: v1beta1},
		{Version: v1},
	})
	require.NoError(t, err)
	return reg
}

func TestPipelineDefaultSynthesis(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{Name: "foo", Type: "string"},
		{
			Name:  "bar",
			Type:  "usize",
			Added: &schema.Added{Since: v1beta1, Default: func() any { return uint64(42) }},
		},
	}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	t.Run("synthesizes the default when upgrading past the addition", func(t *testing.T) {
		out, err := p.Convert(map[string]any{"foo": "x"}, v1alpha1, v1)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"foo": "x", "bar": uint64(42)}, out)
	})

	t.Run("keeps an existing value", func(t *testing.T) {
		out, err := p.Convert(map[string]any{"foo": "x", "bar": uint64(7)}, v1beta1, v1)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"foo": "x", "bar": uint64(7)}, out)
	})

	t.Run("zero value without a provider", func(t *testing.T) {
		items := []schema.Item{
			{Name: "bar", Type: "usize", Added: &schema.Added{Since: v1beta1}},
		}
		p, err := NewPipeline(reg, items)
		require.NoError(t, err)
		out, err := p.Convert(map[string]any{}, v1alpha1, v1beta1)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"bar": uint64(0)}, out)
	})
}

func TestPipelineRenameWithWidening(t *testing.T) {
	reg := version.MustRegister([]version.Definition{
		{Version: v1alpha1},
		{Version: v1beta1},
	})
	items := []schema.Item{
		{
			Name:    "bar",
			Type:    "usize",
			Changes: []schema.Changed{{Since: v1beta1, FromName: "prevBar", FromType: "u16"}},
		},
	}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	out, err := p.Convert(map[string]any{"prevBar": float64(5)}, v1alpha1, v1beta1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"bar": uint64(5)}, out)
}

func TestPipelineIdentity(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{{Name: "foo", Type: "string"}}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	obj := map[string]any{"foo": "x", "extra": float64(3)}
	out, err := p.Convert(obj, v1beta1, v1beta1)
	require.NoError(t, err)
	assert.Equal(t, obj, out)
}

func TestPipelineUpgradeComposition(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{Name: "foo", Type: "string"},
		{
			Name:    "count",
			Type:    "u64",
			Changes: []schema.Changed{{Since: v1beta1, FromName: "numItems", FromType: "u16"}},
		},
		{Name: "bar", Type: "string", Added: &schema.Added{Since: v1}},
	}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	src := map[string]any{"foo": "x", "numItems": float64(9)}

	direct, err := p.Convert(src, v1alpha1, v1)
	require.NoError(t, err)

	mid, err := p.Convert(src, v1alpha1, v1beta1)
	require.NoError(t, err)
	stepped, err := p.Convert(mid, v1beta1, v1)
	require.NoError(t, err)

	assert.Equal(t, stepped, direct)
	assert.Equal(t, map[string]any{"foo": "x", "count": uint64(9), "bar": ""}, direct)
}

func TestPipelineDeprecationRename(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{
			Name:       "deprecatedBar",
			Type:       "string",
			Deprecated: &schema.Deprecated{Since: v1, Note: "use baz"},
		},
	}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	out, err := p.Convert(map[string]any{"bar": "hello"}, v1beta1, v1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"deprecatedBar": "hello"}, out)
}

func TestPipelineRemovedItemDropped(t *testing.T) {
	reg := threeVersionRegistry(t)
	// No lifecycle action can remove an item entirely, but an item added at
	// the latest version is absent in earlier shapes; downgrading drops it.
	items := []schema.Item{
		{Name: "foo", Type: "string"},
		{Name: "bar", Type: "string", Added: &schema.Added{Since: v1}},
	}
	changesets, err := schema.ProjectAll(items, reg)
	require.NoError(t, err)
	down, err := GenerateDowngrade(changesets, v1, v1beta1)
	require.NoError(t, err)

	p, err := NewPipeline(reg, items, WithDowngradeStep(down))
	require.NoError(t, err)

	out, err := p.Convert(map[string]any{"foo": "x", "bar": "y"}, v1, v1beta1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "x"}, out)
}

func TestPipelineMissingDowngradeStep(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{{Name: "foo", Type: "string"}}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	_, err = p.Convert(map[string]any{"foo": "x"}, v1, v1alpha1)
	require.Error(t, err)
	assert.ErrorIs(t, err, vererrors.ErrNoDowngradePath)

	var convErr *vererrors.ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "v1", convErr.StepFrom)
	assert.Equal(t, "v1beta1", convErr.StepTo)
}

func TestPipelineEagerDowngradeCheck(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{{Name: "foo", Type: "string"}}

	t.Run("fails at construction when a hop is missing", func(t *testing.T) {
		_, err := NewPipeline(reg, items, WithEagerDowngradeCheck())
		require.Error(t, err)
		assert.ErrorIs(t, err, vererrors.ErrNoDowngradePath)
	})

	t.Run("passes when every hop is registered", func(t *testing.T) {
		changesets, err := schema.ProjectAll(items, reg)
		require.NoError(t, err)
		downBeta, err := GenerateDowngrade(changesets, v1, v1beta1)
		require.NoError(t, err)
		downAlpha, err := GenerateDowngrade(changesets, v1beta1, v1alpha1)
		require.NoError(t, err)

		_, err = NewPipeline(reg, items,
			WithEagerDowngradeCheck(),
			WithDowngradeStep(downBeta),
			WithDowngradeStep(downAlpha),
		)
		require.NoError(t, err)
	})
}

func TestPipelineUnsupportedUpgrade(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{{Name: "foo", Type: "string"}}

	t.Run("suppressed hop fails at conversion time", func(t *testing.T) {
		p, err := NewPipeline(reg, items, WithUnsupportedUpgrade(v1))
		require.NoError(t, err)

		_, err = p.Convert(map[string]any{"foo": "x"}, v1alpha1, v1)
		require.Error(t, err)
		assert.ErrorIs(t, err, vererrors.ErrNoUpgradePath)

		// Hops before the suppressed one still work.
		out, err := p.Convert(map[string]any{"foo": "x"}, v1alpha1, v1beta1)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"foo": "x"}, out)
	})

	t.Run("hand-written step fills the gap", func(t *testing.T) {
		step := NewStep(v1beta1, v1, func(obj map[string]any) (map[string]any, error) {
			out := map[string]any{"renamedFoo": obj["foo"]}
			return out, nil
		})
		p, err := NewPipeline(reg, items, WithUnsupportedUpgrade(v1), WithUpgradeStep(step))
		require.NoError(t, err)

		out, err := p.Convert(map[string]any{"foo": "x"}, v1alpha1, v1)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"renamedFoo": "x"}, out)
	})
}

func TestPipelineInvalidItemsAccumulate(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{
			Name:       "foo",
			Type:       "string",
			Added:      &schema.Added{Since: v1beta1},
			Deprecated: &schema.Deprecated{Since: v1beta1},
		},
		{
			Name:    "bar",
			Type:    "string",
			Changes: []schema.Changed{{Since: v1beta1, UpgradeFunc: func(v any) (any, error) { return v, nil }}},
		},
	}
	_, err := NewPipeline(reg, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, vererrors.ErrConflictingActions)
	assert.ErrorIs(t, err, vererrors.ErrMisplacedConversionHook)
}

func TestPipelineUnconvertibleTypeChange(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{
			Name:    "bar",
			Type:    "string",
			Changes: []schema.Changed{{Since: v1beta1, FromType: "u16"}},
		},
	}
	_, err := NewPipeline(reg, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, vererrors.ErrUnconvertibleTypeChange)

	var genErr *vererrors.GenerateError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "bar", genErr.Item)
	assert.Equal(t, "u16", genErr.FromType)
	assert.Equal(t, "string", genErr.ToType)
}

func TestPipelineUpgradeHook(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{
			Name: "size",
			Type: "string",
			Changes: []schema.Changed{{
				Since:    v1beta1,
				FromType: "u16",
				UpgradeFunc: func(v any) (any, error) {
					if v == float64(0) {
						return "empty", nil
					}
					return "sized", nil
				},
			}},
		},
	}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	out, err := p.Convert(map[string]any{"size": float64(0)}, v1alpha1, v1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"size": "empty"}, out)
}

func TestPipelineShapes(t *testing.T) {
	reg := threeVersionRegistry(t)
	items := []schema.Item{
		{Name: "foo", Type: "string"},
		{Name: "bar", Type: "usize", Added: &schema.Added{Since: v1beta1}},
	}
	p, err := NewPipeline(reg, items)
	require.NoError(t, err)

	alpha, ok := p.Shape(v1alpha1)
	require.True(t, ok)
	_, present := alpha.Item("bar")
	assert.False(t, present)

	beta, ok := p.Shape(v1beta1)
	require.True(t, ok)
	barItem, present := beta.Item("bar")
	require.True(t, present)
	assert.Equal(t, schema.Type("usize"), barItem.Type)

	shapes := p.Shapes()
	require.Len(t, shapes, 3)
	assert.Equal(t, v1alpha1, shapes[0].Version)
	assert.Equal(t, v1, shapes[2].Version)
}
