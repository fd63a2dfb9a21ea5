package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crdtools/crdtools/vererrors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"v1", Version{Major: 1}},
		{"v2", Version{Major: 2}},
		{"v1alpha1", Version{Major: 1, Level: LevelAlpha, LevelNumber: 1}},
		{"v1alpha12", Version{Major: 1, Level: LevelAlpha, LevelNumber: 12}},
		{"v1beta1", Version{Major: 1, Level: LevelBeta, LevelNumber: 1}},
		{"v10beta3", Version{Major: 10, Level: LevelBeta, LevelNumber: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing v prefix", "1beta1"},
		{"unknown level", "v1gamma12"},
		{"level without number", "v1alpha"},
		{"non-ascii", "v1betä1"},
		{"uppercase", "V1"},
		{"too long", "v1alpha" + string(make([]byte, 64))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, vererrors.ErrVersionParse)
		})
	}
}

func TestCompare(t *testing.T) {
	// Ascending order; every version must order strictly before each later one.
	ordered := []string{"v1alpha1", "v1alpha2", "v1beta1", "v1beta2", "v1", "v2alpha1", "v2beta1", "v2"}

	for i, a := range ordered {
		for j, b := range ordered {
			va, vb := MustParse(a), MustParse(b)
			switch {
			case i < j:
				assert.True(t, va.Less(vb), "%s should order before %s", a, b)
			case i > j:
				assert.True(t, vb.Less(va), "%s should order before %s", b, a)
			default:
				assert.True(t, va.Equal(vb))
				assert.Equal(t, 0, va.Compare(vb))
			}
		}
	}
}

func TestVersionAsMapKey(t *testing.T) {
	m := map[Version]string{
		MustParse("v1alpha1"): "a",
		MustParse("v1"):       "b",
	}
	assert.Equal(t, "a", m[MustParse("v1alpha1")])
	assert.Equal(t, "b", m[MustParse("v1")])
}

func TestVersionTextMarshalling(t *testing.T) {
	type doc struct {
		Version Version `json:"version"`
	}

	data, err := json.Marshal(doc{Version: MustParse("v1beta1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"v1beta1"}`, string(data))

	var decoded doc
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MustParse("v1beta1"), decoded.Version)

	assert.Error(t, json.Unmarshal([]byte(`{"version":"1.0"}`), &decoded))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-version") })
}
