package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueID_AppendAndString(t *testing.T) {
	root := RootID()
	spec := root.Append("specification", "bank.Spec")
	feature := spec.Append("feature", "Deposits")

	assert.Equal(t, "[engine:khaos]", root.String())
	assert.Equal(t, "[engine:khaos]/[specification:bank.Spec]", spec.String())
	assert.Equal(t, "[engine:khaos]/[specification:bank.Spec]/[feature:Deposits]", feature.String())
	assert.Equal(t, Segment{Type: "feature", Value: "Deposits"}, feature.Last())
}

func TestUniqueID_AppendDoesNotAlias(t *testing.T) {
	spec := RootID().Append("specification", "s")
	a := spec.Append("feature", "a")
	b := spec.Append("feature", "b")

	assert.Equal(t, "a", a.Last().Value)
	assert.Equal(t, "b", b.Last().Value)
	assert.Len(t, spec.Segments(), 2)
}

func TestUniqueID_HasPrefixAndEqual(t *testing.T) {
	spec := RootID().Append("specification", "s")
	feature := spec.Append("feature", "f")
	other := RootID().Append("specification", "t")

	assert.True(t, feature.HasPrefix(spec))
	assert.True(t, feature.HasPrefix(feature))
	assert.False(t, spec.HasPrefix(feature))
	assert.False(t, feature.HasPrefix(other))
	assert.True(t, spec.Equal(RootID().Append("specification", "s")))
	assert.False(t, spec.Equal(other))
}

func TestParseUniqueID(t *testing.T) {
	want := RootID().Append("specification", "bank.Spec").Append("scenario", "deposit: cash [x]")

	got, err := ParseUniqueID(want.String())
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestUniqueID_EscapesDelimiters(t *testing.T) {
	feature := RootID().Append("specification", "example.com/bank.Spec").Append("feature", "Paths")
	tests := []struct {
		value   string
		encoded string
	}{
		{"paths [a]/[b] resolve", "[scenario:paths %5Ba%5D%2F%5Bb%5D resolve]"},
		{"ratio: 50%", "[scenario:ratio%3A 50%25]"},
		{"%5B", "[scenario:%255B]"},
		{"plain", "[scenario:plain]"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			id := feature.Append("scenario", tt.value)
			assert.Equal(t, tt.encoded, id.Last().String())

			got, err := ParseUniqueID(id.String())
			require.NoError(t, err)
			assert.True(t, id.Equal(got), got.String())
			assert.Equal(t, tt.value, got.Last().Value)
		})
	}

	assert.Equal(t, "[engine:khaos]/[specification:example.com%2Fbank.Spec]/[feature:Paths]", feature.String())
}

func TestUniqueID_DistinctValuesDistinctStrings(t *testing.T) {
	spec := RootID().Append("specification", "s")
	a := spec.Append("feature", "a]/[scenario:b")
	b := spec.Append("feature", "a").Append("scenario", "b")

	assert.NotEqual(t, a.String(), b.String())
}

func TestParseUniqueID_Invalid(t *testing.T) {
	tests := []string{
		"",
		"engine:khaos",
		"[engine:khaos",
		"[specification:x]",
		"[engine:khaos]/[nocolon]",
		"[engine:khaos]//[feature:f]",
		"[engine:khaos]/[feature:bad%zz]",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := ParseUniqueID(in)
			assert.Error(t, err)
		})
	}
}

func TestUniqueID_MarshalText(t *testing.T) {
	text, err := RootID().MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[engine:khaos]", string(text))
}
