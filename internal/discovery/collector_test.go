package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapecheck/internal/harness"
)

func newCollector(strict bool) *Collector {
	return NewCollector(harness.NewRegistry(), harness.NewFixtures(), strict, nil)
}

func TestCollector_ExpandsParameters(t *testing.T) {
	s := harness.Suite{
		Name: "demo",
		Cases: []harness.Case{
			{Module: "test_square", Name: "test_area", Params: harness.Parametrize("side, area", []any{4, 16}, []any{5, 25})},
			{Module: "test_square", Name: "test_plain"},
		},
	}

	collection, err := newCollector(false).Collect(s)
	require.NoError(t, err)

	ids := make([]string, len(collection.Tests))
	for i, tc := range collection.Tests {
		ids[i] = tc.ID
	}
	assert.Equal(t, []string{
		"test_square::test_area[4-16]",
		"test_square::test_area[5-25]",
		"test_square::test_plain",
	}, ids)

	v, ok := collection.Tests[1].Params.Get("area")
	require.True(t, ok)
	assert.Equal(t, 25, v)
	assert.True(t, collection.Tests[0].HasMarker("parametrize"))
	assert.Empty(t, collection.Warnings)
}

func TestCollector_RegistersMarkersAndFixtures(t *testing.T) {
	registry := harness.NewRegistry()
	fixtures := harness.NewFixtures()
	s := harness.Suite{
		Name:    "demo",
		Markers: []string{"slow: marks tests as slow"},
		Fixtures: []harness.Fixture{{
			Name:  "thing",
			Setup: func(context.Context) (any, error) { return 1, nil },
		}},
		Cases: []harness.Case{{Module: "m", Name: "test_slow", Markers: []string{"slow"}}},
	}

	collection, err := NewCollector(registry, fixtures, true, nil).Collect(s)
	require.NoError(t, err)
	assert.Len(t, collection.Tests, 1)
	assert.True(t, fixtures.Has("thing"))
	_, ok := registry.Lookup("slow")
	assert.True(t, ok)
}

func TestCollector_UnknownMarkers(t *testing.T) {
	s := harness.Suite{
		Name:  "demo",
		Cases: []harness.Case{{Module: "m", Name: "test_typo", Markers: []string{"slwo"}}},
	}

	t.Run("warning by default", func(t *testing.T) {
		collection, err := newCollector(false).Collect(s)
		require.NoError(t, err)
		require.Len(t, collection.Warnings, 1)
		assert.Equal(t, "m::test_typo", collection.Warnings[0].TestID)
		assert.Contains(t, collection.Warnings[0].String(), `unknown marker "slwo"`)
		assert.Len(t, collection.Tests, 1, "the test is still collected")
	})

	t.Run("error when strict", func(t *testing.T) {
		_, err := newCollector(true).Collect(s)
		assert.ErrorIs(t, err, ErrUnknownMarker)
	})
}

func TestCollector_Errors(t *testing.T) {
	t.Run("bad parameter row", func(t *testing.T) {
		s := harness.Suite{Cases: []harness.Case{{Module: "m", Name: "t", Params: harness.Parametrize("a, b", []any{1})}}}
		_, err := newCollector(false).Collect(s)
		assert.ErrorIs(t, err, harness.ErrParamArity)
	})

	t.Run("bad marker line", func(t *testing.T) {
		s := harness.Suite{Markers: []string{"not valid: x"}}
		_, err := newCollector(false).Collect(s)
		assert.ErrorIs(t, err, harness.ErrInvalidMarker)
	})

	t.Run("duplicate fixture across suites", func(t *testing.T) {
		f := harness.Fixture{Name: "x", Setup: func(context.Context) (any, error) { return nil, nil }}
		a := harness.Suite{Name: "a", Fixtures: []harness.Fixture{f}}
		b := harness.Suite{Name: "b", Fixtures: []harness.Fixture{f}}
		_, err := newCollector(false).Collect(a, b)
		assert.ErrorIs(t, err, harness.ErrDuplicateFixture)
	})
}

func TestTestID(t *testing.T) {
	assert.Equal(t, "m::n", TestID("m", "n"))
	assert.Equal(t, "n", TestID("", "n"))
}
