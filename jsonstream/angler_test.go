package jsonstream

import (
	"context"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Zip(first []string, second []any) iter.Seq2[string, any] {
	n := min(len(first), len(second))

	return func(yield func(string, any) bool) {
		for i := range n {
			if !yield(first[i], second[i]) {
				return
			}
		}
	}
}

func TestLand(t *testing.T) {
	var tests = []struct {
		contents string
		paths    []string
		expected []any
	}{
		{
			contents: `
			{
				"a": 1,
				"b": [1, 2, 3],
				"c": null,
				"d": {
					"e": "target"
				},
				"f": "x"
			}
			`,
			paths: []string{
				".d.e",
				".f",
				".a",
			},
			expected: []any{
				"target",
				"x",
				float64(1),
			},
		},
		{
			contents: `
			{
				"name": "demo",
				"scripts": {"name": "not this one"},
				"repository": {
					"type": "git",
					"url": "https://github.com/octo/demo.git"
				}
			}
			`,
			paths: []string{
				".name",
				".repository.url",
				".scripts.name",
			},
			expected: []any{
				"demo",
				"https://github.com/octo/demo.git",
				"not this one",
			},
		},
		{
			contents: `
			{
				"a": {"b": {}},
				"b": [{"c": 1}, []],
				"c": "y"
			}
			`,
			paths: []string{
				".c",
			},
			expected: []any{
				"y",
			},
		},
	}

	for _, test := range tests {
		for path, expected := range Zip(test.paths, test.expected) {
			angler, err := NewAngler(strings.NewReader(test.contents), path)
			require.NoError(t, err)

			value, err := angler.Land(context.Background())
			require.NoError(t, err, path)

			assert.Equal(t, expected, value, path)
		}
	}
}

func TestLandMissingKey(t *testing.T) {
	angler, err := NewAngler(strings.NewReader(`{"a": {"name": 1}, "b": 2}`), ".name")
	require.NoError(t, err)

	_, err = angler.Land(context.Background())
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestLandString(t *testing.T) {
	angler, err := NewAngler(strings.NewReader(`{"version": 1}`), ".version")
	require.NoError(t, err)

	_, err = angler.LandString(context.Background())
	assert.Error(t, err)
}

func TestNewAnglerBadPath(t *testing.T) {
	for _, path := range []string{"name", ".name."} {
		_, err := NewAngler(strings.NewReader(`{}`), path)
		assert.Error(t, err, path)
	}
}
