package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	for _, id := range IDs {
		text, err := catalog.Generate(Selection{ID: id, Owner: "Octo Cat", Year: 2026})
		require.NoError(t, err, id)

		if id != "Unlicense" {
			assert.Contains(t, text, "2026", id)
			assert.Contains(t, text, "Octo Cat", id)
		}

		assert.NotContains(t, text, "{%", id)
	}
}

func TestGenerateMIT(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	text, err := catalog.Generate(Selection{ID: "mit", Owner: " Octo Cat ", Year: 2026})
	require.NoError(t, err)

	assert.Contains(t, text, "Copyright (c) 2026 Octo Cat\n")
}

func TestGenerateErrors(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	_, err = catalog.Generate(Selection{ID: "WTFPL", Owner: "x", Year: 2026})
	assert.ErrorIs(t, err, ErrUnknownLicense)

	_, err = catalog.Generate(Selection{ID: "MIT", Year: 2026})
	assert.ErrorIs(t, err, ErrMissingOwner)

	_, err = catalog.Generate(Selection{ID: Unlicensed})
	assert.ErrorIs(t, err, ErrUnknownLicense)
}

func TestSelectionValidate(t *testing.T) {
	assert.NoError(t, Selection{ID: Unlicensed}.Validate())
	assert.NoError(t, Selection{}.Validate())
	assert.ErrorIs(t, Selection{ID: "MIT"}.Validate(), ErrMissingOwner)
	assert.NoError(t, Selection{ID: "Apache-2.0", Owner: "x"}.Validate())
}

func TestCanonical(t *testing.T) {
	id, err := Canonical("apache-2.0")
	require.NoError(t, err)
	assert.Equal(t, "Apache-2.0", id)

	id, err = Canonical("unlicensed")
	require.NoError(t, err)
	assert.Equal(t, Unlicensed, id)

	_, err = Canonical("GPL")
	assert.ErrorIs(t, err, ErrUnknownLicense)
}

func TestChoicesDoesNotAlias(t *testing.T) {
	choices := Choices()
	choices[0] = "changed"

	assert.Equal(t, "MIT", IDs[0])
	assert.Equal(t, Unlicensed, choices[len(choices)-1])
}
