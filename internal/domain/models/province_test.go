package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvinces_RegistryComplete(t *testing.T) {
	provinces := Provinces()
	require.Len(t, provinces, 29)

	names := make(map[string]bool, len(provinces))
	codes := make(map[string]bool, len(provinces))
	gfwIDs := make(map[string]bool, len(provinces))
	for _, p := range provinces {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.AdminCode)
		assert.NotEmpty(t, p.GFWAdminID)

		assert.False(t, names[p.Name], "duplicate name %q", p.Name)
		assert.False(t, codes[p.AdminCode], "duplicate admin code %q", p.AdminCode)
		assert.False(t, gfwIDs[p.GFWAdminID], "duplicate gfw id %q", p.GFWAdminID)
		names[p.Name] = true
		codes[p.AdminCode] = true
		gfwIDs[p.GFWAdminID] = true
	}
}

func TestProvinces_StableOrder(t *testing.T) {
	first := Provinces()
	second := Provinces()
	assert.Equal(t, first, second)

	assert.Equal(t, "Kinshasa", first[0].Name)
	assert.Equal(t, "Tshuapa", first[len(first)-1].Name)
}

func TestProvinces_ReturnsCopy(t *testing.T) {
	provinces := Provinces()
	provinces[0].Name = "mutated"

	fresh := Provinces()
	assert.Equal(t, "Kinshasa", fresh[0].Name)
}

func TestLookupProvince(t *testing.T) {
	t.Run("known province", func(t *testing.T) {
		p, err := LookupProvince("Équateur")
		require.NoError(t, err)
		assert.Equal(t, "CD-EQ", p.AdminCode)
		assert.Equal(t, "CD.4", p.GFWAdminID)
	})

	t.Run("unknown province", func(t *testing.T) {
		_, err := LookupProvince("Atlantis")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownProvince)
		assert.Contains(t, err.Error(), "Atlantis")
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		_, err := LookupProvince("kinshasa")
		assert.ErrorIs(t, err, ErrUnknownProvince)
	})
}
