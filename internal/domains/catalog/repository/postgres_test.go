package repository

import (
	"testing"

	"library-backend/internal/domains/catalog/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery_NoFilter(t *testing.T) {
	query, args, err := BuildSearchQuery("", model.AvailabilityAll)

	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, `FROM "books"`)
	assert.Contains(t, query, `ORDER BY "position" ASC`)
	assert.Empty(t, args)
}

func TestBuildSearchQuery_TermMatchesAllColumns(t *testing.T) {
	query, args, err := BuildSearchQuery("clean", model.AvailabilityAll)

	require.NoError(t, err)
	assert.Contains(t, query, `"title" ILIKE`)
	assert.Contains(t, query, `"author" ILIKE`)
	assert.Contains(t, query, `"isbn" LIKE`)
	assert.Contains(t, query, `"shelf_location" ILIKE`)
	assert.Contains(t, query, " OR ")
	require.Len(t, args, 4)
	for _, a := range args {
		assert.Equal(t, "%clean%", a)
	}
}

func TestBuildSearchQuery_EscapesLikeWildcards(t *testing.T) {
	_, args, err := BuildSearchQuery(`50%_off\`, model.AvailabilityAll)

	require.NoError(t, err)
	require.NotEmpty(t, args)
	assert.Equal(t, `%50\%\_off\\%`, args[0])
}

func TestBuildSearchQuery_Availability(t *testing.T) {
	query, _, err := BuildSearchQuery("", model.AvailabilityAvailable)
	require.NoError(t, err)
	assert.Contains(t, query, `"available_copies" >`)

	query, _, err = BuildSearchQuery("", model.AvailabilityUnavailable)
	require.NoError(t, err)
	assert.Contains(t, query, `"available_copies" =`)
}

func TestBuildSearchQuery_InvalidAvailability(t *testing.T) {
	_, _, err := BuildSearchQuery("", model.Availability("borrowed"))

	assert.ErrorIs(t, err, model.ErrInvalidAvailability)
}
