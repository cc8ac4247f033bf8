package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSetClause_SingleField(t *testing.T) {
	clause, args, err := buildSetClause(map[string]interface{}{"first_name": "Alice"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "first_name = $3", clause)
	assert.Equal(t, []interface{}{"Alice"}, args)
}

func TestBuildSetClause_MultipleFields_Sorted(t *testing.T) {
	updates := map[string]interface{}{
		"phone":      "+123456",
		"email":      "a@b.com",
		"first_name": "Alice",
	}
	clause, args, err := buildSetClause(updates, 1)
	require.NoError(t, err)

	// Keys sorted: email < first_name < phone
	assert.Equal(t, "email = $1, first_name = $2, phone = $3", clause)
	assert.Equal(t, []interface{}{"a@b.com", "Alice", "+123456"}, args)
}

func TestBuildSetClause_Deterministic(t *testing.T) {
	updates := map[string]interface{}{"a": 1, "b": 2, "c": 3}
	c1, _, err := buildSetClause(updates, 1)
	require.NoError(t, err)
	c2, _, err := buildSetClause(updates, 1)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestBuildSetClause_EmptyMap_ReturnsError(t *testing.T) {
	_, _, err := buildSetClause(map[string]interface{}{}, 1)
	assert.ErrorContains(t, err, "no fields to update")
}
