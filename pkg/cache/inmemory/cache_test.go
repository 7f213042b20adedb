package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tables struct {
	Entries map[string]string `json:"entries"`
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()

	var missing tables
	ok, err := c.Get(ctx, "tables", &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	stored := tables{Entries: map[string]string{"A|B": "desc"}}
	require.NoError(t, c.Set(ctx, "tables", stored))

	var loaded tables
	ok, err = c.Get(ctx, "tables", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stored, loaded)
}

func TestSetOverwrites(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", tables{Entries: map[string]string{"old": ""}}))
	require.NoError(t, c.Set(ctx, "k", tables{Entries: map[string]string{"new": ""}}))

	var loaded tables
	ok, err := c.Get(ctx, "k", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, loaded.Entries, "new")
	assert.NotContains(t, loaded.Entries, "old")
}
