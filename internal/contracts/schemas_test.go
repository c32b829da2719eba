package contracts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"events/favorite-added/v1.json", "FavoriteAddedEvent/1.0.0"},
		{"events/favorite-removed/v2.json", "FavoriteRemovedEvent/2.0.0"},
		{"events/listing/v10.json", "ListingEvent/10.0.0"},
		{"events/favorite-added.json", ""},
		{"events/a/b/v1.json", ""},
		{"events/favorite-added/latest.json", ""},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, generateKeyFromPath("events", tc.path))
		})
	}
}

func TestDefaultRegistry_EmbeddedSchemas(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"FavoriteAddedEvent/1.0.0", "FavoriteRemovedEvent/1.0.0"}, r.Keys())
}

func TestValidateEvent(t *testing.T) {
	valid := []byte(`{
		"event_id": "1b4e28ba-2fa1-41d2-883f-0016d3cca427",
		"user_id": "6f1d2c3b-8a9e-4f70-b1c2-d3e4f5a6b702",
		"listing_id": "a1000000-0000-4000-8000-000000000001",
		"occurred_at": "2026-05-01T10:00:00Z"
	}`)
	assert.NoError(t, ValidateEvent("FavoriteAddedEvent", "1.0.0", valid))
	assert.NoError(t, ValidateEvent("FavoriteRemovedEvent", "1.0.0", valid))

	missingListing := []byte(`{"event_id": "1b4e28ba-2fa1-41d2-883f-0016d3cca427", "user_id": "6f1d2c3b-8a9e-4f70-b1c2-d3e4f5a6b702", "occurred_at": "2026-05-01T10:00:00Z"}`)
	assert.Error(t, ValidateEvent("FavoriteAddedEvent", "1.0.0", missingListing))

	badUUID := []byte(`{"event_id": "x", "user_id": "6f1d2c3b-8a9e-4f70-b1c2-d3e4f5a6b702", "listing_id": "a1000000-0000-4000-8000-000000000001", "occurred_at": "2026-05-01T10:00:00Z"}`)
	assert.Error(t, ValidateEvent("FavoriteAddedEvent", "1.0.0", badUUID))

	assert.Error(t, ValidateEvent("FavoriteAddedEvent", "2.0.0", valid))
	assert.Error(t, ValidateEvent("FavoriteAddedEvent", "1.0.0", []byte("not json")))
}

func TestNewRegistry_BrokenSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"events/broken/v1.json": {Data: []byte(`{"type": 42}`)},
	}
	_, err := NewRegistry(fsys, "events")
	assert.Error(t, err)
}
