package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(order int, primary bool) ListingImage {
	return ListingImage{ID: uuid.New(), URL: "https://cdn.example.org/" + uuid.NewString(), OrderIndex: order, IsPrimary: primary}
}

func TestSortImages(t *testing.T) {
	images := []ListingImage{image(3, false), image(1, false), image(2, true)}
	SortImages(images)

	assert.Equal(t, 1, images[0].OrderIndex)
	assert.Equal(t, 2, images[1].OrderIndex)
	assert.Equal(t, 3, images[2].OrderIndex)
}

func TestSelectPrimaryImage(t *testing.T) {
	t.Run("no images", func(t *testing.T) {
		assert.Nil(t, SelectPrimaryImage(nil))
	})

	t.Run("single flagged image", func(t *testing.T) {
		images := []ListingImage{image(0, false), image(1, true), image(2, false)}
		primary := SelectPrimaryImage(images)
		require.NotNil(t, primary)
		assert.Equal(t, images[1].ID, primary.ID)
	})

	t.Run("several flagged images pick lowest order", func(t *testing.T) {
		images := []ListingImage{image(0, false), image(4, true), image(2, true)}
		SortImages(images)
		primary := SelectPrimaryImage(images)
		require.NotNil(t, primary)
		assert.Equal(t, 2, primary.OrderIndex)
		assert.True(t, images[2].IsPrimary, "stored flags stay untouched")
	})

	t.Run("nothing flagged falls back to first", func(t *testing.T) {
		images := []ListingImage{image(5, false), image(3, false)}
		SortImages(images)
		primary := SelectPrimaryImage(images)
		require.NotNil(t, primary)
		assert.Equal(t, 3, primary.OrderIndex)
		assert.False(t, primary.IsPrimary)
	})
}
