//go:build integration

package service_test

import (
	"context"
	"testing"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"github.com/Eursukkul/hbnb-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPhoto_SecondPrimaryReplacesFirst(t *testing.T) {
	w := newWorld(t, 0)
	place := w.place(t, "Loft")
	ctx := context.Background()

	photos := service.NewPhotoService(
		repository.NewTransactor(w.db),
		repository.NewPlaceRepository(w.db),
		repository.NewPhotoRepository(w.db),
	)

	first, err := photos.AddPhoto(ctx, place.ID, w.owner.ID, service.PhotoInput{Filename: "a.jpg", URL: "/a.jpg", IsPrimary: true})
	require.NoError(t, err)
	second, err := photos.AddPhoto(ctx, place.ID, w.owner.ID, service.PhotoInput{Filename: "b.jpg", URL: "/b.jpg", IsPrimary: true})
	require.NoError(t, err)

	var primary []models.PlacePhoto
	require.NoError(t, w.db.Where("place_id = ? AND is_primary", place.ID).Find(&primary).Error)
	require.Len(t, primary, 1)
	assert.Equal(t, second.ID, primary[0].ID)

	makePrimary := true
	_, err = photos.UpdatePhoto(ctx, place.ID, first.ID, w.owner.ID, service.PhotoPatch{IsPrimary: &makePrimary})
	require.NoError(t, err)

	require.NoError(t, w.db.Where("place_id = ? AND is_primary", place.ID).Find(&primary).Error)
	require.Len(t, primary, 1)
	assert.Equal(t, first.ID, primary[0].ID)

	require.NoError(t, photos.DeletePhoto(ctx, place.ID, first.ID, w.owner.ID))
	var left int64
	require.NoError(t, w.db.Model(&models.PlacePhoto{}).Where("place_id = ?", place.ID).Count(&left).Error)
	assert.Equal(t, int64(1), left)
}

func TestPrimaryPhotoIndex_RejectsSecondPrimary(t *testing.T) {
	w := newWorld(t, 0)
	place := w.place(t, "Loft")

	require.NoError(t, w.db.Create(&models.PlacePhoto{PlaceID: place.ID, Filename: "a.jpg", URL: "/a.jpg", IsPrimary: true}).Error)
	err := w.db.Create(&models.PlacePhoto{PlaceID: place.ID, Filename: "b.jpg", URL: "/b.jpg", IsPrimary: true}).Error

	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}
