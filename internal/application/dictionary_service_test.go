package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/apperrors"
)

func newDictionaryService() (*DictionaryService, *memCarrierRepo) {
	carriers := &memCarrierRepo{byID: make(map[string]*domain.Carrier)}
	return NewDictionaryService(carriers, serviceTestLogger()), carriers
}

func TestSaveCarrier(t *testing.T) {
	t.Run("creates a carrier with defaults", func(t *testing.T) {
		svc, carriers := newDictionaryService()

		res, err := svc.SaveCarrier(context.Background(), CarrierSaveDto{Title: "Fast Freight", Email: "ops@fast.example"})

		require.NoError(t, err)
		require.False(t, res.IsError)
		require.NotNil(t, res.Carrier)
		assert.NotEmpty(t, res.Carrier.ID)
		assert.True(t, res.Carrier.IsActive, "new carriers start active")
		assert.NotNil(t, carriers.byID[res.Carrier.ID])
	})

	t.Run("requires a title", func(t *testing.T) {
		svc, carriers := newDictionaryService()

		res, err := svc.SaveCarrier(context.Background(), CarrierSaveDto{})

		require.NoError(t, err)
		require.True(t, res.IsError)
		fe, ok := res.Validation.Errors["title"]
		require.True(t, ok)
		assert.Equal(t, domain.ValueIsRequired, fe.ErrorType)
		assert.Empty(t, carriers.byID)
	})

	t.Run("updates an existing carrier", func(t *testing.T) {
		svc, carriers := newDictionaryService()
		carriers.byID["c1"] = &domain.Carrier{ID: "c1", Title: "Old name", IsActive: true}
		inactive := false

		res, err := svc.SaveCarrier(context.Background(), CarrierSaveDto{
			ID:       sPtr("c1"),
			Title:    "New name",
			IsActive: &inactive,
		})

		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Equal(t, "New name", carriers.byID["c1"].Title)
		assert.False(t, carriers.byID["c1"].IsActive)
	})

	t.Run("rejects an unknown id", func(t *testing.T) {
		svc, _ := newDictionaryService()

		_, err := svc.SaveCarrier(context.Background(), CarrierSaveDto{ID: sPtr("ghost"), Title: "Name"})

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	})
}

func TestDeleteCarrier(t *testing.T) {
	svc, carriers := newDictionaryService()
	carriers.byID["c1"] = &domain.Carrier{ID: "c1", Title: "Fast Freight", IsActive: true}

	require.NoError(t, svc.DeleteCarrier(context.Background(), "c1"))
	assert.Empty(t, carriers.byID)

	err := svc.DeleteCarrier(context.Background(), "c1")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}
