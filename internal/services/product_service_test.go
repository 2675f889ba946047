package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

func TestProductArchivalVisibility(t *testing.T) {
	store := repositories.NewMemoryStore()
	products := services.NewProductService(store)
	user := services.Principal{UserID: uuid.New()}
	admin := services.Principal{UserID: uuid.New(), IsAdmin: true}

	created, err := products.CreateProduct(context.Background(), request_models.ProductRequest{
		Name: "Buckwheat", Calories: 362, Proteins: 12, Fats: 2.5, Carbs: 72,
	})
	require.NoError(t, err)
	productID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	// Only admins archive.
	assert.ErrorIs(t, products.SetArchived(context.Background(), productID, user, true), utils.ErrForbidden)
	require.NoError(t, products.SetArchived(context.Background(), productID, admin, true))

	visible, err := products.ListProducts(context.Background(), user, false)
	require.NoError(t, err)
	assert.Empty(t, visible, "archived products are hidden from the default listing")

	// Non-admins asking for everything still see the filtered list.
	visible, err = products.ListProducts(context.Background(), user, true)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := products.ListProducts(context.Background(), admin, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Archived)
}

func TestProductValidation(t *testing.T) {
	store := repositories.NewMemoryStore()
	products := services.NewProductService(store)

	_, err := products.CreateProduct(context.Background(), request_models.ProductRequest{
		Name: "Bad", Calories: -1,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	zero := 0.0
	_, err = products.CreateProduct(context.Background(), request_models.ProductRequest{
		Name: "Bad pieces", GramsPerPiece: &zero,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = products.UpdateProduct(context.Background(), uuid.New(), request_models.ProductRequest{
		Name: "Ghost",
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}
