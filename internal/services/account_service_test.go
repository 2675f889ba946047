package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

func TestSignUpAndLogin(t *testing.T) {
	store := repositories.NewMemoryStore()
	accounts := services.NewAccountService(store)

	created, err := accounts.CreateAccount(context.Background(), request_models.SignUpRequest{
		DisplayName: "Ann",
		Email:       "ann@example.com",
		Password:    "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.Empty(t, created.Token)

	// Duplicate email is rejected.
	_, err = accounts.CreateAccount(context.Background(), request_models.SignUpRequest{
		DisplayName: "Ann again",
		Email:       "ann@example.com",
		Password:    "whatever else",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	logged, err := accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ann@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	_, err = accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "ann@example.com",
		Password: "wrong horse",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = accounts.Login(context.Background(), request_models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
