package sharing_fx

import (
	"go.uber.org/fx"

	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
)

var Module = fx.Provide(provideSharingService)

func provideSharingService(
	tripRepo repositories.TripRepository,
	accessRepo repositories.AccessRepository) services.SharingServiceInterface {

	return services.NewSharingService(tripRepo, accessRepo)
}
