package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
)

var Module = fx.Provide(provideTripRepo, provideAccessRepo, provideAccessService, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideAccessRepo(db *gorm.DB) repositories.AccessRepository {
	return repositories.NewAccessRepository(db)
}

func provideAccessService(tripRepo repositories.TripRepository, accessRepo repositories.AccessRepository) services.AccessServiceInterface {
	return services.NewAccessService(tripRepo, accessRepo)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	accessRepo repositories.AccessRepository,
	access services.AccessServiceInterface) services.TripServiceInterface {

	return services.NewTripService(tripRepo, accessRepo, access)
}
