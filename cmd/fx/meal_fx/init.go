package meal_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
)

var Module = fx.Provide(provideMealRepo, provideMealService)

func provideMealRepo(db *gorm.DB) repositories.MealRepository {
	return repositories.NewMealRepository(db)
}

func provideMealService(
	mealRepo repositories.MealRepository,
	productRepo repositories.ProductRepository,
	access services.AccessServiceInterface) services.MealServiceInterface {

	return services.NewMealService(mealRepo, productRepo, access)
}
