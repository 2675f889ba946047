package controllers_fx

import (
	"go.uber.org/fx"

	"mealtrip/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewMealController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewSharingController),
	fx.Provide(controllers.NewReportController))
