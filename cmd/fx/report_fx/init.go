package report_fx

import (
	"go.uber.org/fx"

	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
)

var Module = fx.Provide(provideReportService)

func provideReportService(
	mealRepo repositories.MealRepository,
	access services.AccessServiceInterface) services.ReportServiceInterface {

	return services.NewReportService(mealRepo, access)
}
