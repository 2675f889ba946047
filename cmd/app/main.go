package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"mealtrip/cmd/fx/account_fx"
	"mealtrip/cmd/fx/controllers_fx"
	"mealtrip/cmd/fx/db_fx"
	"mealtrip/cmd/fx/meal_fx"
	"mealtrip/cmd/fx/product_fx"
	"mealtrip/cmd/fx/report_fx"
	"mealtrip/cmd/fx/sharing_fx"
	"mealtrip/cmd/fx/trip_fx"
	"mealtrip/internal/api/controllers"
	"mealtrip/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		trip_fx.Module,
		product_fx.Module,
		meal_fx.Module,
		sharing_fx.Module,
		report_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	mealController *controllers.MealController,
	productController *controllers.ProductController,
	sharingController *controllers.SharingController,
	reportController *controllers.ReportController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, tripController, mealController,
		productController, sharingController, reportController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	mealController *controllers.MealController,
	productController *controllers.ProductController,
	sharingController *controllers.SharingController,
	reportController *controllers.ReportController) {

	accounts := r.Group("/accounts")
	accounts.POST("/signup", accountController.SignUp)
	accounts.POST("/login", accountController.Login)

	trips := r.Group("/trips")
	trips.Use(middleware.JWTAuthMiddleware())
	trips.GET("", tripController.ListTrips)
	trips.POST("", tripController.CreateTrip)
	trips.GET("/:tripId", tripController.GetTrip)
	trips.PUT("/:tripId", tripController.UpdateTrip)
	trips.DELETE("/:tripId", tripController.DeleteTrip)
	trips.POST("/:tripId/archive", tripController.ArchiveTrip)
	trips.POST("/:tripId/unarchive", tripController.UnarchiveTrip)

	trips.GET("/:tripId/meals/:day", mealController.ListDay)
	trips.POST("/:tripId/meals/:day", mealController.AddRecord)
	trips.DELETE("/:tripId/meals/:day/:recordId", mealController.RemoveRecord)
	trips.POST("/:tripId/cycle", mealController.CycleDays)

	trips.POST("/:tripId/share", sharingController.IssueLink)
	trips.DELETE("/:tripId/access", sharingController.ForgetTrip)

	trips.GET("/:tripId/reports/day/:day", reportController.DayReport)
	trips.GET("/:tripId/reports/shopping", reportController.ShoppingReport)
	trips.GET("/:tripId/reports/packing", reportController.PackingReport)

	share := r.Group("/share")
	share.Use(middleware.JWTAuthMiddleware())
	share.POST("/redeem/:token", sharingController.RedeemLink)

	products := r.Group("/products")
	products.Use(middleware.JWTAuthMiddleware())
	products.GET("", productController.ListProducts)
	products.POST("", productController.CreateProduct)
	products.PUT("/:productId", productController.UpdateProduct)
	products.POST("/:productId/archive", productController.ArchiveProduct)
	products.POST("/:productId/unarchive", productController.UnarchiveProduct)
}
