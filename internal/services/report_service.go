package services

import (
	"context"

	"github.com/google/uuid"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/models/response_models"
	"mealtrip/internal/repositories"
	"mealtrip/pkg/utils"
)

type ReportServiceInterface interface {
	DayReport(ctx context.Context, tripID uuid.UUID, p Principal, dayNumber int) (*response_models.DayReport, error)
	ShoppingReport(ctx context.Context, tripID uuid.UUID, p Principal) (*response_models.ShoppingReport, error)
	PackingReport(ctx context.Context, tripID uuid.UUID, p Principal) (*response_models.PackingReport, error)
}

type ReportService struct {
	mealRepo repositories.MealRepository
	access   AccessServiceInterface
}

func NewReportService(mealRepo repositories.MealRepository, access AccessServiceInterface) ReportServiceInterface {
	return &ReportService{
		mealRepo: mealRepo,
		access:   access,
	}
}

func (r *ReportService) DayReport(ctx context.Context, tripID uuid.UUID, p Principal, dayNumber int) (*response_models.DayReport, error) {
	trip, err := r.access.Authorize(ctx, tripID, p, dbm.AccessRead)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 || dayNumber > trip.DayCount() {
		return nil, utils.ErrDayOutOfRange
	}

	records, err := r.mealRepo.ListByDay(ctx, tripID, dayNumber)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return BuildDayReport(dayNumber, records), nil
}

func (r *ReportService) ShoppingReport(ctx context.Context, tripID uuid.UUID, p Principal) (*response_models.ShoppingReport, error) {
	trip, err := r.access.Authorize(ctx, tripID, p, dbm.AccessRead)
	if err != nil {
		return nil, err
	}

	records, err := r.mealRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return BuildShoppingReport(records, dbm.Headcount(trip.Groups)), nil
}

func (r *ReportService) PackingReport(ctx context.Context, tripID uuid.UUID, p Principal) (*response_models.PackingReport, error) {
	trip, err := r.access.Authorize(ctx, tripID, p, dbm.AccessRead)
	if err != nil {
		return nil, err
	}

	records, err := r.mealRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return BuildPackingReport(records, trip.Groups), nil
}

func scaleNutrients(product *dbm.Product, mass float64) response_models.NutritionTotals {
	factor := mass / 100.0
	return response_models.NutritionTotals{
		Mass:     mass,
		Calories: product.Calories * factor,
		Proteins: product.Proteins * factor,
		Fats:     product.Fats * factor,
		Carbs:    product.Carbs * factor,
	}
}

func addTotals(a, b response_models.NutritionTotals) response_models.NutritionTotals {
	return response_models.NutritionTotals{
		Mass:     a.Mass + b.Mass,
		Calories: a.Calories + b.Calories,
		Proteins: a.Proteins + b.Proteins,
		Fats:     a.Fats + b.Fats,
		Carbs:    a.Carbs + b.Carbs,
	}
}

// BuildDayReport scales each record's nutrients by mass/100 and sums
// per meal slot, then across the day. No rounding here; that belongs
// to rendering.
func BuildDayReport(dayNumber int, records []dbm.MealRecord) *response_models.DayReport {
	report := &response_models.DayReport{DayNumber: dayNumber}

	for meal := dbm.MealBreakfast; meal <= dbm.MealSnacks; meal++ {
		mealOut := response_models.MealNutrition{Meal: meal}
		for i := range records {
			rec := &records[i]
			if rec.Meal != meal {
				continue
			}
			totals := scaleNutrients(&rec.Product, rec.Mass)
			mealOut.Records = append(mealOut.Records, response_models.RecordNutrition{
				ProductID:   rec.ProductID.String(),
				ProductName: rec.Product.Name,
				Totals:      totals,
			})
			mealOut.Totals = addTotals(mealOut.Totals, totals)
		}
		report.Totals = addTotals(report.Totals, mealOut.Totals)
		report.Meals = append(report.Meals, mealOut)
	}

	return report
}

// BuildShoppingReport groups the whole trip's records by product and
// scales by headcount. Items keep the deterministic record order
// (day, then meal) of their first occurrence.
func BuildShoppingReport(records []dbm.MealRecord, headcount int) *response_models.ShoppingReport {
	report := &response_models.ShoppingReport{
		Headcount: headcount,
		Items:     []response_models.ShoppingItem{},
	}

	index := make(map[uuid.UUID]int)
	for i := range records {
		rec := &records[i]
		scaled := rec.Mass * float64(headcount)

		at, ok := index[rec.ProductID]
		if !ok {
			at = len(report.Items)
			index[rec.ProductID] = at
			report.Items = append(report.Items, response_models.ShoppingItem{
				ProductID:   rec.ProductID.String(),
				ProductName: rec.Product.Name,
			})
		}
		report.Items[at].TotalMass += scaled
	}

	// Piece counts are derived from the final mass so partial pieces
	// accumulate before division.
	for i := range report.Items {
		for j := range records {
			if records[j].ProductID.String() != report.Items[i].ProductID {
				continue
			}
			gpp := records[j].Product.GramsPerPiece
			if gpp != nil && *gpp > 0 {
				pieces := report.Items[i].TotalMass / *gpp
				report.Items[i].Pieces = &pieces
			}
			break
		}
	}

	return report
}

// BuildPackingReport lays records out by day and meal slot, one mass
// value per group (record mass times that group's persons), preserving
// the per-group breakdown for packing lists.
func BuildPackingReport(records []dbm.MealRecord, groups []dbm.Group) *response_models.PackingReport {
	report := &response_models.PackingReport{Days: []response_models.PackingDay{}}

	var day *response_models.PackingDay
	var meal *response_models.PackingMeal
	for i := range records {
		rec := &records[i]

		if day == nil || day.DayNumber != rec.DayNumber {
			report.Days = append(report.Days, response_models.PackingDay{DayNumber: rec.DayNumber})
			day = &report.Days[len(report.Days)-1]
			meal = nil
		}
		if meal == nil || meal.Meal != rec.Meal {
			day.Meals = append(day.Meals, response_models.PackingMeal{Meal: rec.Meal})
			meal = &day.Meals[len(day.Meals)-1]
		}

		item := response_models.PackingItem{
			ProductID:   rec.ProductID.String(),
			ProductName: rec.Product.Name,
			Mass:        rec.Mass,
		}
		for _, g := range groups {
			item.Portions = append(item.Portions, response_models.PackingPortion{
				GroupSeq: g.Seq,
				Persons:  g.Persons,
				Mass:     rec.Mass * float64(g.Persons),
			})
		}
		meal.Items = append(meal.Items, item)
	}

	return report
}
