package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

type MealController struct {
	mealService services.MealServiceInterface
}

func NewMealController(mealService services.MealServiceInterface) *MealController {
	return &MealController{
		mealService: mealService,
	}
}

func parseDayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Day must be a positive integer")
		return 0, false
	}
	return day, true
}

// ListDay godoc
// @Summary List meal records for one day
// @Tags Meals
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param day path int true "Day number, 1-based"
// @Success 200 {array} response_models.MealRecordResponse
// @Security BearerAuth
// @Router /trips/{tripId}/meals/{day} [get]
func (m *MealController) ListDay(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}
	day, ok := parseDayParam(c)
	if !ok {
		return
	}

	records, err := m.mealService.ListDay(c.Request.Context(), tripID, p, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, records, "Meal records fetched successfully")
}

// AddRecord godoc
// @Summary Add a meal record
// @Description Assign a product mass to a meal slot; repeated additions of the same product merge by summing mass
// @Tags Meals
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param day path int true "Day number, 1-based"
// @Param request body request_models.AddMealRecordRequest true "Product, meal slot and mass"
// @Success 200 {object} response_models.MealRecordResponse
// @Security BearerAuth
// @Router /trips/{tripId}/meals/{day} [post]
func (m *MealController) AddRecord(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}
	day, ok := parseDayParam(c)
	if !ok {
		return
	}

	var req request_models.AddMealRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Mass <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "ProductID and a positive mass are required")
		return
	}

	record, err := m.mealService.AddRecord(c.Request.Context(), tripID, p, day, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, record, "Meal record added successfully")
}

// RemoveRecord godoc
// @Summary Remove a meal record
// @Tags Meals
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param day path int true "Day number, 1-based"
// @Param recordId path string true "Meal record ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/meals/{day}/{recordId} [delete]
func (m *MealController) RemoveRecord(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(c, "recordId")
	if !ok {
		return
	}

	if err := m.mealService.RemoveRecord(c.Request.Context(), tripID, p, recordID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Meal record removed successfully")
}

// CycleDays godoc
// @Summary Duplicate a day range of meals
// @Description Copy the source day range onto the destination range with modular repetition; optionally overwrite the destination first
// @Tags Meals
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.CycleDaysRequest true "Source range, destination range and overwrite flag"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/cycle [post]
func (m *MealController) CycleDays(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	var req request_models.CycleDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "src_start, src_end, dst_start and dst_end are required")
		return
	}

	if err := m.mealService.Cycle(c.Request.Context(), tripID, p, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Days cycled successfully")
}
