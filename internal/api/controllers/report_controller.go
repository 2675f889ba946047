package controllers

import (
	"github.com/gin-gonic/gin"

	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// DayReport godoc
// @Summary Nutrition totals for one day
// @Description Per-meal and whole-day nutrition totals, unrounded
// @Tags Reports
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param day path int true "Day number, 1-based"
// @Success 200 {object} response_models.DayReport
// @Security BearerAuth
// @Router /trips/{tripId}/reports/day/{day} [get]
func (r *ReportController) DayReport(c *gin.Context) {
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

	report, err := r.reportService.DayReport(c.Request.Context(), tripID, p, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Day report built successfully")
}

// ShoppingReport godoc
// @Summary Shopping list for the whole trip
// @Description Per-product mass totals scaled by trip headcount, with derived piece counts where applicable
// @Tags Reports
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.ShoppingReport
// @Security BearerAuth
// @Router /trips/{tripId}/reports/shopping [get]
func (r *ReportController) ShoppingReport(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	report, err := r.reportService.ShoppingReport(c.Request.Context(), tripID, p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Shopping report built successfully")
}

// PackingReport godoc
// @Summary Packing list grouped by day and meal
// @Description Per-record masses broken down per group, preserving group order
// @Tags Reports
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.PackingReport
// @Security BearerAuth
// @Router /trips/{tripId}/reports/packing [get]
func (r *ReportController) PackingReport(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	report, err := r.reportService.PackingReport(c.Request.Context(), tripID, p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Packing report built successfully")
}
