package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Create a trip owned by the authenticated user, with its group set
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip name, date range and groups"
// @Success 200 {object} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Name, from_date and till_date are required")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

// ListTrips godoc
// @Summary List trips
// @Description List the caller's own trips plus trips shared with them
// @Tags Trip
// @Produce json
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTrip godoc
// @Summary Get trip details
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), tripID, p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Update name, date range and groups; groups are replaced wholesale
// @Tags Trip
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Updated trip fields"
// @Success 200 {object} response_models.TripResponse
// @Security BearerAuth
// @Router /trips/{tripId} [put]
func (t *TripController) UpdateTrip(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Name, from_date and till_date are required")
		return
	}

	trip, err := t.tripService.UpdateTrip(c.Request.Context(), tripID, p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Description Remove a trip with its groups, meal records, grants and sharing links
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [delete]
func (t *TripController) DeleteTrip(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), tripID, p); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}

// ArchiveTrip godoc
// @Summary Archive a trip
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/archive [post]
func (t *TripController) ArchiveTrip(c *gin.Context) {
	t.setArchived(c, true, "Trip archived successfully")
}

// UnarchiveTrip godoc
// @Summary Unarchive a trip
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/unarchive [post]
func (t *TripController) UnarchiveTrip(c *gin.Context) {
	t.setArchived(c, false, "Trip unarchived successfully")
}

func (t *TripController) setArchived(c *gin.Context, archived bool, message string) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	if err := t.tripService.SetArchived(c.Request.Context(), tripID, p, archived); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, message)
}
