package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

type SharingController struct {
	sharingService services.SharingServiceInterface
}

func NewSharingController(sharingService services.SharingServiceInterface) *SharingController {
	return &SharingController{
		sharingService: sharingService,
	}
}

// IssueLink godoc
// @Summary Issue a sharing link
// @Description Create or refresh the caller's sharing link for a trip; only the owner or an administrator may issue
// @Tags Sharing
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.IssueShareRequest true "Access level, read or write"
// @Success 200 {object} response_models.ShareLinkResponse
// @Security BearerAuth
// @Router /trips/{tripId}/share [post]
func (s *SharingController) IssueLink(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	var req request_models.IssueShareRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Level == "" {
		utils.RespondError(c, http.StatusBadRequest, "Level is required, read or write")
		return
	}

	link, err := s.sharingService.Issue(c.Request.Context(), tripID, p, req.Level)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, link, "Sharing link issued successfully")
}

// RedeemLink godoc
// @Summary Redeem a sharing link
// @Description Convert a sharing token into a durable access grant for the caller; idempotent, never downgrades an existing grant
// @Tags Sharing
// @Produce json
// @Param token path string true "Sharing token"
// @Success 200 {object} response_models.RedeemResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /share/redeem/{token} [post]
func (s *SharingController) RedeemLink(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	token := c.Param("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, "Token is required")
		return
	}

	result, err := s.sharingService.Redeem(c.Request.Context(), token, p.UserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Sharing link redeemed successfully")
}

// ForgetTrip godoc
// @Summary Forget a shared trip
// @Description Drop the caller's own access grant on a trip
// @Tags Sharing
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/access [delete]
func (s *SharingController) ForgetTrip(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId")
	if !ok {
		return
	}

	if err := s.sharingService.Forget(c.Request.Context(), tripID, p.UserID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip access forgotten")
}
