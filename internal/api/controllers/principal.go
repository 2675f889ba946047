package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

// currentPrincipal rebuilds the principal placed into the gin context
// by the auth middleware. Responds 401 and returns false when absent.
func currentPrincipal(c *gin.Context) (services.Principal, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or missing user identity")
		return services.Principal{}, false
	}
	return services.Principal{
		UserID:  userID,
		IsAdmin: c.GetString("role") == "admin",
	}, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
