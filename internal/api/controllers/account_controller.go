package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// SignUp godoc
// @Summary Register an account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Display name, email and password"
// @Success 200 {object} response_models.AccountResponse
// @Router /accounts/signup [post]
func (a *AccountController) SignUp(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Display name, email and a password of 8+ characters are required")
		return
	}

	account, err := a.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account created successfully")
}

// Login godoc
// @Summary Log in
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Email and password"
// @Success 200 {object} response_models.AccountResponse
// @Failure 401 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	account, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Logged in successfully")
}
