package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealtrip/internal/models/request_models"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

type ProductController struct {
	productService services.ProductServiceInterface
}

func NewProductController(productService services.ProductServiceInterface) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts godoc
// @Summary List catalog products
// @Description List products; pass all=1 as an administrator to include archived entries
// @Tags Products
// @Produce json
// @Param all query int false "Include archived products (admin only)"
// @Success 200 {array} response_models.ProductResponse
// @Security BearerAuth
// @Router /products [get]
func (p *ProductController) ListProducts(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	includeArchived := c.Query("all") == "1"
	products, err := p.productService.ListProducts(c.Request.Context(), principal, includeArchived)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

// CreateProduct godoc
// @Summary Create a catalog product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body request_models.ProductRequest true "Product name and nutrients per 100 g"
// @Success 200 {object} response_models.ProductResponse
// @Security BearerAuth
// @Router /products [post]
func (p *ProductController) CreateProduct(c *gin.Context) {
	if _, ok := currentPrincipal(c); !ok {
		return
	}

	var req request_models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Product name is required")
		return
	}

	product, err := p.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product created successfully")
}

// UpdateProduct godoc
// @Summary Update a catalog product
// @Tags Products
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body request_models.ProductRequest true "Updated product fields"
// @Success 200 {object} response_models.ProductResponse
// @Security BearerAuth
// @Router /products/{productId} [put]
func (p *ProductController) UpdateProduct(c *gin.Context) {
	if _, ok := currentPrincipal(c); !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req request_models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Product name is required")
		return
	}

	product, err := p.productService.UpdateProduct(c.Request.Context(), productID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product updated successfully")
}

// ArchiveProduct godoc
// @Summary Archive a product
// @Description Archived products keep their historical records but cannot be newly assigned; admin only
// @Tags Products
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{productId}/archive [post]
func (p *ProductController) ArchiveProduct(c *gin.Context) {
	p.setArchived(c, true, "Product archived successfully")
}

// UnarchiveProduct godoc
// @Summary Unarchive a product
// @Tags Products
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{productId}/unarchive [post]
func (p *ProductController) UnarchiveProduct(c *gin.Context) {
	p.setArchived(c, false, "Product unarchived successfully")
}

func (p *ProductController) setArchived(c *gin.Context, archived bool, message string) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := p.productService.SetArchived(c.Request.Context(), productID, principal, archived); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, message)
}
