package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/server/http/dto"
)

// CatalogHandler serves public catalog browsing.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/catalog?kind=.
func (h *CatalogHandler) List(c *gin.Context) {
	kind := model.ItemKind(c.Query("kind"))
	items, err := h.facade.CatalogItems(c.Request.Context(), kind)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toCatalogItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/catalog/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.facade.CatalogItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCatalogItemResponse(*item))
}
