package handler

import (
	"net/http"

	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogosHandler serves the read-only catalogs used by the web forms.
type CatalogosHandler struct{ svc service.CatalogoService }

func NewCatalogosHandler(svc service.CatalogoService) *CatalogosHandler {
	return &CatalogosHandler{svc: svc}
}

func (h *CatalogosHandler) Servicios(c *gin.Context) {
	resp, err := h.svc.Servicios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) TiposReclamo(c *gin.Context) {
	resp, err := h.svc.TiposReclamo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) Prioridades(c *gin.Context) {
	resp, err := h.svc.Prioridades(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
