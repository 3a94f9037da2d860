package handler

import (
	"net/http"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// ReclamosHandler is the staff-facing complaint view; no ownership
// restriction applies.
type ReclamosHandler struct{ svc service.ReclamoService }

func NewReclamosHandler(svc service.ReclamoService) *ReclamosHandler {
	return &ReclamosHandler{svc: svc}
}

// Listar filters estado by exact string match against the stored value.
func (h *ReclamosHandler) Listar(c *gin.Context) {
	var filter dto.ReclamoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReclamosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearPresencial lets staff load a complaint on behalf of a member
// (telefono / mostrador). Ownership is not checked against the caller.
func (h *ReclamosHandler) CrearPresencial(c *gin.Context) {
	var req dto.CrearReclamoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), nil, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
