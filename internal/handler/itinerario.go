package handler

import (
	"net/http"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// ItinerarioHandler covers supervisor dispatch: pending work, crew
// assignment, and crew itineraries.
type ItinerarioHandler struct{ svc service.OrdenService }

func NewItinerarioHandler(svc service.OrdenService) *ItinerarioHandler {
	return &ItinerarioHandler{svc: svc}
}

// Pendientes lists claimable orders: PENDIENTE, unassigned, outside any
// itinerary. Defaults to technical complaints.
func (h *ItinerarioHandler) Pendientes(c *gin.Context) {
	var filter dto.PendientesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarPendientes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Asignar godoc
// @Summary Asignar orden a cuadrilla
// @Description Crea o mueve la fila de itinerario y transiciona la orden a ASIGNADA. El estado del reclamo se deriva en la misma transaccion.
// @Tags itinerario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AsignarCuadrillaRequest true "Orden, cuadrilla y fecha"
// @Success 200 {object} dto.OrdenTrabajoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/itinerario/asignar [post]
func (h *ItinerarioHandler) Asignar(c *gin.Context) {
	var req dto.AsignarCuadrillaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarCuadrilla(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItinerarioHandler) Desasignar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desasignar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItinerarioHandler) PorCuadrilla(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var filter dto.ItinerarioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarItinerario(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItinerarioHandler) Cancelar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItinerarioHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
