package handler

import (
	"net/http"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// OperariosHandler serves field employees: their claimed orders, the
// self-claim, completion and material usage.
type OperariosHandler struct {
	ordenSvc    service.OrdenService
	materialSvc service.MaterialService
}

func NewOperariosHandler(ordenSvc service.OrdenService, materialSvc service.MaterialService) *OperariosHandler {
	return &OperariosHandler{ordenSvc: ordenSvc, materialSvc: materialSvc}
}

func (h *OperariosHandler) MisOrdenes(c *gin.Context) {
	empleadoID := claimsEmpleadoID(c)
	if empleadoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un empleado"))
		return
	}
	resp, err := h.ordenSvc.ListarPorEmpleado(c.Request.Context(), *empleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Tomar godoc
// @Summary Tomar orden del itinerario
// @Description Reclama una orden del itinerario de la cuadrilla del empleado. Ante concurrencia gana exactamente uno; el resto recibe 409.
// @Tags operarios
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la orden"
// @Success 200 {object} dto.OrdenTrabajoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/operarios/ordenes/{id}/tomar [post]
func (h *OperariosHandler) Tomar(c *gin.Context) {
	empleadoID := claimsEmpleadoID(c)
	if empleadoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un empleado"))
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.ordenSvc.Tomar(c.Request.Context(), id, *empleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Finalizar completes the caller's order and triggers the member
// notification.
func (h *OperariosHandler) Finalizar(c *gin.Context) {
	empleadoID := claimsEmpleadoID(c)
	if empleadoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un empleado"))
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.FinalizarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ordenSvc.Finalizar(c.Request.Context(), id, empleadoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarUso consumes materials against the caller's order. All items
// succeed or none do.
func (h *OperariosHandler) RegistrarUso(c *gin.Context) {
	empleadoID := claimsEmpleadoID(c)
	if empleadoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un empleado"))
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarUsoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.materialSvc.RegistrarUso(c.Request.Context(), id, empleadoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
