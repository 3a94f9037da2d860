package handler

import (
	"net/http"

	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaDeudaHandler serves the public debt check endpoint.
// No authentication required — no side effects whatsoever.
type ConsultaDeudaHandler struct {
	svc service.DeudaService
}

func NewConsultaDeudaHandler(svc service.DeudaService) *ConsultaDeudaHandler {
	return &ConsultaDeudaHandler{svc: svc}
}

// GetDeudaPorCuenta godoc
// @Summary Consulta de deuda por numero de cuenta (sin autenticacion)
// @Tags deuda
// @Produce json
// @Param numeroCuenta path string true "Numero de cuenta (6 digitos)"
// @Success 200 {object} dto.DeudaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/deuda/{numeroCuenta} [get]
func (h *ConsultaDeudaHandler) GetDeudaPorCuenta(c *gin.Context) {
	resp, err := h.svc.ConsultarPorNumero(c.Request.Context(), c.Param("numeroCuenta"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
