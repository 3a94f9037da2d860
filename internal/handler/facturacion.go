package handler

import (
	"net/http"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// FacturacionHandler exposes the billing operations used by staff.
type FacturacionHandler struct{ svc service.FacturaService }

func NewFacturacionHandler(svc service.FacturaService) *FacturacionHandler {
	return &FacturacionHandler{svc: svc}
}

// EmitirPeriodo godoc
// @Summary Emitir facturacion de un periodo
// @Description Genera una factura PENDIENTE por cada cuenta activa sin factura del periodo y despacha PDF/email asincronos. Idempotente por periodo.
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EmitirPeriodoRequest true "Periodo YYYY-MM"
// @Success 200 {object} dto.EmitirPeriodoResponse
// @Router /v1/facturacion/emitir [post]
func (h *FacturacionHandler) EmitirPeriodo(c *gin.Context) {
	var req dto.EmitirPeriodoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EmitirPeriodo(c.Request.Context(), req.Periodo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturacionHandler) Listar(c *gin.Context) {
	var filter dto.FacturaFilter
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

// RegistrarPago registers an over-the-counter payment taken by staff.
// No ownership restriction applies here.
func (h *FacturacionHandler) RegistrarPago(c *gin.Context) {
	facturaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), facturaID, nil, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DescargarPDF streams the invoice PDF generated by the emission worker.
func (h *FacturacionHandler) DescargarPDF(c *gin.Context) {
	facturaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	factura, err := h.svc.ObtenerPorID(c.Request.Context(), facturaID, claimsSocioID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if factura.PDFPath == nil {
		c.JSON(http.StatusNotFound, apierror.New("el PDF aun no fue generado"))
		return
	}
	c.FileAttachment(*factura.PDFPath, "factura_"+factura.Periodo+".pdf")
}
