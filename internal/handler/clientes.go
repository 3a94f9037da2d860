package handler

import (
	"net/http"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientesHandler serves the member self-service endpoints. Every operation is
// scoped to the socio_id carried in the caller's token.
type ClientesHandler struct {
	cuentaSvc  service.CuentaService
	facturaSvc service.FacturaService
	reclamoSvc service.ReclamoService
}

func NewClientesHandler(
	cuentaSvc service.CuentaService,
	facturaSvc service.FacturaService,
	reclamoSvc service.ReclamoService,
) *ClientesHandler {
	return &ClientesHandler{cuentaSvc: cuentaSvc, facturaSvc: facturaSvc, reclamoSvc: reclamoSvc}
}

func (h *ClientesHandler) MisCuentas(c *gin.Context) {
	socioID := claimsSocioID(c)
	if socioID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un socio"))
		return
	}
	resp, err := h.cuentaSvc.ListarPorSocio(c.Request.Context(), *socioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MisFacturas godoc
// @Summary Facturas del socio autenticado
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param estado query string false "PENDIENTE | PAGADA | VENCIDA | all"
// @Param cuenta_id query string false "Restringir a una cuenta"
// @Success 200 {object} dto.FacturaListResponse
// @Router /v1/clientes/facturas [get]
func (h *ClientesHandler) MisFacturas(c *gin.Context) {
	socioID := claimsSocioID(c)
	if socioID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un socio"))
		return
	}
	var filter dto.FacturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.facturaSvc.Listar(c.Request.Context(), filter, socioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PagarFactura registers a payment against one of the caller's own invoices.
func (h *ClientesHandler) PagarFactura(c *gin.Context) {
	socioID := claimsSocioID(c)
	if socioID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un socio"))
		return
	}
	facturaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.facturaSvc.RegistrarPago(c.Request.Context(), facturaID, socioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Reclamos ─────────────────────────────────────────────────────────────────

// CrearReclamo godoc
// @Summary Registrar reclamo
// @Description Crea el reclamo y su orden de trabajo en una transaccion.
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearReclamoRequest true "Detalle del reclamo"
// @Success 201 {object} dto.ReclamoResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/clientes/reclamos [post]
func (h *ClientesHandler) CrearReclamo(c *gin.Context) {
	socioID := claimsSocioID(c)
	if socioID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un socio"))
		return
	}
	var req dto.CrearReclamoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reclamoSvc.Crear(c.Request.Context(), socioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) MisReclamos(c *gin.Context) {
	socioID := claimsSocioID(c)
	if socioID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un socio"))
		return
	}
	var filter dto.ReclamoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.reclamoSvc.Listar(c.Request.Context(), filter, socioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) ObtenerReclamo(c *gin.Context) {
	socioID := claimsSocioID(c)
	if socioID == nil {
		c.JSON(http.StatusForbidden, apierror.New("el token no esta vinculado a un socio"))
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.reclamoSvc.ObtenerPorID(c.Request.Context(), id, socioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
