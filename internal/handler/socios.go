package handler

import (
	"net/http"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/service"

	"github.com/gin-gonic/gin"
)

// SociosHandler exposes the member registry to administrative staff.
type SociosHandler struct {
	svc       service.SocioService
	cuentaSvc service.CuentaService
}

func NewSociosHandler(svc service.SocioService, cuentaSvc service.CuentaService) *SociosHandler {
	return &SociosHandler{svc: svc, cuentaSvc: cuentaSvc}
}

// Crear godoc
// @Summary Alta de socio
// @Tags socios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSocioRequest true "Datos del socio"
// @Success 201 {object} dto.SocioResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/socios [post]
func (h *SociosHandler) Crear(c *gin.Context) {
	var req dto.CrearSocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SociosHandler) Listar(c *gin.Context) {
	var filter dto.SocioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SociosHandler) Obtener(c *gin.Context) {
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

func (h *SociosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarSocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar is a hard delete; it fails while the member still owns accounts.
func (h *SociosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Cuentas ──────────────────────────────────────────────────────────────────

// CrearCuenta godoc
// @Summary Alta de cuenta con medidor
// @Description Crea la cuenta y su medidor en una transaccion; ambos numeros se generan correlativos.
// @Tags socios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCuentaRequest true "Datos de la cuenta"
// @Success 201 {object} dto.CuentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cuentas [post]
func (h *SociosHandler) CrearCuenta(c *gin.Context) {
	var req dto.CrearCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cuentaSvc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SociosHandler) CuentasDeSocio(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.cuentaSvc.ListarPorSocio(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarLectura loads a monthly meter reading used by the next emission.
func (h *SociosHandler) RegistrarLectura(c *gin.Context) {
	var req dto.RegistrarLecturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.cuentaSvc.RegistrarLectura(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}
