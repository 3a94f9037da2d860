package handler

import (
	"net/http"
	"reflect"

	"coopelec/internal/apierror"
	"coopelec/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error to its HTTP status by kind.
// Unkinded errors become a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch apierror.KindOf(err) {
	case apierror.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case apierror.KindInvalid:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case apierror.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case apierror.KindForbidden:
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case apierror.KindConflict:
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// parseIDParam parses the :id path segment, writing the 400 itself on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// claimsSocioID returns the caller's socio id, or nil for staff tokens.
func claimsSocioID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.SocioID == "" {
		return nil
	}
	id, err := uuid.Parse(claims.SocioID)
	if err != nil {
		return nil
	}
	return &id
}

// claimsEmpleadoID returns the caller's empleado id, or nil when the token
// carries none.
func claimsEmpleadoID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.EmpleadoID == "" {
		return nil
	}
	id, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		return nil
	}
	return &id
}
