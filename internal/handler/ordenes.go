package handler

import (
	"errors"
	"net/http"

	"github.com/Fpidal/recetas-tero-sub001/internal/apierror"
	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

// writeOrdenError maps the business-rule errors of the order flow to status
// codes; anything else falls back to 400.
func writeOrdenError(c *gin.Context, err error) {
	var faltante *service.FaltanteExistenteError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Orden no encontrada"))
	case errors.As(err, &faltante),
		errors.Is(err, service.ErrEstadoInvalido),
		errors.Is(err, service.ErrOrdenFacturada),
		errors.Is(err, service.ErrSinFactura),
		errors.Is(err, service.ErrSinFaltantes):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeOrdenError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdenesHandler) Listar(c *gin.Context) {
	var filter dto.OrdenFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ordenes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Orden no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeOrdenError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id); err != nil {
		writeOrdenError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Emitir handles POST /v1/ordenes/:id/emitir.
func (h *OrdenesHandler) Emitir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Emitir(c.Request.Context(), id)
	if err != nil {
		writeOrdenError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Conciliacion handles GET /v1/ordenes/:id/conciliacion.
func (h *OrdenesHandler) Conciliacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Conciliacion(c.Request.Context(), id)
	if err != nil {
		writeOrdenError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerarOrdenFaltante handles POST /v1/ordenes/:id/orden-faltante.
func (h *OrdenesHandler) GenerarOrdenFaltante(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.GenerarOrdenFaltante(c.Request.Context(), id)
	if err != nil {
		writeOrdenError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
