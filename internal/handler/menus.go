package handler

import (
	"net/http"

	"github.com/Fpidal/recetas-tero-sub001/internal/apierror"
	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenusHandler struct {
	svc    service.MenuService
	costeo service.CosteoService
}

func NewMenusHandler(svc service.MenuService, costeo service.CosteoService) *MenusHandler {
	return &MenusHandler{svc: svc, costeo: costeo}
}

// ── Menú ejecutivo ───────────────────────────────────────────────────────────

func (h *MenusHandler) CrearEjecutivo(c *gin.Context) {
	var req dto.CrearMenuEjecutivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEjecutivo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListarEjecutivos(c *gin.Context) {
	resp, err := h.svc.ListarEjecutivos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar menus"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) ObtenerEjecutivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerEjecutivo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Menu no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) EliminarEjecutivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.EliminarEjecutivo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenusHandler) CostoEjecutivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.costeo.CostoMenuEjecutivo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Menu no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Menú especial ────────────────────────────────────────────────────────────

func (h *MenusHandler) CrearEspecial(c *gin.Context) {
	var req dto.CrearMenuEspecialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEspecial(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListarEspeciales(c *gin.Context) {
	resp, err := h.svc.ListarEspeciales(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar menus"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) ObtenerEspecial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerEspecial(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Menu no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) EliminarEspecial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.EliminarEspecial(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenusHandler) CostoEspecial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.costeo.CostoMenuEspecial(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Menu no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
