package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/apierror"
	"github.com/Fpidal/recetas-tero-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type CartaHandler struct {
	costeo   service.CosteoService
	reportes service.ReporteService
}

func NewCartaHandler(costeo service.CosteoService, reportes service.ReporteService) *CartaHandler {
	return &CartaHandler{costeo: costeo, reportes: reportes}
}

// FoodCost handles GET /v1/carta/food-cost: one row per active dish with its
// food-cost classification.
func (h *CartaHandler) FoodCost(c *gin.Context) {
	resp, err := h.costeo.Carta(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular la carta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FoodCostXLSX handles GET /v1/reportes/food-cost.xlsx and streams the
// workbook for download.
func (h *CartaHandler) FoodCostXLSX(c *gin.Context) {
	f, err := h.reportes.FoodCostXLSX(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	fileName := fmt.Sprintf("food-cost_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		// Headers already sent; nothing sensible left to answer.
		c.Abort()
	}
}
