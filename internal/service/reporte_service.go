package service

import (
	"context"
	"fmt"

	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ReporteService renders management reports. For now that is the carta
// food-cost workbook downloaded from the dashboard.
type ReporteService interface {
	FoodCostXLSX(ctx context.Context) (*excelize.File, error)
}

type reporteService struct {
	costeo  CosteoService
	insumos repository.InsumoRepository
}

func NewReporteService(costeo CosteoService, insumos repository.InsumoRepository) ReporteService {
	return &reporteService{costeo: costeo, insumos: insumos}
}

// FoodCostXLSX builds a workbook with one row per active dish: cost, carta
// price, suggested price and food-cost classification. Dishes costed with
// missing prices get a second sheet naming the ingredients to fix.
func (s *reporteService) FoodCostXLSX(ctx context.Context) (*excelize.File, error) {
	carta, err := s.costeo.Carta(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const hoja = "Carta"
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"Plato", "Sección", "Costo", "Precio carta", "Precio sugerido", "Food cost %", "Objetivo %", "Estado"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hoja, celda, h)
	}

	type sinPrecio struct {
		plato   string
		insumos []string
	}
	var pendientes []sinPrecio

	for i, p := range carta.Platos {
		fila := i + 2
		costo, _ := p.Analisis.Costo.Float64()
		precio, _ := p.Analisis.PrecioVenta.Float64()
		sugerido, _ := p.Analisis.PrecioSugerido.Float64()
		fc, _ := p.Analisis.FoodCostRealizado.Float64()
		objetivo, _ := p.Analisis.FoodCostObjetivo.Float64()

		f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), p.Nombre)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), p.Seccion)
		f.SetCellValue(hoja, fmt.Sprintf("C%d", fila), costo)
		f.SetCellValue(hoja, fmt.Sprintf("D%d", fila), precio)
		f.SetCellValue(hoja, fmt.Sprintf("E%d", fila), sugerido)
		f.SetCellValue(hoja, fmt.Sprintf("F%d", fila), fc)
		f.SetCellValue(hoja, fmt.Sprintf("G%d", fila), objetivo)
		f.SetCellValue(hoja, fmt.Sprintf("H%d", fila), p.Analisis.Estado)

		if p.SinPrecio {
			insumos := s.insumosSinPrecio(ctx, p.PlatoID)
			pendientes = append(pendientes, sinPrecio{plato: p.Nombre, insumos: insumos})
		}
	}

	if len(pendientes) > 0 {
		const hojaPendientes = "Sin precio"
		if _, err := f.NewSheet(hojaPendientes); err != nil {
			return nil, err
		}
		f.SetCellValue(hojaPendientes, "A1", "Plato")
		f.SetCellValue(hojaPendientes, "B1", "Insumo sin precio vigente")
		fila := 2
		for _, p := range pendientes {
			if len(p.insumos) == 0 {
				f.SetCellValue(hojaPendientes, fmt.Sprintf("A%d", fila), p.plato)
				fila++
				continue
			}
			for _, insumo := range p.insumos {
				f.SetCellValue(hojaPendientes, fmt.Sprintf("A%d", fila), p.plato)
				f.SetCellValue(hojaPendientes, fmt.Sprintf("B%d", fila), insumo)
				fila++
			}
		}
	}
	return f, nil
}

// insumosSinPrecio resolves the names of the ingredients a dish could not be
// costed with. Resolution failures fall back to the raw id.
func (s *reporteService) insumosSinPrecio(ctx context.Context, platoID string) []string {
	id, err := uuid.Parse(platoID)
	if err != nil {
		return nil
	}
	costeo, err := s.costeo.CostoPlato(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("plato_id", platoID).Msg("no se pudo detallar los insumos sin precio")
		return nil
	}
	nombres := make([]string, 0, len(costeo.InsumosSinPrecio))
	for _, raw := range costeo.InsumosSinPrecio {
		insumoID, err := uuid.Parse(raw)
		if err != nil {
			nombres = append(nombres, raw)
			continue
		}
		if insumo, err := s.insumos.FindByID(ctx, insumoID); err == nil {
			nombres = append(nombres, insumo.Nombre)
		} else {
			nombres = append(nombres, raw)
		}
	}
	return nombres
}
