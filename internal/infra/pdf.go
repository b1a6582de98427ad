package infra

// pdf.go — purchase order document generation using go-pdf/fpdf.
// Produces an A4 order sheet with the restaurant header, order number and
// date, the supplier block, the item table and the bold total. The file is
// saved to storagePath/orden_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrdenPDF renders a purchase order for sending to the supplier.
// Returns the absolute path to the generated file.
func GenerateOrdenPDF(orden *model.OrdenCompra, nombreLocal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orden_%s.pdf", orden.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, nombreLocal, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Orden de Compra", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Order info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Orden N° %s", orden.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "Fecha: "+orden.Fecha.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Supplier block ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 5, "Proveedor", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, orden.Proveedor.RazonSocial, "", 1, "L", false, 0, "")
	if orden.Proveedor.Email != nil {
		pdf.CellFormat(contentW, 5, *orden.Proveedor.Email, "", 1, "L", false, 0, "")
	}
	if orden.Proveedor.Telefono != nil {
		pdf.CellFormat(contentW, 5, *orden.Proveedor.Telefono, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Items table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // insumo
	col2 := contentW * 0.16 // cantidad
	col3 := contentW * 0.20 // precio unitario
	col4 := contentW * 0.20 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Insumo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cantidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Precio unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range orden.Items {
		nombre := item.Insumo.Nombre
		if len(nombre) > 40 {
			nombre = nombre[:39] + "…"
		}
		cantidad := item.Cantidad.String()
		if item.Insumo.UnidadMedida != "" {
			cantidad += " " + item.Insumo.UnidadMedida
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, cantidad, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+orden.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Confirmar recepción respondiendo este correo.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
