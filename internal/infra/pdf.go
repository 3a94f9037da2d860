package infra

// pdf.go — Invoice PDF generation using go-pdf/fpdf.
// Generates an A4 electricity invoice with:
//   - Cooperative header
//   - Member and account data
//   - Period, consumption and amount table
//   - Due date and payment status
//
// The output file is saved to storagePath/factura_{numero}_{periodo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coopelec/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateFacturaPDF renders the invoice for an emitted Factura. The Factura
// must come with Cuenta (and ideally Cuenta.Socio) preloaded.
// Returns the absolute path to the generated file.
func GenerateFacturaPDF(f *model.Factura, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	numeroCuenta := "------"
	if f.Cuenta != nil {
		numeroCuenta = f.Cuenta.NumeroCuenta
	}
	fileName := fmt.Sprintf("factura_%s_%s.pdf", numeroCuenta, strings.ReplaceAll(f.Periodo, "-", ""))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Cooperativa Electrica", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Factura de Servicio Electrico", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Member / account block ────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 6, "Cuenta:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW-40, 6, numeroCuenta, "", 1, "L", false, 0, "")

	if f.Cuenta != nil {
		if f.Cuenta.Socio != nil {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(40, 6, "Socio:", "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(contentW-40, 6, f.Cuenta.Socio.Apellido+", "+f.Cuenta.Socio.Nombre, "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, "Suministro:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-40, 6, f.Cuenta.Direccion, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Detail table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.35
	col2 := contentW * 0.25
	col3 := contentW * 0.40

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Periodo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Consumo (kWh)", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1, 7, f.Periodo, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, fmt.Sprintf("%d", f.ConsumoKWH), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+f.Importe.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Totals / dates ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2, 8, "TOTAL A PAGAR:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 8, "$"+f.Importe.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2, 6, "Fecha de emision:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, f.FechaEmision.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 6, "Vencimiento:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, f.FechaVencimiento.Format("02/01/2006"), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Pague su factura antes del vencimiento para evitar recargos.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
